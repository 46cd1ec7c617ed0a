package engine

import (
	"context"

	"github.com/lexroute/lexroute/pkg/feedback"
	"github.com/lexroute/lexroute/pkg/routes"
)

// SessionSummary is the rolled-up view of a session.
type SessionSummary struct {
	SessionID        string                `json:"session_id"`
	InteractionCount int                   `json:"interaction_count"`
	FeedbackCount    int                   `json:"feedback_count"`
	SatisfactionRate float64               `json:"satisfaction_rate"`
	DomainBreakdown  map[routes.Domain]int `json:"domain_breakdown"`
}

// GetSessionSummary computes the summary from the session's
// interaction log. A session with no interactions yields an empty
// summary, not an error.
func (e *Engine) GetSessionSummary(ctx context.Context, sessionID string) (*SessionSummary, error) {
	records, err := e.store.ListBySession(ctx, sessionID, 0)
	if err != nil {
		return nil, err
	}

	summary := &SessionSummary{
		SessionID:        sessionID,
		InteractionCount: len(records),
		DomainBreakdown:  make(map[routes.Domain]int),
	}

	upvotes := 0
	for _, rec := range records {
		summary.DomainBreakdown[rec.Domain]++
		if rec.Feedback == nil {
			continue
		}
		summary.FeedbackCount++
		if rec.Feedback.Vote == string(feedback.VoteUp) {
			upvotes++
		}
	}

	if summary.FeedbackCount > 0 {
		summary.SatisfactionRate = float64(upvotes) / float64(summary.FeedbackCount)
	}
	return summary, nil
}
