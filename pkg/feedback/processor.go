package feedback

import (
	"context"
	"fmt"
	"time"

	"github.com/lexroute/lexroute/pkg/classifier"
	"github.com/lexroute/lexroute/pkg/logger"
	"github.com/lexroute/lexroute/pkg/policy"
	"github.com/lexroute/lexroute/pkg/routes"
	"github.com/lexroute/lexroute/pkg/store"
)

// satisfactionStep is how far one vote moves the running session
// satisfaction, which stays clamped to [-1, 1].
const satisfactionStep = 0.1

// TrainingSink receives upvoted queries as labeled examples for the
// next retrain cycle.
type TrainingSink interface {
	Add(ex classifier.Example)
}

// Result reports the outcome of processed feedback.
type Result struct {
	InteractionID string  `json:"interaction_id"`
	Reward        float64 `json:"reward"`
	Estimate      float64 `json:"estimate"`
}

// Processor applies feedback: computes the reward, persists it
// write-once, updates the policy estimate and the session aggregate,
// and forwards upvoted queries to the training sink.
type Processor struct {
	store      store.Store
	policy     *policy.Policy
	calculator *Calculator
	sink       TrainingSink
	logger     logger.Logger
}

// NewProcessor wires a feedback processor. sink may be nil when no
// retraining loop is running.
func NewProcessor(st store.Store, pol *policy.Policy, cfg Config, sink TrainingSink, log logger.Logger) *Processor {
	if log == nil {
		log = logger.Global()
	}
	return &Processor{
		store:      st,
		policy:     pol,
		calculator: NewCalculator(cfg),
		sink:       sink,
		logger:     log.With("component", "feedback"),
	}
}

// Process records feedback for an interaction. Returns
// ErrUnknownInteraction when the interaction does not exist and
// ErrDuplicateFeedback when feedback was already recorded.
func (p *Processor) Process(ctx context.Context, interactionID string, vote Vote, dwellSeconds float64) (*Result, error) {
	reward := p.calculator.Reward(vote, dwellSeconds)

	rec, err := p.store.SetReward(ctx, interactionID, &store.FeedbackRecord{
		Vote:         string(vote),
		DwellSeconds: dwellSeconds,
		Reward:       reward,
		RecordedAt:   time.Now().UTC(),
	})
	if err != nil {
		switch {
		case store.IsNotFound(err):
			return nil, fmt.Errorf("%w: %s", ErrUnknownInteraction, interactionID)
		case store.IsDuplicate(err):
			return nil, fmt.Errorf("%w: %s", ErrDuplicateFeedback, interactionID)
		}
		return nil, err
	}

	estimate := p.policy.Update(rec.State, rec.Action, reward)

	if err := p.updateAggregate(ctx, rec, vote, reward); err != nil {
		// The reward is already persisted; a stale aggregate only
		// skews future state derivation, so log and continue.
		p.logger.WarnContext(ctx, "aggregate update failed",
			"session_id", rec.SessionID,
			"error", err)
	}

	p.collectTrainingExample(rec, vote)

	p.logger.InfoContext(ctx, "feedback recorded",
		"interaction_id", interactionID,
		"vote", string(vote),
		"dwell_seconds", dwellSeconds,
		"reward", reward,
		"estimate", estimate)

	return &Result{
		InteractionID: interactionID,
		Reward:        reward,
		Estimate:      estimate,
	}, nil
}

// updateAggregate folds the feedback into the session aggregate.
func (p *Processor) updateAggregate(ctx context.Context, rec *store.InteractionRecord, vote Vote, reward float64) error {
	agg, err := p.store.GetAggregate(ctx, rec.SessionID)
	if err != nil {
		if !store.IsNotFound(err) {
			return err
		}
		agg = &store.SessionAggregate{
			SessionID:    rec.SessionID,
			DomainCounts: make(map[routes.Domain]int),
		}
	}

	agg.Feedbacks++
	agg.RewardSum += reward
	agg.LastSeen = time.Now().UTC()

	switch vote {
	case VoteUp:
		agg.Satisfaction += satisfactionStep
	case VoteDown:
		agg.Satisfaction -= satisfactionStep
	}
	if agg.Satisfaction > 1 {
		agg.Satisfaction = 1
	}
	if agg.Satisfaction < -1 {
		agg.Satisfaction = -1
	}

	return p.store.PutAggregate(ctx, agg)
}

// collectTrainingExample forwards upvoted, confidently-classified
// queries to the training sink. Unknown-domain interactions carry no
// usable label.
func (p *Processor) collectTrainingExample(rec *store.InteractionRecord, vote Vote) {
	if p.sink == nil || vote != VoteUp || rec.Domain == routes.DomainUnknown {
		return
	}
	p.sink.Add(classifier.Example{Text: rec.Query, Domain: rec.Domain})
}
