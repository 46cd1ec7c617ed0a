package engine

import (
	"context"

	"github.com/lexroute/lexroute/pkg/eventbus"
	"github.com/lexroute/lexroute/pkg/feedback"
)

// RecordFeedback applies one feedback event to an interaction. The
// vote string is validated here so handlers stay thin. May trigger a
// background retrain when enough upvoted examples have accumulated.
func (e *Engine) RecordFeedback(ctx context.Context, interactionID, vote string, dwellSeconds float64) (*feedback.Result, error) {
	parsed, err := feedback.ParseVote(vote)
	if err != nil {
		return nil, err
	}

	result, err := e.processor.Process(ctx, interactionID, parsed, dwellSeconds)
	if err != nil {
		return nil, err
	}

	e.metrics.RecordFeedback(string(parsed), result.Reward)
	e.publisher.Publish(ctx, eventbus.BuildEnvelopeInput{
		EventType:     eventbus.EventFeedbackRecorded,
		InteractionID: interactionID,
		Payload: map[string]any{
			"vote":   string(parsed),
			"reward": result.Reward,
		},
	})

	if e.queue.Len() >= e.cfg.RetrainMinExamples {
		e.wg.Add(1)
		go func() {
			defer e.wg.Done()
			if _, err := e.Retrain(context.Background(), false); err != nil {
				e.logger.Warn("background retrain failed", "error", err)
			}
		}()
	}

	return result, nil
}
