package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/lexroute/lexroute/pkg/classifier"
	"github.com/lexroute/lexroute/pkg/eventbus"
	"github.com/lexroute/lexroute/pkg/store"
)

// ErrRetrainInProgress is returned when a retrain is already running.
var ErrRetrainInProgress = errors.New("engine: retrain already in progress")

// trainingQueue buffers upvoted examples between retrain cycles.
type trainingQueue struct {
	mu       sync.Mutex
	examples []classifier.Example
}

func newTrainingQueue() *trainingQueue {
	return &trainingQueue{}
}

// Add implements feedback.TrainingSink.
func (q *trainingQueue) Add(ex classifier.Example) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.examples = append(q.examples, ex)
}

func (q *trainingQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.examples)
}

// drain removes and returns all buffered examples.
func (q *trainingQueue) drain() []classifier.Example {
	q.mu.Lock()
	defer q.mu.Unlock()
	drained := q.examples
	q.examples = nil
	return drained
}

// requeue puts examples back after a failed retrain.
func (q *trainingQueue) requeue(examples []classifier.Example) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.examples = append(examples, q.examples...)
}

// Retrain fits a new model snapshot from the seed corpus plus the
// queued feedback examples. Single-flight: concurrent calls fail with
// ErrRetrainInProgress. A snapshot that fails validation is discarded
// and the active one keeps serving; the drained examples go back on
// the queue. force bypasses the minimum-examples check.
func (e *Engine) Retrain(ctx context.Context, force bool) (*classifier.Snapshot, error) {
	if !e.retraining.CompareAndSwap(false, true) {
		return nil, ErrRetrainInProgress
	}
	defer e.retraining.Store(false)

	extra := e.queue.drain()
	if !force && len(extra) < e.cfg.RetrainMinExamples {
		e.queue.requeue(extra)
		return nil, fmt.Errorf("%w: have %d of %d queued examples",
			classifier.ErrInsufficientExamples, len(extra), e.cfg.RetrainMinExamples)
	}

	prev := e.classifier.Snapshot()
	snap, err := e.trainer.Train(ctx, extra, prev)
	if err != nil {
		e.queue.requeue(extra)
		e.metrics.RecordRetrain("rejected")
		e.publisher.Publish(ctx, eventbus.BuildEnvelopeInput{
			EventType: eventbus.EventModelRejected,
			Payload:   map[string]any{"error": err.Error()},
		})
		return nil, err
	}

	data, err := snap.Marshal()
	if err != nil {
		e.queue.requeue(extra)
		return nil, err
	}
	if err := e.store.SaveSnapshot(ctx, &store.SnapshotBlob{
		Kind:    store.SnapshotModel,
		Version: snap.Version,
		Data:    data,
		SavedAt: time.Now().UTC(),
	}); err != nil {
		e.queue.requeue(extra)
		return nil, err
	}

	// Publish only after the snapshot is durable.
	e.classifier.Swap(snap)
	e.metrics.RecordRetrain("accepted")
	e.metrics.SetModelSnapshot(snap.Version, snap.Accuracy)

	e.publisher.Publish(ctx, eventbus.BuildEnvelopeInput{
		EventType: eventbus.EventModelRetrained,
		Payload: map[string]any{
			"version":  snap.Version,
			"accuracy": snap.Accuracy,
			"examples": len(extra),
		},
	})

	return snap, nil
}

// PendingExamples reports how many feedback examples await the next
// retrain cycle.
func (e *Engine) PendingExamples() int {
	return e.queue.Len()
}
