// Package engine orchestrates the query-routing pipeline: classify the
// query, derive the policy state, propose routes, select an action, and
// persist the interaction. It also owns the background retrain and
// checkpoint loops.
package engine

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lexroute/lexroute/pkg/classifier"
	"github.com/lexroute/lexroute/pkg/eventbus"
	"github.com/lexroute/lexroute/pkg/feedback"
	"github.com/lexroute/lexroute/pkg/logger"
	"github.com/lexroute/lexroute/pkg/metrics"
	"github.com/lexroute/lexroute/pkg/policy"
	"github.com/lexroute/lexroute/pkg/routes"
	"github.com/lexroute/lexroute/pkg/store"
)

// Config holds the engine's tunables.
type Config struct {
	CheckpointInterval time.Duration
	RetrainMinExamples int
	Feedback           feedback.Config
}

// DefaultConfig returns the stock engine settings.
func DefaultConfig() Config {
	return Config{
		CheckpointInterval: 5 * time.Minute,
		RetrainMinExamples: 20,
		Feedback:           feedback.DefaultConfig(),
	}
}

// Engine is the query-routing orchestrator.
type Engine struct {
	cfg        Config
	store      store.Store
	classifier *classifier.Classifier
	trainer    *classifier.Trainer
	selector   *routes.Selector
	policy     *policy.Policy
	processor  *feedback.Processor
	queue      *trainingQueue

	metrics   *metrics.Manager
	publisher *eventbus.Publisher
	logger    logger.Logger

	running       atomic.Bool
	retraining    atomic.Bool
	policyVersion atomic.Int64

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates an engine over the given components.
func New(cfg Config, st store.Store, cls *classifier.Classifier, trainer *classifier.Trainer, selector *routes.Selector, pol *policy.Policy, opts ...Option) *Engine {
	if cfg.CheckpointInterval <= 0 {
		cfg.CheckpointInterval = DefaultConfig().CheckpointInterval
	}
	if cfg.RetrainMinExamples <= 0 {
		cfg.RetrainMinExamples = DefaultConfig().RetrainMinExamples
	}

	e := &Engine{
		cfg:        cfg,
		store:      st,
		classifier: cls,
		trainer:    trainer,
		selector:   selector,
		policy:     pol,
		queue:      newTrainingQueue(),
		metrics:    metrics.NoOpManager(),
		publisher:  eventbus.NewPublisher(nil, nil),
		logger:     logger.Global().With("component", "engine"),
	}

	for _, opt := range opts {
		opt(e)
	}

	e.processor = feedback.NewProcessor(st, pol, cfg.Feedback, e.queue, e.logger)
	return e
}

// Start restores persisted snapshots and launches the background
// checkpoint loop.
func (e *Engine) Start(ctx context.Context) error {
	if !e.running.CompareAndSwap(false, true) {
		return fmt.Errorf("engine: already running")
	}

	if err := e.restoreSnapshots(ctx); err != nil {
		e.running.Store(false)
		return err
	}

	loopCtx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel

	e.wg.Add(1)
	go e.checkpointLoop(loopCtx)

	e.logger.InfoContext(ctx, "engine started",
		"checkpoint_interval", e.cfg.CheckpointInterval,
		"retrain_min_examples", e.cfg.RetrainMinExamples)
	return nil
}

// Stop halts background loops and writes a final policy checkpoint.
func (e *Engine) Stop(ctx context.Context) error {
	if !e.running.CompareAndSwap(true, false) {
		return nil
	}

	e.cancel()
	e.wg.Wait()

	if err := e.checkpointPolicy(ctx); err != nil {
		e.logger.WarnContext(ctx, "final checkpoint failed", "error", err)
	}

	e.logger.InfoContext(ctx, "engine stopped")
	return nil
}

// restoreSnapshots loads the latest persisted model and policy state.
// A missing snapshot is a cold start, not an error.
func (e *Engine) restoreSnapshots(ctx context.Context) error {
	blob, err := e.store.LoadSnapshot(ctx, store.SnapshotModel)
	switch {
	case err == nil:
		snap, err := classifier.UnmarshalSnapshot(blob.Data)
		if err != nil {
			return fmt.Errorf("engine: restore model snapshot: %w", err)
		}
		e.classifier.Swap(snap)
		e.metrics.SetModelSnapshot(snap.Version, snap.Accuracy)
		e.logger.InfoContext(ctx, "model snapshot restored",
			"version", snap.Version,
			"accuracy", snap.Accuracy)
	case store.IsNotFound(err):
		e.logger.InfoContext(ctx, "no persisted model snapshot, serving the seed model")
	default:
		return fmt.Errorf("engine: load model snapshot: %w", err)
	}

	blob, err = e.store.LoadSnapshot(ctx, store.SnapshotPolicy)
	switch {
	case err == nil:
		snap, err := policy.UnmarshalSnapshot(blob.Data)
		if err != nil {
			return fmt.Errorf("engine: restore policy snapshot: %w", err)
		}
		e.policy.Restore(snap)
		e.policyVersion.Store(snap.Version)
	case store.IsNotFound(err):
		e.logger.InfoContext(ctx, "no persisted policy snapshot, starting cold")
	default:
		return fmt.Errorf("engine: load policy snapshot: %w", err)
	}

	return nil
}

// checkpointLoop periodically persists the policy table.
func (e *Engine) checkpointLoop(ctx context.Context) {
	defer e.wg.Done()

	ticker := time.NewTicker(e.cfg.CheckpointInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := e.checkpointPolicy(ctx); err != nil {
				e.logger.WarnContext(ctx, "policy checkpoint failed", "error", err)
			}
		}
	}
}

// checkpointPolicy snapshots the policy table into the store.
func (e *Engine) checkpointPolicy(ctx context.Context) error {
	version := e.policyVersion.Add(1)
	snap := e.policy.Snapshot(version)

	data, err := snap.Marshal()
	if err != nil {
		return err
	}

	if err := e.store.SaveSnapshot(ctx, &store.SnapshotBlob{
		Kind:    store.SnapshotPolicy,
		Version: version,
		Data:    data,
		SavedAt: time.Now().UTC(),
	}); err != nil {
		return err
	}

	e.publisher.Publish(ctx, eventbus.BuildEnvelopeInput{
		EventType: eventbus.EventPolicyCheckpointed,
		Payload:   map[string]int64{"version": version},
	})

	e.logger.DebugContext(ctx, "policy checkpointed",
		"version", version,
		"states", len(snap.States))
	return nil
}
