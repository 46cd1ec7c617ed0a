package engine

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/lexroute/lexroute/pkg/classifier"
	"github.com/lexroute/lexroute/pkg/feedback"
	"github.com/lexroute/lexroute/pkg/policy"
	"github.com/lexroute/lexroute/pkg/routes"
	"github.com/lexroute/lexroute/pkg/store"
	storememory "github.com/lexroute/lexroute/pkg/store/memory"
)

var (
	snapOnce sync.Once
	seedSnap *classifier.Snapshot
)

// seedSnapshot trains one snapshot for the whole test package; the
// trainer is deterministic with a fixed seed.
func seedSnapshot(t *testing.T) *classifier.Snapshot {
	t.Helper()

	snapOnce.Do(func() {
		cfg := classifier.DefaultTrainerConfig()
		cfg.Seed = 42
		trainer := classifier.NewTrainer(classifier.SeedExamples(), cfg, nil)
		snap, err := trainer.Train(context.Background(), nil, nil)
		if err != nil {
			t.Fatalf("seed training failed: %v", err)
		}
		seedSnap = snap
	})
	return seedSnap
}

func newTestEngine(t *testing.T) (*Engine, store.Store) {
	t.Helper()

	trainerCfg := classifier.DefaultTrainerConfig()
	trainerCfg.Seed = 42

	st := storememory.NewMemoryStore()
	polCfg := policy.DefaultConfig()
	polCfg.Seed = 42

	cfg := DefaultConfig()
	cfg.RetrainMinExamples = 1000 // keep background retrains out of tests

	e := New(cfg, st,
		classifier.New(seedSnapshot(t), classifier.DefaultConfig(), nil),
		classifier.NewTrainer(classifier.SeedExamples(), trainerCfg, nil),
		routes.NewSelector(nil, nil),
		policy.New(polCfg, nil),
	)
	return e, st
}

func TestEngine_HandleQuery_FamilyDivorce(t *testing.T) {
	e, st := newTestEngine(t)
	ctx := context.Background()

	response, err := e.HandleQuery(ctx, "sess-1", "I want to file for divorce")
	if err != nil {
		t.Fatalf("HandleQuery failed: %v", err)
	}

	if response.Domain != routes.DomainFamily {
		t.Errorf("expected family_law, got %s", response.Domain)
	}
	if response.Confidence <= 0.3 {
		t.Errorf("expected confidence above threshold, got %v", response.Confidence)
	}
	if len(response.Routes) == 0 {
		t.Fatal("expected at least one route")
	}
	if response.Fallback {
		t.Error("expected no fallback for a covered domain")
	}
	if response.InteractionID == "" {
		t.Error("expected a generated interaction ID")
	}

	// The interaction is persisted.
	rec, err := st.GetInteraction(ctx, response.InteractionID)
	if err != nil {
		t.Fatalf("GetInteraction failed: %v", err)
	}
	if rec.Domain != routes.DomainFamily || rec.Query != "I want to file for divorce" {
		t.Errorf("unexpected persisted record: %+v", rec)
	}

	// The session aggregate recorded the visit.
	agg, err := st.GetAggregate(ctx, "sess-1")
	if err != nil {
		t.Fatalf("GetAggregate failed: %v", err)
	}
	if agg.Interactions != 1 || agg.DomainCounts[routes.DomainFamily] != 1 {
		t.Errorf("unexpected aggregate: %+v", agg)
	}
}

func TestEngine_HandleQuery_EmptyQuery(t *testing.T) {
	e, _ := newTestEngine(t)

	_, err := e.HandleQuery(context.Background(), "sess-1", "   ")
	if !errors.Is(err, classifier.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestEngine_HandleQuery_UnknownFallsBackToGeneric(t *testing.T) {
	e, _ := newTestEngine(t)

	response, err := e.HandleQuery(context.Background(), "sess-1", "zzzz qqqq xyzzy")
	if err != nil {
		t.Fatalf("HandleQuery failed: %v", err)
	}

	if response.Domain != routes.DomainUnknown {
		t.Errorf("expected unknown domain, got %s", response.Domain)
	}
	if !response.Fallback {
		t.Error("expected generic-guidance fallback")
	}
	if len(response.Routes) != 1 || response.Routes[0].Type != routes.RouteTypeGeneric {
		t.Errorf("expected one generic route, got %+v", response.Routes)
	}
}

func TestEngine_HandleQuery_FallbackRecordsPolicyVisit(t *testing.T) {
	e, _ := newTestEngine(t)

	response, err := e.HandleQuery(context.Background(), "sess-1", "zzzz qqqq xyzzy")
	if err != nil {
		t.Fatalf("HandleQuery failed: %v", err)
	}
	if !response.Fallback {
		t.Fatal("expected generic-guidance fallback")
	}
	if response.Action != policy.GenericAction() {
		t.Errorf("expected the generic action, got %+v", response.Action)
	}

	// The policy still runs over the generic action, so the fallback
	// state accrues visits like any other.
	state := policy.DeriveState(routes.DomainUnknown, 0, 0)
	snap := e.policy.Snapshot(0)
	sv, ok := snap.States[state.Key()]
	if !ok || sv.Visits != 1 {
		t.Fatalf("expected one visit for the fallback state, got %+v", sv)
	}
	if av := sv.Actions[policy.GenericAction().Key()]; av.Visits != 1 {
		t.Errorf("expected one generic-action visit, got %+v", av)
	}
}

func TestEngine_HandleQuery_ReturningIsPerDomain(t *testing.T) {
	e, st := newTestEngine(t)
	ctx := context.Background()

	first, err := e.HandleQuery(ctx, "sess-dom", "I want to file for divorce")
	if err != nil {
		t.Fatalf("HandleQuery failed: %v", err)
	}
	rec, err := st.GetInteraction(ctx, first.InteractionID)
	if err != nil {
		t.Fatalf("GetInteraction failed: %v", err)
	}
	if rec.State.Returning {
		t.Error("first family query should not be returning")
	}

	// A first query in a different domain is still a new domain for
	// this session.
	second, err := e.HandleQuery(ctx, "sess-dom", "I was arrested and charged with a crime")
	if err != nil {
		t.Fatalf("HandleQuery failed: %v", err)
	}
	if second.Domain != routes.DomainCriminal {
		t.Fatalf("expected criminal domain, got %s", second.Domain)
	}
	rec, err = st.GetInteraction(ctx, second.InteractionID)
	if err != nil {
		t.Fatalf("GetInteraction failed: %v", err)
	}
	if rec.State.Returning {
		t.Error("first criminal query should not be returning")
	}

	third, err := e.HandleQuery(ctx, "sess-dom", "child custody battle with my ex")
	if err != nil {
		t.Fatalf("HandleQuery failed: %v", err)
	}
	if third.Domain != routes.DomainFamily {
		t.Fatalf("expected family domain, got %s", third.Domain)
	}
	rec, err = st.GetInteraction(ctx, third.InteractionID)
	if err != nil {
		t.Fatalf("GetInteraction failed: %v", err)
	}
	if !rec.State.Returning {
		t.Error("second family query should be returning")
	}
}

func TestEngine_HandleQuery_GeneratesSessionID(t *testing.T) {
	e, _ := newTestEngine(t)

	response, err := e.HandleQuery(context.Background(), "", "I want to file for divorce")
	if err != nil {
		t.Fatalf("HandleQuery failed: %v", err)
	}
	if response.SessionID == "" {
		t.Error("expected a generated session ID")
	}
}

func TestEngine_HandleQuery_BriefVsDetailed(t *testing.T) {
	e, _ := newTestEngine(t)

	// Across enough queries both depths appear; every brief response
	// has exactly one route while detailed ones may carry more.
	for i := 0; i < 20; i++ {
		response, err := e.HandleQuery(context.Background(), "sess-1", "I want to file for divorce")
		if err != nil {
			t.Fatalf("HandleQuery failed: %v", err)
		}
		if response.Action.Depth == policy.DepthBrief && len(response.Routes) != 1 {
			t.Errorf("expected 1 route for brief depth, got %d", len(response.Routes))
		}
		if !response.Action.IncludeGlossary && response.Glossary != nil {
			t.Error("expected no glossary when the action excludes it")
		}
	}
}

func TestEngine_RecordFeedback(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	response, err := e.HandleQuery(ctx, "sess-1", "I want to file for divorce")
	if err != nil {
		t.Fatalf("HandleQuery failed: %v", err)
	}

	result, err := e.RecordFeedback(ctx, response.InteractionID, "up", 60)
	if err != nil {
		t.Fatalf("RecordFeedback failed: %v", err)
	}
	if result.Reward <= 1.0 || result.Reward > 1.5 {
		t.Errorf("expected reward in (1.0, 1.5], got %v", result.Reward)
	}

	// Feedback is write-once.
	_, err = e.RecordFeedback(ctx, response.InteractionID, "down", 0)
	if !errors.Is(err, feedback.ErrDuplicateFeedback) {
		t.Fatalf("expected ErrDuplicateFeedback, got %v", err)
	}

	// The upvoted query is queued for retraining.
	if e.PendingExamples() != 1 {
		t.Errorf("expected 1 pending example, got %d", e.PendingExamples())
	}
}

func TestEngine_RecordFeedback_UnknownInteraction(t *testing.T) {
	e, _ := newTestEngine(t)

	_, err := e.RecordFeedback(context.Background(), "nonexistent", "up", 10)
	if !errors.Is(err, feedback.ErrUnknownInteraction) {
		t.Fatalf("expected ErrUnknownInteraction, got %v", err)
	}
}

func TestEngine_RecordFeedback_InvalidVote(t *testing.T) {
	e, _ := newTestEngine(t)

	_, err := e.RecordFeedback(context.Background(), "int-1", "meh", 10)
	if !errors.Is(err, feedback.ErrInvalidVote) {
		t.Fatalf("expected ErrInvalidVote, got %v", err)
	}
}

func TestEngine_GetSessionSummary(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	first, err := e.HandleQuery(ctx, "sess-1", "I want to file for divorce")
	if err != nil {
		t.Fatalf("HandleQuery failed: %v", err)
	}
	if _, err := e.HandleQuery(ctx, "sess-1", "my landlord will not return my security deposit"); err != nil {
		t.Fatalf("HandleQuery failed: %v", err)
	}
	if _, err := e.RecordFeedback(ctx, first.InteractionID, "up", 30); err != nil {
		t.Fatalf("RecordFeedback failed: %v", err)
	}

	summary, err := e.GetSessionSummary(ctx, "sess-1")
	if err != nil {
		t.Fatalf("GetSessionSummary failed: %v", err)
	}

	if summary.InteractionCount != 2 {
		t.Errorf("expected 2 interactions, got %d", summary.InteractionCount)
	}
	if summary.FeedbackCount != 1 {
		t.Errorf("expected 1 feedback, got %d", summary.FeedbackCount)
	}
	if summary.SatisfactionRate != 1.0 {
		t.Errorf("expected satisfaction rate 1.0, got %v", summary.SatisfactionRate)
	}
	if summary.DomainBreakdown[routes.DomainFamily] != 1 {
		t.Errorf("unexpected domain breakdown: %+v", summary.DomainBreakdown)
	}
}

func TestEngine_GetSessionSummary_EmptySession(t *testing.T) {
	e, _ := newTestEngine(t)

	summary, err := e.GetSessionSummary(context.Background(), "no-such-session")
	if err != nil {
		t.Fatalf("GetSessionSummary failed: %v", err)
	}
	if summary.InteractionCount != 0 || summary.FeedbackCount != 0 {
		t.Errorf("expected empty summary, got %+v", summary)
	}
}

func TestEngine_Retrain_InsufficientExamples(t *testing.T) {
	e, _ := newTestEngine(t)

	_, err := e.Retrain(context.Background(), false)
	if !errors.Is(err, classifier.ErrInsufficientExamples) {
		t.Fatalf("expected ErrInsufficientExamples, got %v", err)
	}
}

func TestEngine_Retrain_ForcePersistsSnapshot(t *testing.T) {
	e, st := newTestEngine(t)
	ctx := context.Background()

	before := e.classifier.Snapshot().Version

	snap, err := e.Retrain(ctx, true)
	if err != nil {
		t.Fatalf("Retrain failed: %v", err)
	}
	if snap.Version != before+1 {
		t.Errorf("expected version %d, got %d", before+1, snap.Version)
	}
	if e.classifier.Snapshot().Version != snap.Version {
		t.Error("expected the classifier to serve the new snapshot")
	}

	blob, err := st.LoadSnapshot(ctx, store.SnapshotModel)
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
	if blob.Version != snap.Version {
		t.Errorf("expected persisted version %d, got %d", snap.Version, blob.Version)
	}
}

func TestEngine_StartRestoresSnapshots(t *testing.T) {
	first, st := newTestEngine(t)
	ctx := context.Background()

	if _, err := first.Retrain(ctx, true); err != nil {
		t.Fatalf("Retrain failed: %v", err)
	}
	restoredVersion := first.classifier.Snapshot().Version

	// A fresh engine over the same store picks up the persisted model.
	trainerCfg := classifier.DefaultTrainerConfig()
	trainerCfg.Seed = 42
	second := New(DefaultConfig(), st,
		classifier.New(seedSnapshot(t), classifier.DefaultConfig(), nil),
		classifier.NewTrainer(classifier.SeedExamples(), trainerCfg, nil),
		routes.NewSelector(nil, nil),
		policy.New(policy.DefaultConfig(), nil),
	)

	if err := second.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer second.Stop(ctx)

	if second.classifier.Snapshot().Version != restoredVersion {
		t.Errorf("expected restored version %d, got %d",
			restoredVersion, second.classifier.Snapshot().Version)
	}
}

func TestEngine_StopWritesFinalCheckpoint(t *testing.T) {
	e, st := newTestEngine(t)
	ctx := context.Background()

	if err := e.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if _, err := e.HandleQuery(ctx, "sess-1", "I want to file for divorce"); err != nil {
		t.Fatalf("HandleQuery failed: %v", err)
	}
	if err := e.Stop(ctx); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}

	blob, err := st.LoadSnapshot(ctx, store.SnapshotPolicy)
	if err != nil {
		t.Fatalf("expected a policy checkpoint, got %v", err)
	}
	if _, err := policy.UnmarshalSnapshot(blob.Data); err != nil {
		t.Fatalf("checkpoint unmarshal failed: %v", err)
	}
}

func TestEngine_DoubleStart(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	if err := e.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer e.Stop(ctx)

	if err := e.Start(ctx); err == nil {
		t.Fatal("expected error on double start")
	}
}

func TestEngine_RetrainSingleFlight(t *testing.T) {
	e, _ := newTestEngine(t)

	e.retraining.Store(true)
	defer e.retraining.Store(false)

	_, err := e.Retrain(context.Background(), true)
	if !errors.Is(err, ErrRetrainInProgress) {
		t.Fatalf("expected ErrRetrainInProgress, got %v", err)
	}
}

// failingSnapshotStore rejects every snapshot write.
type failingSnapshotStore struct {
	store.Store
}

func (f *failingSnapshotStore) SaveSnapshot(ctx context.Context, blob *store.SnapshotBlob) error {
	return errors.New("snapshot write failed")
}

func TestEngine_Retrain_PersistFailureRequeuesExamples(t *testing.T) {
	trainerCfg := classifier.DefaultTrainerConfig()
	trainerCfg.Seed = 42

	cfg := DefaultConfig()
	cfg.RetrainMinExamples = 1000

	e := New(cfg, &failingSnapshotStore{Store: storememory.NewMemoryStore()},
		classifier.New(seedSnapshot(t), classifier.DefaultConfig(), nil),
		classifier.NewTrainer(classifier.SeedExamples(), trainerCfg, nil),
		routes.NewSelector(nil, nil),
		policy.New(policy.DefaultConfig(), nil),
	)

	e.queue.Add(classifier.Example{
		Text:   "landlord refuses to return my security deposit",
		Domain: routes.DomainProperty,
	})
	before := e.classifier.Snapshot().Version

	_, err := e.Retrain(context.Background(), true)
	if err == nil {
		t.Fatal("expected persist failure to surface")
	}
	if e.classifier.Snapshot().Version != before {
		t.Error("expected the previous snapshot to keep serving")
	}
	if e.PendingExamples() != 1 {
		t.Errorf("expected the drained example back on the queue, got %d pending", e.PendingExamples())
	}
}

func TestEngine_QueryLatency(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	started := time.Now()
	for i := 0; i < 10; i++ {
		if _, err := e.HandleQuery(ctx, "sess-1", "I want to file for divorce"); err != nil {
			t.Fatalf("HandleQuery failed: %v", err)
		}
	}
	if elapsed := time.Since(started); elapsed > 5*time.Second {
		t.Errorf("10 queries took %v", elapsed)
	}
}
