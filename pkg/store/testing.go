package store

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/lexroute/lexroute/pkg/policy"
	"github.com/lexroute/lexroute/pkg/routes"
)

// StoreTestSuite defines a test suite that can be run against any
// Store implementation.
type StoreTestSuite struct {
	NewStore func(t *testing.T) Store
}

// RunAllTests runs all store tests against the provided implementation.
func (s *StoreTestSuite) RunAllTests(t *testing.T) {
	t.Run("AppendAndGet", s.TestAppendAndGet)
	t.Run("AppendDuplicate", s.TestAppendDuplicate)
	t.Run("InteractionNotFound", s.TestInteractionNotFound)
	t.Run("RewardWriteOnce", s.TestRewardWriteOnce)
	t.Run("RewardUnknownInteraction", s.TestRewardUnknownInteraction)
	t.Run("SessionListing", s.TestSessionListing)
	t.Run("Aggregates", s.TestAggregates)
	t.Run("Snapshots", s.TestSnapshots)
	t.Run("ConcurrentAppends", s.TestConcurrentAppends)
}

func testRecord(id, sessionID string) *InteractionRecord {
	return &InteractionRecord{
		InteractionID:   id,
		SessionID:       sessionID,
		Query:           "I want to file for divorce",
		Domain:          routes.DomainFamily,
		Confidence:      0.82,
		Scores:          map[routes.Domain]float64{routes.DomainFamily: 0.82},
		SnapshotVersion: 1,
		State: policy.State{
			Domain: routes.DomainFamily,
			Bucket: policy.BucketNeutral,
		},
		Action: policy.Action{
			RouteType: routes.RouteTypeFiling,
			Depth:     policy.DepthBrief,
		},
		CreatedAt: time.Now().UTC(),
	}
}

// TestAppendAndGet tests the basic interaction round trip.
func (s *StoreTestSuite) TestAppendAndGet(t *testing.T) {
	st := s.NewStore(t)
	defer st.Close()
	ctx := context.Background()

	rec := testRecord("int-1", "sess-1")
	if err := st.AppendInteraction(ctx, rec); err != nil {
		t.Fatalf("AppendInteraction failed: %v", err)
	}

	got, err := st.GetInteraction(ctx, "int-1")
	if err != nil {
		t.Fatalf("GetInteraction failed: %v", err)
	}
	if got.Query != rec.Query {
		t.Errorf("expected query %q, got %q", rec.Query, got.Query)
	}
	if got.Domain != routes.DomainFamily {
		t.Errorf("expected domain family, got %s", got.Domain)
	}
	if got.Feedback != nil {
		t.Error("expected no feedback on a fresh record")
	}
	if got.Scores[routes.DomainFamily] != 0.82 {
		t.Errorf("expected score 0.82, got %v", got.Scores[routes.DomainFamily])
	}
}

// TestAppendDuplicate tests that interaction IDs are unique.
func (s *StoreTestSuite) TestAppendDuplicate(t *testing.T) {
	st := s.NewStore(t)
	defer st.Close()
	ctx := context.Background()

	if err := st.AppendInteraction(ctx, testRecord("int-1", "sess-1")); err != nil {
		t.Fatalf("AppendInteraction failed: %v", err)
	}

	err := st.AppendInteraction(ctx, testRecord("int-1", "sess-1"))
	if !IsDuplicate(err) {
		t.Fatalf("expected DuplicateKeyError, got %v", err)
	}
}

// TestInteractionNotFound tests lookups of unknown IDs.
func (s *StoreTestSuite) TestInteractionNotFound(t *testing.T) {
	st := s.NewStore(t)
	defer st.Close()

	_, err := st.GetInteraction(context.Background(), "nonexistent")
	if !IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

// TestRewardWriteOnce tests that feedback can be recorded exactly once.
func (s *StoreTestSuite) TestRewardWriteOnce(t *testing.T) {
	st := s.NewStore(t)
	defer st.Close()
	ctx := context.Background()

	if err := st.AppendInteraction(ctx, testRecord("int-1", "sess-1")); err != nil {
		t.Fatalf("AppendInteraction failed: %v", err)
	}

	fb := &FeedbackRecord{Vote: "up", DwellSeconds: 60, Reward: 1.25}
	got, err := st.SetReward(ctx, "int-1", fb)
	if err != nil {
		t.Fatalf("SetReward failed: %v", err)
	}
	if got.Feedback == nil || got.Feedback.Reward != 1.25 {
		t.Fatalf("expected reward 1.25 on returned record, got %+v", got.Feedback)
	}
	if got.Feedback.RecordedAt.IsZero() {
		t.Error("expected RecordedAt to be set")
	}

	_, err = st.SetReward(ctx, "int-1", fb)
	if !IsDuplicate(err) {
		t.Fatalf("expected DuplicateKeyError on second reward, got %v", err)
	}

	// The stored record carries the first feedback.
	stored, err := st.GetInteraction(ctx, "int-1")
	if err != nil {
		t.Fatalf("GetInteraction failed: %v", err)
	}
	if stored.Feedback == nil || stored.Feedback.Reward != 1.25 {
		t.Errorf("expected persisted reward 1.25, got %+v", stored.Feedback)
	}
}

// TestRewardUnknownInteraction tests feedback against a missing record.
func (s *StoreTestSuite) TestRewardUnknownInteraction(t *testing.T) {
	st := s.NewStore(t)
	defer st.Close()

	_, err := st.SetReward(context.Background(), "nonexistent", &FeedbackRecord{Vote: "up"})
	if !IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

// TestSessionListing tests chronological listing and counting.
func (s *StoreTestSuite) TestSessionListing(t *testing.T) {
	st := s.NewStore(t)
	defer st.Close()
	ctx := context.Background()

	base := time.Now().UTC()
	for i := 0; i < 5; i++ {
		rec := testRecord(fmt.Sprintf("int-%d", i), "sess-1")
		rec.CreatedAt = base.Add(time.Duration(i) * time.Second)
		if err := st.AppendInteraction(ctx, rec); err != nil {
			t.Fatalf("AppendInteraction failed: %v", err)
		}
	}
	if err := st.AppendInteraction(ctx, testRecord("other", "sess-2")); err != nil {
		t.Fatalf("AppendInteraction failed: %v", err)
	}

	count, err := st.CountBySession(ctx, "sess-1")
	if err != nil {
		t.Fatalf("CountBySession failed: %v", err)
	}
	if count != 5 {
		t.Errorf("expected 5 interactions, got %d", count)
	}

	records, err := st.ListBySession(ctx, "sess-1", 0)
	if err != nil {
		t.Fatalf("ListBySession failed: %v", err)
	}
	if len(records) != 5 {
		t.Fatalf("expected 5 records, got %d", len(records))
	}
	for i, rec := range records {
		if rec.InteractionID != fmt.Sprintf("int-%d", i) {
			t.Errorf("expected chronological order, got %q at %d", rec.InteractionID, i)
		}
	}

	// Limit returns the most recent records.
	tail, err := st.ListBySession(ctx, "sess-1", 2)
	if err != nil {
		t.Fatalf("ListBySession failed: %v", err)
	}
	if len(tail) != 2 || tail[1].InteractionID != "int-4" {
		t.Errorf("expected the 2 newest records, got %+v", tail)
	}

	empty, err := st.ListBySession(ctx, "no-such-session", 0)
	if err != nil {
		t.Fatalf("ListBySession failed: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("expected empty list for unknown session, got %d", len(empty))
	}
}

// TestAggregates tests the aggregate round trip.
func (s *StoreTestSuite) TestAggregates(t *testing.T) {
	st := s.NewStore(t)
	defer st.Close()
	ctx := context.Background()

	_, err := st.GetAggregate(ctx, "sess-1")
	if !IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}

	agg := &SessionAggregate{
		SessionID:    "sess-1",
		Interactions: 3,
		Feedbacks:    2,
		RewardSum:    1.5,
		Satisfaction: 0.2,
		DomainCounts: map[routes.Domain]int{routes.DomainFamily: 2, routes.DomainTax: 1},
		LastSeen:     time.Now().UTC(),
	}
	if err := st.PutAggregate(ctx, agg); err != nil {
		t.Fatalf("PutAggregate failed: %v", err)
	}

	got, err := st.GetAggregate(ctx, "sess-1")
	if err != nil {
		t.Fatalf("GetAggregate failed: %v", err)
	}
	if got.Interactions != 3 || got.Feedbacks != 2 {
		t.Errorf("unexpected aggregate: %+v", got)
	}
	if got.DomainCounts[routes.DomainFamily] != 2 {
		t.Errorf("expected 2 family visits, got %d", got.DomainCounts[routes.DomainFamily])
	}
	if got.MeanReward() != 0.75 {
		t.Errorf("expected mean reward 0.75, got %v", got.MeanReward())
	}
}

// TestSnapshots tests snapshot save/load per kind.
func (s *StoreTestSuite) TestSnapshots(t *testing.T) {
	st := s.NewStore(t)
	defer st.Close()
	ctx := context.Background()

	_, err := st.LoadSnapshot(ctx, SnapshotPolicy)
	if !IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}

	for version := int64(1); version <= 3; version++ {
		blob := &SnapshotBlob{
			Kind:    SnapshotPolicy,
			Version: version,
			Data:    []byte(fmt.Sprintf("policy-v%d", version)),
		}
		if err := st.SaveSnapshot(ctx, blob); err != nil {
			t.Fatalf("SaveSnapshot failed: %v", err)
		}
	}
	if err := st.SaveSnapshot(ctx, &SnapshotBlob{Kind: SnapshotModel, Version: 1, Data: []byte("model-v1")}); err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}

	got, err := st.LoadSnapshot(ctx, SnapshotPolicy)
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
	if got.Version != 3 || string(got.Data) != "policy-v3" {
		t.Errorf("expected latest policy snapshot, got v%d %q", got.Version, got.Data)
	}
	if got.SavedAt.IsZero() {
		t.Error("expected SavedAt to be set")
	}

	model, err := st.LoadSnapshot(ctx, SnapshotModel)
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
	if string(model.Data) != "model-v1" {
		t.Errorf("expected model snapshot, got %q", model.Data)
	}
}

// TestConcurrentAppends tests concurrent log appends.
func (s *StoreTestSuite) TestConcurrentAppends(t *testing.T) {
	st := s.NewStore(t)
	defer st.Close()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rec := testRecord(fmt.Sprintf("int-%d", i), "sess-1")
			if err := st.AppendInteraction(ctx, rec); err != nil {
				t.Errorf("AppendInteraction failed: %v", err)
			}
		}(i)
	}
	wg.Wait()

	count, err := st.CountBySession(ctx, "sess-1")
	if err != nil {
		t.Fatalf("CountBySession failed: %v", err)
	}
	if count != 20 {
		t.Errorf("expected 20 interactions, got %d", count)
	}
}
