package classifier

import (
	"context"
	"math"
	"testing"

	"github.com/lexroute/lexroute/pkg/routes"
)

func trainedSnapshot(t *testing.T) *Snapshot {
	t.Helper()
	cfg := DefaultTrainerConfig()
	cfg.Seed = 42
	trainer := NewTrainer(SeedExamples(), cfg, nil)
	snap, err := trainer.Train(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("training seed corpus failed: %v", err)
	}
	return snap
}

func TestClassifier_Classify_FamilyQuery(t *testing.T) {
	c := New(trainedSnapshot(t), DefaultConfig(), nil)

	result, err := c.Classify("I want to file for divorce")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Domain != routes.DomainFamily {
		t.Errorf("expected family_law, got %v (confidence %v)", result.Domain, result.Confidence)
	}
	if result.Confidence <= 0.3 {
		t.Errorf("expected confidence > 0.3, got %v", result.Confidence)
	}
}

func TestClassifier_Classify_EmptyInput(t *testing.T) {
	c := New(trainedSnapshot(t), DefaultConfig(), nil)

	for _, input := range []string{"", "   ", "\t\n"} {
		_, err := c.Classify(input)
		if err != ErrInvalidInput {
			t.Errorf("Classify(%q): expected ErrInvalidInput, got %v", input, err)
		}
	}
}

func TestClassifier_Classify_NoSnapshot(t *testing.T) {
	c := New(nil, DefaultConfig(), nil)

	_, err := c.Classify("divorce")
	if err != ErrNoSnapshot {
		t.Errorf("expected ErrNoSnapshot, got %v", err)
	}
}

func TestClassifier_Classify_ConfidenceIsMaxScore(t *testing.T) {
	c := New(trainedSnapshot(t), DefaultConfig(), nil)

	result, err := c.Classify("my landlord will not return my security deposit")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	maxScore := math.Inf(-1)
	for _, score := range result.Scores {
		if score > maxScore {
			maxScore = score
		}
	}
	if result.Confidence != maxScore {
		t.Errorf("confidence %v != max score %v", result.Confidence, maxScore)
	}
}

func TestClassifier_Classify_BelowThresholdIsUnknown(t *testing.T) {
	snap := trainedSnapshot(t)
	cfg := DefaultConfig()
	cfg.ConfidenceThreshold = 0.99 // force unknown
	c := New(snap, cfg, nil)

	result, err := c.Classify("hello there")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Domain != routes.DomainUnknown {
		t.Errorf("expected unknown domain, got %v", result.Domain)
	}
	if len(result.Scores) == 0 {
		t.Error("expected full score map even below threshold")
	}
}

func TestClassifier_Classify_Deterministic(t *testing.T) {
	c := New(trainedSnapshot(t), DefaultConfig(), nil)

	first, err := c.Classify("charged with felony assault")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := c.Classify("charged with felony assault")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if again.Domain != first.Domain || again.Confidence != first.Confidence {
			t.Fatalf("classification not deterministic: %v/%v vs %v/%v",
				first.Domain, first.Confidence, again.Domain, again.Confidence)
		}
	}
}

func TestClassifier_Swap(t *testing.T) {
	snap := trainedSnapshot(t)
	c := New(snap, DefaultConfig(), nil)

	next := *snap
	next.Version = snap.Version + 1
	c.Swap(&next)

	result, err := c.Classify("divorce filing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.SnapshotVersion != next.Version {
		t.Errorf("expected snapshot version %d, got %d", next.Version, result.SnapshotVersion)
	}

	// nil swap is a no-op
	c.Swap(nil)
	if c.Snapshot().Version != next.Version {
		t.Error("expected nil swap to leave snapshot unchanged")
	}
}

func TestClassifier_UpdateConfig(t *testing.T) {
	c := New(trainedSnapshot(t), DefaultConfig(), nil)

	c.UpdateConfig(Config{ConfidenceThreshold: 0.99, PosteriorWeight: 1.0})

	result, err := c.Classify("random unrelated text about cooking")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Domain != routes.DomainUnknown {
		t.Errorf("expected raised threshold to force unknown, got %v", result.Domain)
	}
}

func TestBayesModel_PosteriorSumsToOne(t *testing.T) {
	snap := trainedSnapshot(t)

	vec := snap.Vectorizer.Transform("visa application denied")
	posterior := snap.Model.Posterior(vec)

	var sum float64
	for _, p := range posterior {
		if p < 0 || p > 1 {
			t.Errorf("posterior %v out of [0,1]", p)
		}
		sum += p
	}
	if math.Abs(sum-1.0) > 1e-9 {
		t.Errorf("posterior sums to %v, want 1", sum)
	}
}

func TestScoringStrategies(t *testing.T) {
	snap := trainedSnapshot(t)
	vec := snap.Vectorizer.Transform("irs audit of my tax return")

	for _, strategy := range []ScoringStrategy{
		PosteriorStrategy{},
		SimilarityStrategy{},
		BlendedStrategy{Weight: 0.5},
	} {
		scores := strategy.Score(snap, vec)
		if len(scores) == 0 {
			t.Errorf("%s: expected non-empty scores", strategy.Name())
			continue
		}

		best := routes.DomainUnknown
		bestScore := math.Inf(-1)
		for d, score := range scores {
			if score > bestScore {
				bestScore = score
				best = d
			}
		}
		if best != routes.DomainTax {
			t.Errorf("%s: expected tax_law top score, got %v", strategy.Name(), best)
		}
	}
}

func TestBlendedStrategy_WeightExtremes(t *testing.T) {
	snap := trainedSnapshot(t)
	vec := snap.Vectorizer.Transform("deportation proceedings")

	posteriorOnly := BlendedStrategy{Weight: 1.0}.Score(snap, vec)
	posterior := PosteriorStrategy{}.Score(snap, vec)
	for d, p := range posterior {
		if math.Abs(posteriorOnly[d]-p) > 1e-9 {
			t.Errorf("weight=1 blend diverges from posterior for %v", d)
		}
	}

	simOnly := BlendedStrategy{Weight: 0.0}.Score(snap, vec)
	sims := SimilarityStrategy{}.Score(snap, vec)
	for d, s := range sims {
		if math.Abs(simOnly[d]-s) > 1e-9 {
			t.Errorf("weight=0 blend diverges from similarity for %v", d)
		}
	}
}

func TestSnapshot_MarshalRoundTrip(t *testing.T) {
	snap := trainedSnapshot(t)

	data, err := snap.Marshal()
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	restored, err := UnmarshalSnapshot(data)
	if err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if restored.Version != snap.Version || restored.Fingerprint != snap.Fingerprint {
		t.Error("snapshot metadata not preserved")
	}

	// Restored snapshot must classify identically.
	orig := New(snap, DefaultConfig(), nil)
	loaded := New(restored, DefaultConfig(), nil)

	for _, query := range []string{
		"I want to file for divorce",
		"irs audit of my tax return",
		"slip and fall accident at shopping mall",
	} {
		a, err := orig.Classify(query)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		b, err := loaded.Classify(query)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if a.Domain != b.Domain {
			t.Errorf("query %q: original %v, restored %v", query, a.Domain, b.Domain)
		}
		if math.Abs(a.Confidence-b.Confidence) > 1e-9 {
			t.Errorf("query %q: confidence drifted %v -> %v", query, a.Confidence, b.Confidence)
		}
	}
}

func TestUnmarshalSnapshot_Invalid(t *testing.T) {
	if _, err := UnmarshalSnapshot([]byte("not json")); err == nil {
		t.Error("expected error for malformed snapshot")
	}
	if _, err := UnmarshalSnapshot([]byte("{}")); err == nil {
		t.Error("expected error for snapshot missing components")
	}
}
