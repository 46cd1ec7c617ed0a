package classifier

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/lexroute/lexroute/pkg/routes"
)

// corruptedSeed returns the seed corpus with the labels shuffled across
// examples, destroying the text-label correlation so holdout accuracy
// lands near chance.
func corruptedSeed() []Example {
	seed := SeedExamples()
	corrupted := make([]Example, len(seed))
	copy(corrupted, seed)

	rng := rand.New(rand.NewSource(99))
	rng.Shuffle(len(corrupted), func(i, j int) {
		corrupted[i].Domain, corrupted[j].Domain = corrupted[j].Domain, corrupted[i].Domain
	})
	return corrupted
}

func TestTrainer_Train_Succeeds(t *testing.T) {
	cfg := DefaultTrainerConfig()
	cfg.Seed = 7
	trainer := NewTrainer(SeedExamples(), cfg, nil)

	snap, err := trainer.Train(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if snap.Version != 1 {
		t.Errorf("expected version 1, got %d", snap.Version)
	}
	if snap.Accuracy <= 0 || snap.Accuracy > 1 {
		t.Errorf("accuracy %v outside (0, 1]", snap.Accuracy)
	}
	if snap.Fingerprint == "" {
		t.Error("expected non-empty fingerprint")
	}
	if snap.Examples.Len() == 0 {
		t.Error("expected populated example index")
	}
}

func TestTrainer_Train_BootstrapHasNoFloor(t *testing.T) {
	cfg := DefaultTrainerConfig()
	cfg.Seed = 7
	trainer := NewTrainer(corruptedSeed(), cfg, nil)

	// Shuffled labels keep holdout accuracy near chance, but the first
	// fit has no baseline and must still produce a serving snapshot.
	snap, err := trainer.Train(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.Accuracy >= cfg.AccuracyFloor {
		t.Fatalf("expected near-chance accuracy, got %v", snap.Accuracy)
	}

	// A retrain against a strong baseline is where the floor binds.
	prev := &Snapshot{Version: snap.Version, Accuracy: 0.95}
	if _, err := trainer.Train(context.Background(), nil, prev); !errors.Is(err, ErrTrainingFailed) {
		t.Fatalf("expected ErrTrainingFailed, got %v", err)
	}
}

func TestTrainer_Train_VersionIncrements(t *testing.T) {
	cfg := DefaultTrainerConfig()
	cfg.Seed = 7
	trainer := NewTrainer(SeedExamples(), cfg, nil)

	first, err := trainer.Train(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := trainer.Train(context.Background(), nil, first)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.Version != first.Version+1 {
		t.Errorf("expected version %d, got %d", first.Version+1, second.Version)
	}
}

func TestTrainer_Train_DeterministicFingerprint(t *testing.T) {
	cfg := DefaultTrainerConfig()
	cfg.Seed = 7
	trainer := NewTrainer(SeedExamples(), cfg, nil)

	a, err := trainer.Train(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := trainer.Train(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if a.Fingerprint != b.Fingerprint {
		t.Error("expected identical fingerprints for identical training sets")
	}
	if a.Accuracy != b.Accuracy {
		t.Errorf("expected identical accuracy with fixed seed, got %v and %v", a.Accuracy, b.Accuracy)
	}
}

func TestTrainer_Train_DegradedLabelsRejected(t *testing.T) {
	cfg := DefaultTrainerConfig()
	cfg.Seed = 7

	// Train a good snapshot first.
	good, err := NewTrainer(SeedExamples(), cfg, nil).Train(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c := New(good, DefaultConfig(), nil)

	before, err := c.Classify("I want to file for divorce")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Retrain on shuffled labels must regress past the margin.
	_, err = NewTrainer(corruptedSeed(), cfg, nil).Train(context.Background(), nil, good)
	if !errors.Is(err, ErrTrainingFailed) {
		t.Fatalf("expected ErrTrainingFailed, got %v", err)
	}

	// The active snapshot is untouched; classification is unchanged.
	after, err := c.Classify("I want to file for divorce")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if after.Domain != before.Domain || after.Confidence != before.Confidence {
		t.Error("expected classification unchanged after rejected retrain")
	}
	if after.SnapshotVersion != good.Version {
		t.Errorf("expected snapshot version %d, got %d", good.Version, after.SnapshotVersion)
	}
}

func TestTrainer_Train_RegressionMargin(t *testing.T) {
	cfg := DefaultTrainerConfig()
	cfg.Seed = 7
	trainer := NewTrainer(corruptedSeed(), cfg, nil)

	// A previous snapshot with near-perfect accuracy raises the floor
	// above anything shuffled labels can reach.
	prev := &Snapshot{Version: 3, Accuracy: 0.95}
	_, err := trainer.Train(context.Background(), nil, prev)
	if !errors.Is(err, ErrTrainingFailed) {
		t.Fatalf("expected ErrTrainingFailed, got %v", err)
	}
}

func TestTrainer_Train_TooFewExamples(t *testing.T) {
	cfg := DefaultTrainerConfig()
	trainer := NewTrainer([]Example{
		{Text: "divorce", Domain: routes.DomainFamily},
	}, cfg, nil)

	_, err := trainer.Train(context.Background(), nil, nil)
	if !errors.Is(err, ErrInsufficientExamples) {
		t.Fatalf("expected ErrInsufficientExamples, got %v", err)
	}
}

func TestTrainer_Train_Cancelled(t *testing.T) {
	cfg := DefaultTrainerConfig()
	cfg.Seed = 7
	trainer := NewTrainer(SeedExamples(), cfg, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := trainer.Train(ctx, nil, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestTrainer_Train_MergesExtraExamples(t *testing.T) {
	cfg := DefaultTrainerConfig()
	cfg.Seed = 7
	trainer := NewTrainer(SeedExamples(), cfg, nil)

	extra := []Example{
		{Text: "notary refused to witness my will signing", Domain: routes.DomainProperty},
	}
	withExtra, err := trainer.Train(context.Background(), extra, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	withoutExtra, err := trainer.Train(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if withExtra.Fingerprint == withoutExtra.Fingerprint {
		t.Error("expected extra examples to change the fingerprint")
	}
}

func TestTrainer_Train_UnknownLabel(t *testing.T) {
	cfg := DefaultTrainerConfig()
	cfg.Seed = 7
	trainer := NewTrainer(SeedExamples(), cfg, nil)

	extra := []Example{{Text: "mystery question", Domain: routes.Domain("space_law")}}
	if _, err := trainer.Train(context.Background(), extra, nil); err == nil {
		t.Error("expected error for unknown training label")
	}
}
