package classifier

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/lexroute/lexroute/pkg/logger"
	"github.com/lexroute/lexroute/pkg/routes"
)

// TrainerConfig holds retraining tunables.
type TrainerConfig struct {
	// Smoothing is the Lidstone constant for the bayes model.
	Smoothing float64

	// HoldoutFraction is the share of examples held out for validation.
	HoldoutFraction float64

	// AccuracyFloor is the minimum holdout accuracy enforced on
	// retrains whose previous snapshot meets it. The bootstrap fit has
	// no baseline and is exempt.
	AccuracyFloor float64

	// RegressionMargin is how far below the previous snapshot's accuracy
	// a new snapshot may fall before being rejected.
	RegressionMargin float64

	// Seed fixes the shuffle and split for deterministic training.
	// Zero means time-based.
	Seed int64
}

// DefaultTrainerConfig returns the standard retraining tunables.
func DefaultTrainerConfig() TrainerConfig {
	return TrainerConfig{
		Smoothing:        0.1,
		HoldoutFraction:  0.2,
		AccuracyFloor:    0.5,
		RegressionMargin: 0.05,
	}
}

// Trainer fits model snapshots from the seed corpus merged with
// feedback-derived labels. Training runs off the request path; the
// caller swaps the returned snapshot into the classifier.
type Trainer struct {
	cfg    TrainerConfig
	seed   []Example
	logger logger.Logger
}

// NewTrainer creates a trainer over the given seed corpus.
func NewTrainer(seed []Example, cfg TrainerConfig, log logger.Logger) *Trainer {
	if log == nil {
		log = logger.Global()
	}
	if cfg.Smoothing <= 0 {
		cfg.Smoothing = DefaultTrainerConfig().Smoothing
	}
	if cfg.HoldoutFraction <= 0 || cfg.HoldoutFraction > 0.5 {
		cfg.HoldoutFraction = DefaultTrainerConfig().HoldoutFraction
	}
	return &Trainer{cfg: cfg, seed: seed, logger: log}
}

// Train fits a new snapshot from the seed corpus plus extra examples and
// validates it on a held-out split. The bootstrap fit (no previous
// snapshot) is accepted as trained; every later retrain fails with
// ErrTrainingFailed when holdout accuracy regresses more than the
// margin below the previous snapshot, or drops under the absolute
// floor once the previous snapshot has met it. The context is checked
// between phases so a retrain can be cancelled without touching the
// active snapshot.
func (t *Trainer) Train(ctx context.Context, extra []Example, prev *Snapshot) (*Snapshot, error) {
	examples := t.merge(extra)
	if len(examples) < 10 {
		return nil, fmt.Errorf("%w: have %d examples", ErrInsufficientExamples, len(examples))
	}
	trainable := make(map[routes.Domain]struct{})
	for _, d := range routes.AllDomains() {
		trainable[d] = struct{}{}
	}
	for _, ex := range examples {
		if _, ok := trainable[ex.Domain]; !ok {
			return nil, fmt.Errorf("classifier: unknown training label %q", ex.Domain)
		}
	}

	seed := t.cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(examples), func(i, j int) {
		examples[i], examples[j] = examples[j], examples[i]
	})

	holdoutSize := int(math.Round(float64(len(examples)) * t.cfg.HoldoutFraction))
	if holdoutSize < 1 {
		holdoutSize = 1
	}
	holdout := examples[:holdoutSize]
	train := examples[holdoutSize:]

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	snap, err := t.fit(train, examples)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	accuracy := t.evaluate(snap, holdout)
	snap.Accuracy = accuracy
	if prev != nil {
		snap.Version = prev.Version + 1
	} else {
		snap.Version = 1
	}

	if prev == nil {
		// Cold start: there is no baseline to regress from, so the
		// bootstrap fit serves regardless and the floor binds from the
		// first retrain onward.
		if accuracy < t.cfg.AccuracyFloor {
			t.logger.Warn("bootstrap snapshot below accuracy floor",
				"accuracy", accuracy,
				"floor", t.cfg.AccuracyFloor,
				"examples", len(examples))
		}
	} else {
		floor := prev.Accuracy - t.cfg.RegressionMargin
		if prev.Accuracy >= t.cfg.AccuracyFloor && t.cfg.AccuracyFloor > floor {
			floor = t.cfg.AccuracyFloor
		}
		if accuracy < floor {
			t.logger.Warn("retrain rejected",
				"accuracy", accuracy,
				"floor", floor,
				"examples", len(examples))
			return nil, fmt.Errorf("%w: holdout accuracy %.3f below floor %.3f",
				ErrTrainingFailed, accuracy, floor)
		}
	}

	t.logger.Info("model retrained",
		"version", snap.Version,
		"accuracy", accuracy,
		"examples", len(examples),
		"vocabulary", snap.Vectorizer.Size())

	return snap, nil
}

// fit builds a snapshot from the training split. The fingerprint covers
// the full merged set so identical inputs produce identical fingerprints
// regardless of the shuffle.
func (t *Trainer) fit(train, all []Example) (*Snapshot, error) {
	if len(train) == 0 {
		return nil, fmt.Errorf("%w: empty training split", ErrInsufficientExamples)
	}

	docs := make([]string, len(train))
	for i, ex := range train {
		docs[i] = ex.Text
	}

	vectorizer := NewVectorizer()
	vectorizer.Fit(docs)

	classes := routes.AllDomains()
	classIndex := make(map[routes.Domain]int, len(classes))
	for i, d := range classes {
		classIndex[d] = i
	}

	vectors := make([]Vector, len(train))
	labels := make([]int, len(train))
	domains := make([]routes.Domain, len(train))
	for i, ex := range train {
		vectors[i] = vectorizer.Transform(ex.Text)
		idx, ok := classIndex[ex.Domain]
		if !ok {
			return nil, fmt.Errorf("classifier: unknown training label %q", ex.Domain)
		}
		labels[i] = idx
		domains[i] = ex.Domain
	}

	model := NewBayesModel(t.cfg.Smoothing)
	model.Train(vectors, labels, classes, vectorizer.Size())

	return &Snapshot{
		CreatedAt:   time.Now().UTC(),
		Fingerprint: fingerprint(all),
		Vectorizer:  vectorizer,
		Model:       model,
		Examples:    NewExampleIndex(vectors, domains),
	}, nil
}

// evaluate measures blended-score argmax accuracy on the holdout split.
func (t *Trainer) evaluate(snap *Snapshot, holdout []Example) float64 {
	if len(holdout) == 0 {
		return 0
	}

	strategy := BlendedStrategy{Weight: 0.5}
	correct := 0
	for _, ex := range holdout {
		vec := snap.Vectorizer.Transform(ex.Text)
		scores := strategy.Score(snap, vec)

		best := routes.DomainUnknown
		bestScore := math.Inf(-1)
		for d, score := range scores {
			if score > bestScore {
				bestScore = score
				best = d
			}
		}
		if best == ex.Domain {
			correct++
		}
	}
	return float64(correct) / float64(len(holdout))
}

// merge combines the seed corpus with extra examples, deduplicating by
// text+label.
func (t *Trainer) merge(extra []Example) []Example {
	seen := make(map[string]struct{}, len(t.seed)+len(extra))
	merged := make([]Example, 0, len(t.seed)+len(extra))
	for _, ex := range append(append([]Example{}, t.seed...), extra...) {
		key := string(ex.Domain) + "\t" + ex.Text
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		merged = append(merged, ex)
	}
	return merged
}
