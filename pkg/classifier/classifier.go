package classifier

import (
	"math"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/lexroute/lexroute/pkg/logger"
	"github.com/lexroute/lexroute/pkg/routes"
)

// Result is the outcome of classifying a single query.
type Result struct {
	// Domain is the predicted domain, or routes.DomainUnknown when the
	// top score is below the confidence threshold.
	Domain routes.Domain `json:"domain"`

	// Confidence is the maximum entry of Scores.
	Confidence float64 `json:"confidence"`

	// Scores is the full per-domain score map, exposed even for
	// below-threshold predictions so callers can use partial signal.
	Scores map[routes.Domain]float64 `json:"scores"`

	// SnapshotVersion identifies the model snapshot that produced this
	// result.
	SnapshotVersion int64 `json:"snapshot_version"`
}

// Config holds the classifier's runtime tunables.
type Config struct {
	// ConfidenceThreshold is the minimum top score for a concrete
	// domain prediction.
	ConfidenceThreshold float64

	// PosteriorWeight is the bayes posterior's share in the blended
	// score.
	PosteriorWeight float64
}

// DefaultConfig returns the standard classifier tunables.
func DefaultConfig() Config {
	return Config{
		ConfidenceThreshold: 0.30,
		PosteriorWeight:     0.5,
	}
}

// Classifier classifies queries against an atomically-swappable model
// snapshot. Classify is a pure read over the snapshot it loads; Swap
// publishes retrained snapshots without blocking readers.
type Classifier struct {
	snapshot atomic.Pointer[Snapshot]
	logger   logger.Logger

	mu       sync.RWMutex
	strategy ScoringStrategy
	cfg      Config
}

// New creates a classifier with the given initial snapshot, which may be
// nil until a snapshot is swapped in.
func New(snap *Snapshot, cfg Config, log logger.Logger) *Classifier {
	if log == nil {
		log = logger.Global()
	}
	if cfg.ConfidenceThreshold <= 0 {
		cfg.ConfidenceThreshold = DefaultConfig().ConfidenceThreshold
	}
	c := &Classifier{
		logger:   log,
		cfg:      cfg,
		strategy: BlendedStrategy{Weight: cfg.PosteriorWeight},
	}
	if snap != nil {
		c.snapshot.Store(snap)
	}
	return c
}

// Classify maps query text to a domain with a confidence score. Empty or
// whitespace-only text fails with ErrInvalidInput. The call is free of
// side effects.
func (c *Classifier) Classify(text string) (*Result, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrInvalidInput
	}

	snap := c.snapshot.Load()
	if snap == nil {
		return nil, ErrNoSnapshot
	}

	c.mu.RLock()
	strategy := c.strategy
	threshold := c.cfg.ConfidenceThreshold
	c.mu.RUnlock()

	vec := snap.Vectorizer.Transform(text)
	scores := strategy.Score(snap, vec)

	domain := routes.DomainUnknown
	confidence := math.Inf(-1)
	for d, score := range scores {
		if score > confidence {
			confidence = score
			domain = d
		}
	}
	if len(scores) == 0 {
		confidence = 0
	}

	if confidence < threshold {
		domain = routes.DomainUnknown
	}

	c.logger.Debug("query classified",
		"domain", domain,
		"confidence", confidence,
		"snapshot_version", snap.Version)

	return &Result{
		Domain:          domain,
		Confidence:      confidence,
		Scores:          scores,
		SnapshotVersion: snap.Version,
	}, nil
}

// Snapshot returns the active model snapshot, or nil.
func (c *Classifier) Snapshot() *Snapshot {
	return c.snapshot.Load()
}

// Swap atomically publishes a new snapshot. In-flight Classify calls
// continue using the snapshot they loaded.
func (c *Classifier) Swap(snap *Snapshot) {
	if snap == nil {
		return
	}
	c.snapshot.Store(snap)
	fp := snap.Fingerprint
	if len(fp) > 12 {
		fp = fp[:12]
	}
	c.logger.Info("model snapshot activated",
		"version", snap.Version,
		"accuracy", snap.Accuracy,
		"fingerprint", fp)
}

// SetStrategy replaces the scoring strategy.
func (c *Classifier) SetStrategy(s ScoringStrategy) {
	if s == nil {
		return
	}
	c.mu.Lock()
	c.strategy = s
	c.mu.Unlock()
}

// UpdateConfig applies new tunables, used for config hot reload.
func (c *Classifier) UpdateConfig(cfg Config) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cfg.ConfidenceThreshold > 0 {
		c.cfg.ConfidenceThreshold = cfg.ConfidenceThreshold
	}
	c.cfg.PosteriorWeight = cfg.PosteriorWeight
	if blended, ok := c.strategy.(BlendedStrategy); ok {
		blended.Weight = cfg.PosteriorWeight
		c.strategy = blended
	}
}
