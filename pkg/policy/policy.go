package policy

import (
	"errors"
	"sync"

	"github.com/lexroute/lexroute/pkg/logger"
)

// ErrNoCandidateActions is returned when there is nothing to select
// from. Callers fall back to the generic action.
var ErrNoCandidateActions = errors.New("policy: no candidate actions")

// Config carries the policy's tunables.
type Config struct {
	LearningRate       float64
	InitialEpsilon     float64
	MinEpsilon         float64
	EpsilonDecayVisits int
	Seed               int64
}

// DefaultConfig returns the stock bandit settings.
func DefaultConfig() Config {
	return Config{
		LearningRate:       0.1,
		InitialEpsilon:     0.3,
		MinEpsilon:         0.05,
		EpsilonDecayVisits: 50,
	}
}

// Decision is the outcome of a selection.
type Decision struct {
	Action      Action  `json:"action"`
	Exploratory bool    `json:"exploratory"`
	Estimate    float64 `json:"estimate"`
	StateVisits int     `json:"state_visits"`
}

// Policy selects actions and learns from rewards. Safe for concurrent
// use.
type Policy struct {
	table  *Table
	logger logger.Logger

	mu          sync.RWMutex
	exploration ExplorationPolicy
	cfg         Config
}

// New creates a policy with an epsilon-greedy exploration strategy.
func New(cfg Config, log logger.Logger) *Policy {
	if log == nil {
		log = logger.Global()
	}
	if cfg.LearningRate <= 0 || cfg.LearningRate > 1 {
		cfg.LearningRate = DefaultConfig().LearningRate
	}
	return &Policy{
		table:       NewTable(),
		logger:      log.With("component", "policy"),
		exploration: NewEpsilonGreedy(cfg.InitialEpsilon, cfg.MinEpsilon, cfg.EpsilonDecayVisits, cfg.Seed),
		cfg:         cfg,
	}
}

// SelectAction picks one of candidates for the state and records the
// visit. Returns ErrNoCandidateActions when candidates is empty.
func (p *Policy) SelectAction(state State, candidates []Action) (Decision, error) {
	if len(candidates) == 0 {
		return Decision{}, ErrNoCandidateActions
	}

	p.mu.RLock()
	exploration := p.exploration
	p.mu.RUnlock()

	stateKey := state.Key()
	values, visits := p.table.Values(stateKey)

	action, exploratory := exploration.Choose(candidates, values, visits)
	p.table.RecordSelection(stateKey, action.Key())

	p.logger.Debug("action selected",
		"state", stateKey,
		"action", action.Key(),
		"exploratory", exploratory,
		"state_visits", visits+1)

	return Decision{
		Action:      action,
		Exploratory: exploratory,
		Estimate:    values[action.Key()].Estimate,
		StateVisits: visits + 1,
	}, nil
}

// Update folds an observed reward into the (state, action) estimate
// and returns the new estimate.
func (p *Policy) Update(state State, action Action, reward float64) float64 {
	p.mu.RLock()
	rate := p.cfg.LearningRate
	p.mu.RUnlock()

	estimate := p.table.Update(state.Key(), action.Key(), rate, reward)

	p.logger.Debug("value updated",
		"state", state.Key(),
		"action", action.Key(),
		"reward", reward,
		"estimate", estimate)
	return estimate
}

// SetExploration swaps the exploration strategy.
func (p *Policy) SetExploration(strategy ExplorationPolicy) {
	if strategy == nil {
		return
	}
	p.mu.Lock()
	p.exploration = strategy
	p.mu.Unlock()
}

// UpdateConfig applies hot-reloadable tunables.
func (p *Policy) UpdateConfig(learningRate, minEpsilon float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if learningRate > 0 && learningRate <= 1 {
		p.cfg.LearningRate = learningRate
	}
	if minEpsilon >= 0 {
		p.cfg.MinEpsilon = minEpsilon
	}
	if eg, ok := p.exploration.(*EpsilonGreedy); ok {
		eg.SetBounds(p.cfg.InitialEpsilon, p.cfg.MinEpsilon)
	}
}

// Snapshot captures the learned values for persistence.
func (p *Policy) Snapshot(version int64) *Snapshot {
	return p.table.Snapshot(version)
}

// Restore loads a persisted snapshot, replacing current values.
func (p *Policy) Restore(snap *Snapshot) {
	if snap == nil {
		return
	}
	p.table.Restore(snap)
	p.logger.Info("policy restored",
		"version", snap.Version,
		"states", len(snap.States))
}
