// Package feedback turns explicit votes and dwell time into rewards
// and folds them into the policy and session aggregates. Feedback is
// write-once per interaction.
package feedback

import (
	"errors"
	"fmt"
)

// Typed errors surfaced to the API layer.
var (
	ErrUnknownInteraction = errors.New("feedback: unknown interaction")
	ErrDuplicateFeedback  = errors.New("feedback: feedback already recorded")
	ErrInvalidVote        = errors.New("feedback: invalid vote")
)

// Vote is the user's explicit signal.
type Vote string

const (
	VoteUp      Vote = "up"
	VoteDown    Vote = "down"
	VoteNeutral Vote = "neutral"
)

// ParseVote validates a wire-level vote value. An empty string or the
// legacy "none" means no explicit vote.
func ParseVote(s string) (Vote, error) {
	switch Vote(s) {
	case VoteUp, VoteDown, VoteNeutral:
		return Vote(s), nil
	case "", "none":
		return VoteNeutral, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidVote, s)
}

// value maps the vote onto its reward contribution.
func (v Vote) value() float64 {
	switch v {
	case VoteUp:
		return 1
	case VoteDown:
		return -1
	}
	return 0
}

// Config carries the reward-shaping tunables.
type Config struct {
	DwellCapSeconds float64
	DwellBonusMax   float64
	RewardMin       float64
	RewardMax       float64
}

// DefaultConfig returns the stock reward shaping: votes in {-1, 0, +1},
// dwell time capped at two minutes contributing up to +0.5, total
// clipped to [-1, +1.5].
func DefaultConfig() Config {
	return Config{
		DwellCapSeconds: 120,
		DwellBonusMax:   0.5,
		RewardMin:       -1.0,
		RewardMax:       1.5,
	}
}

// Calculator computes rewards from feedback signals.
type Calculator struct {
	cfg Config
}

// NewCalculator builds a calculator, falling back to defaults for
// non-positive bounds.
func NewCalculator(cfg Config) *Calculator {
	def := DefaultConfig()
	if cfg.DwellCapSeconds <= 0 {
		cfg.DwellCapSeconds = def.DwellCapSeconds
	}
	if cfg.DwellBonusMax <= 0 {
		cfg.DwellBonusMax = def.DwellBonusMax
	}
	if cfg.RewardMin >= cfg.RewardMax {
		cfg.RewardMin = def.RewardMin
		cfg.RewardMax = def.RewardMax
	}
	return &Calculator{cfg: cfg}
}

// Reward combines the vote value with a dwell-time bonus. Dwell is
// clipped to [0, cap] and scaled linearly onto [0, bonus max]; the sum
// is clipped to the configured range.
func (c *Calculator) Reward(vote Vote, dwellSeconds float64) float64 {
	if dwellSeconds < 0 {
		dwellSeconds = 0
	}
	if dwellSeconds > c.cfg.DwellCapSeconds {
		dwellSeconds = c.cfg.DwellCapSeconds
	}
	bonus := dwellSeconds / c.cfg.DwellCapSeconds * c.cfg.DwellBonusMax

	reward := vote.value() + bonus
	if reward < c.cfg.RewardMin {
		reward = c.cfg.RewardMin
	}
	if reward > c.cfg.RewardMax {
		reward = c.cfg.RewardMax
	}
	return reward
}
