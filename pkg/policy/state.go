// Package policy implements a contextual-bandit action policy. The
// policy keeps a value estimate per (state, action) pair and selects
// actions with an exploration strategy that decays as a state is
// visited more often. Learning is online: each feedback reward nudges
// the chosen action's estimate toward the observed reward.
package policy

import (
	"fmt"

	"github.com/lexroute/lexroute/pkg/routes"
)

// RewardBucket summarizes a user's historical satisfaction so the
// policy can condition on it without keying states on raw floats.
type RewardBucket string

const (
	BucketLow     RewardBucket = "low"
	BucketNeutral RewardBucket = "neutral"
	BucketHigh    RewardBucket = "high"
)

// State identifies a policy context. Identical inputs always derive
// the identical state, so value estimates accumulate across sessions.
type State struct {
	Domain    routes.Domain `json:"domain"`
	Bucket    RewardBucket  `json:"bucket"`
	Returning bool          `json:"returning"`
}

// DeriveState builds the state for a classified query. meanReward is
// the user's mean feedback reward so far and domainVisits the number
// of prior interactions in this domain for the session. A session is
// "returning" per domain, not globally: the second family-law query
// is returning, the first criminal query after it is not.
func DeriveState(domain routes.Domain, meanReward float64, domainVisits int) State {
	bucket := BucketNeutral
	switch {
	case meanReward < -0.1:
		bucket = BucketLow
	case meanReward > 0.5:
		bucket = BucketHigh
	}

	return State{
		Domain:    domain,
		Bucket:    bucket,
		Returning: domainVisits > 0,
	}
}

// Key returns the stable table key for the state.
func (s State) Key() string {
	visitor := "new"
	if s.Returning {
		visitor = "returning"
	}
	return fmt.Sprintf("%s|%s|%s", s.Domain, s.Bucket, visitor)
}
