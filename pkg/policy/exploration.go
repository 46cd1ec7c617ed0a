package policy

import (
	"math/rand"
	"sync"
	"time"
)

// ExplorationPolicy picks one of the candidate actions given the
// current value estimates. The returned bool reports whether the pick
// was exploratory (random) rather than greedy.
type ExplorationPolicy interface {
	Choose(candidates []Action, values map[string]ActionValue, stateVisits int) (Action, bool)
	Name() string
}

// EpsilonGreedy explores with probability epsilon and exploits the
// highest estimate otherwise. Epsilon decays with the state's visit
// count down to a floor, so well-visited states settle on their best
// known action while fresh states keep exploring.
type EpsilonGreedy struct {
	initial     float64
	min         float64
	decayVisits int

	mu  sync.Mutex
	rng *rand.Rand
}

// NewEpsilonGreedy builds an epsilon-greedy strategy. A zero seed
// draws one from the clock.
func NewEpsilonGreedy(initial, min float64, decayVisits int, seed int64) *EpsilonGreedy {
	if initial < 0 {
		initial = 0
	}
	if min < 0 {
		min = 0
	}
	if min > initial {
		min = initial
	}
	if decayVisits < 1 {
		decayVisits = 1
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &EpsilonGreedy{
		initial:     initial,
		min:         min,
		decayVisits: decayVisits,
		rng:         rand.New(rand.NewSource(seed)),
	}
}

// Epsilon returns the exploration probability after the given number
// of state visits.
func (e *EpsilonGreedy) Epsilon(stateVisits int) float64 {
	eps := e.initial / (1 + float64(stateVisits)/float64(e.decayVisits))
	if eps < e.min {
		eps = e.min
	}
	return eps
}

// SetBounds adjusts the epsilon range. Used by config hot reload.
func (e *EpsilonGreedy) SetBounds(initial, min float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if initial >= 0 {
		e.initial = initial
	}
	if min >= 0 && min <= e.initial {
		e.min = min
	}
}

func (e *EpsilonGreedy) Choose(candidates []Action, values map[string]ActionValue, stateVisits int) (Action, bool) {
	e.mu.Lock()
	explore := e.rng.Float64() < e.Epsilon(stateVisits)
	var pick int
	if explore {
		pick = e.rng.Intn(len(candidates))
	}
	e.mu.Unlock()

	if explore {
		return candidates[pick], true
	}
	return exploit(candidates, values), false
}

func (e *EpsilonGreedy) Name() string { return "epsilon_greedy" }

// Greedy always exploits the highest estimate. Useful for evaluation
// runs and tests where exploration noise is unwanted.
type Greedy struct{}

func (Greedy) Choose(candidates []Action, values map[string]ActionValue, stateVisits int) (Action, bool) {
	return exploit(candidates, values), false
}

func (Greedy) Name() string { return "greedy" }

// exploit returns the candidate with the highest estimate. Unseen
// actions count as zero. Ties go to the least-visited action so equal
// estimates spread across the untried candidates; remaining ties keep
// candidate order.
func exploit(candidates []Action, values map[string]ActionValue) Action {
	best := candidates[0]
	bestValue := values[best.Key()]

	for _, candidate := range candidates[1:] {
		value := values[candidate.Key()]
		if value.Estimate > bestValue.Estimate ||
			(value.Estimate == bestValue.Estimate && value.Visits < bestValue.Visits) {
			best = candidate
			bestValue = value
		}
	}
	return best
}
