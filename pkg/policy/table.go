package policy

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"sync"
	"time"
)

const numShards = 32

// ActionValue is the learned estimate for one (state, action) pair.
// Visits counts how often the action was selected in the state.
type ActionValue struct {
	Estimate float64 `json:"estimate"`
	Visits   int     `json:"visits"`
}

// StateValues holds everything the table knows about one state.
type StateValues struct {
	Visits  int                    `json:"visits"`
	Actions map[string]ActionValue `json:"actions"`
}

type tableShard struct {
	mu     sync.RWMutex
	states map[string]*StateValues
}

// Table is the sharded value store behind the policy. Shards keep
// lock contention low when many sessions select actions concurrently.
type Table struct {
	shards [numShards]*tableShard
}

// NewTable creates an empty value table.
func NewTable() *Table {
	t := &Table{}
	for i := range t.shards {
		t.shards[i] = &tableShard{states: make(map[string]*StateValues)}
	}
	return t
}

func (t *Table) shardFor(stateKey string) *tableShard {
	h := fnv.New32a()
	h.Write([]byte(stateKey))
	return t.shards[h.Sum32()%numShards]
}

// Values returns a copy of the state's action values and its visit
// count. Unknown states return an empty map and zero visits.
func (t *Table) Values(stateKey string) (map[string]ActionValue, int) {
	shard := t.shardFor(stateKey)
	shard.mu.RLock()
	defer shard.mu.RUnlock()

	entry, ok := shard.states[stateKey]
	if !ok {
		return map[string]ActionValue{}, 0
	}

	values := make(map[string]ActionValue, len(entry.Actions))
	for key, value := range entry.Actions {
		values[key] = value
	}
	return values, entry.Visits
}

// RecordSelection increments the state visit count and the chosen
// action's visit count.
func (t *Table) RecordSelection(stateKey, actionKey string) {
	shard := t.shardFor(stateKey)
	shard.mu.Lock()
	defer shard.mu.Unlock()

	entry := shard.entry(stateKey)
	entry.Visits++
	value := entry.Actions[actionKey]
	value.Visits++
	entry.Actions[actionKey] = value
}

// Update nudges the action's estimate toward the observed reward by
// the learning rate and returns the new estimate. Unseen pairs start
// from a zero estimate.
func (t *Table) Update(stateKey, actionKey string, learningRate, reward float64) float64 {
	shard := t.shardFor(stateKey)
	shard.mu.Lock()
	defer shard.mu.Unlock()

	entry := shard.entry(stateKey)
	value := entry.Actions[actionKey]
	value.Estimate += learningRate * (reward - value.Estimate)
	entry.Actions[actionKey] = value
	return value.Estimate
}

// entry returns the state entry, creating it if missing. Caller holds
// the shard lock.
func (s *tableShard) entry(stateKey string) *StateValues {
	entry, ok := s.states[stateKey]
	if !ok {
		entry = &StateValues{Actions: make(map[string]ActionValue)}
		s.states[stateKey] = entry
	}
	return entry
}

// Snapshot captures the full table for persistence.
type Snapshot struct {
	Version   int64                  `json:"version"`
	CreatedAt time.Time              `json:"created_at"`
	States    map[string]StateValues `json:"states"`
}

// Snapshot copies the table into a versioned snapshot.
func (t *Table) Snapshot(version int64) *Snapshot {
	snap := &Snapshot{
		Version:   version,
		CreatedAt: time.Now().UTC(),
		States:    make(map[string]StateValues),
	}

	for _, shard := range t.shards {
		shard.mu.RLock()
		for stateKey, entry := range shard.states {
			actions := make(map[string]ActionValue, len(entry.Actions))
			for actionKey, value := range entry.Actions {
				actions[actionKey] = value
			}
			snap.States[stateKey] = StateValues{Visits: entry.Visits, Actions: actions}
		}
		shard.mu.RUnlock()
	}
	return snap
}

// Restore replaces the table contents with the snapshot's.
func (t *Table) Restore(snap *Snapshot) {
	if snap == nil {
		return
	}

	fresh := NewTable()
	for stateKey, entry := range snap.States {
		shard := fresh.shardFor(stateKey)
		actions := make(map[string]ActionValue, len(entry.Actions))
		for actionKey, value := range entry.Actions {
			actions[actionKey] = value
		}
		shard.states[stateKey] = &StateValues{Visits: entry.Visits, Actions: actions}
	}

	for i := range t.shards {
		t.shards[i].mu.Lock()
		t.shards[i].states = fresh.shards[i].states
		t.shards[i].mu.Unlock()
	}
}

// Marshal serializes the snapshot for storage.
func (s *Snapshot) Marshal() ([]byte, error) {
	return json.Marshal(s)
}

// UnmarshalSnapshot deserializes a stored policy snapshot.
func UnmarshalSnapshot(data []byte) (*Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("policy: unmarshal snapshot: %w", err)
	}
	if snap.States == nil {
		snap.States = make(map[string]StateValues)
	}
	return &snap, nil
}
