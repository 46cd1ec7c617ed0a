// Package memory provides an in-memory implementation of the store interface.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/lexroute/lexroute/pkg/store"
)

// MemoryStore implements the Store interface using in-memory maps.
// Intended for development and tests.
type MemoryStore struct {
	mu           sync.RWMutex
	interactions map[string]*store.InteractionRecord
	sessions     map[string][]string // sessionID -> interaction IDs, append order
	aggregates   map[string]*store.SessionAggregate
	snapshots    map[string]*store.SnapshotBlob // kind -> latest blob
}

// NewMemoryStore creates a new in-memory store instance.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		interactions: make(map[string]*store.InteractionRecord),
		sessions:     make(map[string][]string),
		aggregates:   make(map[string]*store.SessionAggregate),
		snapshots:    make(map[string]*store.SnapshotBlob),
	}
}

// AppendInteraction appends a record to the interaction log.
func (m *MemoryStore) AppendInteraction(ctx context.Context, rec *store.InteractionRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.interactions[rec.InteractionID]; exists {
		return &store.DuplicateKeyError{
			EntityType: "interaction",
			ID:         rec.InteractionID,
		}
	}

	copied := rec.Clone()
	if copied.CreatedAt.IsZero() {
		copied.CreatedAt = time.Now().UTC()
	}

	m.interactions[copied.InteractionID] = copied
	m.sessions[copied.SessionID] = append(m.sessions[copied.SessionID], copied.InteractionID)
	return nil
}

// GetInteraction retrieves an interaction by ID.
func (m *MemoryStore) GetInteraction(ctx context.Context, id string) (*store.InteractionRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, exists := m.interactions[id]
	if !exists {
		return nil, &store.NotFoundError{
			EntityType: "interaction",
			ID:         id,
		}
	}
	return rec.Clone(), nil
}

// SetReward attaches feedback to an interaction. The field is
// write-once: a second call fails with a DuplicateKeyError.
func (m *MemoryStore) SetReward(ctx context.Context, id string, fb *store.FeedbackRecord) (*store.InteractionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, exists := m.interactions[id]
	if !exists {
		return nil, &store.NotFoundError{
			EntityType: "interaction",
			ID:         id,
		}
	}
	if rec.Feedback != nil {
		return nil, &store.DuplicateKeyError{
			EntityType: "feedback",
			ID:         id,
		}
	}

	copied := *fb
	if copied.RecordedAt.IsZero() {
		copied.RecordedAt = time.Now().UTC()
	}
	rec.Feedback = &copied
	return rec.Clone(), nil
}

// ListBySession lists a session's interactions in append order. A
// non-positive limit returns all of them.
func (m *MemoryStore) ListBySession(ctx context.Context, sessionID string, limit int) ([]*store.InteractionRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := m.sessions[sessionID]
	if limit > 0 && limit < len(ids) {
		ids = ids[len(ids)-limit:]
	}

	result := make([]*store.InteractionRecord, 0, len(ids))
	for _, id := range ids {
		if rec, exists := m.interactions[id]; exists {
			result = append(result, rec.Clone())
		}
	}
	return result, nil
}

// CountBySession returns the number of interactions in a session.
func (m *MemoryStore) CountBySession(ctx context.Context, sessionID string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions[sessionID]), nil
}

// GetAggregate retrieves a session aggregate.
func (m *MemoryStore) GetAggregate(ctx context.Context, sessionID string) (*store.SessionAggregate, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	agg, exists := m.aggregates[sessionID]
	if !exists {
		return nil, &store.NotFoundError{
			EntityType: "aggregate",
			ID:         sessionID,
		}
	}
	return agg.Clone(), nil
}

// PutAggregate stores a session aggregate, replacing any existing one.
func (m *MemoryStore) PutAggregate(ctx context.Context, agg *store.SessionAggregate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.aggregates[agg.SessionID] = agg.Clone()
	return nil
}

// SaveSnapshot stores the latest snapshot blob for its kind.
func (m *MemoryStore) SaveSnapshot(ctx context.Context, blob *store.SnapshotBlob) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *blob
	copied.Data = append([]byte(nil), blob.Data...)
	if copied.SavedAt.IsZero() {
		copied.SavedAt = time.Now().UTC()
	}
	m.snapshots[blob.Kind] = &copied
	return nil
}

// LoadSnapshot retrieves the latest snapshot blob of a kind.
func (m *MemoryStore) LoadSnapshot(ctx context.Context, kind string) (*store.SnapshotBlob, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	blob, exists := m.snapshots[kind]
	if !exists {
		return nil, &store.NotFoundError{
			EntityType: "snapshot",
			ID:         kind,
		}
	}

	copied := *blob
	copied.Data = append([]byte(nil), blob.Data...)
	return &copied, nil
}

// Close closes the store (no-op for memory storage).
func (m *MemoryStore) Close() error {
	return nil
}
