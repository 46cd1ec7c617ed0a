// Package store provides the persistence abstraction for interaction
// records, per-session aggregates, and learned-state snapshots.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lexroute/lexroute/pkg/policy"
	"github.com/lexroute/lexroute/pkg/routes"
)

// Snapshot kinds persisted by the engine.
const (
	SnapshotPolicy = "policy"
	SnapshotModel  = "model"
)

// Store defines the interface for persistent storage operations.
type Store interface {
	// Interaction log operations. The log is append-only: records are
	// created once and only their reward fields may be set, once.
	AppendInteraction(ctx context.Context, rec *InteractionRecord) error
	GetInteraction(ctx context.Context, id string) (*InteractionRecord, error)
	SetReward(ctx context.Context, id string, fb *FeedbackRecord) (*InteractionRecord, error)
	ListBySession(ctx context.Context, sessionID string, limit int) ([]*InteractionRecord, error)
	CountBySession(ctx context.Context, sessionID string) (int, error)

	// Session aggregate operations
	GetAggregate(ctx context.Context, sessionID string) (*SessionAggregate, error)
	PutAggregate(ctx context.Context, agg *SessionAggregate) error

	// Snapshot operations
	SaveSnapshot(ctx context.Context, blob *SnapshotBlob) error
	LoadSnapshot(ctx context.Context, kind string) (*SnapshotBlob, error)

	// Lifecycle
	Close() error
}

// InteractionRecord is one handled query: what was asked, how it was
// classified, which action the policy chose, and eventually the
// feedback reward.
type InteractionRecord struct {
	InteractionID   string                    `json:"interaction_id"`
	SessionID       string                    `json:"session_id"`
	Query           string                    `json:"query"`
	Domain          routes.Domain             `json:"domain"`
	Confidence      float64                   `json:"confidence"`
	Scores          map[routes.Domain]float64 `json:"scores,omitempty"`
	SnapshotVersion int64                     `json:"snapshot_version"`
	State           policy.State              `json:"state"`
	Action          policy.Action             `json:"action"`
	Exploratory     bool                      `json:"exploratory"`
	CreatedAt       time.Time                 `json:"created_at"`
	Feedback        *FeedbackRecord           `json:"feedback,omitempty"`
}

// FeedbackRecord is the one-shot feedback attached to an interaction.
type FeedbackRecord struct {
	Vote         string    `json:"vote"`
	DwellSeconds float64   `json:"dwell_seconds"`
	Reward       float64   `json:"reward"`
	RecordedAt   time.Time `json:"recorded_at"`
}

// SessionAggregate is the rolled-up view of a session used for state
// derivation and session summaries.
type SessionAggregate struct {
	SessionID    string                `json:"session_id"`
	Interactions int                   `json:"interactions"`
	Feedbacks    int                   `json:"feedbacks"`
	RewardSum    float64               `json:"reward_sum"`
	Satisfaction float64               `json:"satisfaction"`
	DomainCounts map[routes.Domain]int `json:"domain_counts"`
	LastSeen     time.Time             `json:"last_seen"`
}

// MeanReward returns the mean feedback reward, zero when no feedback
// has arrived yet.
func (a *SessionAggregate) MeanReward() float64 {
	if a == nil || a.Feedbacks == 0 {
		return 0
	}
	return a.RewardSum / float64(a.Feedbacks)
}

// Clone deep-copies the aggregate.
func (a *SessionAggregate) Clone() *SessionAggregate {
	if a == nil {
		return nil
	}
	copied := *a
	copied.DomainCounts = make(map[routes.Domain]int, len(a.DomainCounts))
	for domain, count := range a.DomainCounts {
		copied.DomainCounts[domain] = count
	}
	return &copied
}

// Clone deep-copies the record.
func (r *InteractionRecord) Clone() *InteractionRecord {
	if r == nil {
		return nil
	}
	copied := *r
	if r.Scores != nil {
		copied.Scores = make(map[routes.Domain]float64, len(r.Scores))
		for domain, score := range r.Scores {
			copied.Scores[domain] = score
		}
	}
	if r.Feedback != nil {
		fb := *r.Feedback
		copied.Feedback = &fb
	}
	return &copied
}

// SnapshotBlob is a serialized learned-state snapshot. The store keeps
// the latest blob per kind plus the versioned history.
type SnapshotBlob struct {
	Kind    string    `json:"kind"`
	Version int64     `json:"version"`
	Data    []byte    `json:"data"`
	SavedAt time.Time `json:"saved_at"`
}

// NotFoundError indicates that the requested entity was not found.
type NotFoundError struct {
	EntityType string
	ID         string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.EntityType, e.ID)
}

// DuplicateKeyError indicates that an entity with the given ID already
// exists, or that a write-once field was written twice.
type DuplicateKeyError struct {
	EntityType string
	ID         string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("%s already exists: %s", e.EntityType, e.ID)
}

// StorageUnavailableError indicates that the storage backend is unavailable.
type StorageUnavailableError struct {
	Cause error
}

func (e *StorageUnavailableError) Error() string {
	return fmt.Sprintf("storage unavailable: %v", e.Cause)
}

func (e *StorageUnavailableError) Unwrap() error { return e.Cause }

// SerializationError indicates a failure in data serialization/deserialization.
type SerializationError struct {
	Operation string
	Cause     error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("serialization error during %s: %v", e.Operation, e.Cause)
}

func (e *SerializationError) Unwrap() error { return e.Cause }

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsDuplicate reports whether err is a DuplicateKeyError.
func IsDuplicate(err error) bool {
	var dup *DuplicateKeyError
	return errors.As(err, &dup)
}
