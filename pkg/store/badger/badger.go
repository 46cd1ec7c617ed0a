// Package badger provides a Badger-based implementation of the store interface.
package badger

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/lexroute/lexroute/pkg/store"
)

// Config holds configuration for BadgerStore.
type Config struct {
	Path              string
	SyncWrites        bool
	ValueLogFileSize  int64
	NumVersionsToKeep int
}

// BadgerStore implements the Store interface using Badger.
type BadgerStore struct {
	db     *badger.DB
	config *Config
}

// NewBadgerStore creates a new Badger store instance.
func NewBadgerStore(config *Config) (*BadgerStore, error) {
	opts := badger.DefaultOptions(config.Path)
	opts.SyncWrites = config.SyncWrites
	if config.ValueLogFileSize > 0 {
		opts.ValueLogFileSize = config.ValueLogFileSize
	}
	if config.NumVersionsToKeep > 0 {
		opts.NumVersionsToKeep = config.NumVersionsToKeep
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, &store.StorageUnavailableError{Cause: err}
	}

	return &BadgerStore{
		db:     db,
		config: config,
	}, nil
}

// Key generation functions
func interactionKey(id string) []byte {
	return []byte(fmt.Sprintf("interaction:%s", id))
}

// sessionIndexKey orders a session's interactions chronologically via
// a fixed-width nanosecond timestamp.
func sessionIndexKey(sessionID string, createdAt time.Time, id string) []byte {
	return []byte(fmt.Sprintf("session:%s:%020d:%s", sessionID, createdAt.UnixNano(), id))
}

func sessionPrefix(sessionID string) []byte {
	return []byte(fmt.Sprintf("session:%s:", sessionID))
}

func aggregateKey(sessionID string) []byte {
	return []byte(fmt.Sprintf("aggregate:%s", sessionID))
}

func snapshotKey(kind string) []byte {
	return []byte(fmt.Sprintf("snapshot:%s:latest", kind))
}

func snapshotVersionKey(kind string, version int64) []byte {
	return []byte(fmt.Sprintf("snapshot:%s:v:%020d", kind, version))
}

// Serialization helpers
func serialize(v interface{}) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, &store.SerializationError{
			Operation: "marshal",
			Cause:     err,
		}
	}
	return data, nil
}

func deserialize(data []byte, v interface{}) error {
	if err := json.Unmarshal(data, v); err != nil {
		return &store.SerializationError{
			Operation: "unmarshal",
			Cause:     err,
		}
	}
	return nil
}

// AppendInteraction appends a record to the interaction log.
func (b *BadgerStore) AppendInteraction(ctx context.Context, rec *store.InteractionRecord) error {
	copied := rec.Clone()
	if copied.CreatedAt.IsZero() {
		copied.CreatedAt = time.Now().UTC()
	}

	data, err := serialize(copied)
	if err != nil {
		return err
	}

	return b.db.Update(func(txn *badger.Txn) error {
		key := interactionKey(copied.InteractionID)
		if _, err := txn.Get(key); err == nil {
			return &store.DuplicateKeyError{
				EntityType: "interaction",
				ID:         copied.InteractionID,
			}
		} else if err != badger.ErrKeyNotFound {
			return err
		}

		if err := txn.Set(key, data); err != nil {
			return err
		}
		return txn.Set(sessionIndexKey(copied.SessionID, copied.CreatedAt, copied.InteractionID), []byte{})
	})
}

// GetInteraction retrieves an interaction by ID.
func (b *BadgerStore) GetInteraction(ctx context.Context, id string) (*store.InteractionRecord, error) {
	var rec store.InteractionRecord

	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(interactionKey(id))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return &store.NotFoundError{
					EntityType: "interaction",
					ID:         id,
				}
			}
			return err
		}

		return item.Value(func(val []byte) error {
			return deserialize(val, &rec)
		})
	})

	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// SetReward attaches feedback to an interaction, write-once.
func (b *BadgerStore) SetReward(ctx context.Context, id string, fb *store.FeedbackRecord) (*store.InteractionRecord, error) {
	var rec store.InteractionRecord

	err := b.db.Update(func(txn *badger.Txn) error {
		key := interactionKey(id)
		item, err := txn.Get(key)
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return &store.NotFoundError{
					EntityType: "interaction",
					ID:         id,
				}
			}
			return err
		}

		if err := item.Value(func(val []byte) error {
			return deserialize(val, &rec)
		}); err != nil {
			return err
		}

		if rec.Feedback != nil {
			return &store.DuplicateKeyError{
				EntityType: "feedback",
				ID:         id,
			}
		}

		copied := *fb
		if copied.RecordedAt.IsZero() {
			copied.RecordedAt = time.Now().UTC()
		}
		rec.Feedback = &copied

		data, err := serialize(&rec)
		if err != nil {
			return err
		}
		return txn.Set(key, data)
	})

	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListBySession lists a session's interactions in chronological order.
// A non-positive limit returns all of them.
func (b *BadgerStore) ListBySession(ctx context.Context, sessionID string, limit int) ([]*store.InteractionRecord, error) {
	var ids []string

	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = sessionPrefix(sessionID)
		opts.PrefetchValues = false

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			key := string(it.Item().Key())
			// session:{id}:{nanos}:{interaction_id}
			parts := strings.SplitN(key, ":", 4)
			if len(parts) == 4 {
				ids = append(ids, parts[3])
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if limit > 0 && limit < len(ids) {
		ids = ids[len(ids)-limit:]
	}

	records := make([]*store.InteractionRecord, 0, len(ids))
	for _, id := range ids {
		rec, err := b.GetInteraction(ctx, id)
		if err != nil {
			if store.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// CountBySession returns the number of interactions in a session.
func (b *BadgerStore) CountBySession(ctx context.Context, sessionID string) (int, error) {
	count := 0
	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = sessionPrefix(sessionID)
		opts.PrefetchValues = false

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}

// GetAggregate retrieves a session aggregate.
func (b *BadgerStore) GetAggregate(ctx context.Context, sessionID string) (*store.SessionAggregate, error) {
	var agg store.SessionAggregate

	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(aggregateKey(sessionID))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return &store.NotFoundError{
					EntityType: "aggregate",
					ID:         sessionID,
				}
			}
			return err
		}

		return item.Value(func(val []byte) error {
			return deserialize(val, &agg)
		})
	})

	if err != nil {
		return nil, err
	}
	return &agg, nil
}

// PutAggregate stores a session aggregate, replacing any existing one.
func (b *BadgerStore) PutAggregate(ctx context.Context, agg *store.SessionAggregate) error {
	data, err := serialize(agg)
	if err != nil {
		return err
	}

	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(aggregateKey(agg.SessionID), data)
	})
}

// SaveSnapshot stores a snapshot blob under its version and as the
// latest of its kind.
func (b *BadgerStore) SaveSnapshot(ctx context.Context, blob *store.SnapshotBlob) error {
	copied := *blob
	if copied.SavedAt.IsZero() {
		copied.SavedAt = time.Now().UTC()
	}

	data, err := serialize(&copied)
	if err != nil {
		return err
	}

	return b.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(snapshotVersionKey(copied.Kind, copied.Version), data); err != nil {
			return err
		}
		return txn.Set(snapshotKey(copied.Kind), data)
	})
}

// LoadSnapshot retrieves the latest snapshot blob of a kind.
func (b *BadgerStore) LoadSnapshot(ctx context.Context, kind string) (*store.SnapshotBlob, error) {
	var blob store.SnapshotBlob

	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(snapshotKey(kind))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return &store.NotFoundError{
					EntityType: "snapshot",
					ID:         kind,
				}
			}
			return err
		}

		return item.Value(func(val []byte) error {
			return deserialize(val, &blob)
		})
	})

	if err != nil {
		return nil, err
	}
	return &blob, nil
}

// Close closes the Badger database after a best-effort value log GC.
func (b *BadgerStore) Close() error {
	if err := b.db.RunValueLogGC(0.5); err != nil && err != badger.ErrNoRewrite {
		// GC failure is not fatal on close
		_ = err
	}
	return b.db.Close()
}
