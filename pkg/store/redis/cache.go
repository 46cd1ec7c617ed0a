// Package redis provides a Redis cache-aside layer over another store.
// Session aggregates are read on every query to derive the policy
// state, so they are cached with a TTL; everything else delegates to
// the inner store.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lexroute/lexroute/pkg/logger"
	"github.com/lexroute/lexroute/pkg/store"
)

// Config holds configuration for the aggregate cache.
type Config struct {
	Address  string
	Password string
	DB       int
	TTL      time.Duration
}

// CachedStore wraps a Store with a Redis aggregate cache. Cache
// failures degrade to the inner store; they are logged, never
// returned.
type CachedStore struct {
	store.Store

	client redis.Cmdable
	ttl    time.Duration
	logger logger.Logger
}

// NewCachedStore wraps inner with a Redis-backed aggregate cache.
func NewCachedStore(inner store.Store, client redis.Cmdable, ttl time.Duration, log logger.Logger) *CachedStore {
	if log == nil {
		log = logger.Global()
	}
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &CachedStore{
		Store:  inner,
		client: client,
		ttl:    ttl,
		logger: log.With("component", "aggregate_cache"),
	}
}

// NewClient builds a Redis client from config.
func NewClient(cfg *Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

func aggregateCacheKey(sessionID string) string {
	return fmt.Sprintf("lexroute:aggregate:%s", sessionID)
}

// GetAggregate checks the cache before falling through to the inner
// store. Misses populate the cache with the configured TTL.
func (c *CachedStore) GetAggregate(ctx context.Context, sessionID string) (*store.SessionAggregate, error) {
	key := aggregateCacheKey(sessionID)

	data, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var agg store.SessionAggregate
		if err := json.Unmarshal(data, &agg); err == nil {
			return &agg, nil
		}
		c.logger.Warn("corrupt cache entry dropped", "session_id", sessionID)
		c.client.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		c.logger.Warn("cache read failed", "session_id", sessionID, "error", err)
	}

	agg, err := c.Store.GetAggregate(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	c.cache(ctx, agg)
	return agg, nil
}

// PutAggregate writes through to the inner store and refreshes the
// cache entry.
func (c *CachedStore) PutAggregate(ctx context.Context, agg *store.SessionAggregate) error {
	if err := c.Store.PutAggregate(ctx, agg); err != nil {
		return err
	}
	c.cache(ctx, agg)
	return nil
}

func (c *CachedStore) cache(ctx context.Context, agg *store.SessionAggregate) {
	data, err := json.Marshal(agg)
	if err != nil {
		c.logger.Warn("cache marshal failed", "session_id", agg.SessionID, "error", err)
		return
	}
	if err := c.client.Set(ctx, aggregateCacheKey(agg.SessionID), data, c.ttl).Err(); err != nil {
		c.logger.Warn("cache write failed", "session_id", agg.SessionID, "error", err)
	}
}

// Close closes the inner store. The Redis client lifecycle belongs to
// the caller that built it.
func (c *CachedStore) Close() error {
	return c.Store.Close()
}
