package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/lexico-labs/lexico-core/internal/core/domain"
	"github.com/lexico-labs/lexico-core/internal/core/ports/driven"
	"github.com/redis/go-redis/v9"
)

// Verify interface compliance
var _ driven.ResultCache = (*ResultCache)(nil)

const cachePrefix = "lexico:search:"

// ResultCache implements driven.ResultCache using Redis.
// Entries are JSON-encoded search results with a per-entry TTL; expiry
// is the only invalidation. Redis failures degrade to computing
// uncached rather than failing the search.
type ResultCache struct {
	client *redis.Client
	logger *slog.Logger
}

// NewResultCache creates a new Redis-backed ResultCache
func NewResultCache(client *redis.Client, logger *slog.Logger) *ResultCache {
	return &ResultCache{client: client, logger: logger}
}

// GetOrCompute returns the cached result for key, or runs compute and
// caches its result for ttl.
func (c *ResultCache) GetOrCompute(ctx context.Context, key string, ttl time.Duration,
	compute func(ctx context.Context) (*domain.SearchResult, error)) (*domain.SearchResult, error) {

	data, err := c.client.Get(ctx, cachePrefix+key).Bytes()
	if err == nil {
		var result domain.SearchResult
		if err := json.Unmarshal(data, &result); err == nil {
			return &result, nil
		}
		// Corrupt entry, recompute and overwrite
		c.logger.Warn("discarding unreadable cache entry", "key", key)
	} else if err != redis.Nil {
		c.logger.Warn("cache read failed, computing uncached", "key", key, "error", err)
	}

	result, err := compute(ctx)
	if err != nil {
		return nil, err
	}

	c.store(ctx, key, ttl, result)
	return result, nil
}

// store writes a computed result back to Redis. Best-effort: a write
// failure is logged, never surfaced.
func (c *ResultCache) store(ctx context.Context, key string, ttl time.Duration, result *domain.SearchResult) {
	if ttl <= 0 {
		return
	}

	data, err := json.Marshal(result)
	if err != nil {
		c.logger.Warn("cache encode failed", "key", key, "error", err)
		return
	}

	if err := c.client.Set(ctx, cachePrefix+key, data, ttl).Err(); err != nil {
		c.logger.Warn("cache write failed", "key", key, "error", err)
	}
}

// Ping checks if the Redis backend is healthy.
func (c *ResultCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Flush removes all cached search results. Used after term imports so
// stale pages do not outlive the data they were computed from.
func (c *ResultCache) Flush(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, cachePrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan cache keys: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("flush cache: %w", err)
	}
	return nil
}
