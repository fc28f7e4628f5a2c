// Package cache provides a Redis-based read-through cache for catalog data.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

// CacheService is what consumers depend on, so tests and cache-less
// deployments can swap in another implementation.
type CacheService interface {
	// Get unmarshals the cached value into dest and reports a hit.
	Get(ctx context.Context, key string, dest any) (bool, error)
	// Set stores value under key with the default TTL.
	Set(ctx context.Context, key string, value any) error
	// Delete removes the given keys.
	Delete(ctx context.Context, keys ...string) error
	// DeletePattern removes every key matching a glob pattern.
	DeletePattern(ctx context.Context, pattern string) error
	// Stats returns a snapshot of hit/miss counters.
	Stats() StatsSnapshot
}

// StatsSnapshot is a point-in-time copy of the cache counters.
type StatsSnapshot struct {
	Hits      uint64  `json:"hits"`
	Misses    uint64  `json:"misses"`
	Sets      uint64  `json:"sets"`
	Deletes   uint64  `json:"deletes"`
	Errors    uint64  `json:"errors"`
	HitRate   float64 `json:"hit_rate"`
	TotalGets uint64  `json:"total_gets"`
}

type counters struct {
	hits    atomic.Uint64
	misses  atomic.Uint64
	sets    atomic.Uint64
	deletes atomic.Uint64
	errors  atomic.Uint64
}

func (c *counters) snapshot() StatsSnapshot {
	hits := c.hits.Load()
	misses := c.misses.Load()
	total := hits + misses

	var rate float64
	if total > 0 {
		rate = float64(hits) / float64(total) * 100
	}

	return StatsSnapshot{
		Hits:      hits,
		Misses:    misses,
		Sets:      c.sets.Load(),
		Deletes:   c.deletes.Load(),
		Errors:    c.errors.Load(),
		HitRate:   rate,
		TotalGets: total,
	}
}

// RedisCache implements CacheService on a go-redis client.
type RedisCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	stats  counters
}

// New creates a RedisCache. Every key is namespaced with prefix.
func New(client *redis.Client, prefix string, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

// Get retrieves a value from the cache.
func (c *RedisCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			c.stats.misses.Add(1)
			return false, nil
		}
		c.stats.errors.Add(1)
		return false, fmt.Errorf("cache get error: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		c.stats.errors.Add(1)
		return false, fmt.Errorf("cache unmarshal error: %w", err)
	}

	c.stats.hits.Add(1)
	return true, nil
}

// Set stores a value in the cache with the default TTL.
func (c *RedisCache) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		c.stats.errors.Add(1)
		return fmt.Errorf("cache marshal error: %w", err)
	}

	if err := c.client.Set(ctx, c.prefix+key, data, c.ttl).Err(); err != nil {
		c.stats.errors.Add(1)
		return fmt.Errorf("cache set error: %w", err)
	}

	c.stats.sets.Add(1)
	return nil
}

// Delete removes keys from the cache.
func (c *RedisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.prefix + k
	}

	if err := c.client.Del(ctx, full...).Err(); err != nil {
		c.stats.errors.Add(1)
		return fmt.Errorf("cache delete error: %w", err)
	}

	c.stats.deletes.Add(uint64(len(keys)))
	return nil
}

// DeletePattern removes all keys matching a pattern.
func (c *RedisCache) DeletePattern(ctx context.Context, pattern string) error {
	var cursor uint64
	var deleted int

	for {
		keys, next, err := c.client.Scan(ctx, cursor, c.prefix+pattern, 100).Result()
		if err != nil {
			c.stats.errors.Add(1)
			return fmt.Errorf("cache scan error: %w", err)
		}

		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				c.stats.errors.Add(1)
				return fmt.Errorf("cache delete error: %w", err)
			}
			deleted += len(keys)
		}

		cursor = next
		if cursor == 0 {
			break
		}
	}

	c.stats.deletes.Add(uint64(deleted))
	return nil
}

// Stats returns the current cache statistics.
func (c *RedisCache) Stats() StatsSnapshot {
	return c.stats.snapshot()
}

// Ping checks if the Redis connection is healthy.
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// nopCache is used when no Redis address is configured. Every read misses.
type nopCache struct {
	stats counters
}

// Nop returns a CacheService that stores nothing.
func Nop() CacheService {
	return &nopCache{}
}

func (n *nopCache) Get(context.Context, string, any) (bool, error) {
	n.stats.misses.Add(1)
	return false, nil
}

func (n *nopCache) Set(context.Context, string, any) error      { return nil }
func (n *nopCache) Delete(context.Context, ...string) error     { return nil }
func (n *nopCache) DeletePattern(context.Context, string) error { return nil }
func (n *nopCache) Stats() StatsSnapshot                        { return n.stats.snapshot() }
