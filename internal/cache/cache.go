// Package cache memoizes expensive read models such as the admin dashboard.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/galamath/galamath/internal/logger"
)

// AdminStatsKey holds the serialized admin dashboard payload.
const AdminStatsKey = "galamath:admin-stats"

// Loader produces a fresh value on a cache miss.
type Loader func() (any, error)

// StatsCache stores JSON-serializable values under string keys.
type StatsCache interface {
	// CacheOrExecute fills dest from the cache, or runs load, stores its
	// result for ttl and fills dest from it.
	CacheOrExecute(ctx context.Context, key string, dest any, ttl time.Duration, load Loader) error
	Invalidate(ctx context.Context, keys ...string) error
}

// RedisCache is a StatsCache backed by redis. Redis failures are logged and
// fall through to the loader; they never fail the caller.
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// New returns a redis cache when addr is set and a pass-through cache otherwise.
func New(ctx context.Context, addr string) (StatsCache, func() error) {
	log := logger.FromContext(ctx).WithPrefix("cache")
	if addr == "" {
		log.Info("stats cache disabled: REDIS_ADDR not set")
		return Noop{}, func() error { return nil }
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("redis at %s not reachable yet: %v", addr, err)
	} else {
		log.Info("stats cache enabled: redis=%s", addr)
	}
	return NewRedisCache(client), client.Close
}

func (c *RedisCache) CacheOrExecute(ctx context.Context, key string, dest any, ttl time.Duration, load Loader) error {
	log := logger.FromContext(ctx).WithPrefix("cache").WithField("key", key)

	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		jsonErr := json.Unmarshal(raw, dest)
		if jsonErr == nil {
			log.Debug("cache hit")
			return nil
		}
		log.Warn("discarding unreadable cache entry: %v", jsonErr)
	case errors.Is(err, redis.Nil):
		log.Debug("cache miss")
	default:
		log.Warn("cache read failed: %v", err)
	}

	value, err := load()
	if err != nil {
		return err
	}
	raw, err = json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode cache value: %w", err)
	}
	if err := c.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		log.Warn("cache write failed: %v", err)
	}
	return json.Unmarshal(raw, dest)
}

func (c *RedisCache) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("invalidate %v: %w", keys, err)
	}
	return nil
}

// Noop always runs the loader.
type Noop struct{}

func (Noop) CacheOrExecute(_ context.Context, _ string, dest any, _ time.Duration, load Loader) error {
	value, err := load()
	if err != nil {
		return err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode value: %w", err)
	}
	return json.Unmarshal(raw, dest)
}

func (Noop) Invalidate(context.Context, ...string) error { return nil }
