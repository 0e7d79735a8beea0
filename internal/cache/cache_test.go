package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/galamath/galamath/internal/cache"
)

type payload struct {
	Users []string `json:"users"`
	Count int      `json:"count"`
}

func TestNoop_AlwaysLoads(t *testing.T) {
	ctx := context.Background()
	c := cache.Noop{}
	calls := 0
	load := func() (any, error) {
		calls++
		return payload{Users: []string{"Zoe"}, Count: calls}, nil
	}

	var got payload
	require.NoError(t, c.CacheOrExecute(ctx, "k", &got, time.Minute, load))
	require.NoError(t, c.CacheOrExecute(ctx, "k", &got, time.Minute, load))
	assert.Equal(t, 2, calls)
	assert.Equal(t, payload{Users: []string{"Zoe"}, Count: 2}, got)
	assert.NoError(t, c.Invalidate(ctx, "k"))
}

func TestNoop_LoaderError(t *testing.T) {
	var got payload
	err := cache.Noop{}.CacheOrExecute(context.Background(), "k", &got, time.Minute, func() (any, error) {
		return nil, errors.New("db down")
	})
	assert.EqualError(t, err, "db down")
}

func TestRedisCache_UnreachableFallsThrough(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })
	c := cache.NewRedisCache(client)

	var got payload
	err := c.CacheOrExecute(context.Background(), cache.AdminStatsKey, &got, time.Minute, func() (any, error) {
		return payload{Count: 7}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 7, got.Count)

	assert.Error(t, c.Invalidate(context.Background(), cache.AdminStatsKey))
}

func TestNew_WithoutAddressIsNoop(t *testing.T) {
	c, closeFn := cache.New(context.Background(), "")
	assert.IsType(t, cache.Noop{}, c)
	assert.NoError(t, closeFn())
}
