package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/galamath/galamath/internal/cache"
)

// MockStatsCache is a mock implementation of cache.StatsCache. It only
// records invalidations; lookups always run the loader through cache.Noop.
type MockStatsCache struct {
	mock.Mock
}

func (m *MockStatsCache) CacheOrExecute(ctx context.Context, key string, dest any, ttl time.Duration, load cache.Loader) error {
	return cache.Noop{}.CacheOrExecute(ctx, key, dest, ttl, load)
}

func (m *MockStatsCache) Invalidate(ctx context.Context, keys ...string) error {
	args := m.Called(ctx, keys)
	return args.Error(0)
}
