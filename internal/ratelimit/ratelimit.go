// Package ratelimit throttles the endpoints that call paid upstream APIs.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/galamath/galamath/internal/logger"
)

// Limiter decides whether a request identified by key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) bool
}

type entry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// InMemory keeps one token bucket per key. Buckets idle for longer than
// maxAge are dropped by Sweep.
type InMemory struct {
	rate   rate.Limit
	burst  int
	maxAge time.Duration
	now    func() time.Time

	mu      sync.Mutex
	entries map[string]*entry
}

func NewInMemory(rps float64, burst int) *InMemory {
	return &InMemory{
		rate:    rate.Limit(rps),
		burst:   burst,
		maxAge:  10 * time.Minute,
		now:     time.Now,
		entries: make(map[string]*entry),
	}
}

func (l *InMemory) Allow(ctx context.Context, key string) bool {
	now := l.now()

	l.mu.Lock()
	e, ok := l.entries[key]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.entries[key] = e
	}
	e.lastAccess = now
	l.mu.Unlock()

	if e.limiter.AllowN(now, 1) {
		return true
	}
	logger.FromContext(ctx).WithPrefix("ratelimit").Warn("rate limit exceeded: key=%s", key)
	return false
}

// Sweep removes buckets not used since maxAge ago and reports how many.
func (l *InMemory) Sweep() int {
	cutoff := l.now().Add(-l.maxAge)

	l.mu.Lock()
	defer l.mu.Unlock()
	removed := 0
	for key, e := range l.entries {
		if e.lastAccess.Before(cutoff) {
			delete(l.entries, key)
			removed++
		}
	}
	return removed
}

// Run sweeps every interval until ctx is done.
func (l *InMemory) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := l.Sweep(); n > 0 {
				logger.FromContext(ctx).WithPrefix("ratelimit").Debug("swept %d idle limiters", n)
			}
		}
	}
}

// Size returns the number of live buckets.
func (l *InMemory) Size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
