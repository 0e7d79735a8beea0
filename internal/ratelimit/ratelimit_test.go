package ratelimit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInMemory_BurstThenDeny(t *testing.T) {
	l := NewInMemory(0.001, 2)
	ctx := context.Background()

	assert.True(t, l.Allow(ctx, "a"))
	assert.True(t, l.Allow(ctx, "a"))
	assert.False(t, l.Allow(ctx, "a"))
	assert.True(t, l.Allow(ctx, "b"), "keys have separate buckets")
	assert.Equal(t, 2, l.Size())
}

func TestInMemory_Sweep(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	l := NewInMemory(1, 1)
	l.now = func() time.Time { return now }

	l.Allow(context.Background(), "old")
	now = now.Add(11 * time.Minute)
	l.Allow(context.Background(), "fresh")

	assert.Equal(t, 1, l.Sweep())
	assert.Equal(t, 1, l.Size())
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		remote string
		want   string
	}{
		{remote: "10.0.0.1:5555", want: "10.0.0.1"},
		{remote: "[::1]:80", want: "::1"},
		{remote: "10.0.0.2", want: "10.0.0.2"},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.RemoteAddr = tt.remote
		assert.Equal(t, tt.want, ClientIP(r))
	}
}

func TestMiddleware(t *testing.T) {
	l := NewInMemory(0.001, 1)
	h := Middleware(l, nil, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	send := func() int {
		r := httptest.NewRequest(http.MethodPost, "/api/chat", nil)
		r.RemoteAddr = "192.0.2.7:1234"
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		return w.Code
	}

	assert.Equal(t, http.StatusNoContent, send())
	assert.Equal(t, http.StatusTooManyRequests, send())
}
