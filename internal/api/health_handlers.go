package api

import (
	"context"
	"net/http"
	"time"

	"github.com/galamath/galamath/internal/logger"
)

// handleHealth returns a liveness probe - always returns 200 OK.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// handleReady returns 200 when the database answers a ping, 503 otherwise.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if s.DB == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("Database unavailable"))
		return
	}
	if err := s.DB.PingContext(ctx); err != nil {
		log.Warn("readiness check failed - database: %v", err)
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("Database unavailable"))
		return
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Ready"))
}
