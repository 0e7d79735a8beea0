package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/galamath/galamath/internal/errors"
	"github.com/galamath/galamath/internal/logger"
	"github.com/galamath/galamath/internal/ratelimit"
	"github.com/galamath/galamath/internal/services"
	"github.com/galamath/galamath/internal/speech"
)

const (
	maxBodyBytes       = 1 << 20
	maxLessonBodyBytes = 16 << 20
)

// Pinger reports whether the database answers.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Server struct {
	DB            Pinger
	StatsService  services.StatsService
	ResultService services.ResultService
	LessonService services.LessonService
	TutorService  services.TutorService
	AuthService   services.AuthService
	RosterService services.RosterService
	// Speech is nil when no speech backend is configured.
	Speech  speech.Synthesizer
	Limiter ratelimit.Limiter
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.FromContext(r.Context()).Warn("failed to write response: %v", err)
	}
}

func writeText(w http.ResponseWriter, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(text))
}

// decodeJSON reads a JSON body of at most limit bytes into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, limit int64, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.NewBadRequestError("invalid JSON body")
	}
	return nil
}
