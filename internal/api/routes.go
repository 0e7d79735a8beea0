package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// upstreamTimeout bounds requests that wait on a model or speech backend.
const upstreamTimeout = 90 * time.Second

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Get("/users", s.handleUsers)
		r.Post("/results", s.handleSubmitResult)
		r.Get("/lessons", s.handleGetLesson)
		r.Post("/lessons", s.handleSaveLesson)
		r.With(s.requirePasscode).Get("/admin/stats", s.handleAdminStats)

		r.Group(func(r chi.Router) {
			r.Use(s.rateLimit)
			r.Post("/auth", s.handleAuth)

			r.Group(func(r chi.Router) {
				r.Use(timeoutMiddleware(upstreamTimeout))
				r.Post("/chat", s.handleChat)
				r.Post("/explain", s.handleExplain)
				r.Post("/lesson", s.handleLesson)
				r.Post("/speak", s.handleSpeak)
			})
		})
	})

	return r
}
