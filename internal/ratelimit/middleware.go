package ratelimit

import (
	"net"
	"net/http"
)

// KeyFunc extracts the rate limit key of a request.
type KeyFunc func(*http.Request) string

// ClientIP keys requests by remote host. Put chi's RealIP in front of it to
// honour proxy headers.
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// Middleware rejects requests over the limit by calling denied instead of
// the next handler.
func Middleware(limiter Limiter, key KeyFunc, denied http.HandlerFunc) func(http.Handler) http.Handler {
	if key == nil {
		key = ClientIP
	}
	if denied == nil {
		denied = func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
		}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(r.Context(), key(r)) {
				denied(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
