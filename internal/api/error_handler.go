package api

import (
	"net/http"

	"github.com/galamath/galamath/internal/errors"
	"github.com/galamath/galamath/internal/logger"
)

// handleError centralizes error handling for HTTP responses. Only the
// client-safe message is written; the wrapped cause goes to the log.
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())

	appErr, ok := errors.As(err)
	if !ok {
		appErr = errors.NewInternalError(err)
	}

	if appErr.Status >= 500 {
		log.Error("server error: %v", appErr)
	} else if appErr.Status >= 400 {
		log.Warn("client error: %v", appErr)
	} else {
		log.Debug("error: %v", appErr)
	}

	writeJSON(w, r, appErr.Status, map[string]any{
		"error": map[string]any{
			"code":    appErr.Code,
			"message": appErr.Message,
		},
	})
}
