package api

import (
	"net/http"

	"github.com/galamath/galamath/internal/logger"
	"github.com/galamath/galamath/internal/models"
)

func (s *Server) handleUsers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.RosterService.List())
}

// handleAuth answers {"success": bool}: 401 on a wrong code, 400 on a body
// that cannot be read.
func (s *Server) handleAuth(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Code string `json:"code"`
	}
	if err := decodeJSON(w, r, maxBodyBytes, &body); err != nil {
		writeJSON(w, r, http.StatusBadRequest, map[string]bool{"success": false})
		return
	}
	if !s.AuthService.Check(body.Code) {
		logger.FromContext(r.Context()).Warn("wrong passcode")
		writeJSON(w, r, http.StatusUnauthorized, map[string]bool{"success": false})
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleSubmitResult(w http.ResponseWriter, r *http.Request) {
	var result models.ResultSubmission
	if err := decodeJSON(w, r, maxBodyBytes, &result); err != nil {
		handleError(w, r, err)
		return
	}
	if err := s.ResultService.Submit(r.Context(), result); err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleAdminStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.StatsService.GetAdminStats(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, r, http.StatusOK, stats)
}
