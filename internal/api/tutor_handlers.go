package api

import (
	"net/http"
	"strings"

	"github.com/galamath/galamath/internal/errors"
	"github.com/galamath/galamath/internal/models"
	"github.com/galamath/galamath/internal/speech"
)

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := decodeJSON(w, r, maxBodyBytes, &req); err != nil {
		handleError(w, r, err)
		return
	}
	reply, err := s.TutorService.Chat(r.Context(), req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeText(w, reply)
}

func (s *Server) handleExplain(w http.ResponseWriter, r *http.Request) {
	var req models.QuestionContext
	if err := decodeJSON(w, r, maxBodyBytes, &req); err != nil {
		handleError(w, r, err)
		return
	}
	reply, err := s.TutorService.Explain(r.Context(), req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeText(w, reply)
}

func (s *Server) handleLesson(w http.ResponseWriter, r *http.Request) {
	var req models.LessonRequest
	if err := decodeJSON(w, r, maxBodyBytes, &req); err != nil {
		handleError(w, r, err)
		return
	}
	text, err := s.TutorService.Lesson(r.Context(), req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeText(w, text)
}

func (s *Server) handleSpeak(w http.ResponseWriter, r *http.Request) {
	if s.Speech == nil {
		handleError(w, r, errors.NewUnavailableError("speech", nil))
		return
	}

	var body struct {
		Text string `json:"text"`
	}
	if err := decodeJSON(w, r, maxBodyBytes, &body); err != nil {
		handleError(w, r, err)
		return
	}
	if strings.TrimSpace(body.Text) == "" {
		handleError(w, r, errors.NewBadRequestError("text required"))
		return
	}

	audio, err := s.Speech.Synthesize(r.Context(), body.Text)
	if err != nil {
		handleError(w, r, errors.NewUnavailableError("speech", err))
		return
	}
	w.Header().Set("Content-Type", speech.ContentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(audio)
}
