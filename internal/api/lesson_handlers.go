package api

import (
	"net/http"
	"time"

	"github.com/galamath/galamath/internal/models"
)

type lessonResponse struct {
	Found             bool       `json:"found"`
	LessonText        string     `json:"lessonText,omitempty"`
	LessonAudioBase64 *string    `json:"lessonAudioBase64,omitempty"`
	CreatedAt         *time.Time `json:"createdAt,omitempty"`
}

func (s *Server) handleGetLesson(w http.ResponseWriter, r *http.Request) {
	lesson, err := s.LessonService.Get(r.Context(), r.URL.Query().Get("sessionId"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	if lesson == nil {
		writeJSON(w, r, http.StatusOK, lessonResponse{Found: false})
		return
	}

	resp := lessonResponse{
		Found:      true,
		LessonText: lesson.LessonText,
		CreatedAt:  &lesson.CreatedAt,
	}
	if lesson.LessonAudioBase64 != "" {
		resp.LessonAudioBase64 = &lesson.LessonAudioBase64
	}
	writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) handleSaveLesson(w http.ResponseWriter, r *http.Request) {
	var lesson models.Lesson
	if err := decodeJSON(w, r, maxLessonBodyBytes, &lesson); err != nil {
		handleError(w, r, err)
		return
	}
	if err := s.LessonService.Save(r.Context(), lesson); err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]bool{"success": true})
}
