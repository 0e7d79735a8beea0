package services

import (
	"context"
	"strings"

	"github.com/galamath/galamath/internal/errors"
	"github.com/galamath/galamath/internal/logger"
	"github.com/galamath/galamath/internal/models"
	"github.com/galamath/galamath/internal/repository"
)

// LessonService stores generated lessons so a session can replay them
type LessonService interface {
	// Get returns nil when the session has no lesson yet.
	Get(ctx context.Context, sessionID string) (*models.Lesson, error)
	Save(ctx context.Context, lesson models.Lesson) error
}

type lessonService struct {
	lessonRepo repository.LessonRepository
}

// NewLessonService creates a new LessonService
func NewLessonService(lessonRepo repository.LessonRepository) LessonService {
	return &lessonService{lessonRepo: lessonRepo}
}

func (s *lessonService) Get(ctx context.Context, sessionID string) (*models.Lesson, error) {
	log := logger.FromContext(ctx).WithPrefix("lessons")

	if strings.TrimSpace(sessionID) == "" {
		return nil, errors.NewBadRequestError("sessionId required")
	}

	lesson, err := s.lessonRepo.Get(ctx, sessionID)
	if err != nil {
		log.Error("failed to fetch lesson: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return lesson, nil
}

func (s *lessonService) Save(ctx context.Context, lesson models.Lesson) error {
	log := logger.FromContext(ctx).WithPrefix("lessons")

	if strings.TrimSpace(lesson.SessionID) == "" || strings.TrimSpace(lesson.LessonText) == "" {
		return errors.NewBadRequestError("sessionId and lessonText required")
	}
	if lesson.Grade <= 0 {
		lesson.Grade = models.DefaultGrade
	}

	if err := s.lessonRepo.Upsert(ctx, lesson); err != nil {
		log.Error("failed to save lesson: %v", err)
		return errors.NewInternalError(err)
	}
	log.Info("saved lesson: session=%s audio=%t", lesson.SessionID, lesson.LessonAudioBase64 != "")
	return nil
}
