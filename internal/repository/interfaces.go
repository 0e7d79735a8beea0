package repository

import (
	"context"

	"github.com/galamath/galamath/internal/models"
)

// AttemptRepository handles quiz attempt data access
type AttemptRepository interface {
	List(ctx context.Context, filter models.AttemptFilter) ([]models.Attempt, error)
	Insert(ctx context.Context, attempt models.Attempt) (int64, error)
}

// LessonRepository handles lesson data access.
// Get returns (nil, nil) when no lesson exists for the session.
type LessonRepository interface {
	Get(ctx context.Context, sessionID string) (*models.Lesson, error)
	Upsert(ctx context.Context, lesson models.Lesson) error
}
