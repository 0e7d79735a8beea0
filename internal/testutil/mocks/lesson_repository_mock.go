package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/galamath/galamath/internal/models"
)

// MockLessonRepository is a mock implementation of repository.LessonRepository
type MockLessonRepository struct {
	mock.Mock
}

func (m *MockLessonRepository) Get(ctx context.Context, sessionID string) (*models.Lesson, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Lesson), args.Error(1)
}

func (m *MockLessonRepository) Upsert(ctx context.Context, lesson models.Lesson) error {
	args := m.Called(ctx, lesson)
	return args.Error(0)
}
