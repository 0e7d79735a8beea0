package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/galamath/galamath/internal/models"
)

// MockJobQueue is a mock implementation of jobs.JobQueue
type MockJobQueue struct {
	mock.Mock
}

func (m *MockJobQueue) EnqueueResultEmail(result models.ResultSubmission) error {
	args := m.Called(result)
	return args.Error(0)
}
