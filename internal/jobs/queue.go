package jobs

import "github.com/galamath/galamath/internal/models"

// JobQueue provides an abstraction for enqueueing background jobs
type JobQueue interface {
	EnqueueResultEmail(result models.ResultSubmission) error
}
