package jobs

import (
	"github.com/galamath/galamath/internal/models"
	"github.com/galamath/galamath/internal/notify"
	"github.com/galamath/galamath/internal/worker"
)

// WorkerQueue implements JobQueue using worker pools
type WorkerQueue struct {
	notifyPool *worker.Pool
	notifier   notify.Notifier
}

// NewWorkerQueue creates a new WorkerQueue implementation
func NewWorkerQueue(notifyPool *worker.Pool, notifier notify.Notifier) JobQueue {
	return &WorkerQueue{
		notifyPool: notifyPool,
		notifier:   notifier,
	}
}

// EnqueueResultEmail queues the result email. It is a no-op when
// notifications are disabled.
func (q *WorkerQueue) EnqueueResultEmail(result models.ResultSubmission) error {
	if !q.notifier.Enabled() {
		return nil
	}
	return q.notifyPool.Submit(&worker.SendResultEmailJob{
		Notifier: q.notifier,
		Result:   result,
	})
}
