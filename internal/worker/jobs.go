package worker

import (
	"context"

	"github.com/galamath/galamath/internal/models"
	"github.com/galamath/galamath/internal/notify"
)

// SendResultEmailJob emails the outcome of one submitted round.
type SendResultEmailJob struct {
	Notifier notify.Notifier
	Result   models.ResultSubmission
}

func (j *SendResultEmailJob) Name() string { return "send_result_email" }

func (j *SendResultEmailJob) Run(ctx context.Context) error {
	return j.Notifier.Send(ctx, notify.ComposeResult(j.Result))
}
