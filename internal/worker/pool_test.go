package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/galamath/galamath/internal/models"
	"github.com/galamath/galamath/internal/notify"
)

type funcJob struct {
	name string
	fn   func(context.Context) error
}

func (j funcJob) Name() string { return j.name }
func (j funcJob) Run(ctx context.Context) error { return j.fn(ctx) }

func TestPool_RunsJobs(t *testing.T) {
	p := NewPool(2, 8)
	p.Start(context.Background())

	var ran atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		require.NoError(t, p.Submit(funcJob{name: "count", fn: func(context.Context) error {
			defer wg.Done()
			ran.Add(1)
			return nil
		}}))
	}
	wg.Wait()
	p.Stop()

	assert.Equal(t, int32(5), ran.Load())
}

func TestPool_SubmitDoesNotBlockWhenFull(t *testing.T) {
	p := NewPool(1, 1)

	// Not started: nothing drains the queue.
	require.NoError(t, p.Submit(funcJob{name: "a", fn: func(context.Context) error { return nil }}))
	err := p.Submit(funcJob{name: "b", fn: func(context.Context) error { return nil }})
	assert.ErrorIs(t, err, ErrQueueFull)
	assert.Equal(t, 1, p.QueueSize())
}

func TestPool_SubmitAfterStop(t *testing.T) {
	p := NewPool(1, 1)
	p.Start(context.Background())
	p.Stop()
	p.Stop()

	err := p.Submit(funcJob{name: "late", fn: func(context.Context) error { return nil }})
	assert.ErrorIs(t, err, ErrPoolStopped)
}

func TestPool_SurvivesFailingAndPanickingJobs(t *testing.T) {
	p := NewPool(1, 4)
	p.Start(context.Background())

	done := make(chan struct{})
	require.NoError(t, p.Submit(funcJob{name: "fail", fn: func(context.Context) error { return errors.New("nope") }}))
	require.NoError(t, p.Submit(funcJob{name: "panic", fn: func(context.Context) error { panic("boom") }}))
	require.NoError(t, p.Submit(funcJob{name: "ok", fn: func(context.Context) error { close(done); return nil }}))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not survive earlier jobs")
	}
	p.Stop()
}

type recordingNotifier struct {
	msgs []notify.Message
}

func (r *recordingNotifier) Enabled() bool { return true }

func (r *recordingNotifier) Send(_ context.Context, msg notify.Message) error {
	r.msgs = append(r.msgs, msg)
	return nil
}

func TestSendResultEmailJob(t *testing.T) {
	n := &recordingNotifier{}
	job := &SendResultEmailJob{Notifier: n, Result: models.ResultSubmission{
		UserName: "Zoe", ThemeName: "Fractions", Level: models.LevelEasy, Score: 3, TotalQuestions: 3, Round: 1,
	}}

	require.NoError(t, job.Run(context.Background()))
	require.Len(t, n.msgs, 1)
	assert.Equal(t, "[Galamath] Zoe achieved PERFECT SCORE on Fractions (Easy Training)!", n.msgs[0].Subject)
	assert.Equal(t, "send_result_email", job.Name())
}
