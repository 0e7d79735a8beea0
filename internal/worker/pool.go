package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/galamath/galamath/internal/logger"
)

var (
	// ErrQueueFull is returned by Submit when every queue slot is taken.
	ErrQueueFull = errors.New("worker queue full")
	// ErrPoolStopped is returned by Submit after Stop.
	ErrPoolStopped = errors.New("worker pool stopped")
)

type Job interface {
	Run(context.Context) error
	Name() string
}

type Pool struct {
	jobs    chan Job
	wg      sync.WaitGroup
	workers int
	queue   int
	cancel  context.CancelFunc
	log     *logger.Logger

	mu      sync.RWMutex
	stopped bool
}

func NewPool(workers, queueSize int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 64
	}
	log := logger.Default().WithPrefix("worker-pool")
	log.Debug("creating worker pool with %d workers and queue size %d", workers, queueSize)
	return &Pool{
		jobs:    make(chan Job, queueSize),
		workers: workers,
		queue:   queueSize,
		log:     log,
	}
}

func (p *Pool) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.log.Info("starting worker pool with %d workers", p.workers)

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go func(id int) {
			defer p.wg.Done()
			workerLog := p.log.WithField("worker_id", id)
			workerLog.Debug("worker started")

			for {
				select {
				case <-ctx.Done():
					workerLog.Debug("worker shutting down (context cancelled)")
					return
				case job, ok := <-p.jobs:
					if !ok {
						workerLog.Debug("worker shutting down (queue closed)")
						return
					}
					p.run(ctx, workerLog, job)
				}
			}
		}(i + 1)
	}
}

func (p *Pool) run(ctx context.Context, workerLog *logger.Logger, job Job) {
	jobLog := workerLog.WithField("job", job.Name())
	jobLog.Debug("starting job")
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			jobLog.Error("job panicked after %v: %v", time.Since(start), r)
		}
	}()

	jobCtx := logger.NewContext(ctx, jobLog)
	if err := job.Run(jobCtx); err != nil {
		jobLog.Error("job failed after %v: %v", time.Since(start), err)
	} else {
		jobLog.Info("job completed in %v", time.Since(start))
	}
}

// Stop closes the queue, lets workers drain what is already queued and
// waits for them. Queued jobs are abandoned if ctx passed to Start ends first.
func (p *Pool) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.jobs)
	p.mu.Unlock()

	p.log.Info("stopping worker pool")
	p.wg.Wait()
	if p.cancel != nil {
		p.cancel()
	}
	p.log.Info("worker pool stopped")
}

// Submit enqueues job without blocking.
func (p *Pool) Submit(job Job) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stopped {
		return ErrPoolStopped
	}

	select {
	case p.jobs <- job:
		p.log.Debug("submitted job: %s", job.Name())
		return nil
	default:
		p.log.Warn("dropping job %s: queue full (%d)", job.Name(), p.queue)
		return ErrQueueFull
	}
}

// QueueSize returns the current number of pending jobs.
func (p *Pool) QueueSize() int {
	return len(p.jobs)
}
