package worker

import (
	"context"
	"sync"
	"time"

	"github.com/calmacil/dartscore/internal/logger"
)

// Job is a unit of background work, such as a document migration or a
// summary refresh.
type Job interface {
	Run(context.Context) error
	Name() string
}

// Pool runs submitted jobs on a fixed set of workers over a bounded queue.
type Pool struct {
	jobs    chan Job
	wg      sync.WaitGroup
	workers int
	cancel  context.CancelFunc
	log     *logger.Logger
}

const (
	defaultWorkers   = 2
	defaultQueueSize = 64
)

// NewPool creates a stopped pool. Non-positive sizes fall back to defaults.
func NewPool(workers, queueSize int) *Pool {
	if workers <= 0 {
		workers = defaultWorkers
	}
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	log := logger.Default().WithPrefix("pool")
	log.Debug("pool sized at %d workers, queue %d", workers, queueSize)
	return &Pool{
		jobs:    make(chan Job, queueSize),
		workers: workers,
		log:     log,
	}
}

// Start launches the workers. Cancelling ctx stops them; so does Stop.
func (p *Pool) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.log.Info("starting %d workers", p.workers)

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.work(ctx, i+1)
	}
}

func (p *Pool) work(ctx context.Context, id int) {
	defer p.wg.Done()
	log := p.log.WithField("worker_id", id)
	log.Debug("worker up")

	for {
		select {
		case <-ctx.Done():
			log.Debug("worker stopping: context cancelled")
			return
		case job, ok := <-p.jobs:
			if !ok || job == nil {
				log.Debug("worker stopping: queue closed")
				return
			}
			p.runJob(ctx, log, job)
		}
	}
}

// runJob executes one job with its own logger in the context. A panicking
// job is logged and absorbed so it cannot take the worker down.
func (p *Pool) runJob(ctx context.Context, log *logger.Logger, job Job) {
	jobLog := log.WithField("job", job.Name())
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			jobLog.Error("job panicked after %v: %v", time.Since(start), r)
		}
	}()

	if err := job.Run(logger.NewContext(ctx, jobLog)); err != nil {
		jobLog.Error("job failed after %v: %v", time.Since(start), err)
		return
	}
	jobLog.Info("job completed in %v", time.Since(start))
}

// Stop cancels the workers, drains nothing, and waits for them to exit.
func (p *Pool) Stop() {
	p.log.Info("stopping pool")
	if p.cancel != nil {
		p.cancel()
	}
	close(p.jobs)
	p.wg.Wait()
	p.log.Info("pool stopped")
}

// Submit queues a job, blocking while the queue is full.
func (p *Pool) Submit(job Job) {
	p.log.Debug("queueing job: %s", job.Name())
	p.jobs <- job
}

// QueueSize returns the current number of pending jobs.
func (p *Pool) QueueSize() int {
	return len(p.jobs)
}
