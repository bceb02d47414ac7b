package async

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/rider-parser/internal/common"
	"github.com/joseph-ayodele/rider-parser/internal/core"
)

// ProcessorQueue parses jobs on a fixed pool of workers. Every job gets its own
// parse state and timeout. Callers must drain Results; it is closed once Shutdown
// has let the workers finish.
type ProcessorQueue struct {
	proc    *core.Processor
	logger  *slog.Logger
	workers int
	timeout time.Duration

	ch      chan indexedJob
	results chan Result
	wg      sync.WaitGroup
	once    sync.Once

	mu     sync.Mutex
	closed bool
	next   int
}

type indexedJob struct {
	job   Job
	index int
}

var _ Queue = (*ProcessorQueue)(nil)

type Option func(*ProcessorQueue)

func WithWorkers(n int) Option {
	return func(q *ProcessorQueue) {
		if n > 0 {
			q.workers = n
		}
	}
}
func WithQueueSize(n int) Option {
	return func(q *ProcessorQueue) {
		if n > 0 {
			q.ch = make(chan indexedJob, n)
			q.results = make(chan Result, n)
		}
	}
}
func WithProcessTimeout(d time.Duration) Option {
	return func(q *ProcessorQueue) {
		if d > 0 {
			q.timeout = d
		}
	}
}

func NewProcessorQueue(proc *core.Processor, logger *slog.Logger, opts ...Option) *ProcessorQueue {
	if logger == nil {
		logger = slog.Default()
	}
	q := &ProcessorQueue{
		proc:    proc,
		logger:  logger,
		workers: 4,
		timeout: 2 * time.Minute,
		ch:      make(chan indexedJob, 64),
		results: make(chan Result, 64),
	}
	for _, o := range opts {
		o(q)
	}
	q.start()
	return q
}

func (q *ProcessorQueue) start() {
	q.once.Do(func() {
		for i := 0; i < q.workers; i++ {
			q.wg.Add(1)
			go func(workerID int) {
				defer q.wg.Done()
				q.logger.Debug("queue.worker.started", "worker_id", workerID)

				for ij := range q.ch {
					q.results <- q.run(workerID, ij)
				}

				q.logger.Debug("queue.worker.stopped", "worker_id", workerID)
			}(i + 1)
		}
		// close results once every worker has exited
		go func() {
			q.wg.Wait()
			close(q.results)
		}()
	})
}

func (q *ProcessorQueue) run(workerID int, ij indexedJob) Result {
	job := ij.job
	ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
	defer cancel()
	ctx = common.WithRequestID(ctx, job.ID)
	ctx = common.WithLogger(ctx, q.logger.With("worker_id", workerID, "file", job.Name))

	out := q.proc.Process(ctx, job.Text)
	q.logger.Info("queue.job.ok",
		"worker_id", workerID,
		"req_id", job.ID,
		"name", job.Name,
		"source", out.Source,
		"wait_ms", time.Since(job.SubmittedAt).Milliseconds(),
	)
	return Result{Job: job, Index: ij.index, Outcome: out}
}

// Enqueue submits a job, blocking while the queue is full until ctx is done.
func (q *ProcessorQueue) Enqueue(ctx context.Context, job Job) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		q.logger.Warn("queue.enqueue.closed", "name", job.Name)
		return ErrQueueClosed
	}
	if job.ID == "" {
		job.ID = uuid.New().String()
	}
	if job.SubmittedAt.IsZero() {
		job.SubmittedAt = time.Now()
	}
	ij := indexedJob{job: job, index: q.next}

	select {
	case q.ch <- ij:
	default:
		q.logger.Warn("queue.enqueue.backpressure", "req_id", job.ID, "name", job.Name)
		select {
		case q.ch <- ij:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	q.next++
	q.logger.Debug("queue.enqueue.ok", "req_id", job.ID, "name", job.Name, "index", ij.index)
	return nil
}

// Results yields one Result per accepted job, in completion order.
func (q *ProcessorQueue) Results() <-chan Result {
	return q.results
}

// Shutdown stops accepting jobs and waits for queued ones to finish or ctx to end.
func (q *ProcessorQueue) Shutdown(ctx context.Context) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.ch)
	q.mu.Unlock()

	done := make(chan struct{})
	go func() { defer close(done); q.wg.Wait() }()

	select {
	case <-ctx.Done():
		q.logger.Warn("queue.shutdown.interrupted")
	case <-done:
		q.logger.Info("queue.shutdown.ok")
	}
}
