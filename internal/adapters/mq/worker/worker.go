// Package worker ranks queued screenings in the background.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"github.com/okian/screener/internal/adapters/mq/queue"
	"github.com/okian/screener/internal/domain/model"
	"github.com/okian/screener/internal/domain/ranking"
	"github.com/okian/screener/pkg/logger"
	"github.com/okian/screener/pkg/metrics"
)

const defaultJobTimeout = 30 * time.Second

// Job is what workers read off the queue.
type Job = queue.Job

// Queue defines how workers receive jobs.
type Queue interface {
	Dequeue() <-chan Job
}

// Ranker orders the candidates of a screening.
type Ranker interface {
	Rank(ctx context.Context, candidates []model.ResumeRecord, jd string) ([]model.RankedCandidate, error)
}

// Results records the outcome of a screening.
type Results interface {
	Complete(ctx context.Context, id string, ranked []model.RankedCandidate, summary model.Summary) error
	Fail(ctx context.Context, id string, reason string) error
}

// TalentPool keeps the best score of each candidate per role.
type TalentPool interface {
	Offer(ctx context.Context, role string, c model.RankedCandidate) (bool, error)
}

// InMemoryWorker consumes screenings until its queue closes.
type InMemoryWorker struct {
	queue      Queue
	ranker     Ranker
	results    Results
	pool       TalentPool
	name       string
	jobTimeout time.Duration

	done   chan struct{}
	logger logger.Logger
}

// NewInMemoryWorker creates a worker. pool may be nil.
func NewInMemoryWorker(q Queue, r Ranker, results Results, pool TalentPool, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:      q,
		ranker:     r,
		results:    results,
		pool:       pool,
		name:       "worker",
		jobTimeout: defaultJobTimeout,
		done:       make(chan struct{}),
		logger:     logger.Get().Named("worker"),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.name != "worker" {
		w.logger = w.logger.Named(w.name)
	}
	return w
}

// Run processes jobs until the queue closes or ctx is cancelled.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer close(w.done)

	jobs := w.queue.Dequeue()
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-jobs:
			if !ok {
				return
			}
			if err := w.process(ctx, job); err != nil {
				w.logger.Error(ctx, "screening failed", logger.String("screening_id", job.ID), logger.Error(err))
			}
		}
	}
}

// Done is closed when Run returns.
func (w *InMemoryWorker) Done() <-chan struct{} { return w.done }

func (w *InMemoryWorker) process(ctx context.Context, job Job) error { //nolint:gocritic // jobs travel by value
	metrics.WorkerBusy(1)
	defer metrics.WorkerBusy(-1)

	start := time.Now()
	jobCtx, cancel := context.WithTimeout(ctx, w.jobTimeout)
	defer cancel()

	ranked, err := w.ranker.Rank(jobCtx, job.Candidates, job.JobDescription)
	if err != nil {
		metrics.RecordScreeningFailed()
		metrics.RecordErrorByComponent("worker", "rank")
		if ferr := w.results.Fail(ctx, job.ID, err.Error()); ferr != nil {
			return fmt.Errorf("record failure of %s: %w", job.ID, ferr)
		}
		return fmt.Errorf("rank screening %s: %w", job.ID, err)
	}

	if w.pool != nil && job.Role != "" {
		for _, c := range ranked {
			if c.ID == "" {
				continue
			}
			if _, err := w.pool.Offer(ctx, job.Role, c); err != nil {
				metrics.RecordErrorByComponent("worker", "talent_pool")
				w.logger.Warn(ctx, "talent pool update failed",
					logger.String("role", job.Role),
					logger.String("candidate_id", c.ID),
					logger.Error(err),
				)
			}
		}
	}

	summary := ranking.Summarize(ranked)
	if err := w.results.Complete(ctx, job.ID, ranked, summary); err != nil {
		metrics.RecordErrorByComponent("worker", "store")
		return fmt.Errorf("store screening %s: %w", job.ID, err)
	}

	metrics.RecordCandidatesRanked(len(ranked))
	metrics.RecordScreeningCompleted(float64(time.Since(start).Milliseconds()))
	w.logger.Debug(ctx, "screening ranked",
		logger.String("screening_id", job.ID),
		logger.Int("candidates", len(ranked)),
		logger.Float64("top_score", summary.TopScore),
	)
	return nil
}

// Pool runs a fixed set of workers over one queue.
type Pool struct {
	workers []*InMemoryWorker
	queue   Queue
	logger  logger.Logger
}

// NewPool creates a pool of workerCount workers. A count below one uses one
// worker per CPU.
func NewPool(workerCount int, q Queue, r Ranker, results Results, pool TalentPool, opts ...Option) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU()
	}
	p := &Pool{
		workers: make([]*InMemoryWorker, workerCount),
		queue:   q,
		logger:  logger.Get().Named("worker-pool"),
	}
	for i := range p.workers {
		wopts := append([]Option{WithName("worker-" + strconv.Itoa(i))}, opts...)
		p.workers[i] = NewInMemoryWorker(q, r, results, pool, wopts...)
	}
	metrics.UpdateWorkerCount(workerCount)
	return p
}

// Size returns the number of workers.
func (p *Pool) Size() int { return len(p.workers) }

// Start launches every worker.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
}

// Shutdown closes the queue and waits for the workers to drain it.
func (p *Pool) Shutdown(ctx context.Context) error {
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}
	for i, w := range p.workers {
		select {
		case <-w.done:
		case <-ctx.Done():
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
			return fmt.Errorf("worker pool shutdown: %w", ctx.Err())
		}
	}
	metrics.UpdateWorkerCount(0)
	return nil
}
