// Package dispatcher fans a pool of batch workers over the job queue.
package dispatcher

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/leadfoundry/sitebrief/internal/metrics"
	"github.com/leadfoundry/sitebrief/internal/queue"
)

// Runner executes one dequeued batch job.
type Runner interface {
	Run(ctx context.Context, item queue.Item) error
}

// Dispatcher pulls jobs from the queue and hands them to a fixed pool of
// workers.
type Dispatcher struct {
	queue   *queue.Queue
	runner  Runner
	workers int
	logger  *zap.Logger
}

// New creates a Dispatcher. Workers below one are raised to one.
func New(q *queue.Queue, runner Runner, workers int, logger *zap.Logger) *Dispatcher {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		queue:   q,
		runner:  runner,
		workers: workers,
		logger:  logger,
	}
}

// Run starts the worker pool and blocks until the context finishes and all
// workers have drained.
func (d *Dispatcher) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for i := 0; i < d.workers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			d.workLoop(ctx, id)
		}(i)
	}
	<-ctx.Done()
	wg.Wait()
}

// Enqueue proxies to the underlying queue.
func (d *Dispatcher) Enqueue(ctx context.Context, item queue.Item) error {
	if err := d.queue.Enqueue(ctx, item); err != nil {
		return fmt.Errorf("queue enqueue: %w", err)
	}
	return nil
}

// TryEnqueue proxies the non-blocking variant; false means the queue is
// full.
func (d *Dispatcher) TryEnqueue(item queue.Item) bool {
	return d.queue.TryEnqueue(item)
}

func (d *Dispatcher) workLoop(ctx context.Context, id int) {
	for {
		item, err := d.queue.Dequeue(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			d.logger.Error("queue dequeue failed", zap.Int("worker", id), zap.Error(err))
			continue
		}
		d.logger.Debug("dequeued job",
			zap.Int("worker", id),
			zap.String("job_id", item.JobID),
		)
		d.runJob(ctx, item)
	}
}

func (d *Dispatcher) runJob(ctx context.Context, item queue.Item) {
	metrics.IncActiveWorkers()
	defer metrics.DecActiveWorkers()

	start := time.Now()
	if err := d.runner.Run(ctx, item); err != nil {
		metrics.ObserveJob("error")
		d.logger.Error("batch job failed",
			zap.String("job_id", item.JobID),
			zap.Duration("dur", time.Since(start)),
			zap.Error(err),
		)
		return
	}
	metrics.ObserveJob("success")
}
