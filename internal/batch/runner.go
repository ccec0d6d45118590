package batch

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/leadfoundry/sitebrief/internal/clock"
	"github.com/leadfoundry/sitebrief/internal/progress"
	"github.com/leadfoundry/sitebrief/internal/queue"
	"github.com/leadfoundry/sitebrief/internal/store"
	"github.com/leadfoundry/sitebrief/internal/summarize"
)

// noURLProvided is the summary text stored for rows with an empty website
// cell.
const noURLProvided = "No URL provided"

// Summarizer produces one summary per seed URL.
type Summarizer interface {
	Summarize(ctx context.Context, seedURL string, opts summarize.Options) (summarize.Result, error)
}

// Runner executes one batch job at a time: every row's seed flows through
// the summary pipeline, results land in the job store and milestones go out
// over the progress emitter.
type Runner struct {
	summarizer Summarizer
	jobs       store.JobStore
	emitter    progress.Emitter
	opts       summarize.Options
	clock      clock.Clock
	logger     *zap.Logger
}

// NewRunner constructs a Runner. A nil emitter discards progress events.
func NewRunner(
	summarizer Summarizer,
	jobs store.JobStore,
	emitter progress.Emitter,
	opts summarize.Options,
	clk clock.Clock,
	logger *zap.Logger,
) *Runner {
	if emitter == nil {
		emitter = progress.Discard{}
	}
	if clk == nil {
		clk = clock.System{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		summarizer: summarizer,
		jobs:       jobs,
		emitter:    emitter,
		opts:       opts,
		clock:      clk,
		logger:     logger,
	}
}

// Run processes the job's rows in order. Row failures become stored failure
// text rather than errors; only context cancellation aborts the job.
func (r *Runner) Run(ctx context.Context, item queue.Item) error {
	total := len(item.Seeds)
	jobStart := r.clock.Now()
	r.emit(progress.Event{
		JobID: item.JobID,
		TS:    jobStart,
		Stage: progress.StageJobStart,
		Total: total,
	})
	r.logger.Info("batch job started",
		zap.String("job_id", item.JobID),
		zap.String("source", item.Source),
		zap.Int("rows", total),
	)

	for i, seed := range item.Seeds {
		if err := ctx.Err(); err != nil {
			r.emit(progress.Event{
				JobID: item.JobID,
				TS:    r.clock.Now(),
				Stage: progress.StageJobError,
				Total: total,
				Note:  "job canceled",
				Dur:   r.clock.Now().Sub(jobStart),
			})
			return fmt.Errorf("batch job %s canceled: %w", item.JobID, err)
		}
		r.processRow(ctx, item, i+1, total, seed)
	}

	r.emit(progress.Event{
		JobID: item.JobID,
		TS:    r.clock.Now(),
		Stage: progress.StageJobDone,
		Total: total,
		Dur:   r.clock.Now().Sub(jobStart),
	})
	r.logger.Info("batch job finished",
		zap.String("job_id", item.JobID),
		zap.Duration("dur", r.clock.Now().Sub(jobStart)),
	)
	return nil
}

func (r *Runner) processRow(ctx context.Context, item queue.Item, row, total int, seed string) {
	r.emit(progress.Event{
		JobID: item.JobID,
		TS:    r.clock.Now(),
		Stage: progress.StageRowStart,
		Row:   row,
		Total: total,
		URL:   seed,
	})

	if seed == "" {
		r.storeResult(ctx, item.JobID, store.RowResult{Row: row, Summary: noURLProvided})
		r.emit(progress.Event{
			JobID: item.JobID,
			TS:    r.clock.Now(),
			Stage: progress.StageRowError,
			Row:   row,
			Total: total,
			Note:  noURLProvided,
		})
		return
	}

	start := r.clock.Now()
	res, err := r.summarizer.Summarize(ctx, seed, r.opts)
	dur := r.clock.Now().Sub(start)
	if err != nil {
		r.storeResult(ctx, item.JobID, store.RowResult{
			Row:     row,
			URL:     seed,
			Summary: fmt.Sprintf("Error processing %s: %v", seed, err),
		})
		r.emit(progress.Event{
			JobID: item.JobID,
			TS:    r.clock.Now(),
			Stage: progress.StageRowError,
			Row:   row,
			Total: total,
			URL:   seed,
			Note:  err.Error(),
			Dur:   dur,
		})
		return
	}

	r.storeResult(ctx, item.JobID, store.RowResult{
		Row:       row,
		URL:       seed,
		Summary:   res.Summary,
		WordCount: res.Diagnostics.WordCount,
	})
	r.emit(progress.Event{
		JobID: item.JobID,
		TS:    r.clock.Now(),
		Stage: progress.StageRowDone,
		Row:   row,
		Total: total,
		URL:   seed,
		Words: res.Diagnostics.WordCount,
		Dur:   dur,
	})
}

func (r *Runner) storeResult(ctx context.Context, jobID string, res store.RowResult) {
	if err := r.jobs.SetRowResult(ctx, jobID, res); err != nil {
		r.logger.Error("store row result failed",
			zap.String("job_id", jobID),
			zap.Int("row", res.Row),
			zap.Error(err),
		)
	}
}

func (r *Runner) emit(evt progress.Event) {
	r.emitter.Emit(evt)
}
