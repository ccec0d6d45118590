package sinks

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/leadfoundry/sitebrief/internal/progress"
	"github.com/leadfoundry/sitebrief/internal/store"
)

// StoreSink persists progress events to a store.JobStore. Job stages drive
// the job lifecycle; row completions collapse to one progress write per job
// per batch to reduce write amplification.
type StoreSink struct {
	jobs   store.JobStore
	logger *zap.Logger
}

// NewStoreSink constructs a StoreSink for the provided job store.
func NewStoreSink(jobs store.JobStore, logger *zap.Logger) *StoreSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StoreSink{jobs: jobs, logger: logger}
}

// Consume persists the batch and returns any store error verbatim. It
// respects ctx deadlines inherited from the hub's per-sink timeout.
func (s *StoreSink) Consume(ctx context.Context, batch []progress.Event) error {
	if s == nil || s.jobs == nil {
		return nil
	}
	latest := make(map[string]rowProgress)

	for _, evt := range batch {
		switch evt.Stage {
		case progress.StageJobStart, progress.StageJobDone, progress.StageJobError:
			if err := s.handleJobEvent(ctx, evt); err != nil {
				return err
			}
		case progress.StageRowDone, progress.StageRowError:
			if err := s.handleRowEvent(ctx, evt); err != nil {
				return err
			}
			if cur, ok := latest[evt.JobID]; !ok || evt.Row > cur.done {
				latest[evt.JobID] = rowProgress{done: evt.Row, total: evt.Total}
			}
		}
	}

	for jobID, prog := range latest {
		if err := s.jobs.SetProgress(ctx, jobID, prog.done, prog.total); err != nil {
			return fmt.Errorf("set progress: %w", err)
		}
	}
	return nil
}

func (s *StoreSink) handleJobEvent(ctx context.Context, evt progress.Event) error {
	switch evt.Stage {
	case progress.StageJobStart:
		if err := s.jobs.UpdateStatus(ctx, evt.JobID, store.StatusRunning, ""); err != nil {
			return fmt.Errorf("mark job running: %w", err)
		}
	case progress.StageJobDone:
		if err := s.jobs.UpdateStatus(ctx, evt.JobID, store.StatusCompleted, evt.Note); err != nil {
			return fmt.Errorf("mark job completed: %w", err)
		}
	case progress.StageJobError:
		if err := s.jobs.UpdateStatus(ctx, evt.JobID, store.StatusFailed, evt.Note); err != nil {
			return fmt.Errorf("mark job failed: %w", err)
		}
	}
	return nil
}

func (s *StoreSink) handleRowEvent(ctx context.Context, evt progress.Event) error {
	line := formatRowLog(evt)
	if err := s.jobs.AppendLog(ctx, evt.JobID, line); err != nil {
		return fmt.Errorf("append row log: %w", err)
	}
	return nil
}

func formatRowLog(evt progress.Event) string {
	switch evt.Stage {
	case progress.StageRowError:
		return fmt.Sprintf("row %d/%d failed: %s (%s)", evt.Row, evt.Total, evt.URL, evt.Note)
	default:
		return fmt.Sprintf("row %d/%d done: %s (%d words, %s)", evt.Row, evt.Total, evt.URL, evt.Words, evt.Dur.Round(time.Millisecond))
	}
}

// Close implements the Sink interface; it performs no action.
func (s *StoreSink) Close(context.Context) error {
	return nil
}

type rowProgress struct {
	done  int
	total int
}
