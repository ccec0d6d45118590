// Package progress defines the events emitted while a batch job works
// through its rows, and the hub that fans them out to sinks.
package progress

import (
	"errors"
	"fmt"
	"time"
)

// Stage denotes the milestone an Event represents.
type Stage string

// Supported progress stages.
const (
	StageJobStart Stage = "JOB_START"
	StageJobDone  Stage = "JOB_DONE"
	StageJobError Stage = "JOB_ERROR"
	StageRowStart Stage = "ROW_START"
	StageRowDone  Stage = "ROW_DONE"
	StageRowError Stage = "ROW_ERROR"
)

// Event captures a single milestone of batch-job progress.
type Event struct {
	// JobID identifies the job run.
	JobID string
	// TS is the UTC timestamp recorded by the emitter.
	TS time.Time
	// Stage denotes which milestone occurred.
	Stage Stage
	// Row is the 1-based input row for row-scoped stages.
	Row int
	// Total is the number of input rows, set on job and row stages.
	Total int
	// URL is the row's seed URL, when known.
	URL string
	// Words is the final summary word count for ROW_DONE.
	Words int
	// Dur captures execution latency for done stages.
	Dur time.Duration
	// Note carries low-volume context such as error text.
	Note string
}

// Validate performs coarse validation on Event payloads.
func (e Event) Validate() error {
	if e.JobID == "" {
		return errors.New("job id is required")
	}
	if e.TS.IsZero() {
		return errors.New("timestamp is required")
	}
	switch e.Stage {
	case StageJobStart, StageJobDone, StageJobError:
	case StageRowStart, StageRowDone, StageRowError:
		if e.Row <= 0 {
			return errors.New("row stages require a positive row")
		}
	default:
		return fmt.Errorf("unknown stage %q", e.Stage)
	}
	if e.Dur < 0 {
		return errors.New("duration must be >= 0")
	}
	return nil
}
