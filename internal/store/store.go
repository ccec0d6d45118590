// Package store persists batch jobs, their progress logs and per-row
// results. Providers are selected by configuration; the interface is what
// the dispatcher and API layers program against.
package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a job id is unknown to the store.
var ErrNotFound = errors.New("job not found")

// JobStatus is the lifecycle state of a batch job.
type JobStatus string

const (
	StatusPending   JobStatus = "pending"
	StatusRunning   JobStatus = "running"
	StatusCompleted JobStatus = "completed"
	StatusFailed    JobStatus = "failed"
)

// Job is one batch summarization request, covering a CSV upload or an
// explicit URL list.
type Job struct {
	ID        string
	Source    string
	Status    JobStatus
	TotalRows int
	DoneRows  int
	Message   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RowResult is the summary produced for one input row.
type RowResult struct {
	Row       int
	URL       string
	Summary   string
	WordCount int
}

// JobStore is the persistence contract for batch jobs.
type JobStore interface {
	CreateJob(ctx context.Context, job Job) error
	GetJob(ctx context.Context, id string) (Job, error)
	UpdateStatus(ctx context.Context, id string, status JobStatus, message string) error
	SetProgress(ctx context.Context, id string, done, total int) error
	AppendLog(ctx context.Context, id, line string) error
	Logs(ctx context.Context, id string) ([]string, error)
	SetRowResult(ctx context.Context, id string, res RowResult) error
	RowResults(ctx context.Context, id string) ([]RowResult, error)
}
