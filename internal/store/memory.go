package store

import (
	"context"
	"errors"
	"sync"

	"github.com/leadfoundry/sitebrief/internal/clock"
)

// Memory provides an in-memory JobStore for development and tests.
type Memory struct {
	mu      sync.RWMutex
	jobs    map[string]Job
	logs    map[string][]string
	results map[string][]RowResult
	clock   clock.Clock
}

// NewMemory constructs a Memory store.
func NewMemory(clk clock.Clock) *Memory {
	if clk == nil {
		clk = clock.System{}
	}
	return &Memory{
		jobs:    make(map[string]Job),
		logs:    make(map[string][]string),
		results: make(map[string][]RowResult),
		clock:   clk,
	}
}

// CreateJob stores a new job; duplicate ids are rejected.
func (m *Memory) CreateJob(_ context.Context, job Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.jobs[job.ID]; exists {
		return errors.New("job already exists")
	}
	now := m.clock.Now()
	if job.CreatedAt.IsZero() {
		job.CreatedAt = now
	}
	job.UpdatedAt = now
	if job.Status == "" {
		job.Status = StatusPending
	}
	m.jobs[job.ID] = job
	return nil
}

// GetJob returns a copy of the stored job.
func (m *Memory) GetJob(_ context.Context, id string) (Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	job, ok := m.jobs[id]
	if !ok {
		return Job{}, ErrNotFound
	}
	return job, nil
}

// UpdateStatus transitions a job and records its latest message.
func (m *Memory) UpdateStatus(_ context.Context, id string, status JobStatus, message string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	job, ok := m.jobs[id]
	if !ok {
		return ErrNotFound
	}
	job.Status = status
	job.Message = message
	job.UpdatedAt = m.clock.Now()
	m.jobs[id] = job
	return nil
}

// SetProgress records row counters for a job.
func (m *Memory) SetProgress(_ context.Context, id string, done, total int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	job, ok := m.jobs[id]
	if !ok {
		return ErrNotFound
	}
	job.DoneRows = done
	job.TotalRows = total
	job.UpdatedAt = m.clock.Now()
	m.jobs[id] = job
	return nil
}

// AppendLog adds one line to the job's progress log.
func (m *Memory) AppendLog(_ context.Context, id, line string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.jobs[id]; !ok {
		return ErrNotFound
	}
	m.logs[id] = append(m.logs[id], line)
	return nil
}

// Logs returns a copy of the job's log lines in append order.
func (m *Memory) Logs(_ context.Context, id string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if _, ok := m.jobs[id]; !ok {
		return nil, ErrNotFound
	}
	return append([]string(nil), m.logs[id]...), nil
}

// SetRowResult records the summary for one row, replacing any previous
// result for the same row index.
func (m *Memory) SetRowResult(_ context.Context, id string, res RowResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.jobs[id]; !ok {
		return ErrNotFound
	}
	for i, existing := range m.results[id] {
		if existing.Row == res.Row {
			m.results[id][i] = res
			return nil
		}
	}
	m.results[id] = append(m.results[id], res)
	return nil
}

// RowResults returns a copy of all row results in insertion order.
func (m *Memory) RowResults(_ context.Context, id string) ([]RowResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if _, ok := m.jobs[id]; !ok {
		return nil, ErrNotFound
	}
	return append([]RowResult(nil), m.results[id]...), nil
}
