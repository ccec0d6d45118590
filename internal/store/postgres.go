package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/leadfoundry/sitebrief/internal/clock"
)

// PostgresConfig controls the connection pool backing the Postgres store.
type PostgresConfig struct {
	DSN             string
	MaxConns        int32
	MaxConnLifetime time.Duration
}

type pgxQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// Postgres persists jobs, logs and row results in three tables.
type Postgres struct {
	pool  pgxQuerier
	clock clock.Clock
}

// NewPostgres connects a pool from config.
func NewPostgres(ctx context.Context, cfg PostgresConfig, clk clock.Clock) (*Postgres, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("store.dsn is required")
	}
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MaxConnLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return NewPostgresWithPool(pool, clk)
}

// NewPostgresWithPool constructs a store from an existing pool (primarily
// for testing).
func NewPostgresWithPool(pool pgxQuerier, clk clock.Clock) (*Postgres, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is required")
	}
	if clk == nil {
		clk = clock.System{}
	}
	return &Postgres{pool: pool, clock: clk}, nil
}

// Close releases the underlying pool resources.
func (p *Postgres) Close() {
	if p == nil || p.pool == nil {
		return
	}
	p.pool.Close()
}

// CreateJob inserts a job row.
func (p *Postgres) CreateJob(ctx context.Context, job Job) error {
	if job.ID == "" {
		return fmt.Errorf("job id is required")
	}
	now := p.clock.Now()
	if job.CreatedAt.IsZero() {
		job.CreatedAt = now
	}
	if job.Status == "" {
		job.Status = StatusPending
	}
	query := `
INSERT INTO jobs (id, source, status, total_rows, done_rows, message, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`
	args := []any{job.ID, job.Source, string(job.Status), job.TotalRows, job.DoneRows, job.Message, job.CreatedAt, now}
	if _, err := p.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("insert job: %w", err)
	}
	return nil
}

// GetJob fetches one job row.
func (p *Postgres) GetJob(ctx context.Context, id string) (Job, error) {
	query := `
SELECT id, source, status, total_rows, done_rows, message, created_at, updated_at
FROM jobs WHERE id = $1`
	var job Job
	var status string
	err := p.pool.QueryRow(ctx, query, id).Scan(
		&job.ID, &job.Source, &status, &job.TotalRows, &job.DoneRows,
		&job.Message, &job.CreatedAt, &job.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Job{}, ErrNotFound
	}
	if err != nil {
		return Job{}, fmt.Errorf("select job: %w", err)
	}
	job.Status = JobStatus(status)
	return job, nil
}

// UpdateStatus transitions a job and records its latest message.
func (p *Postgres) UpdateStatus(ctx context.Context, id string, status JobStatus, message string) error {
	query := `UPDATE jobs SET status = $2, message = $3, updated_at = $4 WHERE id = $1`
	tag, err := p.pool.Exec(ctx, query, id, string(status), message, p.clock.Now())
	if err != nil {
		return fmt.Errorf("update job status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetProgress records row counters for a job.
func (p *Postgres) SetProgress(ctx context.Context, id string, done, total int) error {
	query := `UPDATE jobs SET done_rows = $2, total_rows = $3, updated_at = $4 WHERE id = $1`
	tag, err := p.pool.Exec(ctx, query, id, done, total, p.clock.Now())
	if err != nil {
		return fmt.Errorf("update job progress: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// AppendLog adds one line to the job's progress log.
func (p *Postgres) AppendLog(ctx context.Context, id, line string) error {
	query := `INSERT INTO job_logs (job_id, line, created_at) VALUES ($1,$2,$3)`
	if _, err := p.pool.Exec(ctx, query, id, line, p.clock.Now()); err != nil {
		return fmt.Errorf("insert job log: %w", err)
	}
	return nil
}

// Logs returns the job's log lines in append order.
func (p *Postgres) Logs(ctx context.Context, id string) ([]string, error) {
	query := `SELECT line FROM job_logs WHERE job_id = $1 ORDER BY created_at, line`
	rows, err := p.pool.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("select job logs: %w", err)
	}
	defer rows.Close()

	var lines []string
	for rows.Next() {
		var line string
		if err := rows.Scan(&line); err != nil {
			return nil, fmt.Errorf("scan job log: %w", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate job logs: %w", err)
	}
	return lines, nil
}

// SetRowResult upserts the summary for one row.
func (p *Postgres) SetRowResult(ctx context.Context, id string, res RowResult) error {
	query := `
INSERT INTO job_results (job_id, row_index, url, summary, word_count)
VALUES ($1,$2,$3,$4,$5)
ON CONFLICT (job_id, row_index)
DO UPDATE SET url = EXCLUDED.url, summary = EXCLUDED.summary, word_count = EXCLUDED.word_count`
	if _, err := p.pool.Exec(ctx, query, id, res.Row, res.URL, res.Summary, res.WordCount); err != nil {
		return fmt.Errorf("upsert job result: %w", err)
	}
	return nil
}

// RowResults returns all row results ordered by the input row index.
func (p *Postgres) RowResults(ctx context.Context, id string) ([]RowResult, error) {
	query := `SELECT row_index, url, summary, word_count FROM job_results WHERE job_id = $1 ORDER BY row_index`
	rows, err := p.pool.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("select job results: %w", err)
	}
	defer rows.Close()

	var results []RowResult
	for rows.Next() {
		var res RowResult
		if err := rows.Scan(&res.Row, &res.URL, &res.Summary, &res.WordCount); err != nil {
			return nil, fmt.Errorf("scan job result: %w", err)
		}
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate job results: %w", err)
	}
	return results, nil
}
