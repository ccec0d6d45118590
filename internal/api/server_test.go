package api

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadfoundry/sitebrief/internal/clock"
	"github.com/leadfoundry/sitebrief/internal/config"
	"github.com/leadfoundry/sitebrief/internal/dispatcher"
	"github.com/leadfoundry/sitebrief/internal/metrics"
	"github.com/leadfoundry/sitebrief/internal/queue"
	"github.com/leadfoundry/sitebrief/internal/store"
)

func TestMain(m *testing.M) {
	metrics.Init()
	m.Run()
}

type noopRunner struct{}

func (noopRunner) Run(context.Context, queue.Item) error { return nil }

func newTestServer(t *testing.T) (*Server, *store.Memory, *queue.Queue) {
	t.Helper()
	jobs := store.NewMemory(clock.Fixed{T: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)})
	q := queue.New(8)
	disp := dispatcher.New(q, noopRunner{}, 1, nil)
	srv := NewServer(jobs, disp, nil, clock.System{}, config.Config{}, nil)
	return srv, jobs, q
}

func TestHealthEndpoints(t *testing.T) {
	t.Parallel()

	srv, _, _ := newTestServer(t)
	for _, path := range []string{"/healthz", "/readyz"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestSubmitJobFromURLList(t *testing.T) {
	t.Parallel()

	srv, jobs, q := newTestServer(t)
	body := strings.NewReader(`{"urls":["acme.io","globex.com"]}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/jobs", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusAccepted, rec.Code, rec.Body.String())
	var resp struct {
		JobID string `json:"job_id"`
		Rows  int    `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Rows)

	job, err := jobs.GetJob(context.Background(), resp.JobID)
	require.NoError(t, err)
	assert.Equal(t, store.StatusPending, job.Status)
	assert.Equal(t, 2, job.TotalRows)

	item, err := q.Dequeue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, resp.JobID, item.JobID)
	assert.Equal(t, []string{"acme.io", "globex.com"}, item.Seeds)
}

func TestSubmitJobFromCSVUpload(t *testing.T) {
	t.Parallel()

	srv, _, q := newTestServer(t)
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "companies.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte("Company,Website\nAcme,acme.io\nGlobex,globex.com\n"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/v1/jobs", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusAccepted, rec.Code, rec.Body.String())

	item, err := q.Dequeue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "companies.csv", item.Source)
	assert.Equal(t, []string{"acme.io", "globex.com"}, item.Seeds)
}

func TestSubmitJobRejectsCSVWithoutWebsiteColumn(t *testing.T) {
	t.Parallel()

	srv, _, _ := newTestServer(t)
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "broken.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte("Company,City\nAcme,Berlin\n"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/v1/jobs", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "website column")
}

func TestSubmitJobRejectsEmptyList(t *testing.T) {
	t.Parallel()

	srv, _, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/v1/jobs", strings.NewReader(`{"urls":[]}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestJobStatusNotFound(t *testing.T) {
	t.Parallel()

	srv, _, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/v1/jobs/unknown/status", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestJobStatusAndLogs(t *testing.T) {
	t.Parallel()

	srv, jobs, _ := newTestServer(t)
	ctx := context.Background()
	require.NoError(t, jobs.CreateJob(ctx, store.Job{ID: "job-9", Source: "upload.csv", TotalRows: 3}))
	require.NoError(t, jobs.UpdateStatus(ctx, "job-9", store.StatusRunning, ""))
	require.NoError(t, jobs.SetProgress(ctx, "job-9", 1, 3))
	require.NoError(t, jobs.AppendLog(ctx, "job-9", "row 1/3 done: acme.io (150 words, 2s)"))

	req := httptest.NewRequest(http.MethodGet, "/v1/jobs/job-9/status", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var status jobStatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "running", status.Status)
	assert.Equal(t, 1, status.DoneRows)
	assert.Equal(t, 3, status.TotalRows)

	req = httptest.NewRequest(http.MethodGet, "/v1/jobs/job-9/logs", nil)
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "row 1/3 done")
}

func TestJobResultConflictWhileRunning(t *testing.T) {
	t.Parallel()

	srv, jobs, _ := newTestServer(t)
	ctx := context.Background()
	require.NoError(t, jobs.CreateJob(ctx, store.Job{ID: "job-10", Status: store.StatusRunning}))

	req := httptest.NewRequest(http.MethodGet, "/v1/jobs/job-10/result", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestJobResultCSVDownload(t *testing.T) {
	t.Parallel()

	srv, jobs, _ := newTestServer(t)
	ctx := context.Background()
	require.NoError(t, jobs.CreateJob(ctx, store.Job{ID: "job-11"}))
	require.NoError(t, jobs.SetRowResult(ctx, "job-11", store.RowResult{
		Row: 1, URL: "acme.io", Summary: "Acme builds rockets.", WordCount: 3,
	}))
	require.NoError(t, jobs.UpdateStatus(ctx, "job-11", store.StatusCompleted, ""))

	req := httptest.NewRequest(http.MethodGet, "/v1/jobs/job-11/result", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "job-11_summaries.csv")
	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "row,website,summary,word_count", lines[0])
	assert.Contains(t, lines[1], "Acme builds rockets.")
}

func TestMetricsEndpoint(t *testing.T) {
	t.Parallel()

	srv, _, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
