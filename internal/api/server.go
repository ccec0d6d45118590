// Package api exposes the HTTP interface for the summary service.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/leadfoundry/sitebrief/internal/batch"
	"github.com/leadfoundry/sitebrief/internal/clock"
	"github.com/leadfoundry/sitebrief/internal/config"
	"github.com/leadfoundry/sitebrief/internal/dispatcher"
	"github.com/leadfoundry/sitebrief/internal/id"
	"github.com/leadfoundry/sitebrief/internal/metrics"
	"github.com/leadfoundry/sitebrief/internal/queue"
	"github.com/leadfoundry/sitebrief/internal/store"
)

// maxUploadBytes caps CSV uploads at 16 MiB.
const maxUploadBytes = 16 << 20

// enqueueTimeout bounds how long a submit request may wait on a full queue.
const enqueueTimeout = 5 * time.Second

// Server wires HTTP handlers to the dispatcher and job store.
type Server struct {
	router chi.Router
	jobs   store.JobStore
	disp   *dispatcher.Dispatcher
	idGen  id.Generator
	clock  clock.Clock
	cfg    config.Config
	logger *zap.Logger
}

// NewServer constructs a Server with middleware and routes.
func NewServer(
	jobs store.JobStore,
	disp *dispatcher.Dispatcher,
	idGen id.Generator,
	clk clock.Clock,
	cfg config.Config,
	logger *zap.Logger,
) *Server {
	if idGen == nil {
		idGen = id.UUID{}
	}
	if clk == nil {
		clk = clock.System{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		jobs:   jobs,
		disp:   disp,
		idGen:  idGen,
		clock:  clk,
		cfg:    cfg,
		logger: logger,
	}

	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoverMiddleware)
	r.Use(metrics.Middleware)

	r.Get("/healthz", s.healthz)
	r.Get("/readyz", s.readyz)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Route("/jobs", func(r chi.Router) {
			r.Post("/", s.submitJob)
			r.Route("/{job_id}", func(r chi.Router) {
				r.Get("/status", s.getJobStatus)
				r.Get("/logs", s.getJobLogs)
				r.Get("/result", s.getJobResult)
			})
		})
	})

	s.router = r
	return s
}

// Handler returns the router for use with http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) readyz(w http.ResponseWriter, r *http.Request) {
	if _, err := s.jobs.GetJob(r.Context(), "readiness-probe"); err != nil && !errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusServiceUnavailable, "job store unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// submitJob accepts either a multipart CSV upload (field "file") or a JSON
// body with a "urls" list. Both produce an async job.
func (s *Server) submitJob(w http.ResponseWriter, r *http.Request) {
	seeds, source, err := s.parseSubmission(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(seeds) == 0 {
		writeError(w, http.StatusBadRequest, "no rows to process")
		return
	}

	jobID, err := s.enqueueJob(r.Context(), source, seeds)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, context.DeadlineExceeded) {
			status = http.StatusServiceUnavailable
		}
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]any{
		"job_id": jobID,
		"rows":   len(seeds),
	})
}

type urlListRequest struct {
	URLs []string `json:"urls"`
}

func (s *Server) parseSubmission(r *http.Request) ([]string, string, error) {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return nil, "", errors.New("missing Content-Type")
	}

	if strings.HasPrefix(strings.ToLower(contentType), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			return nil, "", fmt.Errorf("parse upload: %w", err)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			return nil, "", errors.New("missing file field")
		}
		defer file.Close()
		doc, err := batch.Parse(file)
		if err != nil {
			return nil, "", err
		}
		return doc.Seeds(), header.Filename, nil
	}

	var req urlListRequest
	if err := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxUploadBytes)).Decode(&req); err != nil {
		return nil, "", errors.New("invalid JSON")
	}
	return req.URLs, "url-list", nil
}

func (s *Server) enqueueJob(ctx context.Context, source string, seeds []string) (string, error) {
	jobID, err := s.idGen.NewID()
	if err != nil {
		return "", fmt.Errorf("generate job id: %w", err)
	}
	job := store.Job{
		ID:        jobID,
		Source:    source,
		Status:    store.StatusPending,
		TotalRows: len(seeds),
		CreatedAt: s.clock.Now(),
	}
	if err := s.jobs.CreateJob(ctx, job); err != nil {
		return "", fmt.Errorf("create job: %w", err)
	}

	queueCtx, cancel := context.WithTimeout(ctx, enqueueTimeout)
	defer cancel()
	item := queue.Item{JobID: jobID, Source: source, Seeds: seeds}
	if err := s.disp.Enqueue(queueCtx, item); err != nil {
		if updateErr := s.jobs.UpdateStatus(ctx, jobID, store.StatusFailed, "enqueue failed"); updateErr != nil {
			s.logger.Error("mark job failed after enqueue error",
				zap.String("job_id", jobID),
				zap.Error(updateErr),
			)
		}
		return "", fmt.Errorf("enqueue job: %w", err)
	}
	return jobID, nil
}

func (s *Server) getJobStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "job_id")
	job, err := s.jobs.GetJob(r.Context(), jobID)
	if err != nil {
		writeError(w, http.StatusNotFound, "job not found")
		return
	}
	writeJSON(w, http.StatusOK, jobStatusResponse{
		JobID:     job.ID,
		Source:    job.Source,
		Status:    string(job.Status),
		TotalRows: job.TotalRows,
		DoneRows:  job.DoneRows,
		Message:   job.Message,
		CreatedAt: job.CreatedAt,
		UpdatedAt: job.UpdatedAt,
	})
}

type jobStatusResponse struct {
	JobID     string    `json:"job_id"`
	Source    string    `json:"source"`
	Status    string    `json:"status"`
	TotalRows int       `json:"total_rows"`
	DoneRows  int       `json:"done_rows"`
	Message   string    `json:"message,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Server) getJobLogs(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "job_id")
	logs, err := s.jobs.Logs(r.Context(), jobID)
	if err != nil {
		writeError(w, http.StatusNotFound, "job not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"job_id": jobID, "logs": logs})
}

// getJobResult streams the summaries as a CSV download once the job is
// finished.
func (s *Server) getJobResult(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "job_id")
	job, err := s.jobs.GetJob(r.Context(), jobID)
	if err != nil {
		writeError(w, http.StatusNotFound, "job not found")
		return
	}
	if job.Status != store.StatusCompleted && job.Status != store.StatusFailed {
		writeError(w, http.StatusConflict, "job still processing")
		return
	}
	results, err := s.jobs.RowResults(r.Context(), jobID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to fetch results")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", jobID+"_summaries.csv"))
	if err := batch.RenderResults(w, results); err != nil {
		s.logger.Error("write result csv failed", zap.String("job_id", jobID), zap.Error(err))
	}
}

type requestIDKey struct{}

func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := uuid.NewString()
		ctx := context.WithValue(r.Context(), requestIDKey{}, reqID)
		w.Header().Set("X-Request-ID", reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(ww, r)
		s.logger.Info("request completed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.status),
			zap.Duration("dur", time.Since(start)),
		)
	})
}

func (s *Server) recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("panic recovered", zap.Any("panic", rec))
				writeError(w, http.StatusInternalServerError, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (sw *statusWriter) WriteHeader(code int) {
	sw.status = code
	sw.ResponseWriter.WriteHeader(code)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
