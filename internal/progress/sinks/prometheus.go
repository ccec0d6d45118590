package sinks

import (
	"context"
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/leadfoundry/sitebrief/internal/progress"
)

// PrometheusSink exports batch-job progress metrics via Prometheus. It owns
// all collectors for jobs started/completed/running and per-row counters.
type PrometheusSink struct {
	jobsStarted   prometheus.Counter
	jobsCompleted *prometheus.CounterVec
	jobsRunning   prometheus.Gauge
	jobRuntime    *prometheus.HistogramVec

	rowsProcessed *prometheus.CounterVec
	rowWords      prometheus.Histogram
	rowDuration   prometheus.Histogram

	tracker *jobTracker
}

// NewPrometheusSink registers the collectors against the provided registry.
func NewPrometheusSink(reg prometheus.Registerer) (*PrometheusSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	s := &PrometheusSink{
		jobsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sitebrief_batch_jobs_started_total",
			Help: "Total batch jobs that have started.",
		}),
		jobsCompleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sitebrief_batch_jobs_completed_total",
			Help: "Total batch jobs completed partitioned by result.",
		}, []string{"result"}),
		jobsRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sitebrief_batch_jobs_running",
			Help: "Current number of running batch jobs.",
		}),
		jobRuntime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sitebrief_batch_job_runtime_seconds",
			Help:    "Wall time per completed batch job.",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600, 1200},
		}, []string{"result"}),
		rowsProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sitebrief_batch_rows_total",
			Help: "Row completions partitioned by result.",
		}, []string{"result"}),
		rowWords: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "sitebrief_batch_row_words",
			Help:    "Summary word count per completed row.",
			Buckets: []float64{50, 100, 130, 150, 175, 200, 250},
		}),
		rowDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "sitebrief_batch_row_duration_seconds",
			Help:    "Wall time per completed row.",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 45, 90},
		}),
		tracker: newJobTracker(),
	}
	for _, collector := range []prometheus.Collector{
		s.jobsStarted,
		s.jobsCompleted,
		s.jobsRunning,
		s.jobRuntime,
		s.rowsProcessed,
		s.rowWords,
		s.rowDuration,
	} {
		if err := reg.Register(collector); err != nil {
			return nil, fmt.Errorf("register progress collector: %w", err)
		}
	}
	return s, nil
}

// Consume updates the Prometheus collectors using the provided batch. It is
// safe for concurrent use by multiple goroutines.
func (s *PrometheusSink) Consume(_ context.Context, batch []progress.Event) error {
	for _, evt := range batch {
		s.consumeEvent(evt)
	}
	return nil
}

func (s *PrometheusSink) consumeEvent(evt progress.Event) {
	switch evt.Stage {
	case progress.StageJobStart, progress.StageJobDone, progress.StageJobError:
		s.handleJobEvent(evt)
	case progress.StageRowDone, progress.StageRowError:
		s.handleRowEvent(evt)
	}
}

func (s *PrometheusSink) handleJobEvent(evt progress.Event) {
	switch evt.Stage {
	case progress.StageJobStart:
		s.jobsStarted.Inc()
		if s.tracker.start(evt.JobID) {
			s.jobsRunning.Inc()
		}
	case progress.StageJobDone:
		s.jobsCompleted.WithLabelValues("success").Inc()
		s.observeRuntime(evt, "success")
	case progress.StageJobError:
		s.jobsCompleted.WithLabelValues("error").Inc()
		s.observeRuntime(evt, "error")
	}
	if evt.Stage != progress.StageJobStart && s.tracker.complete(evt.JobID) {
		s.jobsRunning.Dec()
	}
}

func (s *PrometheusSink) observeRuntime(evt progress.Event, label string) {
	if evt.Dur > 0 {
		s.jobRuntime.WithLabelValues(label).Observe(evt.Dur.Seconds())
	}
}

func (s *PrometheusSink) handleRowEvent(evt progress.Event) {
	switch evt.Stage {
	case progress.StageRowDone:
		s.rowsProcessed.WithLabelValues("success").Inc()
		if evt.Words > 0 {
			s.rowWords.Observe(float64(evt.Words))
		}
	case progress.StageRowError:
		s.rowsProcessed.WithLabelValues("error").Inc()
	}
	if evt.Dur > 0 {
		s.rowDuration.Observe(evt.Dur.Seconds())
	}
}

// Close implements the Sink interface; it performs no action.
func (s *PrometheusSink) Close(context.Context) error {
	return nil
}

type jobTracker struct {
	mu      sync.Mutex
	running map[string]struct{}
}

func newJobTracker() *jobTracker {
	return &jobTracker{running: make(map[string]struct{})}
}

func (t *jobTracker) start(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.running[id]; ok {
		return false
	}
	t.running[id] = struct{}{}
	return true
}

func (t *jobTracker) complete(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.running[id]; !ok {
		return false
	}
	delete(t.running, id)
	return true
}
