// Package app initializes and holds the long-lived services the CLI
// commands share: the summary pipeline, the job store, the progress hub and
// the batch dispatcher.
package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/leadfoundry/sitebrief/internal/batch"
	"github.com/leadfoundry/sitebrief/internal/clock"
	"github.com/leadfoundry/sitebrief/internal/config"
	"github.com/leadfoundry/sitebrief/internal/crawl"
	"github.com/leadfoundry/sitebrief/internal/dispatcher"
	"github.com/leadfoundry/sitebrief/internal/frontier"
	"github.com/leadfoundry/sitebrief/internal/logging"
	"github.com/leadfoundry/sitebrief/internal/metrics"
	"github.com/leadfoundry/sitebrief/internal/progress"
	"github.com/leadfoundry/sitebrief/internal/progress/sinks"
	"github.com/leadfoundry/sitebrief/internal/queue"
	"github.com/leadfoundry/sitebrief/internal/store"
	"github.com/leadfoundry/sitebrief/internal/summarize"
	"github.com/leadfoundry/sitebrief/internal/synthesis"
	"github.com/leadfoundry/sitebrief/internal/webpage"
)

// App wires configuration into the services commands use. Build it once per
// process through New.
type App struct {
	cfg     config.Config
	logger  *zap.Logger
	jobs    store.JobStore
	pg      *store.Postgres
	service *summarize.Service
	hub     *progress.Hub
	queue   *queue.Queue
	disp    *dispatcher.Dispatcher
}

// New constructs the full service graph from configuration. It fails fast
// when a backend cannot be reached.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	metrics.Init()

	a := &App{cfg: cfg, logger: logger}

	if err := a.initStore(ctx); err != nil {
		return nil, err
	}
	a.initPipeline()
	a.initBatch()
	return a, nil
}

func (a *App) initStore(ctx context.Context) error {
	switch a.cfg.Store.Provider {
	case "postgres":
		pg, err := store.NewPostgres(ctx, store.PostgresConfig{
			DSN:      a.cfg.Store.DSN,
			MaxConns: int32(a.cfg.Store.MaxOpenConns),
		}, clock.System{})
		if err != nil {
			return fmt.Errorf("init postgres store: %w", err)
		}
		a.logger.Info("using postgres job store")
		a.pg = pg
		a.jobs = pg
	default:
		a.logger.Info("using in-memory job store")
		a.jobs = store.NewMemory(clock.System{})
	}
	return nil
}

func (a *App) initPipeline() {
	fetcher := webpage.New(webpage.Config{
		UserAgent: a.cfg.Crawl.UserAgent,
		Timeout:   a.cfg.Crawl.PerFetchTimeout(),
	}, a.logger)
	discoverer := frontier.NewBuilder(a.cfg.Crawl.UserAgent, a.cfg.Crawl.DiscoveryTimeout(), a.logger)
	orchestrator := crawl.New(fetcher, discoverer, a.logger)
	synth := synthesis.New(synthesis.NewTemplateTable(a.cfg.Templates), a.logger)
	a.service = summarize.New(orchestrator, synth, a.logger)
}

func (a *App) initBatch() {
	promSink, err := sinks.NewPrometheusSink(nil)
	hubSinks := []progress.Sink{
		sinks.NewLogSink(a.logger),
		sinks.NewStoreSink(a.jobs, a.logger),
	}
	if err != nil {
		a.logger.Warn("progress prometheus sink disabled", zap.Error(err))
	} else {
		hubSinks = append(hubSinks, promSink)
	}
	a.hub = progress.NewHub(progress.Config{Logger: a.logger}, hubSinks...)

	runner := batch.NewRunner(a.service, a.jobs, a.hub, a.SummaryOptions(), clock.System{}, a.logger)
	a.queue = queue.New(a.cfg.Batch.QueueDepth)
	a.disp = dispatcher.New(a.queue, runner, a.cfg.Batch.Workers, a.logger)
}

// SummaryOptions translates configuration into per-request options.
func (a *App) SummaryOptions() summarize.Options {
	return summarize.Options{
		MaxPages:        a.cfg.Crawl.MaxPages,
		PerFetchTimeout: a.cfg.Crawl.PerFetchTimeout(),
		WallBudget:      a.cfg.Crawl.WallBudget(),
		Concurrency:     a.cfg.Crawl.Concurrency,
		MinWords:        a.cfg.Summary.MinWords,
		MaxWords:        a.cfg.Summary.MaxWords,
		Style:           synthesis.Style(a.cfg.Summary.Style),
	}
}

// Config returns the loaded configuration.
func (a *App) Config() config.Config { return a.cfg }

// Logger returns the shared zap logger.
func (a *App) Logger() *zap.Logger { return a.logger }

// Jobs returns the configured job store.
func (a *App) Jobs() store.JobStore { return a.jobs }

// Service returns the summary pipeline entry point.
func (a *App) Service() *summarize.Service { return a.service }

// Hub returns the progress hub batch workers emit into.
func (a *App) Hub() *progress.Hub { return a.hub }

// Dispatcher returns the batch job dispatcher.
func (a *App) Dispatcher() *dispatcher.Dispatcher { return a.disp }

// Close flushes the progress hub and releases store connections.
func (a *App) Close(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	closeCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if a.hub != nil {
		if err := a.hub.Close(closeCtx); err != nil {
			a.logger.Warn("progress hub close failed", zap.Error(err))
		}
	}
	if a.queue != nil {
		a.queue.Close()
	}
	if a.pg != nil {
		a.pg.Close()
	}
	_ = a.logger.Sync()
}
