package cmd

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/leadfoundry/sitebrief/internal/app"
	"github.com/leadfoundry/sitebrief/internal/config"
	"github.com/leadfoundry/sitebrief/internal/dispatcher"
	"github.com/leadfoundry/sitebrief/internal/progress"
	"github.com/leadfoundry/sitebrief/internal/store"
	"github.com/leadfoundry/sitebrief/internal/summarize"
)

// App is the service surface commands program against. Keeping it an
// interface lets tests inject a stub graph through buildApp.
type App interface {
	Config() config.Config
	Logger() *zap.Logger
	Jobs() store.JobStore
	Service() *summarize.Service
	SummaryOptions() summarize.Options
	Hub() *progress.Hub
	Dispatcher() *dispatcher.Dispatcher
	Close(ctx context.Context)
}

// buildApp is the application factory; a variable so tests can replace it.
var buildApp = func(ctx context.Context) (App, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return app.New(ctx, cfg)
}

func appFromContext(ctx context.Context) App {
	if ctx == nil {
		return nil
	}
	application, _ := ctx.Value(appKey).(App)
	return application
}

func resolveApp(ctx context.Context) (App, error) {
	if application := appFromContext(ctx); application != nil {
		return application, nil
	}
	return nil, fmt.Errorf("application services not initialized")
}
