package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/leadfoundry/sitebrief/internal/api"
	"github.com/leadfoundry/sitebrief/internal/clock"
	"github.com/leadfoundry/sitebrief/internal/id"
)

// shutdownGrace bounds how long in-flight requests may finish after a stop
// signal.
const shutdownGrace = 15 * time.Second

// newServeCmd creates the 'serve' subcommand, which runs the HTTP API and
// the batch worker pool until interrupted.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the summary HTTP service",
		Long: `Starts the HTTP API for submitting batch jobs and polling their progress,
plus the worker pool that executes them.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			application, err := resolveApp(cmd.Context())
			if err != nil {
				return err
			}
			return runServe(cmd.Context(), application)
		},
	}
}

func runServe(ctx context.Context, application App) error {
	logger := application.Logger()
	cfg := application.Config()

	server := api.NewServer(
		application.Jobs(),
		application.Dispatcher(),
		id.UUID{},
		clock.System{},
		cfg,
		logger,
	)

	dispatcherDone := make(chan struct{})
	go func() {
		defer close(dispatcherDone)
		application.Dispatcher().Run(ctx)
	}()

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", zap.Int("port", cfg.Server.Port))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown failed", zap.Error(err))
	}

	select {
	case <-dispatcherDone:
	case <-shutdownCtx.Done():
		logger.Warn("dispatcher did not drain in time")
	}
	return nil
}
