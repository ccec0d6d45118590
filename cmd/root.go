// Package cmd defines and implements the CLI commands for the sitebrief
// executable.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var cfgFile string

type appKeyType struct{}

var appKey appKeyType

// newRootCmd creates and configures the root command. The application graph
// is built in PersistentPreRunE so every subcommand finds it in the context.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sitebrief",
		Short: "Generate sales-ready business summaries from company websites",
		Long: `sitebrief crawls a company website, synthesizes what the business does
from the pages it finds, and produces a 130-200 word sales summary.
It runs as a one-shot CLI, a CSV batch processor, or an HTTP service.`,

		SilenceUsage: true,

		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			application, err := buildApp(cmd.Context())
			if err != nil {
				return fmt.Errorf("initialize application services: %w", err)
			}
			cmd.SetContext(context.WithValue(cmd.Context(), appKey, application))
			return nil
		},

		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			if application := appFromContext(cmd.Context()); application != nil {
				application.Close(context.Background())
			}
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (defaults and environment apply when omitted)")

	cmd.AddCommand(newSummarizeCmd())
	cmd.AddCommand(newBatchCmd())
	cmd.AddCommand(newServeCmd())

	return cmd
}

// Execute is the main entry point.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
