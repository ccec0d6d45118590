package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/leadfoundry/sitebrief/internal/synthesis"
)

// newSummarizeCmd creates the 'summarize' subcommand, which runs the whole
// pipeline for a single URL and prints the summary to stdout.
func newSummarizeCmd() *cobra.Command {
	var (
		style    string
		maxPages int
	)

	cmd := &cobra.Command{
		Use:   "summarize <url>",
		Short: "Summarize a single company website",
		Long: `Crawls the given website, synthesizes what the business does and prints
a word-budget-compliant summary to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := resolveApp(cmd.Context())
			if err != nil {
				return err
			}

			opts := application.SummaryOptions()
			if style != "" {
				opts.Style = synthesis.Style(style)
				if !opts.Style.Valid() {
					return fmt.Errorf("unknown style %q", style)
				}
			}
			if maxPages > 0 {
				opts.MaxPages = maxPages
			}

			result, err := application.Service().Summarize(cmd.Context(), args[0], opts)
			if err != nil {
				return fmt.Errorf("summarize %s: %w", args[0], err)
			}

			application.Logger().Info("summary complete",
				zap.String("url", args[0]),
				zap.Int("pages_accepted", result.Diagnostics.PagesAccepted),
				zap.Int("words", result.Diagnostics.WordCount),
				zap.Bool("no_content", result.Diagnostics.NoContent),
			)
			fmt.Fprintln(cmd.OutOrStdout(), result.Summary)
			return nil
		},
	}

	cmd.Flags().StringVar(&style, "style", "", "summary style: sales, clean or structured")
	cmd.Flags().IntVar(&maxPages, "max-pages", 0, "override the page cap for this crawl")
	return cmd
}
