package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/leadfoundry/sitebrief/internal/batch"
	"github.com/leadfoundry/sitebrief/internal/clock"
	"github.com/leadfoundry/sitebrief/internal/id"
	"github.com/leadfoundry/sitebrief/internal/queue"
	"github.com/leadfoundry/sitebrief/internal/store"
)

// newBatchCmd creates the 'batch' subcommand: it summarizes every row of a
// CSV file and writes a copy with the summaries filled in.
func newBatchCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "batch <input.csv>",
		Short: "Summarize every website in a CSV file",
		Long: `Reads a CSV with a website column, summarizes each row's site and writes
the input rows back out with a summary column appended.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := resolveApp(cmd.Context())
			if err != nil {
				return err
			}
			return runBatch(cmd, application, args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default <input>_with_summaries.csv)")
	return cmd
}

func runBatch(cmd *cobra.Command, application App, input, output string) error {
	if output == "" {
		output = strings.TrimSuffix(input, ".csv") + "_with_summaries.csv"
	}

	f, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	doc, err := batch.Parse(f)
	closeErr := f.Close()
	if err != nil {
		return fmt.Errorf("parse %s: %w", input, err)
	}
	if closeErr != nil {
		return fmt.Errorf("close input: %w", closeErr)
	}

	jobID, err := id.UUID{}.NewID()
	if err != nil {
		return fmt.Errorf("generate job id: %w", err)
	}
	seeds := doc.Seeds()
	ctx := cmd.Context()
	if err := application.Jobs().CreateJob(ctx, store.Job{
		ID:        jobID,
		Source:    input,
		TotalRows: len(seeds),
	}); err != nil {
		return fmt.Errorf("create job: %w", err)
	}

	runner := batch.NewRunner(
		application.Service(),
		application.Jobs(),
		application.Hub(),
		application.SummaryOptions(),
		clock.System{},
		application.Logger(),
	)
	if err := runner.Run(ctx, queue.Item{JobID: jobID, Source: input, Seeds: seeds}); err != nil {
		return fmt.Errorf("run batch: %w", err)
	}

	results, err := application.Jobs().RowResults(ctx, jobID)
	if err != nil {
		return fmt.Errorf("fetch results: %w", err)
	}

	out, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := doc.WriteWithSummaries(out, results); err != nil {
		out.Close()
		return fmt.Errorf("write output: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}

	application.Logger().Info("batch complete",
		zap.String("input", input),
		zap.String("output", output),
		zap.Int("rows", len(seeds)),
	)
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d summaries to %s\n", len(results), output)
	return nil
}
