package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"mergebench/internal/benchmark"
	"mergebench/internal/report"
	"mergebench/internal/ui"

	"github.com/spf13/cobra"
)

var (
	suiteSizes     []int
	suiteLabel     string
	suiteTUI       bool
	suiteNoHistory bool
	suiteReport    string
)

var suiteCmd = &cobra.Command{
	Use:   "suite",
	Short: "Run two timed trials for every configured dataset size",
	Long: `Runs the benchmark suite: for each size, two independent trials on freshly
generated datasets. Prints the results table, writes it to the report file
and records the suite in the configured history.

Trial failures do not stop the suite; the command exits non-zero once the
report and history have been written.`,
	RunE: runSuite,
}

func init() {
	rootCmd.AddCommand(suiteCmd)
	suiteCmd.Flags().IntSliceVar(&suiteSizes, "sizes", nil, "Dataset sizes to measure (default from config)")
	suiteCmd.Flags().StringVar(&suiteLabel, "label", "", "Label stored with the suite in history")
	suiteCmd.Flags().BoolVar(&suiteTUI, "tui", false, "Show an interactive progress bar")
	suiteCmd.Flags().BoolVar(&suiteNoHistory, "no-history", false, "Do not record the suite in history")
	suiteCmd.Flags().StringVar(&suiteReport, "report", "", "Report file path (default from config)")
}

func runSuite(cmd *cobra.Command, args []string) error {
	sizes := settings.Sizes
	if cmd.Flags().Changed("sizes") {
		sizes = suiteSizes
	}
	if len(sizes) == 0 {
		return fmt.Errorf("no dataset sizes to measure")
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer cancel()

	var suite *benchmark.Suite
	var runErr error
	if suiteTUI {
		suite, runErr = ui.TrackSuite(cmd.InOrStdin(), cmd.OutOrStdout(), len(sizes)*benchmark.RunsPerSize, cancel,
			func(progress func(benchmark.Progress)) (*benchmark.Suite, error) {
				return executeSuite(ctx, sizes, progress)
			})
	} else {
		errOut := cmd.ErrOrStderr()
		suite, runErr = executeSuite(ctx, sizes, func(p benchmark.Progress) {
			line := fmt.Sprintf("[%d/%d] size %d run %d: %d ms", p.Done, p.Total, p.Trial.Size, p.Trial.Run, p.Trial.Elapsed.Milliseconds())
			if p.Err != nil {
				fmt.Fprintln(errOut, ui.Failure(line+": "+p.Err.Error()))
				return
			}
			fmt.Fprintln(errOut, ui.Muted(line))
		})
	}
	if suite == nil {
		return runErr
	}
	suite.Label = suiteLabel

	out := cmd.OutOrStdout()
	if err := report.WriteSuite(out, suite); err != nil {
		return err
	}

	path := settings.ReportPath
	if suiteReport != "" {
		path = suiteReport
	}
	reportErr := report.WriteFile(path, suite)
	if reportErr != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), ui.Failure("Error: "+reportErr.Error()))
	} else {
		fmt.Fprintln(out, ui.Success("[OK] Report written to "+path))
	}

	var historyErr error
	if !suiteNoHistory {
		historyErr = recordSuite(*suite)
		if historyErr != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), ui.Failure("Error: "+historyErr.Error()))
		}
	}

	if suite.Aborted {
		fmt.Fprintln(cmd.ErrOrStderr(), ui.Failure("Suite aborted before all sizes were measured"))
	}
	return errors.Join(runErr, reportErr, historyErr)
}

func executeSuite(ctx context.Context, sizes []int, progress func(benchmark.Progress)) (*benchmark.Suite, error) {
	p, err := pipelineFactory(settings, progress)
	if err != nil {
		return nil, err
	}
	return p.Runner.RunSuite(ctx, sizes)
}

func recordSuite(suite benchmark.Suite) error {
	store, err := historyStoreFactory(settings)
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	if store == nil {
		return nil
	}
	defer store.Close()

	if err := store.Save(suite); err != nil {
		return fmt.Errorf("failed to record suite: %w", err)
	}
	slog.Debug("suite recorded", "history", settings.History.Type, "sizes", len(suite.Results))
	return nil
}
