package main

import (
	"errors"
	"fmt"
	"strconv"

	apperrors "mergebench/internal/errors"
	"mergebench/internal/session"
	"mergebench/internal/ui"

	"github.com/spf13/cobra"
)

var sortShowAll bool

var sortCmd = &cobra.Command{
	Use:   "sort <count>",
	Short: "Generate, persist, reload, sort and verify one dataset",
	Long: `Runs a single trial: generates <count> random integers, saves them to the
dataset file, reads them back, sorts them and verifies the order. Only the
sort is timed.`,
	Args: cobra.ExactArgs(1),
	RunE: runSort,
}

func init() {
	rootCmd.AddCommand(sortCmd)
	sortCmd.Flags().BoolVar(&sortShowAll, "all", false, "Print every sorted value, 10 per line")
}

func runSort(cmd *cobra.Command, args []string) error {
	count, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("count must be an integer: %q", args[0])
	}
	if count < 1 {
		return &apperrors.InputError{Field: "count", Value: count, Reason: "must be greater than 0"}
	}

	p, err := pipelineFactory(settings, nil)
	if err != nil {
		return err
	}

	trial, sorted, err := p.Runner.RunTrial(count, 1)
	var defect *apperrors.VerificationDefect
	if err != nil && !errors.As(err, &defect) {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, ui.Success(fmt.Sprintf("[OK] %d numbers generated and saved to %s", count, p.Store.Path())))
	fmt.Fprintln(out, "First values:")
	session.Preview(out, sorted, session.PreviewLen)
	fmt.Fprintf(out, "Sort time: %d ms\n", trial.Elapsed.Milliseconds())

	if sortShowAll {
		fmt.Fprintln(out)
		session.Listing(out, sorted, session.ValuesPerLine)
	}

	if defect != nil {
		fmt.Fprintln(out, ui.Failure("VERIFICATION DEFECT: output not sorted"))
		return defect
	}
	return nil
}
