package main

import (
	"fmt"
	"strings"

	"mergebench/internal/benchmark"
	"mergebench/internal/ui"

	"github.com/spf13/cobra"
)

var compareThreshold float64

var compareCmd = &cobra.Command{
	Use:   "compare [base] [target]",
	Short: "Compare average timings of two recorded suites",
	Long: `Compares two suites from history size by size. Without arguments the two
newest suites are compared. With --fail-threshold the command fails when any
size got slower by more than the given percentage.`,
	Args: cobra.MaximumNArgs(2),
	RunE: runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)
	compareCmd.Flags().Float64Var(&compareThreshold, "fail-threshold", 0, "Fail when an average regresses by more than this percentage")
}

func runCompare(cmd *cobra.Command, args []string) error {
	suites, err := loadHistory()
	if err != nil {
		return err
	}

	baseArg, targetArg := "-1", "0"
	switch len(args) {
	case 1:
		baseArg = args[0]
	case 2:
		baseArg, targetArg = args[0], args[1]
	}
	if len(args) == 0 && len(suites) < 2 {
		return fmt.Errorf("need at least two recorded suites to compare, have %d", len(suites))
	}

	base, baseIdx, err := selectSuite(suites, baseArg)
	if err != nil {
		return err
	}
	target, targetIdx, err := selectSuite(suites, targetArg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Comparing suite %d (%s) with suite %d (%s)\n",
		baseIdx, base.Timestamp.Format("2006-01-02 15:04:05"), targetIdx, target.Timestamp.Format("2006-01-02 15:04:05"))

	comps := benchmark.Compare(base, target)
	if len(comps) == 0 {
		fmt.Fprintln(out, "No sizes in common.")
		return nil
	}
	for _, c := range comps {
		line := c.String()
		if c.Comparable && c.AverageDiff > 0 {
			line = ui.Failure(line)
		} else if c.Comparable {
			line = ui.Success(line)
		}
		fmt.Fprintln(out, line)
	}

	if cmd.Flags().Changed("fail-threshold") {
		if regressions := benchmark.Regressions(comps, compareThreshold); len(regressions) > 0 {
			sizes := make([]string, len(regressions))
			for i, r := range regressions {
				sizes[i] = r.String()
			}
			return fmt.Errorf("performance regression above %.2f%%: %s", compareThreshold, strings.Join(sizes, "; "))
		}
	}
	return nil
}
