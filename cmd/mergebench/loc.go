package main

import (
	"fmt"
	"log/slog"

	"mergebench/internal/loc"
	"mergebench/internal/ui"

	"github.com/spf13/cobra"
)

var (
	locExt    string
	locScale  int
	locSalary float64
	locWrite  bool
	locOutput string
)

var locCmd = &cobra.Command{
	Use:   "loc [dir]",
	Short: "Count source lines and estimate cost with organic COCOMO",
	Long: `Walks dir (default: current directory), classifies every line of the
matching source files as code, comment or blank, and derives an organic
COCOMO estimate from the scaled code line count.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLoc,
}

func init() {
	rootCmd.AddCommand(locCmd)
	locCmd.Flags().StringVar(&locExt, "ext", ".go", "File extension to count")
	locCmd.Flags().IntVar(&locScale, "scale", loc.DefaultScale, "Multiplier applied to the code line count")
	locCmd.Flags().Float64Var(&locSalary, "salary", loc.DefaultMonthlySalary, "Monthly salary per person")
	locCmd.Flags().BoolVar(&locWrite, "write", false, "Write the estimate to the results file")
	locCmd.Flags().StringVar(&locOutput, "output", loc.DefaultReportPath, "Results file used with --write")
}

func runLoc(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}
	if locScale < 1 {
		return fmt.Errorf("scale must be positive, got: %d", locScale)
	}

	errOut := cmd.ErrOrStderr()
	counts, err := loc.CountDir(root, locExt, func(path string, err error) {
		slog.Warn("skipping unreadable file", "path", path, "error", err)
		fmt.Fprintf(errOut, "Error reading %s: %v\n", path, err)
	})
	if err != nil {
		return fmt.Errorf("failed to scan %s: %w", root, err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Analyzed %d %s files under %s\n\n", counts.Files, locExt, root)
	if err := loc.WriteCounts(out, counts); err != nil {
		return err
	}
	fmt.Fprintln(out)

	estimate := loc.Compute(counts.Code, locScale, locSalary)
	if err := loc.WriteEstimate(out, estimate); err != nil {
		return err
	}

	if locWrite {
		if err := loc.WriteFile(locOutput, estimate); err != nil {
			return err
		}
		fmt.Fprintln(out, ui.Success("[OK] Estimate written to "+locOutput))
	}
	return nil
}
