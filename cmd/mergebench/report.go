package main

import (
	"fmt"

	"mergebench/internal/report"
	"mergebench/internal/ui"

	"github.com/spf13/cobra"
)

var (
	reportPlain  bool
	reportOutput string
)

var reportCmd = &cobra.Command{
	Use:   "report [index]",
	Short: "Show the report of a recorded suite",
	Long: `Renders the report of a recorded suite. Without an index the newest suite
is shown; 0 and negative indexes count back from the newest.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().BoolVar(&reportPlain, "plain", false, "Print the fixed-width text report instead of markdown")
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "", "Also write the text report to this file")
}

func runReport(cmd *cobra.Command, args []string) error {
	suites, err := loadHistory()
	if err != nil {
		return err
	}
	if len(suites) == 0 {
		return fmt.Errorf("no suites recorded; run 'mergebench suite' first")
	}

	arg := "0"
	if len(args) == 1 {
		arg = args[0]
	}
	suite, _, err := selectSuite(suites, arg)
	if err != nil {
		return err
	}

	if reportOutput != "" {
		if err := report.WriteFile(reportOutput, &suite); err != nil {
			return err
		}
		fmt.Fprintln(cmd.ErrOrStderr(), ui.Success("[OK] Report written to "+reportOutput))
	}

	if reportPlain {
		return report.WriteSuite(cmd.OutOrStdout(), &suite)
	}
	return printMarkdown(cmd, &suite)
}
