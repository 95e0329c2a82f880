package main

import (
	"errors"
	"fmt"
	"strconv"
	"text/tabwriter"

	"mergebench/internal/benchmark"
	"mergebench/internal/report"
	"mergebench/internal/ui"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
)

var askOne = survey.AskOne

var historyPick bool

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded suites",
	Long: `Lists every suite recorded in the configured history, oldest first.
The number in the first column selects a suite in 'report' and 'compare'.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().BoolVar(&historyPick, "pick", false, "Select a suite interactively and show its report")
}

// loadHistory returns every recorded suite, oldest first.
func loadHistory() ([]benchmark.Suite, error) {
	store, err := historyStoreFactory(settings)
	if err != nil {
		return nil, fmt.Errorf("failed to open history: %w", err)
	}
	if store == nil {
		return nil, errors.New("history is disabled (history.type is none)")
	}
	defer store.Close()

	return store.LoadAll()
}

// selectSuite resolves a 1-based history index; 0 or less counts back from
// the newest suite.
func selectSuite(suites []benchmark.Suite, arg string) (benchmark.Suite, int, error) {
	idx, err := strconv.Atoi(arg)
	if err != nil {
		return benchmark.Suite{}, 0, fmt.Errorf("suite index must be an integer: %q", arg)
	}
	if idx <= 0 {
		idx = len(suites) + idx
	}
	if idx < 1 || idx > len(suites) {
		return benchmark.Suite{}, 0, fmt.Errorf("suite %s not found (%d recorded)", arg, len(suites))
	}
	return suites[idx-1], idx, nil
}

func suiteStatus(s benchmark.Suite) string {
	defects := 0
	for _, r := range s.Results {
		if r.Defect {
			defects++
		}
	}
	switch {
	case defects > 0:
		return "defect"
	case s.Aborted:
		return "aborted"
	case len(s.Failures) > 0:
		return "partial"
	}
	return "ok"
}

func runHistory(cmd *cobra.Command, args []string) error {
	suites, err := loadHistory()
	if err != nil {
		return err
	}
	if len(suites) == 0 {
		cmd.Println("No suites recorded.")
		return nil
	}

	if historyPick {
		return pickSuite(cmd, suites)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "#\tTIMESTAMP\tLABEL\tSIZES\tFAILURES\tSTATUS")
	for i, s := range suites {
		label := s.Label
		if label == "" {
			label = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\t%s\n",
			i+1, s.Timestamp.Format("2006-01-02 15:04:05"), label, len(s.Results), len(s.Failures), suiteStatus(s))
	}
	return w.Flush()
}

func pickSuite(cmd *cobra.Command, suites []benchmark.Suite) error {
	options := make([]string, len(suites))
	for i, s := range suites {
		options[i] = fmt.Sprintf("%d  %s  %s  (%s)", i+1, s.Timestamp.Format("2006-01-02 15:04"), s.Label, suiteStatus(s))
	}

	var selected int
	prompt := &survey.Select{
		Message: "Select a suite to view its report:",
		Options: options,
	}
	if err := askOne(prompt, &selected); err != nil {
		return fmt.Errorf("selection cancelled: %w", err)
	}
	if selected < 0 || selected >= len(suites) {
		return fmt.Errorf("invalid selection %d", selected)
	}
	return printMarkdown(cmd, &suites[selected])
}

func printMarkdown(cmd *cobra.Command, suite *benchmark.Suite) error {
	md := report.Markdown(suite)
	out, err := ui.RenderMarkdown(md, 100)
	if err != nil {
		// Fallback to plain markdown
		fmt.Fprint(cmd.OutOrStdout(), md)
		return nil
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}
