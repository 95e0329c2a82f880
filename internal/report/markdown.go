package report

import (
	"fmt"
	"strings"

	"mergebench/internal/benchmark"
)

// Markdown renders suite as a markdown table for terminal display.
func Markdown(suite *benchmark.Suite) string {
	var b strings.Builder

	title := "Merge sort benchmark"
	if suite.Label != "" {
		title += ": " + suite.Label
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	if !suite.Timestamp.IsZero() {
		fmt.Fprintf(&b, "_%s_\n\n", suite.Timestamp.Format("2006-01-02 15:04:05"))
	}

	b.WriteString("| Size | Run 1 (ms) | Run 2 (ms) | Average (ms) | Difference (ms) | Difference % |\n")
	b.WriteString("|---:|---:|---:|---:|---:|---:|\n")
	for _, r := range suite.Results {
		pct := "n/a"
		if p, ok := Percent(r); ok {
			pct = fmt.Sprintf("%.2f%%", p)
		}
		size := fmt.Sprint(r.Size)
		if r.Defect {
			size += " **DEFECT**"
		}
		fmt.Fprintf(&b, "| %s | %d | %d | %.2f | %d | %s |\n",
			size, r.Run1Millis, r.Run2Millis, r.Average(), r.Difference(), pct)
	}

	if len(suite.Failures) > 0 {
		b.WriteString("\n## Failures\n\n")
		for _, f := range suite.Failures {
			fmt.Fprintf(&b, "- size %d, run %d: `%s`\n", f.Size, f.Run, f.Error)
		}
	}
	return b.String()
}
