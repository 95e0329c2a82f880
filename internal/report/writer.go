// Package report renders benchmark results as a fixed-width text report.
package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"mergebench/internal/benchmark"
	apperrors "mergebench/internal/errors"
)

const (
	heavyRule = "════════════════════════════════════════════════════════════════════════════════════════════════════════"
	lightRule = "────────────────────────────────────────────────────────────────────────────────────────────────────────"
	rowFormat = "%-20s %-20s %-20s %-20s %-20s\n"
)

// Percent returns |run1 - run2| / run1 * 100. ok is false when run1 is 0 ms
// and the percentage is undefined.
func Percent(r benchmark.TrialResult) (pct float64, ok bool) {
	if r.Run1Millis == 0 {
		return 0, false
	}
	return float64(r.Difference()) / float64(r.Run1Millis) * 100, true
}

// Write emits the report for results, one table row per result in order.
func Write(w io.Writer, results []benchmark.TrialResult) error {
	return WriteSuite(w, &benchmark.Suite{Results: results})
}

// WriteSuite is Write plus a section listing failed and aborted trials.
func WriteSuite(w io.Writer, suite *benchmark.Suite) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, heavyRule)
	fmt.Fprintln(bw, "  MERGE SORT BENCHMARK REPORT")
	fmt.Fprintln(bw, heavyRule)
	fmt.Fprintln(bw)

	fmt.Fprintln(bw, "RESULTS TABLE:")
	fmt.Fprintln(bw, lightRule)
	fmt.Fprintf(bw, rowFormat, "Size", "Run 1 (ms)", "Run 2 (ms)", "Average (ms)", "Difference (ms)")
	fmt.Fprintln(bw, lightRule)
	for _, r := range suite.Results {
		fmt.Fprintf(bw, rowFormat,
			fmt.Sprint(r.Size),
			fmt.Sprint(r.Run1Millis),
			fmt.Sprint(r.Run2Millis),
			fmt.Sprintf("%.2f", r.Average()),
			fmt.Sprint(r.Difference()),
		)
	}
	fmt.Fprintln(bw, lightRule)
	fmt.Fprintln(bw)

	fmt.Fprintln(bw, "COMPLEXITY ANALYSIS:")
	fmt.Fprintln(bw, "Merge sort has a time complexity of O(n log n)")
	fmt.Fprintln(bw, "in all cases (best, average and worst).")
	fmt.Fprintln(bw)

	fmt.Fprintln(bw, "OBSERVATIONS:")
	for _, r := range suite.Results {
		fmt.Fprintln(bw, observation(r))
	}

	if len(suite.Failures) > 0 || suite.Aborted {
		fmt.Fprintln(bw)
		fmt.Fprintln(bw, "FAILURES:")
		for _, f := range suite.Failures {
			fmt.Fprintf(bw, "- Size %d, run %d: %s\n", f.Size, f.Run, f.Error)
		}
		if suite.Aborted {
			fmt.Fprintln(bw, "- Suite aborted before all sizes were measured")
		}
	}

	fmt.Fprintln(bw)
	fmt.Fprintln(bw, heavyRule)

	return bw.Flush()
}

func observation(r benchmark.TrialResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "- With %d numbers: difference of %d ms ", r.Size, r.Difference())
	if pct, ok := Percent(r); ok {
		fmt.Fprintf(&b, "(%.2f%%)", pct)
	} else {
		b.WriteString("(n/a)")
	}
	if r.Defect {
		b.WriteString(" [VERIFICATION DEFECT: output not sorted]")
	}
	return b.String()
}

// WriteFile writes the report for suite to path, replacing existing content.
func WriteFile(path string, suite *benchmark.Suite) error {
	f, err := os.Create(path)
	if err != nil {
		return &apperrors.IOFailure{Op: "write report", Path: path, Err: err}
	}
	if err := WriteSuite(f, suite); err != nil {
		f.Close()
		return &apperrors.IOFailure{Op: "write report", Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &apperrors.IOFailure{Op: "write report", Path: path, Err: err}
	}
	return nil
}
