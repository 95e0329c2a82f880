package loc

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	apperrors "mergebench/internal/errors"

	"github.com/dustin/go-humanize"
)

// DefaultReportPath is where WriteFile stores the estimate by default.
const DefaultReportPath = "resultados_cocomo.txt"

var heavyRule = strings.Repeat("=", 67)

func money(v float64) string {
	return "$" + humanize.Comma(int64(math.Round(v)))
}

// WriteCounts prints the line statistics.
func WriteCounts(w io.Writer, c Counts) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "LINE STATISTICS:")
	fmt.Fprintf(bw, "- Files:          %d\n", c.Files)
	fmt.Fprintf(bw, "- Total lines:    %d\n", c.Total)
	fmt.Fprintf(bw, "- Code lines:     %d (%.2f%%)\n", c.Code, c.CodePercent())
	fmt.Fprintf(bw, "- Comment lines:  %d (%.2f%%)\n", c.Comments, c.CommentPercent())
	fmt.Fprintf(bw, "- Blank lines:    %d\n", c.Blank)
	return bw.Flush()
}

// WriteEstimate prints the COCOMO estimate in the layout of the results file.
func WriteEstimate(w io.Writer, e Estimate) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, heavyRule)
	fmt.Fprintln(bw, "  COCOMO RESULTS - ORGANIC MODE")
	fmt.Fprintln(bw, heavyRule)
	fmt.Fprintln(bw)

	fmt.Fprintln(bw, "LINES OF CODE:")
	fmt.Fprintf(bw, "- Actual LOC:               %d\n", e.CodeLines)
	fmt.Fprintf(bw, "- Scaled LOC:               %d\n", e.ScaledLines)
	fmt.Fprintf(bw, "- KLOC:                     %.2f\n\n", e.KLOC)

	fmt.Fprintln(bw, "ESTIMATES:")
	fmt.Fprintf(bw, "- Effort:                   %.2f person-months\n", e.Effort)
	fmt.Fprintf(bw, "- Development time:         %.2f months\n", e.DevTime)
	fmt.Fprintf(bw, "- People required:          %.2f (%d people)\n", e.People, e.TeamSize())
	fmt.Fprintf(bw, "- Productivity:             %.2f LOC/person-month\n\n", e.Productivity)

	fmt.Fprintln(bw, "COSTS:")
	fmt.Fprintf(bw, "- Monthly salary:           %s\n", money(e.MonthlySalary))
	fmt.Fprintf(bw, "- Total project cost:       %s\n\n", money(e.TotalCost))

	if e.ReducedMonths > 0 {
		fmt.Fprintf(bw, "REDUCED SCHEDULE (%.0f months):\n", e.ReducedMonths)
		fmt.Fprintf(bw, "- People required:          %d people\n", int(math.Ceil(e.ReducedPeople)))
		fmt.Fprintf(bw, "- Estimated cost:           %s\n\n", money(e.ReducedCost))
	}

	fmt.Fprintln(bw, heavyRule)
	return bw.Flush()
}

// WriteFile saves the estimate to path.
func WriteFile(path string, e Estimate) error {
	f, err := os.Create(path)
	if err != nil {
		return &apperrors.IOFailure{Op: "write estimate", Path: path, Err: err}
	}
	if err := WriteEstimate(f, e); err != nil {
		f.Close()
		return &apperrors.IOFailure{Op: "write estimate", Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &apperrors.IOFailure{Op: "write estimate", Path: path, Err: err}
	}
	return nil
}
