// Package session drives the interactive sort loop over injected input and
// output handles.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"mergebench/internal/benchmark"
	"mergebench/internal/dataset"
	apperrors "mergebench/internal/errors"
)

// PreviewLen is how many values are shown before and after sorting.
const PreviewLen = 10

// ValuesPerLine is the width of the full listing.
const ValuesPerLine = 10

// Trialer runs one generate, persist, reload, sort, verify cycle.
type Trialer interface {
	RunTrial(size, run int) (benchmark.Trial, []int, error)
}

// Config wires a Session. Runner and Store are required; Store must be the
// store the runner persists to so the unsorted values can be shown.
type Config struct {
	In     io.Reader
	Out    io.Writer
	Runner Trialer
	Store  dataset.Store

	// Optional decoration for headings and status lines.
	Title   func(string) string
	Success func(string) string
	Failure func(string) string
}

// Session is a single interactive conversation.
type Session struct {
	in     *bufio.Scanner
	out    io.Writer
	runner Trialer
	store  dataset.Store
	title  func(string) string
	ok     func(string) string
	fail   func(string) string
	trials int
}

func identity(s string) string { return s }

// New builds a Session.
func New(cfg Config) (*Session, error) {
	if cfg.In == nil || cfg.Out == nil {
		return nil, fmt.Errorf("session requires input and output")
	}
	if cfg.Runner == nil || cfg.Store == nil {
		return nil, fmt.Errorf("session requires a runner and a dataset store")
	}
	s := &Session{
		in:     bufio.NewScanner(cfg.In),
		out:    cfg.Out,
		runner: cfg.Runner,
		store:  cfg.Store,
		title:  cfg.Title,
		ok:     cfg.Success,
		fail:   cfg.Failure,
	}
	if s.title == nil {
		s.title = identity
	}
	if s.ok == nil {
		s.ok = identity
	}
	if s.fail == nil {
		s.fail = identity
	}
	return s, nil
}

// Trials is the number of trials run so far.
func (s *Session) Trials() int {
	return s.trials
}

// errEOF ends the session when input runs out.
var errEOF = errors.New("end of input")

// Run loops until the user declines another trial, input ends or ctx is
// cancelled. Running out of input is not an error.
func (s *Session) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.banner()
		count, err := s.readCount()
		if errors.Is(err, errEOF) {
			return nil
		}
		if err != nil {
			if !apperrors.IsInput(err) {
				return err
			}
			fmt.Fprintln(s.out, s.fail("Error: "+err.Error()))
			fmt.Fprintln(s.out)
			continue
		}

		if err := s.trial(count); err != nil {
			fmt.Fprintln(s.out, s.fail("Error: "+err.Error()))
		}

		again, err := s.confirm("Run another trial? (y/n): ")
		if errors.Is(err, errEOF) || (err == nil && !again) {
			fmt.Fprintln(s.out)
			fmt.Fprintln(s.out, "Thanks for using the merge sort benchmark. Goodbye!")
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(s.out)
	}
}

func (s *Session) banner() {
	rule := strings.Repeat("=", 62)
	fmt.Fprintln(s.out, rule)
	fmt.Fprintln(s.out, s.title("   MERGE SORT"))
	fmt.Fprintln(s.out, rule)
	fmt.Fprintln(s.out)
}

// readCount prompts until it gets an integer. Values below 1 are returned as
// an *errors.InputError.
func (s *Session) readCount() (int, error) {
	for {
		fmt.Fprint(s.out, "Enter how many random integers to generate: ")
		line, err := s.readLine()
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintln(s.out, s.fail("Error: enter a whole number."))
			continue
		}
		if n < 1 {
			return 0, &apperrors.InputError{Field: "count", Value: n, Reason: "must be greater than 0"}
		}
		return n, nil
	}
}

func (s *Session) trial(count int) error {
	s.trials++
	trial, sorted, err := s.runner.RunTrial(count, s.trials)

	var defect *apperrors.VerificationDefect
	if err != nil && !errors.As(err, &defect) {
		return err
	}

	fmt.Fprintln(s.out, s.ok(fmt.Sprintf("[OK] %d numbers generated and saved", count)))
	original, loadErr := s.store.Load()
	if loadErr != nil {
		return loadErr
	}
	fmt.Fprintln(s.out, s.ok(fmt.Sprintf("[OK] %d numbers read back", len(original))))

	fmt.Fprintf(s.out, "\n--- ORIGINAL NUMBERS (first %d) ---\n", PreviewLen)
	Preview(s.out, original, PreviewLen)

	fmt.Fprintf(s.out, "\n--- SORTED NUMBERS (first %d) ---\n", PreviewLen)
	Preview(s.out, sorted, PreviewLen)

	rule := strings.Repeat("=", 62)
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, rule)
	fmt.Fprintf(s.out, "  SORT TIME: %d milliseconds\n", trial.Elapsed.Milliseconds())
	fmt.Fprintln(s.out, rule)

	if defect != nil {
		fmt.Fprintln(s.out, s.fail("VERIFICATION DEFECT: "+defect.Error()))
	}

	all, err := s.confirm("\nShow all sorted numbers? (y/n): ")
	if err != nil {
		if errors.Is(err, errEOF) {
			return nil
		}
		return err
	}
	if all {
		fmt.Fprintln(s.out, "\n--- ALL SORTED NUMBERS ---")
		Listing(s.out, sorted, ValuesPerLine)
	}
	return nil
}

func (s *Session) readLine() (string, error) {
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", errEOF
	}
	return strings.TrimSpace(s.in.Text()), nil
}

func (s *Session) confirm(prompt string) (bool, error) {
	fmt.Fprint(s.out, prompt)
	line, err := s.readLine()
	if err != nil {
		return false, err
	}
	switch strings.ToLower(line) {
	case "y", "yes", "s", "si":
		return true, nil
	}
	return false, nil
}

// Preview writes the first n values on one line, noting how many were left out.
func Preview(w io.Writer, values []int, n int) {
	shown := min(n, len(values))
	parts := make([]string, shown)
	for i := range shown {
		parts[i] = strconv.Itoa(values[i])
	}
	line := strings.Join(parts, " ")
	if rest := len(values) - shown; rest > 0 {
		line += fmt.Sprintf(" ... (and %d more)", rest)
	}
	fmt.Fprintln(w, line)
}

// Listing writes every value, perLine values to a line.
func Listing(w io.Writer, values []int, perLine int) {
	for i, v := range values {
		sep := " "
		if (i+1)%perLine == 0 || i == len(values)-1 {
			sep = "\n"
		}
		fmt.Fprintf(w, "%d%s", v, sep)
	}
}
