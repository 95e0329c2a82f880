package errors

import (
	"errors"
	"fmt"
)

// InputError reports a request rejected before any work was done.
type InputError struct {
	Field  string
	Value  int
	Reason string
}

// Error implements the error interface
func (e *InputError) Error() string {
	return fmt.Sprintf("invalid %s %d: %s", e.Field, e.Value, e.Reason)
}

// IOFailure reports a dataset or report file that could not be written, read or parsed.
// Line is 1-based and only set for parse failures.
type IOFailure struct {
	Op   string
	Path string
	Line int
	Err  error
}

// Error implements the error interface
func (e *IOFailure) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s %s:%d: %v", e.Op, e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOFailure) Unwrap() error {
	return e.Err
}

// VerificationDefect means a sort produced out-of-order output. It is a bug in
// the sorter, never an expected runtime condition.
type VerificationDefect struct {
	Size  int
	Run   int
	Index int // first i where a[i] > a[i+1]
}

// Error implements the error interface
func (e *VerificationDefect) Error() string {
	return fmt.Sprintf("verification defect: size %d run %d not sorted at index %d", e.Size, e.Run, e.Index)
}

// IsInput reports whether err carries an InputError.
func IsInput(err error) bool {
	var target *InputError
	return errors.As(err, &target)
}

// IsIO reports whether err carries an IOFailure.
func IsIO(err error) bool {
	var target *IOFailure
	return errors.As(err, &target)
}

// IsDefect reports whether err carries a VerificationDefect.
func IsDefect(err error) bool {
	var target *VerificationDefect
	return errors.As(err, &target)
}
