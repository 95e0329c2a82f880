package benchmark

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"mergebench/internal/dataset"
	apperrors "mergebench/internal/errors"
	"mergebench/internal/mergesort"
)

// Generator produces a fresh dataset per trial.
type Generator interface {
	Generate(count int) ([]int, error)
}

// Recorder receives one observation per finished trial.
type Recorder interface {
	ObserveTrial(size int, elapsed time.Duration, outcome Outcome)
}

// Clock supplies monotonic timestamps.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Config wires a Runner. Generator and Store are required.
type Config struct {
	Generator Generator
	Store     dataset.Store
	Sort      func([]int) []int // defaults to mergesort.Ints
	Clock     Clock
	OnDefect  DefectPolicy
	Logger    *slog.Logger
	Recorder  Recorder
	Progress  func(Progress)
}

// Runner executes trials one after another on the calling goroutine.
type Runner struct {
	cfg Config
}

func NewRunner(cfg Config) (*Runner, error) {
	if cfg.Generator == nil {
		return nil, fmt.Errorf("benchmark runner requires a generator")
	}
	if cfg.Store == nil {
		return nil, fmt.Errorf("benchmark runner requires a dataset store")
	}
	if cfg.Sort == nil {
		cfg.Sort = mergesort.Ints
	}
	if cfg.Clock == nil {
		cfg.Clock = systemClock{}
	}
	if cfg.OnDefect == "" {
		cfg.OnDefect = DefectFlag
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Runner{cfg: cfg}, nil
}

// RunTrial performs one generate, persist, reload, sort, verify cycle. Only the
// sort is timed. A verification failure returns the trial together with a
// *errors.VerificationDefect.
func (r *Runner) RunTrial(size, run int) (Trial, []int, error) {
	trial := Trial{Size: size, Run: run}
	log := r.cfg.Logger.With("size", size, "run", run)

	data, err := r.cfg.Generator.Generate(size)
	if err != nil {
		return trial, nil, err
	}
	if err := r.cfg.Store.Save(data); err != nil {
		log.Error("failed to persist dataset", "error", err)
		return trial, nil, err
	}
	loaded, err := r.cfg.Store.Load()
	if err != nil {
		log.Error("failed to reload dataset", "error", err)
		return trial, nil, err
	}

	start := r.cfg.Clock.Now()
	sorted := r.cfg.Sort(loaded)
	trial.Elapsed = r.cfg.Clock.Now().Sub(start)

	if idx := mergesort.FirstViolation(sorted); idx >= 0 || len(sorted) != len(loaded) {
		defect := &apperrors.VerificationDefect{Size: size, Run: run, Index: idx}
		log.Error("VERIFICATION DEFECT: sort output is not ordered", "index", idx, "elapsed_ms", trial.Elapsed.Milliseconds())
		return trial, sorted, defect
	}

	trial.Sorted = true
	log.Debug("trial completed", "elapsed_ms", trial.Elapsed.Milliseconds())
	return trial, sorted, nil
}

// RunSuite runs RunsPerSize independent trials for every size, in order.
// Sizes are not deduplicated.
//
// Trials that fail with an IO or input error are recorded in Suite.Failures and
// the suite moves on to the next size. Defects mark the result; under
// DefectAbort the suite stops. The returned error joins every failure and
// defect and is nil only for a clean run. The suite is always non-nil.
func (r *Runner) RunSuite(ctx context.Context, sizes []int) (*Suite, error) {
	suite := &Suite{Timestamp: time.Now(), Results: []TrialResult{}}
	total := len(sizes) * RunsPerSize
	done := 0
	var errs []error

	for _, size := range sizes {
		result := TrialResult{Size: size}
		complete := true

		for run := 1; run <= RunsPerSize; run++ {
			if err := ctx.Err(); err != nil {
				suite.Aborted = true
				return suite, errors.Join(append(errs, err)...)
			}

			trial, _, err := r.RunTrial(size, run)
			done++
			r.report(Progress{Done: done, Total: total, Trial: trial, Err: err})

			var defect *apperrors.VerificationDefect
			switch {
			case errors.As(err, &defect):
				result.Defect = true
				errs = append(errs, err)
				r.observe(size, trial.Elapsed, OutcomeDefect)
			case err != nil:
				complete = false
				errs = append(errs, err)
				suite.Failures = append(suite.Failures, Failure{Size: size, Run: run, Error: err.Error()})
				r.observe(size, trial.Elapsed, OutcomeIOError)
			default:
				r.observe(size, trial.Elapsed, OutcomeOK)
			}
			if !complete {
				// The remaining run of this size is skipped; its timing would
				// have no partner to average against.
				done += RunsPerSize - run
				break
			}

			if run == 1 {
				result.Run1Millis = trial.Elapsed.Milliseconds()
			} else {
				result.Run2Millis = trial.Elapsed.Milliseconds()
			}

			if defect != nil && r.cfg.OnDefect == DefectAbort {
				// The partial result keeps the defect visible in reports and history.
				suite.Results = append(suite.Results, result)
				suite.Failures = append(suite.Failures, Failure{Size: size, Run: run, Error: defect.Error()})
				suite.Aborted = true
				r.cfg.Logger.Error("suite aborted after verification defect", "size", size, "run", run)
				return suite, errors.Join(errs...)
			}
		}

		if complete {
			suite.Results = append(suite.Results, result)
			r.cfg.Logger.Info("size completed",
				"size", size,
				"run1_ms", result.Run1Millis,
				"run2_ms", result.Run2Millis,
				"average_ms", result.Average(),
				"difference_ms", result.Difference(),
			)
		}
	}

	return suite, errors.Join(errs...)
}

func (r *Runner) report(p Progress) {
	if r.cfg.Progress != nil {
		r.cfg.Progress(p)
	}
}

func (r *Runner) observe(size int, elapsed time.Duration, outcome Outcome) {
	if r.cfg.Recorder != nil {
		r.cfg.Recorder.ObserveTrial(size, elapsed, outcome)
	}
}
