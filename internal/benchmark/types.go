package benchmark

import "time"

// RunsPerSize is the number of independent trials measured for each size.
const RunsPerSize = 2

// TrialResult holds both timings measured for one requested size.
type TrialResult struct {
	Size       int   `json:"size"`
	Run1Millis int64 `json:"run1_ms"`
	Run2Millis int64 `json:"run2_ms"`
	Defect     bool  `json:"defect,omitempty"` // either run failed verification
}

// Average is the mean of both runs in milliseconds.
func (r TrialResult) Average() float64 {
	return float64(r.Run1Millis+r.Run2Millis) / 2.0
}

// Difference is |run1 - run2| in milliseconds.
func (r TrialResult) Difference() int64 {
	if r.Run1Millis > r.Run2Millis {
		return r.Run1Millis - r.Run2Millis
	}
	return r.Run2Millis - r.Run1Millis
}

// Trial is the outcome of a single generate, persist, reload, sort, verify cycle.
type Trial struct {
	Size    int
	Run     int
	Elapsed time.Duration
	Sorted  bool
}

// Failure records a trial that could not produce a timing.
type Failure struct {
	Size  int    `json:"size"`
	Run   int    `json:"run"`
	Error string `json:"error"`
}

// Suite is a collection of results from one execution, in requested size order.
type Suite struct {
	Timestamp time.Time     `json:"timestamp"`
	Label     string        `json:"label,omitempty"`
	Results   []TrialResult `json:"results"`
	Failures  []Failure     `json:"failures,omitempty"`
	Aborted   bool          `json:"aborted,omitempty"`
}

// Outcome labels a finished trial for metrics.
type Outcome string

const (
	OutcomeOK      Outcome = "ok"
	OutcomeDefect  Outcome = "defect"
	OutcomeIOError Outcome = "io_error"
)

// DefectPolicy decides what a suite does after a verification defect.
type DefectPolicy string

const (
	// DefectFlag marks the result and keeps going.
	DefectFlag DefectPolicy = "flag"
	// DefectAbort stops the suite at the first defect.
	DefectAbort DefectPolicy = "abort"
)

// Progress is reported after every trial.
type Progress struct {
	Done  int
	Total int
	Trial Trial
	Err   error
}
