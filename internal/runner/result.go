// SPDX-License-Identifier: MIT

package runner

import "time"

// Outcome is the terminal state of a run.
type Outcome int

const (
	// OutcomePassed means the time budget elapsed with no failure.
	OutcomePassed Outcome = iota
	// OutcomeFailed means a validator rejected an input or an invocation
	// faulted.
	OutcomeFailed
	// OutcomeErrored means input generation itself failed.
	OutcomeErrored
)

func (o Outcome) String() string {
	switch o {
	case OutcomePassed:
		return "passed"
	case OutcomeFailed:
		return "failed"
	case OutcomeErrored:
		return "errored"
	default:
		return "unknown"
	}
}

// Input is one named input literal of a recorded failure. The values are
// exact, so the case is reproducible by direct re-invocation of the function
// under test.
type Input struct {
	Name  string
	Value any
}

// Failure is one recorded counterexample. Immutable once recorded; under the
// fail-fast policy only the first writer's failure is retained.
type Failure struct {
	Inputs  []Input
	Results []any // nil when the invocation itself faulted
	// ValidatorIndex is the index of the violated validator, or -1 when
	// the function under test faulted before validation.
	ValidatorIndex int
	ValidatorName  string
	// Faulted distinguishes "raised X" from "predicate returned false".
	Faulted      bool
	FaultMessage string
	// Iteration is the recording worker's private iteration count at the
	// time of the failure.
	Iteration uint64
}

// Result is the outcome of one run. A run always terminates with a Result;
// only configuration errors prevent one from being produced.
type Result struct {
	RunID      string
	Spec       string
	Outcome    Outcome
	Iterations uint64
	Elapsed    time.Duration
	// Failure is the first recorded failure, nil on a pass.
	Failure *Failure
	// Failures holds every recorded failure when the run was configured
	// with StopOnFirstFailure=false; otherwise it contains at most the
	// first.
	Failures []Failure
	// Err carries the generation error for an errored run.
	Err error
}
