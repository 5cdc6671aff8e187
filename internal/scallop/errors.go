package scallop

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParams indicates a parameter set rejected before the first step.
	ErrInvalidParams = errors.New("scallop: invalid parameters")

	// ErrSingularSystem indicates the interaction matrix could not be solved.
	// The run cannot continue: without a translation speed the hinge update
	// would fabricate physics.
	ErrSingularSystem = errors.New("scallop: interaction matrix singular or ill-conditioned")
)

// StepError wraps a failure with the step index and simulated time at which
// it occurred.
type StepError struct {
	Step int
	Time float64
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.5f): %v", e.Step, e.Time, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }
