package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrDegenerateSeparation indicates two particles at zero minimum-image
	// distance, where the pair law is undefined.
	ErrDegenerateSeparation = errors.New("dynamo: degenerate pair separation (r <= 0)")

	// ErrInvalidConfig indicates a parameter rejected before the run starts.
	ErrInvalidConfig = errors.New("dynamo: invalid configuration")

	// ErrNumericalDrift is advisory: energy or momentum moved beyond the
	// configured tolerance. It never aborts a run.
	ErrNumericalDrift = errors.New("dynamo: numerical drift beyond tolerance")

	// ErrUnstable indicates the simulation became numerically unstable.
	ErrUnstable = errors.New("dynamo: simulation unstable (state diverged)")

	// ErrContextCanceled indicates the simulation was interrupted.
	ErrContextCanceled = errors.New("dynamo: simulation canceled by context")
)

// PairError names the pair that produced a degenerate separation.
type PairError struct {
	I, J int
	Step int
}

func (e *PairError) Error() string {
	return fmt.Sprintf("step %d: particles %d and %d: %v", e.Step, e.I, e.J, ErrDegenerateSeparation)
}

func (e *PairError) Unwrap() error {
	return ErrDegenerateSeparation
}

// SimulationError wraps an error with simulation context.
type SimulationError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}

// InvalidParam returns an ErrInvalidConfig naming the rejected field.
func InvalidParam(field string, value any) error {
	return fmt.Errorf("%w: %s = %v", ErrInvalidConfig, field, value)
}
