package spectral

import (
	"errors"
	"fmt"
)

// Domain errors for spectral simulation operations.
var (
	// ErrInvalidConfig indicates a configuration rejected before integration.
	ErrInvalidConfig = errors.New("spectral: invalid configuration")

	// ErrDimensionMismatch indicates a mode vector whose length does not
	// match the configured truncation order.
	ErrDimensionMismatch = errors.New("spectral: mode vector length does not match truncation order")

	// ErrUnstable indicates non-finite coefficients detected mid-run.
	ErrUnstable = errors.New("spectral: trajectory diverged (NaN or Inf coefficients)")

	// ErrNotFound indicates a stored run that does not exist.
	ErrNotFound = errors.New("spectral: run not found")
)

// RunError wraps an error with the step and simulation time it occurred at.
type RunError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *RunError) Unwrap() error {
	return e.Wrapped
}
