package poly

import (
	"errors"
	"fmt"
)

var (
	// ErrNoConvergence matches every *NonConvergenceError.
	ErrNoConvergence = errors.New("root finder did not converge")
	// ErrNotARoot is returned when deflating by a value that is not a root.
	ErrNotARoot = errors.New("deflation point is not a root")
	// ErrDegreeTooLow is returned when an operation needs a higher degree.
	ErrDegreeTooLow = errors.New("polynomial degree too low")
	// ErrZeroDerivative stops an iteration whose update would divide by zero.
	ErrZeroDerivative = errors.New("zero derivative")
	// ErrNotFinite stops an iteration whose estimate became NaN or infinite.
	ErrNotFinite = errors.New("estimate is not finite")
)

// NonConvergenceError carries the last estimate of a root finder that ran
// out of steps or hit a numeric dead end.
type NonConvergenceError[V any] struct {
	Last  V
	Steps int
	Cause error
}

func (e *NonConvergenceError[V]) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%v after %d steps (last estimate %v): %v", ErrNoConvergence, e.Steps, e.Last, e.Cause)
	}
	return fmt.Sprintf("%v after %d steps (last estimate %v)", ErrNoConvergence, e.Steps, e.Last)
}

func (e *NonConvergenceError[V]) Is(target error) bool {
	return target == ErrNoConvergence
}

func (e *NonConvergenceError[V]) Unwrap() error {
	return e.Cause
}

// LastEstimate extracts the last estimate from err if it is a
// *NonConvergenceError[V].
func LastEstimate[V any](err error) (V, bool) {
	var nc *NonConvergenceError[V]
	if errors.As(err, &nc) {
		return nc.Last, true
	}
	var zero V
	return zero, false
}
