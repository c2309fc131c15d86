package circuit

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned for out-of-domain circuit or supply values.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoFeasibleSize is returned when no candidate cross-section passes selection.
	ErrNoFeasibleSize = errors.New("no feasible cross-section")

	// ErrUpstreamNotReady is returned when a branch is computed without its feeder result.
	ErrUpstreamNotReady = errors.New("upstream circuit not computed")
)

// SelectionError reports an exhausted cross-section search
type SelectionError struct {
	Circuit  string
	LastSize float64 // mm², last candidate tried
	Reason   string  // why the last candidate failed
	Trace    Trace
}

func (e *SelectionError) Error() string {
	if e.LastSize == 0 {
		return fmt.Sprintf("%s: %v: no candidates", e.Circuit, ErrNoFeasibleSize)
	}
	return fmt.Sprintf("%s: %v (last tried %g mm²: %s)", e.Circuit, ErrNoFeasibleSize, e.LastSize, e.Reason)
}

func (e *SelectionError) Unwrap() error {
	return ErrNoFeasibleSize
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
