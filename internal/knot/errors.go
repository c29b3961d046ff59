package knot

import (
	"errors"
	"fmt"
)

// Domain errors for knot parameters.
var (
	// ErrParameterBounds indicates a shaping parameter outside its valid range.
	ErrParameterBounds = errors.New("knot: parameter out of valid bounds")

	// ErrTooFewNodes indicates a sample count too small to derive tangents.
	ErrTooFewNodes = errors.New("knot: too few nodes")

	// ErrDegenerateSample indicates a sampled node whose neighbours do not
	// define a tangent, such as a turning point of a curve retracing a line.
	ErrDegenerateSample = errors.New("knot: degenerate sample")

	// ErrInvariant indicates a built skeleton violates a frame invariant.
	ErrInvariant = errors.New("knot: frame invariant violated")
)

// InvariantError reports the first node failing a frame check.
type InvariantError struct {
	Index int
	Check string
	Value float64
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("node %d: %s = %.3g", e.Index, e.Check, e.Value)
}

func (e *InvariantError) Unwrap() error {
	return ErrInvariant
}
