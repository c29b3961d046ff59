package curve

import "errors"

var (
	// ErrUnknownFamily indicates a family name with no registered constructor.
	ErrUnknownFamily = errors.New("curve: unknown family")

	// ErrUnknownParam indicates a parameter name the family does not expose.
	ErrUnknownParam = errors.New("curve: unknown parameter")

	// ErrDegenerateCurve indicates a family whose samples all coincide, so no
	// tangent can be derived anywhere on it.
	ErrDegenerateCurve = errors.New("curve: degenerate curve (constant position)")
)
