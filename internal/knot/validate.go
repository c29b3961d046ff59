package knot

import (
	"fmt"
	"math"

	"github.com/san-kum/knotsim/internal/curve"
	"github.com/san-kum/knotsim/internal/frame"
)

const (
	// MinNodes is the smallest sample count for which tangents exist.
	MinNodes = 3

	// Recommended sample range for interactive use.
	RecommendedMinNodes = 40
	RecommendedMaxNodes = 150
)

// Validate checks the preconditions Construct and Update assume, including
// that every sampled node has a tangent. Builds do not call it; callers
// validate user input before handing it to a Builder.
func Validate(f curve.Family, opts Options) error {
	if err := f.Validate(); err != nil {
		return err
	}
	if opts.Nodes < MinNodes {
		return fmt.Errorf("nodes=%d (min %d): %w", opts.Nodes, MinNodes, ErrTooFewNodes)
	}
	if math.IsNaN(opts.Curvature) || opts.Curvature < 0 || opts.Curvature > 1 {
		return fmt.Errorf("curvature=%v not in [0,1]: %w", opts.Curvature, ErrParameterBounds)
	}
	if math.IsNaN(opts.TwistAngle) || math.IsInf(opts.TwistAngle, 0) {
		return fmt.Errorf("twist angle=%v: %w", opts.TwistAngle, ErrParameterBounds)
	}
	return checkSamples(f, opts)
}

// checkSamples walks the sample schedule of a build and reports the first
// node whose neighbours leave its tangent undefined.
func checkSamples(f curve.Family, opts Options) error {
	samples, dt := schedule(f.PeriodTime(), nodeCount(opts), opts.Loop)
	prev, curr := f.Position(-dt), f.Position(0)
	for i := 0; i < samples; i++ {
		next := f.Position(float64(i+1) * dt)
		if frame.Degenerate(prev, curr, next) {
			return fmt.Errorf("%s: no tangent at node %d (t=%.4f): %w", f.Kind, i, float64(i)*dt, ErrDegenerateSample)
		}
		prev, curr = curr, next
	}
	return nil
}

// ClampNodes limits n to the recommended sample range.
func ClampNodes(n int) int {
	return max(RecommendedMinNodes, min(RecommendedMaxNodes, n))
}
