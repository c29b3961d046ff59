package curve

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Torus is a (P,Q) torus knot. P winds around the major circle, Q around the
// tube. Phase shifts the tube winding and is added to t inside the Q terms.
type Torus struct {
	P, Q        int
	MajorRadius r2.Vec
	MinorRadius r3.Vec
	Phase       float64
}

func (k Torus) Position(t float64) r3.Vec {
	sq, cq := math.Sincos(float64(k.Q) * (t + k.Phase))
	sp, cp := math.Sincos(float64(k.P) * t)
	return r3.Vec{
		X: (k.MinorRadius.X*cq + k.MajorRadius.X) * cp,
		Y: -k.MinorRadius.Z * sq,
		Z: (k.MinorRadius.Y*cq + k.MajorRadius.Y) * sp,
	}
}

// PeriodTime is 2π/gcd(P,Q), or 2π when either winding is zero.
func (k Torus) PeriodTime() float64 { return periodOf(k.P, k.Q) }

func (k Torus) Params() map[string]float64 {
	return map[string]float64{
		"p": float64(k.P), "q": float64(k.Q),
		"major_x": k.MajorRadius.X, "major_y": k.MajorRadius.Y,
		"minor_x": k.MinorRadius.X, "minor_y": k.MinorRadius.Y, "minor_z": k.MinorRadius.Z,
		"phase": k.Phase,
	}
}

// SetParam accepts "n" as an alias for "q".
func (k *Torus) SetParam(name string, v float64) error {
	switch name {
	case "p":
		k.P = roundInt(v)
	case "q", "n":
		k.Q = roundInt(v)
	case "major_x":
		k.MajorRadius.X = v
	case "major_y":
		k.MajorRadius.Y = v
	case "minor_x":
		k.MinorRadius.X = v
	case "minor_y":
		k.MinorRadius.Y = v
	case "minor_z":
		k.MinorRadius.Z = v
	case "phase":
		k.Phase = v
	default:
		return fmt.Errorf("torus %q: %w", name, ErrUnknownParam)
	}
	return nil
}
