package curve

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// LissajousToric winds N times around the vertical axis while the radial
// offset follows sin(Q·t) and the height follows cos(P·(t+Phase)).
type LissajousToric struct {
	P, Q, N     int
	MajorRadius r2.Vec
	MinorRadius r3.Vec
	Phase       float64
}

func (k LissajousToric) Position(t float64) r3.Vec {
	scale := math.Sin(float64(k.Q) * t)
	sn, cn := math.Sincos(float64(k.N) * t)
	return r3.Vec{
		X: (k.MinorRadius.X*scale + k.MajorRadius.X) * cn,
		Y: k.MinorRadius.Z * math.Cos(float64(k.P)*(t+k.Phase)),
		Z: (k.MinorRadius.Y*scale + k.MajorRadius.Y) * sn,
	}
}

// PeriodTime is 2π/gcd(P,Q,N), or 2π when any frequency is zero.
func (k LissajousToric) PeriodTime() float64 { return periodOf(k.P, k.Q, k.N) }

func (k LissajousToric) Params() map[string]float64 {
	return map[string]float64{
		"p": float64(k.P), "q": float64(k.Q), "n": float64(k.N),
		"major_x": k.MajorRadius.X, "major_y": k.MajorRadius.Y,
		"minor_x": k.MinorRadius.X, "minor_y": k.MinorRadius.Y, "minor_z": k.MinorRadius.Z,
		"phase": k.Phase,
	}
}

func (k *LissajousToric) SetParam(name string, v float64) error {
	switch name {
	case "p":
		k.P = roundInt(v)
	case "q":
		k.Q = roundInt(v)
	case "n":
		k.N = roundInt(v)
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
		return fmt.Errorf("lissajous_toric %q: %w", name, ErrUnknownParam)
	}
	return nil
}
