package curve

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Kind selects the active variant of a Family.
type Kind int

const (
	KindLissajous Kind = iota
	KindTorus
	KindLissajousToric
)

var kindNames = map[Kind]string{
	KindLissajous:      "lissajous",
	KindTorus:          "torus",
	KindLissajousToric: "lissajous_toric",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind maps a family name to its Kind.
func ParseKind(name string) (Kind, error) {
	for k, s := range kindNames {
		if s == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%q: %w", name, ErrUnknownFamily)
}

// Family is a tagged variant over the supported curve families. Only the
// field selected by Kind is consulted.
type Family struct {
	Kind      Kind
	Lissajous Lissajous
	Torus     Torus
	Toric     LissajousToric
}

func NewLissajous(amplitude r3.Vec, frequency [3]int, phase r3.Vec) Family {
	return Family{Kind: KindLissajous, Lissajous: Lissajous{Amplitude: amplitude, Frequency: frequency, Phase: phase}}
}

func NewTorus(t Torus) Family { return Family{Kind: KindTorus, Torus: t} }

func NewLissajousToric(t LissajousToric) Family {
	return Family{Kind: KindLissajousToric, Toric: t}
}

// Position evaluates the active variant at parameter t.
func (f Family) Position(t float64) r3.Vec {
	switch f.Kind {
	case KindTorus:
		return f.Torus.Position(t)
	case KindLissajousToric:
		return f.Toric.Position(t)
	default:
		return f.Lissajous.Position(t)
	}
}

// PeriodTime returns the parameter interval covering one closed traversal.
func (f Family) PeriodTime() float64 {
	switch f.Kind {
	case KindTorus:
		return f.Torus.PeriodTime()
	case KindLissajousToric:
		return f.Toric.PeriodTime()
	default:
		return f.Lissajous.PeriodTime()
	}
}

// Params returns the numeric parameters of the active variant by name.
func (f Family) Params() map[string]float64 {
	switch f.Kind {
	case KindTorus:
		return f.Torus.Params()
	case KindLissajousToric:
		return f.Toric.Params()
	default:
		return f.Lissajous.Params()
	}
}

// SetParam updates one named parameter of the active variant. Integer
// parameters are rounded to the nearest integer.
func (f *Family) SetParam(name string, v float64) error {
	switch f.Kind {
	case KindTorus:
		return f.Torus.SetParam(name, v)
	case KindLissajousToric:
		return f.Toric.SetParam(name, v)
	default:
		return f.Lissajous.SetParam(name, v)
	}
}

// IntegerParam reports whether the named parameter is a winding number or
// frequency, which SetParam rounds.
func IntegerParam(name string) bool {
	switch name {
	case "freq_x", "freq_y", "freq_z", "p", "q", "n":
		return true
	}
	return false
}

// degenerateSamples is the number of probe points Validate evaluates.
const degenerateSamples = 32

// Validate reports ErrDegenerateCurve when the curve does not move over its
// period, e.g. all frequencies zero or all radii zero.
func (f Family) Validate() error {
	if _, ok := kindNames[f.Kind]; !ok {
		return fmt.Errorf("%s: %w", f.Kind, ErrUnknownFamily)
	}
	period := f.PeriodTime()
	origin := f.Position(0)
	scale := math.Max(1, r3.Norm(origin))
	for i := 1; i < degenerateSamples; i++ {
		// offset keeps probes off the symmetric points of the sinusoids
		t := period * (float64(i) + 0.318) / degenerateSamples
		p := f.Position(t)
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsNaN(p.Z) {
			return fmt.Errorf("%s: non-finite position at t=%.4f: %w", f.Kind, t, ErrDegenerateCurve)
		}
		if r3.Norm(r3.Sub(p, origin)) > 1e-9*scale {
			return nil
		}
	}
	return fmt.Errorf("%s: %w", f.Kind, ErrDegenerateCurve)
}

func (f Family) String() string { return f.Kind.String() }
