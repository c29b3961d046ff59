package curve

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

const deg2rad = math.Pi / 180

// Lissajous oscillates each axis independently: amplitude ⊙ cos(frequency·t + phase).
// Phase is in degrees.
type Lissajous struct {
	Amplitude r3.Vec
	Frequency [3]int
	Phase     r3.Vec
}

func (l Lissajous) Position(t float64) r3.Vec {
	return r3.Vec{
		X: l.Amplitude.X * math.Cos(float64(l.Frequency[0])*t+l.Phase.X*deg2rad),
		Y: l.Amplitude.Y * math.Cos(float64(l.Frequency[1])*t+l.Phase.Y*deg2rad),
		Z: l.Amplitude.Z * math.Cos(float64(l.Frequency[2])*t+l.Phase.Z*deg2rad),
	}
}

// PeriodTime is always 2π. Integer frequencies make it a valid period even
// when it is not the smallest one.
func (l Lissajous) PeriodTime() float64 { return FullTurn }

func (l Lissajous) Params() map[string]float64 {
	return map[string]float64{
		"amp_x": l.Amplitude.X, "amp_y": l.Amplitude.Y, "amp_z": l.Amplitude.Z,
		"freq_x": float64(l.Frequency[0]), "freq_y": float64(l.Frequency[1]), "freq_z": float64(l.Frequency[2]),
		"phase_x": l.Phase.X, "phase_y": l.Phase.Y, "phase_z": l.Phase.Z,
	}
}

func (l *Lissajous) SetParam(name string, v float64) error {
	switch name {
	case "amp_x":
		l.Amplitude.X = v
	case "amp_y":
		l.Amplitude.Y = v
	case "amp_z":
		l.Amplitude.Z = v
	case "freq_x":
		l.Frequency[0] = roundInt(v)
	case "freq_y":
		l.Frequency[1] = roundInt(v)
	case "freq_z":
		l.Frequency[2] = roundInt(v)
	case "phase_x":
		l.Phase.X = v
	case "phase_y":
		l.Phase.Y = v
	case "phase_z":
		l.Phase.Z = v
	default:
		return fmt.Errorf("lissajous %q: %w", name, ErrUnknownParam)
	}
	return nil
}

func roundInt(v float64) int { return int(math.Round(v)) }
