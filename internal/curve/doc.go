// Package curve provides the parametric curve families that knot skeletons
// are sampled from.
//
// A [Family] is a tagged variant over three closed curve families:
//
//   - [Lissajous]: independent cosine oscillation on each axis
//   - [Torus]: a (P,Q) torus knot wound around an elliptic torus
//   - [LissajousToric]: a torus winding whose height follows a Lissajous term
//
// Every family evaluates a position for a real parameter t and reports the
// parameter interval after which the curve repeats. Periods are derived from
// the integer frequencies with [GCD].
//
// # Example
//
//	f := curve.NewLissajous(r3.Vec{X: 1, Y: 1, Z: 1}, [3]int{3, 2, 7}, r3.Vec{X: 40, Y: 11})
//	p := f.Position(0.5)
//	T := f.PeriodTime()
package curve
