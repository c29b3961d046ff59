package frame

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// FirstNormal returns a unit vector perpendicular to the unit tangent t.
// The component on the axis where t is largest is used as the divisor, and
// the normal's component on the following axis is zero:
//
//	|t.X| largest: normal.Y == 0
//	|t.Y| largest: normal.Z == 0
//	|t.Z| largest: normal.X == 0
func FirstNormal(t r3.Vec) r3.Vec {
	ax, ay, az := math.Abs(t.X), math.Abs(t.Y), math.Abs(t.Z)

	switch {
	case ax >= ay && ax >= az:
		r := t.Z / t.X
		z := 1 / math.Sqrt(1+r*r)
		return r3.Vec{X: -z * r, Y: 0, Z: z}
	case ay >= ax && ay >= az:
		r := t.X / t.Y
		x := 1 / math.Sqrt(1+r*r)
		return r3.Vec{X: x, Y: -x * r, Z: 0}
	default:
		r := t.Y / t.Z
		y := 1 / math.Sqrt(1+r*r)
		return r3.Vec{X: 0, Y: y, Z: -y * r}
	}
}
