package frame

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// ClosureEps is the per-sample angle below which a seam is left alone.
const ClosureEps = 1e-9

// SeamAngle returns the signed rotation about tangent that carries first
// onto last. Both normals must be perpendicular to tangent.
func SeamAngle(first, last, tangent r3.Vec) float64 {
	return math.Atan2(r3.Dot(r3.Cross(first, last), r3.Unit(tangent)), r3.Dot(first, last))
}

// CloseLoop removes the seam between normals[0] and normals[len-1] of a
// closed curve whose last sample duplicates the first. Normal i is rotated
// about tangents[i] by θ/2 - i·θ/(n-1), so the first and last normals meet
// halfway. It returns θ, or 0 when the seam is within tolerance.
func CloseLoop(normals, tangents []r3.Vec) float64 {
	n := len(normals)
	if n < 2 || len(tangents) != n {
		return 0
	}

	theta := SeamAngle(normals[0], normals[n-1], tangents[n-1])
	if math.Abs(theta) <= float64(n)*ClosureEps {
		return 0
	}

	step := theta / float64(n-1)
	for i := range normals {
		normals[i] = Rotate(normals[i], tangents[i], theta/2-float64(i)*step)
	}
	return theta
}
