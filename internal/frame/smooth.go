package frame

import "gonum.org/v1/gonum/spatial/r3"

// Smooth returns an absolute handle point for curr and the unit tangent at
// curr. The tangent is the normalized difference of the unit vectors toward
// the neighbours; the handle sits along it at curvature times the mean
// neighbour distance.
//
// prev, curr and next must be distinct.
func Smooth(prev, curr, next r3.Vec, curvature float64) (handle, tangent r3.Vec) {
	toPrev := r3.Sub(curr, prev)
	toNext := r3.Sub(curr, next)

	dir := r3.Sub(r3.Unit(toPrev), r3.Unit(toNext))
	avgMag := 0.5 * (r3.Norm(toPrev) + r3.Norm(toNext))

	tangent = r3.Unit(dir)
	handle = r3.Add(curr, r3.Scale(avgMag*curvature, tangent))
	return handle, tangent
}

// minTurn is the smallest |u_prev - u_next| from which Smooth can still
// normalize a tangent.
const minTurn = 1e-9

// Degenerate reports whether Smooth cannot derive a tangent at curr: a
// neighbour coincides with curr, or both neighbours lie in the same
// direction from it (a turning point of a curve retracing itself).
func Degenerate(prev, curr, next r3.Vec) bool {
	toPrev := r3.Sub(curr, prev)
	toNext := r3.Sub(curr, next)
	if r3.Norm(toPrev) == 0 || r3.Norm(toNext) == 0 {
		return true
	}
	return r3.Norm(r3.Sub(r3.Unit(toPrev), r3.Unit(toNext))) < minTurn
}
