package frame

import "gonum.org/v1/gonum/spatial/r3"

// parallelEps is the squared length below which the second reflection axis
// is treated as zero.
const parallelEps = 1e-24

// Reflect mirrors v in the plane through the origin with unit normal axis.
func Reflect(v, axis r3.Vec) r3.Vec {
	return r3.Sub(v, r3.Scale(2*r3.Dot(v, axis), axis))
}

// Rotate turns v by angle radians about axis (right-handed).
func Rotate(v, axis r3.Vec, angle float64) r3.Vec {
	if angle == 0 {
		return v
	}
	return r3.Rotate(v, angle, axis)
}

// Advance carries prevNormal from the sample at prevPos to the sample at
// currPos with the double reflection method. The first reflection is in the
// bisecting plane of the chord, the second maps the reflected tangent onto
// currTangent.
func Advance(prevPos, currPos, prevTangent, currTangent, prevNormal r3.Vec) r3.Vec {
	v1 := r3.Unit(r3.Sub(currPos, prevPos))
	normal := Reflect(prevNormal, v1)

	c := r3.Sub(currTangent, Reflect(prevTangent, v1))
	if r3.Norm2(c) < parallelEps {
		// first reflection already lands on currTangent
		return normal
	}
	return Reflect(normal, r3.Unit(c))
}
