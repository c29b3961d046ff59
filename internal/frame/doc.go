// Package frame computes orientation frames along a sampled curve.
//
// The pieces are used in sequence by the knot builder:
//
//   - [Smooth] derives a spline handle and unit tangent from three samples
//   - [FirstNormal] seeds a normal perpendicular to the first tangent
//   - [Advance] transports a normal to the next sample by double reflection,
//     giving a rotation-minimizing frame
//   - [CloseLoop] spreads the residual rotation of a closed curve across
//     all samples so the frame field has no seam
//
// All functions are pure and operate on gonum r3 vectors.
//
// Reference: Wang, Jüttler, Zheng, Liu, "Computation of Rotation Minimizing
// Frames", ACM TOG 27(1), 2008.
package frame
