// Package knot builds framed skeletons of closed parametric curves.
//
// A [Builder] owns one node buffer and turns a curve family plus shaping
// options into a [Skeleton]: an ordered list of nodes, each with a
// position, an absolute spline handle, a unit tangent and a unit normal.
// Normals follow a rotation-minimizing frame and, for closed loops, are
// corrected so the first and last frames agree.
//
// # Rebuild commands
//
// Setters never rebuild directly. Each returns the [RebuildKind] it needs
// and merges it into a single pending command, which [Builder.Apply]
// consumes:
//
//	b := knot.NewBuilder(family, knot.DefaultOptions())
//	b.SetCurvature(0.5)     // RebuildReframe
//	b.SetSampleCount(120)   // RebuildFull, dominates
//	sk, kind := b.Apply()   // runs Construct once
//
// # Thread Safety
//
// Builder instances are NOT thread-safe. Use one builder per goroutine.
package knot
