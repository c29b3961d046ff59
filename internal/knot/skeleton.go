package knot

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Node is one framed sample of the skeleton. Handle is an absolute control
// point, not a direction.
type Node struct {
	Position r3.Vec
	Handle   r3.Vec
	Tangent  r3.Vec
	Normal   r3.Vec
}

// Binormal completes the right-handed frame (tangent, normal, binormal).
func (n Node) Binormal() r3.Vec { return r3.Cross(n.Tangent, n.Normal) }

// Skeleton is the ordered node sequence handed to the mesh generator. When
// IsLoop is set the last node duplicates the first sample.
type Skeleton struct {
	Nodes  []Node
	IsLoop bool
}

func (s *Skeleton) Len() int { return len(s.Nodes) }

func (s *Skeleton) Clone() *Skeleton {
	c := &Skeleton{Nodes: make([]Node, len(s.Nodes)), IsLoop: s.IsLoop}
	copy(c.Nodes, s.Nodes)
	return c
}

// Positions returns the node positions in order.
func (s *Skeleton) Positions() []r3.Vec {
	out := make([]r3.Vec, len(s.Nodes))
	for i, n := range s.Nodes {
		out[i] = n.Position
	}
	return out
}

// Default tolerances for Check.
const (
	UnitTolerance  = 1e-4
	OrthoTolerance = 1e-3
)

// Check verifies that every normal is unit length within unitTol and
// perpendicular to its tangent within orthoTol.
func (s *Skeleton) Check(unitTol, orthoTol float64) error {
	for i, n := range s.Nodes {
		if !finite(n.Position) || !finite(n.Normal) || !finite(n.Tangent) {
			return &InvariantError{Index: i, Check: "finite", Value: math.NaN()}
		}
		if d := math.Abs(r3.Norm(n.Normal) - 1); d > unitTol {
			return &InvariantError{Index: i, Check: "|normal|-1", Value: d}
		}
		if d := math.Abs(r3.Dot(n.Normal, n.Tangent)); d > orthoTol {
			return &InvariantError{Index: i, Check: "normal·tangent", Value: d}
		}
	}
	return nil
}

func finite(v r3.Vec) bool {
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
