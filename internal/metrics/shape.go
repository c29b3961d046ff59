package metrics

import (
	"math"

	"github.com/san-kum/knotsim/internal/knot"
	"gonum.org/v1/gonum/spatial/r3"
)

// MaxTangentTurn is the largest angle between consecutive tangents. Values
// near π mean the curve is sampled too coarsely for its curvature.
type MaxTangentTurn struct {
	name    string
	prev    r3.Vec
	max     float64
	samples int
}

func NewMaxTangentTurn() *MaxTangentTurn { return &MaxTangentTurn{name: "max_tangent_turn"} }

func (m *MaxTangentTurn) Name() string { return m.name }

func (m *MaxTangentTurn) Observe(n knot.Node, _ int) {
	if m.samples > 0 {
		m.max = math.Max(m.max, angle(m.prev, n.Tangent))
	}
	m.prev = n.Tangent
	m.samples++
}

func (m *MaxTangentTurn) Value() float64 { return m.max }

func (m *MaxTangentTurn) Reset() {
	m.prev = r3.Vec{}
	m.max = 0
	m.samples = 0
}

// ArcLength is the length of the polyline through the node positions.
type ArcLength struct {
	name    string
	prev    r3.Vec
	total   float64
	samples int
}

func NewArcLength() *ArcLength { return &ArcLength{name: "arc_length"} }

func (m *ArcLength) Name() string { return m.name }

func (m *ArcLength) Observe(n knot.Node, _ int) {
	if m.samples > 0 {
		m.total += r3.Norm(r3.Sub(n.Position, m.prev))
	}
	m.prev = n.Position
	m.samples++
}

func (m *ArcLength) Value() float64 { return m.total }

func (m *ArcLength) Reset() {
	m.prev = r3.Vec{}
	m.total = 0
	m.samples = 0
}
