package metrics

import (
	"math"

	"github.com/san-kum/knotsim/internal/frame"
	"github.com/san-kum/knotsim/internal/knot"
	"gonum.org/v1/gonum/spatial/r3"
)

type NormalDeviation struct {
	name string
	max  float64
}

func NewNormalDeviation() *NormalDeviation { return &NormalDeviation{name: "normal_unit_dev"} }

func (m *NormalDeviation) Name() string { return m.name }

func (m *NormalDeviation) Observe(n knot.Node, _ int) {
	m.max = math.Max(m.max, math.Abs(r3.Norm(n.Normal)-1))
}

func (m *NormalDeviation) Value() float64 { return m.max }
func (m *NormalDeviation) Reset()         { m.max = 0 }

// Orthogonality is the largest |normal·tangent| seen.
type Orthogonality struct {
	name string
	max  float64
}

func NewOrthogonality() *Orthogonality { return &Orthogonality{name: "normal_tangent_dot"} }

func (m *Orthogonality) Name() string { return m.name }

func (m *Orthogonality) Observe(n knot.Node, _ int) {
	m.max = math.Max(m.max, math.Abs(r3.Dot(n.Normal, n.Tangent)))
}

func (m *Orthogonality) Value() float64 { return m.max }
func (m *Orthogonality) Reset()         { m.max = 0 }

// EndSeam is the unsigned angle between the first and last normals, measured
// about the last tangent. On a corrected loop it is zero.
type EndSeam struct {
	name        string
	first, last knot.Node
	samples     int
}

func NewEndSeam() *EndSeam { return &EndSeam{name: "end_seam"} }

func (m *EndSeam) Name() string { return m.name }

func (m *EndSeam) Observe(n knot.Node, _ int) {
	if m.samples == 0 {
		m.first = n
	}
	m.last = n
	m.samples++
}

func (m *EndSeam) Value() float64 {
	if m.samples < 2 {
		return 0
	}
	return math.Abs(frame.SeamAngle(m.first.Normal, m.last.Normal, m.last.Tangent))
}

func (m *EndSeam) Reset() {
	m.first, m.last = knot.Node{}, knot.Node{}
	m.samples = 0
}

// NormalTurn sums the angles between consecutive normals.
type NormalTurn struct {
	name    string
	prev    r3.Vec
	total   float64
	samples int
}

func NewNormalTurn() *NormalTurn { return &NormalTurn{name: "normal_turn"} }

func (m *NormalTurn) Name() string { return m.name }

func (m *NormalTurn) Observe(n knot.Node, _ int) {
	if m.samples > 0 {
		m.total += angle(m.prev, n.Normal)
	}
	m.prev = n.Normal
	m.samples++
}

func (m *NormalTurn) Value() float64 { return m.total }

func (m *NormalTurn) Reset() {
	m.prev = r3.Vec{}
	m.total = 0
	m.samples = 0
}

func angle(a, b r3.Vec) float64 {
	c := r3.Dot(a, b) / (r3.Norm(a) * r3.Norm(b))
	return math.Acos(math.Max(-1, math.Min(1, c)))
}
