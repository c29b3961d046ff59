package metrics

import "github.com/san-kum/knotsim/internal/knot"

// Metric accumulates a scalar over the nodes of a skeleton, observed in order.
type Metric interface {
	Name() string
	Observe(n knot.Node, i int)
	Value() float64
	Reset()
}

// Default returns one fresh instance of every frame metric.
func Default() []Metric {
	return []Metric{
		NewNormalDeviation(),
		NewOrthogonality(),
		NewEndSeam(),
		NewNormalTurn(),
		NewMaxTangentTurn(),
		NewArcLength(),
	}
}

// Evaluate resets ms, feeds every node of sk through them and returns the
// values by metric name.
func Evaluate(sk *knot.Skeleton, ms ...Metric) map[string]float64 {
	if len(ms) == 0 {
		ms = Default()
	}
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		m.Reset()
		for i, n := range sk.Nodes {
			m.Observe(n, i)
		}
		out[m.Name()] = m.Value()
	}
	return out
}
