package viz

import (
	"fmt"
	"math"
	"sort"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/knotsim/internal/knot"
	"gonum.org/v1/gonum/spatial/r3"
)

// Profile is a per-segment series derived from a skeleton.
type Profile struct {
	Name    string
	Caption string
	Values  []float64
}

var profileFuncs = map[string]struct {
	caption string
	fn      func(a, b knot.Node) float64
}{
	"normal_turn": {"normal turn per segment (deg)", func(a, b knot.Node) float64 {
		return angleDeg(a.Normal, b.Normal)
	}},
	"tangent_turn": {"tangent turn per segment (deg)", func(a, b knot.Node) float64 {
		return angleDeg(a.Tangent, b.Tangent)
	}},
	"segment": {"segment length", func(a, b knot.Node) float64 {
		return r3.Norm(r3.Sub(b.Position, a.Position))
	}},
	"handle": {"handle length", func(_, b knot.Node) float64 {
		return r3.Norm(r3.Sub(b.Handle, b.Position))
	}},
}

func ProfileNames() []string {
	names := make([]string, 0, len(profileFuncs))
	for name := range profileFuncs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewProfile computes the named series over consecutive node pairs.
func NewProfile(name string, sk *knot.Skeleton) (Profile, error) {
	pf, ok := profileFuncs[name]
	if !ok {
		return Profile{}, fmt.Errorf("unknown profile %q (available: %v)", name, ProfileNames())
	}
	p := Profile{Name: name, Caption: pf.caption}
	for i := 1; i < len(sk.Nodes); i++ {
		p.Values = append(p.Values, pf.fn(sk.Nodes[i-1], sk.Nodes[i]))
	}
	return p, nil
}

// Plot renders the profile as an ASCII chart. Profiles with fewer than two
// values render as an empty string.
func (p Profile) Plot(width, height int) string {
	if len(p.Values) < 2 {
		return ""
	}
	return asciigraph.Plot(p.Values,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(p.Caption),
	)
}

func angleDeg(a, b r3.Vec) float64 {
	c := r3.Dot(a, b) / (r3.Norm(a) * r3.Norm(b))
	return math.Acos(math.Max(-1, math.Min(1, c))) * 180 / math.Pi
}
