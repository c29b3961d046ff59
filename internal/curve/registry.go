package curve

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Registry maps family names to constructors of their default parameter sets.
type Registry struct {
	families map[string]func() Family
}

func NewRegistry() *Registry {
	r := &Registry{families: make(map[string]func() Family)}

	r.families[KindLissajous.String()] = func() Family {
		return NewLissajous(r3.Vec{X: 1, Y: 1, Z: 1}, [3]int{3, 2, 7}, r3.Vec{X: 40, Y: 11.5, Z: 0})
	}
	r.families[KindTorus.String()] = func() Family {
		return NewTorus(Torus{
			P: 2, Q: 3,
			MajorRadius: r2.Vec{X: 2, Y: 2},
			MinorRadius: r3.Vec{X: 0.8, Y: 0.8, Z: 0.8},
		})
	}
	r.families[KindLissajousToric.String()] = func() Family {
		return NewLissajousToric(LissajousToric{
			P: 3, Q: 2, N: 5,
			MajorRadius: r2.Vec{X: 2, Y: 2},
			MinorRadius: r3.Vec{X: 1, Y: 1, Z: 1},
			Phase:       0.2,
		})
	}

	return r
}

// Register adds or replaces a named constructor.
func (r *Registry) Register(name string, fn func() Family) { r.families[name] = fn }

func (r *Registry) Get(name string) (Family, error) {
	fn, ok := r.families[name]
	if !ok {
		return Family{}, fmt.Errorf("%q: %w", name, ErrUnknownFamily)
	}
	return fn(), nil
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.families))
	for name := range r.families {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
