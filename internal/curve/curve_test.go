package curve

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestLissajousPosition(t *testing.T) {
	f := NewLissajous(r3.Vec{X: 1, Y: 2, Z: 3}, [3]int{1, 2, 3}, r3.Vec{X: 90})

	p := f.Position(0)
	if math.Abs(p.X) > 1e-12 || math.Abs(p.Y-2) > 1e-12 || math.Abs(p.Z-3) > 1e-12 {
		t.Errorf("Position(0) = %v, want (0, 2, 3)", p)
	}

	p = f.Position(math.Pi / 2)
	if math.Abs(p.X+1) > 1e-12 || math.Abs(p.Y+2) > 1e-12 || math.Abs(p.Z) > 1e-12 {
		t.Errorf("Position(π/2) = %v, want (-1, -2, 0)", p)
	}
}

func TestLissajousSingleAxisAmplitude(t *testing.T) {
	f := NewLissajous(r3.Vec{Y: 5}, [3]int{3, 2, 7}, r3.Vec{X: 40, Y: 11.5})

	for i := 0; i < 100; i++ {
		p := f.Position(float64(i) * f.PeriodTime() / 100)
		if p.X != 0 || p.Z != 0 {
			t.Fatalf("sample %d left the y axis: %v", i, p)
		}
		if math.Abs(p.Y) > 5+1e-12 {
			t.Fatalf("sample %d exceeds amplitude: %v", i, p)
		}
	}
}

func TestTorusPosition(t *testing.T) {
	f := NewTorus(Torus{
		P: 2, Q: 3,
		MajorRadius: r2.Vec{X: 2, Y: 2},
		MinorRadius: r3.Vec{X: 1, Y: 1, Z: 1},
	})

	p := f.Position(0)
	if math.Abs(p.X-3) > 1e-12 || math.Abs(p.Y) > 1e-12 || math.Abs(p.Z) > 1e-12 {
		t.Errorf("Position(0) = %v, want (3, 0, 0)", p)
	}

	// every sample stays on the torus surface
	for i := 0; i < 50; i++ {
		p := f.Position(float64(i) * 0.13)
		rho := math.Hypot(p.X, p.Z)
		tube := math.Hypot(rho-2, p.Y)
		if math.Abs(tube-1) > 1e-9 {
			t.Fatalf("sample %d off the torus: tube radius %v", i, tube)
		}
	}
}

func TestLissajousToricPosition(t *testing.T) {
	f := NewLissajousToric(LissajousToric{
		P: 3, Q: 2, N: 5,
		MajorRadius: r2.Vec{X: 2, Y: 2},
		MinorRadius: r3.Vec{X: 1, Y: 1, Z: 1},
	})

	p := f.Position(0)
	if math.Abs(p.X-2) > 1e-12 || math.Abs(p.Y-1) > 1e-12 || math.Abs(p.Z) > 1e-12 {
		t.Errorf("Position(0) = %v, want (2, 1, 0)", p)
	}
}

func TestSetParam(t *testing.T) {
	f := NewTorus(Torus{P: 2, Q: 3})

	if err := f.SetParam("n", 5); err != nil {
		t.Fatalf("set n: %v", err)
	}
	if f.Torus.Q != 5 {
		t.Errorf("expected n to alias q, got q=%d", f.Torus.Q)
	}

	if err := f.SetParam("p", 3.6); err != nil {
		t.Fatalf("set p: %v", err)
	}
	if f.Torus.P != 4 {
		t.Errorf("expected p rounded to 4, got %d", f.Torus.P)
	}

	err := f.SetParam("amp_x", 1)
	if !errors.Is(err, ErrUnknownParam) {
		t.Errorf("expected ErrUnknownParam, got %v", err)
	}
}

func TestParamsRoundTrip(t *testing.T) {
	reg := NewRegistry()
	for _, name := range reg.Names() {
		f, _ := reg.Get(name)
		g := Family{Kind: f.Kind}
		for k, v := range f.Params() {
			if err := g.SetParam(k, v); err != nil {
				t.Fatalf("%s: set %s: %v", name, k, err)
			}
		}
		if g != f {
			t.Errorf("%s: params did not round trip: got %+v, want %+v", name, g, f)
		}
	}
}

func TestIntegerParam(t *testing.T) {
	reg := NewRegistry()
	for _, name := range reg.Names() {
		f, _ := reg.Get(name)
		for k, v := range f.Params() {
			g := f
			if err := g.SetParam(k, v+0.4); err != nil {
				t.Fatalf("%s: set %s: %v", name, k, err)
			}
			rounded := g.Params()[k] == v
			if rounded != IntegerParam(k) {
				t.Errorf("%s.%s: IntegerParam=%v but rounding=%v", name, k, IntegerParam(k), rounded)
			}
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		family  Family
		wantErr error
	}{
		{"lissajous", NewLissajous(r3.Vec{X: 1, Y: 1, Z: 1}, [3]int{3, 2, 7}, r3.Vec{X: 40}), nil},
		{"zero frequency", NewLissajous(r3.Vec{X: 1, Y: 1, Z: 1}, [3]int{}, r3.Vec{}), ErrDegenerateCurve},
		{"zero amplitude", NewLissajous(r3.Vec{}, [3]int{3, 2, 7}, r3.Vec{}), ErrDegenerateCurve},
		{"torus", NewTorus(Torus{P: 2, Q: 3, MajorRadius: r2.Vec{X: 2, Y: 2}, MinorRadius: r3.Vec{X: 1, Y: 1, Z: 1}}), nil},
		{"torus no windings", NewTorus(Torus{MajorRadius: r2.Vec{X: 2, Y: 2}, MinorRadius: r3.Vec{X: 1, Y: 1, Z: 1}}), ErrDegenerateCurve},
		{"unknown kind", Family{Kind: Kind(9)}, ErrUnknownFamily},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.family.Validate()
			if tt.wantErr == nil && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range []Kind{KindLissajous, KindTorus, KindLissajousToric} {
		got, err := ParseKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParseKind(%q) = %v, %v", k.String(), got, err)
		}
	}

	if _, err := ParseKind("trefoil"); !errors.Is(err, ErrUnknownFamily) {
		t.Errorf("expected ErrUnknownFamily, got %v", err)
	}
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry()

	names := reg.Names()
	if len(names) != 3 {
		t.Fatalf("expected 3 families, got %v", names)
	}

	for _, name := range names {
		f, err := reg.Get(name)
		if err != nil {
			t.Fatalf("get %s: %v", name, err)
		}
		if f.Kind.String() != name {
			t.Errorf("family %s has kind %s", name, f.Kind)
		}
		if err := f.Validate(); err != nil {
			t.Errorf("default %s invalid: %v", name, err)
		}
	}

	if _, err := reg.Get("missing"); !errors.Is(err, ErrUnknownFamily) {
		t.Errorf("expected ErrUnknownFamily, got %v", err)
	}
}
