package knot

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/knotsim/internal/curve"
	"github.com/san-kum/knotsim/internal/frame"
	"gonum.org/v1/gonum/spatial/r3"
)

func trefoilLissajous() curve.Family {
	return curve.NewLissajous(r3.Vec{X: 1, Y: 1, Z: 1}, [3]int{3, 2, 7}, r3.Vec{X: 40, Y: 11.5})
}

func families(t *testing.T) map[string]curve.Family {
	t.Helper()
	reg := curve.NewRegistry()
	out := make(map[string]curve.Family)
	for _, name := range reg.Names() {
		f, err := reg.Get(name)
		if err != nil {
			t.Fatalf("get %s: %v", name, err)
		}
		out[name] = f
	}
	return out
}

func TestConstructFrameInvariants(t *testing.T) {
	for name, f := range families(t) {
		for _, nodes := range []int{40, 60, 100, 150} {
			for _, twist := range []float64{0, 45, 270} {
				opts := DefaultOptions()
				opts.Nodes = nodes
				opts.TwistAngle = twist

				sk := NewBuilder(f, opts).Construct()
				if err := sk.Check(UnitTolerance, OrthoTolerance); err != nil {
					t.Errorf("%s nodes=%d twist=%v: %v", name, nodes, twist, err)
				}
			}
		}
	}
}

func TestConstructNodeCount(t *testing.T) {
	opts := DefaultOptions()
	opts.Nodes = 60

	sk := NewBuilder(trefoilLissajous(), opts).Construct()
	if sk.Len() != 61 || !sk.IsLoop {
		t.Errorf("loop: expected 61 nodes, got %d (loop=%v)", sk.Len(), sk.IsLoop)
	}

	opts.Loop = false
	sk = NewBuilder(trefoilLissajous(), opts).Construct()
	if sk.Len() != 60 || sk.IsLoop {
		t.Errorf("open: expected 60 nodes, got %d (loop=%v)", sk.Len(), sk.IsLoop)
	}
}

func TestClosingNodeDuplicatesFirst(t *testing.T) {
	sk := NewBuilder(trefoilLissajous(), DefaultOptions()).Construct()

	first, last := sk.Nodes[0], sk.Nodes[sk.Len()-1]
	if first.Position != last.Position || first.Handle != last.Handle || first.Tangent != last.Tangent {
		t.Errorf("closing node does not duplicate node 0: %+v vs %+v", first, last)
	}
}

func TestLoopClosureRemovesSeam(t *testing.T) {
	opts := DefaultOptions()
	opts.Nodes = 80

	b := NewBuilder(trefoilLissajous(), opts)
	sk := b.Construct()

	raw, fixed := b.Seam()
	if math.Abs(raw) < 0.1 {
		t.Fatalf("expected a visible raw seam for this knot, got %v", raw)
	}
	if fixed != raw {
		t.Errorf("expected correction %v, got %v", raw, fixed)
	}

	first, last := sk.Nodes[0], sk.Nodes[sk.Len()-1]
	angle := math.Abs(frame.SeamAngle(first.Normal, last.Normal, last.Tangent))
	if angle > 1e-3 {
		t.Errorf("residual seam %v rad", angle)
	}
	if err := sk.Check(UnitTolerance, OrthoTolerance); err != nil {
		t.Errorf("correction broke frame: %v", err)
	}
}

func TestLoopClosureDisabledKeepsSeam(t *testing.T) {
	opts := DefaultOptions()
	opts.FixLoopEnds = false

	b := NewBuilder(trefoilLissajous(), opts)
	sk := b.Construct()

	raw, fixed := b.Seam()
	if fixed != 0 {
		t.Errorf("expected no correction, got %v", fixed)
	}
	first, last := sk.Nodes[0], sk.Nodes[sk.Len()-1]
	got := frame.SeamAngle(first.Normal, last.Normal, last.Tangent)
	if math.Abs(got-raw) > 1e-9 || math.Abs(got) < 0.1 {
		t.Errorf("expected uncorrected seam %v, got %v", raw, got)
	}
}

func TestUpdateIdempotent(t *testing.T) {
	b := NewBuilder(trefoilLissajous(), DefaultOptions())
	b.Construct()

	first := b.Update().Clone()
	second := b.Update()

	for i := range first.Nodes {
		if first.Nodes[i] != second.Nodes[i] {
			t.Fatalf("node %d changed between updates: %+v vs %+v", i, first.Nodes[i], second.Nodes[i])
		}
	}
}

func TestUpdateMatchesConstruct(t *testing.T) {
	for _, loop := range []bool{false, true} {
		opts := DefaultOptions()
		opts.Loop = loop
		opts.Nodes = 73

		b := NewBuilder(trefoilLissajous(), opts)
		built := b.Construct().Clone()
		updated := b.Update()

		if updated.Len() != built.Len() {
			t.Fatalf("loop=%v: update changed node count %d -> %d", loop, built.Len(), updated.Len())
		}
		for i := range built.Nodes {
			if built.Nodes[i] != updated.Nodes[i] {
				t.Fatalf("loop=%v: node %d drifted: %+v vs %+v", loop, i, built.Nodes[i], updated.Nodes[i])
			}
		}
	}
}

func TestUpdateKeepsNodeCount(t *testing.T) {
	b := NewBuilder(trefoilLissajous(), DefaultOptions())
	b.Construct()
	n := b.Skeleton().Len()

	b.SetCurvature(0.8)
	b.SetTwistAngle(120)
	b.Update()

	if b.Skeleton().Len() != n {
		t.Errorf("update resized buffer: %d -> %d", n, b.Skeleton().Len())
	}
}

func TestCurvatureMovesHandlesOnly(t *testing.T) {
	b := NewBuilder(trefoilLissajous(), DefaultOptions())
	before := b.Construct().Clone()

	b.SetCurvature(0.9)
	after := b.Update()

	for i := range before.Nodes {
		if before.Nodes[i].Position != after.Nodes[i].Position {
			t.Fatalf("node %d position moved with curvature", i)
		}
	}
	if before.Nodes[5].Handle == after.Nodes[5].Handle {
		t.Error("handle did not follow curvature")
	}
}

func TestZeroCurvatureHandleIsPosition(t *testing.T) {
	opts := DefaultOptions()
	opts.Curvature = 0

	sk := NewBuilder(trefoilLissajous(), opts).Construct()
	for i, n := range sk.Nodes {
		if n.Handle != n.Position {
			t.Fatalf("node %d: handle %v != position %v", i, n.Handle, n.Position)
		}
	}
	if err := sk.Check(UnitTolerance, OrthoTolerance); err != nil {
		t.Errorf("frame invalid with zero curvature: %v", err)
	}
}

func TestTwistRotatesWholeFrame(t *testing.T) {
	opts := DefaultOptions()
	opts.Loop = false

	plain := NewBuilder(trefoilLissajous(), opts).Construct()
	opts.TwistAngle = 90
	twisted := NewBuilder(trefoilLissajous(), opts).Construct()

	for i := range plain.Nodes {
		a, b := plain.Nodes[i], twisted.Nodes[i]
		got := frame.SeamAngle(a.Normal, b.Normal, a.Tangent)
		if math.Abs(got-math.Pi/2) > 1e-6 {
			t.Fatalf("node %d: twist angle %v, want π/2", i, got)
		}
	}
}

func TestSingleAxisAmplitudeStaysOnAxis(t *testing.T) {
	f := curve.NewLissajous(r3.Vec{Y: 5}, [3]int{3, 2, 7}, r3.Vec{X: 40, Y: 11.5})
	opts := DefaultOptions()
	opts.Loop = false

	sk := NewBuilder(f, opts).Construct()
	for i, p := range sk.Positions() {
		if p.X != 0 || p.Z != 0 {
			t.Fatalf("node %d left the y axis: %v", i, p)
		}
	}
}

func TestSetterRebuildKinds(t *testing.T) {
	b := NewBuilder(trefoilLissajous(), DefaultOptions())

	tests := []struct {
		name string
		set  func() RebuildKind
		want RebuildKind
	}{
		{"curvature", func() RebuildKind { return b.SetCurvature(0.5) }, RebuildReframe},
		{"same curvature", func() RebuildKind { return b.SetCurvature(0.5) }, RebuildNone},
		{"twist", func() RebuildKind { return b.SetTwistAngle(30) }, RebuildReframe},
		{"fix ends", func() RebuildKind { return b.SetLoopClosureEnabled(false) }, RebuildReframe},
		{"nodes", func() RebuildKind { return b.SetSampleCount(90) }, RebuildFull},
		{"same nodes", func() RebuildKind { return b.SetSampleCount(90) }, RebuildNone},
		{"loop", func() RebuildKind { return b.SetLoop(false) }, RebuildFull},
		{"family", func() RebuildKind { return b.SetCurveFamily(curve.NewTorus(curve.Torus{P: 2, Q: 3})) }, RebuildFull},
	}

	for _, tt := range tests {
		if got := tt.set(); got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestApplyConsumesPending(t *testing.T) {
	b := NewBuilder(trefoilLissajous(), DefaultOptions())

	if b.State() != StateEmpty || b.Pending() != RebuildFull {
		t.Fatalf("new builder: state=%v pending=%v", b.State(), b.Pending())
	}

	_, kind := b.Apply()
	if kind != RebuildFull || b.State() != StateConstructed || b.Pending() != RebuildNone {
		t.Fatalf("first apply: kind=%v state=%v pending=%v", kind, b.State(), b.Pending())
	}

	b.SetCurvature(0.6)
	b.SetTwistAngle(15)
	_, kind = b.Apply()
	if kind != RebuildReframe || b.State() != StateUpdated {
		t.Errorf("reframe apply: kind=%v state=%v", kind, b.State())
	}

	b.SetCurvature(0.1)
	b.SetSampleCount(45)
	sk, kind := b.Apply()
	if kind != RebuildFull || sk.Len() != 46 {
		t.Errorf("full apply: kind=%v nodes=%d", kind, sk.Len())
	}

	_, kind = b.Apply()
	if kind != RebuildNone {
		t.Errorf("idle apply: kind=%v", kind)
	}
}

func TestUpdateLeavesFullPending(t *testing.T) {
	b := NewBuilder(trefoilLissajous(), DefaultOptions())
	b.Construct()

	b.SetSampleCount(100)
	b.Update()
	if b.Pending() != RebuildFull {
		t.Errorf("update dropped pending full rebuild: %v", b.Pending())
	}
	if b.Skeleton().Len() != 61 {
		t.Errorf("update resized buffer to %d", b.Skeleton().Len())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Options)
		wantErr error
	}{
		{"defaults", func(*Options) {}, nil},
		{"few nodes", func(o *Options) { o.Nodes = 2 }, ErrTooFewNodes},
		{"negative curvature", func(o *Options) { o.Curvature = -0.1 }, ErrParameterBounds},
		{"large curvature", func(o *Options) { o.Curvature = 1.5 }, ErrParameterBounds},
		{"nan twist", func(o *Options) { o.TwistAngle = math.NaN() }, ErrParameterBounds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.mutate(&opts)
			err := Validate(trefoilLissajous(), opts)
			if tt.wantErr == nil && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	degenerate := curve.NewLissajous(r3.Vec{X: 1, Y: 1, Z: 1}, [3]int{}, r3.Vec{})
	if err := Validate(degenerate, DefaultOptions()); !errors.Is(err, curve.ErrDegenerateCurve) {
		t.Errorf("expected ErrDegenerateCurve, got %v", err)
	}
	// a single moving axis retraces a line, so turning-point samples have
	// both neighbours on one side
	line := curve.NewLissajous(r3.Vec{Y: 5}, [3]int{3, 2, 7}, r3.Vec{X: 40, Y: 11.5})
	for _, loop := range []bool{true, false} {
		opts := DefaultOptions()
		opts.Loop = loop
		if err := Validate(line, opts); !errors.Is(err, ErrDegenerateSample) {
			t.Errorf("loop=%v: expected ErrDegenerateSample, got %v", loop, err)
		}
	}
}

func TestValidatedFamiliesBuildFiniteFrames(t *testing.T) {
	for name, f := range families(t) {
		for _, nodes := range []int{RecommendedMinNodes, 97, RecommendedMaxNodes} {
			opts := DefaultOptions()
			opts.Nodes = nodes
			if err := Validate(f, opts); err != nil {
				t.Fatalf("%s/%d: %v", name, nodes, err)
			}
			if err := NewBuilder(f, opts).Construct().Check(UnitTolerance, OrthoTolerance); err != nil {
				t.Errorf("%s/%d: validated build failed check: %v", name, nodes, err)
			}
		}
	}
}

func TestConstructNegativeNodes(t *testing.T) {
	for _, loop := range []bool{true, false} {
		opts := DefaultOptions()
		opts.Nodes = -3
		opts.Loop = loop
		b := NewBuilder(trefoilLissajous(), opts)
		if sk := b.Construct(); sk.Len() != 0 {
			t.Errorf("loop=%v: %d nodes, want empty", loop, sk.Len())
		}
		if err := Validate(trefoilLissajous(), opts); !errors.Is(err, ErrTooFewNodes) {
			t.Errorf("loop=%v: expected ErrTooFewNodes, got %v", loop, err)
		}
	}
}

func TestClampNodes(t *testing.T) {
	tests := []struct{ in, want int }{
		{10, 40}, {40, 40}, {99, 99}, {150, 150}, {500, 150},
	}
	for _, tt := range tests {
		if got := ClampNodes(tt.in); got != tt.want {
			t.Errorf("ClampNodes(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestCheckReportsInvariantError(t *testing.T) {
	sk := &Skeleton{Nodes: []Node{
		{Tangent: r3.Vec{X: 1}, Normal: r3.Vec{Y: 1}},
		{Tangent: r3.Vec{X: 1}, Normal: r3.Vec{X: 0.6, Y: 0.8}},
	}}

	err := sk.Check(UnitTolerance, OrthoTolerance)
	var ie *InvariantError
	if !errors.As(err, &ie) {
		t.Fatalf("expected InvariantError, got %v", err)
	}
	if ie.Index != 1 || !errors.Is(err, ErrInvariant) {
		t.Errorf("unexpected error: %v", ie)
	}
}

func TestNodeBinormal(t *testing.T) {
	n := Node{Tangent: r3.Vec{X: 1}, Normal: r3.Vec{Y: 1}}
	if got := n.Binormal(); got != (r3.Vec{Z: 1}) {
		t.Errorf("Binormal = %v, want (0,0,1)", got)
	}
}
