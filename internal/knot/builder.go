package knot

import (
	"log/slog"
	"math"

	"github.com/san-kum/knotsim/internal/curve"
	"github.com/san-kum/knotsim/internal/frame"
	"gonum.org/v1/gonum/spatial/r3"
)

const deg2rad = math.Pi / 180

// Options are the shaping parameters shared by every curve family.
type Options struct {
	Nodes       int
	Curvature   float64
	TwistAngle  float64 // degrees
	FixLoopEnds bool
	Loop        bool
}

func DefaultOptions() Options {
	return Options{
		Nodes:       60,
		Curvature:   0.3,
		FixLoopEnds: true,
		Loop:        true,
	}
}

// Builder owns a skeleton buffer and rebuilds it from a curve family.
type Builder struct {
	family  curve.Family
	opts    Options
	skel    Skeleton
	state   State
	pending RebuildKind
	seam    float64
	fixed   float64
	logger  *slog.Logger
}

type BuilderOption func(*Builder)

// WithLogger sets the logger used for rebuild diagnostics.
func WithLogger(l *slog.Logger) BuilderOption {
	return func(b *Builder) { b.logger = l }
}

// NewBuilder returns an empty builder with a pending full construction.
func NewBuilder(f curve.Family, opts Options, bopts ...BuilderOption) *Builder {
	b := &Builder{
		family:  f,
		opts:    opts,
		pending: RebuildFull,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, o := range bopts {
		o(b)
	}
	return b
}

func (b *Builder) Family() curve.Family { return b.family }
func (b *Builder) Options() Options     { return b.opts }
func (b *Builder) State() State         { return b.state }
func (b *Builder) Pending() RebuildKind { return b.pending }
func (b *Builder) Skeleton() *Skeleton  { return &b.skel }

func (b *Builder) request(k RebuildKind) RebuildKind {
	b.pending = b.pending.merge(k)
	return k
}

// Seam returns the signed angle between the first and closing normals of
// the last loop build before correction, and the correction applied.
func (b *Builder) Seam() (raw, corrected float64) { return b.seam, b.fixed }

func (b *Builder) SetCurveFamily(f curve.Family) RebuildKind {
	if f == b.family {
		return RebuildNone
	}
	b.family = f
	return b.request(RebuildFull)
}

func (b *Builder) SetSampleCount(n int) RebuildKind {
	if n == b.opts.Nodes {
		return RebuildNone
	}
	b.opts.Nodes = n
	return b.request(RebuildFull)
}

// SetLoop switches between a closed and an open skeleton. The node count
// changes, so a full construction is required.
func (b *Builder) SetLoop(loop bool) RebuildKind {
	if loop == b.opts.Loop {
		return RebuildNone
	}
	b.opts.Loop = loop
	return b.request(RebuildFull)
}

func (b *Builder) SetCurvature(c float64) RebuildKind {
	if c == b.opts.Curvature {
		return RebuildNone
	}
	b.opts.Curvature = c
	return b.request(RebuildReframe)
}

// SetTwistAngle sets the rotation in degrees applied to the seed normal.
func (b *Builder) SetTwistAngle(deg float64) RebuildKind {
	if deg == b.opts.TwistAngle {
		return RebuildNone
	}
	b.opts.TwistAngle = deg
	return b.request(RebuildReframe)
}

func (b *Builder) SetLoopClosureEnabled(fix bool) RebuildKind {
	if fix == b.opts.FixLoopEnds {
		return RebuildNone
	}
	b.opts.FixLoopEnds = fix
	return b.request(RebuildReframe)
}

// Apply consumes the pending command. An empty builder is always
// constructed. It returns the skeleton and the rebuild that ran.
func (b *Builder) Apply() (*Skeleton, RebuildKind) {
	kind := b.pending
	if b.state == StateEmpty {
		kind = RebuildFull
	}
	switch kind {
	case RebuildFull:
		b.Construct()
	case RebuildReframe:
		b.Update()
	}
	return &b.skel, kind
}

// Construct resamples the curve into a fresh buffer of Nodes samples, plus
// a closing node when looping.
func (b *Builder) Construct() *Skeleton {
	count := nodeCount(b.opts)
	if cap(b.skel.Nodes) >= count {
		b.skel.Nodes = b.skel.Nodes[:count]
		clear(b.skel.Nodes)
	} else {
		b.skel.Nodes = make([]Node, count)
	}
	b.skel.IsLoop = b.opts.Loop

	b.frame()
	b.state = StateConstructed
	b.pending = RebuildNone
	b.logger.Debug("knot constructed", "family", b.family.Kind, "nodes", count, "loop", b.skel.IsLoop, "seam", b.seam)
	return &b.skel
}

// Update recomputes every node in place, keeping the current buffer length
// and loop shape. A pending full rebuild stays pending.
func (b *Builder) Update() *Skeleton {
	if b.state == StateEmpty {
		return b.Construct()
	}

	b.frame()
	b.state = StateUpdated
	if b.pending == RebuildReframe {
		b.pending = RebuildNone
	}
	b.logger.Debug("knot updated", "family", b.family.Kind, "nodes", len(b.skel.Nodes), "seam", b.seam)
	return &b.skel
}

// frame samples the curve at uniform steps and propagates the frame along
// the buffer. Loops span one period over count-1 intervals and end on a
// copy of node 0; open curves use count intervals.
func (b *Builder) frame() {
	nodes := b.skel.Nodes
	count := len(nodes)
	b.seam, b.fixed = 0, 0
	samples, dt := schedule(b.family.PeriodTime(), count, b.skel.IsLoop)
	if samples < 1 {
		b.skel.Nodes = nodes[:0]
		return
	}

	prev := b.family.Position(-dt)
	curr := b.family.Position(0)
	var prevPos, prevTan, prevNormal r3.Vec
	for i := 0; i < samples; i++ {
		next := b.family.Position(float64(i+1) * dt)
		handle, tan := frame.Smooth(prev, curr, next, b.opts.Curvature)

		var normal r3.Vec
		if i == 0 {
			normal = frame.Rotate(frame.FirstNormal(tan), tan, b.opts.TwistAngle*deg2rad)
		} else {
			normal = frame.Advance(prevPos, curr, prevTan, tan, prevNormal)
		}
		nodes[i] = Node{Position: curr, Handle: handle, Tangent: tan, Normal: normal}

		prevPos, prevTan, prevNormal = curr, tan, normal
		prev, curr = curr, next
	}

	if !b.skel.IsLoop {
		return
	}

	closing := nodes[0]
	closing.Normal = frame.Advance(prevPos, closing.Position, prevTan, closing.Tangent, prevNormal)
	nodes[count-1] = closing
	b.seam = frame.SeamAngle(nodes[0].Normal, closing.Normal, closing.Tangent)

	if b.opts.FixLoopEnds {
		b.fixed = closeLoop(nodes)
	}
}

// nodeCount is the buffer length for opts: Nodes samples plus the closing
// node of a loop. Negative sample counts give an empty buffer.
func nodeCount(opts Options) int {
	count := max(opts.Nodes, 0)
	if opts.Loop {
		count++
	}
	return count
}

// schedule returns how many of count nodes are sampled and the time step
// between them.
func schedule(period float64, count int, loop bool) (samples int, dt float64) {
	samples, intervals := count, count
	if loop {
		samples, intervals = count-1, count-1
	}
	if samples < 1 {
		return 0, 0
	}
	return samples, period / float64(intervals)
}

func closeLoop(nodes []Node) float64 {
	normals := make([]r3.Vec, len(nodes))
	tangents := make([]r3.Vec, len(nodes))
	for i, n := range nodes {
		normals[i], tangents[i] = n.Normal, n.Tangent
	}
	theta := frame.CloseLoop(normals, tangents)
	for i := range nodes {
		nodes[i].Normal = normals[i]
	}
	return theta
}
