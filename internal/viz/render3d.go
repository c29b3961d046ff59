package viz

import (
	"math"
	"sort"

	"github.com/san-kum/knotsim/internal/knot"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Camera orbits the origin and projects points onto a canvas.
type Camera struct {
	Distance         float64
	Near             float64
	RotX, RotY, RotZ float64
	Zoom             float64
}

func NewCamera() *Camera {
	return &Camera{Distance: 6, Near: 0.1, RotX: -0.4, Zoom: 1}
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) RotateZ(a float64) { c.RotZ += a }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

// RotatePoint applies the camera's X, then Y, then Z rotation to p.
func (c *Camera) RotatePoint(p r3.Vec) r3.Vec {
	p = r3.Rotate(p, c.RotX, r3.Vec{X: 1})
	p = r3.Rotate(p, c.RotY, r3.Vec{Y: 1})
	return r3.Rotate(p, c.RotZ, r3.Vec{Z: 1})
}

// Project maps p to dot coordinates on a sw x sh screen, with the depth of
// the rotated point. ok is false for points at or behind the near plane.
func (c *Camera) Project(p r3.Vec, sw, sh int) (pos r2.Vec, depth float64, ok bool) {
	rot := r3.Scale(c.Zoom, c.RotatePoint(p))
	if rot.Z >= c.Distance-c.Near {
		return r2.Vec{}, 0, false
	}
	persp := c.Distance / (c.Distance - rot.Z)
	unit := float64(min(sw, sh)) / 3
	pos = r2.Vec{
		X: rot.X*persp*unit + float64(sw)/2,
		Y: -rot.Y*persp*unit + float64(sh)/2,
	}
	return pos, rot.Z, true
}

type Edge struct {
	Start, End r3.Vec
}

type Wireframe struct{ Edges []Edge }

func NewWireframe() *Wireframe           { return &Wireframe{Edges: make([]Edge, 0)} }
func (w *Wireframe) AddEdge(s, e r3.Vec) { w.Edges = append(w.Edges, Edge{s, e}) }
func (w *Wireframe) AddPoint(p r3.Vec)   { w.Edges = append(w.Edges, Edge{p, p}) }
func (w *Wireframe) Clear()              { w.Edges = w.Edges[:0] }

type projectedEdge struct {
	a, b  r2.Vec
	depth float64
}

// Render3D draws the wireframe back to front. Edges crossing the near plane
// are dropped; the canvas clips the rest.
func Render3D(c *Canvas, w *Wireframe, cam *Camera) {
	if c == nil || w == nil || cam == nil {
		return
	}
	sw, sh := c.Dots()
	proj := make([]projectedEdge, 0, len(w.Edges))
	for _, e := range w.Edges {
		a, d1, ok1 := cam.Project(e.Start, sw, sh)
		b, d2, ok2 := cam.Project(e.End, sw, sh)
		if ok1 && ok2 {
			proj = append(proj, projectedEdge{a, b, (d1 + d2) / 2})
		}
	}
	sort.Slice(proj, func(i, j int) bool { return proj[i].depth < proj[j].depth })
	for _, e := range proj {
		c.DrawLine(e.a, e.b)
	}
}

// Fit returns the center of the skeleton's bounding box and the scale that
// maps its largest half-extent to 1.
func Fit(sk *knot.Skeleton) (center r3.Vec, scale float64) {
	if len(sk.Nodes) == 0 {
		return r3.Vec{}, 1
	}
	lo, hi := sk.Nodes[0].Position, sk.Nodes[0].Position
	for _, n := range sk.Nodes[1:] {
		p := n.Position
		lo = r3.Vec{X: math.Min(lo.X, p.X), Y: math.Min(lo.Y, p.Y), Z: math.Min(lo.Z, p.Z)}
		hi = r3.Vec{X: math.Max(hi.X, p.X), Y: math.Max(hi.Y, p.Y), Z: math.Max(hi.Z, p.Z)}
	}
	center = r3.Scale(0.5, r3.Add(lo, hi))
	half := r3.Scale(0.5, r3.Sub(hi, lo))
	extent := math.Max(half.X, math.Max(half.Y, half.Z))
	if extent == 0 || math.IsNaN(extent) {
		return center, 1
	}
	return center, 1 / extent
}

// SkeletonWireframes builds the centerline and the normal ticks of sk, fitted
// into the unit cube. Ticks have length normalLen in fitted units.
func SkeletonWireframes(sk *knot.Skeleton, normalLen float64) (curve, normals *Wireframe) {
	curve, normals = NewWireframe(), NewWireframe()
	center, scale := Fit(sk)
	fit := func(p r3.Vec) r3.Vec { return r3.Scale(scale, r3.Sub(p, center)) }

	for i, n := range sk.Nodes {
		p := fit(n.Position)
		if i > 0 {
			curve.AddEdge(fit(sk.Nodes[i-1].Position), p)
		} else {
			curve.AddPoint(p)
		}
		if normalLen > 0 {
			normals.AddEdge(p, r3.Add(p, r3.Scale(normalLen, n.Normal)))
		}
	}
	return curve, normals
}

func CreateAxesWireframe(l float64) *Wireframe {
	w := NewWireframe()
	w.AddEdge(r3.Vec{}, r3.Vec{X: l})
	w.AddEdge(r3.Vec{}, r3.Vec{Y: l})
	w.AddEdge(r3.Vec{}, r3.Vec{Z: l})
	return w
}
