package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/knotsim/internal/knot"
	"github.com/san-kum/knotsim/internal/viz"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

type SVGOptions struct {
	Width, Height int
	Stroke        string
	NormalStroke  string
	Background    string
	// NormalLength is the tick length relative to the fitted knot size;
	// zero hides the normals.
	NormalLength float64
}

func DefaultSVGOptions() SVGOptions {
	return SVGOptions{
		Width:        800,
		Height:       800,
		Stroke:       "#00ffff",
		NormalStroke: "#ff00ff",
		Background:   "#0a0a0a",
		NormalLength: 0.12,
	}
}

// SkeletonToSVG projects the skeleton through the camera's rotation
// orthographically and draws the centerline with its normal ticks.
func SkeletonToSVG(sk *knot.Skeleton, cam *viz.Camera, opts SVGOptions) string {
	if len(sk.Nodes) < 2 {
		return ""
	}

	center, scale := viz.Fit(sk)
	project := func(p r3.Vec) r2.Vec {
		q := cam.RotatePoint(r3.Scale(scale, r3.Sub(p, center)))
		return r2.Vec{X: q.X, Y: q.Y}
	}

	line := make([]r2.Vec, len(sk.Nodes))
	ticks := make([]r2.Vec, 0, len(sk.Nodes))
	for i, n := range sk.Nodes {
		line[i] = project(n.Position)
		if opts.NormalLength > 0 {
			tip := r3.Add(n.Position, r3.Scale(opts.NormalLength/scale, n.Normal))
			ticks = append(ticks, project(tip))
		}
	}

	lo, hi := bounds(line)
	lo2, hi2 := bounds(ticks)
	if len(ticks) > 0 {
		lo = r2.Vec{X: math.Min(lo.X, lo2.X), Y: math.Min(lo.Y, lo2.Y)}
		hi = r2.Vec{X: math.Max(hi.X, hi2.X), Y: math.Max(hi.Y, hi2.Y)}
	}
	rangeX, rangeY := hi.X-lo.X, hi.Y-lo.Y
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	span := math.Max(rangeX, rangeY) * 1.2
	mid := r2.Scale(0.5, r2.Add(lo, hi))
	w, h := float64(opts.Width), float64(opts.Height)
	size := math.Min(w, h)
	screen := func(p r2.Vec) (float64, float64) {
		return w/2 + (p.X-mid.X)/span*size, h/2 - (p.Y-mid.Y)/span*size
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, opts.Width, opts.Height, opts.Width, opts.Height, opts.Background)

	if len(ticks) > 0 {
		fmt.Fprintf(&sb, `<g stroke="%s" stroke-width="1">`+"\n", opts.NormalStroke)
		for i, tip := range ticks {
			x1, y1 := screen(line[i])
			x2, y2 := screen(tip)
			fmt.Fprintf(&sb, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>`+"\n", x1, y1, x2, y2)
		}
		sb.WriteString("</g>\n")
	}

	fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="2" d="`, opts.Stroke)
	for i, p := range line {
		x, y := screen(p)
		if i == 0 {
			fmt.Fprintf(&sb, "M%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}
	if sk.IsLoop {
		sb.WriteString(" Z")
	}
	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

func bounds(pts []r2.Vec) (lo, hi r2.Vec) {
	if len(pts) == 0 {
		return
	}
	lo, hi = pts[0], pts[0]
	for _, p := range pts[1:] {
		lo = r2.Vec{X: math.Min(lo.X, p.X), Y: math.Min(lo.Y, p.Y)}
		hi = r2.Vec{X: math.Max(hi.X, p.X), Y: math.Max(hi.Y, p.Y)}
	}
	return lo, hi
}

// CanvasToSVG converts a braille canvas into one circle per lit dot.
func CanvasToSVG(canvas *viz.Canvas, scale float64, fg, bg string) string {
	if canvas == nil {
		return ""
	}

	dotsW, dotsH := canvas.Dots()
	width, height := float64(dotsW)*scale, float64(dotsH)*scale

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
<g fill="%s">
`, width, height, width, height, bg, fg)

	r := scale * 0.4
	for y := 0; y < dotsH; y++ {
		for x := 0; x < dotsW; x++ {
			if canvas.IsSet(x, y) {
				fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f"/>`+"\n", (float64(x)+0.5)*scale, (float64(y)+0.5)*scale, r)
			}
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}
