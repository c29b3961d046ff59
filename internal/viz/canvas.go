package viz

import (
	"math"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"
)

// brailleBlank is U+2800. A cell renders as brailleBlank plus its dot mask.
const brailleBlank = 0x2800

// dotBit[y][x] is the mask bit of dot (x, y) inside a 2x4 cell, in Unicode
// braille order: dots 1-3 and 7 down the left column, 4-6 and 8 down the
// right.
var dotBit = [4][2]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Canvas is a Width x Height grid of braille cells. Dots are addressed from
// the top-left corner, x right and y down, in a (2*Width) x (4*Height) grid.
type Canvas struct {
	Width, Height int
	cells         []uint8
}

func NewCanvas(w, h int) *Canvas {
	return &Canvas{Width: w, Height: h, cells: make([]uint8, w*h)}
}

// Dots returns the canvas size in dots.
func (c *Canvas) Dots() (w, h int) { return 2 * c.Width, 4 * c.Height }

func (c *Canvas) locate(x, y int) (int, uint8) {
	w, h := c.Dots()
	if x < 0 || y < 0 || x >= w || y >= h {
		return -1, 0
	}
	return (y/4)*c.Width + x/2, dotBit[y%4][x%2]
}

// Set lights dot (x, y). Dots off the canvas are ignored.
func (c *Canvas) Set(x, y int) {
	if i, bit := c.locate(x, y); i >= 0 {
		c.cells[i] |= bit
	}
}

func (c *Canvas) IsSet(x, y int) bool {
	i, bit := c.locate(x, y)
	return i >= 0 && c.cells[i]&bit != 0
}

// Cell returns the braille rune of the cell at (col, row).
func (c *Canvas) Cell(col, row int) rune {
	return brailleBlank + rune(c.cells[row*c.Width+col])
}

func (c *Canvas) Empty(col, row int) bool { return c.cells[row*c.Width+col] == 0 }

func (c *Canvas) Clear() { clear(c.cells) }

// DrawLine lights one dot per step along the longer axis of the segment a-b,
// after clipping it to the canvas. Endpoints are in dot coordinates.
func (c *Canvas) DrawLine(a, b r2.Vec) {
	w, h := c.Dots()
	a, b, ok := clipSegment(a, b, float64(w-1), float64(h-1))
	if !ok {
		return
	}

	d := r2.Sub(b, a)
	steps := int(math.Ceil(math.Max(math.Abs(d.X), math.Abs(d.Y))))
	if steps == 0 {
		c.Set(int(math.Round(a.X)), int(math.Round(a.Y)))
		return
	}
	step := r2.Scale(1/float64(steps), d)
	for i := 0; i <= steps; i++ {
		p := r2.Add(a, r2.Scale(float64(i), step))
		c.Set(int(math.Round(p.X)), int(math.Round(p.Y)))
	}
}

// clipSegment trims a-b to the box [0,maxX] x [0,maxY] (Liang-Barsky).
// It reports false when nothing of the segment is inside.
func clipSegment(a, b r2.Vec, maxX, maxY float64) (r2.Vec, r2.Vec, bool) {
	if sum := a.X + a.Y + b.X + b.Y; math.IsNaN(sum) || math.IsInf(sum, 0) || maxX < 0 || maxY < 0 {
		return a, b, false
	}
	d := r2.Sub(b, a)
	t0, t1 := 0.0, 1.0
	bounds := [4][2]float64{
		{-d.X, a.X},
		{d.X, maxX - a.X},
		{-d.Y, a.Y},
		{d.Y, maxY - a.Y},
	}
	for _, e := range bounds {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return a, b, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			t0 = math.Max(t0, r)
		} else {
			t1 = math.Min(t1, r)
		}
		if t0 > t1 {
			return a, b, false
		}
	}
	return r2.Add(a, r2.Scale(t0, d)), r2.Add(a, r2.Scale(t1, d)), true
}

func (c *Canvas) String() string {
	var b strings.Builder
	b.Grow(c.Height * (c.Width*3 + 1))
	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			b.WriteRune(c.Cell(col, row))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
