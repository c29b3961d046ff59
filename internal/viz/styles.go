package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(42)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)

	// Title is the bold header used by the viewer and the CLI.
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#00ffff"))

	Subtle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688"))

	MetricLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899")).
			Width(14)

	MetricValue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ccff")).
			Bold(true)

	KeyHint = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688")).
		Italic(true)

	Selected = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff00ff"))
)

// Bar renders v within [lo, hi] as a fixed-width gauge.
func Bar(v, lo, hi float64, width int) string {
	ratio := 0.0
	if hi > lo {
		ratio = (v - lo) / (hi - lo)
	}
	filled := int(ratio * float64(width))
	filled = max(0, min(width, filled))
	return "[" + strings.Repeat("=", filled) + strings.Repeat("-", width-filled) + "]"
}

func Separator(width int) string {
	mid := width / 2
	left := strings.Repeat("─", max(0, mid-3))
	right := strings.Repeat("─", max(0, width-mid-3))
	return Subtle.Render(left + " ◆ " + right)
}

// RenderLayers merges two canvases of equal size cell by cell. Cells lit in
// base take baseStyle, cells lit only in overlay take overlayStyle.
func RenderLayers(base, overlay *Canvas, baseStyle, overlayStyle lipgloss.Style) string {
	var b strings.Builder
	for row := 0; row < base.Height; row++ {
		var run strings.Builder
		runStyle := -1
		flush := func() {
			switch runStyle {
			case 0:
				b.WriteString(run.String())
			case 1:
				b.WriteString(baseStyle.Render(run.String()))
			case 2:
				b.WriteString(overlayStyle.Render(run.String()))
			}
			run.Reset()
		}
		for col := 0; col < base.Width; col++ {
			cell, style := base.Cell(col, row), 1
			switch {
			case overlay != nil && base.Empty(col, row) && !overlay.Empty(col, row):
				cell, style = overlay.Cell(col, row), 2
			case base.Empty(col, row):
				style = 0
			case overlay != nil:
				cell |= overlay.Cell(col, row)
			}
			if style != runStyle {
				flush()
				runStyle = style
			}
			run.WriteRune(cell)
		}
		flush()
		b.WriteByte('\n')
	}
	return b.String()
}
