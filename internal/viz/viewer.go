package viz

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/knotsim/internal/curve"
	"github.com/san-kum/knotsim/internal/knot"
	"github.com/san-kum/knotsim/internal/metrics"
)

const (
	viewerWidth  = 60
	viewerHeight = 24
	tickRate     = time.Second / 30
	spinRate     = 0.02
	normalLen    = 0.15
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(tickRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Viewer is an interactive bubbletea model around a knot builder. Key presses
// only call setters; the merged rebuild runs once on the next tick.
type Viewer struct {
	builder     *knot.Builder
	camera      *Camera
	curve       *Canvas
	normals     *Canvas
	theme       Theme
	title       string
	spinning    bool
	showNormals bool
	showHelp    bool
	params      []string
	selected    int
	values      map[string]float64
	turns       []float64
	rebuilds    map[knot.RebuildKind]int
	last        knot.RebuildKind
}

func NewViewer(b *knot.Builder, title string) *Viewer {
	v := &Viewer{
		builder:     b,
		camera:      NewCamera(),
		curve:       NewCanvas(viewerWidth, viewerHeight),
		normals:     NewCanvas(viewerWidth, viewerHeight),
		theme:       Themes[0],
		title:       title,
		spinning:    true,
		showNormals: true,
		rebuilds:    make(map[knot.RebuildKind]int),
	}
	v.loadParams()
	return v
}

func (v *Viewer) loadParams() {
	params := v.builder.Family().Params()
	v.params = make([]string, 0, len(params))
	for k := range params {
		v.params = append(v.params, k)
	}
	sort.Strings(v.params)
	v.selected = min(v.selected, len(v.params)-1)
}

func (v *Viewer) SetTheme(name string) { v.theme = GetTheme(name) }

func (v *Viewer) Init() tea.Cmd { return tick() }

func (v *Viewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return v, v.handleKey(msg.String())
	case TickMsg:
		if v.spinning {
			v.camera.RotateY(spinRate)
		}
		v.step()
		return v, tick()
	}
	return v, nil
}

func (v *Viewer) handleKey(key string) tea.Cmd {
	b := v.builder
	opts := b.Options()
	switch key {
	case "q", "ctrl+c", "esc":
		return tea.Quit
	case "n":
		b.SetSampleCount(knot.ClampNodes(opts.Nodes + 5))
	case "N":
		b.SetSampleCount(knot.ClampNodes(opts.Nodes - 5))
	case "c":
		b.SetCurvature(math.Min(1, opts.Curvature+0.05))
	case "C":
		b.SetCurvature(math.Max(0, opts.Curvature-0.05))
	case "w":
		b.SetTwistAngle(opts.TwistAngle + 15)
	case "W":
		b.SetTwistAngle(opts.TwistAngle - 15)
	case "f":
		b.SetLoopClosureEnabled(!opts.FixLoopEnds)
	case "l":
		b.SetLoop(!opts.Loop)
	case "tab":
		if len(v.params) > 0 {
			v.selected = (v.selected + 1) % len(v.params)
		}
	case "up", "k":
		v.adjustParam(1)
	case "down", "j":
		v.adjustParam(-1)
	case " ":
		v.spinning = !v.spinning
	case "x":
		v.camera.RotateX(0.1)
	case "X":
		v.camera.RotateX(-0.1)
	case "y":
		v.camera.RotateY(0.1)
	case "Y":
		v.camera.RotateY(-0.1)
	case "+", "=":
		v.camera.ZoomIn()
	case "-", "_":
		v.camera.ZoomOut()
	case "v":
		v.showNormals = !v.showNormals
	case "t":
		v.theme = NextTheme(v.theme.Name)
	case "?":
		v.showHelp = !v.showHelp
	}
	return nil
}

// adjustParam steps the selected curve parameter. Rejected values such as a
// degenerate curve leave the family unchanged.
func (v *Viewer) adjustParam(dir float64) {
	if len(v.params) == 0 {
		return
	}
	name := v.params[v.selected]
	f := v.builder.Family()
	step := 0.1
	switch {
	case curve.IntegerParam(name):
		step = 1
	case f.Kind == curve.KindLissajous && strings.HasPrefix(name, "phase"):
		step = 5
	}
	if err := f.SetParam(name, f.Params()[name]+dir*step); err != nil {
		return
	}
	if knot.Validate(f, v.builder.Options()) != nil {
		return
	}
	v.builder.SetCurveFamily(f)
}

// step applies the pending rebuild and refreshes metrics and canvases.
func (v *Viewer) step() {
	sk, kind := v.builder.Apply()
	v.last = kind
	if kind != knot.RebuildNone {
		v.rebuilds[kind]++
		v.values = metrics.Evaluate(sk)
		if p, err := NewProfile("normal_turn", sk); err == nil {
			v.turns = p.Values
		}
	}
	v.draw(sk)
}

func (v *Viewer) draw(sk *knot.Skeleton) {
	v.curve.Clear()
	v.normals.Clear()
	length := 0.0
	if v.showNormals {
		length = normalLen
	}
	centerline, ticks := SkeletonWireframes(sk, length)
	Render3D(v.curve, centerline, v.camera)
	Render3D(v.normals, ticks, v.camera)
}

func (v *Viewer) View() string {
	base := lipgloss.NewStyle().Foreground(v.theme.Curve)
	over := lipgloss.NewStyle().Foreground(v.theme.Normal)
	canvasView := canvasStyle.Render(RenderLayers(v.curve, v.normals, base, over))

	opts := v.builder.Options()
	raw, fixed := v.builder.Seam()
	label := func(k string) string { return MetricLabel.Render(k) }
	value := func(format string, a ...any) string { return MetricValue.Render(fmt.Sprintf(format, a...)) }

	var s strings.Builder
	s.WriteString(Title.Render(strings.ToUpper(v.title)) + "\n")
	s.WriteString(Subtle.Render(fmt.Sprintf("%s · %s · last %s", v.builder.Family(), v.builder.State(), v.last)) + "\n\n")

	s.WriteString(label("nodes") + value("%d", opts.Nodes) + "\n")
	s.WriteString(label("curvature") + value("%.2f ", opts.Curvature) + Bar(opts.Curvature, 0, 1, 10) + "\n")
	s.WriteString(label("twist") + value("%.0f°", opts.TwistAngle) + "\n")
	s.WriteString(label("loop") + value("%v", opts.Loop) + "\n")
	s.WriteString(label("fix ends") + value("%v", opts.FixLoopEnds) + "\n")
	s.WriteString(label("seam") + value("%.2f° → %.2f°", raw*180/math.Pi, (raw-fixed)*180/math.Pi) + "\n")
	s.WriteString(label("arc length") + value("%.3f", v.values["arc_length"]) + "\n")
	s.WriteString(label("max |n·t|") + value("%.1e", v.values["normal_tangent_dot"]) + "\n")
	s.WriteString(label("rebuilds") + value("%d full, %d reframe", v.rebuilds[knot.RebuildFull], v.rebuilds[knot.RebuildReframe]) + "\n")

	if len(v.turns) > 1 {
		p := Profile{Caption: "normal turn (deg)", Values: v.turns}
		s.WriteString(graphStyle.Render(p.Plot(30, 4)) + "\n")
	}

	s.WriteString("\n" + Title.Render("CURVE") + "\n")
	params := v.builder.Family().Params()
	for i, name := range v.params {
		line := fmt.Sprintf("%-9s %8.2f", name, params[name])
		if i == v.selected {
			s.WriteString(Selected.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + Subtle.Render(line) + "\n")
		}
	}

	s.WriteString("\n" + Separator(36) + "\n")
	s.WriteString(KeyHint.Render("n/N nodes  c/C curve  w/W twist\nf fix ends  l loop  tab/↑↓ param\nspace spin  t theme  ? help  q quit"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
	if v.showHelp {
		return helpText + "\n" + mainView
	}
	return mainView
}

const helpText = `
╔═══════════════════════════════════════╗
║            KEYBOARD SHORTCUTS         ║
╠═══════════════════════════════════════╣
║  n / N    - More / fewer nodes        ║
║  c / C    - Raise / lower curvature   ║
║  w / W    - Twist seed normal ±15°    ║
║  f        - Toggle loop end fixing    ║
║  l        - Toggle closed loop        ║
║  Tab      - Select curve parameter    ║
║  Up / Dn  - Adjust curve parameter    ║
║  x y      - Rotate camera             ║
║  + / -    - Zoom                      ║
║  v        - Toggle normals            ║
║  Space    - Toggle spin               ║
║  t        - Cycle themes              ║
║  q        - Quit                      ║
╚═══════════════════════════════════════╝`

// Run starts the viewer full screen.
func Run(b *knot.Builder, title, theme string) error {
	v := NewViewer(b, title)
	v.SetTheme(theme)
	_, err := tea.NewProgram(v, tea.WithAltScreen()).Run()
	return err
}
