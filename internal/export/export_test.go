package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/knotsim/internal/curve"
	"github.com/san-kum/knotsim/internal/knot"
	"github.com/san-kum/knotsim/internal/viz"
)

func builtLissajous(t *testing.T, loop bool) *knot.Builder {
	t.Helper()
	f, err := curve.NewRegistry().Get("lissajous")
	if err != nil {
		t.Fatal(err)
	}
	opts := knot.DefaultOptions()
	opts.Loop = loop
	b := knot.NewBuilder(f, opts)
	b.Construct()
	return b
}

func TestExportJSON(t *testing.T) {
	b := builtLissajous(t, true)
	path := filepath.Join(t.TempDir(), "knot.json")

	if err := ExportJSON(path, NewExportData(b, map[string]float64{"arc_length": 3})); err != nil {
		t.Fatal(err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var got ExportData
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatal(err)
	}

	sk := b.Skeleton()
	if got.Family != "lissajous" || got.Nodes != 60 || !got.Loop {
		t.Errorf("unexpected header %+v", got)
	}
	if len(got.Skeleton) != sk.Len() {
		t.Fatalf("exported %d nodes, want %d", len(got.Skeleton), sk.Len())
	}
	n := sk.Nodes[7]
	if got.Skeleton[7].Normal != [3]float64{n.Normal.X, n.Normal.Y, n.Normal.Z} {
		t.Errorf("normal mismatch at node 7")
	}
	if got.Params["freq_z"] != 7 {
		t.Errorf("freq_z = %v, want 7", got.Params["freq_z"])
	}
	if got.Metrics["arc_length"] != 3 {
		t.Errorf("metrics not exported")
	}
}

func TestWriteJSONOmitsEmptyMetrics(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, NewExportData(builtLissajous(t, false), nil)); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), `"metrics"`) {
		t.Error("nil metrics should be omitted")
	}
}

func TestSkeletonToSVG(t *testing.T) {
	tests := []struct {
		name   string
		loop   bool
		normal float64
	}{
		{"loop with normals", true, 0.12},
		{"open without normals", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := builtLissajous(t, tt.loop)
			opts := DefaultSVGOptions()
			opts.NormalLength = tt.normal

			svg := SkeletonToSVG(b.Skeleton(), viz.NewCamera(), opts)
			if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
				t.Fatal("malformed svg document")
			}
			if got := strings.Count(svg, " L"); got != b.Skeleton().Len()-1 {
				t.Errorf("path has %d segments, want %d", got, b.Skeleton().Len()-1)
			}
			if strings.Contains(svg, `Z"`) != tt.loop {
				t.Errorf("closed path = %v, want %v", !tt.loop, tt.loop)
			}
			wantTicks := 0
			if tt.normal > 0 {
				wantTicks = b.Skeleton().Len()
			}
			if got := strings.Count(svg, "<line "); got != wantTicks {
				t.Errorf("%d normal ticks, want %d", got, wantTicks)
			}
			if strings.Contains(svg, "NaN") {
				t.Error("svg contains NaN coordinates")
			}
		})
	}

	if SkeletonToSVG(&knot.Skeleton{}, viz.NewCamera(), DefaultSVGOptions()) != "" {
		t.Error("expected empty output for empty skeleton")
	}
}

func TestCanvasToSVG(t *testing.T) {
	c := viz.NewCanvas(4, 2)
	c.Set(0, 0)
	c.Set(3, 5)

	svg := CanvasToSVG(c, 2, "#fff", "#000")
	if got := strings.Count(svg, "<circle"); got != 2 {
		t.Errorf("%d circles, want 2", got)
	}
	if !strings.Contains(svg, `width="16" height="16"`) {
		t.Error("unexpected svg size")
	}
	if CanvasToSVG(nil, 1, "", "") != "" {
		t.Error("nil canvas should render empty")
	}
}
