package export

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/knotsim/internal/knot"
	"gonum.org/v1/gonum/spatial/r3"
)

type NodeData struct {
	Position [3]float64 `json:"position"`
	Handle   [3]float64 `json:"handle"`
	Tangent  [3]float64 `json:"tangent"`
	Normal   [3]float64 `json:"normal"`
}

type ExportData struct {
	Family      string             `json:"family"`
	Params      map[string]float64 `json:"params"`
	Nodes       int                `json:"nodes"`
	Curvature   float64            `json:"curvature"`
	TwistAngle  float64            `json:"twist_angle"`
	Loop        bool               `json:"loop"`
	FixLoopEnds bool               `json:"fix_loop_ends"`
	Seam        float64            `json:"seam"`
	Metrics     map[string]float64 `json:"metrics,omitempty"`
	Skeleton    []NodeData         `json:"skeleton"`
}

// NewExportData snapshots the builder's current skeleton and settings.
func NewExportData(b *knot.Builder, metrics map[string]float64) *ExportData {
	opts := b.Options()
	raw, _ := b.Seam()
	sk := b.Skeleton()

	data := &ExportData{
		Family:      b.Family().String(),
		Params:      b.Family().Params(),
		Nodes:       opts.Nodes,
		Curvature:   opts.Curvature,
		TwistAngle:  opts.TwistAngle,
		Loop:        sk.IsLoop,
		FixLoopEnds: opts.FixLoopEnds,
		Seam:        raw,
		Metrics:     metrics,
		Skeleton:    make([]NodeData, len(sk.Nodes)),
	}
	for i, n := range sk.Nodes {
		data.Skeleton[i] = NodeData{
			Position: arr(n.Position),
			Handle:   arr(n.Handle),
			Tangent:  arr(n.Tangent),
			Normal:   arr(n.Normal),
		}
	}
	return data
}

func arr(v r3.Vec) [3]float64 { return [3]float64{v.X, v.Y, v.Z} }

func WriteJSON(w io.Writer, data *ExportData) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// ExportJSON writes data to path, or to stdout when path is "-".
func ExportJSON(path string, data *ExportData) error {
	if path == "-" {
		return WriteJSON(os.Stdout, data)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteJSON(f, data)
}
