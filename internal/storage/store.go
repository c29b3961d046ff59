package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/knotsim/internal/config"
	"github.com/san-kum/knotsim/internal/knot"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	metadataFile = "metadata.json"
	configFile   = "config.yaml"
	nodesFile    = "nodes.csv"
)

var nodeHeader = []string{
	"index",
	"px", "py", "pz",
	"hx", "hy", "hz",
	"tx", "ty", "tz",
	"nx", "ny", "nz",
}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID          string             `json:"id"`
	Family      string             `json:"family"`
	Preset      string             `json:"preset,omitempty"`
	Timestamp   time.Time          `json:"timestamp"`
	Nodes       int                `json:"nodes"`
	Count       int                `json:"count"`
	Curvature   float64            `json:"curvature"`
	TwistAngle  float64            `json:"twist_angle"`
	Loop        bool               `json:"loop"`
	FixLoopEnds bool               `json:"fix_loop_ends"`
	Seam        float64            `json:"seam"`
	Metrics     map[string]float64 `json:"metrics"`
}

// Save writes a run directory holding the metadata, the config that produced
// sk and its nodes. seam is the raw loop seam before correction. A run that
// fails partway is removed.
func (s *Store) Save(cfg *config.Config, preset string, sk *knot.Skeleton, seam float64, metrics map[string]float64) (_ string, err error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", cfg.Family, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}
	defer func() {
		if err != nil {
			os.RemoveAll(runDir)
		}
	}()

	meta := RunMetadata{
		ID:          runID,
		Family:      cfg.Family,
		Preset:      preset,
		Timestamp:   now,
		Nodes:       cfg.Nodes,
		Count:       sk.Len(),
		Curvature:   cfg.Curvature,
		TwistAngle:  cfg.TwistAngle,
		Loop:        sk.IsLoop,
		FixLoopEnds: cfg.FixLoopEnds,
		Seam:        seam,
		Metrics:     metrics,
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := config.Save(filepath.Join(runDir, configFile), cfg); err != nil {
		return "", err
	}
	if err := writeNodes(filepath.Join(runDir, nodesFile), sk.Nodes); err != nil {
		return "", err
	}

	return runID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeNodes(path string, nodes []knot.Node) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(nodeHeader); err != nil {
		return err
	}

	row := make([]string, len(nodeHeader))
	for i, n := range nodes {
		row = row[:0]
		row = append(row, strconv.Itoa(i))
		for _, v := range []r3.Vec{n.Position, n.Handle, n.Tangent, n.Normal} {
			row = append(row, formatFloat(v.X), formatFloat(v.Y), formatFloat(v.Z))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

// List returns the stored runs, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadConfig(runID string) (*config.Config, error) {
	return config.Load(filepath.Join(s.baseDir, runID, configFile))
}

// LoadSkeleton reads the stored nodes of a run back into a skeleton.
func (s *Store) LoadSkeleton(runID string) (*knot.Skeleton, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filepath.Join(s.baseDir, runID, nodesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}

	sk := &knot.Skeleton{IsLoop: meta.Loop}
	if len(records) < 2 {
		return sk, nil
	}

	sk.Nodes = make([]knot.Node, 0, len(records)-1)
	for line, record := range records[1:] {
		if len(record) != len(nodeHeader) {
			return nil, fmt.Errorf("%s line %d: expected %d fields, got %d", nodesFile, line+2, len(nodeHeader), len(record))
		}

		vals := make([]float64, len(record)-1)
		for j := range vals {
			v, err := strconv.ParseFloat(record[j+1], 64)
			if err != nil {
				return nil, fmt.Errorf("%s line %d: %w", nodesFile, line+2, err)
			}
			vals[j] = v
		}

		sk.Nodes = append(sk.Nodes, knot.Node{
			Position: r3.Vec{X: vals[0], Y: vals[1], Z: vals[2]},
			Handle:   r3.Vec{X: vals[3], Y: vals[4], Z: vals[5]},
			Tangent:  r3.Vec{X: vals[6], Y: vals[7], Z: vals[8]},
			Normal:   r3.Vec{X: vals[9], Y: vals[10], Z: vals[11]},
		})
	}

	return sk, nil
}

func (s *Store) Delete(runID string) error {
	if _, err := s.Load(runID); err != nil {
		return err
	}
	return os.RemoveAll(filepath.Join(s.baseDir, runID))
}
