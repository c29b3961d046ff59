package automation

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/san-kum/knotsim/internal/config"
	"github.com/san-kum/knotsim/internal/knot"
	"github.com/san-kum/knotsim/internal/metrics"
	"github.com/san-kum/knotsim/internal/storage"
	"gopkg.in/yaml.v3"
)

// Scenario is a scripted sequence of edits to one knot builder.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep edits the configuration left by the previous step. Setting
// Family or Preset starts over from that family's defaults or preset; unset
// fields keep their previous values.
type ScenarioStep struct {
	Name        string             `yaml:"name"`
	Family      string             `yaml:"family"`
	Preset      string             `yaml:"preset"`
	Nodes       *int               `yaml:"nodes"`
	Curvature   *float64           `yaml:"curvature"`
	TwistAngle  *float64           `yaml:"twist_angle"`
	FixLoopEnds *bool              `yaml:"fix_loop_ends"`
	Loop        *bool              `yaml:"loop"`
	Params      map[string]float64 `yaml:"params"`
	Save        bool               `yaml:"save"`
}

type StepResult struct {
	Name    string
	Rebuild knot.RebuildKind
	Count   int
	Seam    float64
	RunID   string
	Metrics map[string]float64
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q has no steps", scenario.Name)
	}

	return &scenario, nil
}

// RunScenario drives a single builder through the steps, applying one rebuild
// per step. Steps with Save set are written to st, which may be nil when no
// step saves.
func RunScenario(ctx context.Context, scenario *Scenario, st *storage.Store, logger *slog.Logger) ([]StepResult, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	results := make([]StepResult, 0, len(scenario.Steps))

	cfg := config.DefaultConfig()
	var b *knot.Builder
	for i, step := range scenario.Steps {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		name := step.Name
		if name == "" {
			name = fmt.Sprintf("step %d", i+1)
		}

		next, err := step.apply(cfg)
		if err != nil {
			return results, fmt.Errorf("%s: %w", name, err)
		}
		f, err := next.CurveFamily()
		if err != nil {
			return results, fmt.Errorf("%s: %w", name, err)
		}
		cfg = next

		if b == nil {
			b = knot.NewBuilder(f, cfg.Options(), knot.WithLogger(logger))
		} else {
			o := cfg.Options()
			b.SetCurveFamily(f)
			b.SetSampleCount(o.Nodes)
			b.SetLoop(o.Loop)
			b.SetCurvature(o.Curvature)
			b.SetTwistAngle(o.TwistAngle)
			b.SetLoopClosureEnabled(o.FixLoopEnds)
		}

		sk, kind := b.Apply()
		raw, _ := b.Seam()
		res := StepResult{
			Name:    name,
			Rebuild: kind,
			Count:   sk.Len(),
			Seam:    raw,
			Metrics: metrics.Evaluate(sk),
		}
		logger.Info("scenario step", "step", name, "rebuild", kind, "nodes", res.Count)

		if step.Save {
			if st == nil {
				return results, fmt.Errorf("%s: save requested without a store", name)
			}
			res.RunID, err = st.Save(cfg, step.Preset, sk, raw, res.Metrics)
			if err != nil {
				return results, fmt.Errorf("%s save: %w", name, err)
			}
		}

		results = append(results, res)
	}

	return results, nil
}

func (s ScenarioStep) apply(prev *config.Config) (*config.Config, error) {
	cp := *prev
	cfg := &cp

	if s.Family != "" || s.Preset != "" {
		family := s.Family
		if family == "" {
			family = prev.Family
		}
		if s.Preset != "" {
			cfg = config.GetPreset(family, s.Preset)
			if cfg == nil {
				return nil, fmt.Errorf("unknown preset %s/%s", family, s.Preset)
			}
		} else {
			cfg = config.DefaultConfig()
			cfg.Family = family
		}
	}

	if s.Nodes != nil {
		cfg.Nodes = *s.Nodes
	}
	if s.Curvature != nil {
		cfg.Curvature = *s.Curvature
	}
	if s.TwistAngle != nil {
		cfg.TwistAngle = *s.TwistAngle
	}
	if s.FixLoopEnds != nil {
		cfg.FixLoopEnds = *s.FixLoopEnds
	}
	if s.Loop != nil {
		cfg.Loop = *s.Loop
	}

	if len(s.Params) > 0 {
		f, err := cfg.CurveFamily()
		if err != nil {
			return nil, err
		}
		for k, v := range s.Params {
			if err := f.SetParam(k, v); err != nil {
				return nil, err
			}
		}
		cfg.SetCurveFamily(f)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
