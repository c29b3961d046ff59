package optim

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/san-kum/knotsim/internal/config"
	"github.com/san-kum/knotsim/internal/knot"
	"github.com/san-kum/knotsim/internal/metrics"
)

// KnotEvaluator builds the knot described by cfg with each candidate's
// parameters applied. nodes, curvature and twist set shaping options; any
// other name is a curve parameter. Besides the frame metrics it reports
// raw_seam, the uncorrected loop seam in radians.
func KnotEvaluator(cfg *config.Config) (Evaluator, error) {
	base, err := cfg.CurveFamily()
	if err != nil {
		return nil, err
	}
	baseOpts := cfg.Options()

	return func(params map[string]float64) (map[string]float64, error) {
		f, opts := base, baseOpts
		for name, v := range params {
			switch name {
			case "nodes":
				opts.Nodes = int(math.Round(v))
			case "curvature":
				opts.Curvature = v
			case "twist":
				opts.TwistAngle = v
			default:
				if err := f.SetParam(name, v); err != nil {
					return nil, err
				}
			}
		}
		if err := knot.Validate(f, opts); err != nil {
			return nil, err
		}

		b := knot.NewBuilder(f, opts)
		vals := metrics.Evaluate(b.Construct())
		raw, _ := b.Seam()
		vals["raw_seam"] = math.Abs(raw)
		return vals, nil
	}, nil
}

// ParseAxis parses "name=start:stop:step" or "name=v1,v2,...".
func ParseAxis(s string) (string, []float64, error) {
	name, rhs, ok := strings.Cut(s, "=")
	if !ok || name == "" || rhs == "" {
		return "", nil, fmt.Errorf("axis %q: want name=start:stop:step or name=v1,v2", s)
	}

	if parts := strings.Split(rhs, ":"); len(parts) == 3 {
		var nums [3]float64
		for i, p := range parts {
			v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
			if err != nil {
				return "", nil, fmt.Errorf("axis %q: %w", s, err)
			}
			nums[i] = v
		}
		start, stop, step := nums[0], nums[1], nums[2]
		if step <= 0 || stop < start {
			return "", nil, fmt.Errorf("axis %q: need step > 0 and stop >= start", s)
		}
		var vals []float64
		for i := 0; ; i++ {
			v := start + float64(i)*step
			if v > stop+step*1e-9 {
				break
			}
			vals = append(vals, v)
		}
		return name, vals, nil
	}

	var vals []float64
	for _, p := range strings.Split(rhs, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return "", nil, fmt.Errorf("axis %q: %w", s, err)
		}
		vals = append(vals, v)
	}
	return name, vals, nil
}
