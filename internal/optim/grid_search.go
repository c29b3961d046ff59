package optim

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
)

var (
	ErrNoCandidates  = errors.New("optim: no candidate evaluated successfully")
	ErrUnknownMetric = errors.New("optim: metric not reported")
)

// Evaluator computes named metrics for one parameter assignment. It is called
// concurrently and must not share mutable state between calls.
type Evaluator func(params map[string]float64) (map[string]float64, error)

type Trial struct {
	Params  map[string]float64
	Metrics map[string]float64
	Err     error
}

type Result struct {
	Best   Trial
	Value  float64
	Trials []Trial
}

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
	Workers    int
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges, Workers: runtime.GOMAXPROCS(0)}
}

// Candidates enumerates the full grid, last parameter varying fastest.
func (g *GridSearch) Candidates() []map[string]float64 {
	var out []map[string]float64
	g.enumerate(0, make(map[string]float64), &out)
	return out
}

func (g *GridSearch) enumerate(depth int, current map[string]float64, out *[]map[string]float64) {
	if depth == len(g.paramNames) {
		*out = append(*out, current)
		return
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		next := make(map[string]float64, len(current)+1)
		for k, v := range current {
			next[k] = v
		}
		next[paramName] = val
		g.enumerate(depth+1, next, out)
	}
}

// Search evaluates every candidate in parallel and returns the one minimising
// metricName. Failed candidates and NaN values are kept in Trials and
// skipped; ties go to the earliest candidate.
func (g *GridSearch) Search(ctx context.Context, eval Evaluator, metricName string) (*Result, error) {
	if len(g.paramNames) != len(g.ranges) {
		return nil, fmt.Errorf("optim: %d parameters but %d ranges", len(g.paramNames), len(g.ranges))
	}

	cands := g.Candidates()
	trials := make([]Trial, len(cands))
	ParallelFor(ctx, len(cands), g.Workers, func(i int) {
		m, err := eval(cands[i])
		trials[i] = Trial{Params: cands[i], Metrics: m, Err: err}
	})
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &Result{Value: math.Inf(1), Trials: trials}
	found := false
	for _, tr := range trials {
		if tr.Err != nil {
			continue
		}
		val, ok := tr.Metrics[metricName]
		if !ok {
			return nil, fmt.Errorf("%q: %w", metricName, ErrUnknownMetric)
		}
		if math.IsNaN(val) {
			continue
		}
		if !found || val < res.Value {
			res.Best, res.Value = tr, val
			found = true
		}
	}
	if !found {
		return nil, ErrNoCandidates
	}
	return res, nil
}
