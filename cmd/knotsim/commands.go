package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/san-kum/knotsim/internal/automation"
	"github.com/san-kum/knotsim/internal/config"
	"github.com/san-kum/knotsim/internal/export"
	"github.com/san-kum/knotsim/internal/knot"
	"github.com/san-kum/knotsim/internal/metrics"
	"github.com/san-kum/knotsim/internal/optim"
	"github.com/san-kum/knotsim/internal/storage"
	"github.com/san-kum/knotsim/internal/viz"
	"github.com/spf13/cobra"
)

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// resolveConfig layers defaults, preset, config file and flags, in that
// order, and validates the result.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if len(args) > 0 {
		cfg.Family = args[0]
	}

	if preset != "" {
		p := config.GetPreset(cfg.Family, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(cfg.Family))
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		if len(args) > 0 {
			cfg.Family = args[0]
		}
	}

	flags := cmd.Flags()
	if flags.Changed("nodes") {
		cfg.Nodes = nodes
	}
	if flags.Changed("curvature") {
		cfg.Curvature = curvature
	}
	if flags.Changed("twist") {
		cfg.TwistAngle = twist
	}
	if flags.Changed("no-fix-ends") {
		cfg.FixLoopEnds = !noFixEnds
	}
	if flags.Changed("open") {
		cfg.Loop = !open
	}

	if len(sets) > 0 {
		f, err := cfg.CurveFamily()
		if err != nil {
			return nil, err
		}
		for _, kv := range sets {
			name, raw, ok := strings.Cut(kv, "=")
			if !ok {
				return nil, fmt.Errorf("--set %q: want name=value", kv)
			}
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("--set %q: %w", kv, err)
			}
			if err := f.SetParam(name, v); err != nil {
				return nil, err
			}
		}
		cfg.SetCurveFamily(f)
	}

	requested := cfg.Nodes
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Nodes != requested {
		fmt.Printf("nodes clamped to %d (range %d-%d)\n", cfg.Nodes, knot.RecommendedMinNodes, knot.RecommendedMaxNodes)
	}
	return cfg, nil
}

func newBuilder(cfg *config.Config) (*knot.Builder, error) {
	f, err := cfg.CurveFamily()
	if err != nil {
		return nil, err
	}
	return knot.NewBuilder(f, cfg.Options(), knot.WithLogger(newLogger())), nil
}

func buildKnot(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	b, err := newBuilder(cfg)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("building %s knot...\n", cfg.Family)
	start := time.Now()
	sk := b.Construct()
	elapsed := time.Since(start)

	if err := sk.Check(knot.UnitTolerance, knot.OrthoTolerance); err != nil {
		return fmt.Errorf("frame check failed, run not saved: %w", err)
	}

	vals := metrics.Evaluate(sk)
	raw, fixed := b.Seam()
	runID, err := st.Save(cfg, preset, sk, raw, vals)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("nodes: %d (%d stored)\n", cfg.Nodes, sk.Len())
	if sk.IsLoop {
		fmt.Printf("seam: %.4f° (corrected %.4f°)\n", raw*180/math.Pi, fixed*180/math.Pi)
	}
	printMetrics(vals)
	return nil
}

func printMetrics(vals map[string]float64) {
	names := make([]string, 0, len(vals))
	for name := range vals {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("\nmetrics:")
	for _, name := range names {
		fmt.Printf("  %s: %.6g\n", name, vals[name])
	}
}

func listPresets(cmd *cobra.Command, args []string) error {
	families := config.ListFamilies()
	if len(args) > 0 {
		families = args
	}

	for _, family := range families {
		presets := config.ListPresets(family)
		if len(presets) == 0 {
			fmt.Printf("no presets for family: %s\n", family)
			continue
		}
		fmt.Printf("presets for %s:\n", family)
		for _, p := range presets {
			fmt.Printf("  %s\n", p)
		}
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tFAMILY\tTIME\tNODES\tCURV\tTWIST\tLOOP\tSEAM")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.2f\t%.0f°\t%v\t%.2f°\n",
			run.ID,
			run.Family,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Nodes,
			run.Curvature,
			run.TwistAngle,
			run.Loop,
			run.Seam*180/math.Pi,
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	sk, err := st.LoadSkeleton(args[0])
	if err != nil {
		return err
	}
	if sk.Len() < 3 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("family: %s\n", meta.Family)
	fmt.Printf("nodes: %d\n\n", sk.Len())

	names := profiles
	if len(names) == 0 {
		names = viz.ProfileNames()
	}
	for _, name := range names {
		p, err := viz.NewProfile(name, sk)
		if err != nil {
			return err
		}
		fmt.Println(p.Plot(80, 10))
		fmt.Println()
	}
	return nil
}

// rebuild reconstructs a stored run from its config. Builds are
// deterministic, so the nodes match the stored ones.
func rebuild(st *storage.Store, runID string) (*knot.Builder, *storage.RunMetadata, error) {
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	cfg, err := st.LoadConfig(runID)
	if err != nil {
		return nil, nil, err
	}
	b, err := newBuilder(cfg)
	if err != nil {
		return nil, nil, err
	}
	b.Construct()
	return b, meta, nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	b, meta, err := rebuild(storage.New(dataDir), args[0])
	if err != nil {
		return err
	}
	return export.ExportJSON(outPath, export.NewExportData(b, meta.Metrics))
}

func exportSVG(cmd *cobra.Command, args []string) error {
	sk, err := storage.New(dataDir).LoadSkeleton(args[0])
	if err != nil {
		return err
	}

	cam := viz.NewCamera()
	var svg string
	if braille {
		canvas := viz.NewCanvas(80, 40)
		centerline, ticks := viz.SkeletonWireframes(sk, 0.1)
		viz.Render3D(canvas, centerline, cam)
		viz.Render3D(canvas, ticks, cam)
		svg = export.CanvasToSVG(canvas, 4, "#00ffff", "#0a0a0a")
	} else {
		svg = export.SkeletonToSVG(sk, cam, export.DefaultSVGOptions())
	}
	if svg == "" {
		return fmt.Errorf("nothing to export")
	}

	if err := os.WriteFile(outPath, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outPath)
	return nil
}

func sweep(cmd *cobra.Command, args []string) error {
	if len(axes) == 0 {
		return fmt.Errorf("at least one --axis is required")
	}
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(axes))
	ranges := make([][]float64, 0, len(axes))
	total := 1
	for _, a := range axes {
		name, vals, err := optim.ParseAxis(a)
		if err != nil {
			return err
		}
		names = append(names, name)
		ranges = append(ranges, vals)
		total *= len(vals)
	}

	eval, err := optim.KnotEvaluator(cfg)
	if err != nil {
		return err
	}
	g := optim.NewGridSearch(names, ranges)
	if workers > 0 {
		g.Workers = workers
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("sweeping %d candidates over %s...\n", total, strings.Join(names, ", "))
	start := time.Now()
	res, err := g.Search(ctx, eval, metric)
	if err != nil {
		return err
	}

	failed := 0
	ok := make([]optim.Trial, 0, len(res.Trials))
	for _, tr := range res.Trials {
		if tr.Err != nil {
			failed++
			newLogger().Debug("candidate rejected", "params", tr.Params, "err", tr.Err)
			continue
		}
		ok = append(ok, tr)
	}
	sort.SliceStable(ok, func(i, j int) bool { return ok[i].Metrics[metric] < ok[j].Metrics[metric] })

	fmt.Printf("completed in %v (%d rejected)\n\n", time.Since(start), failed)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.ToUpper(strings.Join(names, "\t"))+"\t"+strings.ToUpper(metric))
	for _, tr := range ok[:min(top, len(ok))] {
		row := make([]string, 0, len(names)+1)
		for _, name := range names {
			row = append(row, strconv.FormatFloat(tr.Params[name], 'g', 6, 64))
		}
		row = append(row, strconv.FormatFloat(tr.Metrics[metric], 'g', 6, 64))
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nbest %s: %.6g\n", metric, res.Value)
	return nil
}

func viewKnot(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	f, err := cfg.CurveFamily()
	if err != nil {
		return err
	}
	// no logger: the viewer owns the terminal
	b := knot.NewBuilder(f, cfg.Options())

	title := cfg.Family
	if preset != "" {
		title += " / " + preset
	}
	return viz.Run(b, title, theme)
}

func runBatch(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running scenario %s (%d steps)...\n", sc.Name, len(sc.Steps))
	results, err := automation.RunScenario(ctx, sc, st, newLogger())

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tREBUILD\tCOUNT\tSEAM\tARC\tRUN")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%s\t%d\t%.2f°\t%.3f\t%s\n",
			r.Name, r.Rebuild, r.Count, r.Seam*180/math.Pi, r.Metrics["arc_length"], r.RunID)
	}
	if ferr := w.Flush(); ferr != nil && err == nil {
		err = ferr
	}
	return err
}
