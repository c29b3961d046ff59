package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	nodes      int
	curvature  float64
	twist      float64
	noFixEnds  bool
	open       bool
	sets       []string
	verbose    bool
	// Output
	outPath  string
	braille  bool
	profiles []string
	theme    string
	// Sweep
	axes    []string
	metric  string
	workers int
	top     int
)

// main registers the knotsim commands and executes the root command, exiting
// with status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:          "knotsim",
		Short:        "knot skeleton sampling and framing lab",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".knotsim", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging on stderr")

	buildCmd := &cobra.Command{
		Use:   "build [family]",
		Short: "build a knot skeleton and store it",
		Args:  cobra.MaximumNArgs(1),
		RunE:  buildKnot,
	}
	addKnotFlags(buildCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets [family]",
		Short: "list available presets",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "print run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot per-segment profiles of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringSliceVar(&profiles, "profile", nil, "profiles to plot (default all)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run nodes to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outPath, "out", "o", "-", "output file, - for stdout")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export run projection to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outPath, "out", "o", "knot.svg", "output file")
	exportSVGCmd.Flags().BoolVar(&braille, "braille", false, "export the braille canvas instead of the vector path")

	sweepCmd := &cobra.Command{
		Use:   "sweep [family]",
		Short: "grid search parameters minimising a metric",
		Args:  cobra.MaximumNArgs(1),
		RunE:  sweep,
	}
	addKnotFlags(sweepCmd)
	sweepCmd.Flags().StringArrayVar(&axes, "axis", nil, "sweep axis name=start:stop:step or name=v1,v2 (repeatable)")
	sweepCmd.Flags().StringVar(&metric, "metric", "raw_seam", "metric to minimise")
	sweepCmd.Flags().IntVar(&workers, "workers", 0, "parallel workers (0 = GOMAXPROCS)")
	sweepCmd.Flags().IntVar(&top, "top", 5, "number of best candidates to print")

	viewCmd := &cobra.Command{
		Use:   "view [family]",
		Short: "interactive terminal viewer",
		Args:  cobra.MaximumNArgs(1),
		RunE:  viewKnot,
	}
	addKnotFlags(viewCmd)
	viewCmd.Flags().StringVar(&theme, "theme", "cyberpunk", "color theme")

	batchCmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "run a scripted scenario against one builder",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}

	rootCmd.AddCommand(buildCmd, presetsCmd, listCmd, showCmd, plotCmd, exportJSONCmd, exportSVGCmd, sweepCmd, viewCmd, batchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addKnotFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().IntVar(&nodes, "nodes", 60, "number of samples")
	cmd.Flags().Float64Var(&curvature, "curvature", 0.3, "handle length factor in [0,1]")
	cmd.Flags().Float64Var(&twist, "twist", 0, "seed normal twist (degrees)")
	cmd.Flags().BoolVar(&noFixEnds, "no-fix-ends", false, "keep the loop seam uncorrected")
	cmd.Flags().BoolVar(&open, "open", false, "build an open curve")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "curve parameter name=value (repeatable)")
}
