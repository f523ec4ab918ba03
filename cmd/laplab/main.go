package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/san-kum/laplab/internal/config"
	"github.com/san-kum/laplab/internal/grid"
	"github.com/san-kum/laplab/internal/metrics"
	"github.com/san-kum/laplab/internal/solver"
	"github.com/san-kum/laplab/internal/storage"
	"github.com/san-kum/laplab/internal/tui"
	"github.com/san-kum/laplab/internal/viz"
)

var (
	dataDir    string
	verbose    bool
	configFile string
	preset     string

	size          int
	workers       int
	tolerance     float64
	maxIterations int
	edgeTop       float64
	edgeBottom    float64
	edgeLeft      float64
	edgeRight     float64

	showHeatmap bool
	noSave      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "laplab",
		Short: "parallel Gauss-Seidel relaxation lab",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(
				tint.NewHandler(os.Stderr, &tint.Options{
					Level:      level,
					TimeFormat: "15:04:05",
				}),
			))
		},
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".laplab", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	solveCmd := &cobra.Command{
		Use:   "solve",
		Short: "run the parallel solver",
		RunE:  runSolve,
	}
	addRunFlags(solveCmd)
	solveCmd.Flags().BoolVar(&showHeatmap, "heatmap", false, "render the relaxed grid")
	solveCmd.Flags().BoolVar(&noSave, "no-save", false, "do not persist the run")

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "run parallel and sequential engines on the same problem",
		RunE:  runCompare,
	}
	addRunFlags(compareCmd)

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "run the parallel solver with a live residual view",
		RunE:  runWatch,
	}
	addRunFlags(watchCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the residual history of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "print a stored run's metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			for name, cfg := range config.Presets {
				fmt.Printf("%-10s size=%d tolerance=%g cap=%d\n",
					name, cfg.Size, cfg.Tolerance, cfg.MaxIterations)
			}
		},
	}

	rootCmd.AddCommand(solveCmd, compareCmd, watchCmd, listCmd, plotCmd, exportCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&size, "size", "n", config.DefaultSize, "grid size")
	cmd.Flags().IntVarP(&workers, "workers", "p", 0, "worker count (0 = all cores)")
	cmd.Flags().Float64VarP(&tolerance, "tolerance", "e", config.DefaultTolerance, "convergence tolerance")
	cmd.Flags().IntVarP(&maxIterations, "iterations", "i", config.DefaultMaxIterations, "iteration cap")
	cmd.Flags().Float64Var(&edgeTop, "top", config.DefaultHotEdge, "top boundary value")
	cmd.Flags().Float64Var(&edgeBottom, "bottom", 0, "bottom boundary value")
	cmd.Flags().Float64Var(&edgeLeft, "left", 0, "left boundary value")
	cmd.Flags().Float64Var(&edgeRight, "right", 0, "right boundary value")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// buildConfig resolves the run configuration with precedence
// defaults < preset < config file < explicitly set flags.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p, ok := config.Presets[preset]
		if !ok {
			return nil, fmt.Errorf("unknown preset %q", preset)
		}
		c := *p
		cfg = &c
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("size") {
		cfg.Size = size
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("tolerance") {
		cfg.Tolerance = tolerance
	}
	if flags.Changed("iterations") {
		cfg.MaxIterations = maxIterations
	}
	if flags.Changed("top") {
		cfg.Boundary.Top = edgeTop
	}
	if flags.Changed("bottom") {
		cfg.Boundary.Bottom = edgeBottom
	}
	if flags.Changed("left") {
		cfg.Boundary.Left = edgeLeft
	}
	if flags.Changed("right") {
		cfg.Boundary.Right = edgeRight
	}

	cfg.Normalize()
	return cfg, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func runSolve(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	m, err := cfg.BuildMatrix()
	if err != nil {
		return err
	}

	s, err := solver.New(m, solver.Options{
		Workers:       cfg.Workers,
		Tolerance:     cfg.Tolerance,
		MaxIterations: cfg.MaxIterations,
	})
	if err != nil {
		return err
	}

	rate := metrics.NewConvergenceRate()
	timing := metrics.NewIterationTiming()
	s.AddProbe(rate)
	s.AddProbe(timing)

	slog.Debug("starting solve",
		"size", cfg.Size, "workers", cfg.Workers,
		"tolerance", cfg.Tolerance, "cap", cfg.MaxIterations)

	ctx, cancel := signalContext()
	defer cancel()

	res, err := s.Solve(ctx)
	if err != nil {
		slog.Warn("solve interrupted", "err", err, "iterations", res.Iterations)
	}

	fmt.Println(viz.Report(res))
	if len(res.Residuals) > 1 {
		fmt.Println(viz.ResidualPlot(res.Residuals))
	}
	slog.Info("solver stats",
		"convergence_rate", fmt.Sprintf("%.4f", rate.Value()),
		"mean_iteration", fmt.Sprintf("%.3gs", timing.Value()))

	if showHeatmap {
		fmt.Println(viz.Heatmap(m, 40))
	}

	if !noSave {
		store := storage.New(dataDir)
		if err := store.Init(); err != nil {
			return fmt.Errorf("init store: %w", err)
		}
		runID, err := store.Save(cfg, res, m)
		if err != nil {
			return fmt.Errorf("save run: %w", err)
		}
		slog.Info("run saved", "id", runID)
	}
	return nil
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	opts := solver.Options{
		Workers:       cfg.Workers,
		Tolerance:     cfg.Tolerance,
		MaxIterations: cfg.MaxIterations,
	}

	parMatrix, err := cfg.BuildMatrix()
	if err != nil {
		return err
	}
	seqMatrix := parMatrix.Clone()

	s, err := solver.New(parMatrix, opts)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	parRes, err := s.Solve(ctx)
	if err != nil {
		return err
	}
	seqRes, err := solver.SolveSequential(seqMatrix, opts)
	if err != nil {
		return err
	}

	fmt.Println(viz.Report(parRes))
	fmt.Println(viz.Report(seqRes))

	diff := grid.MaxInteriorDiff(parMatrix, seqMatrix)
	speedup := float64(seqRes.Elapsed) / float64(parRes.Elapsed)
	fmt.Printf("max cell divergence: %.3g\n", diff)
	fmt.Printf("speedup (%d workers): %.2fx\n", cfg.Workers, speedup)
	return nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	m, err := cfg.BuildMatrix()
	if err != nil {
		return err
	}

	s, err := solver.New(m, solver.Options{
		Workers:       cfg.Workers,
		Tolerance:     cfg.Tolerance,
		MaxIterations: cfg.MaxIterations,
	})
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	res, err := tui.Watch(ctx, s, cfg.Tolerance)
	if err != nil {
		return err
	}
	if res != nil {
		fmt.Println(viz.Report(res))
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	runs, err := store.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no stored runs")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tENGINE\tSIZE\tWORKERS\tCONVERGED\tITERATIONS\tFINAL ERROR")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%t\t%d\t%.4g\n",
			r.ID, r.Engine, r.Size, r.Workers, r.Converged, r.Iterations, r.FinalError)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	residuals, err := store.LoadResiduals(args[0])
	if err != nil {
		return err
	}
	fmt.Println(viz.ResidualPlot(residuals))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	meta, err := store.LoadMetadata(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}
