package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/san-kum/mdsim/internal/analysis"
	"github.com/san-kum/mdsim/internal/automation"
	"github.com/san-kum/mdsim/internal/config"
	"github.com/san-kum/mdsim/internal/dynamo"
	"github.com/san-kum/mdsim/internal/metrics"
	"github.com/san-kum/mdsim/internal/optim"
	"github.com/san-kum/mdsim/internal/sim"
	"github.com/san-kum/mdsim/internal/storage"
	"github.com/san-kum/mdsim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir        string
	logLevel       string
	configFile     string
	preset         string
	particles      int
	perRow         int
	spacing        float64
	mass           float64
	temperature    float64
	dt             float64
	steps          int
	batchSize      int
	averageFrom    float64
	recordEvery    int
	workers        int
	seed           int64
	removeDrift    bool
	driftTolerance float64
	numRuns        int
	outFile        string
	skipFraction   float64
	svgScale       float64
	sweepFrom      float64
	sweepTo        float64
	sweepPoints    int
)

var logger = log.New(os.Stderr)

func main() {
	rootCmd := &cobra.Command{
		Use:           "mdsim",
		Short:         "2D Lennard-Jones molecular dynamics",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := newLogger(logLevel)
			if err != nil {
				return err
			}
			logger = l
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".mdsim", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation and store its series",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run a simulation with live terminal visualization",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addSimFlags(liveCmd)

	ensembleCmd := &cobra.Command{
		Use:   "ensemble",
		Short: "run independently seeded copies and compare them",
		Args:  cobra.NoArgs,
		RunE:  runEnsemble,
	}
	addSimFlags(ensembleCmd)
	ensembleCmd.Flags().IntVar(&numRuns, "runs", 4, "number of ensemble members")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the energies of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "energy statistics and frequency analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().Float64Var(&skipFraction, "skip", 0.2, "leading fraction of the series to discard")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export the energy series to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render the final configuration of a run as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")
	exportSVGCmd.Flags().Float64Var(&svgScale, "scale", 60, "pixels per length unit")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a staged thermal protocol from a yaml file",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "scan temperatures for the heat capacity peak",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addSimFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 0.2, "lowest temperature")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 2.0, "highest temperature")
	sweepCmd.Flags().IntVar(&sweepPoints, "points", 10, "number of temperatures")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	rootCmd.AddCommand(runCmd, liveCmd, ensembleCmd, listCmd, plotCmd, analyzeCmd, exportJSONCmd, exportCSVCmd,
		exportSVGCmd, scenarioCmd, sweepCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		logger.Error("command failed", "err", err)
		os.Exit(1)
	}
}

func newLogger(level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           lvl,
		Prefix:          "mdsim",
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
	}), nil
}

func addSimFlags(cmd *cobra.Command) {
	d := config.DefaultConfig()
	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&preset, "preset", "", "use preset configuration")
	f.IntVarP(&particles, "particles", "n", d.Particles, "number of particles")
	f.IntVar(&perRow, "per-row", d.PerRow, "particles per lattice row")
	f.Float64Var(&spacing, "spacing", d.Spacing, "box length per lattice column")
	f.Float64Var(&mass, "mass", d.Mass, "particle mass")
	f.Float64VarP(&temperature, "temperature", "T", d.Temperature, "temperature")
	f.Float64Var(&dt, "dt", d.Dt, "timestep")
	f.IntVar(&steps, "steps", d.Steps, "total steps")
	f.IntVar(&batchSize, "batch", d.BatchSize, "steps per batch")
	f.Float64Var(&averageFrom, "average-from", d.AverageFrom, "time after which the heat capacity is sampled")
	f.IntVar(&recordEvery, "record-every", d.RecordEvery, "steps between stored records")
	f.IntVar(&workers, "workers", d.Workers, "force-loop workers")
	f.Int64Var(&seed, "seed", d.Seed, "random seed (0 picks one from the clock)")
	f.BoolVar(&removeDrift, "remove-drift", d.RemoveDrift, "zero net momentum after thermalizing")
	f.Float64Var(&driftTolerance, "drift-tolerance", d.DriftTolerance, "warn when energy drifts further (0 disables)")
}

// resolveConfig layers defaults, preset, config file and explicitly set
// flags, in that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("particles") {
		cfg.Particles = particles
	}
	if flags.Changed("per-row") {
		cfg.PerRow = perRow
	}
	if flags.Changed("spacing") {
		cfg.Spacing = spacing
	}
	if flags.Changed("mass") {
		cfg.Mass = mass
	}
	if flags.Changed("temperature") {
		cfg.Temperature = temperature
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("steps") {
		cfg.Steps = steps
	}
	if flags.Changed("batch") {
		cfg.BatchSize = batchSize
	}
	if flags.Changed("average-from") {
		cfg.AverageFrom = averageFrom
	}
	if flags.Changed("record-every") {
		cfg.RecordEvery = recordEvery
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("remove-drift") {
		cfg.RemoveDrift = removeDrift
	}
	if flags.Changed("drift-tolerance") {
		cfg.DriftTolerance = driftTolerance
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return cfg, nil
}

func newSimulation(cfg *config.Config) (*sim.Simulation, error) {
	s, err := sim.Initialize(cfg.Params(), sim.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	if err := s.Thermalize(cfg.Params().KBT(), cfg.Rand()); err != nil {
		return nil, err
	}
	return s, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	s, err := newSimulation(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("running", "particles", cfg.Particles, "steps", cfg.Batches()*cfg.BatchSize, "seed", cfg.Seed)
	sum, err := s.Run(ctx, cfg.Batches(), cfg.BatchSize, nil)
	switch {
	case errors.Is(err, dynamo.ErrContextCanceled):
		logger.Warn("interrupted, saving partial run", "steps", sum.Steps)
	case err != nil:
		return err
	}

	meta := metadata(cfg, sum)
	runID, err := st.Save(meta, s.Series(), s.Positions())
	if err != nil {
		return err
	}

	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d (t=%.3f)\n", sum.Steps, sum.Last.Time)
	fmt.Printf("completed in %v\n", sum.Elapsed.Round(time.Millisecond))
	fmt.Println("\nmetrics:")
	printMetrics(meta.Metrics)
	return nil
}

func metadata(cfg *config.Config, sum *sim.Summary) storage.RunMetadata {
	m := map[string]float64{
		"ekin":           sum.Last.Kinetic,
		"epot":           sum.Last.Potential,
		"etot":           sum.Last.Total,
		"energy_drift":   sum.EnergyDrift,
		"momentum_drift": sum.MomentumDrift,
		"px":             sum.Momentum.X,
		"py":             sum.Momentum.Y,
	}
	if sum.CvSamples > 0 {
		m["cv"] = sum.Cv
		m["cv_samples"] = float64(sum.CvSamples)
	}

	return storage.RunMetadata{
		Preset:      preset,
		Seed:        cfg.Seed,
		Particles:   cfg.Particles,
		PerRow:      cfg.PerRow,
		Box:         cfg.SimBox(),
		Mass:        cfg.Mass,
		Temperature: cfg.Temperature,
		KB:          cfg.KB,
		Dt:          cfg.Dt,
		Steps:       sum.Steps,
		BatchSize:   cfg.BatchSize,
		RecordEvery: cfg.RecordEvery,
		Metrics:     m,
	}
}

func printMetrics(m map[string]float64) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, name := range []string{"ekin", "epot", "etot", "cv", "cv_samples", "energy_drift", "momentum_drift", "px", "py"} {
		if v, ok := m[name]; ok {
			fmt.Fprintf(w, "  %s\t%.6g\n", name, v)
		}
	}
	w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	// The TUI owns the terminal; only failures are worth showing.
	logger.SetLevel(log.ErrorLevel)

	s, err := newSimulation(cfg)
	if err != nil {
		return err
	}

	title := "lennard-jones"
	if preset != "" {
		title += " / " + preset
	}
	m := viz.NewLiveModel(s, cfg.BatchSize, cfg.Batches()*cfg.BatchSize, title)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return err
	}
	return m.Err()
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if numRuns < 1 {
		return dynamo.InvalidParam("runs", numRuns)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("running ensemble", "runs", numRuns, "first_seed", cfg.Seed)
	start := time.Now()
	results, err := sim.NewEnsemble(cfg.Params(), numRuns, cfg.Seed).Run(ctx, cfg.Batches(), cfg.BatchSize)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tSTEPS\tEKIN\tEPOT\tETOT\tCV\tDRIFT")
	cvs := make([]float64, 0, len(results))
	for i, r := range results {
		fmt.Fprintf(w, "%d\t%d\t%.4f\t%.4f\t%.4f\t%.4f\t%.3g\n",
			cfg.Seed+int64(i), r.Steps, r.Last.Kinetic, r.Last.Potential, r.Last.Total, r.Cv, r.EnergyDrift)
		if r.CvSamples > 0 {
			cvs = append(cvs, r.Cv)
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(cvs) > 0 {
		cv := analysis.Summarize(cvs)
		fmt.Printf("\ncv: %.4f ± %.4f (n=%d)\n", cv.Mean, cv.StdDev, cv.N)
	}
	fmt.Printf("completed in %v\n", time.Since(start).Round(time.Millisecond))
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
	fmt.Fprintln(w, "ID\tTIME\tN\tBOX\tT\tDT\tSTEPS\tETOT")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%.2fx%.2f\t%.3g\t%.4g\t%d\t%.4f\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Particles,
			run.Box.Lx, run.Box.Ly,
			run.Temperature,
			run.Dt,
			run.Steps,
			run.Metrics["etot"],
		)
	}

	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, []metrics.Record, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	series, err := st.LoadSeries(runID)
	if err != nil {
		return nil, nil, err
	}
	return meta, series, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, series, err := loadRun(args[0])
	if err != nil {
		return err
	}
	if len(series) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("particles: %d  T: %.3g  dt: %.4g\n", meta.Particles, meta.Temperature, meta.Dt)
	fmt.Printf("samples: %d\n\n", len(series))

	fmt.Println(viz.EnergyPlot(series, 80, 12))
	fmt.Println()
	fmt.Println(viz.SeriesPlot(metrics.Column(series, metrics.TotalOf), "total energy", 80, 6))
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, series, err := loadRun(args[0])
	if err != nil {
		return err
	}
	if len(series) < 4 {
		return fmt.Errorf("need at least 4 samples, have %d", len(series))
	}

	ekin := analysis.Tail(metrics.Column(series, metrics.KineticOf), skipFraction)
	if len(ekin) < 4 {
		return fmt.Errorf("skip %.2f leaves %d samples", skipFraction, len(ekin))
	}

	fmt.Printf("run: %s (%d samples, %d analysed)\n\n", meta.ID, len(series), len(ekin))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SERIES\tMEAN\tSTD\tMIN\tMAX")
	for _, col := range []struct {
		name  string
		field func(metrics.Record) float64
	}{
		{"ekin", metrics.KineticOf},
		{"epot", metrics.PotentialOf},
		{"etot", metrics.TotalOf},
	} {
		s := analysis.Summarize(analysis.Tail(metrics.Column(series, col.field), skipFraction))
		fmt.Fprintf(w, "%s\t%.5f\t%.5f\t%.5f\t%.5f\n", col.name, s.Mean, s.StdDev, s.Min, s.Max)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	interval := series[1].Time - series[0].Time
	if f, ok := analysis.DominantFrequency(ekin, interval); ok {
		fmt.Printf("\ndominant ekin frequency: %.4f (period %.3f)\n", f, 1/f)
	}
	if cv, ok := meta.Metrics["cv"]; ok {
		fmt.Printf("heat capacity: %.4f\n", cv)
	}

	fmt.Println()
	fmt.Println(viz.SeriesPlot(analysis.PowerSpectrumHann(ekin), "ekin power spectrum (hann)", 80, 8))
	return nil
}

func output() (*os.File, func() error, error) {
	if outFile == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(outFile)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]
	meta, series, err := loadRun(runID)
	if err != nil {
		return err
	}
	positions, err := storage.New(dataDir).LoadPositions(runID)
	if err != nil {
		return err
	}

	w, closeOut, err := output()
	if err != nil {
		return err
	}
	if err := storage.ExportJSON(w, *meta, series, positions); err != nil {
		closeOut()
		return err
	}
	return closeOut()
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, series, err := loadRun(args[0])
	if err != nil {
		return err
	}
	if len(series) == 0 {
		return fmt.Errorf("no data to export")
	}

	w, closeOut, err := output()
	if err != nil {
		return err
	}
	if err := storage.WriteSeriesCSV(w, series); err != nil {
		closeOut()
		return err
	}
	return closeOut()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tN\tBOX\tDENSITY\tT\tDT\tSTEPS")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		box := p.SimBox()
		fmt.Fprintf(w, "%s\t%d\t%.2fx%.2f\t%.3f\t%.3g\t%.4g\t%d\n",
			name, p.Particles, box.Lx, box.Ly, float64(p.Particles)/box.Area(), p.Temperature, p.Dt, p.Steps)
	}
	return w.Flush()
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	positions, err := st.LoadPositions(runID)
	if err != nil {
		return err
	}

	w, closeOut, err := output()
	if err != nil {
		return err
	}
	if _, err := fmt.Fprint(w, viz.SnapshotSVG(positions, meta.Box, svgScale, viz.ThemeOcean)); err != nil {
		closeOut()
		return err
	}
	return closeOut()
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	cfg := sc.Config
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	s, err := sim.Initialize(cfg.Params(), sim.WithLogger(logger))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := automation.RunScenario(ctx, sc, s, cfg.Rand(), cfg.BatchSize, logger)
	if err != nil {
		return err
	}

	fmt.Printf("scenario: %s\n", sc.Name)
	if sc.Description != "" {
		fmt.Printf("%s\n", sc.Description)
	}
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STAGE\tSTEPS\tT END\tKT\tEKIN\tETOT\tETOT STD")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%d\t%.3f\t%.4f\t%.4f\t%.4f\t%.3g\n",
			r.Name, r.Steps, r.Last.Time, r.KT, r.Last.Kinetic, r.Last.Total, r.Total.StdDev)
	}
	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if sweepPoints < 1 || sweepFrom < 0 || sweepTo < sweepFrom {
		return dynamo.InvalidParam("sweep range", fmt.Sprintf("%g..%g/%d", sweepFrom, sweepTo, sweepPoints))
	}

	build := func(params map[string]float64) (*sim.Simulation, error) {
		c := *cfg
		c.Temperature = params["temperature"]
		s, err := sim.Initialize(c.Params(), sim.WithLogger(logger.WithPrefix("sweep")))
		if err != nil {
			return nil, err
		}
		return s, s.Thermalize(c.Params().KBT(), c.Rand())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	g := optim.NewGridSearch([]string{"temperature"}, [][]float64{optim.Linspace(sweepFrom, sweepTo, sweepPoints)})
	best, _, points, err := g.Search(ctx, build, cfg.Batches(), cfg.BatchSize, optim.MaxHeatCapacity)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "T\tCV\tSAMPLES\tETOT\tDRIFT")
	cvs := make([]float64, 0, len(points))
	for _, p := range points {
		if p.Err != nil {
			fmt.Fprintf(w, "%.3f\t-\t-\t-\t%v\n", p.Params["temperature"], p.Err)
			continue
		}
		fmt.Fprintf(w, "%.3f\t%.4f\t%d\t%.4f\t%.3g\n",
			p.Params["temperature"], p.Summary.Cv, p.Summary.CvSamples, p.Summary.Last.Total, p.Summary.EnergyDrift)
		cvs = append(cvs, p.Summary.Cv)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(cvs) > 1 {
		fmt.Println()
		fmt.Println(viz.SeriesPlot(cvs, "heat capacity vs temperature", 60, 8))
	}
	if best != nil {
		fmt.Printf("\nheat capacity peak at T = %.3f\n", best["temperature"])
	}
	return nil
}
