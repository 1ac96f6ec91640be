package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/nld/internal/config"
	"github.com/san-kum/nld/internal/live"
	"github.com/san-kum/nld/internal/nld"
	"github.com/san-kum/nld/internal/qerror"
	"github.com/san-kum/nld/internal/series"
	"github.com/san-kum/nld/internal/store"
	"github.com/san-kum/nld/internal/sweep"
)

var (
	dataDir    string
	configFile string
	preset     string

	// Input selection
	signal    string
	inputFile string
	column    int
	length    int
	rate      float64
	seed      int64

	// Estimator parameters
	dim       int
	delay     int
	minSep    int
	maxOffset int
	fitLen    int
	minBox    int
	maxBox    int
	boxGrowth float64

	// Validation
	trials      int
	workers     int
	seedStart   int64
	bits        int
	lambdaBound float64
	alphaBound  float64
	jsonOut     bool

	// Plot / live
	showPlot  bool
	window    int
	frameRate int

	// Sweep
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepStep  float64
	objective  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "nld",
		Short: "nonlinear dynamics descriptors with fixed-point error validation",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".nld", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")

	estimateCmd := &cobra.Command{
		Use:   "estimate",
		Short: "estimate lyapunov exponent and dfa alpha for one window",
		RunE:  runEstimate,
	}
	addSignalFlags(estimateCmd)
	addEstimatorFlags(estimateCmd)
	estimateCmd.Flags().StringVar(&inputFile, "input", "", "CSV file to read samples from")
	estimateCmd.Flags().IntVar(&column, "column", 0, "CSV column holding the samples")
	estimateCmd.Flags().BoolVar(&showPlot, "plot", false, "plot divergence curve and fluctuation table")

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "monte-carlo validation of fixed-point error bounds",
		RunE:  runValidate,
	}
	addSignalFlags(validateCmd)
	addEstimatorFlags(validateCmd)
	validateCmd.Flags().IntVar(&trials, "trials", config.DefaultTrials, "number of trials")
	validateCmd.Flags().IntVar(&workers, "workers", 0, "worker goroutines (0 = GOMAXPROCS)")
	validateCmd.Flags().Int64Var(&seedStart, "seed-start", config.DefaultSeed, "seed of trial 0")
	validateCmd.Flags().IntVar(&bits, "bits", config.DefaultBits, "fixed-point fractional bits")
	validateCmd.Flags().Float64Var(&lambdaBound, "lambda-bound", config.DefaultBound, "error bound for lyapunov")
	validateCmd.Flags().Float64Var(&alphaBound, "alpha-bound", config.DefaultBound, "error bound for alpha")
	validateCmd.Flags().BoolVar(&jsonOut, "json", false, "print report as JSON")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "grid-search one estimator parameter against the error objective",
		RunE:  runSweep,
	}
	addSignalFlags(sweepCmd)
	addEstimatorFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "fit_len", "parameter to sweep")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 4, "first grid value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 10, "last grid value")
	sweepCmd.Flags().Float64Var(&sweepStep, "step", 2, "grid step")
	sweepCmd.Flags().IntVar(&trials, "trials", 50, "trials per grid point")
	sweepCmd.Flags().StringVar(&objective, "objective", "max", "objective: lambda, alpha, or max (normalized p95)")
	sweepCmd.Flags().Int64Var(&seedStart, "seed-start", config.DefaultSeed, "seed of trial 0")
	sweepCmd.Flags().IntVar(&bits, "bits", config.DefaultBits, "fixed-point fractional bits")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "live descriptor view over a sliding window",
		RunE:  runLive,
	}
	addSignalFlags(liveCmd)
	addEstimatorFlags(liveCmd)
	liveCmd.Flags().IntVar(&window, "window", config.DefaultLength, "sliding window length")
	liveCmd.Flags().IntVar(&frameRate, "fps", 10, "frame rate")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return store.New(dataDir).ExportJSON(args[0], os.Stdout)
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
		},
	}

	rootCmd.AddCommand(estimateCmd, validateCmd, sweepCmd, liveCmd, listCmd, exportCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSignalFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&signal, "signal", config.DefaultSignal, "synthetic signal name")
	cmd.Flags().IntVar(&length, "length", config.DefaultLength, "window length in samples")
	cmd.Flags().Float64Var(&rate, "rate", config.DefaultRate, "sample rate in Hz")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
}

func addEstimatorFlags(cmd *cobra.Command) {
	p := nld.DefaultParams()
	cmd.Flags().IntVar(&dim, "dim", p.Dim, "embedding dimension")
	cmd.Flags().IntVar(&delay, "delay", p.Delay, "embedding delay in samples")
	cmd.Flags().IntVar(&minSep, "min-sep", p.MinSeparation, "minimum temporal separation")
	cmd.Flags().IntVar(&maxOffset, "max-offset", p.MaxOffset, "divergence horizon")
	cmd.Flags().IntVar(&fitLen, "fit-len", p.FitLen, "divergence fit window")
	cmd.Flags().IntVar(&minBox, "min-box", p.MinBox, "smallest DFA box size")
	cmd.Flags().IntVar(&maxBox, "max-box", p.MaxBox, "largest DFA box size")
	cmd.Flags().Float64Var(&boxGrowth, "box-growth", p.BoxGrowth, "DFA box growth factor")
}

// resolveConfig merges preset, config file, and changed CLI flags, in that
// order of increasing precedence.
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
	if flags.Changed("signal") {
		cfg.Signal.Name = signal
	}
	if flags.Changed("length") {
		cfg.Signal.Length = length
	}
	if flags.Changed("rate") {
		cfg.Signal.Rate = rate
	}
	if flags.Changed("seed") || cfg.Signal.Seed == 0 {
		cfg.Signal.Seed = seed
	}
	if flags.Changed("dim") {
		cfg.Estimator.EmbeddingDim = dim
	}
	if flags.Changed("delay") {
		cfg.Estimator.Delay = delay
	}
	if flags.Changed("min-sep") {
		cfg.Estimator.MinSeparation = minSep
	}
	if flags.Changed("max-offset") {
		cfg.Estimator.MaxOffset = maxOffset
	}
	if flags.Changed("fit-len") {
		cfg.Estimator.FitLen = fitLen
	}
	if flags.Changed("min-box") {
		cfg.Estimator.MinBox = minBox
	}
	if flags.Changed("max-box") {
		cfg.Estimator.MaxBox = maxBox
	}
	if flags.Changed("box-growth") {
		cfg.Estimator.BoxGrowth = boxGrowth
	}
	if flags.Changed("trials") {
		cfg.Validate.Trials = trials
	}
	if flags.Changed("workers") {
		cfg.Validate.Workers = workers
	}
	if flags.Changed("seed-start") {
		cfg.Validate.SeedStart = seedStart
	}
	if flags.Changed("bits") {
		cfg.Validate.Bits = bits
	}
	if flags.Changed("lambda-bound") {
		cfg.Validate.LambdaBound = lambdaBound
	}
	if flags.Changed("alpha-bound") {
		cfg.Validate.AlphaBound = alphaBound
	}
	return cfg, nil
}

func runEstimate(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	est, err := nld.NewEstimator(cfg.Params())
	if err != nil {
		return err
	}

	var ts series.TimeSeries
	source := cfg.Signal.Name
	if inputFile != "" {
		samples, err := readCSVColumn(inputFile, column)
		if err != nil {
			return err
		}
		ts = series.New(samples, cfg.Signal.Rate)
		source = inputFile
	} else {
		ts, err = series.Generate(cfg.Signal.Name, cfg.Signal.Length, cfg.Signal.Rate, cfg.Signal.Seed)
		if err != nil {
			return err
		}
	}

	start := time.Now()
	f := est.Estimate(ts)
	elapsed := time.Since(start)

	fmt.Printf("source: %s (%d samples @ %.1f Hz)\n", source, ts.Len(), ts.Rate)
	fmt.Printf("lyapunov: %+.6f 1/s\n", f.Lyapunov)
	fmt.Printf("alpha:    %.6f\n", f.Alpha)
	fmt.Printf("elapsed:  %v\n", elapsed)

	if showPlot {
		plotDiagnostics(ts, est.Params())
	}

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.SaveEstimate(source, cfg.Signal.Seed, ts, est.Params(), f)
	if err != nil {
		return err
	}
	fmt.Printf("run id: %s\n", runID)
	return nil
}

func plotDiagnostics(ts series.TimeSeries, p nld.Params) {
	em, err := nld.Embed(ts.Samples, p.Dim, p.Delay)
	if err != nil {
		fmt.Printf("no divergence curve: %v\n", err)
		return
	}

	curve := nld.Divergence(em, nld.Neighbors(em, p.MinSeparation), p.MaxOffset)
	if len(curve) >= 2 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(curve,
			asciigraph.Height(10),
			asciigraph.Width(60),
			asciigraph.Caption("mean log divergence per offset"),
		))
	}

	table := nld.Fluctuations(nld.Profile(ts.Samples), nld.BoxSizes(ts.Len(), p.MinBox, p.MaxBox, p.BoxGrowth))
	logF := make([]float64, 0, len(table))
	for _, row := range table {
		if row.F > 0 {
			logF = append(logF, math.Log(row.F))
		}
	}
	if len(logF) >= 2 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(logF,
			asciigraph.Height(10),
			asciigraph.Width(60),
			asciigraph.Caption("log F(n) per box size"),
		))
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	runner, err := qerror.New(cfg.Campaign())
	if err != nil {
		return err
	}

	fmt.Printf("running %d trials (%s, %d samples @ %.1f Hz, %d-bit)...\n",
		cfg.Validate.Trials, cfg.Signal.Name, cfg.Signal.Length, cfg.Signal.Rate, cfg.Validate.Bits)
	start := time.Now()

	report, err := runner.Run(context.Background())
	if err != nil {
		return err
	}
	fmt.Printf("completed in %v\n\n", time.Since(start))

	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	} else {
		printReport(report)
	}

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.SaveReport(cfg.Params(), cfg.Validate.SeedStart, report)
	if err != nil {
		return err
	}
	fmt.Printf("\nrun id: %s\n", runID)
	return nil
}

func printReport(report *qerror.Report) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "metric\tmean\tstd\tmedian\tp95\tp99\tmax\tbound\tviolations")
	for _, row := range []struct {
		name string
		s    qerror.Summary
	}{
		{"lyapunov", report.Lambda},
		{"alpha", report.Alpha},
	} {
		fmt.Fprintf(w, "%s\t%.6f\t%.6f\t%.6f\t%.6f\t%.6f\t%.6f\t%.3f\t%.2f%%\n",
			row.name, row.s.Mean, row.s.Std, row.s.Median, row.s.P95, row.s.P99,
			row.s.Max, row.s.Bound, row.s.ViolationRate*100)
	}
	w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if sweepStep <= 0 || sweepMax < sweepMin {
		return fmt.Errorf("invalid sweep range [%g, %g] step %g", sweepMin, sweepMax, sweepStep)
	}

	values := make([]float64, 0)
	for v := sweepMin; v <= sweepMax; v += sweepStep {
		values = append(values, v)
	}

	grid, err := sweep.New([]string{sweepParam}, [][]float64{values})
	if err != nil {
		return err
	}

	campaign := cfg.Campaign()
	campaign.Trials = trials

	score := func(ctx context.Context, vals map[string]float64) (float64, error) {
		params, err := sweep.Apply(campaign.Params, vals)
		if err != nil {
			return 0, err
		}
		trialCfg := campaign
		trialCfg.Params = params

		runner, err := qerror.New(trialCfg)
		if err != nil {
			return 0, err
		}
		report, err := runner.Run(ctx)
		if err != nil {
			return 0, err
		}

		switch objective {
		case "lambda":
			return report.Lambda.P95, nil
		case "alpha":
			return report.Alpha.P95, nil
		default:
			// Worst normalized p95 across both descriptors.
			return math.Max(report.Lambda.P95/report.Lambda.Bound,
				report.Alpha.P95/report.Alpha.Bound), nil
		}
	}

	fmt.Printf("sweeping %s over %v (%d trials each)...\n", sweepParam, values, campaign.Trials)
	best, bestScore, err := grid.Search(context.Background(), score)
	if err != nil {
		return err
	}

	fmt.Printf("best %s: %g (objective %.6f)\n", sweepParam, best[sweepParam], bestScore)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	est, err := nld.NewEstimator(cfg.Params())
	if err != nil {
		return err
	}

	win := window
	if !cmd.Flags().Changed("window") && cfg.Signal.Length > 0 {
		win = cfg.Signal.Length
	}
	return live.Run(est, cfg.Signal.Name, win, cfg.Signal.Rate, cfg.Signal.Seed, frameRate)
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := store.New(dataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "id\tkind\tsignal\tlength\trate\tresult")
	for _, run := range runs {
		result := ""
		switch {
		case run.Features != nil:
			result = fmt.Sprintf("lambda=%+.4f alpha=%.4f", run.Features.Lyapunov, run.Features.Alpha)
		case run.Report != nil:
			result = fmt.Sprintf("p95(lambda)=%.6f p95(alpha)=%.6f", run.Report.Lambda.P95, run.Report.Alpha.P95)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.1f\t%s\n", run.ID, run.Kind, run.Signal, run.Length, run.Rate, result)
	}
	return w.Flush()
}

// readCSVColumn loads one numeric column from a CSV file, tolerating a
// header row and blank lines.
func readCSVColumn(path string, col int) ([]float64, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	samples := make([]float64, 0, len(records))
	for _, record := range records {
		if col >= len(record) {
			continue
		}
		v, err := strconv.ParseFloat(record[col], 64)
		if err != nil {
			continue
		}
		samples = append(samples, v)
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("no numeric samples in column %d of %s", col, path)
	}
	return samples, nil
}
