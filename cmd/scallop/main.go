package main

import (
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/shiyuanhu/microalgal-swimming/internal/analysis"
	"github.com/shiyuanhu/microalgal-swimming/internal/config"
	"github.com/shiyuanhu/microalgal-swimming/internal/export"
	"github.com/shiyuanhu/microalgal-swimming/internal/metrics"
	"github.com/shiyuanhu/microalgal-swimming/internal/scallop"
	"github.com/shiyuanhu/microalgal-swimming/internal/storage"
	"github.com/shiyuanhu/microalgal-swimming/internal/sweep"
	"github.com/shiyuanhu/microalgal-swimming/internal/viz"
)

var (
	dataDir    string
	thetaA     float64
	theta0     float64
	segments   int
	length     float64
	dt         float64
	duration   float64
	tau        float64
	delta      float64
	nfine      int
	configFile string
	preset     string
	frameRate  int
	svgOut     string
	sweepFrom  float64
	sweepTo    float64
	sweepSteps int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "scallop",
		Short: "two-filament scallop swimmer, regularized Stokeslet BEM",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".scallop", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run simulation",
		RunE:  runSimulation,
	}
	addParamFlags(runCmd)
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of the velocity series",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export run curves to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&svgOut, "out", "", "output file (default stdout)")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark solver across segment counts",
		RunE:  benchSolver,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("presets:")
			for _, p := range config.ListPresets() {
				fmt.Printf("  %s\n", p)
			}
		},
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [parameter]",
		Short: "sweep a stroke parameter and tabulate swim metrics",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	addParamFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 0.0, "first sweep value")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 1.0, "last sweep value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 5, "number of sweep values")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run simulation with live visualization",
		RunE:  runLive,
	}
	addParamFlags(liveCmd)
	liveCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, analyzeCmd, exportJSONCmd, exportCSVCmd, exportSVGCmd, benchCmd, presetsCmd, sweepCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addParamFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&thetaA, "amplitude", config.DefaultThetaA, "oscillation amplitude (rad)")
	cmd.Flags().Float64Var(&theta0, "tilt", config.DefaultTheta0, "tilt angle (rad)")
	cmd.Flags().IntVar(&segments, "segments", config.DefaultSegments, "boundary elements per filament")
	cmd.Flags().Float64Var(&length, "length", config.DefaultLength, "filament length")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	cmd.Flags().Float64Var(&tau, "tau", config.DefaultTau, "oscillation period")
	cmd.Flags().Float64Var(&delta, "delta", config.DefaultDelta, "regularization length")
	cmd.Flags().IntVar(&nfine, "nfine", config.DefaultNfine, "quadrature points per element")
}

// resolveConfig layers preset, config file and CLI flags into one parameter
// set. Flags changed on the command line win over both.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		*cfg = *p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		*cfg = *loaded
	}

	flags := cmd.Flags()
	if flags.Changed("amplitude") {
		cfg.ThetaA = thetaA
	}
	if flags.Changed("tilt") {
		cfg.Theta0 = theta0
	}
	if flags.Changed("segments") {
		cfg.Segments = segments
	}
	if flags.Changed("length") {
		cfg.Length = length
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Duration = duration
	}
	if flags.Changed("tau") {
		cfg.Tau = tau
	}
	if flags.Changed("delta") {
		cfg.Delta = delta
	}
	if flags.Changed("nfine") {
		cfg.Nfine = nfine
	}

	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	sim, err := scallop.New(cfg.Params())
	if err != nil {
		return err
	}
	for _, m := range metrics.Default() {
		sim.AddMetric(m)
	}

	st := storage.New(dataDir)
	run, err := st.Begin()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	fmt.Printf("running scallop simulation (N=%d, dt=%g, T=%g)...\n", cfg.Segments, cfg.Dt, cfg.Duration)
	start := time.Now()

	result, err := sim.Run(ctx, run.Writer())
	if err != nil {
		// Rows flushed before the failure stay on disk.
		run.Abort()
		return err
	}
	elapsed := time.Since(start)

	if err := run.Finish(cfg.Params(), result); err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", run.ID())
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.10f\n", name, val)
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
	fmt.Fprintln(w, "ID\tTIME\tN\tDT\tDURATION\tSTEPS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%.4fs\t%.2fs\t%d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Segments,
			run.Dt,
			run.Duration,
			run.Steps,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	times, speeds, hingeX, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}
	if len(times) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("samples: %d\n\n", len(times))

	for _, series := range []struct {
		data    []float64
		caption string
	}{
		{speeds, "translation speed U"},
		{hingeX, "hinge x-position"},
	} {
		graph := asciigraph.Plot(series.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(series.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	_, speeds, _, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}
	if len(speeds) == 0 {
		return fmt.Errorf("no data")
	}

	fmt.Printf("frequency analysis: %s\n\n", meta.ID)

	padded := analysis.Pad(speeds)
	ps := analysis.PowerSpectrum(padded)

	plotData := ps
	if len(ps) > len(ps)/4 && len(ps) >= 8 {
		plotData = ps[:len(ps)/4]
	}
	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum of U"),
	)
	fmt.Println(graph)
	fmt.Println()

	freq := analysis.DominantFrequency(ps, len(padded), meta.Dt)
	fmt.Printf("dominant frequency: %.3f cycles per time unit\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f (prescribed tau: %.3f)\n", 1.0/freq, meta.Tau)
	}

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	times, speeds, hingeX, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}

	return storage.ExportJSON(os.Stdout, meta, times, speeds, hingeX)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	times, speeds, hingeX, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}
	if len(times) == 0 {
		return fmt.Errorf("no data to export")
	}

	return storage.ExportCSV(os.Stdout, times, speeds, hingeX)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	times, speeds, hingeX, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}

	svg := export.RunToSVG(times, speeds, hingeX, 800, 500)
	if svg == "" {
		return fmt.Errorf("not enough data to render")
	}

	if svgOut == "" {
		fmt.Println(svg)
		return nil
	}
	return os.WriteFile(svgOut, []byte(svg), 0644)
}

func benchSolver(cmd *cobra.Command, args []string) error {
	fmt.Println("benchmarking solver")
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "N\tSTEPS\tTIME\tSTEPS/SEC")

	for _, n := range []int{25, 50, 100, 200} {
		p := scallop.Params{
			ThetaA: 1.0, Theta0: 1.0, N: n, L: 1.0,
			Dt: 0.002, Duration: 0.02, Tau: 1.0, Delta: 0.01, Nfine: 6,
		}
		sim, err := scallop.New(p)
		if err != nil {
			return err
		}

		start := time.Now()
		result, err := sim.Run(cmd.Context(), nil)
		if err != nil {
			return err
		}
		elapsed := time.Since(start)

		stepsPerSec := float64(result.StepsTaken) / elapsed.Seconds()
		fmt.Fprintf(w, "%d\t%d\t%v\t%.1f\n", n, result.StepsTaken, elapsed, stepsPerSec)
	}

	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	param := args[0]
	values := sweep.Span(sweepFrom, sweepTo, sweepSteps)

	fmt.Printf("sweeping %s over [%g, %g] in %d runs...\n\n", param, sweepFrom, sweepTo, len(values))

	points, err := sweep.Run(cmd.Context(), cfg.Params(), param, values)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tNET_DISPLACEMENT\tMEAN_SPEED\tPEAK_SPEED\n", param)

	for _, pt := range points {
		if pt.Err != nil {
			fmt.Fprintf(w, "%.4f\terror: %v\t\t\n", pt.Value, pt.Err)
			continue
		}
		fmt.Fprintf(w, "%.4f\t%.10f\t%.10f\t%.10f\n",
			pt.Value,
			pt.Metrics["net_displacement"],
			pt.Metrics["mean_speed"],
			pt.Metrics["peak_speed"],
		)
	}

	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	sim, err := scallop.New(cfg.Params())
	if err != nil {
		return err
	}

	m := viz.NewModel(sim, frameRate)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
