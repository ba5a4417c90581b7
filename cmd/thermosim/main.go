package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/thermosim/internal/config"
	"github.com/san-kum/thermosim/internal/control"
	"github.com/san-kum/thermosim/internal/experiment"
	"github.com/san-kum/thermosim/internal/export"
	"github.com/san-kum/thermosim/internal/optim"
	"github.com/san-kum/thermosim/internal/thermo"
	"github.com/san-kum/thermosim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	configFile  string
	preset      string
	seed        int64
	temperature float64
	frameRate   int
	theme       string
	logFile     string
	// Feedback control
	controller string
	target     float64
	// Headless output
	runs    int
	csvOut  bool
	jsonOut bool
	svgOut  bool
	// Tuning
	kpRange []float64
	kiRange []float64
	kdRange []float64
	// Snapshot
	seconds   float64
	input     string
	cellsWide int
	cellsHigh int
	scale     float64
	layer     string
)

// main registers the thermosim commands and runs the live view when no subcommand is given.
// It exits the process with status 1 if command execution returns an error.
func main() {
	rootCmd := &cobra.Command{
		Use:          "thermosim",
		Short:        "water heating and cooling simulation",
		SilenceUsage: true,
		RunE:         runLive,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "random seed (0 picks one from the clock)")
	rootCmd.PersistentFlags().Float64Var(&temperature, "temp", config.DefaultTemperature, "initial temperature (°C)")
	rootCmd.PersistentFlags().StringVar(&controller, "controller", "", "feedback controller (thermostat, pid)")
	rootCmd.PersistentFlags().Float64Var(&target, "target", 60, "controller target temperature (°C)")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive simulation in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	for _, cmd := range []*cobra.Command{rootCmd, liveCmd} {
		cmd.Flags().StringVar(&preset, "preset", "", "start from a preset")
		cmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")
		cmd.Flags().StringVar(&theme, "theme", config.DefaultTheme, "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")
		cmd.Flags().StringVar(&logFile, "log", "", "write session log to file")
	}

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "run a scripted session headless and print the trace",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runHeadless,
	}
	runCmd.Flags().IntVar(&runs, "runs", 1, "repeat over consecutive seeds and average the metrics")
	runCmd.Flags().BoolVar(&csvOut, "csv", false, "write the trace as CSV to stdout")
	runCmd.Flags().BoolVar(&jsonOut, "json", false, "write the trace as JSON to stdout")
	runCmd.Flags().BoolVar(&svgOut, "svg", false, "write the temperature trace as SVG to stdout")

	tuneCmd := &cobra.Command{
		Use:   "tune [preset]",
		Short: "grid search controller gains for the lowest tracking error",
		Args:  cobra.MaximumNArgs(1),
		RunE:  tuneController,
	}
	tuneCmd.Flags().Float64SliceVar(&kpRange, "kp", []float64{0.5, 1, 2, 4}, "proportional gains to try")
	tuneCmd.Flags().Float64SliceVar(&kiRange, "ki", []float64{0, 0.02, 0.05}, "integral gains to try")
	tuneCmd.Flags().Float64SliceVar(&kdRange, "kd", []float64{0, 0.05}, "derivative gains to try")

	propsCmd := &cobra.Command{
		Use:   "props [temperature]",
		Short: "print derived properties at a temperature",
		Args:  cobra.MaximumNArgs(1),
		RunE:  showProperties,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "simulate and write one frame as SVG to stdout",
		Args:  cobra.NoArgs,
		RunE:  snapshot,
	}
	snapshotCmd.Flags().Float64Var(&seconds, "seconds", 5, "simulated seconds before the snapshot")
	snapshotCmd.Flags().StringVar(&input, "input", "idle", "input held while simulating (idle, heat, cool)")
	snapshotCmd.Flags().IntVar(&cellsWide, "width", 40, "vessel width in cells")
	snapshotCmd.Flags().IntVar(&cellsHigh, "height", 16, "vessel height in cells")
	snapshotCmd.Flags().Float64Var(&scale, "scale", 4, "pixels per sub-pixel")
	snapshotCmd.Flags().StringVar(&layer, "canvas", "", "write one raw canvas instead of the composed frame (bubbles, steam)")

	rootCmd.AddCommand(liveCmd, runCmd, tuneCmd, propsCmd, presetsCmd, snapshotCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves the session config: preset or file, then flags that were set.
func loadConfig(cmd *cobra.Command, presetName string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if presetName != "" {
		cfg = config.GetPreset(presetName)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", presetName, config.ListPresets())
		}
	}

	// config file overrides preset
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("temp") {
		cfg.InitialTemperature = temperature
	}
	if flags.Changed("controller") {
		cfg.Controller.Type = controller
		if cfg.Controller.Kp == 0 {
			cfg.Controller.Kp = 1
		}
		if cfg.Controller.Deadband == 0 {
			cfg.Controller.Deadband = 0.5
		}
	}
	if flags.Changed("target") {
		cfg.Controller.Target = target
	}
	if flags.Lookup("fps") != nil && flags.Changed("fps") {
		cfg.FPS = frameRate
	}
	if flags.Lookup("theme") != nil && flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Lookup("log") != nil && flags.Changed("log") {
		cfg.LogFile = logFile
	}

	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newSimulator(cfg *config.Config) (*thermo.Simulator, error) {
	return thermo.New(thermo.DefaultConstants(), cfg.SimConfig(), rand.New(rand.NewSource(cfg.Seed)))
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, preset)
	if err != nil {
		return err
	}

	// the TUI owns the terminal, so logs go to a file or nowhere
	if cfg.LogFile != "" {
		f, err := tea.LogToFile(cfg.LogFile, "thermosim")
		if err != nil {
			return fmt.Errorf("open log: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	sim, err := newSimulator(cfg)
	if err != nil {
		return err
	}
	viz.SetTheme(cfg.Theme)

	ctrl, err := experiment.NewRegistry().GetController(cfg.Controller)
	if err != nil {
		return err
	}

	m := viz.NewModel(sim, cfg.FPS).WithController(ctrl)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func runHeadless(cmd *cobra.Command, args []string) error {
	presetName := ""
	if len(args) > 0 {
		presetName = args[0]
	}
	cfg, err := loadConfig(cmd, presetName)
	if err != nil {
		return err
	}
	name := presetName
	if name == "" {
		name = "default"
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	registry := experiment.NewRegistry()
	if runs > 1 {
		return runEnsemble(ctx, cfg, registry, name)
	}

	exp := experiment.New(cfg)
	if err := exp.Setup(registry, registry.DefaultMetrics(cfg.Controller)); err != nil {
		return err
	}

	start := time.Now()
	result, err := exp.Run(ctx)
	if err != nil {
		if result != nil && ctx.Err() != nil {
			log.Printf("interrupted after %d steps", result.Steps)
		}
		return err
	}
	elapsed := time.Since(start)

	switch {
	case csvOut:
		return export.TraceCSV(os.Stdout, result)
	case jsonOut:
		return export.TraceJSON(os.Stdout, name, cfg.Controller.Type, cfg.Step, result)
	case svgOut:
		fmt.Println(export.TraceToSVG(result.Times, result.Temperatures, thermo.DefaultConstants(), 800, 400, "#ff6644"))
		return nil
	}

	fmt.Printf("session: %s (seed %d)\n", name, cfg.Seed)
	if ctrl := exp.Controller(); ctrl != nil {
		fmt.Printf("controller: %s -> %.1f °C%s\n", cfg.Controller.Type, ctrl.Target(), formatParams(ctrl))
	}
	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("steps: %d (%.1fs simulated)\n", result.Steps, result.Times[len(result.Times)-1])
	fmt.Printf("final: %.2f °C\n\n", result.Temperatures[len(result.Temperatures)-1])

	graph := asciigraph.Plot(result.Temperatures,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("temperature (°C) vs time"),
	)
	fmt.Println(graph)
	fmt.Println()

	printTransitions(result)

	fmt.Println("\nmetrics:")
	return printMetrics(result.Metrics)
}

func runEnsemble(ctx context.Context, cfg *config.Config, registry *experiment.Registry, name string) error {
	start := time.Now()
	results, err := experiment.NewEnsemble(cfg, registry, runs).Run(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("session: %s x%d (seeds %d..%d)\n", name, runs, cfg.Seed, cfg.Seed+int64(runs-1))
	fmt.Printf("completed in %v\n", time.Since(start))
	fmt.Println("\nmean metrics:")
	return printMetrics(experiment.MeanMetrics(results))
}

func printMetrics(values map[string]float64) error {
	names := make([]string, 0, len(values))
	for n := range values {
		names = append(names, n)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, n := range names {
		fmt.Fprintf(w, "  %s\t%.6f\n", n, values[n])
	}
	return w.Flush()
}

// formatParams lists a tunable controller's parameters, sorted by name.
func formatParams(ctrl control.Controller) string {
	t, ok := ctrl.(control.Tunable)
	if !ok {
		return ""
	}
	params := t.GetParams()
	names := make([]string, 0, len(params))
	for n := range params {
		if n != "target" {
			names = append(names, n)
		}
	}
	sort.Strings(names)

	var b strings.Builder
	for _, n := range names {
		fmt.Fprintf(&b, " %s=%g", n, params[n])
	}
	return b.String()
}

func printTransitions(result *thermo.Result) {
	fmt.Println("regimes:")
	for i, r := range result.Regimes {
		if i == 0 || r != result.Regimes[i-1] {
			fmt.Printf("  %6.2fs  %-8s %7.2f °C\n", result.Times[i], r, result.Temperatures[i])
		}
	}
}

func tuneController(cmd *cobra.Command, args []string) error {
	name := "hold"
	if len(args) > 0 {
		name = args[0]
	}
	cfg, err := loadConfig(cmd, name)
	if err != nil {
		return err
	}
	if !cfg.Controller.Enabled() {
		cfg.Controller = config.ControllerConfig{Type: "pid", Target: target, Deadband: 0.5}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	registry := experiment.NewRegistry()
	build := func(params map[string]float64) (*experiment.Experiment, error) {
		trial := *cfg
		trial.Controller.Type = "pid"

		exp := experiment.New(&trial)
		if err := exp.Setup(registry, registry.DefaultMetrics(trial.Controller)); err != nil {
			return nil, err
		}
		if err := exp.Tune(params); err != nil {
			return nil, err
		}
		return exp, nil
	}

	search := optim.NewGridSearch([]string{"kp", "ki", "kd"}, [][]float64{kpRange, kiRange, kdRange})
	fmt.Printf("tuning %s toward %.1f °C over %d combinations...\n\n", name, cfg.Controller.Target, len(search.Combinations()))

	best, trials, err := search.Search(ctx, build, "tracking_error")
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KP\tKI\tKD\tTRACKING ERROR")
	for _, tr := range trials {
		fmt.Fprintf(w, "%g\t%g\t%g\t%.4f\n", tr.Params["kp"], tr.Params["ki"], tr.Params["kd"], tr.Value)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nbest: kp=%g ki=%g kd=%g (%.4f °C)\n", best.Params["kp"], best.Params["ki"], best.Params["kd"], best.Value)
	return nil
}

func showProperties(cmd *cobra.Command, args []string) error {
	t := temperature
	if len(args) > 0 {
		v, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid temperature %q: %w", args[0], err)
		}
		t = v
	}

	c := thermo.DefaultConstants()
	t = c.Clamp(t)
	vis := thermo.RenderPhase(t, c)
	readings := thermo.Properties(t, vis.Volume, c)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Regime\t%s\n", vis.Regime)
	for _, row := range readings.Rows() {
		fmt.Fprintf(w, "%s\t%s\n", row.Label, row.Value)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	freeze, boil := thermo.Warnings(t, c)
	if freeze {
		fmt.Println("\nwarning: freezing, water expands as it turns to ice")
	}
	if boil {
		fmt.Println("\nwarning: boiling, rapid vaporization")
	}
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSTART\tDURATION\tSCHEDULE")
	for _, name := range config.ListPresets() {
		cfg := config.GetPreset(name)
		steps := make([]string, len(cfg.Schedule))
		total := 0.0
		for i, seg := range cfg.Schedule {
			steps[i] = fmt.Sprintf("%s %gs", seg.Input, seg.Duration)
			total += seg.Duration
		}
		fmt.Fprintf(w, "%s\t%.1f °C\t%.1fs\t%s\n", name, cfg.InitialTemperature, total, strings.Join(steps, ", "))
	}
	return w.Flush()
}

func snapshot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, "")
	if err != nil {
		return err
	}
	in, ok := thermo.ParseInput(input)
	if !ok {
		return fmt.Errorf("unknown input %q (idle, heat, cool)", input)
	}
	if seconds < 0 {
		return fmt.Errorf("seconds must not be negative, got %f", seconds)
	}

	sim, err := newSimulator(cfg)
	if err != nil {
		return err
	}
	vessel := viz.NewVessel(cellsWide, cellsHigh, max(cellsHigh/4, 1))
	sim.SetInput(in)

	f := sim.Advance(0)
	for remaining := seconds; remaining > 1e-9; remaining -= cfg.Step {
		sim.Resize(vessel.Sizes(f.Visual))
		f = sim.Advance(min(cfg.Step, remaining))
	}

	vessel.Draw(f, sim.Constants())
	if layer != "" {
		svg, err := export.LayerToSVG(vessel, layer, scale)
		if err != nil {
			return err
		}
		fmt.Println(svg)
		return nil
	}
	fmt.Println(export.SnapshotToSVG(f, vessel, scale))
	return nil
}
