package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/phmalek/hoomd-blue/internal/config"
	"github.com/phmalek/hoomd-blue/internal/force"
	"github.com/phmalek/hoomd-blue/internal/md"
	"github.com/phmalek/hoomd-blue/internal/metrics"
	"github.com/phmalek/hoomd-blue/internal/sim"
	"github.com/phmalek/hoomd-blue/internal/storage"
	"github.com/phmalek/hoomd-blue/internal/system"
	"github.com/phmalek/hoomd-blue/internal/viz"
)

var (
	dataDir  string
	preset   string
	logLevel string
	logFile  string
	theme    string

	steps    int
	mode     string
	parallel bool
	jsonOut  bool
	noSave   bool
	maxForce float64

	forceName string
	pairTypes string
	rMin      float64
	width     int
	height    int

	outPath string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "hoomd",
		Short:         "force-field coefficient management and force evaluation",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".hoomd", "data directory")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "also write JSON logs to this file")
	rootCmd.PersistentFlags().StringVar(&theme, "theme", "cyberpunk", "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")

	validateCmd := &cobra.Command{
		Use:   "validate [config.yaml]",
		Short: "check every force for complete coefficients",
		Args:  cobra.MaximumNArgs(1),
		RunE:  validateConfig,
	}

	runCmd := &cobra.Command{
		Use:   "run [config.yaml]",
		Short: "evaluate the force field for a number of steps",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runForces,
	}
	runCmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of steps")
	runCmd.Flags().StringVar(&mode, "mode", config.DefaultMode, "execution mode (cpu, gpu, auto)")
	runCmd.Flags().BoolVar(&parallel, "parallel", false, "evaluate forces concurrently")
	runCmd.Flags().BoolVar(&jsonOut, "json", false, "print the result as JSON")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")
	runCmd.Flags().Float64Var(&maxForce, "max-force", 1e4, "per-particle force counted as unstable")

	plotCmd := &cobra.Command{
		Use:   "plot [config.yaml]",
		Short: "plot V(r) of one pair force for one type pair",
		Args:  cobra.MaximumNArgs(1),
		RunE:  plotPair,
	}
	plotCmd.Flags().StringVar(&forceName, "force", "", "pair force name (default: first pair force)")
	plotCmd.Flags().StringVar(&pairTypes, "pair", "", "type pair, e.g. A,B (default: first two types)")
	plotCmd.Flags().Float64Var(&rMin, "rmin", 0.5, "smallest separation")
	plotCmd.Flags().IntVar(&width, "width", 60, "plot width")
	plotCmd.Flags().IntVar(&height, "height", 12, "plot height")

	historyCmd := &cobra.Command{
		Use:   "history [run_id]",
		Short: "plot the stored energy series of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotHistory,
	}
	historyCmd.Flags().IntVar(&height, "height", 12, "plot height")

	inspectCmd := &cobra.Command{
		Use:   "inspect [config.yaml]",
		Short: "browse forces and coefficients interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE:  inspectForces,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [name]",
		Short: "list presets, or write one out as yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}
	presetsCmd.Flags().StringVar(&outPath, "out", "", "file to write the preset to")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	rootCmd.AddCommand(validateCmd, runCmd, plotCmd, historyCmd, inspectCmd, presetsCmd, listCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// loadConfig resolves --preset, a config file argument, or the defaults,
// and returns it with a short name for the run.
func loadConfig(args []string) (*config.Config, string, error) {
	switch {
	case preset != "":
		cfg := config.GetPreset(preset)
		if cfg == nil {
			return nil, "", fmt.Errorf("unknown preset: %s (have %s)", preset, strings.Join(config.ListPresets(), ", "))
		}
		return cfg, preset, nil
	case len(args) == 1:
		cfg, err := config.Load(args[0])
		if err != nil {
			return nil, "", err
		}
		name := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
		return cfg, name, nil
	default:
		return config.DefaultConfig(), "default", nil
	}
}

// setup loads the configuration, installs the logger, and builds the
// system. The returned cleanup closes the log file.
func setup(cmd *cobra.Command, args []string) (*config.Config, string, *config.Built, func() error, error) {
	cfg, name, err := loadConfig(args)
	if err != nil {
		return nil, "", nil, nil, err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if cmd.Flags().Changed("log-file") {
		cfg.LogFile = logFile
	}
	if f := cmd.Flags().Lookup("mode"); f != nil && f.Changed {
		cfg.Mode = mode
	}
	if f := cmd.Flags().Lookup("steps"); f != nil && f.Changed {
		cfg.Run.Steps = steps
	}
	if f := cmd.Flags().Lookup("parallel"); f != nil && f.Changed {
		cfg.Run.Parallel = parallel
	}
	viz.SetTheme(theme)

	logger, cleanup := config.SetupLogger(cfg.LogFile, cfg.Level())
	slog.SetDefault(logger)

	built, err := config.Build(cfg, logger)
	if err != nil {
		cleanup()
		return nil, "", nil, nil, err
	}
	return cfg, name, built, cleanup, nil
}

func validateConfig(cmd *cobra.Command, args []string) error {
	_, _, built, cleanup, err := setup(cmd, args)
	if err != nil {
		return err
	}
	defer cleanup()

	failures := built.Validate()
	fmt.Print(viz.RenderValidation(built.Forces, failures))
	if len(failures) > 0 {
		return fmt.Errorf("%d force(s) incomplete", len(failures))
	}
	return nil
}

func runForces(cmd *cobra.Command, args []string) error {
	cfg, name, built, cleanup, err := setup(cmd, args)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	s := sim.New(built.Sys, built.NList)
	s.AddMetric(metrics.NewEnergy())
	s.AddMetric(metrics.NewEnergyDrift())
	s.AddMetric(metrics.NewForceBalance())
	s.AddMetric(metrics.NewStability(maxForce))
	result, err := s.Run(ctx, sim.Config{Steps: cfg.Run.Steps, Parallel: cfg.Run.Parallel, ValidateState: true})
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	info := storage.RunInfo{
		Name:      name,
		Mode:      built.Sys.ExecMode().String(),
		Particles: built.Sys.ParticleData().N(),
	}
	for _, f := range s.Forces() {
		info.Forces = append(info.Forces, f.Name())
	}

	if jsonOut {
		if err := storage.WriteJSON(os.Stdout, info, result); err != nil {
			return err
		}
	} else {
		fmt.Println(viz.RenderRun(result))
	}

	if !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(info, result)
		if err != nil {
			return err
		}
		slog.Info("run saved", "id", runID, "dir", dataDir)
	}

	if len(result.Errors) > 0 {
		return result.Errors[0]
	}
	return nil
}

func plotPair(cmd *cobra.Command, args []string) error {
	_, _, built, cleanup, err := setup(cmd, args)
	if err != nil {
		return err
	}
	defer cleanup()

	pair, err := findPairForce(built.Forces, forceName)
	if err != nil {
		return err
	}
	key, err := resolvePair(built.Sys, pairTypes)
	if err != nil {
		return err
	}

	out, err := viz.PlotPair(pair, key, rMin, width, height)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

func findPairForce(forces []force.Component, name string) (*force.PairForce, error) {
	for _, f := range forces {
		pair, ok := f.(*force.PairForce)
		if ok && (name == "" || f.Name() == name) {
			return pair, nil
		}
	}
	if name == "" {
		return nil, fmt.Errorf("no pair force configured")
	}
	return nil, fmt.Errorf("no pair force named %s", name)
}

func resolvePair(sys *system.Context, spec string) (md.TypeKey, error) {
	names := sys.TypeNames(md.KindParticle)
	if spec == "" {
		if len(names) == 0 {
			return md.TypeKey{}, fmt.Errorf("system has no particle types")
		}
		b := names[0]
		if len(names) > 1 {
			b = names[1]
		}
		spec = names[0] + "," + b
	}

	parts := strings.Split(spec, ",")
	if len(parts) != 2 {
		return md.TypeKey{}, fmt.Errorf("--pair wants two type names, got %q", spec)
	}
	a, err := sys.ResolveType(md.KindParticle, strings.TrimSpace(parts[0]))
	if err != nil {
		return md.TypeKey{}, err
	}
	b, err := sys.ResolveType(md.KindParticle, strings.TrimSpace(parts[1]))
	if err != nil {
		return md.TypeKey{}, err
	}
	return md.PairKey(a, b), nil
}

func plotHistory(cmd *cobra.Command, args []string) error {
	runID := args[0]
	viz.SetTheme(theme)

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	header, rows, err := st.LoadEnergies(runID)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("%s: no steps recorded", runID)
	}

	for col := 1; col < len(header); col++ {
		if col == 2 {
			continue
		}
		series := make([]float64, len(rows))
		for i, row := range rows {
			series[i] = row[col]
		}
		fmt.Println(asciigraph.Plot(series,
			asciigraph.Height(height),
			asciigraph.Caption(fmt.Sprintf("%s: %s (%s, %d particles)", meta.Name, header[col], meta.Mode, meta.Particles)),
		))
		fmt.Println()
	}
	return nil
}

func inspectForces(cmd *cobra.Command, args []string) error {
	_, _, built, cleanup, err := setup(cmd, args)
	if err != nil {
		return err
	}
	defer cleanup()

	_, err = tea.NewProgram(viz.NewInspector(built.Forces), tea.WithAltScreen()).Run()
	return err
}

func listPresets(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		cfg := config.GetPreset(args[0])
		if cfg == nil {
			return fmt.Errorf("unknown preset: %s", args[0])
		}
		path := outPath
		if path == "" {
			path = args[0] + ".yaml"
		}
		if err := config.Save(path, cfg); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", path)
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tFORCES\tSTEPS")
	for _, name := range config.ListPresets() {
		cfg := config.GetPreset(name)
		types := make([]string, len(cfg.Forces))
		for i, f := range cfg.Forces {
			types[i] = f.Type
		}
		fmt.Fprintf(w, "%s\t%s\t%d\n", name, strings.Join(types, ", "), cfg.Run.Steps)
	}
	return w.Flush()
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
	fmt.Fprintln(w, "ID\tTIME\tMODE\tPARTICLES\tSTEPS\tFINAL ENERGY\tFORCES")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%.6g\t%s\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Mode,
			run.Particles,
			run.StepsTaken,
			run.Metrics["final_energy"],
			strings.Join(run.Forces, ", "),
		)
	}

	return w.Flush()
}
