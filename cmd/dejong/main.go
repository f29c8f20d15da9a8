package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/san-kum/dejong/internal/config"
	"github.com/san-kum/dejong/internal/logging"
	"github.com/san-kum/dejong/internal/metrics"
	"github.com/san-kum/dejong/internal/pacing"
	"github.com/san-kum/dejong/internal/tui"
	"github.com/san-kum/dejong/internal/viz"
)

var (
	configFile  string
	preset      string
	width       int
	height      int
	quantum     int
	seed        int64
	palette     string
	saveDir     string
	saveFormat  string
	logFile     string
	logLevel    string
	metricsFile string
	watch       bool
)

// main registers the commands and runs the explorer when no subcommand is
// given. It exits with status 1 if the command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:          "dejong",
		Short:        "progressive de Jong attractor explorer",
		SilenceUsage: true,
		RunE:         runExplore,
	}
	addExploreFlags(rootCmd)

	exploreCmd := &cobra.Command{
		Use:   "explore",
		Short: "open the interactive explorer",
		RunE:  runExplore,
	}
	addExploreFlags(exploreCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets",
		RunE:  listPresets,
	}

	pacingCmd := &cobra.Command{
		Use:   "pacing",
		Short: "plot the refresh rate against accumulated samples",
		RunE:  plotPacing,
	}

	configCmd := &cobra.Command{
		Use:   "config [path]",
		Short: "write a config file to start from",
		Args:  cobra.ExactArgs(1),
		RunE:  writeConfig,
	}
	configCmd.Flags().StringVar(&preset, "preset", "", "start from a preset")

	rootCmd.AddCommand(exploreCmd, presetsCmd, pacingCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addExploreFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&preset, "preset", "", "use preset configuration")
	f.IntVar(&width, "width", config.DefaultWidth, "render width in pixels")
	f.IntVar(&height, "height", config.DefaultHeight, "render height in pixels")
	f.IntVar(&quantum, "quantum", config.DefaultQuantum, "samples per step")
	f.Int64Var(&seed, "seed", 1, "random seed")
	f.StringVar(&palette, "palette", "", "colour palette ("+strings.Join(viz.PaletteNames(), ", ")+")")
	f.StringVar(&saveDir, "out", ".", "directory for saved images")
	f.StringVar(&saveFormat, "format", "png", "image format for saves (png, bmp, tif, tiff)")
	f.StringVar(&logFile, "log-file", "", "append logs to this file")
	f.StringVar(&logLevel, "log-level", "info", "log level")
	f.StringVar(&metricsFile, "metrics-file", "", "write prometheus metrics here on exit")
	f.BoolVar(&watch, "watch", false, "reload --config when it changes")
}

// resolveConfig layers preset, config file and explicit flags, in that
// order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("%w: %s (available: %v)", config.ErrUnknownPreset, preset, config.ListPresets())
		}
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}
	if flags.Changed("quantum") {
		cfg.Quantum = quantum
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	return cfg, nil
}

func runExplore(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	log, closer, err := logging.Open(logFile, logLevel)
	if err != nil {
		return err
	}
	defer closer.Close()

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	var prom *metrics.PrometheusRecorder
	if metricsFile != "" {
		prom = metrics.NewPrometheusRecorder(prometheus.NewRegistry())
		recorder = prom
	}

	model, err := tui.New(tui.Options{
		Config:     cfg,
		Palette:    palette,
		SaveDir:    saveDir,
		SaveFormat: saveFormat,
		Recorder:   recorder,
		Logger:     log,
	})
	if err != nil {
		log.Error().Err(err).Msg("cannot create explorer")
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())

	if watch && configFile != "" {
		stop, err := startWatcher(p, log)
		if err != nil {
			return err
		}
		defer stop()
	}

	log.Info().Int("width", cfg.Width).Int("height", cfg.Height).Int("quantum", cfg.Quantum).Msg("explorer started")
	_, runErr := p.Run()
	model.Scheduler().Close()

	if prom != nil {
		if err := prom.WriteTextfile(metricsFile); err != nil {
			log.Error().Err(err).Str("path", metricsFile).Msg("metrics dump failed")
		}
	}
	return runErr
}

func startWatcher(p *tea.Program, log zerolog.Logger) (func(), error) {
	w, err := config.NewWatcher(configFile, log)
	if err != nil {
		return nil, err
	}
	w.OnReload = func(cfg *config.Config) { p.Send(tui.ReloadMsg(cfg)) }
	w.OnError = func(err error) { p.Send(tui.ReloadErrorMsg(err)) }

	ctx, cancel := context.WithCancel(context.Background())
	if err := w.Start(ctx); err != nil {
		cancel()
		w.Close()
		return nil, err
	}
	return func() {
		cancel()
		w.Close()
	}, nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tA\tB\tC\tD\tLYAPUNOV\tCOLOURS")
	for _, name := range config.ListPresets() {
		cfg := config.Presets[name]
		fmt.Fprintf(w, "%s\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t%s on %s\n",
			name, cfg.Map.A, cfg.Map.B, cfg.Map.C, cfg.Map.D,
			cfg.Map.Params().Lyapunov(20000),
			cfg.Look.Foreground, cfg.Look.Background)
	}
	return w.Flush()
}

func plotPacing(cmd *cobra.Command, args []string) error {
	const samples = 80
	rates := make([]float64, samples)
	for i := range rates {
		// 10^3 .. 10^11 samples
		it := math.Pow(10, 3+8*float64(i)/float64(samples-1))
		rates[i] = pacing.TargetRate(uint64(it))
	}

	fmt.Println(asciigraph.Plot(rates,
		asciigraph.Height(12),
		asciigraph.Width(samples),
		asciigraph.Caption("refresh rate (fps) over 1e3 .. 1e11 samples"),
	))
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SAMPLES\tFPS\tINTERVAL")
	for exp := 3; exp <= 11; exp++ {
		it := uint64(math.Pow(10, float64(exp)))
		fmt.Fprintf(w, "1e%d\t%.2f\t%s\n", exp, pacing.TargetRate(it), pacing.Interval(it))
	}
	return w.Flush()
}

func writeConfig(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return fmt.Errorf("%w: %s", config.ErrUnknownPreset, preset)
		}
	}
	if err := config.Save(args[0], cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", args[0])
	return nil
}
