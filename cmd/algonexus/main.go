package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/24dai03-saifchaus/algonexus/internal/cache"
	"github.com/24dai03-saifchaus/algonexus/internal/config"
	"github.com/24dai03-saifchaus/algonexus/internal/experiment"
	"github.com/24dai03-saifchaus/algonexus/internal/logging"
	"github.com/24dai03-saifchaus/algonexus/internal/storage"
	"github.com/24dai03-saifchaus/algonexus/internal/viz"
)

var (
	dataDir    string
	configFile string
	logLevel   string
	preset     string
	// Request
	dataset string
	target  string
	// Player
	delayMS  int
	language string
	theme    string
	headless bool
	// Export
	output    string
	stepIndex int
	width     int
	height    int
	// Code listing
	activeLine int
	// Bench
	minSize int
	maxSize int
	stride  int
	trials  int
	seed    int64
	// Scenario
	saveAll bool
	// Serve
	addr          string
	redisAddr     string
	redisPassword string
	redisDB       int
	cacheSize     int
	maxDataset    int
)

var log *slog.Logger

func main() {
	rootCmd := &cobra.Command{
		Use:           "algonexus",
		Short:         "step-by-step algorithm visualizer",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logging.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			log = logging.New(level)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Interactive mode only makes sense on a terminal
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return cmd.Help()
			}
			cfg, err := resolveConfig(cmd, "")
			if err != nil {
				return err
			}
			return viz.RunInteractive(cfg, experiment.NewRegistry(), cache.NewMemory(cfg.Server.CacheSize))
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	addRequestFlags(rootCmd)
	addPlayerFlags(rootCmd)

	runCmd := &cobra.Command{
		Use:   "run [algorithm]",
		Short: "generate a trace and save it",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTrace,
	}
	addRequestFlags(runCmd)

	playCmd := &cobra.Command{
		Use:   "play [algorithm|run_id]",
		Short: "play a trace in the terminal player",
		Args:  cobra.MaximumNArgs(1),
		RunE:  playTrace,
	}
	addRequestFlags(playCmd)
	addPlayerFlags(playCmd)
	playCmd.Flags().BoolVar(&headless, "headless", false, "print steps as they play instead of opening the player")

	rootCmd.AddCommand(runCmd, playCmd)
	rootCmd.AddCommand(runCommands()...)
	rootCmd.AddCommand(catalogCommands()...)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addRequestFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&dataset, "input", "", "comma separated dataset")
	cmd.Flags().StringVar(&target, "target", "", "search target")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

func addPlayerFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&delayMS, "delay", config.DefaultDelayMS, "autoplay delay in milliseconds")
	cmd.Flags().StringVar(&language, "lang", config.DefaultLanguage, "code panel language (cpp, java, python)")
	cmd.Flags().StringVar(&theme, "theme", config.DefaultTheme, "color theme")
}

// resolveConfig layers the config file, then the preset, then any flag the
// user set explicitly. algorithm, when non-empty, overrides the configured
// algorithm.
func resolveConfig(cmd *cobra.Command, algorithm string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if algorithm != "" {
		cfg.Algorithm = algorithm
	}

	if preset != "" {
		p := config.GetPreset(experiment.Normalize(cfg.Algorithm), preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(experiment.Normalize(cfg.Algorithm)))
		}
		cfg.Input = p.Input
		cfg.Target = p.Target
	}

	flags := cmd.Flags()
	if flags.Changed("input") {
		cfg.Input = dataset
	}
	if flags.Changed("target") {
		cfg.Target = target
	}
	if flags.Changed("delay") {
		cfg.DelayMS = config.ClampDelay(delayMS)
	}
	if flags.Changed("lang") {
		cfg.Language = language
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if cmd.Flag("data").Changed || cfg.DataDir == "" {
		cfg.DataDir = dataDir
	}
	return cfg, nil
}

// requestFor builds the generation request, dropping the target for sorts.
func requestFor(registry *experiment.Registry, cfg *config.Config) experiment.Config {
	req := experiment.Config{Algorithm: cfg.Algorithm, Input: cfg.Dataset()}
	if !registry.IsSort(cfg.Algorithm) {
		req.Target = cfg.SearchTarget()
	}
	return req
}

func runTrace(cmd *cobra.Command, args []string) error {
	algorithm := ""
	if len(args) > 0 {
		algorithm = args[0]
	}
	cfg, err := resolveConfig(cmd, algorithm)
	if err != nil {
		return err
	}

	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	log.Debug("generating trace", "algorithm", cfg.Algorithm, "input", cfg.Input)

	start := time.Now()
	result, err := experiment.Generate(context.Background(), registry, requestFor(registry, cfg))
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", len(result.Trace))
	fmt.Printf("outcome: %s\n", result.Trace.Final().Description)
	fmt.Println("\nmetrics:")
	printMetrics(result.Metrics)

	return nil
}

func printMetrics(metrics map[string]float64) {
	names := make([]string, 0, len(metrics))
	for name := range metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.4g\n", name, metrics[name])
	}
}
