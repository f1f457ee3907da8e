package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/24dai03-saifchaus/algonexus/internal/automation"
	"github.com/24dai03-saifchaus/algonexus/internal/cache"
	"github.com/24dai03-saifchaus/algonexus/internal/cache/redis"
	"github.com/24dai03-saifchaus/algonexus/internal/codepanel"
	"github.com/24dai03-saifchaus/algonexus/internal/config"
	"github.com/24dai03-saifchaus/algonexus/internal/experiment"
	"github.com/24dai03-saifchaus/algonexus/internal/server"
	"github.com/24dai03-saifchaus/algonexus/internal/storage"
)

func catalogCommands() []*cobra.Command {
	algorithmsCmd := &cobra.Command{
		Use:   "algorithms",
		Short: "list available algorithms",
		RunE:  listAlgorithms,
	}

	infoCmd := &cobra.Command{
		Use:   "info [algorithm]",
		Short: "describe an algorithm",
		Args:  cobra.ExactArgs(1),
		RunE:  showInfo,
	}
	infoCmd.Flags().StringVar(&language, "lang", config.DefaultLanguage, "listing language")

	codeCmd := &cobra.Command{
		Use:   "code [algorithm]",
		Short: "print the highlighted source listing",
		Args:  cobra.ExactArgs(1),
		RunE:  showCode,
	}
	codeCmd.Flags().StringVar(&language, "lang", config.DefaultLanguage, "listing language")
	codeCmd.Flags().IntVar(&activeLine, "line", 0, "line to mark as active")

	presetsCmd := &cobra.Command{
		Use:   "presets [algorithm]",
		Short: "list available presets for an algorithm",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			algorithm := experiment.Normalize(args[0])
			presets := config.ListPresets(algorithm)
			if len(presets) == 0 {
				fmt.Printf("no presets for algorithm: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", algorithm)
			for _, p := range presets {
				cfg := config.GetPreset(algorithm, p)
				line := fmt.Sprintf("  %-12s [%s]", p, cfg.Input)
				if cfg.Target != "" {
					line += " target=" + cfg.Target
				}
				fmt.Println(line)
			}
			return nil
		},
	}

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a YAML scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	scenarioCmd.Flags().BoolVar(&saveAll, "save-all", false, "save every step, not only those with save_as")

	benchCmd := &cobra.Command{
		Use:   "bench [algorithm]",
		Short: "measure step counts across dataset sizes",
		Args:  cobra.ExactArgs(1),
		RunE:  benchAlgorithm,
	}
	benchCmd.Flags().IntVar(&minSize, "min", 2, "smallest dataset size")
	benchCmd.Flags().IntVar(&maxSize, "max", 32, "largest dataset size")
	benchCmd.Flags().IntVar(&stride, "stride", 6, "size increment")
	benchCmd.Flags().IntVar(&trials, "trials", 50, "random trials at the largest size")
	benchCmd.Flags().Int64Var(&seed, "seed", 42, "random seed (0 for time based)")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the trace API over HTTP",
		RunE:  serve,
	}
	serveCmd.Flags().StringVar(&addr, "addr", config.DefaultServerAddr, "listen address")
	serveCmd.Flags().StringVar(&redisAddr, "redis-addr", "", "redis address for the trace cache (default in-memory)")
	serveCmd.Flags().StringVar(&redisPassword, "redis-password", "", "redis password")
	serveCmd.Flags().IntVar(&redisDB, "redis-db", 0, "redis database")
	serveCmd.Flags().IntVar(&cacheSize, "cache-size", config.DefaultCacheSize, "in-memory cache capacity")
	serveCmd.Flags().IntVar(&maxDataset, "max-dataset", config.DefaultMaxDatasetSize, "largest dataset accepted per request")

	return []*cobra.Command{algorithmsCmd, infoCmd, codeCmd, presetsCmd, scenarioCmd, benchCmd, serveCmd}
}

func listAlgorithms(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tTIME\tSPACE")
	for _, info := range experiment.NewRegistry().Infos() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", info.ID, info.Name, info.Category, info.TimeComplexity, info.SpaceComplexity)
	}
	return w.Flush()
}

func showInfo(cmd *cobra.Command, args []string) error {
	info, err := experiment.NewRegistry().Info(args[0])
	if err != nil {
		return err
	}
	lang, err := codepanel.ParseLanguage(language)
	if err != nil {
		return err
	}
	src, err := codepanel.Snippet(info.ID, lang)
	if err != nil {
		return err
	}

	var md strings.Builder
	fmt.Fprintf(&md, "# %s\n\n", info.Name)
	fmt.Fprintf(&md, "*%s*\n\n%s\n\n", info.Category, info.Description)
	fmt.Fprintf(&md, "| Time | Space |\n|---|---|\n| %s | %s |\n\n", info.TimeComplexity, info.SpaceComplexity)
	fmt.Fprintf(&md, "## Presets\n\n%s\n\n", formatList(config.ListPresets(info.ID)))
	fmt.Fprintf(&md, "## %s\n\n```%s\n%s\n```\n", lang.Label(), lang, src)

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return err
	}
	out, err := r.Render(md.String())
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}

func showCode(cmd *cobra.Command, args []string) error {
	info, err := experiment.NewRegistry().Info(args[0])
	if err != nil {
		return err
	}
	lang, err := codepanel.ParseLanguage(language)
	if err != nil {
		return err
	}
	src, err := codepanel.Snippet(info.ID, lang)
	if err != nil {
		return err
	}

	out, err := codepanel.Render(src, lang, activeLine, codepanel.DefaultOptions())
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("scenario: %s\n", scenario.Name)
	if scenario.Description != "" {
		fmt.Println(scenario.Description)
	}
	fmt.Println()

	results, err := automation.RunScenario(context.Background(), scenario, experiment.NewRegistry(), st, saveAll, log)
	for i, r := range results {
		id := r.RunID
		if id == "" {
			id = "-"
		}
		fmt.Printf("%2d  %-14s  steps=%-4d  run=%s\n    %s\n", i+1, r.Result.Config.Algorithm, len(r.Result.Trace), id, r.Result.Trace.Final().Description)
	}
	return err
}

func benchAlgorithm(cmd *cobra.Command, args []string) error {
	registry := experiment.NewRegistry()
	algorithm := args[0]
	if !registry.Has(algorithm) {
		_, err := registry.Get(algorithm)
		return err
	}

	sweep, err := automation.RunSweep(context.Background(), &automation.SizeSweep{
		Algorithm: algorithm,
		MinSize:   minSize,
		MaxSize:   maxSize,
		Stride:    stride,
		Seed:      seed,
	}, registry, log)
	if err != nil {
		return err
	}

	fmt.Printf("benchmarking %s\n\n", experiment.Normalize(algorithm))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SIZE\tSTEPS\tCOMPARISONS")
	for _, r := range sweep {
		fmt.Fprintf(w, "%d\t%d\t%.0f\n", r.Size, r.Steps, r.Metrics["comparisons"])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	stats, err := automation.RunRandomTrials(context.Background(), &automation.RandomTrialsConfig{
		Algorithm: algorithm,
		Size:      maxSize,
		NumTrials: trials,
		Seed:      seed,
	}, registry)
	if err != nil {
		return err
	}

	fmt.Printf("\n%d random trials at size %d\n\n", trials, maxSize)
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tMIN\tMEAN\tMAX")
	for _, st := range stats {
		fmt.Fprintf(w, "%s\t%.4g\t%.4g\t%.4g\n", st.Metric, st.Min, st.Mean, st.Max)
	}
	return w.Flush()
}

func serve(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, "")
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("addr") || cfg.Server.Addr == "" {
		cfg.Server.Addr = addr
	}
	if flags.Changed("redis-addr") {
		cfg.Server.RedisAddr = redisAddr
	}
	if flags.Changed("redis-password") {
		cfg.Server.RedisPassword = redisPassword
	}
	if flags.Changed("redis-db") {
		cfg.Server.RedisDB = redisDB
	}
	if flags.Changed("cache-size") {
		cfg.Server.CacheSize = cacheSize
	}
	if flags.Changed("max-dataset") {
		cfg.Server.MaxDatasetSize = maxDataset
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store cache.Store
	if cfg.Server.RedisAddr != "" {
		rs := redis.New(cfg.Server.RedisAddr, cfg.Server.RedisPassword, cfg.Server.RedisDB)
		defer rs.Close()
		if err := rs.Ping(ctx); err != nil {
			return fmt.Errorf("redis %s: %w", cfg.Server.RedisAddr, err)
		}
		log.Info("using redis trace cache", "addr", cfg.Server.RedisAddr)
		store = rs
	} else {
		log.Info("using in-memory trace cache", "capacity", cfg.Server.CacheSize)
		store = cache.NewMemory(cfg.Server.CacheSize)
	}

	srv := server.New(experiment.NewRegistry(), store, log, server.WithMaxDatasetSize(cfg.Server.MaxDatasetSize))
	return srv.ListenAndServe(ctx, cfg.Server.Addr)
}
