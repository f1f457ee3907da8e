package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/24dai03-saifchaus/algonexus/internal/codepanel"
	"github.com/24dai03-saifchaus/algonexus/internal/experiment"
	"github.com/24dai03-saifchaus/algonexus/internal/export"
	"github.com/24dai03-saifchaus/algonexus/internal/playback"
	"github.com/24dai03-saifchaus/algonexus/internal/storage"
	"github.com/24dai03-saifchaus/algonexus/internal/trace"
	"github.com/24dai03-saifchaus/algonexus/internal/viz"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func runCommands() []*cobra.Command {
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "print every step of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run progress",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run trace to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run steps to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export one step as an SVG bar chart",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	exportSVGCmd.Flags().IntVar(&stepIndex, "step", -1, "step index (default final step)")
	exportSVGCmd.Flags().IntVar(&width, "width", 640, "image width")
	exportSVGCmd.Flags().IntVar(&height, "height", 320, "image height")

	exportGIFCmd := &cobra.Command{
		Use:   "export-gif [run_id]",
		Short: "render the whole run as an animated GIF",
		Args:  cobra.ExactArgs(1),
		RunE:  exportGIF,
	}
	exportGIFCmd.Flags().StringVarP(&output, "output", "o", "", "output file (default <run_id>.gif)")
	exportGIFCmd.Flags().IntVar(&width, "width", 640, "image width")
	exportGIFCmd.Flags().IntVar(&height, "height", 320, "image height")

	return []*cobra.Command{listCmd, showCmd, plotCmd, exportCmd, exportJSONCmd, exportCSVCmd, exportSVGCmd, exportGIFCmd}
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
	fmt.Fprintln(w, "ID\tALGORITHM\tTIME\tSIZE\tTARGET\tSTEPS")

	for _, run := range runs {
		tgt := "-"
		if run.Target != nil {
			tgt = fmt.Sprint(*run.Target)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%d\n",
			run.ID,
			run.Algorithm,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			len(run.Input),
			tgt,
			run.Steps,
		)
	}

	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, trace.Trace, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	tr, err := st.LoadTrace(runID)
	if err != nil {
		return nil, nil, err
	}
	if len(tr) == 0 {
		return nil, nil, fmt.Errorf("%s: %w", runID, trace.ErrEmptyTrace)
	}
	return meta, tr, nil
}

func showRun(cmd *cobra.Command, args []string) error {
	meta, tr, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Println(meta.Describe())
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tKIND\tLINE\tARRAY\tDESCRIPTION")
	for i, s := range tr {
		fmt.Fprintf(w, "%d\t%s\t%d\t%v\t%s\n", i+1, s.Kind, s.Line, s.Array, s.Description)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, tr, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("algorithm: %s\n", meta.Algorithm)
	fmt.Printf("steps: %d\n\n", len(tr))

	comparisons := export.CumulativeComparisons(tr)
	fmt.Println(asciigraph.Plot(comparisons,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("comparisons vs step"),
	))
	fmt.Println()

	// Active line per step shows how execution moves through the listing
	lines := make([]float64, len(tr))
	for i, s := range tr {
		lines[i] = float64(s.Line)
	}
	fmt.Println(asciigraph.Plot(lines,
		asciigraph.Height(8),
		asciigraph.Width(80),
		asciigraph.Caption("code line vs step"),
	))

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, tr, err := loadRun(args[0])
	if err != nil {
		return err
	}

	result := &experiment.Result{Config: meta.Config(), Trace: tr, Metrics: meta.Metrics}
	if output == "" {
		return storage.ExportJSONTo(os.Stdout, result)
	}
	if err := storage.ExportJSON(output, result); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", output)
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, tr, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return withOutput(output, func(w io.Writer) error {
		return storage.WriteCSV(w, tr)
	})
}

func exportSVG(cmd *cobra.Command, args []string) error {
	_, tr, err := loadRun(args[0])
	if err != nil {
		return err
	}

	i := stepIndex
	if i < 0 {
		i = tr.LastIndex()
	}
	if i >= len(tr) {
		return fmt.Errorf("step %d of %d: %w", i, len(tr), trace.ErrIndexOutOfRange)
	}

	return withOutput(output, func(w io.Writer) error {
		_, err := io.WriteString(w, export.StepToSVG(tr[i], width, height))
		return err
	})
}

func exportGIF(cmd *cobra.Command, args []string) error {
	runID := args[0]
	_, tr, err := loadRun(runID)
	if err != nil {
		return err
	}

	path := output
	if path == "" {
		path = runID + ".gif"
	}
	opts := export.DefaultGIFOptions()
	opts.Width, opts.Height = width, height

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := export.TraceToGIF(f, tr, opts); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d frames)\n", path, len(tr))
	return nil
}

// withOutput runs write against path, or stdout when path is empty.
func withOutput(path string, write func(io.Writer) error) error {
	if path == "" {
		return write(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func playTrace(cmd *cobra.Command, args []string) error {
	registry := experiment.NewRegistry()

	var (
		cfgAlgorithm string
		tr           trace.Trace
	)
	if len(args) > 0 {
		meta, saved, err := loadRun(args[0])
		switch {
		case err == nil:
			cfgAlgorithm, tr = meta.Algorithm, saved
		case errors.Is(err, storage.ErrRunNotFound):
			cfgAlgorithm = args[0]
		default:
			return err
		}
	}

	cfg, err := resolveConfig(cmd, cfgAlgorithm)
	if err != nil {
		return err
	}
	if tr == nil {
		res, err := experiment.Generate(context.Background(), registry, requestFor(registry, cfg))
		if err != nil {
			return err
		}
		tr = res.Trace
	}

	info, err := registry.Info(cfg.Algorithm)
	if err != nil {
		return err
	}
	delay := time.Duration(cfg.DelayMS) * time.Millisecond
	if headless {
		return playHeadless(info.Name, tr, delay)
	}

	lang, err := codepanel.ParseLanguage(cfg.Language)
	if err != nil {
		return err
	}

	return viz.Play(info, tr,
		viz.WithLanguage(lang),
		viz.WithTheme(cfg.Theme),
		viz.WithDelay(delay),
		viz.WithGIFDir(filepath.Join(cfg.DataDir, "gifs")),
	)
}

// playHeadless streams steps to stdout at the playback delay until the trace
// ends or the process is interrupted.
func playHeadless(name string, tr trace.Trace, delay time.Duration) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	p := playback.NewPlayer()
	p.Load(tr)
	p.SetDelay(delay)

	printStep := func(i int, s trace.Step) {
		fmt.Printf("[%d/%d] %-10s %v  %s\n", i+1, len(tr), s.Kind, s.Array, s.Description)
	}
	fmt.Printf("%s (%d steps, %v per step)\n", name, len(tr), p.Delay())
	printStep(0, tr[0])

	err := p.Run(ctx, func(i int, s trace.Step, ev playback.Event) {
		printStep(i, s)
		switch ev {
		case playback.EventCelebrate:
			fmt.Println("complete!")
		case playback.EventFinished:
			fmt.Println("finished")
		}
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func formatList(items []string) string {
	return strings.Join(items, ", ")
}
