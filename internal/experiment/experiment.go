package experiment

import (
	"context"
	"fmt"
	"time"

	"github.com/24dai03-saifchaus/algonexus/internal/trace"
	"golang.org/x/sync/errgroup"
)

// Config is one generation request.
type Config struct {
	Algorithm string       `json:"algorithm" yaml:"algorithm"`
	Input     []int        `json:"input" yaml:"input"`
	Target    trace.Target `json:"target" yaml:"target"`
}

type Result struct {
	Config  Config
	Trace   trace.Trace
	Metrics map[string]float64
	Elapsed time.Duration
}

type Experiment struct {
	cfg       Config
	generator trace.Generator
	metrics   []trace.Metric
	observers []trace.Observer
	sort      bool
}

func New(cfg Config) *Experiment {
	return &Experiment{cfg: cfg}
}

// Setup binds the generator and metrics. Sorting requests reject empty
// datasets before the generator runs.
func (e *Experiment) Setup(gen trace.Generator, rejectEmpty bool, metrics ...trace.Metric) error {
	if gen == nil {
		return fmt.Errorf("experiment: nil generator")
	}
	e.generator = gen
	e.sort = rejectEmpty
	e.metrics = append(e.metrics[:0], metrics...)
	return nil
}

func (e *Experiment) AddObserver(o trace.Observer) { e.observers = append(e.observers, o) }

// Run generates the full trace synchronously, then feeds every step to the
// metrics and observers.
func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	if e.generator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if e.sort && len(e.cfg.Input) == 0 {
		return nil, fmt.Errorf("%s: %w", e.generator.Name(), trace.ErrEmptyDataset)
	}

	start := time.Now()
	tr, err := e.generator.Generate(e.cfg.Input, e.cfg.Target)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", e.generator.Name(), err)
	}
	elapsed := time.Since(start)

	for _, m := range e.metrics {
		m.Reset()
	}
	for i, s := range tr {
		for _, m := range e.metrics {
			m.Observe(s)
		}
		for _, o := range e.observers {
			o.OnStep(i, s)
		}
	}

	result := &Result{
		Config:  e.cfg,
		Trace:   tr,
		Metrics: make(map[string]float64, len(e.metrics)),
		Elapsed: elapsed,
	}
	for _, m := range e.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, nil
}

// Generate resolves cfg.Algorithm against the registry and runs it with the
// default metrics.
func Generate(ctx context.Context, r *Registry, cfg Config) (*Result, error) {
	gen, err := r.Get(cfg.Algorithm)
	if err != nil {
		return nil, err
	}
	cfg.Algorithm = gen.Name()

	exp := New(cfg)
	if err := exp.Setup(gen, r.IsSort(cfg.Algorithm), r.DefaultMetrics(cfg.Algorithm)...); err != nil {
		return nil, err
	}
	return exp.Run(ctx)
}

// RunBatch generates independent requests concurrently. Results keep the
// order of cfgs; the first error cancels the remaining requests.
func RunBatch(ctx context.Context, r *Registry, cfgs []Config) ([]*Result, error) {
	results := make([]*Result, len(cfgs))

	g, ctx := errgroup.WithContext(ctx)
	for i, cfg := range cfgs {
		g.Go(func() error {
			res, err := Generate(ctx, r, cfg)
			if err != nil {
				return fmt.Errorf("request %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
