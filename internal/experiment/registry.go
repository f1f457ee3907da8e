package experiment

import (
	"fmt"
	"sort"
	"strings"

	"github.com/24dai03-saifchaus/algonexus/internal/algorithms"
	"github.com/24dai03-saifchaus/algonexus/internal/metrics"
	"github.com/24dai03-saifchaus/algonexus/internal/trace"
)

// Registry maps algorithm ids to generator factories. Dispatch never changes
// when a variant is added; new variants are registered.
type Registry struct {
	generators map[string]func() trace.Generator
	metrics    map[string]func() []trace.Metric
}

func NewRegistry() *Registry {
	r := &Registry{
		generators: make(map[string]func() trace.Generator),
		metrics:    make(map[string]func() []trace.Metric),
	}

	r.Register("bubble_sort", func() trace.Generator { return algorithms.NewBubbleSort() })
	r.Register("binary_search", func() trace.Generator { return algorithms.NewBinarySearch() })

	r.metrics["bubble_sort"] = func() []trace.Metric {
		return []trace.Metric{metrics.NewComparisons(), metrics.NewSwaps(), metrics.NewPasses(), metrics.NewSwapRatio()}
	}
	r.metrics["binary_search"] = func() []trace.Metric {
		return []trace.Metric{metrics.NewComparisons(), metrics.NewBoundUpdates()}
	}

	return r
}

// Register adds or replaces the factory for name.
func (r *Registry) Register(name string, factory func() trace.Generator) {
	r.generators[Normalize(name)] = factory
}

// Normalize maps display names such as "Bubble Sort" onto registry ids.
func Normalize(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(name)
}

func (r *Registry) Get(name string) (trace.Generator, error) {
	fn, ok := r.generators[Normalize(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", trace.ErrUnsupportedAlgorithm, name)
	}
	return fn(), nil
}

func (r *Registry) Has(name string) bool {
	_, ok := r.generators[Normalize(name)]
	return ok
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.generators))
	for name := range r.generators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Infos returns catalog entries for every variant that describes itself.
func (r *Registry) Infos() []algorithms.Info {
	infos := make([]algorithms.Info, 0, len(r.generators))
	for _, name := range r.List() {
		if d, ok := r.generators[name]().(algorithms.Describer); ok {
			infos = append(infos, d.Info())
		}
	}
	return infos
}

// Info returns the catalog entry for name.
func (r *Registry) Info(name string) (algorithms.Info, error) {
	gen, err := r.Get(name)
	if err != nil {
		return algorithms.Info{}, err
	}
	if d, ok := gen.(algorithms.Describer); ok {
		return d.Info(), nil
	}
	return algorithms.Info{ID: gen.Name(), Name: gen.Name()}, nil
}

// IsSort reports whether name is a sorting variant.
func (r *Registry) IsSort(name string) bool {
	info, err := r.Info(name)
	return err == nil && info.Category == algorithms.Sorting
}

func (r *Registry) DefaultMetrics(name string) []trace.Metric {
	if fn, ok := r.metrics[Normalize(name)]; ok {
		return append(fn(), metrics.NewSteps())
	}
	return []trace.Metric{metrics.NewSteps()}
}
