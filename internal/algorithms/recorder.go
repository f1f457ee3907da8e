package algorithms

import "github.com/24dai03-saifchaus/algonexus/internal/trace"

// Category groups algorithms the way the catalog presents them.
type Category string

const (
	Sorting   Category = "Sorting"
	Searching Category = "Searching"
)

// Info describes a variant for catalogs and help output.
type Info struct {
	ID              string   `json:"id" yaml:"id"`
	Name            string   `json:"name" yaml:"name"`
	Category        Category `json:"category" yaml:"category"`
	Description     string   `json:"description" yaml:"description"`
	TimeComplexity  string   `json:"time_complexity" yaml:"time_complexity"`
	SpaceComplexity string   `json:"space_complexity" yaml:"space_complexity"`
}

// Describer is implemented by variants that carry catalog information.
type Describer interface {
	Info() Info
}

// recorder owns the working buffer of one generator call and snapshots it into
// every emitted step.
type recorder struct {
	work  []int
	steps trace.Trace
}

func newRecorder(input []int, capacity int) *recorder {
	return &recorder{
		work:  trace.Snapshot(input),
		steps: make(trace.Trace, 0, capacity),
	}
}

func (r *recorder) emit(kind trace.Kind, line int, highlights, swaps []int, desc string) {
	if highlights == nil {
		highlights = []int{}
	}
	if swaps == nil {
		swaps = []int{}
	}
	r.steps = append(r.steps, trace.Step{
		Array:       trace.Snapshot(r.work),
		Highlights:  highlights,
		Swaps:       swaps,
		Line:        line,
		Description: desc,
		Kind:        kind,
	})
}

func (r *recorder) emitFound(line, index int, desc string) {
	found := index
	r.steps = append(r.steps, trace.Step{
		Array:       trace.Snapshot(r.work),
		Highlights:  []int{index},
		Swaps:       []int{},
		Found:       &found,
		Line:        line,
		Description: desc,
		Kind:        trace.KindFound,
	})
}
