package metrics

import "github.com/24dai03-saifchaus/algonexus/internal/trace"

// Counter counts steps whose kind is in a fixed set. An empty set counts every
// step.
type Counter struct {
	name  string
	kinds map[trace.Kind]bool
	count int
}

func NewCounter(name string, kinds ...trace.Kind) *Counter {
	set := make(map[trace.Kind]bool, len(kinds))
	for _, k := range kinds {
		set[k] = true
	}
	return &Counter{name: name, kinds: set}
}

// NewComparisons counts element comparisons: adjacent pairs when sorting and
// midpoint probes when searching.
func NewComparisons() *Counter {
	return NewCounter("comparisons", trace.KindCompare, trace.KindMidpoint)
}

func NewSwaps() *Counter { return NewCounter("swaps", trace.KindSwap) }

func NewPasses() *Counter { return NewCounter("passes", trace.KindPass) }

func NewBoundUpdates() *Counter {
	return NewCounter("bound_updates", trace.KindBoundLow, trace.KindBoundHigh)
}

func NewSteps() *Counter { return NewCounter("steps") }

func (c *Counter) Name() string { return c.name }

func (c *Counter) Observe(s trace.Step) {
	if len(c.kinds) == 0 || c.kinds[s.Kind] {
		c.count++
	}
}

func (c *Counter) Value() float64 { return float64(c.count) }

func (c *Counter) Reset() { c.count = 0 }
