package trace

import (
	"strconv"
	"strings"
)

// Kind names the role a step plays in its algorithm.
type Kind string

const (
	KindInit      Kind = "init"
	KindCompare   Kind = "compare"
	KindSwap      Kind = "swap"
	KindNoSwap    Kind = "no_swap"
	KindPass      Kind = "pass"
	KindComplete  Kind = "complete"
	KindMidpoint  Kind = "midpoint"
	KindFound     Kind = "found"
	KindBoundLow  Kind = "bound_low"
	KindBoundHigh Kind = "bound_high"
	KindNotFound  Kind = "not_found"
)

// NoLine marks a step that maps to no specific source line.
const NoLine = 0

// Step is one discrete, narrated moment of an algorithm run.
type Step struct {
	Array       []int  `json:"array" yaml:"array"`
	Highlights  []int  `json:"highlights" yaml:"highlights"`
	Swaps       []int  `json:"swaps" yaml:"swaps"`
	Found       *int   `json:"found,omitempty" yaml:"found,omitempty"`
	Line        int    `json:"line" yaml:"line"`
	Description string `json:"description" yaml:"description"`
	Kind        Kind   `json:"kind" yaml:"kind"`
}

// Clone returns a deep copy of the step.
func (s Step) Clone() Step {
	c := s
	c.Array = Snapshot(s.Array)
	c.Highlights = Snapshot(s.Highlights)
	c.Swaps = Snapshot(s.Swaps)
	if s.Found != nil {
		f := *s.Found
		c.Found = &f
	}
	return c
}

// HasFound reports whether the step located a search target.
func (s Step) HasFound() bool { return s.Found != nil }

// FoundIndex returns the located index, or -1.
func (s Step) FoundIndex() int {
	if s.Found == nil {
		return -1
	}
	return *s.Found
}

// Snapshot returns an independent copy of values. A nil input yields an empty,
// non-nil slice so encoded steps always carry arrays.
func Snapshot(values []int) []int {
	c := make([]int, len(values))
	copy(c, values)
	return c
}

// Indices returns [from, from+1, ..., to-1].
func Indices(from, to int) []int {
	if to <= from {
		return []int{}
	}
	out := make([]int, 0, to-from)
	for i := from; i < to; i++ {
		out = append(out, i)
	}
	return out
}

// Trace is the full ordered sequence of steps for one run.
type Trace []Step

func (t Trace) Len() int { return len(t) }

// At returns the step at i, clamped into the trace bounds.
func (t Trace) At(i int) Step {
	if len(t) == 0 {
		return Step{Array: []int{}, Highlights: []int{}, Swaps: []int{}}
	}
	if i < 0 {
		i = 0
	}
	if i >= len(t) {
		i = len(t) - 1
	}
	return t[i]
}

// Final returns the last step.
func (t Trace) Final() Step { return t.At(len(t) - 1) }

// LastIndex is the index of the terminal step, or -1 when empty.
func (t Trace) LastIndex() int { return len(t) - 1 }

// Terminal reports whether i is the final index.
func (t Trace) Terminal(i int) bool { return len(t) > 0 && i == len(t)-1 }

// Succeeded reports whether the final step signals success: a located search
// target or a completed sort. Both signals are checked because they live in
// different fields.
func (t Trace) Succeeded() bool {
	if len(t) == 0 {
		return false
	}
	last := t.Final()
	if last.HasFound() {
		return true
	}
	return last.Kind == KindComplete || strings.Contains(strings.ToLower(last.Description), "complete")
}

// Clone deep-copies every step.
func (t Trace) Clone() Trace {
	c := make(Trace, len(t))
	for i, s := range t {
		c[i] = s.Clone()
	}
	return c
}

// Count returns the number of steps of the given kind.
func (t Trace) Count(k Kind) int {
	n := 0
	for _, s := range t {
		if s.Kind == k {
			n++
		}
	}
	return n
}

// Target is an optional search target. An invalid target never matches.
type Target struct {
	Value int  `json:"value" yaml:"value"`
	Valid bool `json:"valid" yaml:"valid"`
}

// NoTarget is the target used by unparsable input and by sort requests.
var NoTarget = Target{}

func TargetOf(v int) Target { return Target{Value: v, Valid: true} }

func (t Target) String() string {
	if !t.Valid {
		return "NaN"
	}
	return strconv.Itoa(t.Value)
}

// Equals reports whether v matches the target.
func (t Target) Equals(v int) bool { return t.Valid && v == t.Value }

// Above reports whether v lies below the target, i.e. the target is above v.
func (t Target) Above(v int) bool { return t.Valid && v < t.Value }

// Generator produces a full trace for one request. Implementations must not
// mutate input.
type Generator interface {
	Name() string
	Generate(input []int, target Target) (Trace, error)
}

// Metric accumulates a value over the steps of a trace.
type Metric interface {
	Name() string
	Observe(s Step)
	Value() float64
	Reset()
}

// Observer is notified of every step after generation.
type Observer interface {
	OnStep(index int, s Step)
}
