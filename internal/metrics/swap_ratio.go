package metrics

import "github.com/24dai03-saifchaus/algonexus/internal/trace"

// SwapRatio is the share of comparisons that ended in an exchange.
type SwapRatio struct {
	name        string
	swaps       int
	comparisons int
}

func NewSwapRatio() *SwapRatio {
	return &SwapRatio{
		name: "swap_ratio",
	}
}

func (r *SwapRatio) Name() string {
	return r.name
}

func (r *SwapRatio) Observe(s trace.Step) {
	switch s.Kind {
	case trace.KindCompare:
		r.comparisons++
	case trace.KindSwap:
		r.swaps++
	}
}

func (r *SwapRatio) Value() float64 {
	if r.comparisons == 0 {
		return 0
	}
	return float64(r.swaps) / float64(r.comparisons)
}

func (r *SwapRatio) Reset() {
	r.swaps = 0
	r.comparisons = 0
}
