package algorithms

import (
	"fmt"
	"math/bits"
	"sort"

	"github.com/24dai03-saifchaus/algonexus/internal/trace"
)

// Source lines of the binary search listing.
const (
	SearchLineInit     = 1
	SearchLineMidpoint = 3
	SearchLineFound    = 4
	SearchLineLow      = 5
	SearchLineHigh     = 6
	SearchLineNotFound = 8
)

// BinarySearch narrates a bisection over a sorted copy of the input.
type BinarySearch struct{}

// NewBinarySearch returns the binary_search variant.
func NewBinarySearch() *BinarySearch {
	return &BinarySearch{}
}

func (b *BinarySearch) Name() string { return "binary_search" }

func (b *BinarySearch) Info() Info {
	return Info{
		ID:              b.Name(),
		Name:            "Binary Search",
		Category:        Searching,
		Description:     "A fast search algorithm with run-time complexity of O(log n). This search algorithm works on the principle of divide and conquer.",
		TimeComplexity:  "O(log n)",
		SpaceComplexity: "O(1)",
	}
}

// Generate sorts a private copy of input ascending and bisects it for target.
// The trace ends on the first midpoint equal to target, which for duplicate
// values depends only on the bisection path. An invalid target never matches
// and never compares below a value, so every iteration discards the right half
// until the interval is exhausted.
func (b *BinarySearch) Generate(input []int, target trace.Target) (trace.Trace, error) {
	sorted := trace.Snapshot(input)
	sort.Ints(sorted)

	r := newRecorder(sorted, 2*MaxMidpoints(len(sorted))+2)
	arr := r.work

	low, high := 0, len(arr)-1

	r.emit(trace.KindInit, SearchLineInit, nil, nil,
		fmt.Sprintf("Initializing Binary Search: Looking for target value %s in a sorted array. We will repeatedly divide the search interval in half.", target))

	for low <= high {
		mid := low + (high-low)/2

		r.emit(trace.KindMidpoint, SearchLineMidpoint, []int{mid}, nil,
			fmt.Sprintf("Calculating midpoint: Low=%d, High=%d. Midpoint is index %d with value %d. Comparing %d with target %s.",
				low, high, mid, arr[mid], arr[mid], target))

		if target.Equals(arr[mid]) {
			r.emitFound(SearchLineFound, mid,
				fmt.Sprintf("Match found! The value at index %d is exactly %s. Search successful.", mid, target))
			return r.steps, nil
		}

		if target.Above(arr[mid]) {
			oldLow := low
			low = mid + 1
			r.emit(trace.KindBoundLow, SearchLineLow, boundHighlights(low, high, len(arr)), nil,
				fmt.Sprintf("%d is less than %s. Since the array is sorted, the target must be in the right half. Updating Low from %d to %d.",
					arr[mid], target, oldLow, low))
		} else {
			oldHigh := high
			high = mid - 1
			r.emit(trace.KindBoundHigh, SearchLineHigh, boundHighlights(low, high, len(arr)), nil,
				fmt.Sprintf("%d is greater than %s. Since the array is sorted, the target must be in the left half. Updating High from %d to %d.",
					arr[mid], target, oldHigh, high))
		}
	}

	r.emit(trace.KindNotFound, SearchLineNotFound, nil, nil,
		fmt.Sprintf("Search failed: Low (%d) has exceeded High (%d). The target value %s does not exist in this array.", low, high, target))

	return r.steps, nil
}

// boundHighlights returns [low, high] restricted to valid indices. Once the
// interval is exhausted one bound may step past the array edge; that bound is
// narrated but not highlighted.
func boundHighlights(low, high, n int) []int {
	out := make([]int, 0, 2)
	for _, i := range []int{low, high} {
		if i >= 0 && i < n {
			out = append(out, i)
		}
	}
	return out
}

// MaxMidpoints is ceil(log2(n+1)), the most midpoints a search over n
// elements can visit.
func MaxMidpoints(n int) int {
	if n <= 0 {
		return 0
	}
	return bits.Len(uint(n))
}
