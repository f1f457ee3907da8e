package algorithms

import (
	"fmt"

	"github.com/24dai03-saifchaus/algonexus/internal/trace"
)

// Source lines of the bubble sort listing.
const (
	BubbleLineInit    = 1
	BubbleLinePass    = 2
	BubbleLineCompare = 4
	BubbleLineSwap    = 5
)

// BubbleSort narrates an adjacent-exchange sort, one step per comparison,
// exchange decision and completed pass.
type BubbleSort struct{}

// NewBubbleSort returns the bubble_sort variant.
func NewBubbleSort() *BubbleSort {
	return &BubbleSort{}
}

func (b *BubbleSort) Name() string { return "bubble_sort" }

func (b *BubbleSort) Info() Info {
	return Info{
		ID:              b.Name(),
		Name:            "Bubble Sort",
		Category:        Sorting,
		Description:     "A simple sorting algorithm that repeatedly steps through the list, compares adjacent elements and swaps them if they are in the wrong order.",
		TimeComplexity:  "O(n²)",
		SpaceComplexity: "O(1)",
	}
}

// Generate records every comparison, exchange and pass of an ascending bubble
// sort. Equal neighbours are never exchanged. Inputs of length 0 or 1 yield the
// initializing step followed directly by the completion step. The target is
// ignored.
func (b *BubbleSort) Generate(input []int, _ trace.Target) (trace.Trace, error) {
	n := len(input)
	r := newRecorder(input, bubbleStepCount(n))
	arr := r.work

	r.emit(trace.KindInit, BubbleLineInit, nil, nil,
		"Initializing Bubble Sort: We will iterate through the array multiple times, pushing the largest unsorted element to its correct position at the end in each pass.")

	for i := 0; i < n-1; i++ {
		for j := 0; j < n-i-1; j++ {
			r.emit(trace.KindCompare, BubbleLineCompare, []int{j, j + 1}, nil,
				fmt.Sprintf("Pass %d: Comparing elements at index %d (%d) and index %d (%d). If the left element is greater, they will be swapped.",
					i+1, j, arr[j], j+1, arr[j+1]))

			if arr[j] > arr[j+1] {
				left, right := arr[j], arr[j+1]
				arr[j], arr[j+1] = right, left
				r.emit(trace.KindSwap, BubbleLineSwap, nil, []int{j, j + 1},
					fmt.Sprintf("Swap triggered: %d > %d. Moving %d to the right and %d to the left to maintain ascending order.",
						left, right, left, right))
			} else {
				r.emit(trace.KindNoSwap, BubbleLineCompare, []int{j, j + 1}, nil,
					fmt.Sprintf("No swap needed: %d <= %d. The elements are already in the correct relative order for this comparison.",
						arr[j], arr[j+1]))
			}
		}

		settled := make([]int, 0, i+1)
		for k := 0; k <= i; k++ {
			settled = append(settled, n-1-k)
		}
		r.emit(trace.KindPass, BubbleLinePass, settled, nil,
			fmt.Sprintf("End of Pass %d: The largest element in the current unsorted portion has 'bubbled up' to index %d.", i+1, n-1-i))
	}

	r.emit(trace.KindComplete, trace.NoLine, trace.Indices(0, n), nil,
		"Algorithm Complete: The array is now fully sorted. Every element has been compared and placed in its correct relative position.")

	return r.steps, nil
}

// bubbleStepCount is the exact trace length for n elements.
func bubbleStepCount(n int) int {
	if n < 2 {
		return 2
	}
	return n*(n-1) + (n - 1) + 2
}
