// Package trace defines the step contract shared by every algorithm trace
// generator.
//
// A trace is the full, ordered history of an algorithm run:
//
//   - [Step]: one narrated snapshot (array, highlights, swaps, found, line)
//   - [Trace]: the ordered sequence of steps produced by one run
//   - [Generator]: capability implemented once per algorithm variant
//   - [Metric]: accumulator fed with steps after generation
//
// # Example
//
//	gen := algorithms.NewBubbleSort()
//	tr, _ := gen.Generate([]int{5, 3, 1}, trace.NoTarget)
//	last := tr.Final()
//
// # Snapshots
//
// Every step owns its array. Generators mutate a private working buffer and
// copy it into each emitted step with [Snapshot], so earlier steps stay valid
// after later mutations. Traces are safe to share between goroutines once
// generated; nothing in this package mutates a trace after creation.
package trace
