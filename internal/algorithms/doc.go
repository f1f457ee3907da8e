// Package algorithms provides the trace generator variants.
//
// Each variant implements [trace.Generator], replaying one algorithm as a
// complete, deterministic sequence of narrated steps:
//
//   - [BubbleSort]: exchange sort with comparison, swap and pass-summary steps
//   - [BinarySearch]: bisection over a sorted private copy of the input
//
// Variants also describe themselves through [Info] so catalogs can list
// complexity and category without knowing concrete types.
//
// # Source lines
//
// Step lines refer to the static listings in package codepanel. Line 0 means
// "no specific line" and is used by terminal summary steps.
package algorithms
