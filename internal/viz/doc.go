// Package viz provides the terminal visualizer for algorithm traces.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [App]: menu, input editing and player
//   - [Model]: plays one trace with bars, narration and the code listing
//   - Theme selection with 5 built-in color schemes
//
// # Key Bindings
//
//	Space - Play/Pause
//	←/→   - Step back/forward (h/l)
//	R     - Restart from the first step
//	+/-   - Adjust the delay by 100ms
//	C     - Cycle code language
//	T     - Cycle color themes
//	G     - Toggle GIF recording
//	?     - Show help overlay
//
// # Recording
//
// Steps visited while recording are written as a GIF when recording stops.
package viz
