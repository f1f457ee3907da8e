package trace

import (
	"errors"
	"fmt"
)

// Domain errors for trace generation and consumption.
var (
	// ErrUnsupportedAlgorithm indicates no generator is registered for an id.
	ErrUnsupportedAlgorithm = errors.New("trace: unsupported algorithm")

	// ErrEmptyTrace indicates a trace with no steps.
	ErrEmptyTrace = errors.New("trace: empty trace")

	// ErrInvalidStep indicates a step that breaks the trace invariants.
	ErrInvalidStep = errors.New("trace: invalid step")

	// ErrIndexOutOfRange indicates a cursor position outside the trace.
	ErrIndexOutOfRange = errors.New("trace: step index out of range")

	// ErrEmptyDataset indicates a sort request without any values.
	ErrEmptyDataset = errors.New("trace: empty dataset")

	// ErrDatasetTooLarge indicates a request over the served dataset size limit.
	ErrDatasetTooLarge = errors.New("trace: dataset too large")
)

// StepError wraps an error with the position of the offending step.
type StepError struct {
	Index   int
	Reason  string
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d: %s: %v", e.Index, e.Reason, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
