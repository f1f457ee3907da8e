package trace

// Validate checks the structural invariants every generated trace upholds.
func Validate(t Trace) error {
	if len(t) == 0 {
		return ErrEmptyTrace
	}

	first := t[0]
	if first.Line != 1 || len(first.Highlights) != 0 || len(first.Swaps) != 0 {
		return &StepError{Index: 0, Reason: "first step must be an initializing step", Wrapped: ErrInvalidStep}
	}

	for i, s := range t {
		n := len(s.Array)
		for _, h := range s.Highlights {
			if h < 0 || h >= n {
				return &StepError{Index: i, Reason: "highlight outside array", Wrapped: ErrIndexOutOfRange}
			}
		}
		for _, w := range s.Swaps {
			if w < 0 || w >= n {
				return &StepError{Index: i, Reason: "swap outside array", Wrapped: ErrIndexOutOfRange}
			}
		}
		if len(s.Swaps) > 0 && s.Kind != KindSwap {
			return &StepError{Index: i, Reason: "swaps set on a non-swap step", Wrapped: ErrInvalidStep}
		}
		if s.Found != nil {
			if i != len(t)-1 {
				return &StepError{Index: i, Reason: "found set before the final step", Wrapped: ErrInvalidStep}
			}
			if *s.Found < 0 || *s.Found >= n {
				return &StepError{Index: i, Reason: "found outside array", Wrapped: ErrIndexOutOfRange}
			}
		}
	}
	return nil
}
