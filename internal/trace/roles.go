package trace

// Role is how a renderer should present one array position.
type Role int

const (
	RoleIdle Role = iota
	RoleCompare
	RoleSwap
	RoleFound
	RoleComplete
)

var roleLabels = map[Role]string{
	RoleCompare:  "COMPARE",
	RoleSwap:     "SWAP",
	RoleFound:    "FOUND",
	RoleComplete: "DONE",
}

// Label is the caption drawn above an active bar; idle bars have none.
func (r Role) Label() string { return roleLabels[r] }

// Active reports whether the position is highlighted at all.
func (r Role) Active() bool { return r != RoleIdle }

// RoleOf resolves the presentation of index i. A found index wins over a
// swap, and a swap wins over a highlight. Highlights on the completion step
// are reported as RoleComplete.
func (s Step) RoleOf(i int) Role {
	if s.Found != nil && *s.Found == i {
		return RoleFound
	}
	if contains(s.Swaps, i) {
		return RoleSwap
	}
	if contains(s.Highlights, i) {
		if s.Kind == KindComplete {
			return RoleComplete
		}
		return RoleCompare
	}
	return RoleIdle
}

// SwapPartner returns the other index of a two-index swap containing i.
func (s Step) SwapPartner(i int) (int, bool) {
	if len(s.Swaps) != 2 {
		return 0, false
	}
	switch i {
	case s.Swaps[0]:
		return s.Swaps[1], true
	case s.Swaps[1]:
		return s.Swaps[0], true
	}
	return 0, false
}

func contains(v []int, x int) bool {
	for _, n := range v {
		if n == x {
			return true
		}
	}
	return false
}
