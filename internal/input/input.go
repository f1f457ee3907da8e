// Package input turns raw request text into generator input.
package input

import (
	"math/rand"
	"regexp"
	"strconv"
	"strings"

	"github.com/24dai03-saifchaus/algonexus/internal/trace"
)

// DefaultDataset is the dataset the visualizer opens with.
const DefaultDataset = "64, 34, 25, 12, 22, 11, 90"

// DefaultTarget is the search target the visualizer opens with.
const DefaultTarget = "22"

// An integer token is a leading optional sign and digits; anything after the
// digits is ignored ("12abc" is 12, "3.7" is 3).
var leadingInt = regexp.MustCompile(`^[+-]?[0-9]+`)

// ParseInt parses the integer prefix of s. Tokens without one, or whose value
// overflows int, are rejected.
func ParseInt(s string) (int, bool) {
	m := leadingInt.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0, false
	}
	v, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseDataset splits text on commas and keeps every token with an integer
// prefix. Non-numeric tokens are dropped silently.
func ParseDataset(text string) []int {
	parts := strings.Split(text, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		if v, ok := ParseInt(p); ok {
			out = append(out, v)
		}
	}
	return out
}

// ParseTarget parses a search target; unparsable text yields trace.NoTarget.
func ParseTarget(text string) trace.Target {
	v, ok := ParseInt(text)
	if !ok {
		return trace.NoTarget
	}
	return trace.TargetOf(v)
}

// FormatDataset renders values the way ParseDataset reads them.
func FormatDataset(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ", ")
}

// Random draws n values in [0, max) and picks the target from among them.
func Random(rng *rand.Rand, n, max int) ([]int, trace.Target) {
	if n <= 0 || max <= 0 {
		return []int{}, trace.NoTarget
	}
	values := make([]int, n)
	for i := range values {
		values[i] = rng.Intn(max)
	}
	return values, trace.TargetOf(values[rng.Intn(n)])
}
