package input

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/24dai03-saifchaus/algonexus/internal/trace"
)

func TestParseDataset(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []int
	}{
		{"default", DefaultDataset, []int{64, 34, 25, 12, 22, 11, 90}},
		{"empty", "", []int{}},
		{"whitespace", "  1 ,2,   3  ", []int{1, 2, 3}},
		{"drops words", "5, abc, 7, , x9", []int{5, 7}},
		{"integer prefix", "12abc, 3.7, -4", []int{12, 3, -4}},
		{"signs", "+8, -0", []int{8, 0}},
		{"overflow dropped", "99999999999999999999, 1", []int{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDataset(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseDataset(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestParseTarget(t *testing.T) {
	if got := ParseTarget("22"); got != trace.TargetOf(22) {
		t.Errorf("ParseTarget(22) = %v", got)
	}
	if got := ParseTarget(" -3 "); got != trace.TargetOf(-3) {
		t.Errorf("ParseTarget(-3) = %v", got)
	}
	if got := ParseTarget("abc"); got.Valid {
		t.Errorf("ParseTarget(abc) should be invalid, got %v", got)
	}
}

func TestFormatDatasetRoundTrip(t *testing.T) {
	values := []int{3, -1, 0, 42}
	if got := ParseDataset(FormatDataset(values)); !reflect.DeepEqual(got, values) {
		t.Errorf("round trip = %v, want %v", got, values)
	}
	if FormatDataset(nil) != "" {
		t.Error("empty dataset should format to empty text")
	}
}

func TestRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	values, target := Random(rng, 8, 100)

	if len(values) != 8 {
		t.Fatalf("expected 8 values, got %d", len(values))
	}
	found := false
	for _, v := range values {
		if v < 0 || v >= 100 {
			t.Errorf("value %d outside [0, 100)", v)
		}
		if target.Equals(v) {
			found = true
		}
	}
	if !found {
		t.Errorf("target %v not drawn from %v", target, values)
	}

	if values, target := Random(rng, 0, 100); len(values) != 0 || target.Valid {
		t.Error("zero-length draw should be empty with no target")
	}
}
