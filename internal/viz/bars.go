package viz

import (
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/24dai03-saifchaus/algonexus/internal/trace"
)

var roleMarkers = map[trace.Role]string{
	trace.RoleCompare:  "▼",
	trace.RoleSwap:     "⇄",
	trace.RoleFound:    "★",
	trace.RoleComplete: "✓",
}

// RenderBars draws the step's array as vertical bars rows tall. Each column
// carries a role marker, the value and the index.
func RenderBars(s trace.Step, t Theme, rows int) string {
	if len(s.Array) == 0 {
		return Subtle.Render("(empty dataset)")
	}
	if rows < 1 {
		rows = 1
	}

	colW := 3
	maxVal := 1
	for i, v := range s.Array {
		if v > maxVal {
			maxVal = v
		}
		if w := len(strconv.Itoa(v)); w > colW {
			colW = w
		}
		if w := len(strconv.Itoa(i)); w > colW {
			colW = w
		}
	}
	colW++

	styles := make([]lipgloss.Style, len(s.Array))
	heights := make([]int, len(s.Array))
	roles := make([]trace.Role, len(s.Array))
	for i, v := range s.Array {
		roles[i] = s.RoleOf(i)
		styles[i] = lipgloss.NewStyle().Foreground(t.RoleColor(roles[i]))
		if roles[i].Active() {
			styles[i] = styles[i].Bold(true)
		}
		heights[i] = scaleHeight(v, maxVal, rows)
	}

	var b strings.Builder
	writeRow := func(cell func(i int) string) {
		for i := range s.Array {
			b.WriteString(styles[i].Render(center(cell(i), colW)))
		}
		b.WriteByte('\n')
	}

	writeRow(func(i int) string { return roleMarkers[roles[i]] })
	for r := rows; r >= 1; r-- {
		writeRow(func(i int) string {
			if heights[i] >= r {
				return strings.Repeat("█", colW-1)
			}
			return ""
		})
	}
	writeRow(func(i int) string { return strconv.Itoa(s.Array[i]) })
	for i := range s.Array {
		b.WriteString(Subtle.Render(center(strconv.Itoa(i), colW)))
	}
	return b.String()
}

// Legend lists the marker and color for every active role.
func Legend(t Theme) string {
	order := []trace.Role{trace.RoleCompare, trace.RoleSwap, trace.RoleFound, trace.RoleComplete}
	parts := make([]string, len(order))
	for i, r := range order {
		parts[i] = lipgloss.NewStyle().Foreground(t.RoleColor(r)).Render(roleMarkers[r] + " " + r.Label())
	}
	return strings.Join(parts, "   ")
}

// scaleHeight maps v onto 1..rows; non-positive values keep a one-row stub.
func scaleHeight(v, maxVal, rows int) int {
	if v <= 0 {
		return 1
	}
	h := int(math.Ceil(float64(v) / float64(maxVal) * float64(rows)))
	if h < 1 {
		h = 1
	}
	if h > rows {
		h = rows
	}
	return h
}

func center(s string, width int) string {
	n := lipgloss.Width(s)
	if n >= width {
		return s
	}
	left := (width - n) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-n-left)
}
