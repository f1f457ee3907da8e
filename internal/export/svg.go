package export

import (
	"fmt"
	"html"
	"strings"

	"github.com/24dai03-saifchaus/algonexus/internal/trace"
)

const (
	barGap     = 12.0
	maxBarW    = 80.0
	padX       = 40.0
	padTop     = 60.0
	padBottom  = 50.0
	labelSpace = 18.0
)

// StepToSVG draws one step as a bar chart. Bar heights scale to the largest
// value; active bars carry their role caption and every bar its index.
func StepToSVG(step trace.Step, width, height int) string {
	w, h := float64(width), float64(height)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" font-family="monospace">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, Hex(Background)))

	n := len(step.Array)
	baseY := h - padBottom
	sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s"/>
`, padX/2, baseY, w-padX/2, baseY, Hex(Baseline)))

	if n > 0 {
		barW, startX := barLayout(n, w)
		maxVal := maxValue(step.Array)
		usable := baseY - padTop - labelSpace

		for i, v := range step.Array {
			role := step.RoleOf(i)
			fill := Hex(RoleColors[role])
			x := startX + float64(i)*(barW+barGap)
			bh := barHeight(v, maxVal, usable)
			top := baseY - bh
			cx := x + barW/2

			sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="4" fill="%s"/>
`, x, top, barW, bh, fill))
			sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" font-size="12" text-anchor="middle" fill="%s">%d</text>
`, cx, top-4, fill, v))
			sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" font-size="9" text-anchor="middle" fill="#94a3b8">IDX:%d</text>
`, cx, baseY+16, i))
			if role.Active() {
				sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" font-size="10" font-weight="bold" text-anchor="middle" fill="%s">%s</text>
`, cx, top-labelSpace, fill, role.Label()))
			}
		}
	}

	if step.Description != "" {
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" font-size="13" fill="#334155">%s</text>
`, padX/2, h-12, html.EscapeString(step.Description)))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// SeriesToSVG plots values as a polyline scaled to the box.
func SeriesToSVG(values []float64, width, height int, strokeColor string) string {
	if len(values) < 2 {
		return ""
	}

	minY, maxY := values[0], values[0]
	for _, v := range values {
		if v < minY {
			minY = v
		}
		if v > maxY {
			maxY = v
		}
	}
	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	rangeY *= 1.2

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, Hex(Background), strokeColor))

	last := float64(len(values) - 1)
	for i, v := range values {
		x := float64(i) / last * float64(width)
		y := float64(height) - (v-minY)/rangeY*float64(height)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

// CumulativeComparisons returns the running comparison count after each step.
func CumulativeComparisons(tr trace.Trace) []float64 {
	out := make([]float64, len(tr))
	count := 0.0
	for i, s := range tr {
		if s.Kind == trace.KindCompare || s.Kind == trace.KindMidpoint {
			count++
		}
		out[i] = count
	}
	return out
}

func barLayout(n int, w float64) (barW, startX float64) {
	barW = (w-2*padX)/float64(n) - barGap
	if barW > maxBarW {
		barW = maxBarW
	}
	if barW < 1 {
		barW = 1
	}
	startX = (w - (barW+barGap)*float64(n) + barGap) / 2
	return barW, startX
}

func maxValue(values []int) int {
	m := 1
	for _, v := range values {
		if v > m {
			m = v
		}
	}
	return m
}

// barHeight keeps non-positive values visible as a sliver.
func barHeight(v, maxVal int, usable float64) float64 {
	if v <= 0 {
		return 2
	}
	h := float64(v) / float64(maxVal) * usable
	if h < 2 {
		h = 2
	}
	return h
}
