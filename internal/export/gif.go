package export

import (
	"image"
	"image/gif"
	"io"

	"github.com/24dai03-saifchaus/algonexus/internal/trace"
)

type GIFOptions struct {
	Width, Height int
	// Delay per frame in hundredths of a second.
	Delay int
	// HoldLast repeats the final frame delay this many times.
	HoldLast int
}

func DefaultGIFOptions() GIFOptions {
	return GIFOptions{Width: 640, Height: 320, Delay: 50, HoldLast: 4}
}

// TraceToGIF renders every step as one paletted frame and encodes the
// animation to w.
func TraceToGIF(w io.Writer, tr trace.Trace, opts GIFOptions) error {
	if len(tr) == 0 {
		return trace.ErrEmptyTrace
	}
	def := DefaultGIFOptions()
	if opts.Width <= 0 {
		opts.Width = def.Width
	}
	if opts.Height <= 0 {
		opts.Height = def.Height
	}
	if opts.Delay <= 0 {
		opts.Delay = def.Delay
	}

	anim := gif.GIF{LoopCount: 0}
	for i, s := range tr {
		delay := opts.Delay
		if i == len(tr)-1 && opts.HoldLast > 0 {
			delay *= opts.HoldLast
		}
		anim.Image = append(anim.Image, StepFrame(s, i, len(tr), opts.Width, opts.Height))
		anim.Delay = append(anim.Delay, delay)
	}
	return gif.EncodeAll(w, &anim)
}

// StepFrame rasterizes a step with a progress strip along the bottom edge.
func StepFrame(s trace.Step, index, total, width, height int) *image.Paletted {
	img := image.NewPaletted(image.Rect(0, 0, width, height), palette())

	w, h := float64(width), float64(height)
	baseY := int(h - padBottom/2)
	fillRect(img, 0, baseY, width, baseY+1, 1)

	if n := len(s.Array); n > 0 {
		barW, startX := barLayout(n, w)
		maxVal := maxValue(s.Array)
		usable := float64(baseY) - padTop/2
		for i, v := range s.Array {
			x0 := int(startX + float64(i)*(barW+barGap))
			x1 := x0 + int(barW)
			if x1 <= x0 {
				x1 = x0 + 1
			}
			y0 := baseY - int(barHeight(v, maxVal, usable))
			fillRect(img, x0, y0, x1, baseY, paletteIndex(s.RoleOf(i)))
		}
	}

	if total > 0 {
		done := (index + 1) * width / total
		fillRect(img, 0, height-4, done, height, paletteIndex(trace.RoleCompare))
	}
	return img
}

func fillRect(img *image.Paletted, x0, y0, x1, y1 int, idx uint8) {
	r := image.Rect(x0, y0, x1, y1).Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetColorIndex(x, y, idx)
		}
	}
}
