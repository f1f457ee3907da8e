package codepanel

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/muesli/termenv"
)

const (
	DefaultStyle  = "monokai"
	DefaultMarker = "▶"
)

type Options struct {
	// Profile selects the terminal formatter. Ascii renders plain text.
	Profile     termenv.Profile
	Style       string
	Marker      string
	LineNumbers bool
}

// DefaultOptions detects the color profile of stdout.
func DefaultOptions() Options {
	return Options{
		Profile:     termenv.ColorProfile(),
		Style:       DefaultStyle,
		Marker:      DefaultMarker,
		LineNumbers: true,
	}
}

func formatterName(p termenv.Profile) string {
	switch p {
	case termenv.TrueColor:
		return "terminal16m"
	case termenv.ANSI256:
		return "terminal256"
	case termenv.ANSI:
		return "terminal16"
	default:
		return "noop"
	}
}

// Highlight returns one highlighted string per source line.
func Highlight(code string, lang Language, opts Options) ([]string, error) {
	lexer := lexers.Get(string(lang))
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(opts.Style)
	if style == nil {
		style = styles.Fallback
	}
	formatter := formatters.Get(formatterName(opts.Profile))
	if formatter == nil {
		formatter = formatters.NoOp
	}

	it, err := lexer.Tokenise(nil, code)
	if err != nil {
		return nil, fmt.Errorf("codepanel: tokenise %s: %w", lang, err)
	}

	var lines []string
	for _, tokens := range chroma.SplitTokensIntoLines(it.Tokens()) {
		var b strings.Builder
		if err := formatter.Format(&b, style, chroma.Literator(tokens...)); err != nil {
			return nil, err
		}
		lines = append(lines, strings.ReplaceAll(b.String(), "\n", ""))
	}
	return lines, nil
}

// Render highlights code and marks activeLine (1-based). Line 0 marks nothing.
func Render(code string, lang Language, activeLine int, opts Options) (string, error) {
	lines, err := Highlight(code, lang, opts)
	if err != nil {
		return "", err
	}
	marker := opts.Marker
	if marker == "" {
		marker = DefaultMarker
	}
	blank := strings.Repeat(" ", len([]rune(marker)))
	width := len(fmt.Sprint(len(lines)))

	var b strings.Builder
	for i, line := range lines {
		prefix := blank
		if i+1 == activeLine {
			prefix = marker
		}
		b.WriteString(prefix)
		b.WriteByte(' ')
		if opts.LineNumbers {
			fmt.Fprintf(&b, "%*d  ", width, i+1)
		}
		b.WriteString(line)
		if i < len(lines)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String(), nil
}

// LineCount returns the number of lines in a listing.
func LineCount(code string) int {
	if code == "" {
		return 0
	}
	return strings.Count(code, "\n") + 1
}
