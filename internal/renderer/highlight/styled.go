package highlight

import (
	"unicode/utf8"

	"github.com/dshills/glint/internal/renderer/core"
)

// StyledText is a buffer with layered color spans. The effective color of
// a rune is the color of the last span covering it, or Default.
type StyledText struct {
	Text    string
	Default core.Color
	Spans   []core.StyleSpan
}

// Run is a maximal stretch of runes sharing one effective color.
type Run struct {
	Start int // rune offset, inclusive
	End   int // rune offset, exclusive
	Text  string
	Color core.Color
}

// Len returns the length of the text in runes.
func (s StyledText) Len() int {
	return utf8.RuneCountInString(s.Text)
}

// ColorAt returns the effective color at rune offset i.
func (s StyledText) ColorAt(i int) core.Color {
	for j := len(s.Spans) - 1; j >= 0; j-- {
		if s.Spans[j].Contains(i) {
			return s.Spans[j].Color
		}
	}
	return s.Default
}

// Colors returns the effective color of every rune.
func (s StyledText) Colors() []core.Color {
	n := s.Len()
	colors := make([]core.Color, n)
	for i := range colors {
		colors[i] = s.Default
	}
	for _, span := range s.Spans {
		start := max(span.Start, 0)
		end := min(span.End, n)
		for i := start; i < end; i++ {
			colors[i] = span.Color
		}
	}
	return colors
}

// Runs flattens the layered spans into consecutive runs.
func (s StyledText) Runs() []Run {
	if s.Text == "" {
		return nil
	}

	runes := []rune(s.Text)
	colors := s.Colors()
	runs := make([]Run, 0, len(s.Spans)*2+1)

	start := 0
	for i := 1; i <= len(runes); i++ {
		if i < len(runes) && colors[i] == colors[start] {
			continue
		}
		runs = append(runs, Run{
			Start: start,
			End:   i,
			Text:  string(runes[start:i]),
			Color: colors[start],
		})
		start = i
	}
	return runs
}

// Lines splits the runs at newlines. The newline runes themselves are
// dropped; an empty line yields an empty slice. There is always one more
// line than there are newlines.
func (s StyledText) Lines() [][]Run {
	lines := [][]Run{nil}
	for _, run := range s.Runs() {
		offset := run.Start
		segStart := 0
		runes := []rune(run.Text)
		for i, r := range runes {
			if r != '\n' {
				continue
			}
			if i > segStart {
				lines[len(lines)-1] = append(lines[len(lines)-1], Run{
					Start: offset + segStart,
					End:   offset + i,
					Text:  string(runes[segStart:i]),
					Color: run.Color,
				})
			}
			lines = append(lines, nil)
			segStart = i + 1
		}
		if segStart < len(runes) {
			lines[len(lines)-1] = append(lines[len(lines)-1], Run{
				Start: offset + segStart,
				End:   offset + len(runes),
				Text:  string(runes[segStart:]),
				Color: run.Color,
			})
		}
	}
	return lines
}
