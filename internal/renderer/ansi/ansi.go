// Package ansi renders highlighted text as ANSI-colored terminal output.
package ansi

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"

	"github.com/dshills/glint/internal/renderer/core"
	"github.com/dshills/glint/internal/renderer/highlight"
	"github.com/dshills/glint/internal/theme"
)

// Options controls rendering.
type Options struct {
	// Profile is the terminal color capability. Ascii disables color.
	Profile termenv.Profile
	// Background paints the theme background behind the text.
	Background bool
	// LineNumbers prefixes each line with its 1-based number.
	LineNumbers bool
}

// DetectProfile returns the color profile supported by w, honoring
// NO_COLOR and CLICOLOR_FORCE.
func DetectProfile(w io.Writer) termenv.Profile {
	return termenv.NewOutput(w).EnvColorProfile()
}

// Render returns st as ANSI-styled lines joined by newlines. Escape
// sequences never span a line break.
func Render(st highlight.StyledText, th theme.Profile, opts Options) string {
	var b strings.Builder
	r := renderer{opts: opts, th: th}

	lines := st.Lines()
	width := len(fmt.Sprint(len(lines)))
	for i, line := range lines {
		if opts.LineNumbers {
			r.gutter(&b, i+1, width)
		}
		for _, run := range line {
			b.WriteString(r.style(run.Text, run.Color).String())
		}
		if i < len(lines)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Write renders st to w.
func Write(w io.Writer, st highlight.StyledText, th theme.Profile, opts Options) error {
	_, err := io.WriteString(w, Render(st, th, opts))
	return err
}

type renderer struct {
	opts Options
	th   theme.Profile
}

func (r renderer) style(text string, fg core.Color) termenv.Style {
	p := r.opts.Profile
	s := p.String(text).Foreground(p.Color(fg.Hex()))
	if r.opts.Background {
		s = s.Background(p.Color(r.th.Background.Hex()))
	}
	return s
}

// gutter writes a dimmed line number; the color sits between text and
// background.
func (r renderer) gutter(b *strings.Builder, n, width int) {
	dim := r.th.Text.Blend(r.th.Background, 0.5)
	b.WriteString(r.style(fmt.Sprintf("%*d ", width, n), dim).String())
}
