package highlight

import (
	"fmt"

	"github.com/dshills/glint/internal/renderer/core"
)

// Palette holds the accent colors painted by the highlighter. Accents are
// independent of the theme; only the default text color comes from it.
type Palette struct {
	Keyword  core.Color
	Number   core.Color
	Comment  core.Color
	Tag      core.Color
	Property core.Color
	String   core.Color
}

// DefaultPalette returns the built-in accent colors.
func DefaultPalette() Palette {
	return Palette{
		Keyword:  core.ColorFromRGB(248, 113, 113),
		Number:   core.ColorFromRGB(125, 211, 252),
		Comment:  core.ColorFromRGB(148, 163, 184),
		Tag:      core.ColorFromRGB(56, 189, 248),
		Property: core.ColorFromRGB(52, 211, 153),
		String:   core.ColorFromRGB(251, 191, 36),
	}
}

// ColorFor returns the accent for a token type.
func (p Palette) ColorFor(t TokenType) (core.Color, bool) {
	switch t {
	case TokenKeyword:
		return p.Keyword, true
	case TokenNumber:
		return p.Number, true
	case TokenComment:
		return p.Comment, true
	case TokenTag:
		return p.Tag, true
	case TokenProperty:
		return p.Property, true
	case TokenString:
		return p.String, true
	default:
		return core.Color{}, false
	}
}

// WithOverrides returns a copy of p with accents replaced by hex colors
// keyed by token type name ("keyword", "string", ...).
func (p Palette) WithOverrides(overrides map[string]string) (Palette, error) {
	for name, hex := range overrides {
		c, err := core.ColorFromHex(hex)
		if err != nil {
			return p, fmt.Errorf("palette %s: %w", name, err)
		}
		switch TokenTypeFromString(name) {
		case TokenKeyword:
			p.Keyword = c
		case TokenNumber:
			p.Number = c
		case TokenComment:
			p.Comment = c
		case TokenTag:
			p.Tag = c
		case TokenProperty:
			p.Property = c
		case TokenString:
			p.String = c
		default:
			return p, fmt.Errorf("palette: unknown token type %q", name)
		}
	}
	return p, nil
}
