// Package core provides shared types for the renderer subsystem.
// This package breaks import cycles between highlight, theme and backend.
package core

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"
)

// Color is an RGB triple.
type Color struct {
	R, G, B uint8
}

// Common colors.
var (
	ColorBlack = Color{R: 0, G: 0, B: 0}
	ColorWhite = Color{R: 255, G: 255, B: 255}
)

// ColorFromRGB creates a color from RGB components.
func ColorFromRGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// ColorFromHex parses "#rgb" or "#rrggbb". The leading '#' is optional.
func ColorFromHex(hex string) (Color, error) {
	hex = strings.TrimSpace(hex)
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	return FromColorful(c), nil
}

// MustHex is ColorFromHex for static tables. It panics on malformed input.
func MustHex(hex string) Color {
	c, err := ColorFromHex(hex)
	if err != nil {
		panic(err)
	}
	return c
}

// FromColorful converts a go-colorful color, clamping out-of-gamut values.
func FromColorful(c colorful.Color) Color {
	r, g, b := c.Clamped().RGB255()
	return Color{R: r, G: g, B: b}
}

// Colorful returns the color as a go-colorful value.
func (c Color) Colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

// Hex returns the "#RRGGBB" form.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// String returns a string representation of the color.
func (c Color) String() string {
	return c.Hex()
}

// Blend mixes two colors in Lab space. t=0 yields c, t=1 yields other.
func (c Color) Blend(other Color, t float64) Color {
	if t <= 0 {
		return c
	}
	if t >= 1 {
		return other
	}
	return FromColorful(c.Colorful().BlendLab(other.Colorful(), t))
}

// IsDark reports whether the color reads as a dark background.
func (c Color) IsDark() bool {
	l, _, _ := c.Colorful().Lab()
	return l < 0.5
}

// StyleSpan is a colored half-open range [Start, End) of rune offsets.
type StyleSpan struct {
	Start int
	End   int
	Color Color
}

// Len returns the length of the span in runes.
func (s StyleSpan) Len() int {
	return s.End - s.Start
}

// Contains returns true if the offset is within the span.
func (s StyleSpan) Contains(offset int) bool {
	return offset >= s.Start && offset < s.End
}

// Overlaps returns true if two spans share at least one offset.
func (s StyleSpan) Overlaps(other StyleSpan) bool {
	return s.Start < other.End && other.Start < s.End
}

// Cell represents a single terminal cell.
type Cell struct {
	Rune  rune
	Width int
	Fg    Color
	Bg    Color
}

// NewCell creates a cell with its display width computed from the rune.
func NewCell(r rune, fg, bg Color) Cell {
	return Cell{Rune: r, Width: RuneWidth(r), Fg: fg, Bg: bg}
}

// RuneWidth returns the display width of a rune. Control runes have width 0.
func RuneWidth(r rune) int {
	if r < 32 || r == 0x7F {
		return 0
	}
	return runewidth.RuneWidth(r)
}
