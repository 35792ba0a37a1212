package theme

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/glint/internal/renderer/core"
)

// VS Code color keys, escaped for gjson/sjson paths.
const (
	vscodeBackground = `colors.editor\.background`
	vscodeForeground = `colors.editor\.foreground`
	vscodeCursor     = `colors.editorCursor\.foreground`
)

// FromChroma derives a theme from a registered chroma style.
func FromChroma(name string) (Profile, error) {
	style, ok := styles.Registry[strings.ToLower(name)]
	if !ok {
		return Profile{}, fmt.Errorf("%w: chroma style %q", ErrUnknownTheme, name)
	}

	bg := style.Get(chroma.Background)
	p := Profile{
		ID:          ID("chroma-" + strings.ToLower(style.Name)),
		DisplayName: style.Name,
		Background:  core.ColorBlack,
		Text:        core.ColorWhite,
	}
	if bg.Background.IsSet() {
		p.Background = chromaColor(bg.Background)
	}
	if text := style.Get(chroma.Text); text.Colour.IsSet() {
		p.Text = chromaColor(text.Colour)
	} else if p.Background.IsDark() {
		p.Text = core.ColorWhite
	} else {
		p.Text = core.ColorBlack
	}

	p.Caret = p.Text
	if kw := style.Get(chroma.Keyword); kw.Colour.IsSet() {
		p.Caret = chromaColor(kw.Colour)
	}
	return p, nil
}

func chromaColor(c chroma.Colour) core.Color {
	return core.ColorFromRGB(c.Red(), c.Green(), c.Blue())
}

// ChromaStyles returns the names of the chroma styles available to FromChroma.
func ChromaStyles() []string {
	return styles.Names()
}

// FromVSCode reads the editor colors of a VS Code color theme document.
func FromVSCode(id ID, data []byte) (Profile, error) {
	if !gjson.ValidBytes(data) {
		return Profile{}, fmt.Errorf("theme %s: invalid JSON", id)
	}

	name := gjson.GetBytes(data, "name").String()
	if name == "" {
		name = string(id)
	}
	p := Profile{ID: id, DisplayName: name}

	var err error
	if p.Background, err = vscodeColor(data, vscodeBackground); err != nil {
		return Profile{}, fmt.Errorf("theme %s: %w", id, err)
	}
	if p.Text, err = vscodeColor(data, vscodeForeground); err != nil {
		return Profile{}, fmt.Errorf("theme %s: %w", id, err)
	}
	if gjson.GetBytes(data, vscodeCursor).Exists() {
		if p.Caret, err = vscodeColor(data, vscodeCursor); err != nil {
			return Profile{}, fmt.Errorf("theme %s: %w", id, err)
		}
	} else {
		p.Caret = p.Text
	}
	return p, nil
}

func vscodeColor(data []byte, path string) (core.Color, error) {
	res := gjson.GetBytes(data, path)
	if !res.Exists() {
		return core.Color{}, fmt.Errorf("missing %s", strings.ReplaceAll(path, `\`, ""))
	}
	hex := res.String()
	// #RRGGBBAA: alpha is dropped.
	if len(hex) == 9 && hex[0] == '#' {
		hex = hex[:7]
	}
	return core.ColorFromHex(hex)
}

// ToVSCode writes the theme as a minimal VS Code color theme document.
func ToVSCode(p Profile) ([]byte, error) {
	doc := []byte(`{}`)
	var err error
	if doc, err = sjson.SetBytes(doc, "name", p.DisplayName); err != nil {
		return nil, err
	}
	typ := "light"
	if p.IsDark() {
		typ = "dark"
	}
	if doc, err = sjson.SetBytes(doc, "type", typ); err != nil {
		return nil, err
	}
	for _, kv := range []struct {
		path  string
		color core.Color
	}{
		{vscodeBackground, p.Background},
		{vscodeForeground, p.Text},
		{vscodeCursor, p.Caret},
	} {
		if doc, err = sjson.SetBytes(doc, kv.path, kv.color.Hex()); err != nil {
			return nil, err
		}
	}
	return doc, nil
}
