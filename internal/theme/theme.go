// Package theme defines editor color themes.
package theme

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/glint/internal/renderer/core"
)

// ErrUnknownTheme indicates a theme id that is not registered.
var ErrUnknownTheme = errors.New("unknown theme")

// ID identifies a theme.
type ID string

// Built-in themes.
const (
	Midnight ID = "midnight"
	Paper    ID = "paper"
)

// Profile is the immutable description of a theme.
type Profile struct {
	ID          ID
	DisplayName string
	Background  core.Color
	Text        core.Color
	Caret       core.Color
}

// IsZero reports whether the profile is the zero value.
func (p Profile) IsZero() bool {
	return p.ID == ""
}

// IsDark reports whether the theme has a dark background.
func (p Profile) IsDark() bool {
	return p.Background.IsDark()
}

var builtins = []Profile{
	{
		ID:          Midnight,
		DisplayName: "Midnight",
		Background:  core.ColorFromRGB(15, 23, 42),
		Text:        core.ColorFromRGB(226, 232, 240),
		Caret:       core.ColorFromRGB(56, 189, 248),
	},
	{
		ID:          Paper,
		DisplayName: "Paper",
		Background:  core.ColorFromRGB(247, 247, 245),
		Text:        core.ColorFromRGB(32, 33, 36),
		Caret:       core.ColorFromRGB(37, 99, 235),
	},
}

// All returns the built-in themes.
func All() []Profile {
	out := make([]Profile, len(builtins))
	copy(out, builtins)
	return out
}

// Lookup returns a built-in theme.
func Lookup(id ID) (Profile, bool) {
	for _, p := range builtins {
		if p.ID == id {
			return p, true
		}
	}
	return Profile{}, false
}

// Default returns the default theme.
func Default() Profile {
	return builtins[0]
}

// Spec is the hex-encoded form of a theme used by configuration files.
type Spec struct {
	ID         string
	Name       string
	Background string
	Text       string
	Caret      string
}

// FromSpec parses a hex-encoded theme.
func FromSpec(s Spec) (Profile, error) {
	id := strings.TrimSpace(s.ID)
	if id == "" {
		return Profile{}, errors.New("theme id is required")
	}
	p := Profile{ID: ID(id), DisplayName: s.Name}
	if p.DisplayName == "" {
		p.DisplayName = id
	}

	var err error
	if p.Background, err = core.ColorFromHex(s.Background); err != nil {
		return Profile{}, fmt.Errorf("theme %s background: %w", id, err)
	}
	if p.Text, err = core.ColorFromHex(s.Text); err != nil {
		return Profile{}, fmt.Errorf("theme %s text: %w", id, err)
	}
	if s.Caret == "" {
		p.Caret = p.Text
	} else if p.Caret, err = core.ColorFromHex(s.Caret); err != nil {
		return Profile{}, fmt.Errorf("theme %s caret: %w", id, err)
	}
	return p, nil
}

// Registry holds the built-in themes plus user themes in insertion order.
type Registry struct {
	themes []Profile
}

// NewRegistry creates a registry with the built-ins followed by extra.
// A user theme with a built-in id replaces the built-in.
func NewRegistry(extra ...Profile) *Registry {
	r := &Registry{themes: All()}
	for _, p := range extra {
		r.Register(p)
	}
	return r
}

// Register adds or replaces a theme.
func (r *Registry) Register(p Profile) {
	for i := range r.themes {
		if r.themes[i].ID == p.ID {
			r.themes[i] = p
			return
		}
	}
	r.themes = append(r.themes, p)
}

// Lookup returns the theme for id.
func (r *Registry) Lookup(id ID) (Profile, bool) {
	for _, p := range r.themes {
		if p.ID == id {
			return p, true
		}
	}
	return Profile{}, false
}

// Resolve is Lookup with an error for unknown ids.
func (r *Registry) Resolve(id ID) (Profile, error) {
	if p, ok := r.Lookup(id); ok {
		return p, nil
	}
	return Profile{}, fmt.Errorf("%w: %q", ErrUnknownTheme, id)
}

// All returns the registered themes.
func (r *Registry) All() []Profile {
	out := make([]Profile, len(r.themes))
	copy(out, r.themes)
	return out
}

// Next returns the theme after id, wrapping around.
func (r *Registry) Next(id ID) Profile {
	for i, p := range r.themes {
		if p.ID == id {
			return r.themes[(i+1)%len(r.themes)]
		}
	}
	return r.themes[0]
}
