// Package language defines the static language profiles used by the
// highlighter and the completion engine.
package language

import (
	"slices"
	"strings"
)

// ID identifies a supported language.
type ID string

// Supported languages.
const (
	JavaScript ID = "javascript"
	TypeScript ID = "typescript"
	Go         ID = "go"
	Rust       ID = "rust"
	HTML       ID = "html"
	CSS        ID = "css"
)

// Family groups languages that share structural highlighting rules.
type Family int

const (
	// FamilyGeneral covers C-like languages with // and /* */ comments.
	FamilyGeneral Family = iota
	// FamilyMarkup covers tag-based languages.
	FamilyMarkup
	// FamilyStylesheet covers selector/property languages.
	FamilyStylesheet
)

// String returns the family name.
func (f Family) String() string {
	switch f {
	case FamilyGeneral:
		return "general"
	case FamilyMarkup:
		return "markup"
	case FamilyStylesheet:
		return "stylesheet"
	default:
		return "unknown"
	}
}

// Profile is the immutable description of a language.
type Profile struct {
	ID          ID
	DisplayName string
	Family      Family

	// Extensions are lowercase and include the leading dot.
	Extensions []string

	// Keywords are highlighted as whole words and offered as completions.
	Keywords []string

	// StarterTemplate is a short example inserted into empty documents.
	StarterTemplate string

	// Snippets are ready-made fragments offered as completions.
	Snippets []string
}

// IsZero reports whether the profile is the zero value.
func (p Profile) IsZero() bool {
	return p.ID == ""
}

// clone returns a copy whose slices do not alias the registry tables.
func (p Profile) clone() Profile {
	p.Extensions = slices.Clone(p.Extensions)
	p.Keywords = slices.Clone(p.Keywords)
	p.Snippets = slices.Clone(p.Snippets)
	return p
}

// All returns every built-in profile in declaration order.
func All() []Profile {
	out := make([]Profile, len(builtins))
	for i, p := range builtins {
		out[i] = p.clone()
	}
	return out
}

// IDs returns the identifiers of every built-in profile.
func IDs() []ID {
	ids := make([]ID, len(builtins))
	for i, p := range builtins {
		ids[i] = p.ID
	}
	return ids
}

// Lookup returns the built-in profile for id.
func Lookup(id ID) (Profile, bool) {
	for _, p := range builtins {
		if p.ID == id {
			return p.clone(), true
		}
	}
	return Profile{}, false
}

// MustLookup is Lookup for identifiers known at compile time.
func MustLookup(id ID) Profile {
	p, ok := Lookup(id)
	if !ok {
		panic("language: unknown id " + string(id))
	}
	return p
}

// ForExtension maps a file extension to a profile. The match is case
// insensitive and the leading dot is optional.
func ForExtension(ext string) (Profile, bool) {
	id, ok := byExtension[normalizeExt(ext)]
	if !ok {
		return Profile{}, false
	}
	return Lookup(id)
}

// Extensions returns every registered extension, sorted.
func Extensions() []string {
	out := make([]string, 0, len(byExtension))
	for ext := range byExtension {
		out = append(out, ext)
	}
	slices.Sort(out)
	return out
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" || ext == "." {
		return ""
	}
	if ext[0] != '.' {
		ext = "." + ext
	}
	return ext
}

var byExtension = func() map[string]ID {
	m := make(map[string]ID)
	for _, p := range builtins {
		for _, ext := range p.Extensions {
			m[ext] = p.ID
		}
	}
	return m
}()
