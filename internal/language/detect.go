package language

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// enryNames maps go-enry language names onto supported profiles.
var enryNames = map[string]ID{
	"JavaScript": JavaScript,
	"JSX":        JavaScript,
	"TypeScript": TypeScript,
	"TSX":        TypeScript,
	"Go":         Go,
	"Rust":       Rust,
	"HTML":       HTML,
	"XHTML":      HTML,
	"CSS":        CSS,
}

// Detect picks a profile for a file. The extension table is consulted
// first; go-enry then tries the extension, shebang and editor modeline.
func Detect(filename string, content []byte) (Profile, bool) {
	if p, ok := ForExtension(filepath.Ext(filename)); ok {
		return p, true
	}
	return detectContent(filename, content)
}

func detectContent(filename string, content []byte) (Profile, bool) {
	if filename != "" {
		if name, safe := enry.GetLanguageByExtension(filename); safe {
			if id, ok := enryNames[name]; ok {
				return Lookup(id)
			}
		}
	}
	if len(content) == 0 {
		return Profile{}, false
	}
	if name, safe := enry.GetLanguageByShebang(content); safe {
		if id, ok := enryNames[name]; ok {
			return Lookup(id)
		}
	}
	if name, safe := enry.GetLanguageByModeline(content); safe {
		if id, ok := enryNames[name]; ok {
			return Lookup(id)
		}
	}
	return Profile{}, false
}

// Registry is an owned view of the built-in profiles with user extension
// overrides layered on top. It is not safe for concurrent mutation;
// configure it before sharing.
type Registry struct {
	overrides map[string]ID
}

// NewRegistry creates a registry over the built-in profiles.
func NewRegistry() *Registry {
	return &Registry{overrides: make(map[string]ID)}
}

// WithExtension maps ext to the language id, overriding the built-in table.
func (r *Registry) WithExtension(ext string, id ID) error {
	norm := normalizeExt(ext)
	if norm == "" {
		return fmt.Errorf("empty extension for language %q", id)
	}
	if _, ok := Lookup(id); !ok {
		return fmt.Errorf("extension %s: %w: %q", norm, ErrUnknownLanguage, id)
	}
	r.overrides[norm] = id
	return nil
}

// Lookup returns the profile for id.
func (r *Registry) Lookup(id ID) (Profile, bool) {
	return Lookup(id)
}

// ForExtension resolves overrides before the built-in table.
func (r *Registry) ForExtension(ext string) (Profile, bool) {
	if id, ok := r.overrides[normalizeExt(ext)]; ok {
		return Lookup(id)
	}
	return ForExtension(ext)
}

// Detect is like the package-level Detect but honors overrides.
func (r *Registry) Detect(filename string, content []byte) (Profile, bool) {
	if p, ok := r.ForExtension(filepath.Ext(filename)); ok {
		return p, true
	}
	return detectContent(filename, content)
}

// Next returns the profile after id in declaration order, wrapping around.
func (r *Registry) Next(id ID) Profile {
	for i, p := range builtins {
		if p.ID == id {
			return builtins[(i+1)%len(builtins)].clone()
		}
	}
	return builtins[0].clone()
}

// ParseID validates a language identifier, ignoring case.
func ParseID(s string) (ID, error) {
	id := ID(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := Lookup(id); !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownLanguage, s)
	}
	return id, nil
}
