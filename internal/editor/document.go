// Package editor holds the state of an open document and the operations
// the viewer and CLI apply to it.
package editor

import (
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/dshills/glint/internal/language"
	"github.com/dshills/glint/internal/theme"
)

// Display names used when a document has no file behind it.
const (
	UntitledName   = "Untitled"
	OpenFailedName = "Unable to open file"
)

// Document is an open buffer with its caret and presentation settings.
// Caret is a rune offset in [0, Len()].
type Document struct {
	// ID distinguishes documents in caches and logs.
	ID uuid.UUID

	// Name is the display name (file base name or "Untitled").
	Name string

	// Path is the file path (empty for scratch buffers).
	Path string

	Text     string
	Caret    int
	Language language.Profile
	Theme    theme.Profile

	// Modified indicates edits since open or reset.
	Modified bool
}

// NewDocument creates a scratch document holding lang's starter template.
func NewDocument(lang language.Profile, th theme.Profile) *Document {
	return &Document{
		ID:       uuid.New(),
		Name:     UntitledName,
		Text:     lang.StarterTemplate,
		Language: lang,
		Theme:    th,
	}
}

// Len returns the text length in runes.
func (d *Document) Len() int {
	return utf8.RuneCountInString(d.Text)
}

// IsScratch returns true if this is a scratch buffer (no file path).
func (d *Document) IsScratch() bool {
	return d.Path == ""
}

// clampCaret pulls the caret back into the text after an external edit.
func (d *Document) clampCaret() {
	d.Caret = min(max(d.Caret, 0), d.Len())
}

// setText replaces the text and caret, marking the document modified
// when the text changed.
func (d *Document) setText(text string, caret int) {
	if text != d.Text {
		d.Modified = true
	}
	d.Text = text
	d.Caret = caret
	d.clampCaret()
}
