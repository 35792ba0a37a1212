// Package completion provides prefix completion over a language's
// keywords and snippets.
package completion

import (
	"slices"
	"strings"
	"unicode"

	"github.com/dshills/glint/internal/language"
)

// Kind indicates where a completion item came from.
type Kind int

const (
	KindKeyword Kind = iota
	KindSnippet
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindKeyword:
		return "keyword"
	case KindSnippet:
		return "snippet"
	default:
		return "unknown"
	}
}

// Item is a single completion suggestion.
type Item struct {
	// Label is the text inserted on accept.
	Label string
	// Kind indicates the source of the suggestion.
	Kind Kind
}

// Token is the identifier fragment immediately before the caret.
// Start and End are rune offsets; End is the caret.
type Token struct {
	Text  string
	Start int
	End   int
}

// Len returns the token length in runes.
func (t Token) Len() int {
	return t.End - t.Start
}

// DefaultMinPrefix is the shortest token that produces suggestions.
const DefaultMinPrefix = 2

// Engine filters a language's candidates by the token at the caret.
type Engine struct {
	// MinPrefix is the minimum token length, in runes, before any
	// suggestions are produced. Values below 1 are treated as 1.
	MinPrefix int
	// MaxItems caps the number of suggestions. Zero means no limit.
	MaxItems int
}

// DefaultEngine is the engine used by the package-level functions.
var DefaultEngine = Engine{MinPrefix: DefaultMinPrefix}

// CurrentToken returns the word before caret. The caret is clamped to the
// text. It reports false when the caret is not preceded by a word rune.
func CurrentToken(text string, caret int) (Token, bool) {
	return currentToken([]rune(text), caret)
}

func currentToken(runes []rune, caret int) (Token, bool) {
	caret = clamp(caret, len(runes))
	start := caret
	for start > 0 && isWordRune(runes[start-1]) {
		start--
	}
	if start == caret {
		return Token{}, false
	}
	return Token{Text: string(runes[start:caret]), Start: start, End: caret}, true
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.Is(unicode.M, r)
}

func clamp(caret, n int) int {
	return min(max(caret, 0), n)
}

// Completions returns the sorted suggestions for the token at caret.
func Completions(text string, caret int, lang language.Profile) []string {
	return DefaultEngine.Completions(text, caret, lang)
}

// Suggest returns the suggestions for the token at caret with their kinds.
func Suggest(text string, caret int, lang language.Profile) []Item {
	return DefaultEngine.Suggest(text, caret, lang)
}

// Apply replaces the token at caret with suggestion, or inserts it at the
// caret when there is no token. It returns the new text and the caret
// position just after the inserted text.
func Apply(text string, caret int, suggestion string) (string, int) {
	runes := []rune(text)
	caret = clamp(caret, len(runes))

	start, end := caret, caret
	if tok, ok := currentToken(runes, caret); ok {
		start, end = tok.Start, tok.End
	}

	var b strings.Builder
	b.Grow(len(text) + len(suggestion))
	b.WriteString(string(runes[:start]))
	b.WriteString(suggestion)
	b.WriteString(string(runes[end:]))

	return b.String(), start + len([]rune(suggestion))
}

// Completions returns the sorted, de-duplicated suggestions for the token
// at caret.
func (e Engine) Completions(text string, caret int, lang language.Profile) []string {
	items := e.Suggest(text, caret, lang)
	if len(items) == 0 {
		return nil
	}
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Label
	}
	return out
}

// Suggest returns matching snippets and keywords sorted by label. When a
// label is both a snippet and a keyword it appears once, as a keyword.
func (e Engine) Suggest(text string, caret int, lang language.Profile) []Item {
	tok, ok := CurrentToken(text, caret)
	if !ok || tok.Len() < max(e.MinPrefix, 1) {
		return nil
	}

	prefix := strings.ToLower(tok.Text)
	items := make([]Item, 0, 8)
	collect := func(candidates []string, kind Kind) {
		for _, c := range candidates {
			if strings.HasPrefix(strings.ToLower(c), prefix) {
				items = append(items, Item{Label: c, Kind: kind})
			}
		}
	}
	collect(lang.Snippets, KindSnippet)
	collect(lang.Keywords, KindKeyword)
	if len(items) == 0 {
		return nil
	}

	slices.SortStableFunc(items, func(a, b Item) int {
		if c := strings.Compare(a.Label, b.Label); c != 0 {
			return c
		}
		// Keywords sort ahead of snippets with the same label so Compact
		// keeps the keyword.
		return int(a.Kind) - int(b.Kind)
	})
	items = slices.CompactFunc(items, func(a, b Item) bool {
		return a.Label == b.Label
	})

	if e.MaxItems > 0 && len(items) > e.MaxItems {
		items = items[:e.MaxItems]
	}
	return items
}
