package highlight

import (
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/dshills/glint/internal/language"
	"github.com/dshills/glint/internal/theme"
)

// Patterns shared by the built-in rule sets.
const (
	NumberPattern        = `\b\d+(?:\.\d+)?\b`
	StringPattern        = `"(?:\\.|[^\\"])*"|'(?:\\.|[^\\'])*'|` + "`(?:\\\\.|[^\\\\`])*`"
	LineCommentPattern   = `//.*`
	BlockCommentPattern  = `/\*[\s\S]*?\*/`
	MarkupCommentPattern = `<!--(?:.|\n)*?-->`
	TagPattern           = `</?\w+[^>]*>`
	PropertyPattern      = `\b[a-z-]+(?=\s*:)`
)

// structuralRules builds the family-specific rules that sit between the
// number rule and the string rule.
var structuralRules = map[language.Family]func(Palette) []Rule{
	language.FamilyMarkup: func(p Palette) []Rule {
		return []Rule{
			{Kind: TokenComment, Pattern: MarkupCommentPattern, Color: p.Comment},
			{Kind: TokenTag, Pattern: TagPattern, Color: p.Tag},
		}
	},
	language.FamilyStylesheet: func(p Palette) []Rule {
		return []Rule{
			{Kind: TokenComment, Pattern: BlockCommentPattern, Color: p.Comment},
			{Kind: TokenProperty, Pattern: PropertyPattern, Color: p.Property},
		}
	},
	language.FamilyGeneral: func(p Palette) []Rule {
		return []Rule{
			{Kind: TokenComment, Pattern: LineCommentPattern, Color: p.Comment},
			{Kind: TokenComment, Pattern: BlockCommentPattern, Color: p.Comment},
		}
	},
}

// Highlighter applies a language's rule set with a fixed accent palette.
// It holds no per-call state and is safe for concurrent use.
type Highlighter struct {
	palette    Palette
	structural map[language.Family][]Rule
}

// New creates a highlighter for the given palette.
func New(p Palette) *Highlighter {
	h := &Highlighter{
		palette:    p,
		structural: make(map[language.Family][]Rule, len(structuralRules)),
	}
	for family, build := range structuralRules {
		h.structural[family] = build(p)
	}
	return h
}

var defaultHighlighter = New(DefaultPalette())

// Highlight colors text with the default palette.
func Highlight(text string, lang language.Profile, th theme.Profile) StyledText {
	return defaultHighlighter.Highlight(text, lang, th)
}

// Palette returns the accent palette.
func (h *Highlighter) Palette() Palette {
	return h.palette
}

// Highlight colors text for lang. Characters no rule matches keep the
// theme's text color.
func (h *Highlighter) Highlight(text string, lang language.Profile, th theme.Profile) StyledText {
	return StyledText{
		Text:    text,
		Default: th.Text,
		Spans:   ComputeSpans(text, h.Rules(lang)),
	}
}

// Rules returns the ordered rule list for lang. Later rules win.
func (h *Highlighter) Rules(lang language.Profile) []Rule {
	rules := make([]Rule, 0, 5)
	if kw := KeywordPattern(lang.Keywords); kw != "" {
		rules = append(rules, Rule{Kind: TokenKeyword, Pattern: kw, Color: h.palette.Keyword})
	}
	rules = append(rules, Rule{Kind: TokenNumber, Pattern: NumberPattern, Color: h.palette.Number})

	structural, ok := h.structural[lang.Family]
	if !ok {
		structural = h.structural[language.FamilyGeneral]
	}
	rules = append(rules, structural...)

	return append(rules, Rule{Kind: TokenString, Pattern: StringPattern, Color: h.palette.String})
}

// KeywordPattern builds a whole-word alternation over the escaped
// keywords. It returns "" when there is nothing to match.
func KeywordPattern(keywords []string) string {
	alts := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		alts = append(alts, regexp2.Escape(kw))
	}
	if len(alts) == 0 {
		return ""
	}
	return `\b(` + strings.Join(alts, "|") + `)\b`
}
