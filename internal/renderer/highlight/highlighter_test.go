package highlight

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/dshills/glint/internal/language"
	"github.com/dshills/glint/internal/renderer/core"
	"github.com/dshills/glint/internal/theme"
)

func jsProfile() language.Profile {
	return language.MustLookup(language.JavaScript)
}

func midnight() theme.Profile {
	th, _ := theme.Lookup(theme.Midnight)
	return th
}

// colorsOf returns the effective color of each rune in [start, end).
func colorsOf(st StyledText, start, end int) []core.Color {
	out := make([]core.Color, 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, st.ColorAt(i))
	}
	return out
}

func uniform(c core.Color, n int) []core.Color {
	out := make([]core.Color, n)
	for i := range out {
		out[i] = c
	}
	return out
}

func TestHighlightKeywordBoundary(t *testing.T) {
	p := DefaultPalette()
	lang := language.Profile{ID: "test", Keywords: []string{"for"}}
	th := midnight()

	st := Highlight("format", lang, th)
	assert.Empty(t, st.Spans)
	assert.Equal(t, uniform(th.Text, 6), st.Colors())

	st = Highlight("for (x)", lang, th)
	assert.Equal(t, uniform(p.Keyword, 3), colorsOf(st, 0, 3))
	assert.Equal(t, th.Text, st.ColorAt(3))
}

func TestHighlightStringLiteralWithEscapedQuote(t *testing.T) {
	p := DefaultPalette()
	st := Highlight("let s = \"a\\\"b\"; x", jsProfile(), midnight())

	var strSpans []core.StyleSpan
	for _, s := range st.Spans {
		if s.Color == p.String {
			strSpans = append(strSpans, s)
		}
	}
	require.Len(t, strSpans, 1)
	assert.Equal(t, 8, strSpans[0].Start)
	assert.Equal(t, 14, strSpans[0].End)

	assert.Equal(t, p.Keyword, st.ColorAt(0))
	assert.Equal(t, midnight().Text, st.ColorAt(16))
}

func TestHighlightStringQuotes(t *testing.T) {
	p := DefaultPalette()
	tests := []struct {
		name string
		text string
	}{
		{"double", `"abc"`},
		{"single", `'abc'`},
		{"backtick", "`abc`"},
		{"escaped single", `'it\'s'`},
		{"escaped backslash", `"a\\"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := Highlight(tt.text, jsProfile(), midnight())
			assert.Equal(t, uniform(p.String, st.Len()), st.Colors())
		})
	}
}

func TestHighlightStringsWinOverComments(t *testing.T) {
	p := DefaultPalette()
	text := `x // see "docs" for`
	st := Highlight(text, jsProfile(), midnight())

	assert.Equal(t, midnight().Text, st.ColorAt(0))
	assert.Equal(t, p.Comment, st.ColorAt(2))
	assert.Equal(t, uniform(p.String, 6), colorsOf(st, 9, 15))
	// "for" is a keyword but the comment paints over it.
	assert.Equal(t, uniform(p.Comment, 3), colorsOf(st, 16, 19))
}

func TestHighlightGeneralComments(t *testing.T) {
	p := DefaultPalette()
	text := "/* a\n b */ go 42"
	st := Highlight(text, language.MustLookup(language.Go), midnight())

	assert.Equal(t, uniform(p.Comment, 10), colorsOf(st, 0, 10))
	assert.Equal(t, uniform(p.Keyword, 2), colorsOf(st, 11, 13))
	assert.Equal(t, uniform(p.Number, 2), colorsOf(st, 14, 16))
}

func TestHighlightNumbers(t *testing.T) {
	p := DefaultPalette()
	st := Highlight("x1 = 3.14", jsProfile(), midnight())

	assert.Equal(t, uniform(midnight().Text, 2), colorsOf(st, 0, 2))
	assert.Equal(t, uniform(p.Number, 4), colorsOf(st, 5, 9))
}

func TestHighlightMarkup(t *testing.T) {
	p := DefaultPalette()
	html := language.MustLookup(language.HTML)

	t.Run("tags", func(t *testing.T) {
		st := Highlight("<p>hi</p>", html, midnight())
		assert.Equal(t, uniform(p.Tag, 3), colorsOf(st, 0, 3))
		assert.Equal(t, uniform(midnight().Text, 2), colorsOf(st, 3, 5))
		assert.Equal(t, uniform(p.Tag, 4), colorsOf(st, 5, 9))
	})

	t.Run("multi-line comment with tag inside", func(t *testing.T) {
		text := "<!-- a\n<b> -->"
		st := Highlight(text, html, midnight())
		assert.Equal(t, uniform(p.Comment, 6), colorsOf(st, 0, 6))
		assert.Equal(t, uniform(p.Tag, 3), colorsOf(st, 7, 10))
		assert.Equal(t, uniform(p.Comment, 4), colorsOf(st, 10, 14))
	})

	t.Run("attribute string", func(t *testing.T) {
		text := `<a href="x">`
		st := Highlight(text, html, midnight())
		assert.Equal(t, uniform(p.Tag, 8), colorsOf(st, 0, 8))
		assert.Equal(t, uniform(p.String, 3), colorsOf(st, 8, 11))
		assert.Equal(t, p.Tag, st.ColorAt(11))
	})
}

func TestHighlightStylesheet(t *testing.T) {
	p := DefaultPalette()
	text := "body {\n  margin: 0;\n} /* end */"
	st := Highlight(text, language.MustLookup(language.CSS), midnight())

	assert.Equal(t, uniform(midnight().Text, 4), colorsOf(st, 0, 4))
	// margin is also a keyword; the property rule comes later and wins.
	assert.Equal(t, uniform(p.Property, 6), colorsOf(st, 9, 15))
	assert.Equal(t, p.Number, st.ColorAt(17))
	assert.Equal(t, uniform(p.Comment, 9), colorsOf(st, 22, 31))
}

func TestHighlightStylesheetKeywordWithHyphen(t *testing.T) {
	p := DefaultPalette()
	st := Highlight("x { align-items }", language.MustLookup(language.CSS), midnight())
	assert.Equal(t, uniform(p.Keyword, 11), colorsOf(st, 4, 15))
}

func TestHighlightMalformedInput(t *testing.T) {
	inputs := []string{
		"",
		`"unterminated`,
		"/* never closed",
		"<!-- open",
		"<div",
		"`",
		"\\",
		"\x00\xff\xfe",
	}

	for _, lang := range language.All() {
		for _, in := range inputs {
			assert.NotPanics(t, func() {
				st := Highlight(in, lang, midnight())
				assert.Len(t, st.Colors(), st.Len())
			}, "%s %q", lang.ID, in)
		}
	}
}

func TestHighlightUsesThemeTextAsDefault(t *testing.T) {
	paper, _ := theme.Lookup(theme.Paper)
	st := Highlight("plain", jsProfile(), paper)
	assert.Equal(t, paper.Text, st.Default)
	assert.Equal(t, uniform(paper.Text, 5), st.Colors())
}

func TestHighlighterCustomPalette(t *testing.T) {
	pal, err := DefaultPalette().WithOverrides(map[string]string{"keyword": "#ff0000"})
	require.NoError(t, err)

	h := New(pal)
	assert.Equal(t, pal, h.Palette())

	st := h.Highlight("const", jsProfile(), midnight())
	assert.Equal(t, core.ColorFromRGB(255, 0, 0), st.ColorAt(0))
}

func TestPaletteOverrides(t *testing.T) {
	_, err := DefaultPalette().WithOverrides(map[string]string{"keyword": "nope"})
	assert.Error(t, err)

	_, err = DefaultPalette().WithOverrides(map[string]string{"operator": "#ffffff"})
	assert.ErrorContains(t, err, "unknown token type")

	p := DefaultPalette()
	for _, tt := range TokenTypes() {
		_, ok := p.ColorFor(tt)
		assert.True(t, ok, tt.String())
	}
	_, ok := p.ColorFor(TokenNone)
	assert.False(t, ok)
}

func TestRulesOrder(t *testing.T) {
	h := New(DefaultPalette())

	kinds := func(rules []Rule) []TokenType {
		out := make([]TokenType, len(rules))
		for i, r := range rules {
			out[i] = r.Kind
		}
		return out
	}

	assert.Equal(t,
		[]TokenType{TokenKeyword, TokenNumber, TokenComment, TokenComment, TokenString},
		kinds(h.Rules(jsProfile())))
	assert.Equal(t,
		[]TokenType{TokenKeyword, TokenNumber, TokenComment, TokenTag, TokenString},
		kinds(h.Rules(language.MustLookup(language.HTML))))
	assert.Equal(t,
		[]TokenType{TokenKeyword, TokenNumber, TokenComment, TokenProperty, TokenString},
		kinds(h.Rules(language.MustLookup(language.CSS))))

	// No keywords: the keyword rule is omitted.
	assert.Equal(t,
		[]TokenType{TokenNumber, TokenComment, TokenComment, TokenString},
		kinds(h.Rules(language.Profile{ID: "bare"})))
}

func TestKeywordPattern(t *testing.T) {
	assert.Equal(t, "", KeywordPattern(nil))
	assert.Equal(t, "", KeywordPattern([]string{""}))
	assert.Equal(t, `\b(for|form)\b`, KeywordPattern([]string{"for", "form"}))
	assert.Equal(t, `\b(c\+\+|a\.b)\b`, KeywordPattern([]string{"c++", "", "a.b"}))

	spans := ComputeSpans("axb a.b", []Rule{{Pattern: KeywordPattern([]string{"a.b"}), Color: red}})
	assert.Equal(t, []core.StyleSpan{{Start: 4, End: 7, Color: red}}, spans)
}

func TestPropertyHighlightIdempotent(t *testing.T) {
	langs := language.All()
	rapid.Check(t, func(rt *rapid.T) {
		text := rapid.String().Draw(rt, "text")
		lang := rapid.SampledFrom(langs).Draw(rt, "lang")

		a := Highlight(text, lang, midnight())
		b := Highlight(text, lang, midnight())
		if diff := cmp.Diff(a, b); diff != "" {
			rt.Fatalf("highlight not idempotent (-first +second):\n%s", diff)
		}
	})
}

func TestPropertyHighlightSpansWithinBounds(t *testing.T) {
	langs := language.All()
	rapid.Check(t, func(rt *rapid.T) {
		text := rapid.StringMatching(`[a-z0-9 "'/*<>!:\-\n\\{}.]{0,60}`).Draw(rt, "text")
		lang := rapid.SampledFrom(langs).Draw(rt, "lang")

		st := Highlight(text, lang, midnight())
		n := st.Len()
		for _, s := range st.Spans {
			require.GreaterOrEqual(rt, s.Start, 0)
			require.Less(rt, s.Start, s.End)
			require.LessOrEqual(rt, s.End, n)
		}
	})
}
