package completion

import (
	"slices"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/dshills/glint/internal/language"
)

func testProfile() language.Profile {
	return language.Profile{
		ID:       "test",
		Keywords: []string{"for", "form", "while"},
		Snippets: []string{"form.submit()", "for"},
	}
}

func TestCurrentToken(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		caret int
		want  Token
		ok    bool
	}{
		{"end of text", "const fetchData", 15, Token{"fetchData", 6, 15}, true},
		{"caret past end is clamped", "const fetchData", 16, Token{"fetchData", 6, 15}, true},
		{"mid word", "const fetchData", 9, Token{"fet", 6, 9}, true},
		{"after space", "x = ", 4, Token{}, false},
		{"start of text", "abc", 0, Token{}, false},
		{"negative caret", "abc", -5, Token{}, false},
		{"empty", "", 0, Token{}, false},
		{"underscore and digits", "a.my_var2", 9, Token{"my_var2", 2, 9}, true},
		{"unicode letters", "x := größe", 10, Token{"größe", 5, 10}, true},
		{"punctuation stops", "foo(bar", 7, Token{"bar", 4, 7}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CurrentToken(tt.text, tt.caret)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompletions(t *testing.T) {
	lang := testProfile()

	got := Completions("x fo", 4, lang)
	assert.Equal(t, []string{"for", "form", "form.submit()"}, got)
	assert.True(t, slices.IsSorted(got))

	assert.Equal(t, []string{"while"}, Completions("WH", 2, lang), "matching is case-insensitive")
	assert.Empty(t, Completions("f", 1, lang), "single-character tokens produce nothing")
	assert.Empty(t, Completions("fo ", 3, lang), "no token at caret")
	assert.Empty(t, Completions("zz", 2, lang))
}

func TestCompletionsNoDuplicates(t *testing.T) {
	got := Completions("fo", 2, testProfile())
	seen := make(map[string]bool)
	for _, s := range got {
		assert.False(t, seen[s], "duplicate suggestion %q", s)
		seen[s] = true
	}
}

func TestCompletionsBuiltinLanguage(t *testing.T) {
	js := language.MustLookup(language.JavaScript)
	assert.Equal(t,
		[]string{`console.log("debug")`, "const", "continue"},
		Completions("co", 2, js))
}

func TestSuggestKinds(t *testing.T) {
	items := Suggest("fo", 2, testProfile())
	require.Len(t, items, 3)
	assert.Equal(t, Item{Label: "for", Kind: KindKeyword}, items[0])
	assert.Equal(t, Item{Label: "form", Kind: KindKeyword}, items[1])
	assert.Equal(t, Item{Label: "form.submit()", Kind: KindSnippet}, items[2])

	assert.Equal(t, "keyword", KindKeyword.String())
	assert.Equal(t, "snippet", KindSnippet.String())
	assert.Equal(t, "unknown", Kind(9).String())
}

func TestEngineLimits(t *testing.T) {
	lang := testProfile()

	e := Engine{MinPrefix: 1, MaxItems: 2}
	assert.Equal(t, []string{"for", "form"}, e.Completions("f", 1, lang))

	e = Engine{MinPrefix: 4}
	assert.Empty(t, e.Completions("for", 3, lang))
	assert.Equal(t, []string{"form", "form.submit()"}, e.Completions("form", 4, lang))

	e = Engine{}
	assert.Equal(t, []string{"while"}, e.Completions("w", 1, lang), "zero MinPrefix behaves as one")
}

func TestApply(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		caret      int
		suggestion string
		wantText   string
		wantCaret  int
	}{
		{"replace token", "const fo", 8, "for", "const for", 9},
		{"replace mid text", "a fo b", 4, "form", "a form b", 6},
		{"insert without token", "x = ", 4, "fetch()", "x = fetch()", 11},
		{"insert at start", "abc", 0, "z", "zabc", 1},
		{"clamped caret", "fo", 10, "for", "for", 3},
		{"multibyte", "é fo", 4, "for", "é for", 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, caret := Apply(tt.text, tt.caret, tt.suggestion)
			assert.Equal(t, tt.wantText, text)
			assert.Equal(t, tt.wantCaret, caret)
		})
	}
}

func TestPropertyApplyCaretAfterSuggestion(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		text := rapid.StringMatching(`[a-z_ .()]{0,30}`).Draw(rt, "text")
		caret := rapid.IntRange(-2, utf8.RuneCountInString(text)+2).Draw(rt, "caret")
		suggestion := rapid.StringMatching(`[a-z]{1,8}`).Draw(rt, "suggestion")

		out, newCaret := Apply(text, caret, suggestion)
		runes := []rune(out)
		require.LessOrEqual(rt, newCaret, len(runes))
		require.GreaterOrEqual(rt, newCaret, len([]rune(suggestion)))
		require.Equal(rt, suggestion, string(runes[newCaret-len([]rune(suggestion)):newCaret]))
	})
}

func TestPropertyCompletionsSortedUnique(t *testing.T) {
	langs := language.All()
	rapid.Check(t, func(rt *rapid.T) {
		lang := rapid.SampledFrom(langs).Draw(rt, "lang")
		text := rapid.StringMatching(`[a-z ]{0,12}`).Draw(rt, "text")
		caret := rapid.IntRange(0, len(text)).Draw(rt, "caret")

		got := Completions(text, caret, lang)
		require.True(rt, slices.IsSorted(got))
		require.Equal(rt, len(got), len(slices.Compact(slices.Clone(got))))
	})
}
