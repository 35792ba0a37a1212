package highlight

import (
	"unicode/utf8"

	"github.com/rivo/uniseg"

	"github.com/dshills/glint/internal/renderer/core"
)

// ComputeSpans matches every rule against text and returns the spans in
// rule order. Within a rule, spans are ordered by start offset and never
// overlap. Offsets are rune indices. A rule whose pattern does not compile
// contributes nothing.
func ComputeSpans(text string, rules []Rule) []core.StyleSpan {
	if text == "" || len(rules) == 0 {
		return nil
	}

	runes := []rune(text)
	var spans []core.StyleSpan
	for _, rule := range rules {
		spans = appendRuleSpans(spans, runes, rule)
	}

	if needsGraphemeSnap(text) {
		snapToGraphemes(text, len(runes), spans)
	}
	return spans
}

func appendRuleSpans(dst []core.StyleSpan, runes []rune, rule Rule) []core.StyleSpan {
	re, err := Compile(rule.Pattern)
	if err != nil {
		logger().Debug("skipping highlight rule",
			"kind", rule.Kind.String(),
			"error", err)
		return dst
	}

	m, err := re.FindRunesMatch(runes)
	for m != nil && err == nil {
		if m.Length > 0 {
			dst = append(dst, core.StyleSpan{
				Start: m.Index,
				End:   m.Index + m.Length,
				Color: rule.Color,
			})
		}
		m, err = re.FindNextMatch(m)
	}
	if err != nil {
		logger().Debug("highlight rule aborted",
			"kind", rule.Kind.String(),
			"pattern", rule.Pattern,
			"error", err)
	}
	return dst
}

// needsGraphemeSnap reports whether text can contain a multi-rune
// grapheme cluster. Pure ASCII without CR cannot.
func needsGraphemeSnap(text string) bool {
	for i := 0; i < len(text); i++ {
		if text[i] >= utf8.RuneSelf || text[i] == '\r' {
			return true
		}
	}
	return false
}

// snapToGraphemes widens spans so they start and end on grapheme
// cluster boundaries.
func snapToGraphemes(text string, n int, spans []core.StyleSpan) {
	if len(spans) == 0 {
		return
	}

	boundary := make([]bool, n+1)
	boundary[0] = true
	pos := 0
	state := -1
	for rest := text; rest != ""; {
		var cluster string
		cluster, rest, _, state = uniseg.StepString(rest, state)
		pos += utf8.RuneCountInString(cluster)
		boundary[pos] = true
	}

	for i := range spans {
		for spans[i].Start > 0 && !boundary[spans[i].Start] {
			spans[i].Start--
		}
		for spans[i].End < n && !boundary[spans[i].End] {
			spans[i].End++
		}
	}
}
