// Package highlight provides regex-based syntax highlighting.
//
// Highlighting is deliberately approximate: an ordered list of rules is
// matched against the whole buffer and later rules paint over earlier
// ones. There is no lexer state and no parse tree, so nested or
// unterminated constructs are colored however the patterns happen to
// match them.
package highlight

// TokenType represents the accent category a rule paints.
type TokenType uint8

// Token types, in the order the highlighter layers them.
const (
	TokenNone TokenType = iota
	TokenKeyword
	TokenNumber
	TokenComment
	TokenTag
	TokenProperty
	TokenString

	tokenTypeCount
)

var tokenTypeNames = [tokenTypeCount]string{
	TokenNone:     "none",
	TokenKeyword:  "keyword",
	TokenNumber:   "number",
	TokenComment:  "comment",
	TokenTag:      "tag",
	TokenProperty: "property",
	TokenString:   "string",
}

// String returns the string representation of a token type.
func (t TokenType) String() string {
	if t < tokenTypeCount {
		return tokenTypeNames[t]
	}
	return "unknown"
}

// TokenTypeFromString converts a name such as "keyword" to a TokenType.
// Unknown names map to TokenNone.
func TokenTypeFromString(name string) TokenType {
	for i, n := range tokenTypeNames {
		if n == name {
			return TokenType(i)
		}
	}
	return TokenNone
}

// TokenTypes returns every accent category, excluding TokenNone.
func TokenTypes() []TokenType {
	out := make([]TokenType, 0, tokenTypeCount-1)
	for t := TokenKeyword; t < tokenTypeCount; t++ {
		out = append(out, t)
	}
	return out
}
