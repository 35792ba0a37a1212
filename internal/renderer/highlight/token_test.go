package highlight

import (
	"testing"
)

func TestTokenTypeString(t *testing.T) {
	tests := []struct {
		tokenType TokenType
		expected  string
	}{
		{TokenNone, "none"},
		{TokenKeyword, "keyword"},
		{TokenNumber, "number"},
		{TokenComment, "comment"},
		{TokenTag, "tag"},
		{TokenProperty, "property"},
		{TokenString, "string"},
		{TokenType(200), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.tokenType.String(); got != tt.expected {
				t.Errorf("TokenType.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestTokenTypeFromString(t *testing.T) {
	for _, tt := range TokenTypes() {
		if got := TokenTypeFromString(tt.String()); got != tt {
			t.Errorf("TokenTypeFromString(%q) = %v, want %v", tt.String(), got, tt)
		}
	}
	if got := TokenTypeFromString("comment.line"); got != TokenNone {
		t.Errorf("TokenTypeFromString(comment.line) = %v, want none", got)
	}
}

func TestTokenTypes(t *testing.T) {
	types := TokenTypes()
	if len(types) != 6 {
		t.Fatalf("TokenTypes() length = %d, want 6", len(types))
	}
	if types[0] != TokenKeyword || types[len(types)-1] != TokenString {
		t.Errorf("TokenTypes() = %v, want keyword first and string last", types)
	}
}
