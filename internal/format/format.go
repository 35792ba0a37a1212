// Package format implements the whitespace formatter and a line diff for
// previewing its changes.
package format

import (
	"strings"
	"unicode"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Format normalizes whitespace: blank lines between line breaks are
// dropped, tabs become two spaces, each line is trimmed, and the result
// ends with a single newline.
func Format(text string) string {
	lines := strings.FieldsFunc(text, isNewline)
	for i, line := range lines {
		lines[i] = strings.TrimFunc(strings.ReplaceAll(line, "\t", "  "), unicode.IsSpace)
	}
	return strings.Join(lines, "\n") + "\n"
}

func isNewline(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', 0x85, 0x2028, 0x2029:
		return true
	}
	return false
}

// Op is the kind of a diff line.
type Op int

const (
	OpEqual Op = iota
	OpDelete
	OpInsert
)

// Prefix returns the unified-diff marker for the op.
func (o Op) Prefix() string {
	switch o {
	case OpDelete:
		return "-"
	case OpInsert:
		return "+"
	default:
		return " "
	}
}

// Line is one line of a line-level diff, without its newline.
type Line struct {
	Op   Op
	Text string
}

// Diff computes a line-level diff between before and after.
func Diff(before, after string) []Line {
	dmp := diffmatchpatch.New()
	a, b, lineArray := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	var out []Line
	for _, d := range diffs {
		op := OpEqual
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			op = OpDelete
		case diffmatchpatch.DiffInsert:
			op = OpInsert
		}
		for _, text := range splitLines(d.Text) {
			out = append(out, Line{Op: op, Text: text})
		}
	}
	return out
}

// splitLines splits s at '\n', dropping the terminator of the last line.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

// Unified renders a diff one line per entry with "-", "+" or " " markers.
// It returns "" when before and after are identical.
func Unified(before, after string) string {
	if before == after {
		return ""
	}
	var b strings.Builder
	for _, l := range Diff(before, after) {
		b.WriteString(l.Op.Prefix())
		b.WriteString(l.Text)
		b.WriteByte('\n')
	}
	return b.String()
}

// Changed reports whether formatting text would modify it.
func Changed(text string) bool {
	return Format(text) != text
}
