package editor

import (
	"strings"

	"github.com/rivo/uniseg"
)

// Insert types s at the caret.
func (d *Document) Insert(s string) {
	if s == "" {
		return
	}
	d.clampCaret()
	runes := []rune(d.Text)
	ins := []rune(s)

	out := make([]rune, 0, len(runes)+len(ins))
	out = append(out, runes[:d.Caret]...)
	out = append(out, ins...)
	out = append(out, runes[d.Caret:]...)
	d.setText(string(out), d.Caret+len(ins))
}

// Backspace deletes the grapheme cluster before the caret. It reports
// whether anything was deleted.
func (d *Document) Backspace() bool {
	d.clampCaret()
	if d.Caret == 0 {
		return false
	}
	runes := []rune(d.Text)
	start := d.Caret - lastClusterLen(string(runes[:d.Caret]))
	d.setText(string(runes[:start])+string(runes[d.Caret:]), start)
	return true
}

// lastClusterLen returns the rune length of the final grapheme cluster.
func lastClusterLen(s string) int {
	n := 0
	state := -1
	var cluster string
	for s != "" {
		cluster, s, _, state = uniseg.StepString(s, state)
		n = len([]rune(cluster))
	}
	return n
}

// MoveCaret moves the caret by delta grapheme clusters, stopping at the
// ends of the text.
func (d *Document) MoveCaret(delta int) {
	d.clampCaret()
	bounds := clusterBounds(d.Text)
	i := nearestBound(bounds, d.Caret)
	i = min(max(i+delta, 0), len(bounds)-1)
	d.Caret = bounds[i]
}

// clusterBounds returns the rune offsets of every grapheme boundary,
// including 0 and the text length.
func clusterBounds(s string) []int {
	bounds := []int{0}
	pos := 0
	state := -1
	var cluster string
	for s != "" {
		cluster, s, _, state = uniseg.StepString(s, state)
		pos += len([]rune(cluster))
		bounds = append(bounds, pos)
	}
	return bounds
}

func nearestBound(bounds []int, caret int) int {
	for i, b := range bounds {
		if b >= caret {
			return i
		}
	}
	return len(bounds) - 1
}

// MoveLine moves the caret delta lines up or down, keeping the column
// where the target line is long enough.
func (d *Document) MoveLine(delta int) {
	line, col := d.Position()
	lines := strings.Split(d.Text, "\n")
	target := min(max(line+delta, 0), len(lines)-1)

	offset := 0
	for _, l := range lines[:target] {
		offset += len([]rune(l)) + 1
	}
	d.Caret = offset + min(col, len([]rune(lines[target])))
}

// Position returns the zero-based line and column (in runes) of the caret.
func (d *Document) Position() (line, col int) {
	d.clampCaret()
	runes := []rune(d.Text)
	for _, r := range runes[:d.Caret] {
		if r == '\n' {
			line++
			col = 0
			continue
		}
		col++
	}
	return line, col
}

// MoveLineStart moves the caret to the start of its line.
func (d *Document) MoveLineStart() {
	_, col := d.Position()
	d.Caret -= col
}

// MoveLineEnd moves the caret to the end of its line.
func (d *Document) MoveLineEnd() {
	d.clampCaret()
	runes := []rune(d.Text)
	for d.Caret < len(runes) && runes[d.Caret] != '\n' {
		d.Caret++
	}
}
