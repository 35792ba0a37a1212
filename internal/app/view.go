package app

import (
	"fmt"
	"strconv"
	"time"

	"github.com/dshills/glint/internal/completion"
	"github.com/dshills/glint/internal/renderer/backend"
	"github.com/dshills/glint/internal/renderer/core"
	"github.com/dshills/glint/internal/renderer/highlight"
)

// tabWidth is the number of columns a tab occupies on screen.
const tabWidth = 2

// cellWidth returns the columns r occupies.
func cellWidth(r rune) int {
	if r == '\t' {
		return tabWidth
	}
	return core.RuneWidth(r)
}

// columns returns the display width of the first n runes of line.
func columns(line []rune, n int) int {
	w := 0
	for _, r := range line[:min(n, len(line))] {
		w += cellWidth(r)
	}
	return w
}

// Draw renders the document, completion popup and status line.
func (app *Application) Draw() {
	start := time.Now()
	defer func() { app.metrics.RecordFrame(time.Since(start)) }()

	app.mu.Lock()
	defer app.mu.Unlock()

	b := app.backend
	if b == nil {
		return
	}
	w, h := b.Size()
	if w <= 0 || h <= 0 {
		return
	}

	doc := app.doc
	th := doc.Theme
	st := app.session.Highlight(doc)
	lines := st.Lines()

	b.Clear()
	b.Fill(backend.Rect{Right: w, Bottom: h}, core.NewCell(' ', th.Text, th.Background))

	textRows := max(h-1, 0)
	gutterW := len(strconv.Itoa(len(lines))) + 1
	textW := max(w-gutterW, 1)

	line, col := doc.Position()
	lineRunes := []rune(lineText(st.Text, lines, line))
	caretX := columns(lineRunes, col)
	app.scrollTo(line, caretX, textRows, textW)

	gutter := th.Text.Blend(th.Background, 0.5)
	for row := 0; row < textRows; row++ {
		n := app.top + row
		if n >= len(lines) {
			break
		}
		num := fmt.Sprintf("%*d ", gutterW-1, n+1)
		app.drawString(0, row, num, gutter, th.Background, gutterW)
		app.drawRuns(lines[n], gutterW, row, textW, th.Background)
	}

	if textRows > 0 {
		cx, cy := gutterW+caretX-app.left, line-app.top
		caretCell := b.GetCell(cx, cy)
		if caretCell.Rune == 0 {
			caretCell.Rune = ' '
		}
		b.SetCell(cx, cy, core.NewCell(caretCell.Rune, th.Background, th.Caret))
		b.ShowCursor(cx, cy)

		if !app.popupHidden {
			app.drawPopup(app.session.Suggestions(doc), cx, cy, w, textRows)
		}
	} else {
		b.HideCursor()
	}

	if h > 0 {
		app.drawStatus(h-1, w)
	}
	b.Show()
}

// lineText returns the text of line n.
func lineText(text string, lines [][]highlight.Run, n int) string {
	if n < 0 || n >= len(lines) || len(lines[n]) == 0 {
		return ""
	}
	runs := lines[n]
	runes := []rune(text)
	return string(runes[runs[0].Start:runs[len(runs)-1].End])
}

// scrollTo adjusts the viewport so the caret cell is visible.
func (app *Application) scrollTo(line, x, rows, cols int) {
	if rows > 0 {
		if line < app.top {
			app.top = line
		} else if line >= app.top+rows {
			app.top = line - rows + 1
		}
	}
	if x < app.left {
		app.left = x
	} else if x >= app.left+cols {
		app.left = x - cols + 1
	}
}

// drawRuns paints one line of highlighted runs starting at screen column x0,
// shifted left by the horizontal scroll.
func (app *Application) drawRuns(runs []highlight.Run, x0, y, width int, bg core.Color) {
	col := 0
	for _, run := range runs {
		for _, r := range run.Text {
			cw := cellWidth(r)
			sx := col - app.left
			col += cw
			if cw == 0 || sx < 0 {
				continue
			}
			if sx+cw > width {
				return
			}
			if r == '\t' {
				for i := range cw {
					app.backend.SetCell(x0+sx+i, y, core.NewCell(' ', run.Color, bg))
				}
				continue
			}
			app.backend.SetCell(x0+sx, y, core.NewCell(r, run.Color, bg))
		}
	}
}

// drawString paints s at (x, y), clipped to width columns.
func (app *Application) drawString(x, y int, s string, fg, bg core.Color, width int) int {
	col := 0
	for _, r := range s {
		cw := core.RuneWidth(r)
		if cw == 0 {
			continue
		}
		if col+cw > width {
			break
		}
		app.backend.SetCell(x+col, y, core.NewCell(r, fg, bg))
		col += cw
	}
	return col
}

// drawPopup lists suggestions below the caret, or above it when there is
// no room. The first item is the one Tab accepts.
func (app *Application) drawPopup(items []completion.Item, cx, cy, screenW, textRows int) {
	if len(items) == 0 {
		return
	}
	items = items[:min(len(items), app.opts.PopupRows)]

	labelW := 0
	for _, it := range items {
		labelW = max(labelW, len([]rune(it.Label)))
	}
	boxW := min(labelW+len(" keyword")+2, screenW)

	top := cy + 1
	if top+len(items) > textRows {
		top = cy - len(items)
	}
	if top < 0 {
		top = 0
	}
	left := min(cx, max(screenW-boxW, 0))

	th := app.doc.Theme
	bg := th.Background.Blend(th.Text, 0.15)
	dim := th.Text.Blend(bg, 0.5)
	for i, it := range items {
		y := top + i
		if y >= textRows {
			break
		}
		fg := th.Text
		if i == 0 {
			fg = th.Caret
		}
		app.backend.Fill(backend.Rect{Left: left, Top: y, Right: left + boxW, Bottom: y + 1}, core.NewCell(' ', fg, bg))
		app.drawString(left+1, y, it.Label, fg, bg, boxW-1)
		kind := it.Kind.String()
		app.drawString(left+boxW-1-len(kind), y, kind, dim, bg, len(kind))
	}
}

// drawStatus paints the status line: name, language, theme, position and
// the last message.
func (app *Application) drawStatus(y, w int) {
	doc := app.doc
	th := doc.Theme
	name := doc.Name
	if doc.Modified {
		name += " *"
	}
	line, col := doc.Position()
	text := fmt.Sprintf(" %s | %s | %s | Ln %d, Col %d", name, doc.Language.DisplayName, th.DisplayName, line+1, col+1)
	if app.status != "" {
		text += " | " + app.status
	}
	app.backend.Fill(backend.Rect{Top: y, Right: w, Bottom: y + 1}, core.NewCell(' ', th.Background, th.Text))
	app.drawString(0, y, text, th.Background, th.Text, w)
}
