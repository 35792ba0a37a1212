package app

import (
	"fmt"

	"github.com/dshills/glint/internal/renderer/backend"
	"github.com/dshills/glint/internal/theme"
)

// HandleEvent applies one backend event to the document. It returns
// ErrQuit when the user asks to exit.
func (app *Application) HandleEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventKey:
		return app.handleKeyEvent(ev)
	case backend.EventInterrupt:
		if r, ok := ev.Data.(configReload); ok {
			return app.applyReload(r)
		}
		return nil
	default:
		// Resizes only need a redraw.
		return nil
	}
}

// handleKeyEvent processes keyboard input events.
func (app *Application) handleKeyEvent(ev backend.Event) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	s, doc := app.session, app.doc
	edited := false

	switch ev.Key {
	case backend.KeyCtrlQ, backend.KeyCtrlC:
		return ErrQuit

	case backend.KeyCtrlT:
		s.CycleTheme(doc)
		app.status = "Theme: " + doc.Theme.DisplayName
	case backend.KeyCtrlL:
		s.CycleLanguage(doc)
		app.status = "Language: " + doc.Language.DisplayName
	case backend.KeyCtrlF:
		if s.Format(doc) {
			app.status = "Formatted"
		} else {
			app.status = "Already formatted"
		}
		edited = true
	case backend.KeyCtrlR:
		s.Reset(doc)
		app.status = "Reset to " + doc.Language.DisplayName + " template"
		app.top, app.left = 0, 0
		edited = true

	case backend.KeyTab:
		if !app.popupHidden && s.AcceptFirst(doc) {
			app.status = ""
		} else {
			doc.Insert("  ")
		}
		edited = true
	case backend.KeyEnter:
		doc.Insert("\n")
		edited = true
	case backend.KeyBackspace:
		doc.Backspace()
		edited = true
	case backend.KeyRune:
		doc.Insert(string(ev.Rune))
		edited = true
	case backend.KeyEscape:
		app.popupHidden = true

	case backend.KeyLeft:
		doc.MoveCaret(-1)
	case backend.KeyRight:
		doc.MoveCaret(1)
	case backend.KeyUp:
		doc.MoveLine(-1)
	case backend.KeyDown:
		doc.MoveLine(1)
	case backend.KeyHome:
		doc.MoveLineStart()
	case backend.KeyEnd:
		doc.MoveLineEnd()
	case backend.KeyPageUp:
		doc.MoveLine(-app.pageSize())
	case backend.KeyPageDown:
		doc.MoveLine(app.pageSize())
	}

	if edited {
		app.popupHidden = false
	}
	return nil
}

func (app *Application) pageSize() int {
	if app.backend == nil {
		return 1
	}
	_, h := app.backend.Size()
	return max(h-2, 1)
}

// applyReload installs reloaded settings. A failed reload keeps the
// previous settings and reports the error in the status line.
func (app *Application) applyReload(r configReload) error {
	if r.err != nil {
		app.metrics.RecordReload(r.err)
		app.setStatus(fmt.Sprintf("Config error: %v", r.err))
		return nil
	}
	if err := app.session.Apply(r.cfg); err != nil {
		app.metrics.RecordReload(err)
		return &OperationError{Op: "apply config", Target: app.opts.ConfigPath, Err: err}
	}
	app.metrics.RecordReload(nil)

	app.mu.Lock()
	defer app.mu.Unlock()

	// Pick up edited colors for the current theme, or fall back to the
	// configured one if it no longer exists.
	themes := app.session.Themes()
	if th, ok := themes.Lookup(app.doc.Theme.ID); ok {
		app.doc.Theme = th
	} else if th, err := themes.Resolve(theme.ID(r.cfg.Theme)); err == nil {
		app.doc.Theme = th
	}
	app.status = "Config reloaded"
	return nil
}
