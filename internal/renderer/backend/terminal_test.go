package backend

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/glint/internal/renderer/core"
)

func newSim(t *testing.T, w, h int) (*Terminal, tcell.SimulationScreen) {
	t.Helper()
	term, screen, err := NewSimulationTerminal(w, h)
	if err != nil {
		t.Fatalf("NewSimulationTerminal: %v", err)
	}
	if err := term.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(term.Shutdown)
	return term, screen
}

// nextEvent polls past resize events.
func nextEvent(term *Terminal) Event {
	for {
		ev := term.PollEvent()
		if ev.Type != EventResize {
			return ev
		}
	}
}

func TestTerminalSize(t *testing.T) {
	term, _ := newSim(t, 40, 10)
	w, h := term.Size()
	if w != 40 || h != 10 {
		t.Errorf("expected (40, 10), got (%d, %d)", w, h)
	}
}

func TestTerminalSetCellShow(t *testing.T) {
	term, screen := newSim(t, 10, 3)

	fg := core.ColorFromRGB(255, 0, 0)
	bg := core.ColorFromRGB(0, 0, 255)
	term.Clear()
	term.SetCell(2, 1, core.NewCell('Q', fg, bg))
	term.Show()

	cells, w, _ := screen.GetContents()
	got := cells[1*w+2]
	if len(got.Runes) == 0 || got.Runes[0] != 'Q' {
		t.Fatalf("expected 'Q' at (2, 1), got %q", got.Runes)
	}

	cell := term.GetCell(2, 1)
	if cell.Rune != 'Q' || cell.Fg != fg || cell.Bg != bg {
		t.Errorf("GetCell mismatch: %+v", cell)
	}
}

func TestTerminalFill(t *testing.T) {
	term, _ := newSim(t, 6, 3)

	cell := core.NewCell('#', core.ColorWhite, core.ColorBlack)
	term.Fill(Rect{Left: 4, Top: 2, Right: 100, Bottom: 100}, cell)

	if got := term.GetCell(5, 2); got.Rune != '#' {
		t.Errorf("expected '#', got %q", got.Rune)
	}
	if got := term.GetCell(3, 2); got.Rune == '#' {
		t.Error("cell left of rect should not be filled")
	}
}

func TestTerminalCursor(t *testing.T) {
	term, screen := newSim(t, 10, 3)

	term.ShowCursor(4, 2)
	term.Show()
	x, y, visible := screen.GetCursor()
	if x != 4 || y != 2 || !visible {
		t.Errorf("expected visible cursor at (4, 2), got (%d, %d) visible=%v", x, y, visible)
	}
}

func TestTerminalKeyEvents(t *testing.T) {
	term, screen := newSim(t, 10, 3)

	tests := []struct {
		name string
		key  tcell.Key
		r    rune
		mod  tcell.ModMask
		want Event
	}{
		{"rune", tcell.KeyRune, 'x', tcell.ModNone, Event{Type: EventKey, Key: KeyRune, Rune: 'x'}},
		{"enter", tcell.KeyEnter, 0, tcell.ModNone, Event{Type: EventKey, Key: KeyEnter}},
		{"tab", tcell.KeyTab, 0, tcell.ModNone, Event{Type: EventKey, Key: KeyTab}},
		{"backspace", tcell.KeyBackspace2, 0, tcell.ModNone, Event{Type: EventKey, Key: KeyBackspace}},
		{"left", tcell.KeyLeft, 0, tcell.ModNone, Event{Type: EventKey, Key: KeyLeft}},
		{"ctrl-t code", tcell.KeyCtrlT, 0, tcell.ModCtrl, Event{Type: EventKey, Key: KeyCtrlT, Mod: ModCtrl}},
		{"ctrl letter", tcell.KeyRune, 'q', tcell.ModCtrl, Event{Type: EventKey, Key: KeyCtrlQ, Mod: ModCtrl}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			screen.InjectKey(tt.key, tt.r, tt.mod)
			if got := nextEvent(term); got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestTerminalPostEvent(t *testing.T) {
	term, _ := newSim(t, 10, 3)

	term.PostEvent(Event{Type: EventKey, Key: KeyCtrlF, Mod: ModCtrl})
	if got := nextEvent(term); got.Type != EventKey || got.Key != KeyCtrlF {
		t.Errorf("expected ctrl-f, got %+v", got)
	}

	term.PostEvent(Event{Type: EventInterrupt, Data: "reload"})
	if got := nextEvent(term); got.Type != EventInterrupt || got.Data != "reload" {
		t.Errorf("expected interrupt, got %+v", got)
	}

	// Resize events cannot be posted.
	term.PostEvent(Event{Type: EventResize, Width: 1, Height: 1})
	term.PostEvent(Event{Type: EventKey, Key: KeyRune, Rune: 'z'})
	if got := nextEvent(term); got.Key != KeyRune || got.Rune != 'z' {
		t.Errorf("expected 'z', got %+v", got)
	}
}

func TestTerminalShutdownUnblocksPoll(t *testing.T) {
	term, _, err := NewSimulationTerminal(10, 3)
	if err != nil {
		t.Fatal(err)
	}

	done := make(chan Event)
	go func() { done <- nextEvent(term) }()
	term.Shutdown()

	if ev := <-done; ev.Type != EventClosed {
		t.Errorf("expected EventClosed after shutdown, got %+v", ev)
	}
}

func TestConvertTcellColor(t *testing.T) {
	if got := convertTcellColor(tcell.ColorDefault); got != core.ColorBlack {
		t.Errorf("default color should map to black, got %v", got)
	}
	if got := convertTcellColor(tcell.NewRGBColor(1, 2, 3)); got != core.ColorFromRGB(1, 2, 3) {
		t.Errorf("rgb mismatch: %v", got)
	}
}

func TestConvertKeyRoundTrip(t *testing.T) {
	keys := []Key{KeyEscape, KeyEnter, KeyTab, KeyBackspace, KeyDelete, KeyHome, KeyEnd,
		KeyPageUp, KeyPageDown, KeyUp, KeyDown, KeyLeft, KeyRight, KeyCtrlA, KeyCtrlR, KeyCtrlZ}
	for _, k := range keys {
		got, _, _ := convertKey(convertToTcellKey(k), 0, tcell.ModNone)
		if got != k {
			t.Errorf("round trip of %v gave %v", k, got)
		}
	}
}

func TestTerminalHasTrueColor(t *testing.T) {
	term, _ := newSim(t, 4, 2)
	// The simulation screen reports a 256-color palette.
	if term.HasTrueColor() {
		t.Error("simulation screen should not report true color")
	}
	if !NewNullBackend(1, 1).HasTrueColor() {
		t.Error("null backend should report true color")
	}
}
