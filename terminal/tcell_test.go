package terminal

import (
	"errors"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

func newSimTerminal(t *testing.T, mode ColorMode) (Terminal, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	term, err := NewTcell(screen, mode)
	if err != nil {
		t.Fatalf("NewTcell: %v", err)
	}
	if err := term.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	screen.SetSize(20, 10)
	t.Cleanup(func() { term.Fini() })
	return term, screen
}

func TestTcell_PaintAndErase(t *testing.T) {
	term, screen := newSimTerminal(t, ColorModeTrueColor)

	if err := term.Paint(3, 4, RGB{170, 255, 170}, 'ｦ'); err != nil {
		t.Fatalf("Paint: %v", err)
	}
	if err := term.Show(); err != nil {
		t.Fatalf("Show: %v", err)
	}

	r, _, style, _ := screen.GetContent(3, 4)
	if r != 'ｦ' {
		t.Errorf("rune = %q, want 'ｦ'", r)
	}
	fg, bg, _ := style.Decompose()
	if fg != tcell.NewRGBColor(170, 255, 170) {
		t.Errorf("fg = %v, want rgb(170,255,170)", fg)
	}
	if bg != tcell.ColorBlack {
		t.Errorf("bg = %v, want black", bg)
	}

	term.Erase(3, 4)
	term.Show()

	r, _, style, _ = screen.GetContent(3, 4)
	if r != ' ' {
		t.Errorf("erased rune = %q, want space", r)
	}
	if fg, _, _ := style.Decompose(); fg != tcell.ColorReset {
		t.Errorf("erased fg = %v, want reset", fg)
	}
}

func TestTcell_256Mode(t *testing.T) {
	term, screen := newSimTerminal(t, ColorMode256)

	term.Paint(0, 0, RGB{255, 0, 0}, 'x')
	term.Show()

	_, _, style, _ := screen.GetContent(0, 0)
	if fg, _, _ := style.Decompose(); fg != tcell.PaletteColor(196) {
		t.Errorf("fg = %v, want palette 196", fg)
	}
}

func TestTcell_Size(t *testing.T) {
	term, _ := newSimTerminal(t, ColorModeTrueColor)

	w, h, err := term.Size()
	if err != nil {
		t.Fatalf("Size: %v", err)
	}
	if w != 20 || h != 10 {
		t.Errorf("Size = %dx%d, want 20x10", w, h)
	}
}

func TestTcell_PollEvent(t *testing.T) {
	term, screen := newSimTerminal(t, ColorModeTrueColor)

	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	done := make(chan Event, 1)
	go func() { done <- term.PollEvent() }()

	select {
	case ev := <-done:
		if !ev.IsRune('q') {
			t.Errorf("event = %+v, want rune q", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("no event")
	}

	screen.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)
	go func() { done <- term.PollEvent() }()

	select {
	case ev := <-done:
		if ev.Type != EventKey || ev.Key != KeyEscape {
			t.Errorf("event = %+v, want escape key", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("no escape event")
	}
}

func TestTcell_ClosedAfterFini(t *testing.T) {
	term, _ := newSimTerminal(t, ColorModeTrueColor)
	if err := term.Fini(); err != nil {
		t.Fatalf("Fini: %v", err)
	}
	if err := term.Paint(0, 0, RGBBlack, 'x'); !errors.Is(err, ErrClosed) {
		t.Errorf("Paint after Fini = %v, want ErrClosed", err)
	}
}

func TestTranslateTcellKey(t *testing.T) {
	tests := []struct {
		key  tcell.Key
		r    rune
		want Key
	}{
		{tcell.KeyRune, 'q', KeyRune},
		{tcell.KeyEscape, 0, KeyEscape},
		{tcell.KeyCtrlC, 0, KeyCtrlC},
		{tcell.KeyEnter, 0, KeyEnter},
		{tcell.KeyF1, 0, KeyControl},
	}

	for _, tt := range tests {
		ev := translateTcellKey(tcell.NewEventKey(tt.key, tt.r, tcell.ModNone))
		if ev.Key != tt.want {
			t.Errorf("tcell key %v translated to %v, want %v", tt.key, ev.Key, tt.want)
		}
	}
}
