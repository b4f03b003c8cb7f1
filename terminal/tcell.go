package terminal

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
)

// tcellTerminal implements Terminal on top of a tcell.Screen.
// tcell keeps its own cell buffer, so cells not written in a frame keep their content.
type tcellTerminal struct {
	screen    tcell.Screen
	colorMode ColorMode
	bg        tcell.Color

	mu          sync.Mutex
	initialized bool
	finalized   bool
}

// NewTcell wraps screen; a nil screen opens the controlling terminal
func NewTcell(screen tcell.Screen, colorMode ColorMode) (Terminal, error) {
	if screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return nil, fmt.Errorf("open tcell screen: %w", err)
		}
		screen = s
	}
	return &tcellTerminal{
		screen:    screen,
		colorMode: colorMode,
		bg:        tcell.ColorBlack,
	}, nil
}

func (t *tcellTerminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.initialized {
		return nil
	}
	if err := t.screen.Init(); err != nil {
		return fmt.Errorf("init tcell screen: %w", err)
	}
	t.initialized = true

	base := tcell.StyleDefault.Background(t.bg)
	t.screen.SetStyle(base)
	t.screen.HideCursor()
	t.screen.Clear()
	t.screen.Show()
	return nil
}

func (t *tcellTerminal) Fini() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return nil
	}
	t.finalized = true
	t.screen.Fini()
	return nil
}

func (t *tcellTerminal) Size() (int, int, error) {
	w, h := t.screen.Size()
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("query terminal size: got %dx%d", w, h)
	}
	return w, h, nil
}

func (t *tcellTerminal) ColorMode() ColorMode {
	return t.colorMode
}

// color converts to a tcell color honoring the configured mode
func (t *tcellTerminal) color(c RGB) tcell.Color {
	if t.colorMode == ColorMode256 {
		return tcell.PaletteColor(int(RGBTo256(c)))
	}
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func (t *tcellTerminal) Paint(x, y int, fg RGB, glyph rune) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return ErrClosed
	}
	style := tcell.StyleDefault.Background(t.bg).Foreground(t.color(fg))
	t.screen.SetContent(x, y, glyph, nil, style)
	return nil
}

func (t *tcellTerminal) Erase(x, y int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return ErrClosed
	}
	style := tcell.StyleDefault.Background(t.bg).Foreground(tcell.ColorReset)
	t.screen.SetContent(x, y, ' ', nil, style)
	return nil
}

func (t *tcellTerminal) Show() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return ErrClosed
	}
	t.screen.Show()
	return nil
}

// PollEvent translates tcell key events; resize and mouse events are not reported
func (t *tcellTerminal) PollEvent() Event {
	for {
		ev := t.screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			// tcell returns nil once the screen is finalized
			return Event{Type: EventClosed}
		case *tcell.EventKey:
			return translateTcellKey(ev)
		case *tcell.EventError:
			return Event{Type: EventError, Err: ev}
		}
	}
}

func translateTcellKey(ev *tcell.EventKey) Event {
	switch ev.Key() {
	case tcell.KeyRune:
		return Event{Type: EventKey, Key: KeyRune, Rune: ev.Rune()}
	case tcell.KeyEscape:
		return Event{Type: EventKey, Key: KeyEscape}
	case tcell.KeyEnter:
		return Event{Type: EventKey, Key: KeyEnter}
	case tcell.KeyTab:
		return Event{Type: EventKey, Key: KeyTab}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return Event{Type: EventKey, Key: KeyBackspace}
	case tcell.KeyCtrlC:
		return Event{Type: EventKey, Key: KeyCtrlC}
	case tcell.KeyCtrlD:
		return Event{Type: EventKey, Key: KeyCtrlD}
	case tcell.KeyCtrlZ:
		return Event{Type: EventKey, Key: KeyCtrlZ}
	default:
		return Event{Type: EventKey, Key: KeyControl}
	}
}
