package terminal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/lixenwraith/rain/parameter"
)

var (
	// ErrNotTerminal is returned by Init when stdin is not attached to a terminal
	ErrNotTerminal = errors.New("stdin is not a terminal")

	// ErrClosed is returned by writes after Fini, and marks end of input
	ErrClosed = errors.New("terminal closed")
)

// Terminal provides cell-level terminal access
type Terminal interface {
	// Init enters raw mode, alternate screen buffer, hides cursor and clears to black
	Init() error

	// Fini restores terminal state. Safe to call multiple times
	Fini() error

	// Size returns current terminal dimensions
	Size() (width, height int, err error)

	// ColorMode returns the color capability output is encoded for
	ColorMode() ColorMode

	// Paint writes glyph at (x, y) in foreground fg
	Paint(x, y int, fg RGB, glyph rune) error

	// Erase writes a blank cell at (x, y) with the default foreground
	Erase(x, y int) error

	// Show flushes pending writes to the terminal
	Show() error

	// PollEvent blocks until next input event
	PollEvent() Event
}

// termImpl implements Terminal using the Backend interface
type termImpl struct {
	backend Backend

	output *outputBuffer
	input  *inputReader

	mu          sync.Mutex
	initialized bool
	finalized   bool
}

// New creates a new Terminal on stdin/stdout
func New(colorMode ColorMode) Terminal {
	return newTerminal(newBackend(), colorMode)
}

func newTerminal(b Backend, colorMode ColorMode) *termImpl {
	return &termImpl{
		backend: b,
		output:  newOutputBuffer(backendWriter{b}, colorMode),
	}
}

// Init enters raw mode and sets up terminal
func (t *termImpl) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.initialized {
		return nil
	}

	if err := t.backend.Init(); err != nil {
		return err
	}
	// Backend is in raw mode from here on; undo it if the rest of setup fails
	t.initialized = true

	w, h, err := t.backend.Size()
	if err != nil {
		t.finiLocked()
		return err
	}
	t.output.resize(w, h)

	t.input = newInputReader(t.backend, parameter.InputEventBuffer)

	t.output.writeRaw(csiAltScreenEnter)
	t.output.writeRaw(csiCursorHide)
	// Prevents terminal scroll/wrap on bottom-right corner write
	t.output.writeRaw(csiAutoWrapOff)

	if err := t.output.clear(RGBBlack); err != nil {
		t.finiLocked()
		return fmt.Errorf("clear screen: %w", err)
	}

	t.input.start()
	return nil
}

// Fini restores terminal state
func (t *termImpl) Fini() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.finiLocked()
}

func (t *termImpl) finiLocked() error {
	if !t.initialized || t.finalized {
		return nil
	}
	t.finalized = true

	if t.input != nil {
		t.input.stop()
	}

	o := t.output
	o.writeRaw(csiSGR0)
	o.writeRaw(csiCursorShow)
	o.writeRaw(csiAltScreenExit)
	// Re-enable Auto-Wrap AFTER exiting alt screen to ensure the main buffer has wrap enabled
	o.writeRaw(csiAutoWrapOn)
	writeErr := o.flush()

	// Raw mode is restored even when the escape sequences could not be written
	modeErr := t.backend.Fini()
	return errors.Join(writeErr, modeErr)
}

// Size returns current terminal dimensions
func (t *termImpl) Size() (int, int, error) {
	return t.backend.Size()
}

func (t *termImpl) ColorMode() ColorMode {
	return t.output.colorMode
}

func (t *termImpl) Paint(x, y int, fg RGB, glyph rune) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return ErrClosed
	}
	return t.output.paint(x, y, fg, glyph)
}

func (t *termImpl) Erase(x, y int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return ErrClosed
	}
	return t.output.erase(x, y)
}

func (t *termImpl) Show() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return ErrClosed
	}
	return t.output.flush()
}

// PollEvent blocks until next input event; before Init there is no input and it reports closed
func (t *termImpl) PollEvent() Event {
	t.mu.Lock()
	input := t.input
	t.mu.Unlock()

	if input == nil {
		return Event{Type: EventClosed}
	}
	return <-input.events()
}

// EmergencyReset attempts to restore terminal to sane state
// Call this from panic recovery if Fini() cannot be called normally
func EmergencyReset(w io.Writer) {
	w.Write(csiSGR0)
	w.Write(csiCursorShow)
	w.Write(csiAltScreenExit)
	w.Write(csiAutoWrapOn)
	w.Write(csiRIS)

	// Flush if it's a file
	if f, ok := w.(*os.File); ok {
		f.Sync()
	}

	// Escape sequences alone don't restore termios
	resetTerminalMode()
}
