package terminal

import (
	"bufio"
	"io"

	"github.com/mattn/go-runewidth"
)

// outputBuffer writes individual cells as they are painted, coalescing cursor moves and style changes.
// Nothing reaches the terminal until flush.
type outputBuffer struct {
	width     int
	height    int
	colorMode ColorMode
	writer    *bufio.Writer

	cursorX     int
	cursorY     int
	cursorValid bool

	// Style state for coalescing
	bg        RGB
	lastFg    RGB
	fgDefault bool
	lastValid bool
}

func newOutputBuffer(w io.Writer, colorMode ColorMode) *outputBuffer {
	return &outputBuffer{
		writer:    bufio.NewWriterSize(w, 65536),
		colorMode: colorMode,
		bg:        RGBBlack,
	}
}

func (o *outputBuffer) resize(width, height int) {
	o.width = width
	o.height = height
	o.cursorValid = false
}

func (o *outputBuffer) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < o.width && y < o.height
}

func (o *outputBuffer) moveTo(x, y int) {
	if o.cursorValid && o.cursorX == x && o.cursorY == y {
		return
	}
	writeCursorPos(o.writer, x, y)
	o.cursorX = x
	o.cursorY = y
	o.cursorValid = true
}

// advance tracks the cursor after a printed rune; at the right edge auto-wrap is off and the
// cursor sticks, so its position is no longer predictable
func (o *outputBuffer) advance(r rune) {
	o.cursorX += runewidth.RuneWidth(r)
	if o.cursorX >= o.width {
		o.cursorValid = false
	}
}

func (o *outputBuffer) writeRune(r rune) {
	if r < 0x80 {
		o.writer.WriteByte(byte(r))
	} else {
		o.writer.WriteRune(r)
	}
	o.advance(r)
}

// paint writes glyph r at (x, y) in foreground fg over the screen background
func (o *outputBuffer) paint(x, y int, fg RGB, r rune) error {
	if !o.inBounds(x, y) {
		return nil
	}
	o.moveTo(x, y)

	if !o.lastValid {
		writeColor(o.writer, o.bg, o.colorMode, true)
		o.lastValid = true
		o.fgDefault = true
	}
	if o.fgDefault || o.lastFg != fg {
		writeColor(o.writer, fg, o.colorMode, false)
		o.lastFg = fg
		o.fgDefault = false
	}

	o.writeRune(r)
	return o.err()
}

// erase blanks (x, y) with the terminal default foreground over the screen background
func (o *outputBuffer) erase(x, y int) error {
	if !o.inBounds(x, y) {
		return nil
	}
	o.moveTo(x, y)

	if !o.lastValid {
		writeColor(o.writer, o.bg, o.colorMode, true)
		o.lastValid = true
		o.fgDefault = false
	}
	if !o.fgDefault {
		o.writer.Write(csiDefaultFg)
		o.fgDefault = true
	}

	o.writeRune(' ')
	return o.err()
}

// clear fills the screen with bg and homes the cursor
func (o *outputBuffer) clear(bg RGB) error {
	o.bg = bg
	o.writer.Write(csiSGR0)
	writeColor(o.writer, bg, o.colorMode, true)
	o.writer.Write(csiClear)
	o.lastValid = true
	o.fgDefault = true
	o.cursorX, o.cursorY = 0, 0
	o.cursorValid = true
	return o.flush()
}

func (o *outputBuffer) writeRaw(p []byte) {
	o.writer.Write(p)
	o.cursorValid = false
	o.lastValid = false
}

// err returns the sticky bufio error, if any
func (o *outputBuffer) err() error {
	// Zero-length write surfaces a previously recorded error without emitting bytes
	_, err := o.writer.Write(nil)
	return err
}

func (o *outputBuffer) flush() error {
	return o.writer.Flush()
}
