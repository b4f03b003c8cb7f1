package render

import "github.com/lixenwraith/rain/terminal"

// Surface is the terminal capability the renderer paints through
type Surface interface {
	// Paint writes glyph at (col, row) in foreground fg
	Paint(col, row int, fg terminal.RGB, glyph rune) error

	// Erase writes a blank cell at (col, row) with the default foreground
	Erase(col, row int) error

	// Show presents everything written since the previous Show
	Show() error
}
