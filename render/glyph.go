package render

import (
	"github.com/lixenwraith/rain/parameter"
	"github.com/lixenwraith/rain/rain"
)

// Glyph picks a fresh rune from the rain block
func Glyph(rng rain.Random) rune {
	return parameter.GlyphFirst + rune(rng.Intn(parameter.GlyphCount))
}
