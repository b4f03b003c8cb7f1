package render

import (
	"github.com/lixenwraith/rain/parameter/visual"
	"github.com/lixenwraith/rain/terminal"
)

// Gradient returns the color of the trail cell at distance d from the head of a trail of length n.
// The head is the full base color, fading linearly to black at d == n.
func Gradient(n, d int) terminal.RGB {
	if n <= 0 {
		return terminal.RGBBlack
	}
	scale := float64(n-d) / float64(n)
	return visual.RainBase.Scale(scale)
}
