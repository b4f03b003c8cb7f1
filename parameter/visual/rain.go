package visual

import "github.com/lixenwraith/rain/terminal"

// RainBase is the head color of every droplet; the trail fades linearly toward black
var RainBase = terminal.RGB{R: 170, G: 255, B: 170}
