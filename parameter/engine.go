package parameter

import "time"

// Render Loop Timing
const (
	// FrameInterval is the wall-clock cadence of the render loop; one synthetic droplet tick per frame
	FrameInterval = 50 * time.Millisecond

	// StatsLogInterval is the number of frames between debug stat lines (~1s at 50ms)
	StatsLogInterval = 20
)

// Input
const (
	// QuitKey stops the render loop; every other key is ignored
	QuitKey = 'q'

	// InputEventBuffer is the capacity of the terminal input event channel
	InputEventBuffer = 64
)
