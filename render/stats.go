package render

import "fmt"

// FrameStats counts the work done by one DrawNextFrame call
type FrameStats struct {
	Frame     uint64 // 1-based frame number
	Moved     int    // droplets that stepped a row
	Respawned int    // droplets replaced after draining off screen
	Painted   int    // glyph cells written
	Erased    int    // tail cells blanked
}

// Activity is the fraction of columns that moved this frame
func (s FrameStats) Activity(cols int) float64 {
	if cols <= 0 {
		return 0
	}
	return float64(s.Moved) / float64(cols)
}

func (s FrameStats) String() string {
	return fmt.Sprintf("frame=%d moved=%d respawned=%d painted=%d erased=%d",
		s.Frame, s.Moved, s.Respawned, s.Painted, s.Erased)
}
