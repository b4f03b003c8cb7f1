package status

import (
	"math"
	"sync/atomic"
)

// Level is a ratio in [0, 1] shared between goroutines without locking.
// One side stores, the other loads and maps it into its own range.
// Zero value is ready to use and reads as 0
type Level struct {
	bits atomic.Uint64
}

// Store clamps ratio into [0, 1]; NaN stores 0
func (l *Level) Store(ratio float64) {
	if !(ratio > 0) {
		ratio = 0
	} else if ratio > 1 {
		ratio = 1
	}
	l.bits.Store(math.Float64bits(ratio))
}

// Load returns the last stored ratio
func (l *Level) Load() float64 {
	return math.Float64frombits(l.bits.Load())
}

// Scaled maps the ratio linearly onto [lo, hi]
func (l *Level) Scaled(lo, hi float64) float64 {
	return lo + (hi-lo)*l.Load()
}
