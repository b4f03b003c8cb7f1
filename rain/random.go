package rain

// Random supplies uniformly distributed values; implementations need not be safe for concurrent use
type Random interface {
	// Intn returns a value in [0, n), 0 when n <= 0
	Intn(n int) int

	// IntRange returns a value in [lo, hi]
	IntRange(lo, hi int) int

	// FloatRange returns a value in [lo, hi]
	FloatRange(lo, hi float64) float64
}
