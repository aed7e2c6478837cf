package game

// Rand is the randomness the simulation draws from. *rand.Rand from
// math/rand/v2 satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

func between(r Rand, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

func pointIn(r Rand, b Bounds) (float64, float64) {
	return between(r, b.MinX, b.MaxX), between(r, b.MinY, b.MaxY)
}
