package conversation

import "math/rand/v2"

// Random is the source of non-determinism used for reply selection.
// *rand.Rand from math/rand/v2 satisfies it.
type Random interface {
	// IntN returns a value in [0, n).
	IntN(n int) int
	// Float64 returns a value in [0.0, 1.0).
	Float64() float64
}

// NewRandom returns a PCG-backed source seeded with seed.
// The same seed replays the same sequence of replies.
func NewRandom(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
