package flowerfield

import (
	"math/rand"
)

// rngSource is a RandomSource backed by math/rand
type rngSource struct {
	rng *rand.Rand
}

// NewRandomSource returns a RandomSource seeded with the given seed.
func NewRandomSource(seed int64) RandomSource {
	return &rngSource{rng: rand.New(rand.NewSource(seed))}
}

// RandomInt returns an int in [min, max), or min if max <= min
func (r *rngSource) RandomInt(min, max int) int {
	if max <= min {
		return min
	}
	return min + r.rng.Intn(max-min)
}

// RandomFloat returns a float64 in [min, max)
func (r *rngSource) RandomFloat(min, max float64) float64 {
	return min + r.rng.Float64()*(max-min)
}
