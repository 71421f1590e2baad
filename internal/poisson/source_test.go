package poisson

import (
	"math/rand"
)

// seededSource is a RandomSource over a seeded math/rand
type seededSource struct {
	rng *rand.Rand
}

func newSeededSource(seed int64) *seededSource {
	return &seededSource{rng: rand.New(rand.NewSource(seed))}
}

func (s *seededSource) RandomInt(min, max int) int {
	if max <= min {
		return min
	}
	return min + s.rng.Intn(max-min)
}

func (s *seededSource) RandomFloat(min, max float64) float64 {
	return min + s.rng.Float64()*(max-min)
}

// scriptedSource replays a fixed list of fractions in [0, 1), wrapping
// around when it runs out.
type scriptedSource struct {
	script []float64
	next   int
}

func newScriptedSource(script ...float64) *scriptedSource {
	return &scriptedSource{script: script}
}

func (s *scriptedSource) fraction() float64 {
	f := s.script[s.next%len(s.script)]
	s.next++
	return f
}

func (s *scriptedSource) RandomInt(min, max int) int {
	if max <= min {
		return min
	}
	v := min + int(s.fraction()*float64(max-min))
	if v >= max {
		v = max - 1
	}
	return v
}

func (s *scriptedSource) RandomFloat(min, max float64) float64 {
	return min + s.fraction()*(max-min)
}
