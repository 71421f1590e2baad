package poisson

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"
	"github.com/unixpickle/essentials"
)

const (
	// DefaultMaxAttempts is the per point candidate budget commonly used
	// for Bridson style sampling
	DefaultMaxAttempts = 30
)

var (
	// ErrInvalidParameters implies min distance or attempt budget are unusable.
	ErrInvalidParameters = fmt.Errorf("invalid sampling parameters")

	// ErrInvalidDomain implies the sampling area has no (positive) size.
	ErrInvalidDomain = fmt.Errorf("invalid sampling domain")
)

// RandomSource supplies uniform random numbers to the sampler.
type RandomSource interface {
	// RandomInt returns an int in [min, maxExclusive)
	RandomInt(min, maxExclusive int) int

	// RandomFloat returns a float64 in [min, max)
	RandomFloat(min, max float64) float64
}

// Sampler throws darts around already accepted points until no point can
// spawn a new neighbour.
type Sampler struct {
	maxAttempts int
	margin      float64
}

// Option configures a Sampler.
type Option func(s *Sampler) error

// WithMaxAttempts sets how many candidates are tried around a point before
// it is retired.
func WithMaxAttempts(n int) Option {
	return func(s *Sampler) error {
		if n <= 0 {
			return fmt.Errorf("%w: max attempts %d", ErrInvalidParameters, n)
		}
		s.maxAttempts = n
		return nil
	}
}

// WithMargin insets the region the very first point is chosen from.
func WithMargin(m float64) Option {
	return func(s *Sampler) error {
		if !finite(m) || m < 0 {
			return fmt.Errorf("%w: margin %v", ErrInvalidParameters, m)
		}
		s.margin = m
		return nil
	}
}

// NewSampler returns a Sampler with the given options applied.
func NewSampler(opts ...Option) (*Sampler, error) {
	s := &Sampler{maxAttempts: DefaultMaxAttempts}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Sample is sugar around NewSampler(...).Sample(...)
func Sample(width, height, minDistance float64, maxAttempts int, margin float64, rng RandomSource) ([]r2.Point, error) {
	s, err := NewSampler(WithMaxAttempts(maxAttempts), WithMargin(margin))
	if err != nil {
		return nil, err
	}
	return s.Sample(width, height, minDistance, rng)
}

// Sample returns points in [0, width) x [0, height), no two closer than
// minDistance, in the order they were accepted (initial point first).
//
// The domain must be large enough to hold the caller's idea of a sensible
// result; a domain smaller than minDistance yields exactly one point.
func (s *Sampler) Sample(width, height, minDistance float64, rng RandomSource) ([]r2.Point, error) {
	if rng == nil {
		return nil, fmt.Errorf("%w: nil random source", ErrInvalidParameters)
	}
	if s.maxAttempts <= 0 {
		return nil, fmt.Errorf("%w: max attempts %d", ErrInvalidParameters, s.maxAttempts)
	}

	grid, err := NewGrid(width, height, minDistance)
	if err != nil {
		return nil, err
	}

	initial := r2.Point{
		X: safeCoord(rng, width, s.margin),
		Y: safeCoord(rng, height, s.margin),
	}

	grid.Insert(initial)
	result := []r2.Point{initial}
	active := []r2.Point{initial}

	for len(active) > 0 {
		idx := rng.RandomInt(0, len(active))
		point := active[idx]

		found := false
		for i := 0; i < s.maxAttempts; i++ {
			theta := rng.RandomFloat(0, 2*math.Pi)
			radius := rng.RandomFloat(minDistance, 2*minDistance)
			candidate := r2.Point{
				X: point.X + radius*math.Cos(theta),
				Y: point.Y + radius*math.Sin(theta),
			}

			if !grid.IsValidCandidate(candidate, minDistance) {
				continue
			}

			grid.Insert(candidate)
			result = append(result, candidate)
			active = append(active, candidate)
			found = true
			break
		}

		if !found {
			// order of the active list carries no meaning
			essentials.UnorderedDelete(&active, idx)
		}
	}

	return result, nil
}

// safeCoord picks a value in [margin, extent-margin). If the margins leave
// nothing to pick from we settle on the middle of the axis.
func safeCoord(rng RandomSource, extent, margin float64) float64 {
	lo := math.Ceil(margin)
	hi := math.Floor(extent - margin)
	if hi <= lo {
		return extent / 2
	}
	return float64(rng.RandomInt(int(lo), int(hi)))
}
