package flowerfield

import (
	"github.com/voidshard/flowerfield/internal/poisson"
)

const (
	// GoldenRatioConjugate scales each successive petal layer & the flower
	// centre relative to the petals around it.
	GoldenRatioConjugate = 0.61803

	// GoldenRatio for completeness; 1 / GoldenRatioConjugate
	GoldenRatio = 1.61803398875
)

// FieldConfig holds configuration for a given field of flowers.
// Zero values are replaced with the defaults from DefaultConfig, so in
// practice only Width & Height need setting.
type FieldConfig struct {
	// Size of the canvas (viewport) in pixels, required
	Width  int
	Height int

	// Smallest viewport we're willing to fill. Anything smaller
	// is rejected with ErrViewportTooSmall.
	MinWidth  int
	MinHeight int

	// SafeZone insets the area the very first flower is placed in so it
	// isn't clipped by the canvas edge. Later flowers may go anywhere.
	SafeZone float64

	// Flower sizes (diameter of the ring the petals sit on, in pixels)
	// are chosen uniformly from [MinFlowerSize, MaxFlowerSize)
	MinFlowerSize int
	MaxFlowerSize int

	// The minimum distance between flower centres is
	// MaxFlowerSize * [SpacingMin, SpacingMax), rolled once per field.
	SpacingMin float64
	SpacingMax float64

	// MaxAttempts is how many candidate positions we try around a
	// flower before giving up on it spawning neighbours.
	MaxAttempts int

	// ColourGroup is how many consecutive flowers share a colour pair.
	ColourGroup int

	// PetalLayers is the number of rings of petals per flower, each
	// GoldenRatioConjugate the size of the last & rotated a quarter turn.
	PetalLayers int

	// Seed for rng (random number chosen if not set). Ignored if a
	// RandomSource is handed to NewWithSource.
	Seed int64
}

// DefaultConfig returns a reasonable config for a width x height canvas.
func DefaultConfig(width, height int) *FieldConfig {
	return &FieldConfig{
		Width:         width,
		Height:        height,
		MinWidth:      150,
		MinHeight:     300,
		SafeZone:      150,
		MinFlowerSize: 90,
		MaxFlowerSize: 200,
		SpacingMin:    2.3,
		SpacingMax:    3.0,
		MaxAttempts:   poisson.DefaultMaxAttempts,
		ColourGroup:   3,
		PetalLayers:   3,
	}
}

// withDefaults returns a copy of c with any unset fields defaulted
func (c *FieldConfig) withDefaults() *FieldConfig {
	def := DefaultConfig(c.Width, c.Height)
	out := *c

	if out.MinWidth <= 0 {
		out.MinWidth = def.MinWidth
	}
	if out.MinHeight <= 0 {
		out.MinHeight = def.MinHeight
	}
	if out.SafeZone <= 0 {
		out.SafeZone = def.SafeZone
	}
	if out.MinFlowerSize <= 0 {
		out.MinFlowerSize = def.MinFlowerSize
	}
	if out.MaxFlowerSize <= 0 {
		out.MaxFlowerSize = def.MaxFlowerSize
	}
	if out.SpacingMin <= 0 {
		out.SpacingMin = def.SpacingMin
	}
	if out.SpacingMax <= 0 {
		out.SpacingMax = def.SpacingMax
	}
	if out.MaxAttempts <= 0 {
		out.MaxAttempts = def.MaxAttempts
	}
	if out.ColourGroup <= 0 {
		out.ColourGroup = def.ColourGroup
	}
	if out.PetalLayers <= 0 {
		out.PetalLayers = def.PetalLayers
	}

	return &out
}
