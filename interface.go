package flowerfield

import (
	"image/color"
)

// RandomSource supplies the uniform random numbers a Field is built from.
// There is no requirement that two sources with the same seed agree, but
// NewRandomSource does.
type RandomSource interface {
	// a random int in [min, maxExclusive), min if the range is empty
	RandomInt(min, maxExclusive int) int

	// a random float in [min, max)
	RandomFloat(min, max float64) float64
}

// Renderer is told what to draw by Field.Draw. Implementations only
// need to know how to paint three kinds of shape; all placement, sizing
// and colouring decisions have already been made.
type Renderer interface {
	// fill the whole canvas
	Background(c color.Color)

	// a filled ellipse Width wide & Length long centred on Position,
	// rotated clockwise by Rotation radians
	Petal(p *Petal, c color.Color)

	// a filled circle of the given diameter
	Centre(x, y, diameter float64, c color.Color)
}
