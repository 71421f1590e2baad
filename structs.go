package flowerfield

import (
	"github.com/golang/geo/r2"
	"github.com/lucasb-eyer/go-colorful"
)

// FieldStats holds generic stats about the field
type FieldStats struct {
	Flowers      int
	Petals       int
	ColourGroups int
}

// Colour is a HSL colour. Hue in degrees [0, 360), saturation & lightness
// in [0, 1]. It satisfies color.Color.
type Colour struct {
	H float64
	S float64
	L float64
}

// HSL returns a Colour, hue is wrapped into [0, 360)
func HSL(h, s, l float64) Colour {
	for h < 0 {
		h += 360
	}
	for h >= 360 {
		h -= 360
	}
	return Colour{H: h, S: s, L: l}
}

// RGBA satisfies color.Color
func (c Colour) RGBA() (r, g, b, a uint32) {
	return c.colorful().RGBA()
}

// Hex returns the colour as #rrggbb
func (c Colour) Hex() string {
	return c.colorful().Hex()
}

func (c Colour) colorful() colorful.Color {
	return colorful.Hsl(c.H, c.S, c.L).Clamped()
}

// Flower is one flower in the field; a number of rings of petals around
// a centre disk.
type Flower struct {
	// ID is the order the flower was placed in (0 is the first)
	ID int

	// Centre of the flower & the disk drawn over it
	Centre     r2.Point
	Size       float64 // diameter of the ring petals sit on
	CentreSize float64 // diameter of the centre disk

	PetalColour  Colour
	CentreColour Colour

	// outermost layer first
	Layers []*PetalLayer
}

// PetalLayer is a ring of identically sized petals.
type PetalLayer struct {
	Width    float64
	Length   float64
	Rotation float64 // angle of the first petal, radians
	Petals   []*Petal
}

// Petal is a single ellipse.
type Petal struct {
	Position r2.Point
	Width    float64
	Length   float64
	Rotation float64 // radians, clockwise
}

// petalCount returns the number of petals in a layer
func (f *Flower) petalCount() int {
	count := 0
	for _, l := range f.Layers {
		count += len(l.Petals)
	}
	return count
}
