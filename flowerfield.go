package flowerfield

import (
	"math"
	"time"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"

	"github.com/voidshard/flowerfield/internal/poisson"
)

var (
	// ErrViewportTooSmall implies the canvas can't sensibly hold a field,
	// see FieldConfig MinWidth / MinHeight
	ErrViewportTooSmall = errors.New("viewport too small")

	// ErrInvalidConfig implies the config contradicts itself
	ErrInvalidConfig = errors.New("invalid field config")
)

// Field holds a generated field of flowers. It is immutable once built &
// can be drawn any number of times.
type Field struct {
	cfg *FieldConfig
	rng RandomSource

	Width       int
	Height      int
	Seed        int64
	MinDistance float64 // min distance between flower centres

	Background Colour
	Flowers    []*Flower
	Stats      *FieldStats
}

// New creates a new Field given configuration. The random source is seeded
// from cfg.Seed (or the time, if unset).
func New(cfg *FieldConfig) (*Field, error) {
	return NewWithSource(cfg, nil)
}

// NewWithSource creates a new Field drawing all randomness from rng.
// If rng is nil one is made as in New.
func NewWithSource(cfg *FieldConfig, rng RandomSource) (*Field, error) {
	if cfg == nil {
		return nil, errors.Wrap(ErrInvalidConfig, "nil config")
	}
	f := &Field{cfg: cfg.withDefaults(), rng: rng}
	err := f.build()
	if err != nil {
		return nil, err
	}
	return f, nil
}

// build runs the main construction logic.
func (f *Field) build() error {
	err := f.init()
	if err != nil {
		return err
	}

	positions, err := f.samplePositions()
	if err != nil {
		return err
	}

	var petalColour, centreColour Colour
	for i, pos := range positions {
		if i%f.cfg.ColourGroup == 0 {
			petalColour, centreColour = f.chooseColours()
			f.Stats.ColourGroups++
		}

		flower := f.newFlower(i, pos, petalColour, centreColour)
		f.Flowers = append(f.Flowers, flower)

		f.Stats.Flowers++
		f.Stats.Petals += flower.petalCount()
	}

	return nil
}

// init checks config, sets up rng & the bits of the field that don't
// depend on flower placement.
func (f *Field) init() error {
	c := f.cfg

	if c.Width < c.MinWidth || c.Height < c.MinHeight {
		return errors.Wrapf(ErrViewportTooSmall, "(%d, %d), minimum is (%d, %d)", c.Width, c.Height, c.MinWidth, c.MinHeight)
	}
	if c.MinFlowerSize > c.MaxFlowerSize {
		return errors.Wrapf(ErrInvalidConfig, "min flower size %d exceeds max %d", c.MinFlowerSize, c.MaxFlowerSize)
	}
	if c.SpacingMin > c.SpacingMax {
		return errors.Wrapf(ErrInvalidConfig, "min spacing %v exceeds max %v", c.SpacingMin, c.SpacingMax)
	}

	if f.rng == nil {
		if c.Seed == 0 {
			c.Seed = time.Now().UnixNano()
		}
		f.rng = NewRandomSource(c.Seed)
	}

	f.Width = c.Width
	f.Height = c.Height
	f.Seed = c.Seed
	f.Flowers = []*Flower{}
	f.Stats = &FieldStats{}
	f.Background = HSL(float64(f.rng.RandomInt(70, 160)), 0.7, 0.9)

	return nil
}

// samplePositions chooses flower centres; one Poisson-disk pass over
// the whole canvas.
func (f *Field) samplePositions() ([]r2.Point, error) {
	c := f.cfg
	f.MinDistance = float64(c.MaxFlowerSize) * f.rng.RandomFloat(c.SpacingMin, c.SpacingMax)

	pts, err := poisson.Sample(
		float64(c.Width), float64(c.Height),
		f.MinDistance,
		c.MaxAttempts,
		c.SafeZone,
		f.rng,
	)
	if err != nil {
		return nil, errors.Wrapf(err, "sampling flower positions (min distance %v)", f.MinDistance)
	}
	return pts, nil
}

// chooseColours returns a petal & centre colour pair. Petals are pastel
// and may be any hue bar yellow-green, centres are yellow-orange.
func (f *Field) chooseColours() (Colour, Colour) {
	petal := HSL(float64(f.rng.RandomInt(160, 400)%360), 0.9, 0.9)
	centre := HSL(float64(f.rng.RandomInt(30, 60)), 0.8, 0.8)
	return petal, centre
}

// newFlower builds a flower at pos. Each successive layer of petals is
// GoldenRatioConjugate the size of the previous & turned a quarter.
func (f *Field) newFlower(id int, pos r2.Point, petalColour, centreColour Colour) *Flower {
	c := f.cfg

	size := float64(f.rng.RandomInt(c.MinFlowerSize, c.MaxFlowerSize))
	radius := size / 2

	length := size * GoldenRatioConjugate * float64(f.rng.RandomInt(2, 4))
	width := length / f.rng.RandomFloat(2.0, 5.0)
	rotation := 0.0

	flower := &Flower{
		ID:           id,
		Centre:       pos,
		Size:         size,
		CentreSize:   size * GoldenRatioConjugate,
		PetalColour:  petalColour,
		CentreColour: centreColour,
		Layers:       make([]*PetalLayer, 0, c.PetalLayers),
	}

	for i := 0; i < c.PetalLayers; i++ {
		flower.Layers = append(flower.Layers, f.newPetalLayer(pos, radius, width, length, rotation))
		length *= GoldenRatioConjugate
		width *= GoldenRatioConjugate
		rotation += math.Pi / 2
	}

	return flower
}

// newPetalLayer lays out a ring of petals around centre, starting at angle
// rotation.
func (f *Field) newPetalLayer(centre r2.Point, radius, width, length, rotation float64) *PetalLayer {
	layer := &PetalLayer{
		Width:    width,
		Length:   length,
		Rotation: rotation,
		Petals:   []*Petal{},
	}

	count := petalCount(radius, width, f.rng.RandomInt(0, 10))
	if count == 0 {
		return layer
	}

	step := 2 * math.Pi / float64(count)
	for j := 0; j < count; j++ {
		variance := f.rng.RandomFloat(-0.02, 0.02)
		angle := rotation + step*float64(j)

		// petals sit just inside the ring, pointing outward
		layer.Petals = append(layer.Petals, &Petal{
			Position: r2.Point{
				X: centre.X + math.Cos(angle-math.Pi/2)*radius*0.9,
				Y: centre.Y + math.Sin(angle-math.Pi/2)*radius*0.9,
			},
			Width:    width,
			Length:   length,
			Rotation: angle + variance,
		})
	}

	return layer
}
