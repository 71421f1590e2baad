package flowerfield

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"os"

	svg "github.com/ajstarks/svgo"
	"github.com/fogleman/gg"
	"github.com/pkg/errors"
)

// Draw paints the field onto r: background first, then each flower in
// placement order, outermost petal layer first & the centre disk last.
func (f *Field) Draw(r Renderer) {
	r.Background(f.Background)
	for _, flower := range f.Flowers {
		for _, layer := range flower.Layers {
			for _, p := range layer.Petals {
				r.Petal(p, flower.PetalColour)
			}
		}
		r.Centre(flower.Centre.X, flower.Centre.Y, flower.CentreSize, flower.CentreColour)
	}
}

// Image returns the field as a raster image.
func (f *Field) Image() image.Image {
	r := NewImageRenderer(f.Width, f.Height)
	f.Draw(r)
	return r.Image()
}

// SavePNG draws the field & writes it to fpath as a PNG.
func (f *Field) SavePNG(fpath string) error {
	r := NewImageRenderer(f.Width, f.Height)
	f.Draw(r)
	return r.SavePNG(fpath)
}

// WritePNG draws the field & encodes it to w as a PNG.
func (f *Field) WritePNG(w io.Writer) error {
	r := NewImageRenderer(f.Width, f.Height)
	f.Draw(r)
	return errors.Wrap(r.ctx.EncodePNG(w), "encoding png")
}

// WriteSVG draws the field to w as an SVG document.
func (f *Field) WriteSVG(w io.Writer) error {
	ew := &errWriter{w: w}
	r := NewSVGRenderer(f.Width, f.Height, ew)
	f.Draw(r)
	r.End()
	return errors.Wrap(ew.err, "writing svg")
}

// SaveSVG draws the field & writes it to fpath as an SVG.
func (f *Field) SaveSVG(fpath string) (err error) {
	fh, err := os.Create(fpath)
	if err != nil {
		return errors.Wrapf(err, "creating %s", fpath)
	}
	defer func() {
		cerr := fh.Close()
		if err == nil && cerr != nil {
			err = errors.Wrapf(cerr, "closing %s", fpath)
		}
	}()
	return f.WriteSVG(fh)
}

// ImageRenderer draws onto an in memory RGBA image using gg.
type ImageRenderer struct {
	ctx *gg.Context
}

// NewImageRenderer returns a renderer with a blank width x height canvas
func NewImageRenderer(width, height int) *ImageRenderer {
	return &ImageRenderer{ctx: gg.NewContext(width, height)}
}

// Background fills the canvas with c
func (i *ImageRenderer) Background(c color.Color) {
	i.ctx.SetColor(c)
	i.ctx.Clear()
}

// Petal draws a rotated filled ellipse
func (i *ImageRenderer) Petal(p *Petal, c color.Color) {
	i.ctx.Push()
	i.ctx.SetColor(c)
	i.ctx.Translate(p.Position.X, p.Position.Y)
	i.ctx.Rotate(p.Rotation)
	i.ctx.DrawEllipse(0, 0, p.Width/2, p.Length/2)
	i.ctx.Fill()
	i.ctx.Pop()
}

// Centre draws a filled circle
func (i *ImageRenderer) Centre(x, y, diameter float64, c color.Color) {
	i.ctx.Push()
	i.ctx.SetColor(c)
	i.ctx.DrawCircle(x, y, diameter/2)
	i.ctx.Fill()
	i.ctx.Pop()
}

// Image returns what has been drawn so far
func (i *ImageRenderer) Image() image.Image {
	return i.ctx.Image()
}

// SavePNG to disk
func (i *ImageRenderer) SavePNG(fpath string) error {
	return errors.Wrapf(i.ctx.SavePNG(fpath), "saving %s", fpath)
}

// SVGRenderer writes SVG elements as it is told to draw them. End must
// be called to close the document.
type SVGRenderer struct {
	canvas *svg.SVG
	width  int
	height int
}

// NewSVGRenderer starts a width x height SVG document on w
func NewSVGRenderer(width, height int, w io.Writer) *SVGRenderer {
	canvas := svg.New(w)
	canvas.Start(width, height)
	return &SVGRenderer{canvas: canvas, width: width, height: height}
}

// Background adds a rect covering the canvas
func (s *SVGRenderer) Background(c color.Color) {
	s.canvas.Rect(0, 0, s.width, s.height, fill(c))
}

// Petal adds an ellipse inside a translated & rotated group
func (s *SVGRenderer) Petal(p *Petal, c color.Color) {
	s.canvas.TranslateRotate(round(p.Position.X), round(p.Position.Y), degrees(p.Rotation))
	s.canvas.Ellipse(0, 0, round(p.Width/2), round(p.Length/2), fill(c))
	s.canvas.Gend()
}

// Centre adds a circle
func (s *SVGRenderer) Centre(x, y, diameter float64, c color.Color) {
	s.canvas.Circle(round(x), round(y), round(diameter/2), fill(c))
}

// End closes the SVG document
func (s *SVGRenderer) End() {
	s.canvas.End()
}

// fill returns an svg style filling with c
func fill(c color.Color) string {
	if h, ok := c.(Colour); ok {
		return "fill:" + h.Hex()
	}
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("fill:rgb(%d,%d,%d)", r>>8, g>>8, b>>8)
}
