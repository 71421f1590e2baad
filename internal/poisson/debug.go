package poisson

import (
	"image/color"
	"math"
	"os"
	"path/filepath"

	"github.com/golang/geo/r2"
	"github.com/unixpickle/model3d/model2d"
	"golang.org/x/image/colornames"
)

// DebugRender writes to os.TempDir "poisson.png", see DebugRenderTo
func DebugRender(width, height, minDistance float64, points []r2.Point) (string, error) {
	fpath := filepath.Join(os.TempDir(), "poisson.png")
	return fpath, DebugRenderTo(fpath, width, height, minDistance, points)
}

// DebugRenderTo rasterises the sampled points onto a width x height canvas.
// Each point gets a disk of radius minDistance/2; if the separation holds
// none of the disks overlap.
func DebugRenderTo(fpath string, width, height, minDistance float64, points []r2.Point) error {
	bg := model2d.NewRect(model2d.Coord{}, model2d.Coord{X: width, Y: height})

	disks := model2d.JoinedSolid{}
	dots := model2d.JoinedSolid{}
	for _, p := range points {
		c := model2d.Coord{X: p.X, Y: p.Y}
		disks = append(disks, &model2d.Circle{Center: c, Radius: minDistance / 2})
		dots = append(dots, &model2d.Circle{Center: c, Radius: math.Max(2, minDistance/20)})
	}

	objs := []interface{}{bg}
	cols := []color.Color{color.Gray{Y: 0xff}}
	if len(points) > 0 {
		objs = append(objs,
			model2d.IntersectedSolid{disks.Optimize(), bg},
			model2d.IntersectedSolid{dots.Optimize(), bg},
		)
		cols = append(cols, colornames.Lightsteelblue, colornames.Crimson)
	}

	return model2d.RasterizeColor(fpath, objs, cols, 1.0)
}
