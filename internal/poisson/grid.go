package poisson

import (
	"fmt"
	"math"

	"github.com/boljen/go-bitmap"
	"github.com/golang/geo/r2"
)

// Grid is a uniform background grid over the sampling domain
// [0, width) x [0, height).
//
// Cells are minDistance/√2 wide (floored) so that two points at least
// minDistance apart can never share a cell. Occupants are stored row-major
// in a flat slice allocated once; a bitmap marks which cells hold a point.
type Grid struct {
	width  float64
	height float64

	cellSize float64
	cols     int
	rows     int

	// how many cells either side of a candidate's cell we must look at
	// before we can say nothing is within minDistance
	reach int

	cells    []r2.Point
	occupied bitmap.Bitmap
	count    int
}

// NewGrid returns an empty grid covering a width x height domain for the
// given minimum separation.
func NewGrid(width, height, minDistance float64) (*Grid, error) {
	if !finite(width) || !finite(height) || width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %vx%v", ErrInvalidDomain, width, height)
	}
	if !finite(minDistance) || minDistance <= 0 {
		return nil, fmt.Errorf("%w: min distance %v", ErrInvalidParameters, minDistance)
	}

	cellSize := math.Floor(minDistance / math.Sqrt2)
	if cellSize < 1 {
		// a zero cell size would put every point in "cell" +Inf
		return nil, fmt.Errorf("%w: min distance %v gives cell size %v", ErrInvalidParameters, minDistance, cellSize)
	}

	cols := int(math.Ceil(width/cellSize)) + 1
	rows := int(math.Ceil(height/cellSize)) + 1

	return &Grid{
		width:    width,
		height:   height,
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		reach:    int(math.Ceil(minDistance / cellSize)),
		cells:    make([]r2.Point, cols*rows),
		occupied: bitmap.New(cols * rows),
	}, nil
}

// CellSize returns the edge length of a grid cell.
func (g *Grid) CellSize() float64 {
	return g.cellSize
}

// Dimensions returns the number of columns & rows in the grid.
func (g *Grid) Dimensions() (int, int) {
	return g.cols, g.rows
}

// Len returns how many cells currently hold a point.
func (g *Grid) Len() int {
	return g.count
}

// Occupant returns the point stored in cell (cx, cy), if any.
func (g *Grid) Occupant(cx, cy int) (r2.Point, bool) {
	if cx < 0 || cx >= g.cols || cy < 0 || cy >= g.rows {
		return r2.Point{}, false
	}
	i := g.index(cx, cy)
	if !g.occupied.Get(i) {
		return r2.Point{}, false
	}
	return g.cells[i], true
}

// Insert stores p as the occupant of its cell, replacing whatever was there.
// The caller is expected to have checked IsValidCandidate first.
func (g *Grid) Insert(p r2.Point) {
	cx, cy := g.cellFor(p)
	i := g.index(cx, cy)
	if !g.occupied.Get(i) {
		g.count++
	}
	g.occupied.Set(i, true)
	g.cells[i] = p
}

// IsValidCandidate returns true if p lies inside the domain & no inserted
// point is closer than minDistance.
func (g *Grid) IsValidCandidate(p r2.Point, minDistance float64) bool {
	if !g.inDomain(p) {
		return false
	}

	cx, cy := g.cellFor(p)

	// clamp the window to the grid, cells beyond the edge can't hold anything
	x0 := maxint(cx-g.reach, 0)
	x1 := minint(cx+g.reach, g.cols-1)
	y0 := maxint(cy-g.reach, 0)
	y1 := minint(cy+g.reach, g.rows-1)

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			i := g.index(x, y)
			if !g.occupied.Get(i) {
				continue
			}
			if distance(g.cells[i], p) < minDistance {
				return false
			}
		}
	}

	return true
}

// inDomain returns if p sits in [0, width) x [0, height)
func (g *Grid) inDomain(p r2.Point) bool {
	return p.X >= 0 && p.X < g.width && p.Y >= 0 && p.Y < g.height
}

// cellFor returns the column & row holding p
func (g *Grid) cellFor(p r2.Point) (int, int) {
	return int(math.Floor(p.X / g.cellSize)), int(math.Floor(p.Y / g.cellSize))
}

// index flattens (cx, cy) to a row-major offset
func (g *Grid) index(cx, cy int) int {
	return cy*g.cols + cx
}
