package poisson

import (
	"math"

	"github.com/golang/geo/r2"
)

// distance standard pythag.
func distance(a, b r2.Point) float64 {
	return a.Sub(b).Norm()
}

// finite returns false for NaN & ±Inf
func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// maxint returns the highest of two ints
func maxint(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// minint returns the lowest of two ints
func minint(a, b int) int {
	if a < b {
		return a
	}
	return b
}
