package flowerfield

import (
	"io"
	"math"
)

// petalCount returns how many petals of the given width fit (twice over,
// overlapping) around a ring of the given radius. Crowded rings are halved;
// jitter moves the crowding threshold so neighbouring flowers differ.
func petalCount(radius, width float64, jitter int) int {
	if width <= 0 || radius <= 0 {
		return 0
	}

	arc := 2 * math.Pi * radius
	count := int(math.Floor(arc/width)) * 2
	if count > 25+jitter {
		count /= 2
	}
	return count
}

// errWriter remembers the first error from the underlying writer so that
// writers which ignore errors (svgo) can still report them.
type errWriter struct {
	w   io.Writer
	err error
}

// Write passes p on unless a previous write failed
func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, err
}

// round to nearest int, svgo deals in whole pixels
func round(f float64) int {
	return int(math.Round(f))
}

// degrees from radians
func degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
