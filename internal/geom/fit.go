// Package geom holds the pure geometry used by the compositor and the
// gesture controller: fit rectangles, coordinate mapping and layer matrices.
package geom

import "math"

// Cover returns the smallest size with the aspect ratio of a w×h image that
// fully covers a square box of side box. Landscape images pin the height to
// box, everything else pins the width. The result is meant to be centred on
// the box centre.
//
// h must be non-zero; an image without a height has not been decoded.
func Cover(w, h, box float64) (float64, float64) {
	aspect := w / h
	if aspect > 1 {
		return box * aspect, box
	}
	return box, box / aspect
}

// Contain returns the largest size with the aspect ratio of a w×h image that
// fits inside a square box of side box. Overlays use this so frame borders
// are never cropped.
func Contain(w, h, box float64) (float64, float64) {
	aspect := w / h
	if aspect > 1 {
		return box, box / aspect
	}
	return box * aspect, box
}

// Clamp limits v to [lo, hi]. NaN maps to lo.
func Clamp(v, lo, hi float64) float64 {
	if v < lo || math.IsNaN(v) {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
