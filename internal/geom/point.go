package geom

import (
	"image"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Point is a position in surface pixels.
type Point = r2.Vec

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Delta returns to - from.
func Delta(from, to Point) Point { return r2.Sub(to, from) }

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Point) float64 { return r2.Norm(r2.Sub(a, b)) }

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b Point) Point { return r2.Scale(0.5, r2.Add(a, b)) }

// Rect is a float rectangle given by its top-left corner and size.
type Rect struct {
	X, Y float64
	W, H float64
}

// Centered returns a w×h rectangle centred on the origin.
func Centered(w, h float64) Rect {
	return Rect{X: -w / 2, Y: -h / 2, W: w, H: h}
}

// Offset returns r translated by (dx, dy).
func (r Rect) Offset(dx, dy float64) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Image returns the smallest integer rectangle containing r.
func (r Rect) Image() image.Rectangle {
	return image.Rect(
		int(math.Floor(r.X)),
		int(math.Floor(r.Y)),
		int(math.Ceil(r.X+r.W)),
		int(math.Ceil(r.Y+r.H)),
	)
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }
