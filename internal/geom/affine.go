package geom

import (
	"image"

	"golang.org/x/image/math/f64"
)

// Affine is the uniform scale + translation applied to a layer. Layer-local
// coordinates have their origin at the canvas centre.
type Affine struct {
	Scale  float64
	TX, TY float64
}

// Layer returns the transform stack used for every layer: translate to the
// canvas centre, translate by (x, y), then scale by s.
func Layer(canvas image.Point, s, x, y float64) Affine {
	return Affine{
		Scale: s,
		TX:    float64(canvas.X)/2 + x,
		TY:    float64(canvas.Y)/2 + y,
	}
}

// Apply maps a layer-local point into canvas space.
func (a Affine) Apply(p Point) Point {
	return Point{X: a.TX + a.Scale*p.X, Y: a.TY + a.Scale*p.Y}
}

// Rect maps a layer-local rectangle into canvas space.
func (a Affine) Rect(r Rect) Rect {
	tl := a.Apply(Point{X: r.X, Y: r.Y})
	return Rect{X: tl.X, Y: tl.Y, W: r.W * a.Scale, H: r.H * a.Scale}
}

// Source returns the matrix that maps pixels of src onto the layer-local
// rectangle r and then through a. It is the s2d argument expected by
// golang.org/x/image/draw transformers.
func (a Affine) Source(r Rect, src image.Rectangle) f64.Aff3 {
	sw, sh := float64(src.Dx()), float64(src.Dy())
	sx := a.Scale * r.W / sw
	sy := a.Scale * r.H / sh
	return f64.Aff3{
		sx, 0, a.TX + a.Scale*r.X - sx*float64(src.Min.X),
		0, sy, a.TY + a.Scale*r.Y - sy*float64(src.Min.Y),
	}
}
