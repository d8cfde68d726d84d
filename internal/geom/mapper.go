package geom

import "image"

// Mapper converts client coordinates into surface coordinates when the
// surface is displayed at a different size than it is rasterised at.
type Mapper struct {
	// Surface is the raster size of the canvas.
	Surface image.Point
	// Display is where the canvas is shown, in client coordinates.
	Display image.Rectangle
}

// ToSurface maps a client position to surface pixels. Each axis is scaled by
// Surface/Display independently. A degenerate display maps 1:1.
func (m Mapper) ToSurface(x, y float64) Point {
	sx, sy := m.factors()
	return Point{
		X: (x - float64(m.Display.Min.X)) * sx,
		Y: (y - float64(m.Display.Min.Y)) * sy,
	}
}

// ToDisplay is the inverse of ToSurface.
func (m Mapper) ToDisplay(p Point) (float64, float64) {
	sx, sy := m.factors()
	return p.X/sx + float64(m.Display.Min.X), p.Y/sy + float64(m.Display.Min.Y)
}

// Contains reports whether the client position lies over the displayed canvas.
func (m Mapper) Contains(x, y float64) bool {
	return image.Pt(int(x), int(y)).In(m.Display)
}

func (m Mapper) factors() (float64, float64) {
	sx, sy := 1.0, 1.0
	if dw := m.Display.Dx(); dw > 0 && m.Surface.X > 0 {
		sx = float64(m.Surface.X) / float64(dw)
	}
	if dh := m.Display.Dy(); dh > 0 && m.Surface.Y > 0 {
		sy = float64(m.Surface.Y) / float64(dh)
	}
	return sx, sy
}

// FitDisplay returns the largest square-ish rectangle with the surface's
// aspect that fits inside avail, centred in it. The editor uses it to lay the
// canvas out inside the window.
func FitDisplay(surface image.Point, avail image.Rectangle) image.Rectangle {
	if surface.X <= 0 || surface.Y <= 0 || avail.Empty() {
		return image.Rectangle{}
	}
	box := float64(avail.Dx())
	if h := float64(avail.Dy()); h < box {
		box = h
	}
	w, h := Contain(float64(surface.X), float64(surface.Y), box)
	iw, ih := int(w), int(h)
	x0 := avail.Min.X + (avail.Dx()-iw)/2
	y0 := avail.Min.Y + (avail.Dy()-ih)/2
	return image.Rect(x0, y0, x0+iw, y0+ih)
}
