package geom

import "image"

// Transform is a layer's pan/zoom relative to the canvas centre. Scale is a
// multiplier about the centre, X and Y are pixel offsets from it.
type Transform struct {
	Scale float64 `json:"scale"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// Scale bounds shared by pinch, wheel, keyboard and prompt zoom.
const (
	MinScale = 0.5
	MaxScale = 2.0
)

// ZoomStep is the factor applied by one wheel notch or zoom key.
const ZoomStep = 1.1

// ClampScale limits s to [MinScale, MaxScale].
func ClampScale(s float64) float64 { return Clamp(s, MinScale, MaxScale) }

// Identity returns the transform that leaves a layer centred at its fit size.
func Identity() Transform { return Transform{Scale: 1} }

// Affine returns the transform stack for t on a canvas of the given size.
func (t Transform) Affine(canvas image.Point) Affine {
	return Layer(canvas, t.Scale, t.X, t.Y)
}
