package render

import (
	"fmt"
	"image"
	"math"
	"strings"

	xdraw "golang.org/x/image/draw"

	"github.com/example/framer/internal/geom"
)

// Mode is how an overlay is placed on the canvas.
type Mode int

const (
	// Frame stretches the overlay over the whole canvas (contain fit).
	Frame Mode = iota
	UpLeft
	UpRight
	DownLeft
	DownRight
)

var modeNames = [...]string{"frame", "up-left", "up-right", "down-left", "down-right"}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("mode(%d)", int(m))
	}
	return modeNames[m]
}

// Badge reports whether m places the overlay in a corner.
func (m Mode) Badge() bool { return m >= UpLeft && m <= DownRight }

// ParseMode accepts the names printed by String. Empty selects Frame.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Frame, nil
	}
	for i, n := range modeNames {
		if n == s {
			return Mode(i), nil
		}
	}
	return Frame, fmt.Errorf("unknown overlay mode %q", s)
}

// Modes lists every mode name.
func Modes() []string { return append([]string(nil), modeNames[:]...) }

// CornerRadius is the rounding of a badge's inner corner relative to its side.
const CornerRadius = 0.2

const defaultBadgeScale = 0.25

// BadgeShadowOptions returns the shadow drawn under corner badges at a
// 256px badge size.
func BadgeShadowOptions() ShadowOptions {
	return ShadowOptions{Radius: 8, Offset: image.Pt(0, 4), Opacity: 0.4}
}

// badgeTile rasterises a corner badge. It returns the tile, the layer-local
// rectangle the tile covers (shadow included) and the rectangle of the badge
// itself.
func badgeTile(o *Overlay, canvas image.Point, shadow ShadowOptions) (image.Image, geom.Rect, geom.Rect) {
	box := math.Min(float64(canvas.X), float64(canvas.Y))
	scale := o.BadgeScale
	if scale <= 0 {
		scale = defaultBadgeScale
	}
	side := box * scale
	px := int(math.Round(side))
	if px <= 0 {
		return nil, geom.Rect{}, geom.Rect{}
	}

	tile := image.NewRGBA(image.Rect(0, 0, px, px))
	xdraw.CatmullRom.Scale(tile, tile.Bounds(), o.Image, squareCrop(o.Image.Bounds()), xdraw.Src, nil)
	roundCorner(tile, innerCorner(o.Mode), CornerRadius*float64(px))

	var x, y float64
	switch o.Mode {
	case UpRight:
		x = float64(canvas.X) - side
	case DownLeft:
		y = float64(canvas.Y) - side
	case DownRight:
		x, y = float64(canvas.X)-side, float64(canvas.Y)-side
	}
	x -= float64(canvas.X) / 2
	y -= float64(canvas.Y) / 2
	core := geom.Rect{X: x, Y: y, W: side, H: side}

	k := side / float64(px)
	if shadow.Opacity <= 0 {
		return tile, core, core
	}
	f := float64(px) / 256
	shadow.Radius = int(math.Round(float64(shadow.Radius) * f))
	shadow.Offset = image.Pt(int(math.Round(float64(shadow.Offset.X)*f)), int(math.Round(float64(shadow.Offset.Y)*f)))
	res := ApplyShadow(tile, shadow)
	b := res.Image.Bounds()
	local := geom.Rect{
		X: x - float64(res.Offset.X)*k,
		Y: y - float64(res.Offset.Y)*k,
		W: float64(b.Dx()) * k,
		H: float64(b.Dy()) * k,
	}
	return res.Image, local, core
}

// squareCrop returns the centred square of r, the cover fit of r onto a
// square badge.
func squareCrop(r image.Rectangle) image.Rectangle {
	w, h := r.Dx(), r.Dy()
	if w > h {
		x := r.Min.X + (w-h)/2
		return image.Rect(x, r.Min.Y, x+h, r.Max.Y)
	}
	y := r.Min.Y + (h-w)/2
	return image.Rect(r.Min.X, y, r.Max.X, y+w)
}

type corner int

const (
	topLeft corner = iota
	topRight
	bottomRight
	bottomLeft
)

// innerCorner is the badge corner that faces the canvas centre.
func innerCorner(m Mode) corner {
	switch m {
	case UpLeft:
		return bottomRight
	case UpRight:
		return bottomLeft
	case DownLeft:
		return topRight
	default:
		return topLeft
	}
}

// roundCorner clears the pixels of img outside a quarter circle of radius r
// in corner c, with one pixel of antialiasing.
func roundCorner(img *image.RGBA, c corner, r float64) {
	if r <= 0 {
		return
	}
	b := img.Bounds()
	n := int(math.Ceil(r))
	for dy := 0; dy < n && dy < b.Dy(); dy++ {
		for dx := 0; dx < n && dx < b.Dx(); dx++ {
			// distance of the pixel centre from the arc centre
			d := math.Hypot(r-(float64(dx)+0.5), r-(float64(dy)+0.5))
			cov := geom.Clamp(r-d+0.5, 0, 1)
			if cov >= 1 {
				continue
			}
			x, y := b.Min.X+dx, b.Min.Y+dy
			if c == topRight || c == bottomRight {
				x = b.Max.X - 1 - dx
			}
			if c == bottomLeft || c == bottomRight {
				y = b.Max.Y - 1 - dy
			}
			i := img.PixOffset(x, y)
			for j := 0; j < 4; j++ {
				img.Pix[i+j] = uint8(float64(img.Pix[i+j]) * cov)
			}
		}
	}
}
