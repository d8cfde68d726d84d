// Package render composites the photo and overlay layers onto the canvas.
package render

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"

	"github.com/example/framer/internal/geom"
)

// Quality selects the resampling kernel.
type Quality int

const (
	// Fast is used for live editing.
	Fast Quality = iota
	// High is used for export.
	High
)

func (q Quality) interpolator() xdraw.Interpolator {
	if q == High {
		return xdraw.CatmullRom
	}
	return xdraw.ApproxBiLinear
}

// Options configures a Render call.
type Options struct {
	// Background fills the canvas before drawing. Nil leaves it transparent.
	Background color.Color
	Quality    Quality
	// Shadow is applied to corner badges. A zero value disables it.
	Shadow ShadowOptions
}

// DefaultOptions returns the export settings: transparent background, high
// quality and a soft badge shadow.
func DefaultOptions() Options {
	return Options{Quality: High, Shadow: BadgeShadowOptions()}
}

// Overlay is the decoded overlay plus its placement.
type Overlay struct {
	Image      image.Image
	Mode       Mode
	BadgeScale float64
}

// Stats reports which layers were drawn and where.
type Stats struct {
	PhotoDrawn   bool
	OverlayDrawn bool
	PhotoRect    geom.Rect
	OverlayRect  geom.Rect
}

// Render clears dst and draws the photo then the overlay. A nil photo leaves
// the canvas cleared and draws nothing else.
func Render(dst *image.RGBA, photo image.Image, photoT geom.Transform, overlay *Overlay, overlayT geom.Transform, opts Options) Stats {
	var st Stats
	if dst == nil {
		return st
	}
	fill(dst, opts.Background)
	if photo == nil || photo.Bounds().Empty() {
		return st
	}
	canvas := dst.Bounds().Size()
	box := float64(canvas.X)
	if h := float64(canvas.Y); h < box {
		box = h
	}
	interp := opts.Quality.interpolator()

	pb := photo.Bounds()
	w, h := geom.Cover(float64(pb.Dx()), float64(pb.Dy()), box)
	if r, ok := drawLayer(dst, photo, geom.Centered(w, h), photoT, interp); ok {
		st.PhotoDrawn = true
		st.PhotoRect = r
	}

	if overlay == nil || overlay.Image == nil || overlay.Image.Bounds().Empty() {
		return st
	}
	var (
		src         image.Image
		local, core geom.Rect
	)
	if overlay.Mode.Badge() {
		src, local, core = badgeTile(overlay, canvas, opts.Shadow)
	} else {
		ob := overlay.Image.Bounds()
		ow, oh := geom.Contain(float64(ob.Dx()), float64(ob.Dy()), box)
		src, local = overlay.Image, geom.Centered(ow, oh)
		core = local
	}
	if src == nil {
		return st
	}
	if _, ok := drawLayer(dst, src, local, overlayT, interp); ok {
		st.OverlayDrawn = true
		st.OverlayRect = overlayT.Affine(canvas).Rect(core)
	}
	return st
}

// drawLayer draws src into the layer-local rectangle local through t.
func drawLayer(dst *image.RGBA, src image.Image, local geom.Rect, t geom.Transform, interp xdraw.Interpolator) (geom.Rect, bool) {
	if t.Scale <= 0 || local.Empty() {
		return geom.Rect{}, false
	}
	a := t.Affine(dst.Bounds().Size())
	interp.Transform(dst, a.Source(local, src.Bounds()), src, src.Bounds(), xdraw.Over, nil)
	return a.Rect(local), true
}

func fill(dst *image.RGBA, bg color.Color) {
	var c image.Image = image.Transparent
	if bg != nil {
		c = image.NewUniform(bg)
	}
	draw.Draw(dst, dst.Bounds(), c, image.Point{}, draw.Src)
}

// NewCanvas allocates a square canvas of the given side.
func NewCanvas(side int) *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, side, side))
}
