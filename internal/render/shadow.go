package render

import (
	"image"
	"image/color"
	"image/draw"
)

// ShadowOptions configures the drop shadow cast by a badge.
type ShadowOptions struct {
	Radius  int
	Offset  image.Point
	Opacity float64
}

// ShadowResult is the badge composited over its shadow.
type ShadowResult struct {
	Image *image.RGBA
	// Offset is where the badge's top-left corner landed inside Image.
	Offset image.Point
}

// ApplyShadow draws a blurred copy of img's alpha under img. The result has
// a zero origin and is large enough to hold both the badge and the shadow.
func ApplyShadow(img *image.RGBA, opts ShadowOptions) ShadowResult {
	if img == nil {
		return ShadowResult{}
	}
	if img.Bounds().Empty() || opts.Opacity <= 0 {
		return ShadowResult{Image: img}
	}
	opacity := opts.Opacity
	if opacity > 1 {
		opacity = 1
	}
	radius := max(opts.Radius, 0)

	src := img.Bounds()
	cast := src.Inset(-radius).Add(opts.Offset)
	all := src.Union(cast)

	alpha := image.NewAlpha(cast.Sub(cast.Min))
	for y := src.Min.Y; y < src.Max.Y; y++ {
		for x := src.Min.X; x < src.Max.X; x++ {
			if a := img.RGBAAt(x, y).A; a != 0 {
				alpha.SetAlpha(x-src.Min.X+radius, y-src.Min.Y+radius, color.Alpha{A: a})
			}
		}
	}
	boxBlur(alpha, radius)

	dst := image.NewRGBA(all.Sub(all.Min))
	tint := image.NewUniform(color.RGBA{A: uint8(opacity*255 + 0.5)})
	draw.DrawMask(dst, alpha.Bounds().Add(cast.Min.Sub(all.Min)), tint, image.Point{}, alpha, image.Point{}, draw.Over)
	at := src.Min.Sub(all.Min)
	draw.Draw(dst, src.Sub(src.Min).Add(at), img, src.Min, draw.Over)
	return ShadowResult{Image: dst, Offset: at}
}

// boxBlur blurs m in place with a separable box filter of the given radius.
func boxBlur(m *image.Alpha, radius int) {
	if radius <= 0 {
		return
	}
	w, h := m.Bounds().Dx(), m.Bounds().Dy()
	line := make([]uint8, max(w, h))
	sums := make([]int, max(w, h)+1)
	for y := 0; y < h; y++ {
		row := m.Pix[y*m.Stride : y*m.Stride+w]
		blurLine(row, 1, w, radius, line, sums)
	}
	for x := 0; x < w; x++ {
		blurLine(m.Pix[x:], m.Stride, h, radius, line, sums)
	}
}

// blurLine averages n samples of pix spaced step apart over a window of
// 2*radius+1, clipped at the ends.
func blurLine(pix []uint8, step, n, radius int, line []uint8, sums []int) {
	for i := 0; i < n; i++ {
		sums[i+1] = sums[i] + int(pix[i*step])
	}
	for i := 0; i < n; i++ {
		lo := max(i-radius, 0)
		hi := min(i+radius, n-1)
		line[i] = uint8((sums[hi+1] - sums[lo]) / (hi - lo + 1))
	}
	for i := 0; i < n; i++ {
		pix[i*step] = line[i]
	}
}
