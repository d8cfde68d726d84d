package render

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// PreviewSize is the default thumbnail side.
const PreviewSize = 256

// Preview returns a size×size thumbnail of the canvas. A non-positive size
// selects PreviewSize.
func Preview(src *image.RGBA, size int) *image.RGBA {
	if src == nil {
		return nil
	}
	if size <= 0 {
		size = PreviewSize
	}
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}
