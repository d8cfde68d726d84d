package ui

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/mobile/event/touch"

	"github.com/example/framer/internal/editor"
	"github.com/example/framer/internal/geom"
	"github.com/example/framer/internal/theme"
)

const (
	barHeight   = 28
	stripHeight = 52
	margin      = 16
	itemHeight  = 32
	itemPadding = 10
	itemGap     = 6
	checkerSize = 12
)

// frameDropThreshold specifies how many consecutive frames can be canceled
// before a frame is allowed to finish.
const frameDropThreshold = 10

var (
	labelFace   font.Face = basicfont.Face7x13
	messageFace font.Face = basicfont.Face7x13
)

func init() {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		log.Printf("parse font: %v", err)
		return
	}
	if face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: 14, DPI: 72, Hinting: font.HintingFull}); err == nil {
		labelFace = face
	}
	if face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: 20, DPI: 72, Hinting: font.HintingFull}); err == nil {
		messageFace = face
	}
}

// layout is the window split into the status bar, the canvas and the
// template strip.
type layout struct {
	width, height int
	bar           image.Rectangle
	area          image.Rectangle
	canvas        image.Rectangle
	strip         image.Rectangle
}

func computeLayout(width, height int, surface image.Point) layout {
	l := layout{
		width:  width,
		height: height,
		bar:    image.Rect(0, 0, width, barHeight),
		strip:  image.Rect(0, height-stripHeight, width, height),
	}
	if height-stripHeight <= barHeight {
		return l
	}
	l.area = image.Rect(0, barHeight, width, height-stripHeight)
	l.canvas = geom.FitDisplay(surface, l.area.Inset(margin))
	return l
}

// mapper converts window positions over the displayed canvas to canvas
// pixels.
func (l layout) mapper(surface image.Point) geom.Mapper {
	return geom.Mapper{Surface: surface, Display: l.canvas}
}

// previewRect is where the thumbnail goes: the top-right corner of the
// canvas area.
func (l layout) previewRect(size int) image.Rectangle {
	limit := l.area.Dy() / 3
	if w := l.area.Dx() / 3; w < limit {
		limit = w
	}
	if size > limit {
		size = limit
	}
	if size <= 0 {
		return image.Rectangle{}
	}
	x1 := l.area.Max.X - 8
	y0 := l.area.Min.Y + 8
	return image.Rect(x1-size, y0, x1, y0+size)
}

// stripItem is one entry of the template strip. Index 0 is "None".
type stripItem struct {
	label string
	index int
	rect  image.Rectangle
}

func itemLabel(i int, name string) string {
	if i <= 9 {
		return fmt.Sprintf("%d %s", i, name)
	}
	return name
}

// layoutStrip places one item per template name left to right. Items that do
// not fit are dropped.
func layoutStrip(names []string, strip image.Rectangle) []stripItem {
	d := &font.Drawer{Face: labelFace}
	y0 := strip.Min.Y + (strip.Dy()-itemHeight)/2
	x := strip.Min.X + margin
	var items []stripItem
	for i, name := range names {
		label := itemLabel(i, name)
		w := d.MeasureString(label).Ceil() + 2*itemPadding
		if x+w > strip.Max.X-margin {
			break
		}
		items = append(items, stripItem{label: label, index: i, rect: image.Rect(x, y0, x+w, y0+itemHeight)})
		x += w + itemGap
	}
	return items
}

// hitStrip returns the item under p, or -1.
func hitStrip(items []stripItem, p image.Point) int {
	for i, it := range items {
		if p.In(it.rect) {
			return i
		}
	}
	return -1
}

// touchStrip returns the strip item a touch begins on, or -1. ok reports
// whether the touch landed in the strip at all; such touches never reach the
// gesture input.
func touchStrip(items []stripItem, strip image.Rectangle, e touch.Event) (i int, ok bool) {
	p := image.Pt(int(e.X), int(e.Y))
	if e.Type != touch.TypeBegin || !p.In(strip) {
		return -1, false
	}
	return hitStrip(items, p), true
}

// ButtonState describes the visual state of a strip item.
type ButtonState int

const (
	StateDefault ButtonState = iota
	StateHover
	StatePressed
)

func (it stripItem) draw(dst *image.RGBA, th *theme.Theme, state ButtonState) {
	bg := th.StripItem
	fg := th.StripText
	switch state {
	case StateHover:
		bg = th.StripItemHover
	case StatePressed:
		bg = th.Accent
		fg = th.Background
	}
	draw.Draw(dst, it.rect, &image.Uniform{bg}, image.Point{}, draw.Src)
	drawRect(dst, it.rect, th.CanvasBorder, 1)
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(fg), Face: labelFace}
	asc := labelFace.Metrics().Ascent.Ceil()
	desc := labelFace.Metrics().Descent.Ceil()
	d.Dot = fixed.P(it.rect.Min.X+itemPadding, it.rect.Min.Y+(it.rect.Dy()-asc-desc)/2+asc)
	d.DrawString(it.label)
}

// statusText is the status bar line: active layer, its scale and the
// selected template.
func statusText(active editor.Layer, t editor.Transform, template string, hasPhoto bool) string {
	if !hasPhoto {
		return "No photo: press Ctrl+V to paste one or start with -photo <path>"
	}
	return fmt.Sprintf("Layer: %s   Zoom: %.0f%%   Offset: %+.0f,%+.0f   Overlay: %s",
		active, t.Scale*100, t.X, t.Y, template)
}

// drawCheckerboard fills rect of dst with a checkerboard pattern of the given
// colors. size controls the checker square size.
func drawCheckerboard(dst *image.RGBA, rect image.Rectangle, size int, light, dark color.Color) {
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if (((x-rect.Min.X)/size)+((y-rect.Min.Y)/size))%2 == 0 {
				dst.Set(x, y, light)
			} else {
				dst.Set(x, y, dark)
			}
		}
	}
}

// checker caches the checkerboard shown behind transparent canvas pixels.
type checker struct {
	img         *image.RGBA
	light, dark color.RGBA
}

func (c *checker) get(size image.Point, light, dark color.RGBA) *image.RGBA {
	if c.img == nil || c.img.Bounds().Size() != size || c.light != light || c.dark != dark {
		c.img = image.NewRGBA(image.Rectangle{Max: size})
		c.light, c.dark = light, dark
		drawCheckerboard(c.img, c.img.Bounds(), checkerSize, light, dark)
	}
	return c.img
}

func drawRect(dst *image.RGBA, r image.Rectangle, col color.Color, w int) {
	u := &image.Uniform{col}
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+w), u, image.Point{}, draw.Over)
	draw.Draw(dst, image.Rect(r.Min.X, r.Max.Y-w, r.Max.X, r.Max.Y), u, image.Point{}, draw.Over)
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y+w, r.Min.X+w, r.Max.Y-w), u, image.Point{}, draw.Over)
	draw.Draw(dst, image.Rect(r.Max.X-w, r.Min.Y+w, r.Max.X, r.Max.Y-w), u, image.Point{}, draw.Over)
}
