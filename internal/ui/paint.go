package ui

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"log"
	"time"

	"golang.org/x/exp/shiny/screen"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/example/framer/internal/editor"
	"github.com/example/framer/internal/geom"
	"github.com/example/framer/internal/render"
	"github.com/example/framer/internal/theme"
)

type paintState struct {
	width, height int
	theme         *theme.Theme
	scene         editor.Scene
	version       uint64
	opts          render.Options
	active        editor.Layer
	status        string
	items         []stripItem
	selected      int
	hover         int
	showPreview   bool
	showHelp      bool
	message       string
	messageUntil  time.Time
}

// compositor keeps the last rendered canvas and thumbnail so unchanged
// sessions are not re-rendered for hover or snackbar repaints. It is owned by
// the paint goroutine.
type compositor struct {
	version     uint64
	canvas      *image.RGBA
	stats       render.Stats
	preview     *image.RGBA
	previewAt   uint64
	background  color.Color
	backdrop    checker
	thumbChecks checker
}

func (c *compositor) render(st paintState) (*image.RGBA, render.Stats) {
	size := st.scene.Canvas
	if c.canvas == nil || c.canvas.Bounds().Size() != size || c.version != st.version || c.background != st.opts.Background {
		if c.canvas == nil || c.canvas.Bounds().Size() != size {
			c.canvas = render.NewCanvas(size.X)
		}
		c.stats = st.scene.Draw(c.canvas, st.opts)
		c.version = st.version
		c.background = st.opts.Background
		c.preview = nil
	}
	return c.canvas, c.stats
}

// thumbnail is computed on demand and only after the canvas changed.
func (c *compositor) thumbnail() *image.RGBA {
	if c.canvas == nil {
		return nil
	}
	if c.preview == nil || c.previewAt != c.version {
		c.preview = render.Preview(c.canvas, render.PreviewSize)
		c.previewAt = c.version
	}
	return c.preview
}

func drawFrame(ctx context.Context, s screen.Screen, w screen.Window, st paintState, comp *compositor) {
	if st.width <= 0 || st.height <= 0 {
		return
	}
	b, err := s.NewBuffer(image.Point{st.width, st.height})
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()
	dst := b.RGBA()
	th := st.theme
	if th == nil {
		th = theme.Default()
	}

	draw.Draw(dst, dst.Bounds(), &image.Uniform{th.Background}, image.Point{}, draw.Src)
	l := computeLayout(st.width, st.height, st.scene.Canvas)

	canvas, stats := comp.render(st)
	if ctx.Err() != nil {
		return
	}
	if !l.canvas.Empty() {
		bg := comp.backdrop.get(l.canvas.Size(), th.CheckerLight, th.CheckerDark)
		draw.Draw(dst, l.canvas, bg, image.Point{}, draw.Src)
		xdraw.ApproxBiLinear.Scale(dst, l.canvas, canvas, canvas.Bounds(), draw.Over, nil)
		drawRect(dst, l.canvas.Inset(-1), th.CanvasBorder, 1)
		if st.active == editor.LayerOverlay && stats.OverlayDrawn {
			m := l.mapper(st.scene.Canvas)
			x0, y0 := m.ToDisplay(geom.Pt(stats.OverlayRect.X, stats.OverlayRect.Y))
			x1, y1 := m.ToDisplay(geom.Pt(stats.OverlayRect.X+stats.OverlayRect.W, stats.OverlayRect.Y+stats.OverlayRect.H))
			r := image.Rect(int(x0), int(y0), int(x1), int(y1)).Intersect(l.canvas)
			if !r.Empty() {
				drawDashedRect(dst, r, 6, 4, th.Accent)
			}
		}
	}
	if ctx.Err() != nil {
		return
	}

	if st.showPreview {
		if pv := comp.thumbnail(); pv != nil {
			r := l.previewRect(pv.Bounds().Dx())
			if !r.Empty() {
				draw.Draw(dst, r, comp.thumbChecks.get(r.Size(), th.CheckerLight, th.CheckerDark), image.Point{}, draw.Src)
				xdraw.ApproxBiLinear.Scale(dst, r, pv, pv.Bounds(), draw.Over, nil)
				drawRect(dst, r.Inset(-2), th.Accent, 2)
			}
		}
	}

	drawBar(dst, l, th, st.status)
	drawStrip(dst, l, th, st.items, st.selected, st.hover)
	if st.showHelp {
		drawHelp(dst, l, th)
	}
	if ctx.Err() != nil {
		return
	}

	if st.message != "" && time.Now().Before(st.messageUntil) {
		drawSnackbar(dst, l, th, st.message)
	}

	if ctx.Err() != nil {
		return
	}
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}

func drawBar(dst *image.RGBA, l layout, th *theme.Theme, status string) {
	draw.Draw(dst, l.bar, &image.Uniform{th.Panel}, image.Point{}, draw.Src)
	asc := labelFace.Metrics().Ascent.Ceil()
	y := l.bar.Min.Y + (l.bar.Dy()-asc)/2 + asc
	title := &font.Drawer{Dst: dst, Src: image.NewUniform(th.Accent), Face: labelFace, Dot: fixed.P(margin, y)}
	title.DrawString("Framer")
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(th.Foreground), Face: labelFace}
	d.Dot = fixed.P(title.Dot.X.Ceil()+margin, y)
	d.DrawString(status)
}

func drawStrip(dst *image.RGBA, l layout, th *theme.Theme, items []stripItem, selected, hover int) {
	draw.Draw(dst, l.strip, &image.Uniform{th.Panel}, image.Point{}, draw.Src)
	for i, it := range items {
		state := StateDefault
		if i == selected {
			state = StatePressed
		} else if i == hover {
			state = StateHover
		}
		it.draw(dst, th, state)
	}
}

func drawHelp(dst *image.RGBA, l layout, th *theme.Theme) {
	lineH := labelFace.Metrics().Height.Ceil() + 4
	d := &font.Drawer{Face: labelFace}
	wmax := 0
	for _, line := range helpLines {
		if w := d.MeasureString(line).Ceil(); w > wmax {
			wmax = w
		}
	}
	r := image.Rect(0, 0, wmax+2*margin, len(helpLines)*lineH+margin).Add(l.area.Min.Add(image.Pt(8, 8)))
	draw.Draw(dst, r, &image.Uniform{th.SnackbarBackground}, image.Point{}, draw.Over)
	d.Dst = dst
	d.Src = image.NewUniform(th.SnackbarText)
	asc := labelFace.Metrics().Ascent.Ceil()
	for i, line := range helpLines {
		d.Dot = fixed.P(r.Min.X+margin, r.Min.Y+margin/2+i*lineH+asc)
		d.DrawString(line)
	}
}

func drawSnackbar(dst *image.RGBA, l layout, th *theme.Theme, msg string) {
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(th.SnackbarText), Face: messageFace}
	wmsg := d.MeasureString(msg).Ceil()
	ascent := messageFace.Metrics().Ascent.Ceil()
	descent := messageFace.Metrics().Descent.Ceil()
	px := (l.width - wmsg) / 2
	py := l.area.Max.Y - margin - descent - 8
	rect := image.Rect(px-12, py-ascent-8, px+wmsg+12, py+descent+8)
	draw.Draw(dst, rect, &image.Uniform{th.SnackbarBackground}, image.Point{}, draw.Over)
	d.Dot = fixed.P(px, py)
	d.DrawString(msg)
}

// drawDashedRect outlines r with dashes of length dash separated by gap.
func drawDashedRect(dst *image.RGBA, r image.Rectangle, dash, gap int, col color.Color) {
	period := dash + gap
	for x := r.Min.X; x < r.Max.X; x++ {
		if (x-r.Min.X)%period < dash {
			dst.Set(x, r.Min.Y, col)
			dst.Set(x, r.Max.Y-1, col)
		}
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		if (y-r.Min.Y)%period < dash {
			dst.Set(r.Min.X, y, col)
			dst.Set(r.Max.X-1, y, col)
		}
	}
}
