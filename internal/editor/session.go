// Package editor holds the framing session: the loaded images, the per-layer
// transforms and the overlay selection.
package editor

import (
	"errors"
	"fmt"
	"image"

	"github.com/example/framer/internal/catalog"
	"github.com/example/framer/internal/geom"
	"github.com/example/framer/internal/render"
)

// DefaultCanvasSize is the side of the exported picture.
const DefaultCanvasSize = 1024

// ErrClosed is returned by operations on a closed session.
var ErrClosed = errors.New("editor session closed")

// Ticket identifies one overlay selection. Completions carrying an older
// ticket than the newest selection are dropped.
type Ticket uint64

// Overlay is the selected template together with its decoded image.
type Overlay struct {
	Template catalog.Template
	Image    image.Image
}

// Session is the state behind one editor. It is not safe for concurrent use;
// all calls happen on the UI loop.
type Session struct {
	canvas     int
	photo      image.Image
	photoName  string
	overlay    *Overlay
	template   string
	transforms *State
	active     Layer
	ticket     Ticket
	closed     bool
	onChange   func()
}

// Option configures a Session.
type Option func(*Session)

// WithCanvasSize sets the canvas side in pixels.
func WithCanvasSize(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.canvas = n
		}
	}
}

// WithOnChange registers the hook called after every visible mutation.
func WithOnChange(fn func()) Option {
	return func(s *Session) { s.onChange = fn }
}

// New starts a session with no photo and no overlay.
func New(opts ...Option) *Session {
	s := &Session{
		canvas:     DefaultCanvasSize,
		transforms: NewState(),
		template:   catalog.NoneName,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) changed() {
	if s.onChange != nil {
		s.onChange()
	}
}

// Canvas is the canvas size.
func (s *Session) Canvas() image.Point { return image.Pt(s.canvas, s.canvas) }

// Photo returns the current photo or nil.
func (s *Session) Photo() image.Image { return s.photo }

// PhotoName returns the name the photo was loaded under.
func (s *Session) PhotoName() string { return s.photoName }

// HasPhoto reports whether a photo is loaded.
func (s *Session) HasPhoto() bool { return s.photo != nil }

// Overlay returns the current overlay or nil.
func (s *Session) Overlay() *Overlay { return s.overlay }

// Template is the name of the selected template, "None" when there is none.
func (s *Session) Template() string { return s.template }

// Closed reports whether Close has been called.
func (s *Session) Closed() bool { return s.closed }

// Active is the layer gestures apply to.
func (s *Session) Active() Layer { return s.active }

// SetActive selects the layer gestures apply to.
func (s *Session) SetActive(l Layer) {
	if s.closed || s.active == l {
		return
	}
	s.active = l
	s.changed()
}

// ToggleLayer switches between photo and overlay.
func (s *Session) ToggleLayer() {
	if s.active == LayerPhoto {
		s.SetActive(LayerOverlay)
	} else {
		s.SetActive(LayerPhoto)
	}
}

// Transform returns a copy of the layer's transform.
func (s *Session) Transform(l Layer) Transform { return s.transforms.Get(l) }

// SetTransform overwrites the layer's transform.
func (s *Session) SetTransform(l Layer, t Transform) {
	if s.closed {
		return
	}
	s.transforms.Set(l, t)
	s.changed()
}

// LoadPhoto replaces the photo and resets its transform.
func (s *Session) LoadPhoto(img image.Image, name string) error {
	if s.closed {
		return ErrClosed
	}
	if img == nil || img.Bounds().Empty() {
		return fmt.Errorf("load photo %s: empty image", name)
	}
	s.photo = img
	s.photoName = name
	s.transforms.Reset(LayerPhoto)
	s.changed()
	return nil
}

// RequestOverlay records a new selection of tpl and returns its ticket. The
// caller loads the image and hands it to ResolveOverlay.
func (s *Session) RequestOverlay(tpl catalog.Template) Ticket {
	s.ticket++
	if !s.closed {
		s.template = tpl.Name
	}
	return s.ticket
}

// ResolveOverlay completes a selection. A stale ticket is ignored and reports
// false. A load error clears the overlay slot and is returned so the caller
// can show it once.
func (s *Session) ResolveOverlay(t Ticket, tpl catalog.Template, img image.Image, loadErr error) (bool, error) {
	if s.closed || t != s.ticket {
		return false, nil
	}
	if loadErr == nil && (img == nil || img.Bounds().Empty()) {
		loadErr = errors.New("empty image")
	}
	if loadErr != nil {
		s.overlay = nil
		s.template = catalog.NoneName
		s.changed()
		return true, fmt.Errorf("overlay %s: %w", tpl.Name, loadErr)
	}
	s.overlay = &Overlay{Template: tpl, Image: img}
	s.changed()
	return true, nil
}

// SelectTemplate synchronously installs tpl with an already decoded image.
func (s *Session) SelectTemplate(tpl catalog.Template, img image.Image) error {
	if s.closed {
		return ErrClosed
	}
	_, err := s.ResolveOverlay(s.RequestOverlay(tpl), tpl, img, nil)
	return err
}

// ClearOverlay selects "None". In-flight loads become stale.
func (s *Session) ClearOverlay() {
	if s.closed {
		return
	}
	s.ticket++
	s.template = catalog.NoneName
	if s.overlay == nil {
		return
	}
	s.overlay = nil
	s.changed()
}

// CanDrag reports whether pointer gestures should be honoured.
func (s *Session) CanDrag() bool { return !s.closed && s.photo != nil }

// Pan moves the active layer.
func (s *Session) Pan(dx, dy float64) { s.Nudge(s.active, dx, dy) }

// Nudge moves layer l by (dx, dy).
func (s *Session) Nudge(l Layer, dx, dy float64) {
	if s.closed || (dx == 0 && dy == 0) {
		return
	}
	s.transforms.ApplyDelta(l, dx, dy)
	s.changed()
}

// Scale returns the active layer's scale.
func (s *Session) Scale() float64 { return s.transforms.Get(s.active).Scale }

// SetScale overwrites the active layer's scale.
func (s *Session) SetScale(v float64) {
	if s.closed || v == s.Scale() {
		return
	}
	s.transforms.SetScale(s.active, v)
	s.changed()
}

// Zoom multiplies the active layer's scale by factor, clamped to
// [geom.MinScale, geom.MaxScale].
func (s *Session) Zoom(factor float64) {
	s.SetScale(geom.ClampScale(s.Scale() * factor))
}

// Reset returns layer l to identity.
func (s *Session) Reset(l Layer) {
	if s.closed {
		return
	}
	s.transforms.Reset(l)
	s.changed()
}

// Scene is an immutable copy of what the renderer needs.
type Scene struct {
	Canvas   image.Point
	Photo    image.Image
	PhotoT   Transform
	Overlay  *render.Overlay
	OverlayT Transform
}

// Scene snapshots the session for rendering off the UI loop.
func (s *Session) Scene() Scene {
	sc := Scene{
		Canvas:   s.Canvas(),
		Photo:    s.photo,
		PhotoT:   s.transforms.Get(LayerPhoto),
		OverlayT: s.transforms.Get(LayerOverlay),
	}
	if s.overlay != nil {
		mode, err := render.ParseMode(s.overlay.Template.Mode)
		if err != nil {
			mode = render.Frame
		}
		sc.Overlay = &render.Overlay{
			Image:      s.overlay.Image,
			Mode:       mode,
			BadgeScale: s.overlay.Template.BadgeScale,
		}
	}
	return sc
}

// Draw renders sc onto dst.
func (sc Scene) Draw(dst *image.RGBA, opts render.Options) render.Stats {
	return render.Render(dst, sc.Photo, sc.PhotoT, sc.Overlay, sc.OverlayT, opts)
}

// Compose renders the scene onto a new canvas.
func (sc Scene) Compose(opts render.Options) (*image.RGBA, render.Stats) {
	dst := render.NewCanvas(sc.Canvas.X)
	return dst, sc.Draw(dst, opts)
}

// Close tears the session down. Images are dropped and later mutations are
// ignored.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.ticket++
	s.photo = nil
	s.overlay = nil
	s.onChange = nil
}
