package gesture

import (
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/touch"

	"github.com/example/framer/internal/geom"
)

// Tracker keeps the live touch contacts in the order they went down.
type Tracker struct {
	order []touch.Sequence
	pos   map[touch.Sequence]geom.Point
}

// Set records the position of seq, adding it if new. It reports whether the
// contact was new.
func (t *Tracker) Set(seq touch.Sequence, p geom.Point) bool {
	if t.pos == nil {
		t.pos = make(map[touch.Sequence]geom.Point)
	}
	_, ok := t.pos[seq]
	t.pos[seq] = p
	if !ok {
		t.order = append(t.order, seq)
	}
	return !ok
}

// Remove forgets seq.
func (t *Tracker) Remove(seq touch.Sequence) {
	if _, ok := t.pos[seq]; !ok {
		return
	}
	delete(t.pos, seq)
	for i, s := range t.order {
		if s == seq {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
}

// Points returns the live contacts in arrival order.
func (t *Tracker) Points() []geom.Point {
	out := make([]geom.Point, 0, len(t.order))
	for _, s := range t.order {
		out = append(out, t.pos[s])
	}
	return out
}

// Has reports whether seq is a live contact.
func (t *Tracker) Has(seq touch.Sequence) bool {
	_, ok := t.pos[seq]
	return ok
}

// Len is the number of live contacts.
func (t *Tracker) Len() int { return len(t.order) }

// Clear drops every contact.
func (t *Tracker) Clear() {
	t.order = t.order[:0]
	clear(t.pos)
}

// Input normalises shiny mouse and touch events into controller samples.
type Input struct {
	Controller *Controller
	// Mapper converts window coordinates to canvas pixels. The UI updates it
	// on every resize.
	Mapper geom.Mapper

	touches Tracker
	mouseDn bool
}

// NewInput wraps a controller.
func NewInput(c *Controller) *Input { return &Input{Controller: c} }

// Mouse feeds a mouse event. It reports whether the event was consumed.
func (in *Input) Mouse(e mouse.Event) bool {
	x, y := float64(e.X), float64(e.Y)
	switch {
	case e.Direction == mouse.DirStep && e.Button == mouse.ButtonWheelUp:
		in.Controller.Wheel(1)
		return true
	case e.Direction == mouse.DirStep && e.Button == mouse.ButtonWheelDown:
		in.Controller.Wheel(-1)
		return true
	case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress:
		if !in.Mapper.Contains(x, y) {
			return false
		}
		in.mouseDn = true
		in.Controller.Down([]geom.Point{in.Mapper.ToSurface(x, y)})
		return true
	case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirRelease:
		if !in.mouseDn {
			return false
		}
		in.mouseDn = false
		in.Controller.Up(nil)
		return true
	case e.Direction == mouse.DirNone && in.mouseDn:
		if !in.Mapper.Contains(x, y) {
			in.mouseDn = false
			in.Controller.Leave()
			return true
		}
		in.Controller.Move([]geom.Point{in.Mapper.ToSurface(x, y)})
		return true
	}
	return false
}

// Touch feeds a touch event and reports whether it was consumed. Contacts
// that begin outside the canvas are not tracked, so their moves and ends are
// ignored too.
func (in *Input) Touch(e touch.Event) bool {
	x, y := float64(e.X), float64(e.Y)
	p := in.Mapper.ToSurface(x, y)
	switch e.Type {
	case touch.TypeBegin:
		if !in.Mapper.Contains(x, y) {
			return false
		}
		in.touches.Set(e.Sequence, p)
		in.Controller.Down(in.touches.Points())
	case touch.TypeMove:
		if !in.touches.Has(e.Sequence) {
			return false
		}
		in.touches.Set(e.Sequence, p)
		in.Controller.Move(in.touches.Points())
	case touch.TypeEnd:
		if !in.touches.Has(e.Sequence) {
			return false
		}
		in.touches.Remove(e.Sequence)
		in.Controller.Up(in.touches.Points())
	}
	return true
}

// Leave cancels every gesture, as when the window loses focus.
func (in *Input) Leave() {
	in.mouseDn = false
	in.touches.Clear()
	in.Controller.Leave()
}
