// Package gesture turns pointer and touch samples into pan and zoom
// operations on the active layer.
package gesture

import (
	"github.com/example/framer/internal/geom"
)

// Target is what a gesture mutates. *editor.Session implements it.
type Target interface {
	// CanDrag reports whether there is anything to move.
	CanDrag() bool
	Pan(dx, dy float64)
	Scale() float64
	SetScale(v float64)
}

// State is the controller's mode. Exactly one is active.
type State int

const (
	Idle State = iota
	Dragging
	Pinching
)

func (s State) String() string {
	switch s {
	case Dragging:
		return "dragging"
	case Pinching:
		return "pinching"
	default:
		return "idle"
	}
}

// Controller is the Idle/Dragging/Pinching state machine. All points are in
// surface coordinates.
type Controller struct {
	target Target
	state  State

	last geom.Point

	initialDist  float64
	initialScale float64
}

// New returns an idle controller driving t.
func New(t Target) *Controller {
	return &Controller{target: t}
}

// State returns the current mode.
func (c *Controller) State() State { return c.state }

// Down is called when a contact is added. points holds every live contact.
func (c *Controller) Down(points []geom.Point) {
	if !c.target.CanDrag() {
		return
	}
	switch {
	case len(points) >= 2:
		c.state = Pinching
		c.initialDist = geom.Distance(points[0], points[1])
		c.initialScale = c.target.Scale()
	case len(points) == 1 && c.state == Idle:
		c.state = Dragging
		c.last = points[0]
	}
}

// Move is called when any contact moves.
func (c *Controller) Move(points []geom.Point) {
	switch c.state {
	case Dragging:
		if len(points) == 0 {
			return
		}
		cur := points[0]
		d := geom.Delta(c.last, cur)
		c.last = cur
		c.target.Pan(d.X, d.Y)
	case Pinching:
		if len(points) < 2 || c.initialDist == 0 {
			return
		}
		ratio := geom.Distance(points[0], points[1]) / c.initialDist
		c.target.SetScale(geom.ClampScale(c.initialScale * ratio))
	}
}

// Up is called when a contact is lifted. remaining holds the contacts still
// down. Losing a pinch contact returns to Idle rather than dragging.
func (c *Controller) Up(remaining []geom.Point) {
	switch c.state {
	case Pinching:
		if len(remaining) < 2 {
			c.reset()
		}
	case Dragging:
		if len(remaining) == 0 {
			c.reset()
		}
	}
}

// Leave ends any gesture, as when the pointer exits the canvas.
func (c *Controller) Leave() { c.reset() }

// Wheel zooms by geom.ZoomStep per notch; positive steps zoom in.
func (c *Controller) Wheel(steps int) {
	if !c.target.CanDrag() || steps == 0 || c.state == Pinching {
		return
	}
	s := c.target.Scale()
	for ; steps > 0; steps-- {
		s *= geom.ZoomStep
	}
	for ; steps < 0; steps++ {
		s /= geom.ZoomStep
	}
	c.target.SetScale(geom.ClampScale(s))
}

func (c *Controller) reset() {
	c.state = Idle
	c.initialDist = 0
	c.initialScale = 0
}
