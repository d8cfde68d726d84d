package editor

import (
	"fmt"
	"strings"

	"github.com/example/framer/internal/geom"
)

// Transform is re-exported so callers of the session do not need geom.
type Transform = geom.Transform

// Layer identifies one of the two composited elements.
type Layer int

const (
	LayerPhoto Layer = iota
	LayerOverlay
)

func (l Layer) String() string {
	switch l {
	case LayerPhoto:
		return "photo"
	case LayerOverlay:
		return "overlay"
	default:
		return fmt.Sprintf("layer(%d)", int(l))
	}
}

// ParseLayer accepts "photo" or "overlay".
func ParseLayer(s string) (Layer, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "photo", "":
		return LayerPhoto, nil
	case "overlay":
		return LayerOverlay, nil
	}
	return LayerPhoto, fmt.Errorf("unknown layer %q", s)
}

// State holds one Transform per layer. It performs no validation; the
// session decides when a mutation needs a re-render.
type State struct {
	layers [2]Transform
}

// NewState returns a State with both layers at identity.
func NewState() *State {
	return &State{layers: [2]Transform{geom.Identity(), geom.Identity()}}
}

func (s *State) idx(l Layer) int {
	if l == LayerOverlay {
		return 1
	}
	return 0
}

// Get returns a copy of the layer's transform.
func (s *State) Get(l Layer) Transform { return s.layers[s.idx(l)] }

// Set replaces the layer's transform.
func (s *State) Set(l Layer, t Transform) { s.layers[s.idx(l)] = t }

// ApplyDelta pans the layer by (dx, dy).
func (s *State) ApplyDelta(l Layer, dx, dy float64) {
	t := &s.layers[s.idx(l)]
	t.X += dx
	t.Y += dy
}

// SetScale overwrites the layer's scale.
func (s *State) SetScale(l Layer, v float64) { s.layers[s.idx(l)].Scale = v }

// Reset returns the layer to identity.
func (s *State) Reset(l Layer) { s.layers[s.idx(l)] = geom.Identity() }
