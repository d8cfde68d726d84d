package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/framer/internal/editor"
	"github.com/example/framer/internal/geom"
	"github.com/example/framer/internal/gesture"
	"github.com/example/framer/internal/imageio"
	"github.com/example/framer/internal/render"
)

// script is a recorded editing session.
type script struct {
	Photo    string        `json:"photo"`
	Template string        `json:"template,omitempty"`
	Overlay  string        `json:"overlay,omitempty"`
	Mode     string        `json:"mode,omitempty"`
	Catalog  string        `json:"catalog,omitempty"`
	Size     int           `json:"size,omitempty"`
	Display  [2]int        `json:"display,omitempty"`
	Events   []scriptEvent `json:"events"`
}

// scriptEvent is one input sample. Points are display coordinates of every
// live contact.
type scriptEvent struct {
	Type     string       `json:"type"`
	Points   [][2]float64 `json:"points,omitempty"`
	Layer    string       `json:"layer,omitempty"`
	Steps    int          `json:"steps,omitempty"`
	Template string       `json:"template,omitempty"`
}

func parseScript(r io.Reader) (*script, error) {
	var s script
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if s.Photo == "" {
		return nil, fmt.Errorf("parse script: photo is required")
	}
	return &s, nil
}

// resolve makes relative paths in s relative to dir.
func (s *script) resolve(dir string) {
	rel := func(p string) string {
		if p == "" || filepath.IsAbs(p) || imageio.IsRemote(p) || strings.Contains(p, ":") {
			return p
		}
		return filepath.Join(dir, p)
	}
	s.Photo = rel(s.Photo)
	s.Overlay = rel(s.Overlay)
	s.Catalog = rel(s.Catalog)
}

type replayCmd struct {
	input      string
	background string
	verbose    bool
	out        output
	*root
	fs *flag.FlagSet
}

func (c *replayCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseReplayCmd(args []string, r *root) (*replayCmd, error) {
	fs := flag.NewFlagSet("replay", flag.ExitOnError)
	c := &replayCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.input, "input", "", "gesture script to replay (- for stdin)")
	fs.StringVar(&c.background, "background", "", "background colour behind the photo (default transparent)")
	fs.BoolVar(&c.verbose, "v", false, "print the gesture state after every event")
	fs.StringVar(&c.out.path, "output", "", "write the picture to this file (default from config or profile-picture.png)")
	fs.BoolVar(&c.out.stdout, "stdout", false, "write PNG data to stdout")
	fs.BoolVar(&c.out.toClipboard, "to-clipboard", false, "copy the picture to the clipboard")
	fs.StringVar(&c.out.preview, "preview", "", "also write a 256px thumbnail to this file")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if c.input == "" && fs.NArg() == 1 {
		c.input = fs.Arg(0)
	} else if fs.NArg() > 0 {
		return nil, usageErrorf(c, "unexpected arguments: %v", fs.Args())
	}
	if c.input == "" {
		return nil, usageErrorf(c, "-input is required")
	}
	if c.out.stdout && c.out.toClipboard {
		return nil, fmt.Errorf("-stdout cannot be used with -to-clipboard")
	}
	return c, nil
}

func (c *replayCmd) load() (*script, error) {
	if c.input == "-" {
		return parseScript(os.Stdin)
	}
	f, err := os.Open(c.input)
	if err != nil {
		return nil, fmt.Errorf("open script: %w", err)
	}
	defer f.Close()
	s, err := parseScript(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.input, err)
	}
	s.resolve(filepath.Dir(c.input))
	return s, nil
}

func (c *replayCmd) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	s, err := c.load()
	if err != nil {
		return err
	}
	bg, err := c.root.background(c.background)
	if err != nil {
		return err
	}
	sess := editor.New(editor.WithCanvasSize(c.root.canvasSize(s.Size)))
	defer sess.Close()
	if err := c.root.loadPhoto(ctx, sess, s.Photo); err != nil {
		return err
	}
	spec := overlaySpec{template: s.Template, path: s.Overlay, mode: s.Mode, catalog: s.Catalog}
	if err := c.root.applyOverlay(ctx, sess, spec); err != nil {
		return err
	}

	p := &player{
		root:    c.root,
		ctx:     ctx,
		sess:    sess,
		ctrl:    gesture.New(sess),
		mapper:  scriptMapper(sess.Canvas(), s.Display),
		catalog: s.Catalog,
	}
	for i, ev := range s.Events {
		if err := p.play(ev); err != nil {
			return fmt.Errorf("event %d: %w", i, err)
		}
		if c.verbose {
			fmt.Fprintf(c.root.errOut(), "%3d %-6s %s\n", i, ev.Type, p.ctrl.State())
		}
	}
	describe(c.root.errOut(), sess)

	opts := render.DefaultOptions()
	opts.Background = bg
	img, _ := sess.Scene().Compose(opts)
	return c.root.writeOutput(img, c.out)
}

// scriptMapper maps a display of the given size onto the canvas. A zero
// display means events are already in canvas pixels.
func scriptMapper(canvas image.Point, display [2]int) geom.Mapper {
	d := image.Rectangle{Max: canvas}
	if display[0] > 0 && display[1] > 0 {
		d = image.Rect(0, 0, display[0], display[1])
	}
	return geom.Mapper{Surface: canvas, Display: d}
}

// player feeds script events to a gesture controller.
type player struct {
	root    *root
	ctx     context.Context
	sess    *editor.Session
	ctrl    *gesture.Controller
	mapper  geom.Mapper
	catalog string
}

func (p *player) points(ev scriptEvent) []geom.Point {
	out := make([]geom.Point, 0, len(ev.Points))
	for _, xy := range ev.Points {
		out = append(out, p.mapper.ToSurface(xy[0], xy[1]))
	}
	return out
}

func (p *player) play(ev scriptEvent) error {
	switch strings.ToLower(ev.Type) {
	case "down":
		if len(ev.Points) == 0 {
			return fmt.Errorf("down needs at least one point")
		}
		p.ctrl.Down(p.points(ev))
	case "move":
		p.ctrl.Move(p.points(ev))
	case "up":
		p.ctrl.Up(p.points(ev))
	case "leave":
		p.ctrl.Leave()
	case "wheel":
		p.ctrl.Wheel(ev.Steps)
	case "layer":
		l, err := editor.ParseLayer(ev.Layer)
		if err != nil {
			return err
		}
		p.sess.SetActive(l)
	case "reset":
		p.sess.Reset(p.sess.Active())
	case "template":
		return p.root.applyOverlay(p.ctx, p.sess, overlaySpec{template: ev.Template, catalog: p.catalog})
	default:
		return fmt.Errorf("unknown event type %q", ev.Type)
	}
	return nil
}
