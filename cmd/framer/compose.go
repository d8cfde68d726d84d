package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"time"

	"github.com/example/framer/internal/editor"
	"github.com/example/framer/internal/render"
)

// fetchTimeout bounds catalog and URL downloads in the CLI.
const fetchTimeout = 30 * time.Second

type composeCmd struct {
	photo      string
	overlay    overlaySpec
	photoT     editor.Transform
	overlayT   editor.Transform
	size       int
	background string
	quality    string
	out        output
	*root
	fs *flag.FlagSet
}

func (c *composeCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseComposeCmd(args []string, r *root) (*composeCmd, error) {
	fs := flag.NewFlagSet("compose", flag.ExitOnError)
	c := &composeCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.photo, "photo", "", "photo to frame: a path, http(s) URL or data: URL")
	fs.StringVar(&c.overlay.template, "template", "", "catalog template name or number (None for no overlay)")
	fs.StringVar(&c.overlay.path, "overlay", "", "overlay image used instead of a catalog template")
	fs.StringVar(&c.overlay.catalog, "catalog", "", "template catalog file or URL (default: built-in templates)")
	fs.StringVar(&c.overlay.mode, "mode", "", "overlay placement: frame, up-left, up-right, down-left or down-right")
	fs.Float64Var(&c.overlay.badgeScale, "badge-scale", 0, "badge side as a fraction of the canvas (corner modes)")
	fs.Float64Var(&c.photoT.Scale, "scale", 1, "photo scale about the canvas centre")
	fs.Float64Var(&c.photoT.X, "x", 0, "photo horizontal offset in canvas pixels")
	fs.Float64Var(&c.photoT.Y, "y", 0, "photo vertical offset in canvas pixels")
	fs.Float64Var(&c.overlayT.Scale, "overlay-scale", 1, "overlay scale about the canvas centre")
	fs.Float64Var(&c.overlayT.X, "overlay-x", 0, "overlay horizontal offset in canvas pixels")
	fs.Float64Var(&c.overlayT.Y, "overlay-y", 0, "overlay vertical offset in canvas pixels")
	fs.IntVar(&c.size, "size", 0, "side of the picture in pixels (default from config or 1024)")
	fs.StringVar(&c.background, "background", "", "background colour behind the photo (default transparent)")
	fs.StringVar(&c.quality, "quality", "high", "resampling quality: high or fast")
	fs.StringVar(&c.out.path, "output", "", "write the picture to this file (default from config or profile-picture.png)")
	fs.BoolVar(&c.out.stdout, "stdout", false, "write PNG data to stdout")
	fs.BoolVar(&c.out.toClipboard, "to-clipboard", false, "copy the picture to the clipboard")
	fs.BoolVar(&c.out.toClipboard, "to-clip", false, "copy the picture to the clipboard (alias)")
	fs.StringVar(&c.out.preview, "preview", "", "also write a 256px thumbnail to this file")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if c.photo == "" && fs.NArg() == 1 {
		c.photo = fs.Arg(0)
	} else if fs.NArg() > 0 {
		return nil, usageErrorf(c, "unexpected arguments: %v", fs.Args())
	}
	if c.photo == "" {
		return nil, usageErrorf(c, "-photo is required")
	}
	for _, v := range []float64{c.photoT.Scale, c.photoT.X, c.photoT.Y, c.overlayT.Scale, c.overlayT.X, c.overlayT.Y} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, usageErrorf(c, "transform values must be finite numbers")
		}
	}
	if c.photoT.Scale <= 0 || c.overlayT.Scale <= 0 {
		return nil, usageErrorf(c, "scales must be greater than zero")
	}
	if c.size < 0 {
		return nil, usageErrorf(c, "-size must be positive")
	}
	if c.out.stdout && c.out.toClipboard {
		return nil, fmt.Errorf("-stdout cannot be used with -to-clipboard")
	}
	if c.overlay.path != "" && c.overlay.template != "" {
		return nil, fmt.Errorf("-overlay cannot be used with -template")
	}
	if c.overlay.mode != "" {
		if _, err := render.ParseMode(c.overlay.mode); err != nil {
			return nil, usageErrorf(c, "%v", err)
		}
	}
	if _, err := parseQuality(c.quality); err != nil {
		return nil, usageErrorf(c, "%v", err)
	}
	return c, nil
}

func parseQuality(s string) (render.Quality, error) {
	switch s {
	case "", "high":
		return render.High, nil
	case "fast":
		return render.Fast, nil
	}
	return render.High, fmt.Errorf("unknown quality %q", s)
}

func (c *composeCmd) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	bg, err := c.root.background(c.background)
	if err != nil {
		return err
	}
	sess := editor.New(editor.WithCanvasSize(c.root.canvasSize(c.size)))
	defer sess.Close()
	if err := c.root.loadPhoto(ctx, sess, c.photo); err != nil {
		return err
	}
	if err := c.root.applyOverlay(ctx, sess, c.overlay); err != nil {
		return err
	}
	sess.SetTransform(editor.LayerPhoto, c.photoT)
	sess.SetTransform(editor.LayerOverlay, c.overlayT)

	q, _ := parseQuality(c.quality)
	opts := render.DefaultOptions()
	opts.Background = bg
	opts.Quality = q
	img, stats := sess.Scene().Compose(opts)
	if stats.OverlayDrawn && !stats.OverlayRect.Image().Overlaps(img.Bounds()) {
		c.root.warnf("overlay %s lies outside the canvas", sess.Template())
	}
	return c.root.writeOutput(img, c.out)
}
