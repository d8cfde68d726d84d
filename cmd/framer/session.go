package main

import (
	"context"
	"fmt"
	"image"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/example/framer/internal/catalog"
	"github.com/example/framer/internal/editor"
	"github.com/example/framer/internal/export"
	"github.com/example/framer/internal/imageio"
	"github.com/example/framer/internal/render"
)

// Swapped out by tests.
var (
	loadImageFn      = imageio.Load
	loadCatalogFn    = catalog.Load
	writeClipboardFn = func(e *export.Exporter, img image.Image) error { return e.Copy(img) }
)

// overlaySpec names the overlay to install: a catalog template by name or
// 1-based index, or an image file used directly.
type overlaySpec struct {
	template   string
	path       string
	mode       string
	badgeScale float64
	catalog    string
}

func (o overlaySpec) none() bool {
	return o.path == "" && (o.template == "" || strings.EqualFold(o.template, catalog.NoneName) || o.template == "0")
}

// lookupTemplate resolves spec to a template. The catalog is only read when
// a template name is given.
func (r *root) lookupTemplate(ctx context.Context, spec overlaySpec) (catalog.Template, error) {
	var tpl catalog.Template
	if spec.path != "" {
		tpl = catalog.Template{
			Name:       strings.TrimSuffix(filepath.Base(spec.path), filepath.Ext(spec.path)),
			Source:     spec.path,
			Mode:       render.Frame.String(),
			BadgeScale: catalog.DefaultBadgeScale,
		}
	} else {
		loc := spec.catalog
		if loc == "" {
			loc = r.cfg().Catalog
		}
		cat, err := loadCatalogFn(ctx, loc)
		if err != nil {
			r.warnf("%v", err)
			cat = &catalog.Catalog{Location: loc}
		}
		var ok bool
		if tpl, ok = findTemplate(cat, spec.template); !ok {
			return tpl, fmt.Errorf("unknown template %q (available: %s)", spec.template, strings.Join(cat.Names(), ", "))
		}
	}
	if spec.mode != "" {
		tpl.Mode = spec.mode
	}
	if spec.badgeScale > 0 {
		tpl.BadgeScale = spec.badgeScale
	}
	return tpl, nil
}

// findTemplate accepts a name or a 1-based position.
func findTemplate(cat *catalog.Catalog, key string) (catalog.Template, bool) {
	if tpl, ok := cat.Find(key); ok {
		return tpl, true
	}
	if i, err := strconv.Atoi(strings.TrimSpace(key)); err == nil {
		return cat.At(i)
	}
	return catalog.Template{}, false
}

// applyOverlay loads and installs spec on sess. A template that cannot be
// decoded is reported once as a warning and leaves the session without an
// overlay.
func (r *root) applyOverlay(ctx context.Context, sess *editor.Session, spec overlaySpec) error {
	if spec.none() {
		sess.ClearOverlay()
		return nil
	}
	tpl, err := r.lookupTemplate(ctx, spec)
	if err != nil {
		return err
	}
	t := sess.RequestOverlay(tpl)
	img, loadErr := loadImageFn(ctx, tpl.Source)
	if _, err := sess.ResolveOverlay(t, tpl, img, loadErr); err != nil {
		r.warnf("%v", err)
	}
	return nil
}

// loadPhoto decodes src into sess.
func (r *root) loadPhoto(ctx context.Context, sess *editor.Session, src string) error {
	img, err := loadImageFn(ctx, src)
	if err != nil {
		return fmt.Errorf("load photo %s: %w", src, err)
	}
	return sess.LoadPhoto(img, src)
}

// output writes the composed picture to the chosen destination and reports
// where it went on stderr.
type output struct {
	path        string
	stdout      bool
	toClipboard bool
	preview     string
}

func (r *root) writeOutput(img *image.RGBA, o output) error {
	if o.preview != "" {
		pv := render.Preview(img, render.PreviewSize)
		path, err := export.Save(pv, filepath.Dir(o.preview), filepath.Base(o.preview))
		if err != nil {
			return fmt.Errorf("write preview: %w", err)
		}
		fmt.Fprintf(r.errOut(), "saved preview %s\n", path)
	}
	if o.toClipboard {
		e := r.exporter(o.path)
		if err := writeClipboardFn(e, img); err != nil {
			return err
		}
		fmt.Fprintln(r.errOut(), "copied picture to clipboard")
		return nil
	}
	if o.stdout {
		if err := export.Encode(r.out(), img); err != nil {
			return fmt.Errorf("write PNG to stdout: %w", err)
		}
		fmt.Fprintln(r.errOut(), "wrote PNG data to stdout")
		return nil
	}
	saved, err := r.exporter(o.path).Save(img)
	if err != nil {
		return err
	}
	if abs, err := filepath.Abs(saved); err == nil {
		saved = abs
	}
	fmt.Fprintf(r.errOut(), "saved %s\n", saved)
	return nil
}

// describe prints the session's layer transforms.
func describe(w io.Writer, sess *editor.Session) {
	for _, l := range []editor.Layer{editor.LayerPhoto, editor.LayerOverlay} {
		t := sess.Transform(l)
		marker := " "
		if sess.Active() == l {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %-7s scale=%.3f x=%.1f y=%.1f\n", marker, l, t.Scale, t.X, t.Y)
	}
	fmt.Fprintf(w, "  overlay %s\n", sess.Template())
}
