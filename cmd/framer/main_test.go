package main

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/framer/internal/catalog"
	"github.com/example/framer/internal/export"
	"github.com/example/framer/internal/theme"
)

// testRoot returns a root isolated from the user's config and wired to
// in-memory output.
func testRoot(t *testing.T) (*root, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	t.Setenv("FRAMER_THEME", "")
	t.Setenv("FRAMER_CATALOG", "")
	r := newRoot()
	var stdout, stderr bytes.Buffer
	r.stdout = &stdout
	r.stderr = &stderr
	return r, &stdout, &stderr
}

func solid(w, h int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

var errMissing = errors.New("no such image")

// stubSources replaces image and catalog loading with fixtures.
func stubSources(t *testing.T) {
	t.Helper()
	origImage, origCatalog, origClip := loadImageFn, loadCatalogFn, writeClipboardFn
	loadImageFn = func(_ context.Context, src string) (image.Image, error) {
		switch filepath.Base(src) {
		case "photo.png":
			return solid(80, 40, color.RGBA{R: 200, A: 255}), nil
		case "ring.png":
			return solid(10, 10, color.RGBA{G: 255, A: 128}), nil
		}
		return nil, errMissing
	}
	loadCatalogFn = func(_ context.Context, loc string) (*catalog.Catalog, error) {
		return &catalog.Catalog{Location: loc, Templates: []catalog.Template{
			{Name: "Ring", Source: "ring.png", Mode: "frame", BadgeScale: catalog.DefaultBadgeScale},
			{Name: "Broken", Source: "broken.png", Mode: "down-right", BadgeScale: 0.25},
		}}, nil
	}
	writeClipboardFn = func(*export.Exporter, image.Image) error { return nil }
	t.Cleanup(func() {
		loadImageFn, loadCatalogFn, writeClipboardFn = origImage, origCatalog, origClip
	})
}

func decodePNG(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return img
}

func TestComposeWritesCanvas(t *testing.T) {
	stubSources(t)
	r, _, stderr := testRoot(t)
	out := filepath.Join(t.TempDir(), "avatar.png")
	preview := filepath.Join(t.TempDir(), "thumb.png")

	err := r.Run([]string{"compose", "-size", "64", "-template", "Ring", "-output", out, "-preview", preview, "photo.png"})
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	img := decodePNG(t, out)
	if got := img.Bounds().Size(); got != image.Pt(64, 64) {
		t.Fatalf("size = %v, want 64x64", got)
	}
	// Cover fit leaves no transparent pixel in the corners.
	if _, _, _, a := img.At(0, 0).RGBA(); a == 0 {
		t.Fatalf("corner is transparent")
	}
	if got := decodePNG(t, preview).Bounds().Dx(); got > 256 {
		t.Fatalf("preview width = %d", got)
	}
	if !strings.Contains(stderr.String(), "saved "+out) {
		t.Fatalf("stderr = %q", stderr.String())
	}
}

func TestComposeTemplateByNumber(t *testing.T) {
	stubSources(t)
	r, _, stderr := testRoot(t)
	out := filepath.Join(t.TempDir(), "a.png")
	if err := r.Run([]string{"compose", "-size", "32", "-template", "1", "-output", out, "photo.png"}); err != nil {
		t.Fatalf("compose: %v", err)
	}
	if strings.Contains(stderr.String(), "warning") {
		t.Fatalf("unexpected warning: %q", stderr.String())
	}
}

func TestComposeBrokenOverlayWarns(t *testing.T) {
	stubSources(t)
	r, _, stderr := testRoot(t)
	out := filepath.Join(t.TempDir(), "a.png")
	if err := r.Run([]string{"compose", "-size", "32", "-template", "Broken", "-output", out, "photo.png"}); err != nil {
		t.Fatalf("compose: %v", err)
	}
	if !strings.Contains(stderr.String(), "warning:") {
		t.Fatalf("expected a warning, got %q", stderr.String())
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("picture not written: %v", err)
	}
}

func TestComposeUnknownTemplate(t *testing.T) {
	stubSources(t)
	r, _, _ := testRoot(t)
	err := r.Run([]string{"compose", "-template", "Nope", "-output", filepath.Join(t.TempDir(), "a.png"), "photo.png"})
	if err == nil || !strings.Contains(err.Error(), `unknown template "Nope"`) {
		t.Fatalf("err = %v", err)
	}
	if !strings.Contains(err.Error(), "Ring") {
		t.Fatalf("error should list the available templates: %v", err)
	}
}

func TestComposeMissingPhoto(t *testing.T) {
	stubSources(t)
	r, _, _ := testRoot(t)
	err := r.Run([]string{"compose", "-output", filepath.Join(t.TempDir(), "a.png"), "gone.png"})
	if !errors.Is(err, errMissing) {
		t.Fatalf("err = %v, want wrapped errMissing", err)
	}
}

func TestComposeToStdout(t *testing.T) {
	stubSources(t)
	r, stdout, _ := testRoot(t)
	if err := r.Run([]string{"compose", "-size", "16", "-stdout", "photo.png"}); err != nil {
		t.Fatalf("compose: %v", err)
	}
	img, err := png.Decode(stdout)
	if err != nil {
		t.Fatalf("stdout is not PNG: %v", err)
	}
	if img.Bounds().Dx() != 16 {
		t.Fatalf("width = %d", img.Bounds().Dx())
	}
}

func TestParseComposeErrors(t *testing.T) {
	r, _, _ := testRoot(t)
	tests := []struct {
		name  string
		args  []string
		usage bool
		want  string
	}{
		{"no photo", nil, true, "-photo is required"},
		{"zero scale", []string{"-scale", "0", "p.png"}, true, "greater than zero"},
		{"bad mode", []string{"-mode", "sideways", "p.png"}, true, "sideways"},
		{"bad quality", []string{"-quality", "ultra", "p.png"}, true, "ultra"},
		{"stdout and clipboard", []string{"-stdout", "-to-clip", "p.png"}, false, "-stdout cannot be used"},
		{"overlay and template", []string{"-overlay", "o.png", "-template", "Ring", "p.png"}, false, "-overlay cannot be used"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseComposeCmd(tt.args, r)
			if err == nil {
				t.Fatalf("expected error")
			}
			var uerr *UsageError
			if got := errors.As(err, &uerr); got != tt.usage {
				t.Fatalf("usage error = %v, want %v (%v)", got, tt.usage, err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestUnknownCommandShowsHelp(t *testing.T) {
	r, _, _ := testRoot(t)
	err := r.Run([]string{"frobnicate"})
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("err = %v, want UsageError", err)
	}
	if !strings.Contains(err.Error(), "Usage: framer") {
		t.Fatalf("help not rendered: %q", err)
	}
}

func TestVersionHelpRenders(t *testing.T) {
	r, _, _ := testRoot(t)
	help, err := (&UsageError{of: &versionCmd{r: r}}).renderHelp()
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(help, "framer version") {
		t.Fatalf("help = %q", help)
	}
}

func TestReplayPinch(t *testing.T) {
	stubSources(t)
	r, _, stderr := testRoot(t)
	dir := t.TempDir()
	script := `{
		"photo": "photo.png",
		"size": 100,
		"events": [
			{"type": "down", "points": [[0, 50]]},
			{"type": "down", "points": [[0, 50], [100, 50]]},
			{"type": "move", "points": [[0, 50], [150, 50]]},
			{"type": "up", "points": [[0, 50]]},
			{"type": "move", "points": [[40, 40]]}
		]
	}`
	path := filepath.Join(dir, "pinch.json")
	if err := os.WriteFile(path, []byte(script), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "out.png")
	if err := r.Run([]string{"replay", "-output", out, path}); err != nil {
		t.Fatalf("replay: %v", err)
	}
	log := stderr.String()
	if !strings.Contains(log, "scale=1.500 x=0.0 y=0.0") {
		t.Fatalf("photo transform not as expected:\n%s", log)
	}
	if got := decodePNG(t, out).Bounds().Dx(); got != 100 {
		t.Fatalf("width = %d", got)
	}
}

func TestReplayDragDisplayMapping(t *testing.T) {
	stubSources(t)
	r, _, stderr := testRoot(t)
	dir := t.TempDir()
	// A 50px display over a 100px canvas doubles every movement.
	script := `{"photo": "photo.png", "size": 100, "display": [50, 50], "events": [
		{"type": "down", "points": [[10, 10]]},
		{"type": "move", "points": [[15, 12]]},
		{"type": "up"}
	]}`
	path := filepath.Join(dir, "drag.json")
	if err := os.WriteFile(path, []byte(script), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := r.Run([]string{"replay", "-output", filepath.Join(dir, "o.png"), path}); err != nil {
		t.Fatalf("replay: %v", err)
	}
	if !strings.Contains(stderr.String(), "x=10.0 y=4.0") {
		t.Fatalf("unexpected transform:\n%s", stderr.String())
	}
}

func TestReplayUnknownEvent(t *testing.T) {
	stubSources(t)
	r, _, _ := testRoot(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(path, []byte(`{"photo": "photo.png", "events": [{"type": "twist"}]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	err := r.Run([]string{"replay", "-output", filepath.Join(dir, "o.png"), path})
	if err == nil || !strings.Contains(err.Error(), "event 0") {
		t.Fatalf("err = %v", err)
	}
}

func TestParseScriptRejectsUnknownFields(t *testing.T) {
	if _, err := parseScript(strings.NewReader(`{"photo": "a.png", "colour": "red"}`)); err == nil {
		t.Fatalf("expected error for unknown field")
	}
	if _, err := parseScript(strings.NewReader(`{"events": []}`)); err == nil {
		t.Fatalf("expected error for missing photo")
	}
}

func TestScriptResolve(t *testing.T) {
	s := &script{Photo: "me.jpg", Overlay: "https://example.com/o.png", Catalog: "/abs/c.json"}
	s.resolve("/scripts")
	if s.Photo != filepath.Join("/scripts", "me.jpg") {
		t.Fatalf("photo = %q", s.Photo)
	}
	if s.Overlay != "https://example.com/o.png" || s.Catalog != "/abs/c.json" {
		t.Fatalf("resolve changed absolute sources: %+v", s)
	}
}

func TestTemplatesList(t *testing.T) {
	stubSources(t)
	r, stdout, _ := testRoot(t)
	if err := r.Run([]string{"templates"}); err != nil {
		t.Fatalf("templates: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines:\n%s", len(lines), stdout.String())
	}
	if f := strings.Fields(lines[1]); f[0] != "0" || f[1] != catalog.NoneName {
		t.Fatalf("first entry = %q", lines[1])
	}
	if f := strings.Fields(lines[2]); f[0] != "1" || f[1] != "Ring" {
		t.Fatalf("second entry = %q", lines[2])
	}
	if !strings.Contains(lines[3], "down-right (0.25)") {
		t.Fatalf("badge entry = %q", lines[3])
	}
}

func TestTemplatesModes(t *testing.T) {
	r, stdout, _ := testRoot(t)
	if err := r.Run([]string{"templates", "-modes"}); err != nil {
		t.Fatalf("templates: %v", err)
	}
	if !strings.HasPrefix(stdout.String(), "frame\n") {
		t.Fatalf("modes = %q", stdout.String())
	}
}

func TestThemePreference(t *testing.T) {
	r, stdout, stderr := testRoot(t)
	prefs := filepath.Join(t.TempDir(), "prefs")
	if err := r.Run([]string{"theme", "-prefs", prefs, "dark"}); err != nil {
		t.Fatalf("set: %v", err)
	}
	if !strings.Contains(stderr.String(), "theme preference set to dark") {
		t.Fatalf("stderr = %q", stderr.String())
	}
	m, err := theme.ReadPreference(prefs)
	if err != nil || m != theme.ModeDark {
		t.Fatalf("stored mode = %v, %v", m, err)
	}

	r, stdout, _ = testRoot(t)
	if err := r.Run([]string{"theme", "-prefs", prefs}); err != nil {
		t.Fatalf("get: %v", err)
	}
	if got := strings.TrimSpace(stdout.String()); got != "dark" {
		t.Fatalf("mode = %q", got)
	}
}

func TestThemeRejectsUnknownMode(t *testing.T) {
	r, _, _ := testRoot(t)
	var uerr *UsageError
	if _, err := parseThemeCmd([]string{"sepia"}, r); !errors.As(err, &uerr) {
		t.Fatalf("err = %v, want UsageError", err)
	}
}

func TestConfigPrint(t *testing.T) {
	r, stdout, _ := testRoot(t)
	r.config.CanvasSize = 512
	r.config.Background = "#ffffff"
	if err := r.Run([]string{"config", "print"}); err != nil {
		t.Fatalf("config print: %v", err)
	}
	for _, want := range []string{"canvas_size = 512", "background = #ffffff", "[notify]"} {
		if !strings.Contains(stdout.String(), want) {
			t.Fatalf("missing %q in:\n%s", want, stdout.String())
		}
	}
}

func TestConfigSave(t *testing.T) {
	r, _, stderr := testRoot(t)
	r.config.ExportName = "me.png"
	path := filepath.Join(t.TempDir(), "framer.rc")
	if err := r.Run([]string{"config", "-output", path, "save"}); err != nil {
		t.Fatalf("config save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "export_name = me.png") {
		t.Fatalf("saved config:\n%s", data)
	}
	if !strings.Contains(stderr.String(), path) {
		t.Fatalf("stderr = %q", stderr.String())
	}
}

func TestCanvasSizePrecedence(t *testing.T) {
	r, _, _ := testRoot(t)
	if got := r.canvasSize(0); got != 1024 {
		t.Fatalf("default = %d", got)
	}
	r.config.CanvasSize = 300
	if got := r.canvasSize(0); got != 300 {
		t.Fatalf("config = %d", got)
	}
	if got := r.canvasSize(50); got != 50 {
		t.Fatalf("flag = %d", got)
	}
}

func TestInteractiveSession(t *testing.T) {
	stubSources(t)
	r, stdout, _ := testRoot(t)
	cmd, err := parseInteractiveCmd([]string{"-size", "64"}, r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	out := filepath.Join(t.TempDir(), "i.png")
	for _, line := range []string{
		"load photo.png",
		"template Ring",
		"zoom 5",
		"layer overlay",
		"pan 3 -4",
		"state",
		"save " + out,
	} {
		if done, err := cmd.executeLine(line); err != nil || done {
			t.Fatalf("%q: done=%v err=%v", line, done, err)
		}
	}
	state := stdout.String()
	if !strings.Contains(state, "  photo   scale=2.000") {
		t.Fatalf("zoom should clamp to 2:\n%s", state)
	}
	if !strings.Contains(state, "* overlay scale=1.000 x=3.0 y=-4.0") {
		t.Fatalf("overlay transform:\n%s", state)
	}
	if !strings.Contains(state, "overlay Ring") {
		t.Fatalf("template not reported:\n%s", state)
	}
	if got := decodePNG(t, out).Bounds().Dx(); got != 64 {
		t.Fatalf("width = %d", got)
	}
	if done, _ := cmd.executeLine("exit"); !done {
		t.Fatalf("exit should end the loop")
	}
}

func TestInteractiveErrors(t *testing.T) {
	stubSources(t)
	r, _, _ := testRoot(t)
	cmd, err := parseInteractiveCmd(nil, r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, err := cmd.executeLine("save"); err == nil || !strings.Contains(err.Error(), "no photo") {
		t.Fatalf("save without photo: %v", err)
	}
	if _, err := cmd.executeLine("pan 1"); err == nil {
		t.Fatalf("pan with one number should fail")
	}
	var uerr *UsageError
	if _, err := cmd.executeLine("bogus"); !errors.As(err, &uerr) {
		t.Fatalf("unknown command: %v", err)
	}
}

func TestInteractiveExecFlags(t *testing.T) {
	stubSources(t)
	r, stdout, _ := testRoot(t)
	err := r.Run([]string{"interactive", "-size", "32", "-e", "load photo.png", "-e", "scale 0.1", "-e", "state"})
	if err != nil {
		t.Fatalf("interactive: %v", err)
	}
	if !strings.Contains(stdout.String(), "scale=0.500") {
		t.Fatalf("scale should clamp to 0.5:\n%s", stdout.String())
	}
}

func TestInteractiveRejectsNonFinite(t *testing.T) {
	stubSources(t)
	r, stdout, _ := testRoot(t)
	cmd, err := parseInteractiveCmd([]string{"-size", "32"}, r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, err := cmd.executeLine("load photo.png"); err != nil {
		t.Fatal(err)
	}
	for _, line := range []string{"scale NaN", "zoom NaN", "zoom +Inf", "pan NaN 0"} {
		if _, err := cmd.executeLine(line); err == nil {
			t.Fatalf("%q should be rejected", line)
		}
	}
	if _, err := cmd.executeLine("state"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout.String(), "* photo   scale=1.000 x=0.0 y=0.0") {
		t.Fatalf("transform changed:\n%s", stdout.String())
	}
}

func TestInteractiveVerbsIgnoreCase(t *testing.T) {
	stubSources(t)
	r, _, _ := testRoot(t)
	cmd, err := parseInteractiveCmd([]string{"-size", "64"}, r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	dir := t.TempDir()
	out := filepath.Join(dir, "upper.png")
	thumb := filepath.Join(dir, "thumb.png")
	for _, line := range []string{"LOAD photo.png", "SAVE " + out, "Preview " + thumb} {
		if _, err := cmd.executeLine(line); err != nil {
			t.Fatalf("%q: %v", line, err)
		}
	}
	if got := decodePNG(t, out).Bounds().Dx(); got != 64 {
		t.Fatalf("saved width = %d", got)
	}
	if _, err := os.Stat(thumb); err != nil {
		t.Fatalf("preview not written: %v", err)
	}
}

func TestParseComposeRejectsNonFinite(t *testing.T) {
	r, _, _ := testRoot(t)
	for _, args := range [][]string{
		{"-scale", "NaN", "p.png"},
		{"-overlay-scale", "NaN", "p.png"},
		{"-x", "Inf", "p.png"},
	} {
		_, err := parseComposeCmd(args, r)
		var uerr *UsageError
		if !errors.As(err, &uerr) || !strings.Contains(err.Error(), "finite") {
			t.Fatalf("%v: err = %v", args, err)
		}
	}
}
