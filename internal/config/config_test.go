package config

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	input := `
theme = my_custom_theme
save_dir = /tmp/pictures
catalog = https://example.com/overlays/catalog.json
canvas_size = 512
export_name = SlackProfile.png
background = "white"

[notify]
save = true
copy = false

[theme.my_custom_theme]
Background = #111111
Foreground = #FFFFFF
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.Theme != "my_custom_theme" {
		t.Errorf("Expected theme 'my_custom_theme', got '%s'", cfg.Theme)
	}
	if cfg.SaveDir != "/tmp/pictures" {
		t.Errorf("save_dir = %q", cfg.SaveDir)
	}
	if cfg.Catalog != "https://example.com/overlays/catalog.json" {
		t.Errorf("catalog = %q", cfg.Catalog)
	}
	if cfg.CanvasSize != 512 || cfg.ExportName != "SlackProfile.png" {
		t.Errorf("canvas_size=%d export_name=%q", cfg.CanvasSize, cfg.ExportName)
	}
	if !cfg.Notify.Save || cfg.Notify.Copy {
		t.Errorf("notify = %+v", cfg.Notify)
	}
	bg, err := cfg.BackgroundColor()
	if err != nil || bg != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("background = %v, %v", bg, err)
	}
	th, ok := cfg.Themes["my_custom_theme"]
	if !ok {
		t.Fatal("Expected theme 'my_custom_theme' to be loaded")
	}
	if th.Background != (color.RGBA{0x11, 0x11, 0x11, 255}) {
		t.Errorf("Unexpected Background color: %+v", th.Background)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []string{
		"canvas_size = big",
		"canvas_size = -4",
		"[notify]\nsave = sometimes",
		"[theme.x]\nAccent = #GG",
	}
	for _, in := range cases {
		if _, err := Parse(strings.NewReader(in)); err == nil {
			t.Errorf("Parse(%q) should fail", in)
		}
	}
}

func TestCircular(t *testing.T) {
	input := `theme = dark
save_dir = /home/user/pictures
canvas_size = 2048
background = #00000080

[notify]
save = true
copy = false

[theme.custom]
Name = custom
Background = #000000
Accent = #FF0000
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Initial parse failed: %v", err)
	}
	cfg2, err := Parse(strings.NewReader(cfg.String()))
	if err != nil {
		t.Fatalf("Circular parse failed: %v", err)
	}
	if cfg.Theme != cfg2.Theme || cfg.SaveDir != cfg2.SaveDir || cfg.CanvasSize != cfg2.CanvasSize || cfg.Background != cfg2.Background {
		t.Errorf("root mismatch:\n%+v\n%+v", cfg, cfg2)
	}
	if cfg.Notify != cfg2.Notify {
		t.Errorf("Notify mismatch: %+v vs %+v", cfg.Notify, cfg2.Notify)
	}
	t1, t2 := cfg.Themes["custom"], cfg2.Themes["custom"]
	if t1 == nil || t2 == nil {
		t.Fatalf("Custom theme missing in one config")
	}
	if *t1 != *t2 {
		t.Errorf("theme mismatch: %+v vs %+v", t1, t2)
	}
}

func TestBackgroundTransparent(t *testing.T) {
	for _, v := range []string{"", "transparent", "Transparent"} {
		c := &Config{Background: v}
		bg, err := c.BackgroundColor()
		if err != nil || bg != nil {
			t.Errorf("Background %q = %v, %v", v, bg, err)
		}
	}
	if _, err := (&Config{Background: "chartreuse-ish"}).BackgroundColor(); err == nil {
		t.Error("expected error for unknown colour")
	}
}

func TestLoaderOrderAndEnv(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	t.Setenv("FRAMER_THEME", "")
	t.Setenv("FRAMER_CATALOG", "")

	l := NewLoader("v1.0.0", "")
	if p := l.GetConfigPath(); p != "" {
		t.Fatalf("unexpected config path %q", p)
	}
	cfg, err := l.Load()
	if err != nil || cfg.Theme != "" {
		t.Fatalf("defaults = %+v, %v", cfg, err)
	}

	user := &Config{Theme: "dark", Themes: nil}
	if err := Save(user, DefaultPath()); err != nil {
		t.Fatal(err)
	}
	if DefaultPath() != filepath.Join(xdg, "framer", "config.rc") {
		t.Fatalf("DefaultPath = %q", DefaultPath())
	}
	override := filepath.Join(t.TempDir(), "override.rc")
	if err := os.WriteFile(override, []byte("theme = light\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err = NewLoader("v1.0.0", override).Load()
	if err != nil || cfg.Theme != "light" {
		t.Fatalf("override = %+v, %v", cfg, err)
	}
	cfg, err = NewLoader("v1.0.0", filepath.Join(xdg, "missing.rc")).Load()
	if err != nil || cfg.Theme != "dark" {
		t.Fatalf("user config = %+v, %v", cfg, err)
	}

	t.Setenv("FRAMER_THEME", "contrast")
	t.Setenv("FRAMER_CATALOG", "/srv/catalog.json")
	cfg, err = l.Load()
	if err != nil || cfg.Theme != "contrast" || cfg.Catalog != "/srv/catalog.json" {
		t.Fatalf("env overrides = %+v, %v", cfg, err)
	}
}
