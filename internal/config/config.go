package config

import (
	"fmt"
	"image/color"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/example/framer/internal/theme"
)

// Notify holds notification settings.
type Notify struct {
	Save bool
	Copy bool
}

// Config holds the application configuration.
type Config struct {
	Theme      string
	SaveDir    string
	Catalog    string
	CanvasSize int
	ExportName string
	// Background is a colour name or hex value painted behind the photo.
	// Empty keeps the export transparent.
	Background string
	Notify     Notify
	Themes     map[string]*theme.Theme
}

// New creates a Config with defaults. Zero values mean "not configured" so
// environment and flags can still fill them in.
func New() *Config {
	return &Config{Themes: make(map[string]*theme.Theme)}
}

// ApplyEnv overlays FRAMER_THEME and FRAMER_CATALOG.
func (c *Config) ApplyEnv() {
	if v := strings.TrimSpace(os.Getenv("FRAMER_THEME")); v != "" {
		c.Theme = v
	}
	if v := strings.TrimSpace(os.Getenv("FRAMER_CATALOG")); v != "" {
		c.Catalog = v
	}
}

// BackgroundColor parses Background. Nil means transparent.
func (c *Config) BackgroundColor() (color.Color, error) {
	if strings.TrimSpace(c.Background) == "" || strings.EqualFold(c.Background, "transparent") {
		return nil, nil
	}
	col, err := theme.ParseColor(c.Background)
	if err != nil {
		return nil, fmt.Errorf("background: %w", err)
	}
	return col, nil
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	root := []struct{ key, val string }{
		{"theme", c.Theme},
		{"save_dir", c.SaveDir},
		{"catalog", c.Catalog},
		{"export_name", c.ExportName},
		{"background", c.Background},
	}
	if c.CanvasSize > 0 {
		root = append(root, struct{ key, val string }{"canvas_size", strconv.Itoa(c.CanvasSize)})
	}
	for _, kv := range root {
		if kv.val != "" {
			fmt.Fprintf(&sb, "%s = %s\n", kv.key, kv.val)
		}
	}
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	names := make([]string, 0, len(c.Themes))
	for name := range c.Themes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		t := c.Themes[name]
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		fmt.Fprintf(&sb, "Name: %s\n", t.Name)
		for _, f := range theme.Fields(t) {
			fmt.Fprintf(&sb, "%s: %s\n", f.Name, theme.Hex(f.Color))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
