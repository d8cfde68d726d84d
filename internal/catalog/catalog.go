// Package catalog loads the list of overlay templates.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/example/framer/assets"
)

// DefaultBadgeScale is the badge side as a fraction of the canvas.
const DefaultBadgeScale = 0.25

// NoneName is the pseudo template that removes the overlay.
const NoneName = "None"

// Builtin is the location of the catalog embedded in the binary.
const Builtin = assets.Scheme + "catalog.json"

// Template is one selectable overlay.
type Template struct {
	Name       string  `json:"name"`
	Source     string  `json:"source"`
	Mode       string  `json:"mode,omitempty"`
	BadgeScale float64 `json:"badgeScale,omitempty"`
}

// Badge reports whether the template is a corner badge.
func (t Template) Badge() bool {
	m := strings.ToLower(t.Mode)
	return m != "" && m != "frame"
}

// Catalog is an ordered, immutable list of templates.
type Catalog struct {
	Location  string
	Templates []Template
}

type document struct {
	Overlays []Template `json:"overlays"`
}

// HTTPClient fetches remote catalogs. Tests replace it.
var HTTPClient = &http.Client{Timeout: 15 * time.Second}

// Parse decodes catalog JSON and resolves relative sources against base.
// Entries without a name or source are skipped.
func Parse(data []byte, base string) ([]Template, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	out := make([]Template, 0, len(doc.Overlays))
	for _, t := range doc.Overlays {
		t.Name = strings.TrimSpace(t.Name)
		t.Source = strings.TrimSpace(t.Source)
		if t.Name == "" || t.Source == "" || strings.EqualFold(t.Name, NoneName) {
			continue
		}
		if t.Mode == "" {
			t.Mode = "frame"
		}
		if t.BadgeScale <= 0 {
			t.BadgeScale = DefaultBadgeScale
		}
		t.Source = Resolve(base, t.Source)
		out = append(out, t)
	}
	return out, nil
}

// Resolve returns src relative to the catalog location base. Absolute paths,
// URLs and data URLs are returned unchanged.
func Resolve(base, src string) string {
	if src == "" || strings.HasPrefix(src, "data:") || assets.IsBuiltin(src) || filepath.IsAbs(src) {
		return src
	}
	if u, err := url.Parse(src); err == nil && u.Scheme != "" && len(u.Scheme) > 1 {
		return src
	}
	switch {
	case base == "":
		return src
	case assets.IsBuiltin(base):
		dir := strings.TrimPrefix(base, assets.Scheme)
		if i := strings.LastIndex(dir, "/"); i >= 0 {
			return assets.Scheme + dir[:i+1] + src
		}
		return assets.Scheme + src
	case isRemote(base):
		b, err := url.Parse(base)
		if err != nil {
			return src
		}
		ref, err := url.Parse(src)
		if err != nil {
			return src
		}
		return b.ResolveReference(ref).String()
	default:
		return filepath.Join(filepath.Dir(base), src)
	}
}

func isRemote(s string) bool {
	l := strings.ToLower(s)
	return strings.HasPrefix(l, "http://") || strings.HasPrefix(l, "https://")
}

// Load reads the catalog at loc. An empty loc selects the built-in catalog.
func Load(ctx context.Context, loc string) (*Catalog, error) {
	if loc == "" {
		loc = Builtin
	}
	data, err := read(ctx, loc)
	if err != nil {
		return nil, err
	}
	templates, err := Parse(data, loc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", loc, err)
	}
	return &Catalog{Location: loc, Templates: templates}, nil
}

// LoadOrEmpty is Load that logs failures and returns an empty catalog, so the
// "None" entry is always available.
func LoadOrEmpty(ctx context.Context, loc string) *Catalog {
	c, err := Load(ctx, loc)
	if err != nil {
		log.Printf("catalog: %v", err)
		return &Catalog{Location: loc}
	}
	return c
}

func read(ctx context.Context, loc string) ([]byte, error) {
	switch {
	case assets.IsBuiltin(loc):
		return assets.Read(loc)
	case isRemote(loc):
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, loc, nil)
		if err != nil {
			return nil, fmt.Errorf("catalog request: %w", err)
		}
		resp, err := HTTPClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("fetch catalog: %w", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("fetch catalog %s: %s", loc, resp.Status)
		}
		return io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	default:
		data, err := os.ReadFile(loc)
		if err != nil {
			return nil, fmt.Errorf("read catalog: %w", err)
		}
		return data, nil
	}
}

// Names returns "None" followed by each template name in order.
func (c *Catalog) Names() []string {
	names := []string{NoneName}
	if c == nil {
		return names
	}
	for _, t := range c.Templates {
		names = append(names, t.Name)
	}
	return names
}

// Find looks a template up by case-insensitive name. "None" and unknown
// names report false.
func (c *Catalog) Find(name string) (Template, bool) {
	if c == nil {
		return Template{}, false
	}
	for _, t := range c.Templates {
		if strings.EqualFold(t.Name, name) {
			return t, true
		}
	}
	return Template{}, false
}

// At returns the template at 1-based index i. Index 0 is "None".
func (c *Catalog) At(i int) (Template, bool) {
	if c == nil || i <= 0 || i > len(c.Templates) {
		return Template{}, false
	}
	return c.Templates[i-1], true
}

// Len reports the number of templates, excluding "None".
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Templates)
}
