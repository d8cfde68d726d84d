package assets

import (
	"bytes"
	"embed"
	"fmt"
	"image"
	"image/png"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"
)

// Scheme prefixes sources that live inside the binary.
const Scheme = "builtin:"

// Built-in overlay templates shipped with framer.
//
//go:embed catalog.json overlays/*.png
var embedded embed.FS

var (
	loadOverlaysOnce sync.Once
	loadOverlaysErr  error

	overlayImages = map[string]image.Image{}
)

func loadOverlays() {
	entries, err := fs.ReadDir(embedded, "overlays")
	if err != nil {
		loadOverlaysErr = err
		return
	}
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasSuffix(name, ".png") {
			continue
		}
		data, err := embedded.ReadFile(path.Join("overlays", name))
		if err != nil {
			loadOverlaysErr = err
			return
		}
		img, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			loadOverlaysErr = fmt.Errorf("decode %s: %w", name, err)
			return
		}
		overlayImages[path.Join("overlays", name)] = img
	}
}

func ensureOverlays() error {
	loadOverlaysOnce.Do(loadOverlays)
	return loadOverlaysErr
}

// IsBuiltin reports whether src refers to an embedded asset.
func IsBuiltin(src string) bool { return strings.HasPrefix(src, Scheme) }

// Catalog returns a copy of the embedded catalog JSON.
func Catalog() []byte {
	data, err := embedded.ReadFile("catalog.json")
	if err != nil {
		return nil
	}
	return data
}

// Image returns the decoded embedded overlay for src, with or without the
// builtin: prefix.
func Image(src string) (image.Image, error) {
	if err := ensureOverlays(); err != nil {
		return nil, err
	}
	name := path.Clean(strings.TrimPrefix(src, Scheme))
	img, ok := overlayImages[name]
	if !ok {
		return nil, fmt.Errorf("asset %q not embedded", name)
	}
	return img, nil
}

// Read returns the raw bytes of an embedded file.
func Read(src string) ([]byte, error) {
	name := path.Clean(strings.TrimPrefix(src, Scheme))
	data, err := embedded.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("asset %q: %w", name, err)
	}
	return data, nil
}

// Overlays lists the embedded overlay paths.
func Overlays() []string {
	if err := ensureOverlays(); err != nil {
		return nil
	}
	names := make([]string, 0, len(overlayImages))
	for name := range overlayImages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
