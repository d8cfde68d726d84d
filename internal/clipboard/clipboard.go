// Package clipboard copies the exported picture to, and pastes photos from,
// the system clipboard.
package clipboard

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/example/framer/internal/imageio"
)

var (
	errNoDisplay   = errors.New("clipboard requires DISPLAY or WAYLAND_DISPLAY")
	errUnsupported = errors.New("clipboard is not supported on this platform")
	// ErrEmpty is returned when the clipboard holds nothing usable.
	ErrEmpty = errors.New("clipboard does not contain an image")
)

// backend is one clipboard implementation, chosen by build tags.
type backend interface {
	writePNG(data []byte) error
	readPNG() ([]byte, error)
	readText() (string, error)
}

var (
	initOnce sync.Once
	initErr  error
	active   backend
)

func requiresDisplay() bool {
	return runtime.GOOS != "windows" && runtime.GOOS != "darwin"
}

func hasDisplay() bool {
	return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
}

func ensureInit() error {
	initOnce.Do(func() {
		if requiresDisplay() && !hasDisplay() {
			initErr = errNoDisplay
			return
		}
		active, initErr = newBackend()
	})
	return initErr
}

// WritePNG places encoded PNG bytes on the clipboard.
func WritePNG(data []byte) error {
	if err := ensureInit(); err != nil {
		return err
	}
	return active.writePNG(data)
}

// WriteImage encodes img as PNG and places it on the clipboard.
func WriteImage(img image.Image) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encode clipboard image: %w", err)
	}
	return WritePNG(buf.Bytes())
}

// ReadImage returns the clipboard image. When the clipboard holds text
// instead, it is treated as a path, URL or data URL and loaded.
func ReadImage() (image.Image, error) {
	if err := ensureInit(); err != nil {
		return nil, err
	}
	if data, err := active.readPNG(); err == nil && len(data) > 0 {
		return imageio.DecodeBytes(data, "clipboard.png")
	}
	text, err := active.readText()
	if err != nil || strings.TrimSpace(text) == "" {
		return nil, ErrEmpty
	}
	return loadText(text)
}

func loadText(text string) (image.Image, error) {
	src := strings.TrimSpace(strings.SplitN(text, "\n", 2)[0])
	return imageio.Load(context.Background(), src)
}
