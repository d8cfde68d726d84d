// Package export writes the composited canvas out as PNG.
package export

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/framer/internal/clipboard"
	"github.com/example/framer/internal/notify"
)

// DefaultName is the file name used when none is configured.
const DefaultName = "profile-picture.png"

// Encode writes img to w as PNG.
func Encode(w io.Writer, img image.Image) error {
	if img == nil {
		return fmt.Errorf("export: no image")
	}
	enc := png.Encoder{CompressionLevel: png.DefaultCompression}
	if err := enc.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// PNG returns img encoded as PNG.
func PNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FileName normalises name to a .png file name, falling back to DefaultName.
func FileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultName
	}
	if !strings.EqualFold(filepath.Ext(name), ".png") {
		name += ".png"
	}
	return name
}

// Save writes img into dir under name and returns the path written. A failed
// encode leaves no file behind.
func Save(img image.Image, dir, name string) (string, error) {
	name = FileName(name)
	path := name
	if !filepath.IsAbs(name) {
		if dir == "" {
			dir = "."
		}
		path = filepath.Join(dir, name)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create save dir: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".framer-*.png")
	if err != nil {
		return "", fmt.Errorf("save: %w", err)
	}
	if err := Encode(tmp, img); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", err
	}
	// CreateTemp opens the file 0600.
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("save: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("save: closing file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("save: %w", err)
	}
	return path, nil
}

// Exporter performs the user-triggered export actions.
type Exporter struct {
	Dir      string
	Name     string
	Notifier *notify.Notifier
}

// writeClipboard is swapped out by tests.
var writeClipboard = clipboard.WritePNG

// Save writes img to the configured location and announces it.
func (e *Exporter) Save(img image.Image) (string, error) {
	path, err := Save(img, e.Dir, e.Name)
	if err != nil {
		return "", err
	}
	e.Notifier.Save(path)
	return path, nil
}

// Copy places img on the clipboard as PNG and announces it.
func (e *Exporter) Copy(img image.Image) error {
	data, err := PNG(img)
	if err != nil {
		return err
	}
	if err := writeClipboard(data); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	e.Notifier.Copy(FileName(e.Name))
	return nil
}
