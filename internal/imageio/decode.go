// Package imageio decodes photos and overlays from files, URLs, data URLs
// and embedded assets.
package imageio

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

// ErrFormat is returned when the data matches none of the supported formats.
var ErrFormat = errors.New("unsupported image format")

type format struct {
	name   string
	match  func([]byte) bool
	decode func(io.Reader) (image.Image, error)
}

func prefix(p string) func([]byte) bool {
	return func(b []byte) bool { return bytes.HasPrefix(b, []byte(p)) }
}

// TGA has no magic number, so it is only tried by extension or as a last
// resort.
var formats = []format{
	{"png", prefix("\x89PNG\r\n\x1a\n"), png.Decode},
	{"jpeg", prefix("\xff\xd8"), jpeg.Decode},
	{"gif", func(b []byte) bool { return bytes.HasPrefix(b, []byte("GIF87a")) || bytes.HasPrefix(b, []byte("GIF89a")) }, gif.Decode},
	{"bmp", prefix("BM"), bmp.Decode},
	{"tiff", func(b []byte) bool { return bytes.HasPrefix(b, []byte("II*\x00")) || bytes.HasPrefix(b, []byte("MM\x00*")) }, tiff.Decode},
	{"webp", func(b []byte) bool { return len(b) >= 12 && string(b[:4]) == "RIFF" && string(b[8:12]) == "WEBP" }, webp.Decode},
}

// Decode sniffs r and decodes it. hint is an optional file name whose
// extension selects TGA.
func Decode(r io.Reader, hint string) (image.Image, string, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(12)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, "", fmt.Errorf("read header: %w", err)
	}
	if strings.EqualFold(filepath.Ext(hint), ".tga") {
		img, err := tga.Decode(br)
		if err != nil {
			return nil, "tga", fmt.Errorf("decode tga: %w", err)
		}
		return img, "tga", nil
	}
	for _, f := range formats {
		if f.match(head) {
			img, err := f.decode(br)
			if err != nil {
				return nil, f.name, fmt.Errorf("decode %s: %w", f.name, err)
			}
			return img, f.name, nil
		}
	}
	if img, err := tga.Decode(br); err == nil {
		return img, "tga", nil
	}
	return nil, "", ErrFormat
}

// DecodeBytes decodes an in-memory image.
func DecodeBytes(data []byte, hint string) (image.Image, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty image data")
	}
	img, _, err := Decode(bytes.NewReader(data), hint)
	return img, err
}

// ToRGBA returns img as an *image.RGBA with a zero origin, copying only when
// needed.
func ToRGBA(img image.Image) *image.RGBA {
	if img == nil {
		return nil
	}
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}
