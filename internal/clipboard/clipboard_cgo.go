//go:build cgo && (linux || freebsd || openbsd || netbsd || dragonfly || darwin || windows)

package clipboard

import (
	"golang.design/x/clipboard"
)

type systemClipboard struct{}

func newBackend() (backend, error) {
	if err := clipboard.Init(); err != nil {
		return nil, err
	}
	return systemClipboard{}, nil
}

func (systemClipboard) writePNG(data []byte) error {
	clipboard.Write(clipboard.FmtImage, data)
	return nil
}

func (systemClipboard) readPNG() ([]byte, error) {
	data := clipboard.Read(clipboard.FmtImage)
	if len(data) == 0 {
		return nil, ErrEmpty
	}
	return data, nil
}

func (systemClipboard) readText() (string, error) {
	return string(clipboard.Read(clipboard.FmtText)), nil
}
