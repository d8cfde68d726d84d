package imageio

import (
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"github.com/example/framer/assets"
)

// MaxRemoteBytes caps downloads of remote images.
const MaxRemoteBytes = 32 << 20

// HTTPClient is used for http(s) sources. Tests replace it.
var HTTPClient = &http.Client{Timeout: 30 * time.Second}

// IsRemote reports whether src is an http(s) URL.
func IsRemote(src string) bool {
	lower := strings.ToLower(src)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// Load resolves src and decodes it. src may be a local path, a file:// URL,
// an http(s) URL, a data: URL or a builtin: asset.
func Load(ctx context.Context, src string) (image.Image, error) {
	switch {
	case src == "":
		return nil, fmt.Errorf("no image source")
	case assets.IsBuiltin(src):
		return assets.Image(src)
	case strings.HasPrefix(src, "data:"):
		data, err := DataURL(src)
		if err != nil {
			return nil, err
		}
		return DecodeBytes(data, "")
	case IsRemote(src):
		return fetch(ctx, src)
	case strings.HasPrefix(src, "file://"):
		u, err := url.Parse(src)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", src, err)
		}
		return LoadFile(u.Path)
	default:
		return LoadFile(src)
	}
}

// LoadFile decodes a local image file.
func LoadFile(name string) (image.Image, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := Decode(f, name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return img, nil
}

func fetch(ctx context.Context, src string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", src, err)
	}
	resp, err := HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", src, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: %s", src, resp.Status)
	}
	u, _ := url.Parse(src)
	hint := ""
	if u != nil {
		hint = path.Base(u.Path)
	}
	img, _, err := Decode(io.LimitReader(resp.Body, MaxRemoteBytes), hint)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src, err)
	}
	return img, nil
}

// DataURL returns the payload of a data: URL. Both base64 and percent-encoded
// payloads are accepted.
func DataURL(src string) ([]byte, error) {
	rest, ok := strings.CutPrefix(src, "data:")
	if !ok {
		return nil, fmt.Errorf("not a data URL")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, fmt.Errorf("malformed data URL")
	}
	if strings.HasSuffix(meta, ";base64") {
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("data URL: %w", err)
		}
		return data, nil
	}
	s, err := url.PathUnescape(payload)
	if err != nil {
		return nil, fmt.Errorf("data URL: %w", err)
	}
	return []byte(s), nil
}

// EncodeDataURL wraps PNG bytes in a data: URL.
func EncodeDataURL(pngData []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngData)
}
