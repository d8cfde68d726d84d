//go:build !linux

package platform

import "context"

// PreferredColorScheme is only implemented on Linux.
func PreferredColorScheme(ctx context.Context) (ColorScheme, error) {
	return SchemeUnknown, nil
}
