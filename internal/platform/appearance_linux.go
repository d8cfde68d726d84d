//go:build linux

package platform

import (
	"context"
	"fmt"

	"github.com/godbus/dbus/v5"
)

const (
	portalDest = "org.freedesktop.portal.Desktop"
	portalPath = "/org/freedesktop/portal/desktop"
	portalRead = "org.freedesktop.portal.Settings.Read"
)

// PreferredColorScheme asks the desktop portal for the colour scheme.
func PreferredColorScheme(ctx context.Context) (ColorScheme, error) {
	conn, err := dbus.ConnectSessionBus(dbus.WithContext(ctx))
	if err != nil {
		return SchemeUnknown, err
	}
	defer conn.Close()

	var v dbus.Variant
	call := conn.Object(portalDest, portalPath).CallWithContext(ctx, portalRead, 0, "org.freedesktop.appearance", "color-scheme")
	if err := call.Store(&v); err != nil {
		return SchemeUnknown, fmt.Errorf("portal color-scheme: %w", err)
	}
	// Read wraps the value in a second variant.
	val := v.Value()
	for {
		inner, ok := val.(dbus.Variant)
		if !ok {
			break
		}
		val = inner.Value()
	}
	n, ok := val.(uint32)
	if !ok {
		return SchemeUnknown, fmt.Errorf("portal color-scheme: unexpected %T", val)
	}
	return schemeFromPortal(n), nil
}
