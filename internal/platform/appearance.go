package platform

// ColorScheme is the desktop's light/dark preference.
type ColorScheme int

const (
	// SchemeUnknown means the desktop expressed no preference or could not
	// be asked.
	SchemeUnknown ColorScheme = iota
	SchemeDark
	SchemeLight
)

func (c ColorScheme) String() string {
	switch c {
	case SchemeDark:
		return "dark"
	case SchemeLight:
		return "light"
	default:
		return "unknown"
	}
}

// schemeFromPortal maps the org.freedesktop.appearance color-scheme value.
func schemeFromPortal(v uint32) ColorScheme {
	switch v {
	case 1:
		return SchemeDark
	case 2:
		return SchemeLight
	default:
		return SchemeUnknown
	}
}
