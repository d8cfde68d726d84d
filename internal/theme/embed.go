package theme

import "embed"

// EmbeddedThemes holds the themes shipped in the binary.
//
//go:embed defaults/*.theme
var EmbeddedThemes embed.FS
