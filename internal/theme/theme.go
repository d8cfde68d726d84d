package theme

import (
	"image/color"
)

// Theme is the colour palette of the editor window.
type Theme struct {
	Name string

	Background color.RGBA // window behind the canvas
	Foreground color.RGBA // labels and help text

	// Template strip along the bottom edge
	Panel          color.RGBA
	StripItem      color.RGBA
	StripItemHover color.RGBA
	StripText      color.RGBA
	Accent         color.RGBA // selected template, active layer badge

	CanvasBorder color.RGBA
	CheckerLight color.RGBA
	CheckerDark  color.RGBA

	SnackbarBackground color.RGBA
	SnackbarText       color.RGBA
}

// Default returns the built-in light theme.
func Default() *Theme {
	return &Theme{
		Name:               "light",
		Background:         color.RGBA{236, 238, 242, 255},
		Foreground:         color.RGBA{24, 26, 32, 255},
		Panel:              color.RGBA{222, 225, 231, 255},
		StripItem:          color.RGBA{250, 250, 252, 255},
		StripItemHover:     color.RGBA{205, 214, 230, 255},
		StripText:          color.RGBA{24, 26, 32, 255},
		Accent:             color.RGBA{52, 120, 246, 255},
		CanvasBorder:       color.RGBA{160, 164, 172, 255},
		CheckerLight:       color.RGBA{240, 240, 240, 255},
		CheckerDark:        color.RGBA{204, 204, 204, 255},
		SnackbarBackground: color.RGBA{40, 42, 48, 230},
		SnackbarText:       color.RGBA{255, 255, 255, 255},
	}
}

// Dark returns the built-in dark theme.
func Dark() *Theme {
	return &Theme{
		Name:               "dark",
		Background:         color.RGBA{28, 30, 36, 255},
		Foreground:         color.RGBA{228, 230, 235, 255},
		Panel:              color.RGBA{38, 41, 48, 255},
		StripItem:          color.RGBA{52, 56, 65, 255},
		StripItemHover:     color.RGBA{70, 76, 90, 255},
		StripText:          color.RGBA{228, 230, 235, 255},
		Accent:             color.RGBA{96, 156, 255, 255},
		CanvasBorder:       color.RGBA{90, 94, 104, 255},
		CheckerLight:       color.RGBA{70, 70, 70, 255},
		CheckerDark:        color.RGBA{50, 50, 50, 255},
		SnackbarBackground: color.RGBA{230, 232, 236, 235},
		SnackbarText:       color.RGBA{20, 20, 24, 255},
	}
}
