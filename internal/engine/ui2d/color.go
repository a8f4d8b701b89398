package ui2d

// Color represents an RGBA color with float components (0.0 to 1.0).
type Color struct {
	R, G, B, A float32
}

// Studio theme.
var (
	ColorTransparent = Color{0, 0, 0, 0}
	ColorWhite       = Color{1, 1, 1, 1}
	ColorBlack       = Color{0, 0, 0, 1}

	ColorPanelBg        = Color{0.09, 0.09, 0.11, 0.96}
	ColorPanelBorder    = Color{0.28, 0.28, 0.34, 1}
	ColorTitleBg        = Color{0.14, 0.14, 0.18, 1}
	ColorButtonNormal   = Color{0.17, 0.17, 0.22, 1}
	ColorButtonHover    = Color{0.24, 0.24, 0.31, 1}
	ColorButtonActive   = Color{0.16, 0.42, 0.62, 1}
	ColorButtonDisabled = Color{0.12, 0.12, 0.14, 1}
	ColorInputBg        = Color{0.05, 0.05, 0.07, 1}
	ColorInputBorder    = Color{0.22, 0.22, 0.3, 1}
	ColorInputFocus     = Color{0.3, 0.6, 0.9, 1}
	ColorText           = Color{0.92, 0.92, 0.92, 1}
	ColorTextDim        = Color{0.52, 0.52, 0.6, 1}
	ColorWarning        = Color{0.95, 0.72, 0.3, 1}
	ColorSpeaking       = Color{0.35, 0.85, 0.45, 1}
)

// RGB creates a color from 8-bit RGB values with full alpha.
func RGB(r, g, b uint8) Color {
	return Color{
		R: float32(r) / 255.0,
		G: float32(g) / 255.0,
		B: float32(b) / 255.0,
		A: 1.0,
	}
}

// WithAlpha returns a copy of the color with a different alpha value.
func (c Color) WithAlpha(a float32) Color {
	return Color{c.R, c.G, c.B, a}
}

// Darken returns a darker version of the color.
func (c Color) Darken(factor float32) Color {
	return Color{
		R: c.R * (1 - factor),
		G: c.G * (1 - factor),
		B: c.B * (1 - factor),
		A: c.A,
	}
}
