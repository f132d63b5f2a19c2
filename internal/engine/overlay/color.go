package overlay

// Color is an RGBA color with float components in [0, 1].
type Color struct {
	R, G, B, A float32
}

var (
	ColorPanel  = Color{0.08, 0.08, 0.12, 0.75}
	ColorBorder = Color{0.3, 0.3, 0.4, 1}
	ColorText   = Color{0.9, 0.9, 0.9, 1}
	ColorDim    = Color{0.55, 0.55, 0.65, 1}
	ColorGood   = Color{0.2, 1, 0.2, 1}
	ColorWarn   = Color{1, 0.85, 0.2, 1}
	ColorBad    = Color{1, 0.3, 0.3, 1}
)

// RGB creates an opaque color from 8-bit components.
func RGB(r, g, b uint8) Color {
	return Color{
		R: float32(r) / 255,
		G: float32(g) / 255,
		B: float32(b) / 255,
		A: 1,
	}
}

// WithAlpha returns a copy of the color with a different alpha value.
func (c Color) WithAlpha(a float32) Color {
	return Color{c.R, c.G, c.B, a}
}
