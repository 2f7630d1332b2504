package color

import (
	"fmt"
	"math"
	"strconv"
)

// Color represents an sRGB color with an alpha channel. The R, G, B uint8
// fields are the source of truth for every derived representation; A is the
// opacity in [0, 1].
type Color struct {
	R, G, B uint8
	A       float64
}

// Black is the fallback for unrecognized literals.
var Black = Color{A: 1}

// New builds a Color from unbounded channel values. Channels are clamped into
// [0, 255] and alpha into [0, 1]; out-of-range input is normalized, never
// rejected.
func New(r, g, b int, a float64) Color {
	return Color{
		R: clampByte(r),
		G: clampByte(g),
		B: clampByte(b),
		A: clampAlpha(a),
	}
}

// RGB builds an opaque Color.
func RGB(r, g, b int) Color {
	return New(r, g, b, 1)
}

// WithAlpha returns a copy of c carrying the given alpha.
func (c Color) WithAlpha(a float64) Color {
	c.A = clampAlpha(a)
	return c
}

// Opaque reports whether the color has full opacity.
func (c Color) Opaque() bool {
	return c.A >= 1
}

// SameRGB reports whether both colors have identical channels, ignoring alpha.
func (c Color) SameRGB(o Color) bool {
	return c.R == o.R && c.G == o.G && c.B == o.B
}

// Hex returns the color as an uppercase hex string with leading #, e.g. "#EB6F92".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// HexBare returns the color as a hex string without leading #, e.g. "EB6F92".
func (c Color) HexBare() string {
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
}

// RGB returns the color as an rgb() string, e.g. "rgb(235, 111, 146)".
func (c Color) RGB() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// RGBA returns the color in rgba() function format with the alpha rounded
// to two decimals, e.g. "rgba(235, 111, 146, 0.5)".
func (c Color) RGBA() string {
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", c.R, c.G, c.B, formatAlpha(c.A))
}

// String serializes the color for stylesheet output: opaque colors render
// as #RRGGBB, translucent ones as rgba().
func (c Color) String() string {
	if c.Opaque() {
		return c.Hex()
	}
	return c.RGBA()
}

func formatAlpha(a float64) string {
	return strconv.FormatFloat(math.Round(a*100)/100, 'f', -1, 64)
}

func clampByte(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func clampAlpha(a float64) float64 {
	if math.IsNaN(a) {
		return 1
	}
	return clamp01(a)
}

// clamp01 clamps a value to the [0, 1] range.
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
