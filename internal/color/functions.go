package color

import "math"

// Brighten returns a copy of color with its HSL lightness raised by
// percentage (0.1 = ten points). Negative percentages darken. Alpha is kept.
func Brighten(color Color, percentage float64) Color {
	h, s, l := rgbToHSL(color)

	l = clamp01(l + percentage)

	r, g, b := hslToRGB(h, s, l)
	return New(r, g, b, color.A)
}

// Darken returns a copy of color with its HSL lightness lowered by percentage.
func Darken(color Color, percentage float64) Color {
	return Brighten(color, -percentage)
}

// rgbToHSL returns hue, saturation and lightness, all in [0, 1].
func rgbToHSL(c Color) (h, s, l float64) {
	// Normalize RGB to 0-1 range
	r, g, b := float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0

	min := math.Min(math.Min(r, g), b)
	max := math.Max(math.Max(r, g), b)
	l = (max + min) / 2.0

	if max == min {
		return 0, 0, l // Achromatic
	}

	d := max - min
	if l > 0.5 {
		s = d / (2.0 - max - min)
	} else {
		s = d / (max + min)
	}

	switch max {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6.0
		}
		h /= 6.0
	case g:
		h = ((b-r)/d + 2.0) / 6.0
	case b:
		h = ((r-g)/d + 4.0) / 6.0
	}
	return h, s, l
}

// hslToRGB converts hue, saturation and lightness in [0, 1] to rounded
// 8-bit channels.
func hslToRGB(h, s, l float64) (r, g, b int) {
	if s == 0 {
		v := int(math.Round(l * 255))
		return v, v, v
	}

	var v2 float64
	if l < 0.5 {
		v2 = l * (1.0 + s)
	} else {
		v2 = (l + s) - (s * l)
	}
	v1 := 2.0*l - v2

	r = int(math.Round(255 * hueToRGB(v1, v2, h+1.0/3.0)))
	g = int(math.Round(255 * hueToRGB(v1, v2, h)))
	b = int(math.Round(255 * hueToRGB(v1, v2, h-1.0/3.0)))
	return r, g, b
}

func hueToRGB(v1, v2, vh float64) float64 {
	if vh < 0 {
		vh += 1.0
	}
	if vh > 1 {
		vh -= 1.0
	}
	if 6*vh < 1 {
		return v1 + (v2-v1)*6.0*vh
	}
	if 2*vh < 1 {
		return v2
	}
	if 3*vh < 2 {
		return v1 + (v2-v1)*(2.0/3.0-vh)*6.0
	}
	return v1
}
