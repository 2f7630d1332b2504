package color

import "math"

// OKLab is a color in Björn Ottosson's OKLab space. L is lightness [0, 1].
type OKLab struct {
	L, A, B float64
}

// ToOKLab converts the RGB channels of c to OKLab. Alpha does not participate.
func ToOKLab(c Color) OKLab {
	// sRGB → linear RGB
	lr := srgbToLinear(float64(c.R) / 255.0)
	lg := srgbToLinear(float64(c.G) / 255.0)
	lb := srgbToLinear(float64(c.B) / 255.0)

	L, a, b := linearRGBToOKLAB(lr, lg, lb)
	return OKLab{L: L, A: a, B: b}
}

// OKLabDiff is the Euclidean distance between two colors in OKLab.
func OKLabDiff(c1, c2 Color) float64 {
	p, q := ToOKLab(c1), ToOKLab(c2)
	dl := p.L - q.L
	da := p.A - q.A
	db := p.B - q.B
	return math.Sqrt(dl*dl + da*da + db*db)
}

// srgbToLinear converts a single sRGB component [0,1] to linear RGB.
func srgbToLinear(v float64) float64 {
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// linearRGBToOKLAB converts linear RGB to OKLAB (L, a, b).
func linearRGBToOKLAB(r, g, b float64) (float64, float64, float64) {
	// M1: linear RGB → LMS
	l := 0.4122214708*r + 0.5363325363*g + 0.0514459929*b
	m := 0.2119034982*r + 0.6806995451*g + 0.1073969566*b
	s := 0.0883024619*r + 0.2817188376*g + 0.6299787005*b

	lp := math.Cbrt(l)
	mp := math.Cbrt(m)
	sp := math.Cbrt(s)

	// M2: LMS' → Lab
	L := 0.2104542553*lp + 0.7936177850*mp - 0.0040720468*sp
	A := 1.9779984951*lp - 2.4285922050*mp + 0.4505937099*sp
	B := 0.0259040371*lp + 0.7827717662*mp - 0.8086757660*sp

	return L, A, B
}
