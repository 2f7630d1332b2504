package color

import "math"

// D65 reference white in XYZ, scaled so that Y = 100.
const (
	whiteX = 95.047
	whiteY = 100.000
	whiteZ = 108.883
)

// Lab is a CIE L*a*b* triple. It is only ever derived from a Color.
type Lab struct {
	L, A, B float64
}

// ToXYZ converts the RGB channels of c to CIE XYZ (D65, Y in [0, 100]).
// Alpha does not participate.
func ToXYZ(c Color) (x, y, z float64) {
	r := srgbToLinear(float64(c.R)/255.0) * 100
	g := srgbToLinear(float64(c.G)/255.0) * 100
	b := srgbToLinear(float64(c.B)/255.0) * 100

	x = r*0.4124 + g*0.3576 + b*0.1805
	y = r*0.2126 + g*0.7152 + b*0.0722
	z = r*0.0193 + g*0.1192 + b*0.9505
	return x, y, z
}

// ToLab converts c to CIE L*a*b* through XYZ.
func ToLab(c Color) Lab {
	x, y, z := ToXYZ(c)

	fx := labF(x / whiteX)
	fy := labF(y / whiteY)
	fz := labF(z / whiteZ)

	return Lab{
		L: 116*fy - 16,
		A: 500 * (fx - fy),
		B: 200 * (fy - fz),
	}
}

func labF(t float64) float64 {
	if t > 0.008856 {
		return math.Cbrt(t)
	}
	return 7.787*t + 16.0/116.0
}

// Diff returns the CIE76 DeltaE between two colors: the Euclidean distance
// of their Lab triples. It is symmetric and ignores alpha.
func Diff(c1, c2 Color) float64 {
	return ToLab(c1).Distance(ToLab(c2))
}

// Distance is the Euclidean distance between two Lab triples.
func (l Lab) Distance(o Lab) float64 {
	dl := l.L - o.L
	da := l.A - o.A
	db := l.B - o.B
	return math.Sqrt(dl*dl + da*da + db*db)
}
