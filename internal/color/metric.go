package color

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Metric measures perceptual distance between two colors. Every metric
// ignores alpha.
type Metric string

const (
	CIE76     Metric = "cie76"
	CIE94     Metric = "cie94"
	CIEDE2000 Metric = "ciede2000"
	OKLabDist Metric = "oklab"
)

// Metrics lists the supported metric names.
var Metrics = []Metric{CIE76, CIE94, CIEDE2000, OKLabDist}

// ParseMetric resolves a metric name. The empty string selects CIE76.
func ParseMetric(name string) (Metric, error) {
	if name == "" {
		return CIE76, nil
	}
	m := Metric(strings.ToLower(name))
	for _, known := range Metrics {
		if m == known {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown metric %q (valid: cie76, cie94, ciede2000, oklab)", name)
}

// Distance returns the distance between c1 and c2 under m. An unset metric
// behaves as CIE76.
func (m Metric) Distance(c1, c2 Color) float64 {
	switch m {
	case CIE94:
		return toColorful(c1).DistanceCIE94(toColorful(c2))
	case CIEDE2000:
		return toColorful(c1).DistanceCIEDE2000(toColorful(c2))
	case OKLabDist:
		return OKLabDiff(c1, c2)
	default:
		return Diff(c1, c2)
	}
}

func toColorful(c Color) colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}
