// Package palette matches colors against a fixed target palette.
package palette

import (
	"errors"

	"github.com/jsvensson/recolor/internal/color"
)

// ErrEmptyPalette is returned when a matcher is built without any target colors.
var ErrEmptyPalette = errors.New("target palette is empty")

// Matcher finds the perceptually nearest palette entry for a color.
// The palette is read-only for the lifetime of the matcher.
type Matcher struct {
	palette []color.Color
	metric  color.Metric
}

// New returns a Matcher over the given palette using metric. An empty palette
// is a configuration error.
func New(palette []color.Color, metric color.Metric) (*Matcher, error) {
	if len(palette) == 0 {
		return nil, ErrEmptyPalette
	}
	if metric == "" {
		metric = color.CIE76
	}
	p := make([]color.Color, len(palette))
	copy(p, palette)
	return &Matcher{palette: p, metric: metric}, nil
}

// Palette returns a copy of the palette entries in order.
func (m *Matcher) Palette() []color.Color {
	p := make([]color.Color, len(m.palette))
	copy(p, m.palette)
	return p
}

// Metric returns the distance metric in use.
func (m *Matcher) Metric() color.Metric {
	return m.metric
}

// Nearest returns the palette entry closest to source, with source's alpha.
// Ties go to the entry listed first.
func (m *Matcher) Nearest(source color.Color) color.Color {
	match, _ := m.NearestWithDistance(source)
	return match
}

// NearestWithDistance is Nearest that also reports the distance between source
// and the returned entry.
func (m *Matcher) NearestWithDistance(source color.Color) (color.Color, float64) {
	i, dist := m.NearestIndex(source)
	return m.palette[i].WithAlpha(source.A), dist
}

// NearestIndex returns the position of the closest palette entry and its
// distance to source.
func (m *Matcher) NearestIndex(source color.Color) (int, float64) {
	best := 0
	bestDist := m.metric.Distance(source, m.palette[0])
	for i := 1; i < len(m.palette); i++ {
		if d := m.metric.Distance(source, m.palette[i]); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, bestDist
}

// Nearest returns the entry of palette with minimum CIE76 distance to source,
// carrying source's alpha.
func Nearest(source color.Color, palette []color.Color) (color.Color, error) {
	m, err := New(palette, color.CIE76)
	if err != nil {
		return color.Color{}, err
	}
	return m.Nearest(source), nil
}

// ParseAll parses a list of color literals into a palette.
func ParseAll(literals []string) []color.Color {
	colors := make([]color.Color, 0, len(literals))
	for _, lit := range literals {
		colors = append(colors, color.Parse(lit))
	}
	return colors
}

// Contains reports whether palette has an entry with the same RGB as c.
func Contains(palette []color.Color, c color.Color) bool {
	for _, p := range palette {
		if p.SameRGB(c) {
			return true
		}
	}
	return false
}
