package color

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

const (
	number  = `[+-]?(?:\d+(?:\.\d*)?|\.\d+)(?:[eE][+-]?\d+)?`
	percent = `(` + number + `)%`
	sep     = `\s*,\s*`
	alpha   = `(` + number + `%?)`
	hue     = `(` + number + `)(?:deg)?`
)

// grammar is one recognized color notation: a pattern matched against the
// whole literal and the extractor that builds the Color from its submatches.
type grammar struct {
	name    string
	pattern *regexp.Regexp
	extract func(m []string) Color
}

func fn(names, args string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)^` + names + `\(\s*` + args + `\s*\)$`)
}

// grammars lists the notations in precedence order; the first match wins.
var grammars = []grammar{
	{
		name:    "hex8",
		pattern: regexp.MustCompile(`(?i)^#([0-9a-f]{2})([0-9a-f]{2})([0-9a-f]{2})([0-9a-f]{2})$`),
		extract: func(m []string) Color {
			return New(hexByte(m[1]), hexByte(m[2]), hexByte(m[3]), float64(hexByte(m[4]))/255)
		},
	},
	{
		name:    "hex6",
		pattern: regexp.MustCompile(`(?i)^#([0-9a-f]{2})([0-9a-f]{2})([0-9a-f]{2})$`),
		extract: func(m []string) Color {
			return RGB(hexByte(m[1]), hexByte(m[2]), hexByte(m[3]))
		},
	},
	{
		name:    "hex4",
		pattern: regexp.MustCompile(`(?i)^#([0-9a-f])([0-9a-f])([0-9a-f])([0-9a-f])$`),
		extract: func(m []string) Color {
			return New(hexNibble(m[1]), hexNibble(m[2]), hexNibble(m[3]), float64(hexNibble(m[4]))/255)
		},
	},
	{
		name:    "hex3",
		pattern: regexp.MustCompile(`(?i)^#([0-9a-f])([0-9a-f])([0-9a-f])$`),
		extract: func(m []string) Color {
			return RGB(hexNibble(m[1]), hexNibble(m[2]), hexNibble(m[3]))
		},
	},
	{
		name:    "rgb",
		pattern: fn(`rgba?`, `(`+number+`)`+sep+`(`+number+`)`+sep+`(`+number+`)`),
		extract: func(m []string) Color {
			return RGB(channel(m[1]), channel(m[2]), channel(m[3]))
		},
	},
	{
		name:    "rgb-percent",
		pattern: fn(`rgba?`, percent+sep+percent+sep+percent),
		extract: func(m []string) Color {
			return RGB(percentChannel(m[1]), percentChannel(m[2]), percentChannel(m[3]))
		},
	},
	{
		name:    "hsl",
		pattern: fn(`hsla?`, hue+sep+percent+sep+percent),
		extract: func(m []string) Color {
			return fromHSL(m[1], m[2], m[3], 1)
		},
	},
	{
		name:    "rgba",
		pattern: fn(`rgba?`, `(`+number+`)`+sep+`(`+number+`)`+sep+`(`+number+`)`+sep+alpha),
		extract: func(m []string) Color {
			return New(channel(m[1]), channel(m[2]), channel(m[3]), parseAlpha(m[4]))
		},
	},
	{
		name:    "rgba-percent",
		pattern: fn(`rgba?`, percent+sep+percent+sep+percent+sep+alpha),
		extract: func(m []string) Color {
			return New(percentChannel(m[1]), percentChannel(m[2]), percentChannel(m[3]), parseAlpha(m[4]))
		},
	},
	{
		name:    "hsla",
		pattern: fn(`hsla?`, hue+sep+percent+sep+percent+sep+alpha),
		extract: func(m []string) Color {
			return fromHSL(m[1], m[2], m[3], parseAlpha(m[4]))
		},
	},
}

// Parse converts a CSS color literal into a Color. It never fails: input that
// matches no recognized notation yields opaque black.
//
// Recognized notations, in precedence order: #RRGGBBAA, #RRGGBB, #RGBA, #RGB,
// rgb(), rgb() with percentages, hsl(), rgba(), rgba() with percentages,
// hsla(), the keyword transparent and the CSS extended color keywords.
func Parse(text string) Color {
	c, _ := Lookup(text)
	return c
}

// Lookup is Parse that also reports whether the literal was recognized.
func Lookup(text string) (Color, bool) {
	s := strings.TrimSpace(text)
	for _, g := range grammars {
		if m := g.pattern.FindStringSubmatch(s); m != nil {
			return g.extract(m), true
		}
	}
	if strings.EqualFold(s, "transparent") {
		return Color{}, true
	}
	if c, ok := Keyword(s); ok {
		return c, true
	}
	return Black, false
}

func hexByte(s string) int {
	v, _ := strconv.ParseUint(s, 16, 8)
	return int(v)
}

func hexNibble(s string) int {
	return hexByte(s + s)
}

func parseNumber(s string) float64 {
	// Overflow comes back as ±Inf with an error; clamping handles it.
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

// channel rounds an integer-notation channel and clamps it to [0, 255].
func channel(s string) int {
	return int(math.Round(clampRange(parseNumber(s), 0, 255)))
}

// percentChannel clamps a percentage to [0, 100] and scales it to [0, 255].
func percentChannel(s string) int {
	p := clampRange(parseNumber(s), 0, 100)
	return int(math.Round(p * 255 / 100))
}

func parseAlpha(s string) float64 {
	if p, ok := strings.CutSuffix(s, "%"); ok {
		return clamp01(parseNumber(p) / 100)
	}
	return clamp01(parseNumber(s))
}

func fromHSL(h, s, l string, a float64) Color {
	deg := math.Mod(parseNumber(h), 360)
	if deg < 0 {
		deg += 360
	}
	if math.IsNaN(deg) {
		deg = 0
	}
	sat := clampRange(parseNumber(s), 0, 100) / 100
	light := clampRange(parseNumber(l), 0, 100) / 100
	r, g, b := hslToRGB(deg/360, sat, light)
	return New(r, g, b, a)
}

func clampRange(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
