package color

import (
	"sort"
	"strings"

	"golang.org/x/image/colornames"
)

// keywords is the CSS extended color-keyword table. colornames carries the
// SVG 1.1 list; rebeccapurple was added by CSS Color Level 4.
var keywords = buildKeywords()

func buildKeywords() map[string]Color {
	table := make(map[string]Color, len(colornames.Map)+1)
	for name, c := range colornames.Map {
		table[name] = RGB(int(c.R), int(c.G), int(c.B))
	}
	table["rebeccapurple"] = RGB(0x66, 0x33, 0x99)
	return table
}

// Keyword resolves a CSS color keyword, case-insensitively.
func Keyword(name string) (Color, bool) {
	c, ok := keywords[strings.ToLower(name)]
	return c, ok
}

// IsKeyword reports whether name is a color keyword or "transparent".
func IsKeyword(name string) bool {
	if strings.EqualFold(name, "transparent") {
		return true
	}
	_, ok := Keyword(name)
	return ok
}

// KeywordNames returns all color keywords in sorted order.
func KeywordNames() []string {
	names := make([]string, 0, len(keywords))
	for name := range keywords {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
