package palette

import (
	"github.com/jsvensson/recolor/internal/color"
)

// Inversion overrides matched colors with alternates, e.g. to swap a dark
// palette for its light counterpart without recomputing distances. Keys and
// values are color literals in any notation; matching is on RGB only.
type Inversion struct {
	table map[color.Color]color.Color
}

// NewInversion builds an Inversion from a literal-to-literal table.
func NewInversion(table map[string]string) *Inversion {
	inv := &Inversion{table: make(map[color.Color]color.Color, len(table))}
	for from, to := range table {
		inv.table[color.Parse(from).WithAlpha(1)] = color.Parse(to).WithAlpha(1)
	}
	return inv
}

// Len returns the number of overrides.
func (inv *Inversion) Len() int {
	if inv == nil {
		return 0
	}
	return len(inv.table)
}

// Apply returns the alternate for c if one exists, keeping c's alpha.
// A nil Inversion returns c unchanged.
func (inv *Inversion) Apply(c color.Color) color.Color {
	if inv == nil {
		return c
	}
	if alt, ok := inv.table[c.WithAlpha(1)]; ok {
		return alt.WithAlpha(c.A)
	}
	return c
}
