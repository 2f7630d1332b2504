package palette

import (
	"errors"
	"testing"

	"github.com/jsvensson/recolor/internal/color"
)

var solarized = ParseAll([]string{
	"#002b36", "#073642", "#586e75", "#657b83",
	"#839496", "#93a1a1", "#eee8d5", "#fdf6e3",
	"#b58900", "#cb4b16", "#dc322f", "#d33682",
	"#6c71c4", "#268bd2", "#2aa198", "#859900",
})

func TestNewEmptyPalette(t *testing.T) {
	if _, err := New(nil, color.CIE76); !errors.Is(err, ErrEmptyPalette) {
		t.Errorf("New(nil) error = %v, want ErrEmptyPalette", err)
	}
	if _, err := Nearest(color.RGB(1, 2, 3), []color.Color{}); !errors.Is(err, ErrEmptyPalette) {
		t.Errorf("Nearest with empty palette error = %v, want ErrEmptyPalette", err)
	}
}

func TestNearest(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"black goes to base03", "#000000", "#002B36"},
		{"white goes to base3", "#ffffff", "#FDF6E3"},
		{"pure red goes to red", "#ff0000", "#DC322F"},
		{"facebook blue goes to blue-ish", "#3b5998", "#6C71C4"},
		{"translucent keeps alpha", "rgba(255, 255, 255, 0.5)", "rgba(253, 246, 227, 0.5)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Nearest(color.Parse(tt.source), solarized)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.String() != tt.want {
				t.Errorf("Nearest(%s) = %s, want %s", tt.source, got, tt.want)
			}
		})
	}
}

func TestNearestReturnsMember(t *testing.T) {
	m, err := New(solarized, color.CIE76)
	if err != nil {
		t.Fatal(err)
	}
	for _, src := range []string{"#123456", "#abcdef", "tomato", "hsl(200, 40%, 40%)", "#808080"} {
		got := m.Nearest(color.Parse(src))
		if !Contains(solarized, got) {
			t.Errorf("Nearest(%s) = %s is not in the palette", src, got)
		}
	}
}

func TestNearestSelf(t *testing.T) {
	for _, metric := range color.Metrics {
		m, err := New(solarized, metric)
		if err != nil {
			t.Fatal(err)
		}
		for _, c := range solarized {
			got, dist := m.NearestWithDistance(c)
			if got != c {
				t.Errorf("%s: Nearest(%s) = %s, want itself", metric, c, got)
			}
			if dist > 1e-9 {
				t.Errorf("%s: distance to self = %v", metric, dist)
			}
		}
	}
}

func TestNearestTieGoesToFirst(t *testing.T) {
	p := []color.Color{color.RGB(200, 0, 0), color.RGB(10, 10, 10), color.RGB(10, 10, 10)}
	m, err := New(p, color.CIE76)
	if err != nil {
		t.Fatal(err)
	}
	if i, _ := m.NearestIndex(color.RGB(12, 12, 12)); i != 1 {
		t.Errorf("NearestIndex = %d, want 1", i)
	}
}

func TestMatcherDoesNotAliasInput(t *testing.T) {
	p := []color.Color{color.RGB(0, 0, 0)}
	m, err := New(p, "")
	if err != nil {
		t.Fatal(err)
	}
	p[0] = color.RGB(255, 255, 255)
	if got := m.Nearest(color.RGB(250, 250, 250)); got != color.RGB(0, 0, 0) {
		t.Errorf("matcher palette changed with caller slice: %v", got)
	}
	if m.Metric() != color.CIE76 {
		t.Errorf("default metric = %q, want cie76", m.Metric())
	}
}

func TestInversion(t *testing.T) {
	inv := NewInversion(map[string]string{
		"#002b36": "#fdf6e3",
		"#FDF6E3": "#002B36",
	})

	tests := []struct {
		name  string
		input color.Color
		want  string
	}{
		{"dark to light", color.Parse("#002B36"), "#FDF6E3"},
		{"light to dark", color.Parse("#fdf6e3"), "#002B36"},
		{"untouched", color.Parse("#dc322f"), "#DC322F"},
		{"alpha kept", color.Parse("#002b36").WithAlpha(0.4), "rgba(253, 246, 227, 0.4)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := inv.Apply(tt.input).String(); got != tt.want {
				t.Errorf("Apply(%s) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}

	var none *Inversion
	if got := none.Apply(color.RGB(1, 2, 3)); got != color.RGB(1, 2, 3) {
		t.Errorf("nil inversion changed color: %v", got)
	}
	if none.Len() != 0 || inv.Len() != 2 {
		t.Errorf("Len() = %d/%d, want 0/2", none.Len(), inv.Len())
	}
}
