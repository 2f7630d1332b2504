package lsp

import (
	"strings"
	"testing"

	"github.com/jsvensson/recolor"
	"github.com/jsvensson/recolor/internal/color"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func testTarget(t *testing.T) *target {
	t.Helper()
	tgt, err := newTarget(&recolor.Scheme{
		Meta:   recolor.Meta{Name: "Test"},
		Names:  []string{"ink", "paper", "red"},
		Target: []color.Color{color.RGB(0, 43, 54), color.RGB(253, 246, 227), color.RGB(220, 50, 47)},
		Metric: color.CIE76,
	})
	if err != nil {
		t.Fatal(err)
	}
	return tgt
}

const testStylesheet = "a {\n  color: #fff;\n  background: #002b36;\n}\n"

func TestAnalyzeStylesheet(t *testing.T) {
	result := Analyze("file:///site.css", testStylesheet, testTarget(t))

	if result.Scheme {
		t.Error("stylesheet analyzed as scheme")
	}
	if len(result.Colors) != 2 {
		t.Fatalf("got %d colors, want 2", len(result.Colors))
	}

	white := result.Colors[0]
	wantRange := protocol.Range{
		Start: protocol.Position{Line: 1, Character: 9},
		End:   protocol.Position{Line: 1, Character: 13},
	}
	if white.Literal != "#fff" || white.Range != wantRange {
		t.Errorf("first color = %q at %+v", white.Literal, white.Range)
	}
	if white.Selector != "a" {
		t.Errorf("Selector = %q", white.Selector)
	}
	if white.Index != 1 || white.Replacement != "#FDF6E3" || white.InPalette() {
		t.Errorf("match = index %d, replacement %q, distance %f", white.Index, white.Replacement, white.Distance)
	}

	ink := result.Colors[1]
	if !ink.InPalette() || ink.Index != 0 {
		t.Errorf("#002b36 should match ink exactly, got index %d distance %f", ink.Index, ink.Distance)
	}

	if len(result.Diagnostics) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(result.Diagnostics))
	}
	d := result.Diagnostics[0]
	if *d.Severity != DiagInfo || d.Range != wantRange {
		t.Errorf("diagnostic = %+v", d)
	}
	for _, want := range []string{"#fff", "Test", "#FDF6E3", "paper"} {
		if !strings.Contains(d.Message, want) {
			t.Errorf("diagnostic %q missing %q", d.Message, want)
		}
	}
}

func TestAnalyzeUnrecognizedColor(t *testing.T) {
	result := Analyze("file:///a.css", "a { color: rgb(1, 2) }", testTarget(t))
	if len(result.Colors) != 1 {
		t.Fatalf("got %d colors, want 1", len(result.Colors))
	}
	if result.Colors[0].Valid {
		t.Error("rgb(1, 2) should not be valid")
	}
	if len(result.Diagnostics) != 1 || *result.Diagnostics[0].Severity != DiagWarning {
		t.Fatalf("diagnostics = %+v", result.Diagnostics)
	}
	if !strings.Contains(result.Diagnostics[0].Message, "treated as black") {
		t.Errorf("message = %q", result.Diagnostics[0].Message)
	}
}

func TestAnalyzeIgnoresCommentsAndStrings(t *testing.T) {
	content := `/* color: #fff; */ b { color: #000; content: "#abc" }`
	result := Analyze("file:///a.css", content, testTarget(t))
	if len(result.Colors) != 1 || result.Colors[0].Literal != "#000" {
		t.Errorf("colors = %+v", result.Colors)
	}
}

func TestAnalyzeUTF16Positions(t *testing.T) {
	content := "a { content: \"\U0001F600\"; color: red }"
	result := Analyze("file:///a.css", content, testTarget(t))
	if len(result.Colors) != 1 {
		t.Fatalf("got %d colors, want 1", len(result.Colors))
	}
	cl := result.Colors[0]
	if cl.Span.Start != 28 {
		t.Errorf("Span.Start = %d, want 28", cl.Span.Start)
	}
	if cl.Range.Start.Character != 26 || cl.Range.End.Character != 29 {
		t.Errorf("Range = %+v, want characters 26-29", cl.Range)
	}
}

func TestAnalyzeWithoutTarget(t *testing.T) {
	result := Analyze("file:///a.css", testStylesheet, nil)
	if len(result.Colors) != 2 {
		t.Fatalf("got %d colors, want 2", len(result.Colors))
	}
	if len(result.Diagnostics) != 0 {
		t.Errorf("got %d diagnostics without a target", len(result.Diagnostics))
	}
}

func TestLineIndex(t *testing.T) {
	content := "ab\nc\U0001F600d\n\nxyz"
	li := newLineIndex(content)

	tests := []struct {
		offset int
		pos    protocol.Position
	}{
		{0, protocol.Position{Line: 0, Character: 0}},
		{2, protocol.Position{Line: 0, Character: 2}},
		{3, protocol.Position{Line: 1, Character: 0}},
		{4, protocol.Position{Line: 1, Character: 1}},
		{8, protocol.Position{Line: 1, Character: 3}},
		{10, protocol.Position{Line: 2, Character: 0}},
		{11, protocol.Position{Line: 3, Character: 0}},
		{14, protocol.Position{Line: 3, Character: 3}},
	}
	for _, tt := range tests {
		if got := li.position(tt.offset); got != tt.pos {
			t.Errorf("position(%d) = %+v, want %+v", tt.offset, got, tt.pos)
		}
		if got := li.offset(tt.pos); got != tt.offset {
			t.Errorf("offset(%+v) = %d, want %d", tt.pos, got, tt.offset)
		}
	}

	// Characters past the line end clamp to it.
	if got := li.offset(protocol.Position{Line: 0, Character: 40}); got != 2 {
		t.Errorf("offset past line end = %d, want 2", got)
	}
	if got := li.offset(protocol.Position{Line: 9}); got != len(content) {
		t.Errorf("offset past last line = %d", got)
	}
}

const testSchemeHCL = `meta {
  name = "Test"
}

palette {
  ink   = "#002b36"
  paper = "#fdf6e3"
  muted = darken(palette.paper, 0.2)
}
`

func TestAnalyzeScheme(t *testing.T) {
	result := Analyze("file:///test.hcl", testSchemeHCL, nil)
	if !result.Scheme {
		t.Fatal("expected scheme document")
	}
	if len(result.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %+v", result.Diagnostics)
	}
	if len(result.Entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(result.Entries))
	}
	if len(result.Colors) != 3 {
		t.Fatalf("got %d colors, want 3", len(result.Colors))
	}

	tests := []struct {
		name  string
		line  uint32
		isRef bool
	}{
		{"ink", 5, false},
		{"paper", 6, false},
		{"muted", 7, true},
	}
	for i, tt := range tests {
		cl := result.Colors[i]
		if cl.Literal != tt.name || cl.Range.Start.Line != tt.line || cl.IsRef != tt.isRef {
			t.Errorf("color %d = %s line %d ref %v, want %s line %d ref %v",
				i, cl.Literal, cl.Range.Start.Line, cl.IsRef, tt.name, tt.line, tt.isRef)
		}
	}
	if result.Colors[0].Range.Start.Character != 10 {
		t.Errorf("ink value starts at %d, want 10", result.Colors[0].Range.Start.Character)
	}
}

func TestAnalyzeSchemeErrors(t *testing.T) {
	tests := []struct {
		name    string
		uri     string
		content string
		wantMsg string
		anyLine bool
	}{
		{
			name:    "syntax error",
			uri:     "file:///bad.hcl",
			content: "palette {\n  ink = \n}\n",
			anyLine: true,
		},
		{
			name:    "missing palette",
			uri:     "file:///empty.hcl",
			content: "meta {\n  name = \"x\"\n}\n",
			wantMsg: "no palette block found",
		},
		{
			name:    "invalid color",
			uri:     "file:///bad.hcl",
			content: "palette {\n  ink = \"#zz\"\n}\n",
			wantMsg: "invalid color",
		},
		{
			name:    "yaml invalid color",
			uri:     "file:///bad.yaml",
			content: "palette:\n  ink: nope\n",
			wantMsg: "invalid color",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Analyze(tt.uri, tt.content, nil)
			if len(result.Diagnostics) == 0 {
				t.Fatal("expected diagnostics")
			}
			d := result.Diagnostics[0]
			if *d.Severity != DiagError {
				t.Errorf("severity = %v", *d.Severity)
			}
			if !tt.anyLine && d.Range != (protocol.Range{}) {
				t.Errorf("range = %+v, want document start", d.Range)
			}
			if tt.wantMsg != "" && !strings.Contains(d.Message, tt.wantMsg) {
				t.Errorf("message = %q, want %q", d.Message, tt.wantMsg)
			}
		})
	}
}

func TestIsSchemeDocument(t *testing.T) {
	tests := map[string]bool{
		"file:///a.css":         false,
		"file:///a.scss":        false,
		"file:///scheme.hcl":    true,
		"file:///scheme.YAML":   true,
		"file:///scheme.yml":    true,
		"untitled:Untitled-1":   false,
		"file:///dir.hcl/x.css": false,
	}
	for uri, want := range tests {
		if got := isSchemeDocument(uri); got != want {
			t.Errorf("isSchemeDocument(%q) = %v, want %v", uri, got, want)
		}
	}
}
