package scan

import (
	"reflect"
	"testing"
)

func literals(sites []Site) []string {
	out := make([]string, 0, len(sites))
	for _, s := range sites {
		out = append(out, s.Literal)
	}
	return out
}

func TestScanLiterals(t *testing.T) {
	tests := []struct {
		name string
		css  string
		want []string
	}{
		{
			name: "keyword ignores quoted url",
			css:  `a { color: red; background: url("http://x/#fff"); }`,
			want: []string{"red"},
		},
		{
			name: "commented declaration excluded",
			css:  `/* color: #fff; */ b { color: #000; }`,
			want: []string{"#000"},
		},
		{
			name: "hex lengths",
			css:  `a { color: #abc; background: #abcd; border-color: #aabbcc; outline-color: #aabbccdd }`,
			want: []string{"#abc", "#abcd", "#aabbcc", "#aabbccdd"},
		},
		{
			name: "invalid hex lengths",
			css:  `a { color: #ab; background: #abcde; border-color: #abcdefg }`,
			want: nil,
		},
		{
			name: "functional notations",
			css:  `a { color: rgb(1, 2, 3); background: RGBA(0,0,0,.5); border-color: hsl(120, 100%, 50%); fill: hsla(0, 0%, 0%, 0.1) }`,
			want: []string{"rgb(1, 2, 3)", "RGBA(0,0,0,.5)", "hsl(120, 100%, 50%)", "hsla(0, 0%, 0%, 0.1)"},
		},
		{
			name: "colors inside other functions",
			css:  `a { background: linear-gradient(to right, #fff 0%, rgba(0, 0, 0, 0.5) 100%) }`,
			want: []string{"#fff", "rgba(0, 0, 0, 0.5)"},
		},
		{
			name: "nested parentheses are not a color literal",
			css:  `a { color: rgb(calc(1 + 2), 0, 0) }`,
			want: nil,
		},
		{
			name: "selectors never produce sites",
			css:  `#fff, .red, a[title="#000"] { margin: 0 }`,
			want: nil,
		},
		{
			name: "single quoted string with escaped quote",
			css:  `a { content: 'it\'s #fff; red'; color: blue }`,
			want: []string{"blue"},
		},
		{
			name: "semicolon inside string is not a boundary",
			css:  `a { font-family: "x;#fff"; color: #123 }`,
			want: []string{"#123"},
		},
		{
			name: "unquoted url body skipped",
			css:  `a { background: url(images/red.png) no-repeat, #eee }`,
			want: []string{"#eee"},
		},
		{
			name: "keyword must be a whole identifier",
			css:  `a { color: redish; transition-timing-function: ease-in; border: 1px solid dark-red }`,
			want: nil,
		},
		{
			name: "font family names are not colors",
			css:  `a { font-family: Red Hat Display, sans-serif; color: tan }`,
			want: []string{"tan"},
		},
		{
			name: "math function named like a color is not a color",
			css:  `a { rotate: tan(45deg) }`,
			want: nil,
		},
		{
			name: "numbers with units are skipped",
			css:  `a { width: 10tan; color: Navy }`,
			want: []string{"Navy"},
		},
		{
			name: "comment inside value",
			css:  `a { color: /* red */ blue }`,
			want: []string{"blue"},
		},
		{
			name: "text outside blocks ignored",
			css:  `@import url("theme.css"); @charset "utf-8"; a { color: white }`,
			want: []string{"white"},
		},
		{
			name: "nested media block",
			css:  `@media screen { a { color: #111 } b { color: #222 } }`,
			want: []string{"#111", "#222"},
		},
		{
			name: "unterminated block",
			css:  `a { color: #fafafa`,
			want: []string{"#fafafa"},
		},
		{
			name: "transparent",
			css:  `a { background-color: transparent }`,
			want: []string{"transparent"},
		},
		{
			name: "declaration without colon",
			css:  `a { #fff; color: #000 }`,
			want: []string{"#000"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Scan(tt.css)
			gotLits := literals(got)
			if len(gotLits) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(gotLits, tt.want) {
				t.Errorf("Scan(%q) literals = %q, want %q", tt.css, gotLits, tt.want)
			}
		})
	}
}

func TestScanSiteFields(t *testing.T) {
	css := "/* header */\n.btn:hover , .x { border: 1px solid #fff; }"
	sites := Scan(css)
	if len(sites) != 1 {
		t.Fatalf("got %d sites, want 1", len(sites))
	}
	s := sites[0]
	if s.Selector != ".btn:hover , .x" {
		t.Errorf("Selector = %q", s.Selector)
	}
	if s.Declaration != "border: 1px solid #fff" {
		t.Errorf("Declaration = %q", s.Declaration)
	}
	if len(s.Spans) != 1 || css[s.Spans[0].Start:s.Spans[0].End] != "#fff" {
		t.Errorf("Spans = %+v", s.Spans)
	}
}

func TestScanRepeatedLiteralInDeclaration(t *testing.T) {
	css := `a { border-color: red blue red }`
	sites := Scan(css)
	if got := literals(sites); !reflect.DeepEqual(got, []string{"red", "blue"}) {
		t.Fatalf("literals = %q", got)
	}
	if len(sites[0].Spans) != 2 {
		t.Fatalf("red spans = %+v, want 2", sites[0].Spans)
	}
	for _, sp := range sites[0].Spans {
		if css[sp.Start:sp.End] != "red" {
			t.Errorf("span %+v covers %q", sp, css[sp.Start:sp.End])
		}
	}
}

func TestScanSameLiteralAcrossDeclarations(t *testing.T) {
	sites := Scan(`a { color: #fff } b { background: #fff }`)
	if len(sites) != 2 {
		t.Fatalf("got %d sites, want one per declaration", len(sites))
	}
	if sites[0].Selector != "a" || sites[1].Selector != "b" {
		t.Errorf("selectors = %q, %q", sites[0].Selector, sites[1].Selector)
	}
	if got := Literals(sites); !reflect.DeepEqual(got, []string{"#fff"}) {
		t.Errorf("Literals = %q", got)
	}
}

func TestStripComments(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{" a ", "a"},
		{"/* x */ a /* y */", "a"},
		{`a[title="/* keep */"]`, `a[title="/* keep */"]`},
		{"a /* unterminated", "a"},
	}
	for _, tt := range tests {
		if got := StripComments(tt.in); got != tt.want {
			t.Errorf("StripComments(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
