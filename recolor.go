// Package recolor remaps the color literals of a stylesheet onto the
// nearest colors of a target palette.
package recolor

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/jsvensson/recolor/internal/color"
	"github.com/jsvensson/recolor/internal/palette"
	"github.com/jsvensson/recolor/internal/parser"
	"github.com/jsvensson/recolor/internal/rewrite"
	"github.com/jsvensson/recolor/internal/scan"
)

//go:embed schemes/*.hcl
var builtinSchemes embed.FS

// Scheme is a fully-resolved target palette, ready for recoloring.
type Scheme struct {
	Meta   Meta
	Names  []string      // palette entry names, parallel to Target
	Target []color.Color // in file order
	Source []string      // literals planned in addition to the scanned ones
	Invert map[string]string
	Metric color.Metric
}

// Meta holds scheme metadata.
type Meta struct {
	Name       string
	Author     string
	Appearance string
	URL        string
}

// TargetText returns the serialized palette colors.
func (s *Scheme) TargetText() []string {
	out := make([]string, len(s.Target))
	for i, c := range s.Target {
		out[i] = c.String()
	}
	return out
}

// Load resolves a scheme by file path, falling back to the builtin scheme of
// that name when no such file exists.
func Load(nameOrPath string) (*Scheme, error) {
	if _, err := os.Stat(nameOrPath); err == nil {
		raw, err := parser.Parse(nameOrPath)
		if err != nil {
			return nil, fmt.Errorf("loading scheme: %w", err)
		}
		return newScheme(raw)
	}

	src, err := builtinSchemes.ReadFile(path.Join("schemes", nameOrPath+".hcl"))
	if err != nil {
		return nil, fmt.Errorf("loading scheme: no file or builtin scheme named %q", nameOrPath)
	}
	raw, err := parser.ParseSource(src, nameOrPath+".hcl")
	if err != nil {
		return nil, fmt.Errorf("loading builtin scheme %s: %w", nameOrPath, err)
	}
	return newScheme(raw)
}

// Builtins returns the names of the embedded schemes, sorted.
func Builtins() []string {
	entries, err := builtinSchemes.ReadDir("schemes")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".hcl"))
	}
	sort.Strings(names)
	return names
}

func newScheme(raw *parser.ParseResult) (*Scheme, error) {
	metric, err := color.ParseMetric(raw.Metric)
	if err != nil {
		return nil, fmt.Errorf("loading scheme: %w", err)
	}

	s := &Scheme{
		Meta: Meta{
			Name:       raw.Meta.Name,
			Author:     raw.Meta.Author,
			Appearance: raw.Meta.Appearance,
			URL:        raw.Meta.URL,
		},
		Target: raw.Colors(),
		Source: raw.Source,
		Invert: raw.Invert,
		Metric: metric,
	}
	for _, e := range raw.Palette {
		s.Names = append(s.Names, e.Name)
	}
	return s, nil
}

// Options tune a single Recolor run. The zero value rewrites by byte range
// using the scheme's metric and inversion table.
type Options struct {
	Mode     rewrite.Mode
	Metric   color.Metric // overrides the scheme's metric when set
	NoInvert bool
}

// Result is the outcome of a Recolor run.
type Result struct {
	Text  string
	Sites []scan.Site
	Rules []rewrite.Rule
}

// Changed reports whether the rewritten text differs from the input.
func (r *Result) Changed(original string) bool {
	return r.Text != original
}

// Recolor scans css for color literals, plans one rule per distinct literal
// and applies the rules. It fails before looking at css if the scheme has an
// empty palette.
func Recolor(css string, s *Scheme, opts Options) (*Result, error) {
	if s == nil || len(s.Target) == 0 {
		return nil, palette.ErrEmptyPalette
	}

	mode, err := rewrite.ParseMode(string(opts.Mode))
	if err != nil {
		return nil, err
	}

	metric := s.Metric
	if opts.Metric != "" {
		metric = opts.Metric
	}
	m, err := palette.New(s.Target, metric)
	if err != nil {
		return nil, err
	}

	var inv *palette.Inversion
	if !opts.NoInvert && len(s.Invert) > 0 {
		inv = palette.NewInversion(s.Invert)
	}

	sites := scan.Scan(css)
	literals := append(scan.Literals(sites), s.Source...)
	rules := rewrite.Plan(literals, m, inv)

	return &Result{
		Text:  rewrite.Run(css, sites, rules, mode),
		Sites: sites,
		Rules: rules,
	}, nil
}

// IsEmptyPalette reports whether err stems from a scheme without colors.
func IsEmptyPalette(err error) bool {
	return errors.Is(err, palette.ErrEmptyPalette)
}
