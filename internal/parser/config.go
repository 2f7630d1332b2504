package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/jsvensson/recolor/internal/color"
	"github.com/zclconf/go-cty/cty"
)

// ParseResult holds the raw parsed scheme data.
type ParseResult struct {
	Meta    Meta
	Palette []Entry
	Metric  string
	Source  []string
	Invert  map[string]string
}

// Entry is one named palette color, in file order.
type Entry struct {
	Name  string
	Color color.Color
}

// Meta holds scheme metadata.
type Meta struct {
	Name       string `hcl:"name,optional" yaml:"name"`
	Author     string `hcl:"author,optional" yaml:"author"`
	Appearance string `hcl:"appearance,optional" yaml:"appearance"`
	URL        string `hcl:"url,optional" yaml:"url"`
}

// PaletteBlock wraps the palette block for gohcl decoding.
type PaletteBlock struct {
	Entries hcl.Body `hcl:",remain"`
}

// RawConfig captures the palette block first (no EvalContext needed).
type RawConfig struct {
	Palette *PaletteBlock `hcl:"palette,block"`
	Remain  hcl.Body      `hcl:",remain"`
}

// ResolvedConfig decodes everything that may reference the palette.
type ResolvedConfig struct {
	Meta   *Meta             `hcl:"meta,block"`
	Metric string            `hcl:"metric,optional"`
	Source []string          `hcl:"source,optional"`
	Invert map[string]string `hcl:"invert,optional"`
}

// Parse reads a scheme file. Files ending in .yaml or .yml are read as YAML,
// everything else as HCL.
func Parse(path string) (*ParseResult, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scheme file: %w", err)
	}
	return ParseSource(src, path)
}

// ParseSource parses scheme content; filename selects the format and is
// used in diagnostics.
func ParseSource(src []byte, filename string) (*ParseResult, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return parseYAML(src)
	default:
		return parseHCL(src, filename)
	}
}

func parseHCL(src []byte, filename string) (*ParseResult, error) {
	file, diags := hclsyntax.ParseConfig(src, filename, hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing HCL: %s", diags.Error())
	}

	// First pass: extract palette (literal values and earlier entries only)
	var raw RawConfig
	if diags := gohcl.DecodeBody(file.Body, nil, &raw); diags.HasErrors() {
		return nil, fmt.Errorf("decoding palette: %s", diags.Error())
	}
	if raw.Palette == nil {
		return nil, fmt.Errorf("no palette block found")
	}

	paletteBody, ok := raw.Palette.Entries.(*hclsyntax.Body)
	if !ok {
		return nil, fmt.Errorf("palette block is not an hclsyntax.Body")
	}

	entries, err := parsePaletteBody(paletteBody)
	if err != nil {
		return nil, fmt.Errorf("parsing palette: %w", err)
	}

	// Second pass: decode blocks that reference palette
	var resolved ResolvedConfig
	if diags := gohcl.DecodeBody(raw.Remain, buildEvalContext(entries), &resolved); diags.HasErrors() {
		return nil, fmt.Errorf("decoding: %s", diags.Error())
	}

	result := &ParseResult{
		Palette: entries,
		Metric:  resolved.Metric,
		Source:  resolved.Source,
		Invert:  resolved.Invert,
	}
	if resolved.Meta != nil {
		result.Meta = *resolved.Meta
	}
	if err := validate(result); err != nil {
		return nil, err
	}
	return result, nil
}

// parsePaletteBody evaluates palette attributes in source order. Each entry
// may reference the entries above it as palette.<name>.
func parsePaletteBody(body *hclsyntax.Body) ([]Entry, error) {
	if len(body.Blocks) > 0 {
		block := body.Blocks[0]
		return nil, fmt.Errorf("unexpected block %q: palette entries must be attributes", block.Type)
	}

	attrs := make([]*hclsyntax.Attribute, 0, len(body.Attributes))
	for _, attr := range body.Attributes {
		attrs = append(attrs, attr)
	}
	sort.Slice(attrs, func(i, j int) bool {
		return attrs[i].SrcRange.Start.Byte < attrs[j].SrcRange.Start.Byte
	})

	entries := make([]Entry, 0, len(attrs))
	for _, attr := range attrs {
		val, diags := attr.Expr.Value(buildEvalContext(entries))
		if diags.HasErrors() {
			return nil, fmt.Errorf("evaluating palette.%s: %s", attr.Name, diags.Error())
		}
		if val.IsNull() || !val.Type().Equals(cty.String) {
			return nil, fmt.Errorf("palette.%s: expected a color string", attr.Name)
		}
		c, err := parseColor(val.AsString())
		if err != nil {
			return nil, fmt.Errorf("palette.%s: %w", attr.Name, err)
		}
		entries = append(entries, Entry{Name: attr.Name, Color: c})
	}
	return entries, nil
}

// parseColor is color.Parse for configuration: unrecognized literals are
// reported instead of falling back to black.
func parseColor(s string) (color.Color, error) {
	c, ok := color.Lookup(s)
	if !ok {
		return color.Color{}, fmt.Errorf("invalid color %q", s)
	}
	return c, nil
}

// validate checks the parts of a scheme that do not depend on the format.
func validate(r *ParseResult) error {
	if len(r.Palette) == 0 {
		return fmt.Errorf("palette is empty")
	}
	if _, err := color.ParseMetric(r.Metric); err != nil {
		return err
	}
	for _, s := range r.Source {
		if _, err := parseColor(s); err != nil {
			return fmt.Errorf("source: %w", err)
		}
	}
	for from, to := range r.Invert {
		if _, err := parseColor(from); err != nil {
			return fmt.Errorf("invert: %w", err)
		}
		if _, err := parseColor(to); err != nil {
			return fmt.Errorf("invert[%q]: %w", from, err)
		}
	}
	return nil
}

// Colors returns the palette colors in file order.
func (r *ParseResult) Colors() []color.Color {
	colors := make([]color.Color, len(r.Palette))
	for i, e := range r.Palette {
		colors[i] = e.Color
	}
	return colors
}
