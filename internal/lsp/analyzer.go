package lsp

import (
	"fmt"
	"path"
	"sort"
	"strings"
	"unicode/utf16"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/jsvensson/recolor/internal/color"
	"github.com/jsvensson/recolor/internal/parser"
	"github.com/jsvensson/recolor/internal/rewrite"
	"github.com/jsvensson/recolor/internal/scan"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

const diagSource = "recolor"

var (
	DiagError   = protocol.DiagnosticSeverityError
	DiagWarning = protocol.DiagnosticSeverityWarning
	DiagInfo    = protocol.DiagnosticSeverityInformation
)

// AnalysisResult holds all information produced by analyzing a document.
type AnalysisResult struct {
	Diagnostics []protocol.Diagnostic
	Colors      []ColorLocation // ordered by position
	Entries     []parser.Entry  // palette entries, scheme documents only
	Scheme      bool
	hcl         bool
	lines       *lineIndex
}

// ColorLocation records a color literal at a specific source position.
type ColorLocation struct {
	Range    protocol.Range
	Span     scan.Span
	Literal  string
	Selector string
	Color    color.Color
	Valid    bool // false if the literal is not a recognized color

	// Palette match, stylesheets only.
	Index       int
	Distance    float64
	Replacement string // text a recolor run writes in place of Literal

	IsRef bool // scheme documents: the value is a palette reference
}

// InPalette reports whether the literal already is a palette color.
func (cl ColorLocation) InPalette() bool {
	return cl.Valid && cl.Distance < 1e-9
}

// Recolors reports whether a recolor run changes the literal. Hex case
// differences do not count.
func (cl ColorLocation) Recolors() bool {
	return cl.Replacement != "" && !strings.EqualFold(cl.Replacement, cl.Literal)
}

// lineIndex maps byte offsets to LSP positions, counting characters in
// UTF-16 code units.
type lineIndex struct {
	content string
	starts  []int
}

func newLineIndex(content string) *lineIndex {
	starts := []int{0}
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &lineIndex{content: content, starts: starts}
}

func (li *lineIndex) position(offset int) protocol.Position {
	offset = max(0, min(offset, len(li.content)))
	line := sort.SearchInts(li.starts, offset+1) - 1
	char := 0
	for _, r := range li.content[li.starts[line]:offset] {
		char += max(1, utf16.RuneLen(r))
	}
	return protocol.Position{Line: uint32(line), Character: uint32(char)}
}

func (li *lineIndex) span(sp scan.Span) protocol.Range {
	return protocol.Range{Start: li.position(sp.Start), End: li.position(sp.End)}
}

// offset is the inverse of position. Positions past the end of a line
// clamp to the line end.
func (li *lineIndex) offset(pos protocol.Position) int {
	if int(pos.Line) >= len(li.starts) {
		return len(li.content)
	}
	start := li.starts[pos.Line]
	end := len(li.content)
	if int(pos.Line)+1 < len(li.starts) {
		end = li.starts[pos.Line+1] - 1
	}
	char := 0
	for i, r := range li.content[start:end] {
		if char >= int(pos.Character) {
			return start + i
		}
		char += max(1, utf16.RuneLen(r))
	}
	return end
}

// text returns the source text covered by r.
func (li *lineIndex) text(r protocol.Range) string {
	start, end := li.offset(r.Start), li.offset(r.End)
	if end < start {
		return ""
	}
	return li.content[start:end]
}

func (li *lineIndex) end() protocol.Position {
	return li.position(len(li.content))
}

// hclPosToLSP converts an HCL position to an LSP position.
// HCL positions are 1-based; LSP positions are 0-based.
func hclPosToLSP(pos hcl.Pos) protocol.Position {
	return protocol.Position{
		Line:      uint32(pos.Line - 1),
		Character: uint32(pos.Column - 1),
	}
}

// hclRangeToLSP converts an HCL range to an LSP range.
func hclRangeToLSP(r hcl.Range) protocol.Range {
	return protocol.Range{
		Start: hclPosToLSP(r.Start),
		End:   hclPosToLSP(r.End),
	}
}

// isSchemeDocument reports whether uri names a scheme file rather than a
// stylesheet.
func isSchemeDocument(uri string) bool {
	switch strings.ToLower(path.Ext(uri)) {
	case ".hcl", ".yaml", ".yml":
		return true
	}
	return false
}

// Analyze produces diagnostics and color locations for a document. Scheme
// files are validated; stylesheets are scanned for color sites and each
// site is matched against t.
func Analyze(uri, content string, t *target) *AnalysisResult {
	if isSchemeDocument(uri) {
		return analyzeScheme(uri, content)
	}
	return analyzeStylesheet(content, t)
}

func analyzeStylesheet(content string, t *target) *AnalysisResult {
	result := &AnalysisResult{lines: newLineIndex(content)}

	sites := scan.Scan(content)
	if len(sites) == 0 {
		return result
	}

	replacement := make(map[string]string)
	if t != nil {
		for _, rule := range rewrite.PlanSites(sites, t.matcher, t.inversion()) {
			replacement[rule.From] = rule.To
		}
	}

	for _, site := range sites {
		c, ok := color.Lookup(site.Literal)
		for _, sp := range site.Spans {
			cl := ColorLocation{
				Range:       result.lines.span(sp),
				Span:        sp,
				Literal:     site.Literal,
				Selector:    site.Selector,
				Color:       c,
				Valid:       ok,
				Index:       -1,
				Replacement: replacement[site.Literal],
			}
			if ok && t != nil {
				cl.Index, cl.Distance = t.matcher.NearestIndex(c)
			}
			result.Colors = append(result.Colors, cl)
		}
	}
	sort.Slice(result.Colors, func(i, j int) bool {
		return result.Colors[i].Span.Start < result.Colors[j].Span.Start
	})

	for _, cl := range result.Colors {
		switch {
		case !cl.Valid:
			result.addDiagnostic(cl.Range, DiagWarning,
				fmt.Sprintf("unrecognized color %q is treated as black", cl.Literal))
		case t != nil && !cl.InPalette():
			nearest := t.matcher.Palette()[cl.Index]
			result.addDiagnostic(cl.Range, DiagInfo,
				fmt.Sprintf("%s is not in the %s palette; nearest is %s (%s, ΔE %.2f)",
					cl.Literal, t.label(), nearest.Hex(), t.name(cl.Index), cl.Distance))
		}
	}
	return result
}

// analyzeScheme validates a scheme file. HCL syntax errors carry their
// source range; errors found while resolving the scheme are reported at the
// top of the document.
func analyzeScheme(uri, content string) *AnalysisResult {
	result := &AnalysisResult{
		Scheme: true,
		hcl:    strings.ToLower(path.Ext(uri)) == ".hcl",
		lines:  newLineIndex(content),
	}
	filename := path.Base(uri)

	var body *hclsyntax.Body
	if result.hcl {
		file, diags := hclsyntax.ParseConfig([]byte(content), filename, hcl.Pos{Line: 1, Column: 1})
		if diags.HasErrors() {
			for _, d := range diags {
				result.Diagnostics = append(result.Diagnostics, hclDiagToLSP(d))
			}
			// Cannot proceed with semantic analysis if syntax is broken
			return result
		}
		body, _ = file.Body.(*hclsyntax.Body)
	}

	parsed, err := parser.ParseSource([]byte(content), filename)
	if err != nil {
		result.addDiagnostic(protocol.Range{}, DiagError, err.Error())
		return result
	}
	result.Entries = parsed.Palette

	if body != nil {
		result.locatePaletteColors(body, parsed.Palette)
	}
	return result
}

// locatePaletteColors records the value range of each palette attribute.
func (r *AnalysisResult) locatePaletteColors(body *hclsyntax.Body, entries []parser.Entry) {
	byName := make(map[string]color.Color, len(entries))
	for _, e := range entries {
		byName[e.Name] = e.Color
	}

	for _, block := range body.Blocks {
		if block.Type != "palette" {
			continue
		}
		for name, attr := range block.Body.Attributes {
			c, ok := byName[name]
			if !ok {
				continue
			}
			rng := attr.Expr.Range()
			r.Colors = append(r.Colors, ColorLocation{
				Range:   hclRangeToLSP(rng),
				Span:    scan.Span{Start: rng.Start.Byte, End: rng.End.Byte},
				Literal: name,
				Color:   c,
				Valid:   true,
				Index:   -1,
				IsRef:   isReferenceExpr(attr.Expr),
			})
		}
	}
	sort.Slice(r.Colors, func(i, j int) bool {
		return r.Colors[i].Span.Start < r.Colors[j].Span.Start
	})
}

// isReferenceExpr checks if an expression refers to another palette entry
// rather than being a string literal.
func isReferenceExpr(expr hclsyntax.Expression) bool {
	switch expr.(type) {
	case *hclsyntax.TemplateExpr, *hclsyntax.LiteralValueExpr:
		return false
	}
	return true
}

// hclDiagToLSP converts an HCL diagnostic to an LSP diagnostic.
func hclDiagToLSP(d *hcl.Diagnostic) protocol.Diagnostic {
	sev := DiagError
	if d.Severity == hcl.DiagWarning {
		sev = DiagWarning
	}

	diag := protocol.Diagnostic{
		Severity: &sev,
		Message:  d.Summary,
		Source:   strPtr(diagSource),
	}

	if d.Detail != "" {
		diag.Message = d.Summary + ": " + d.Detail
	}

	if d.Subject != nil {
		diag.Range = hclRangeToLSP(*d.Subject)
	}

	return diag
}

func (r *AnalysisResult) addDiagnostic(rng protocol.Range, sev protocol.DiagnosticSeverity, msg string) {
	r.Diagnostics = append(r.Diagnostics, protocol.Diagnostic{
		Range:    rng,
		Severity: &sev,
		Source:   strPtr(diagSource),
		Message:  msg,
	})
}

func strPtr(s string) *string {
	return &s
}
