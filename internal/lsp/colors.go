package lsp

import (
	"fmt"
	"math"
	"strings"

	"github.com/jsvensson/recolor/internal/color"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// colorToLSP converts an internal color.Color (uint8 RGB) to a protocol.Color (float32 0.0-1.0).
func colorToLSP(c color.Color) protocol.Color {
	return protocol.Color{
		Red:   float32(c.R) / 255.0,
		Green: float32(c.G) / 255.0,
		Blue:  float32(c.B) / 255.0,
		Alpha: float32(c.A),
	}
}

// colorFromLSP is the inverse of colorToLSP, rounding to the nearest channel value.
func colorFromLSP(c protocol.Color) color.Color {
	channel := func(v float32) int {
		return int(math.Round(float64(v) * 255))
	}
	return color.New(channel(c.Red), channel(c.Green), channel(c.Blue), float64(c.Alpha))
}

// documentColors converts the analysis result's color locations into LSP ColorInformation items.
func documentColors(result *AnalysisResult) []protocol.ColorInformation {
	if result == nil {
		return []protocol.ColorInformation{}
	}

	infos := make([]protocol.ColorInformation, 0, len(result.Colors))
	for _, cl := range result.Colors {
		if !cl.Valid {
			continue
		}
		infos = append(infos, protocol.ColorInformation{
			Range: cl.Range,
			Color: colorToLSP(cl.Color),
		})
	}
	return infos
}

// colorPresentation produces color presentation options for a picked color.
// In stylesheets the picked color is offered as is and snapped to the
// nearest palette color. In scheme files a quoted literal is replaced,
// keeping its quotes, while palette references are left alone.
func colorPresentation(t *target, result *AnalysisResult, params *protocol.ColorPresentationParams) []protocol.ColorPresentation {
	if result == nil || result.lines == nil {
		return []protocol.ColorPresentation{}
	}
	picked := colorFromLSP(params.Color)
	text := result.lines.text(params.Range)

	edit := func(label, newText string) protocol.ColorPresentation {
		return protocol.ColorPresentation{
			Label: label,
			TextEdit: &protocol.TextEdit{
				Range:   params.Range,
				NewText: newText,
			},
		}
	}

	if result.Scheme {
		if !strings.HasPrefix(text, "\"") && !strings.HasPrefix(text, "#") {
			// Don't replace references or function calls with literal values
			return []protocol.ColorPresentation{}
		}
		newText := picked.String()
		if strings.HasPrefix(text, "\"") {
			newText = "\"" + newText + "\""
		}
		return []protocol.ColorPresentation{edit(picked.String(), newText)}
	}

	presentations := []protocol.ColorPresentation{edit(picked.String(), picked.String())}
	if t != nil {
		i, _ := t.matcher.NearestIndex(picked)
		nearest := t.matcher.Palette()[i].WithAlpha(picked.A)
		if nearest != picked {
			label := fmt.Sprintf("%s (%s)", nearest.String(), t.name(i))
			presentations = append(presentations, edit(label, nearest.String()))
		}
	}
	if picked.Opaque() {
		presentations = append(presentations, edit(picked.RGB(), picked.RGB()))
	}
	return presentations
}

// textDocumentDocumentColor handles textDocument/documentColor requests.
func (s *Server) textDocumentDocumentColor(_ *glsp.Context, params *protocol.DocumentColorParams) ([]protocol.ColorInformation, error) {
	uri := string(params.TextDocument.URI)
	result := s.getResult(uri)
	return documentColors(result), nil
}

// textDocumentColorPresentation handles textDocument/colorPresentation requests.
func (s *Server) textDocumentColorPresentation(_ *glsp.Context, params *protocol.ColorPresentationParams) ([]protocol.ColorPresentation, error) {
	uri := string(params.TextDocument.URI)
	return colorPresentation(s.target, s.getResult(uri), params), nil
}
