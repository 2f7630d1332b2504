package lsp

import (
	"fmt"
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// posInRange returns true if pos is within the range [r.Start, r.End).
// The end position is exclusive.
func posInRange(pos protocol.Position, r protocol.Range) bool {
	if pos.Line < r.Start.Line || pos.Line > r.End.Line {
		return false
	}
	if pos.Line == r.Start.Line && pos.Character < r.Start.Character {
		return false
	}
	if pos.Line == r.End.Line && pos.Character >= r.End.Character {
		return false
	}
	return true
}

// colorAt returns the color location containing pos, or nil.
func (r *AnalysisResult) colorAt(pos protocol.Position) *ColorLocation {
	if r == nil {
		return nil
	}
	for i := range r.Colors {
		if posInRange(pos, r.Colors[i].Range) {
			return &r.Colors[i]
		}
	}
	return nil
}

// hover produces a Hover response for the given cursor position.
// Stylesheet colors show their value, nearest palette color and the
// replacement a recolor run would write. Scheme palette entries show their
// resolved value.
// Returns nil if no color is found at the position.
func hover(t *target, result *AnalysisResult, pos protocol.Position) *protocol.Hover {
	cl := result.colorAt(pos)
	if cl == nil {
		return nil
	}

	var md strings.Builder
	switch {
	case result.Scheme && cl.IsRef:
		fmt.Fprintf(&md, "**%s**\n\n`%s` · `%s`", cl.Literal, cl.Color.String(), cl.Color.RGB())
	case result.Scheme:
		fmt.Fprintf(&md, "`%s` · `%s`", cl.Color.String(), cl.Color.RGB())
	case !cl.Valid:
		fmt.Fprintf(&md, "**%s**\n\nUnrecognized color, treated as black", cl.Literal)
	default:
		fmt.Fprintf(&md, "**%s**\n\n`%s` · `%s`", cl.Literal, cl.Color.String(), cl.Color.RGB())
		if cl.Selector != "" {
			fmt.Fprintf(&md, "\n\nin `%s`", cl.Selector)
		}
		if t == nil || cl.Index < 0 {
			break
		}
		nearest := t.matcher.Palette()[cl.Index]
		if cl.InPalette() {
			fmt.Fprintf(&md, "\n\nIn %s as `%s`", t.label(), t.name(cl.Index))
		} else {
			fmt.Fprintf(&md, "\n\nNearest in %s: `%s` %s · ΔE %.2f (%s)",
				t.label(), nearest.Hex(), t.name(cl.Index), cl.Distance, t.matcher.Metric())
		}
		if cl.Recolors() {
			fmt.Fprintf(&md, "\n\nRecolors to `%s`", cl.Replacement)
		}
	}

	rng := cl.Range
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: md.String(),
		},
		Range: &rng,
	}
}

// textDocumentHover handles textDocument/hover requests.
func (s *Server) textDocumentHover(_ *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	result := s.getResult(string(params.TextDocument.URI))
	if result == nil {
		return nil, nil
	}
	return hover(s.target, result, params.Position), nil
}
