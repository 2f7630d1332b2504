package lsp

import (
	"fmt"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func posBefore(a, b protocol.Position) bool {
	return a.Line < b.Line || (a.Line == b.Line && a.Character < b.Character)
}

// rangesTouch reports whether two ranges overlap or meet.
func rangesTouch(a, b protocol.Range) bool {
	return !posBefore(a.End, b.Start) && !posBefore(b.End, a.Start)
}

// codeActions offers a quick fix for every off-palette color in rng and a
// source action recoloring the whole stylesheet.
func codeActions(t *target, uri string, result *AnalysisResult, rng protocol.Range) []protocol.CodeAction {
	if t == nil || result == nil || result.Scheme {
		return nil
	}

	quickFix := protocol.CodeActionKindQuickFix
	source := protocol.CodeActionKindSource
	preferred := true

	var actions []protocol.CodeAction
	var all []protocol.TextEdit
	for _, cl := range result.Colors {
		if !cl.Valid || !cl.Recolors() {
			continue
		}
		edit := protocol.TextEdit{Range: cl.Range, NewText: cl.Replacement}
		all = append(all, edit)

		if !rangesTouch(cl.Range, rng) {
			continue
		}
		actions = append(actions, protocol.CodeAction{
			Title:       fmt.Sprintf("Replace %s with %s (%s)", cl.Literal, cl.Replacement, t.name(cl.Index)),
			Kind:        &quickFix,
			IsPreferred: &preferred,
			Edit: &protocol.WorkspaceEdit{
				Changes: map[protocol.DocumentUri][]protocol.TextEdit{uri: {edit}},
			},
		})
	}

	if len(all) > 0 {
		actions = append(actions, protocol.CodeAction{
			Title: fmt.Sprintf("Recolor document to %s", t.label()),
			Kind:  &source,
			Edit: &protocol.WorkspaceEdit{
				Changes: map[protocol.DocumentUri][]protocol.TextEdit{uri: all},
			},
		})
	}
	return actions
}

// textDocumentCodeAction handles textDocument/codeAction requests.
func (s *Server) textDocumentCodeAction(_ *glsp.Context, params *protocol.CodeActionParams) (any, error) {
	uri := string(params.TextDocument.URI)
	result := s.getResult(uri)
	if result == nil {
		return nil, nil
	}
	return codeActions(s.target, uri, result, params.Range), nil
}
