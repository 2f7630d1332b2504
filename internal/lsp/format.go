package lsp

import (
	"path"

	schemefmt "github.com/jsvensson/recolor/internal/format"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// formatEdits returns a single edit replacing a scheme document with its
// canonical form, or nil if it is already formatted. Stylesheets are not
// formatted.
func formatEdits(uri, content string) ([]protocol.TextEdit, error) {
	if !isSchemeDocument(uri) {
		return nil, nil
	}
	formatted, err := schemefmt.File(path.Base(uri), content)
	if err != nil {
		return nil, err
	}
	if formatted == content {
		return nil, nil
	}
	return []protocol.TextEdit{{
		Range: protocol.Range{
			Start: protocol.Position{},
			End:   newLineIndex(content).end(),
		},
		NewText: formatted,
	}}, nil
}

// textDocumentFormatting handles textDocument/formatting requests.
func (s *Server) textDocumentFormatting(_ *glsp.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	uri := string(params.TextDocument.URI)
	doc, ok := s.docs.Get(uri)
	if !ok {
		return nil, nil
	}
	return formatEdits(uri, doc.Content)
}
