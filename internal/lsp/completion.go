package lsp

import (
	"fmt"
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// topLevelBlocks are the valid top-level entries of an HCL scheme file.
var topLevelBlocks = []string{"meta", "palette", "metric", "source", "invert"}

// complete produces completion items given an analysis result and cursor
// position. This is the core logic, decoupled from the LSP protocol handler
// for testability.
func complete(t *target, result *AnalysisResult, pos protocol.Position) []protocol.CompletionItem {
	if result == nil || result.lines == nil {
		return nil
	}
	offset := result.lines.offset(pos)
	if result.Scheme {
		return completeScheme(result, offset)
	}
	if t == nil || !isValuePosition(result.lines.content, offset) {
		return nil
	}
	return paletteCompletions(t, result.lines, offset, pos)
}

// isValuePosition reports whether offset is inside a declaration value of a
// stylesheet: inside a block, after the property's colon.
func isValuePosition(content string, offset int) bool {
	depth := strings.Count(content[:offset], "{") - strings.Count(content[:offset], "}")
	if depth <= 0 {
		return false
	}
	i := strings.LastIndexAny(content[:offset], ":;{}")
	return i >= 0 && content[i] == ':'
}

// paletteCompletions offers every palette color, replacing a partly typed
// hex literal before the cursor.
func paletteCompletions(t *target, li *lineIndex, offset int, pos protocol.Position) []protocol.CompletionItem {
	start := offset
	for start > 0 && isHexDigit(li.content[start-1]) {
		start--
	}
	if start > 0 && li.content[start-1] == '#' {
		start--
	}
	replace := protocol.Range{Start: li.position(start), End: pos}

	colors := t.matcher.Palette()
	items := make([]protocol.CompletionItem, 0, len(colors))
	for i, c := range colors {
		hex := c.Hex()
		detail := t.name(i)
		sortText := fmt.Sprintf("%04d", i)
		items = append(items, protocol.CompletionItem{
			Label:         hex,
			Kind:          completionKindPtr(protocol.CompletionItemKindColor),
			Detail:        &detail,
			Documentation: c.RGB(),
			SortText:      &sortText,
			TextEdit: protocol.TextEdit{
				Range:   replace,
				NewText: hex,
			},
		})
	}
	return items
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// completeScheme completes palette references, functions and top-level
// entries in HCL scheme files.
func completeScheme(result *AnalysisResult, offset int) []protocol.CompletionItem {
	content := result.lines.content
	lineStart := strings.LastIndexByte(content[:offset], '\n') + 1
	textBeforeCursor := content[lineStart:offset]

	if items := tryPaletteCompletion(result, textBeforeCursor); items != nil {
		return items
	}

	// Check for value position (after "="): offer functions and palette
	if isAssignmentValue(textBeforeCursor) {
		return valueCompletions()
	}

	depth := strings.Count(content[:offset], "{") - strings.Count(content[:offset], "}")
	if result.hcl && depth == 0 {
		return topLevelCompletions()
	}
	return nil
}

// tryPaletteCompletion checks if the text before the cursor ends with a
// palette reference prefix ("palette." or "palette.ba") and returns the
// palette entry names.
func tryPaletteCompletion(result *AnalysisResult, textBeforeCursor string) []protocol.CompletionItem {
	if len(result.Entries) == 0 {
		return nil
	}

	idx := strings.LastIndex(textBeforeCursor, "palette.")
	if idx == -1 {
		return nil
	}
	partial := textBeforeCursor[idx+len("palette."):]
	if strings.ContainsAny(partial, " \t.,()") {
		return nil
	}

	items := make([]protocol.CompletionItem, 0, len(result.Entries))
	for _, e := range result.Entries {
		detail := e.Color.String()
		items = append(items, protocol.CompletionItem{
			Label:  e.Name,
			Kind:   completionKindPtr(protocol.CompletionItemKindColor),
			Detail: &detail,
		})
	}
	return items
}

// isAssignmentValue returns true if the text before the cursor indicates we are
// at a value position (after an "=" sign with nothing meaningful following it).
func isAssignmentValue(textBeforeCursor string) bool {
	trimmed := strings.TrimSpace(textBeforeCursor)
	eqIdx := strings.LastIndex(trimmed, "=")
	if eqIdx == -1 {
		return false
	}
	afterEq := strings.TrimSpace(trimmed[eqIdx+1:])
	return afterEq == ""
}

// valueCompletions returns completion items for a value position, including
// function snippets and a palette reference trigger.
func valueCompletions() []protocol.CompletionItem {
	snippetFormat := protocol.InsertTextFormatSnippet

	brightenSnippet := "brighten(${1:color}, ${2:0.1})"
	darkenSnippet := "darken(${1:color}, ${2:0.1})"
	alphaSnippet := "alpha(${1:color}, ${2:0.5})"
	paletteSnippet := "palette."

	return []protocol.CompletionItem{
		{
			Label:            "brighten",
			Kind:             completionKindPtr(protocol.CompletionItemKindFunction),
			Detail:           strPtr("brighten(color, percentage)"),
			InsertText:       &brightenSnippet,
			InsertTextFormat: &snippetFormat,
		},
		{
			Label:            "darken",
			Kind:             completionKindPtr(protocol.CompletionItemKindFunction),
			Detail:           strPtr("darken(color, percentage)"),
			InsertText:       &darkenSnippet,
			InsertTextFormat: &snippetFormat,
		},
		{
			Label:            "alpha",
			Kind:             completionKindPtr(protocol.CompletionItemKindFunction),
			Detail:           strPtr("alpha(color, alpha)"),
			InsertText:       &alphaSnippet,
			InsertTextFormat: &snippetFormat,
		},
		{
			Label:      "palette",
			Kind:       completionKindPtr(protocol.CompletionItemKindVariable),
			Detail:     strPtr("palette reference"),
			InsertText: &paletteSnippet,
		},
	}
}

func topLevelCompletions() []protocol.CompletionItem {
	items := make([]protocol.CompletionItem, 0, len(topLevelBlocks))
	for _, name := range topLevelBlocks {
		kind := protocol.CompletionItemKindModule
		if name == "metric" || name == "source" || name == "invert" {
			kind = protocol.CompletionItemKindProperty
		}
		items = append(items, protocol.CompletionItem{
			Label: name,
			Kind:  completionKindPtr(kind),
		})
	}
	return items
}

func completionKindPtr(k protocol.CompletionItemKind) *protocol.CompletionItemKind {
	return &k
}

// textDocumentCompletion is the LSP handler for textDocument/completion requests.
func (s *Server) textDocumentCompletion(_ *glsp.Context, params *protocol.CompletionParams) (any, error) {
	result := s.getResult(string(params.TextDocument.URI))
	if result == nil {
		return nil, nil
	}
	return complete(s.target, result, params.Position), nil
}
