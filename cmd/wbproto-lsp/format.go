package main

import (
	"context"
	"strings"

	"github.com/signadot/wbproto/encode"
	"github.com/signadot/wbproto/parse"

	"go.lsp.dev/protocol"
	"go.uber.org/zap"
)

func (s *Server) Formatting(ctx context.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil || doc.doc == nil {
		return nil, nil
	}
	return formatEdits(doc.content, s.indent, s.log), nil
}

// formatEdits returns a single edit replacing content with its formatted
// form, no edits if it is already formatted.
func formatEdits(content string, indent int, log *zap.Logger) []protocol.TextEdit {
	d, err := parse.ParseString(content)
	if err != nil {
		return nil
	}
	buf := &strings.Builder{}
	if err := encode.Encode(d, buf, encode.EncodeIndent(indent)); err != nil {
		log.Warn("format", zap.Error(err))
		return nil
	}
	formatted := buf.String()
	if formatted == content {
		return []protocol.TextEdit{}
	}
	lines := strings.Count(content, "\n")
	if len(content) > 0 && content[len(content)-1] != '\n' {
		lines++
	}
	return []protocol.TextEdit{
		{
			Range: protocol.Range{
				Start: protocol.Position{Line: 0, Character: 0},
				End: protocol.Position{
					Line:      uint32(lines),
					Character: 0,
				},
			},
			NewText: formatted,
		},
	}
}
