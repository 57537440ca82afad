package main

import (
	"context"
	"sort"
	"strings"

	"github.com/signadot/wbproto/ir"
	"github.com/signadot/wbproto/token"

	"go.lsp.dev/protocol"
)

var completionKeywords = []string{
	token.KwDEF, token.KwUSE, token.KwIS, token.KwPROTO, token.KwEXTERNPROTO,
	token.KwTRUE, token.KwFALSE, token.KwNULL,
}

func (s *Server) Completion(ctx context.Context, params *protocol.CompletionParams) (*protocol.CompletionList, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil {
		return nil, nil
	}
	off := lineColToOffset(doc.content, int(params.Position.Line), int(params.Position.Character))
	lineStart := strings.LastIndexByte(doc.content[:off], '\n') + 1
	return &protocol.CompletionList{
		Items: completions(doc.doc, doc.content[lineStart:off]),
	}, nil
}

// completions offers DEF names after USE and keywords elsewhere.  d may be
// nil when the buffer does not parse.
func completions(d *ir.Document, prefix string) []protocol.CompletionItem {
	items := []protocol.CompletionItem{}
	fields := strings.Fields(prefix)
	if n := len(fields); d != nil && ((n > 0 && fields[n-1] == token.KwUSE && strings.HasSuffix(prefix, " ")) ||
		(n > 1 && fields[n-2] == token.KwUSE && !strings.HasSuffix(prefix, " "))) {
		for _, name := range defNames(d) {
			items = append(items, protocol.CompletionItem{
				Label: name,
				Kind:  protocol.CompletionItemKindReference,
			})
		}
		return items
	}
	for _, kw := range completionKeywords {
		items = append(items, protocol.CompletionItem{
			Label: kw,
			Kind:  protocol.CompletionItemKindKeyword,
		})
	}
	return items
}

func defNames(d *ir.Document) []string {
	seen := map[string]bool{}
	var res []string
	for _, h := range d.Search("") {
		n := d.Get(h).Def()
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		res = append(res, n)
	}
	sort.Strings(res)
	return res
}
