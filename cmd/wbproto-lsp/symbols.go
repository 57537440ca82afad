package main

import (
	"context"
	"strings"

	"github.com/signadot/wbproto/ir"

	"go.lsp.dev/protocol"
)

func (s *Server) DocumentSymbol(ctx context.Context, params *protocol.DocumentSymbolParams) ([]interface{}, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil || doc.doc == nil {
		return nil, nil
	}
	res := []interface{}{}
	for _, root := range doc.doc.Roots {
		res = append(res, documentSymbol(doc, root))
	}
	return res, nil
}

func documentSymbol(doc *document, h ir.Handle) protocol.DocumentSymbol {
	e := doc.doc.Get(h)
	sym := protocol.DocumentSymbol{
		Name:           symbolName(e),
		Range:          lineRange(doc.content, e.Line, e.EndLine),
		SelectionRange: lineRange(doc.content, e.Line, e.Line),
	}
	switch e.Kind {
	case ir.NodeKind:
		sym.Kind = protocol.SymbolKindClass
		if e.Type() == "PROTO" {
			sym.Kind = protocol.SymbolKindInterface
		}
		sym.Detail = e.Header
	case ir.PropertyKind:
		sym.Kind = protocol.SymbolKindProperty
		sym.Detail = e.Content
	case ir.ContainerKind:
		sym.Kind = protocol.SymbolKindArray
	}
	for _, c := range e.Children {
		sym.Children = append(sym.Children, documentSymbol(doc, c))
	}
	return sym
}

func symbolName(e *ir.Entity) string {
	if e.Name != "" {
		return e.Name
	}
	if n := e.ProtoName(); n != "" {
		return n
	}
	if n := e.Def(); n != "" {
		return n
	}
	if n := strings.TrimSpace(strings.TrimSuffix(e.Header, "{")); n != "" {
		return n
	}
	return "-"
}

func (s *Server) FoldingRanges(ctx context.Context, params *protocol.FoldingRangeParams) ([]protocol.FoldingRange, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil || doc.doc == nil {
		return nil, nil
	}
	return foldingRanges(doc.doc), nil
}

func foldingRanges(d *ir.Document) []protocol.FoldingRange {
	res := []protocol.FoldingRange{}
	for _, h := range d.Search("") {
		e := d.Get(h)
		if e.EndLine <= e.Line {
			continue
		}
		res = append(res, protocol.FoldingRange{
			StartLine: uint32(e.Line - 1),
			EndLine:   uint32(e.EndLine - 1),
		})
	}
	return res
}

// Definition resolves USE to the DEF it refers to.
func (s *Server) Definition(ctx context.Context, params *protocol.DefinitionParams) ([]protocol.Location, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil || doc.doc == nil {
		return nil, nil
	}
	h := entityAt(doc.doc, int(params.Position.Line)+1)
	if h == ir.NoHandle {
		return nil, nil
	}
	name := doc.doc.Get(h).Use()
	if name == "" {
		return nil, nil
	}
	def, ok := doc.doc.FindDef(name)
	if !ok {
		return nil, nil
	}
	e := doc.doc.Get(def)
	return []protocol.Location{{
		URI:   params.TextDocument.URI,
		Range: lineRange(doc.content, e.Line, e.EndLine),
	}}, nil
}
