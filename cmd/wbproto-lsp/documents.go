package main

import (
	"context"
	"errors"
	"sync"

	"github.com/signadot/wbproto/ir"
	"github.com/signadot/wbproto/parse"

	"go.lsp.dev/protocol"
	"go.uber.org/zap"
)

type documentStore struct {
	mu   sync.RWMutex
	docs map[string]*document
}

// document is an open buffer.  doc is nil while content does not parse.
type document struct {
	uri     string
	content string
	version int32
	doc     *ir.Document
	err     error
}

func (ds *documentStore) get(uri string) *document {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return ds.docs[uri]
}

func (ds *documentStore) put(uri string, content string, version int32) *document {
	d, err := parse.ParseString(content, parse.ParseFilename(uri))
	res := &document{
		uri:     uri,
		content: content,
		version: version,
		doc:     d,
		err:     err,
	}
	ds.mu.Lock()
	defer ds.mu.Unlock()
	ds.docs[uri] = res
	return res
}

func (ds *documentStore) remove(uri string) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	delete(ds.docs, uri)
}

func (s *Server) publishDiagnostics(ctx context.Context, uri string) {
	doc := s.docs.get(uri)
	if doc == nil {
		return
	}
	diagnostics := validateDocument(doc)
	s.log.Debug("diagnostics", zap.String("uri", uri), zap.Int("count", len(diagnostics)))
	if s.conn == nil {
		return
	}
	err := s.conn.Notify(ctx, protocol.MethodTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         protocol.DocumentURI(uri),
		Diagnostics: diagnostics,
	})
	if err != nil {
		s.log.Warn("publish diagnostics", zap.String("uri", uri), zap.Error(err))
	}
}

// validateDocument reports the parse error of doc, or the structural
// issues of its tree.
func validateDocument(doc *document) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}
	if doc.err != nil {
		diagnostic := protocol.Diagnostic{
			Severity: protocol.DiagnosticSeverityError,
			Message:  doc.err.Error(),
			Source:   lsName,
		}
		var perr *parse.Error
		if errors.As(doc.err, &perr) && perr.Line() > 0 {
			line, col := uint32(perr.Line()-1), uint32(perr.Col()-1)
			diagnostic.Message = perr.Err.Error()
			diagnostic.Range = protocol.Range{
				Start: protocol.Position{Line: line, Character: col},
				End:   protocol.Position{Line: line, Character: col + 1},
			}
		}
		return append(diagnostics, diagnostic)
	}
	for _, issue := range doc.doc.Check() {
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range:    lineRange(doc.content, issue.Line, issue.Line),
			Severity: protocol.DiagnosticSeverityWarning,
			Message:  issue.Msg,
			Source:   lsName,
		})
	}
	return diagnostics
}

func (s *Server) DidOpen(ctx context.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.docs.put(string(params.TextDocument.URI), params.TextDocument.Text, params.TextDocument.Version)
	s.publishDiagnostics(ctx, string(params.TextDocument.URI))
	return nil
}

func (s *Server) DidChange(ctx context.Context, params *protocol.DidChangeTextDocumentParams) error {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil {
		return nil
	}
	content := applyChanges(doc.content, syncKind, params.ContentChanges)
	s.docs.put(string(params.TextDocument.URI), content, params.TextDocument.Version)
	s.publishDiagnostics(ctx, string(params.TextDocument.URI))
	return nil
}

func (s *Server) DidClose(ctx context.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.docs.remove(string(params.TextDocument.URI))
	return nil
}

// applyChanges applies content changes in order.  Under full sync each
// change carries the whole content.
func applyChanges(content string, kind protocol.TextDocumentSyncKind, changes []protocol.TextDocumentContentChangeEvent) string {
	for _, change := range changes {
		if kind == protocol.TextDocumentSyncKindFull {
			content = change.Text
			continue
		}
		r := change.Range
		start := lineColToOffset(content, int(r.Start.Line), int(r.Start.Character))
		end := lineColToOffset(content, int(r.End.Line), int(r.End.Character))
		if start <= end {
			content = content[:start] + change.Text + content[end:]
		}
	}
	return content
}

// lineColToOffset returns the byte offset of a 0-based line and rune
// column, or len(content) past the end.
func lineColToOffset(content string, line, col int) int {
	currentLine := 0
	currentCol := 0
	for i, r := range content {
		if currentLine == line && currentCol == col {
			return i
		}
		if r == '\n' {
			if currentLine == line {
				return i
			}
			currentLine++
			currentCol = 0
		} else {
			currentCol++
		}
	}
	return len(content)
}

// lineRange spans the 1-based lines from through to of content.
func lineRange(content string, from, to int) protocol.Range {
	if from < 1 {
		return protocol.Range{}
	}
	return protocol.Range{
		Start: protocol.Position{Line: uint32(from - 1)},
		End:   protocol.Position{Line: uint32(to - 1), Character: uint32(lineLen(content, to-1))},
	}
}

func lineLen(content string, line int) int {
	start := lineColToOffset(content, line, 0)
	n := 0
	for _, r := range content[start:] {
		if r == '\n' {
			break
		}
		n++
	}
	return n
}
