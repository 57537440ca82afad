package main

import (
	"bytes"
	"context"
	"unicode"
	"unicode/utf8"

	"github.com/signadot/wbproto/token"

	"go.lsp.dev/protocol"
)

// semanticTokenTypes is the legend; token type indices refer to it.
var semanticTokenTypes = []protocol.SemanticTokenTypes{
	protocol.SemanticTokenComment,
	protocol.SemanticTokenKeyword,
	protocol.SemanticTokenString,
	protocol.SemanticTokenNumber,
	protocol.SemanticTokenOperator,
	protocol.SemanticTokenProperty,
	protocol.SemanticTokenType,
}

const (
	semComment uint32 = iota
	semKeyword
	semString
	semNumber
	semOperator
	semProperty
	semType
)

// tokenType maps a token to its legend index.  Identifiers starting with
// an upper case letter are node types, others field names.
func tokenType(t *token.Token) uint32 {
	switch t.Type {
	case token.TComment:
		return semComment
	case token.TString:
		return semString
	case token.TNumber:
		return semNumber
	case token.TIdent:
		switch string(t.Bytes) {
		case token.KwDEF, token.KwUSE, token.KwIS, token.KwPROTO, token.KwEXTERNPROTO, token.KwIMPORTABLE,
			token.KwTRUE, token.KwFALSE, token.KwNULL:
			return semKeyword
		}
		r, _ := utf8.DecodeRune(t.Bytes)
		if unicode.IsUpper(r) {
			return semType
		}
		return semProperty
	}
	return semOperator
}

// semanticTokens encodes the tokens of content starting on 0-based lines
// from through to, relative to the previous token.  Tokens spanning lines
// are cut at the first newline.
func semanticTokens(content string, from, to int) []uint32 {
	toks, err := token.Tokenize(nil, []byte(content))
	if err != nil {
		return []uint32{}
	}
	data := []uint32{}
	prevLine, prevChar := 0, 0
	for i := range toks {
		t := &toks[i]
		line, col := t.Pos.LineCol()
		if line < from || line > to {
			continue
		}
		b := t.Bytes
		if j := bytes.IndexByte(b, '\n'); j != -1 {
			b = b[:j]
		}
		char := utf8.RuneCount([]byte(content[t.Pos.I-col : t.Pos.I]))
		length := utf8.RuneCount(b)
		if length == 0 {
			continue
		}
		deltaChar := char
		if line == prevLine {
			deltaChar = char - prevChar
		}
		var mods uint32
		if i > 0 && toks[i-1].Is(token.KwDEF) {
			mods = 1
		}
		data = append(data, uint32(line-prevLine), uint32(deltaChar), uint32(length), tokenType(t), mods)
		prevLine, prevChar = line, char
	}
	return data
}

func (s *Server) SemanticTokensFull(ctx context.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil {
		return &protocol.SemanticTokens{
			Data: []uint32{},
		}, nil
	}
	return &protocol.SemanticTokens{
		Data: semanticTokens(doc.content, 0, int(^uint(0)>>1)),
	}, nil
}

func (s *Server) SemanticTokensRange(ctx context.Context, params *protocol.SemanticTokensRangeParams) (*protocol.SemanticTokens, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil {
		return &protocol.SemanticTokens{
			Data: []uint32{},
		}, nil
	}
	return &protocol.SemanticTokens{
		Data: semanticTokens(doc.content, int(params.Range.Start.Line), int(params.Range.End.Line)),
	}, nil
}
