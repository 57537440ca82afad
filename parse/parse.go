package parse

import (
	"os"

	"github.com/signadot/wbproto/debug"
	"github.com/signadot/wbproto/ir"
	"github.com/signadot/wbproto/token"
)

// Parse parses d into a document whose original text is d.
func Parse(d []byte, opts ...ParseOption) (*ir.Document, error) {
	pOpts := &parseOpts{prologue: true}
	for _, f := range opts {
		f(pOpts)
	}
	toks, err := token.Tokenize(nil, d)
	if err != nil {
		return nil, fromTokenErr(err, pOpts)
	}
	if debug.Parse() {
		token.PrintTokens(os.Stderr, toks, "parse")
	}
	doc := ir.NewDocument(d)
	if pOpts.prologue {
		doc.Prologue = prologue(toks)
	}
	code, comments := token.StripComments(toks)
	match, err := token.Balance(code)
	if err != nil {
		return nil, fromTokenErr(err, pOpts)
	}
	r := &reader{
		src:      d,
		toks:     code,
		match:    match,
		comments: comments,
		doc:      doc,
		opts:     pOpts,
	}
	if err := r.statements(ir.NoHandle, 0, len(code), ir.BaseStage); err != nil {
		return nil, err
	}
	doc.MarkClean(d)
	return doc, nil
}

// ParseString is Parse for string input.
func ParseString(s string, opts ...ParseOption) (*ir.Document, error) {
	return Parse([]byte(s), opts...)
}

// prologue returns the comments preceding the first statement.
func prologue(toks []token.Token) []string {
	var res []string
	for i := range toks {
		if toks[i].Type != token.TComment {
			break
		}
		res = append(res, string(toks[i].Bytes))
	}
	return res
}
