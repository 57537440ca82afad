package parse

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/signadot/wbproto/ir"
	"github.com/signadot/wbproto/token"
)

// reader walks the comment free token stream of one document.  match maps
// each opening brace or bracket to its closing token.
type reader struct {
	src      []byte
	toks     []token.Token
	match    []int
	comments []token.Token
	doc      *ir.Document
	opts     *parseOpts
}

// statements reads the field statements in toks[i:end] into parent, or
// into the document roots when parent is ir.NoHandle.
func (r *reader) statements(parent ir.Handle, i, end, stage int) error {
	for i < end {
		next, err := r.statement(parent, i, end, stage)
		if err != nil {
			return err
		}
		i = next
	}
	return nil
}

// statement reads one field statement starting at i and returns the index
// following it.
func (r *reader) statement(parent ir.Handle, i, end, stage int) (int, error) {
	t := &r.toks[i]
	if t.Type != token.TIdent {
		return 0, r.errorf(t, "%w %s", token.ErrUnexpected, t.Bytes)
	}
	switch {
	case t.Is(token.KwDEF), t.Is(token.KwUSE):
		return r.value(parent, "", t, i, end, stage)
	case t.Is(token.KwPROTO):
		return r.proto(parent, i, end, stage)
	case t.Is(token.KwIMPORTABLE) && i+1 < end && r.toks[i+1].Is(token.KwEXTERNPROTO):
		return r.value(parent, token.KwIMPORTABLE+" "+token.KwEXTERNPROTO, t, i+2, end, stage)
	case i+1 < end && r.toks[i+1].Type == token.TLCurl:
		return r.value(parent, "", t, i, end, stage)
	}
	return r.value(parent, string(t.Bytes), t, i+1, end, stage)
}

// value reads the value of field name starting at i.  at is the first
// token of the statement.
func (r *reader) value(parent ir.Handle, name string, at *token.Token, i, end, stage int) (int, error) {
	if i >= end {
		return 0, r.errorf(at, "%w for %s", ErrMissingValue, at.Bytes)
	}
	t := &r.toks[i]
	switch {
	case t.Type == token.TRCurl, t.Type == token.TRSquare:
		return 0, r.errorf(at, "%w for %s", ErrMissingValue, at.Bytes)
	case t.Type == token.TLSquare:
		return r.array(parent, name, at, i, stage)
	case t.Is(token.KwIS):
		if i+1 >= end || r.toks[i+1].Type != token.TIdent {
			return 0, r.errorf(t, "%w interface field after IS", ErrExpected)
		}
		return i + 2, r.property(parent, name, at, i, i+1, stage)
	case t.IsValue():
		j := i + 1
		for j < end && r.toks[j].IsValue() {
			j++
		}
		return j, r.property(parent, name, at, i, j-1, stage)
	case t.Is(token.KwUSE):
		if i+1 >= end || r.toks[i+1].Type != token.TIdent {
			return 0, r.errorf(t, "%w node name after USE", ErrExpected)
		}
		h := r.doc.NewNode(name, token.KwUSE+" "+string(r.toks[i+1].Bytes), stage)
		return i + 2, r.attach(parent, h, at, &r.toks[i+1])
	case t.Type == token.TIdent:
		j := i
		for j < end && r.toks[j].Type == token.TIdent {
			j++
		}
		if j >= end || r.toks[j].Type != token.TLCurl {
			bad := t
			if j < end {
				bad = &r.toks[j]
			}
			return 0, r.errorf(bad, "%w '{' after %s", ErrExpected, t.Bytes)
		}
		return r.node(parent, name, at, r.span(i, j), j, stage)
	}
	return 0, r.errorf(t, "%w %s", token.ErrUnexpected, t.Bytes)
}

// node creates a node with the given header whose body opens at toks[lc].
func (r *reader) node(parent ir.Handle, name string, at *token.Token, header string, lc, stage int) (int, error) {
	rc := r.match[lc]
	h := r.doc.NewNode(name, header, stage)
	if err := r.attach(parent, h, at, &r.toks[rc]); err != nil {
		return 0, err
	}
	if err := r.statements(h, lc+1, rc, stage+1); err != nil {
		return 0, err
	}
	return rc + 1, nil
}

// proto reads "PROTO Name [ interface ] { body }".
func (r *reader) proto(parent ir.Handle, i, end, stage int) (int, error) {
	t := &r.toks[i]
	if i+2 >= end || r.toks[i+1].Type != token.TIdent || r.toks[i+2].Type != token.TLSquare {
		return 0, r.errorf(t, "%w name and interface after PROTO", ErrExpected)
	}
	lc := r.match[i+2] + 1
	if lc >= end || r.toks[lc].Type != token.TLCurl {
		return 0, r.errorf(&r.toks[r.match[i+2]], "%w '{' after PROTO interface", ErrExpected)
	}
	return r.node(parent, "", t, r.span(i, lc), lc, stage)
}

// array reads the bracketed value opening at toks[i].  Arrays of nodes
// and empty arrays become containers, anything else is kept verbatim as a
// property.
func (r *reader) array(parent ir.Handle, name string, at *token.Token, i, stage int) (int, error) {
	rb := r.match[i]
	first := &r.toks[i+1]
	if rb != i+1 && (first.Type != token.TIdent || first.IsValue()) {
		return rb + 1, r.property(parent, name, at, i, rb, stage)
	}
	h := r.doc.NewContainer(name, stage)
	if err := r.attach(parent, h, at, &r.toks[rb]); err != nil {
		return 0, err
	}
	if err := r.statements(h, i+1, rb, stage+1); err != nil {
		return 0, err
	}
	return rb + 1, nil
}

// property creates a property whose content spans toks[i:j+1].
func (r *reader) property(parent ir.Handle, name string, at *token.Token, i, j, stage int) error {
	h := r.doc.NewProperty(name, r.span(i, j), stage)
	return r.attach(parent, h, at, &r.toks[j])
}

func (r *reader) attach(parent, h ir.Handle, first, last *token.Token) error {
	e := r.doc.Get(h)
	e.Line = first.Pos.Line() + 1
	e.EndLine = last.Pos.Line() + 1
	var err error
	if parent == ir.NoHandle {
		err = r.doc.AppendRoot(h)
	} else {
		err = r.doc.AddChild(parent, h)
	}
	if err == nil {
		return nil
	}
	if p := r.doc.Get(parent); p != nil && p.Kind == ir.ContainerKind {
		return r.errorf(first, "%w: %s %s", ErrNotNode, e.Kind, first.Bytes)
	}
	return r.errorf(first, "%w", err)
}

// span returns the source text from toks[i] through toks[j].  Tokens are
// kept verbatim; between them comments are removed and blanks ending a line
// are trimmed.
func (r *reader) span(i, j int) string {
	var buf []byte
	for n := i; n <= j; n++ {
		t := &r.toks[n]
		buf = append(buf, r.src[t.Pos.I:t.End()]...)
		if n < j {
			buf = append(buf, r.gap(t.End(), r.toks[n+1].Pos.I)...)
		}
	}
	return string(buf)
}

func (r *reader) gap(start, end int) []byte {
	k := sort.Search(len(r.comments), func(n int) bool {
		return r.comments[n].Pos.I >= start
	})
	var buf []byte
	at := start
	for ; k < len(r.comments) && r.comments[k].Pos.I < end; k++ {
		c := &r.comments[k]
		buf = append(buf, r.src[at:c.Pos.I]...)
		at = c.End()
	}
	buf = append(buf, r.src[at:end]...)
	if bytes.IndexByte(buf, '\n') == -1 {
		return buf
	}
	lines := bytes.Split(buf, []byte{'\n'})
	for n := 0; n < len(lines)-1; n++ {
		lines[n] = bytes.TrimRight(lines[n], " \t\r")
	}
	return bytes.Join(lines, []byte{'\n'})
}

func (r *reader) errorf(t *token.Token, format string, args ...any) *Error {
	return newError(fmt.Errorf(format, args...), t.Pos, r.opts)
}
