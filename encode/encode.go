// Package encode writes an [ir.Document] back to PROTO text.
//
// Each entity is written on its own line, indented by its stage:
//
//	<name> <header>     Node, followed by its children and "}"
//	<name> <content>    Property
//	<name> [            Container, followed by its elements and "]"
//
// Headers and contents are written exactly as stored.  Elements of a
// container are written without a field name.  Output depends only on the
// tree.
package encode

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/signadot/wbproto/ir"
)

type EncState struct {
	indent   int
	base     int
	prologue bool

	Color func(ir.Kind, ColorAttr, string) string
}

func newEncState(opts []EncodeOption) *EncState {
	es := &EncState{
		indent:   2,
		prologue: true,
	}
	for _, opt := range opts {
		opt(es)
	}
	if es.indent < 0 {
		es.indent = 0
	}
	return es
}

// Encode writes doc to w: the prologue, a blank line, then the top level
// entities.
func Encode(doc *ir.Document, w io.Writer, opts ...EncodeOption) error {
	es := newEncState(opts)
	bw := bufio.NewWriter(w)
	if es.prologue && len(doc.Prologue) != 0 {
		for _, ln := range doc.Prologue {
			if _, err := bw.WriteString(es.color(ir.NodeKind, CommentColor, ln) + "\n"); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	for _, h := range doc.Roots {
		if err := encode(doc, h, false, bw, es); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// EncodeEntity writes the subtree at h to w, indented relative to h.
func EncodeEntity(doc *ir.Document, h ir.Handle, w io.Writer, opts ...EncodeOption) error {
	e := doc.Get(h)
	if e == nil {
		return fmt.Errorf("%w: %d", ir.ErrInvalidHandle, h)
	}
	es := newEncState(opts)
	es.base = e.Stage
	inContainer := false
	if p := doc.Get(e.Parent); p != nil && p.Kind == ir.ContainerKind {
		inContainer = true
	}
	bw := bufio.NewWriter(w)
	if err := encode(doc, h, inContainer, bw, es); err != nil {
		return err
	}
	return bw.Flush()
}

func encode(doc *ir.Document, h ir.Handle, inContainer bool, w *bufio.Writer, es *EncState) error {
	e := doc.Get(h)
	ind := es.ind(e.Stage)
	name := ""
	if e.Name != "" && !inContainer {
		name = es.color(e.Kind, NameColor, e.Name) + " "
	}
	switch e.Kind {
	case ir.PropertyKind:
		_, err := w.WriteString(ind + name + es.color(e.Kind, ContentColor, e.Content) + "\n")
		return err
	case ir.NodeKind:
		if _, err := w.WriteString(ind + name + es.color(e.Kind, HeaderColor, e.Header) + "\n"); err != nil {
			return err
		}
		for _, c := range e.Children {
			if err := encode(doc, c, false, w, es); err != nil {
				return err
			}
		}
		if !e.HasBody() {
			return nil
		}
		_, err := w.WriteString(ind + es.color(e.Kind, SepColor, "}") + "\n")
		return err
	case ir.ContainerKind:
		if _, err := w.WriteString(ind + name + es.color(e.Kind, SepColor, "[") + "\n"); err != nil {
			return err
		}
		for _, c := range e.Children {
			if err := encode(doc, c, true, w, es); err != nil {
				return err
			}
		}
		_, err := w.WriteString(ind + es.color(e.Kind, SepColor, "]") + "\n")
		return err
	}
	return fmt.Errorf("unknown entity kind %d", e.Kind)
}

func (es *EncState) ind(stage int) string {
	n := (stage - es.base) * es.indent
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}

func (es *EncState) color(k ir.Kind, a ColorAttr, s string) string {
	if es.Color == nil {
		return s
	}
	return es.Color(k, a, s)
}
