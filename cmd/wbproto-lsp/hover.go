package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/signadot/wbproto/ir"

	"go.lsp.dev/protocol"
)

func (s *Server) Hover(ctx context.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil || doc.doc == nil {
		return nil, nil
	}
	h := entityAt(doc.doc, int(params.Position.Line)+1)
	if h == ir.NoHandle {
		return nil, nil
	}
	hoverText := buildHoverText(doc.doc, h)
	if hoverText == "" {
		return nil, nil
	}
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.Markdown,
			Value: hoverText,
		},
	}, nil
}

// entityAt returns the innermost entity spanning the 1-based line, the
// last one starting on it if there are several.
func entityAt(d *ir.Document, line int) ir.Handle {
	best := ir.NoHandle
	for _, root := range d.Roots {
		d.Visit(root, func(h ir.Handle, isPost bool) (bool, error) {
			if isPost {
				return false, nil
			}
			e := d.Get(h)
			if line < e.Line || line > e.EndLine {
				return false, nil
			}
			best = h
			return true, nil
		})
	}
	return best
}

func buildHoverText(d *ir.Document, h ir.Handle) string {
	e := d.Get(h)
	if e == nil {
		return ""
	}
	var parts []string
	label := e.Kind.String()
	if e.Name != "" {
		label += " `" + e.Name + "`"
	}
	parts = append(parts, "**"+label+"**")
	switch e.Kind {
	case ir.NodeKind:
		parts = append(parts, fmt.Sprintf("**Header:** `%s`", e.Header))
		if t := e.Type(); t != "" {
			parts = append(parts, fmt.Sprintf("**Type:** %s", t))
		}
		if n := e.Def(); n != "" {
			parts = append(parts, fmt.Sprintf("**DEF:** %s", n))
		}
		if n := e.Use(); n != "" {
			parts = append(parts, fmt.Sprintf("**USE:** %s", n))
		}
	case ir.PropertyKind:
		val := e.Content
		if len(val) > 50 {
			val = val[:50] + "..."
		}
		parts = append(parts, fmt.Sprintf("**Value:** `%s`", val))
	case ir.ContainerKind:
		parts = append(parts, fmt.Sprintf("container with %d elements", len(e.Children)))
	}
	parts = append(parts,
		fmt.Sprintf("**Stage:** %d", e.Stage),
		fmt.Sprintf("**Path:** `%s`", d.Path(h)))
	return strings.Join(parts, "\n\n")
}
