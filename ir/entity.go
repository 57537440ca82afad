package ir

import (
	"strings"
)

// Handle refers to an entity in a Document.
type Handle int

// NoHandle is the unset handle.
const NoHandle Handle = -1

// BaseStage is the stage of top level entities.
const BaseStage = 0

type Entity struct {
	Kind Kind
	// Name is the field name of the slot the entity occupies.  It is empty
	// for bare nodes such as array elements and top level nodes.
	Name string
	// Header is the verbatim node declaration, Node only.
	Header string
	// Content is the verbatim value text, Property only.
	Content string
	Stage   int

	Parent   Handle
	Children []Handle

	// Line and EndLine are 1-based source lines, 0 for constructed
	// entities.
	Line    int
	EndLine int
}

// IsUse reports whether e is a node reference of the form "USE X".
func (e *Entity) IsUse() bool {
	if e.Kind != NodeKind {
		return false
	}
	f := strings.Fields(e.Header)
	return len(f) == 2 && f[0] == "USE"
}

// HasBody reports whether e is serialized with a braced body.
func (e *Entity) HasBody() bool {
	return e.Kind == NodeKind && strings.HasSuffix(strings.TrimSpace(e.Header), "{")
}

func (e *Entity) headerFields() []string {
	h := strings.TrimSpace(e.Header)
	h = strings.TrimSuffix(h, "{")
	return strings.Fields(h)
}

// Type returns the node type of a Node entity: "Solid" for "DEF A Solid {",
// "PROTO" for a PROTO declaration and "" for USE references and
// non-nodes.
func (e *Entity) Type() string {
	if e.Kind != NodeKind {
		return ""
	}
	f := e.headerFields()
	if len(f) == 0 {
		return ""
	}
	switch f[0] {
	case "USE":
		return ""
	case "DEF":
		if len(f) < 3 {
			return ""
		}
		return f[2]
	}
	return f[0]
}

// Def returns the DEF name of a Node entity, if any.
func (e *Entity) Def() string {
	if e.Kind != NodeKind {
		return ""
	}
	f := e.headerFields()
	if len(f) < 2 || f[0] != "DEF" {
		return ""
	}
	return f[1]
}

// Use returns the referenced name of a USE node, if any.
func (e *Entity) Use() string {
	if !e.IsUse() {
		return ""
	}
	return strings.Fields(e.Header)[1]
}

// ProtoName returns the declared name of a PROTO node.
func (e *Entity) ProtoName() string {
	if e.Kind != NodeKind {
		return ""
	}
	f := e.headerFields()
	if len(f) < 2 || f[0] != "PROTO" {
		return ""
	}
	name, _, _ := strings.Cut(f[1], "[")
	return name
}

func (e *Entity) label() string {
	if e.Name != "" {
		return e.Name
	}
	if n := e.ProtoName(); n != "" {
		return n
	}
	if n := e.Def(); n != "" {
		return n
	}
	if n := e.Type(); n != "" {
		return n
	}
	return e.Header
}
