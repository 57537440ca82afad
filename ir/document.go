package ir

import (
	"fmt"
	"slices"
)

// Document owns the entities parsed from one file together with a single
// cursor used by positional edits.
type Document struct {
	// Prologue holds the leading comment lines of the source, such as
	// "#VRML_SIM R2023b utf8".
	Prologue []string
	// Roots are the top level entities in document order.
	Roots []Handle

	ents      []*Entity
	src       []byte
	cursor    Handle
	mutations int
}

// NewDocument returns an empty document whose original text is src.
func NewDocument(src []byte) *Document {
	return &Document{src: src, cursor: NoHandle}
}

// Get returns the entity for h, or nil if h is not a handle of d.
func (d *Document) Get(h Handle) *Entity {
	if h < 0 || int(h) >= len(d.ents) {
		return nil
	}
	return d.ents[h]
}

func (d *Document) alloc(e *Entity) Handle {
	e.Parent = NoHandle
	d.ents = append(d.ents, e)
	return Handle(len(d.ents) - 1)
}

// NewProperty creates a detached Property.
func (d *Document) NewProperty(name, content string, stage int) Handle {
	return d.alloc(&Entity{Kind: PropertyKind, Name: name, Content: content, Stage: stage})
}

// NewNode creates a detached Node.
func (d *Document) NewNode(name, header string, stage int) Handle {
	return d.alloc(&Entity{Kind: NodeKind, Name: name, Header: header, Stage: stage})
}

// NewContainer creates a detached Container.
func (d *Document) NewContainer(name string, stage int) Handle {
	return d.alloc(&Entity{Kind: ContainerKind, Name: name, Stage: stage})
}

func (d *Document) check(h Handle) (*Entity, error) {
	e := d.Get(h)
	if e == nil {
		return nil, fmt.Errorf("%w: %d", ErrInvalidHandle, h)
	}
	return e, nil
}

func (d *Document) isRoot(h Handle) bool {
	return slices.Contains(d.Roots, h)
}

// attached reports whether h has a parent or is a root.
func (d *Document) attached(h Handle) bool {
	e := d.ents[h]
	return e.Parent != NoHandle || d.isRoot(h)
}

// AppendRoot adds the detached entity h to the top level.
func (d *Document) AppendRoot(h Handle) error {
	e, err := d.check(h)
	if err != nil {
		return err
	}
	if d.attached(h) {
		return fmt.Errorf("%w: %d", ErrAttached, h)
	}
	e.Stage = BaseStage
	d.restage(h)
	d.Roots = append(d.Roots, h)
	d.mutations++
	return nil
}

// Reachable reports whether h is part of the tree rooted at d.Roots.
func (d *Document) Reachable(h Handle) bool {
	if d.Get(h) == nil {
		return false
	}
	for {
		e := d.ents[h]
		if e.Parent == NoHandle {
			return d.isRoot(h)
		}
		p := d.Get(e.Parent)
		if p == nil || !slices.Contains(p.Children, h) {
			return false
		}
		h = e.Parent
	}
}

// Index returns the position of h among its siblings, or -1.
func (d *Document) Index(h Handle) int {
	e := d.Get(h)
	if e == nil {
		return -1
	}
	if e.Parent == NoHandle {
		return slices.Index(d.Roots, h)
	}
	return slices.Index(d.ents[e.Parent].Children, h)
}

// Mutated reports whether d changed since it was loaded or last marked
// clean.
func (d *Document) Mutated() bool {
	return d.mutations > 0
}

// Mutations returns the number of mutations since load.
func (d *Document) Mutations() int {
	return d.mutations
}

// Source returns the text d was loaded from.
func (d *Document) Source() []byte {
	return d.src
}

// MarkClean records src as the current text of d and resets the mutation
// count.
func (d *Document) MarkClean(src []byte) {
	d.src = src
	d.mutations = 0
}

// Count returns the number of entities reachable from the roots.
func (d *Document) Count() int {
	n := 0
	for _, r := range d.Roots {
		_ = d.Visit(r, func(_ Handle, isPost bool) (bool, error) {
			if !isPost {
				n++
			}
			return true, nil
		})
	}
	return n
}
