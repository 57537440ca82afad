package ir

import (
	"fmt"

	"github.com/signadot/wbproto/debug"
)

// SetCurrent points the cursor at h, which must be reachable from the
// roots.
func (d *Document) SetCurrent(h Handle) error {
	if !d.Reachable(h) {
		return fmt.Errorf("%w: entity %d is not in the tree", ErrInvalidCursor, h)
	}
	d.cursor = h
	return nil
}

// Current returns the cursor, NoHandle if unset.
func (d *Document) Current() Handle {
	return d.cursor
}

// Update replaces the entity under the cursor with the detached entity nh
// and moves the cursor to nh.  The stage of nh is left as is.
func (d *Document) Update(nh Handle) error {
	if d.cursor == NoHandle {
		return fmt.Errorf("%w: no cursor set", ErrInvalidCursor)
	}
	if !d.Reachable(d.cursor) {
		return fmt.Errorf("%w: entity %d was removed", ErrInvalidCursor, d.cursor)
	}
	if err := d.Replace(d.cursor, nh); err != nil {
		return err
	}
	d.cursor = nh
	return nil
}

// Replace puts the detached entity nh in the slot held by old.  Sibling
// count and order are unchanged and old becomes detached.  The stage of nh
// is left as is.
func (d *Document) Replace(old, nh Handle) error {
	oe, err := d.check(old)
	if err != nil {
		return err
	}
	ne, err := d.check(nh)
	if err != nil {
		return err
	}
	if !d.Reachable(old) {
		return fmt.Errorf("%w: entity %d is not in the tree", ErrInvalidCursor, old)
	}
	if old == nh || d.attached(nh) {
		return fmt.Errorf("%w: %d", ErrAttached, nh)
	}
	var slots []Handle
	if oe.Parent == NoHandle {
		slots = d.Roots
	} else {
		p := d.ents[oe.Parent]
		if p.Kind == ContainerKind && ne.Kind != NodeKind {
			return fmt.Errorf("%w: %s in container %q", ErrInvalidChild, ne.Kind, p.Name)
		}
		slots = p.Children
	}
	i := d.Index(old)
	slots[i] = nh
	ne.Parent = oe.Parent
	oe.Parent = NoHandle
	if d.cursor == old {
		d.cursor = NoHandle
	}
	d.mutations++
	if debug.Edit() {
		debug.Logf("replace %d with %d (%s %q) at index %d\n", old, nh, ne.Kind, ne.Name, i)
	}
	return nil
}

// AddChild appends the detached entity c to the children of p, setting its
// parent and restaging c and its descendants under p.
func (d *Document) AddChild(p, c Handle) error {
	pe, err := d.check(p)
	if err != nil {
		return err
	}
	ce, err := d.check(c)
	if err != nil {
		return err
	}
	if !pe.Kind.HasChildren() {
		return fmt.Errorf("%w: %s %q has no children", ErrInvalidChild, pe.Kind, pe.Name)
	}
	if pe.Kind == ContainerKind && ce.Kind != NodeKind {
		return fmt.Errorf("%w: %s in container %q", ErrInvalidChild, ce.Kind, pe.Name)
	}
	if p == c || d.attached(c) {
		return fmt.Errorf("%w: %d", ErrAttached, c)
	}
	if d.isAncestor(c, p) {
		return fmt.Errorf("%w: %d is an ancestor of %d", ErrInvalidChild, c, p)
	}
	pe.Children = append(pe.Children, c)
	ce.Parent = p
	ce.Stage = pe.Stage + 1
	d.restage(c)
	d.mutations++
	if debug.Edit() {
		debug.Logf("add %d (%s %q) to %d at stage %d\n", c, ce.Kind, ce.Name, p, ce.Stage)
	}
	return nil
}

func (d *Document) isAncestor(a, h Handle) bool {
	for h != NoHandle {
		if h == a {
			return true
		}
		h = d.ents[h].Parent
	}
	return false
}

func (d *Document) restage(h Handle) {
	e := d.ents[h]
	for _, c := range e.Children {
		d.ents[c].Stage = e.Stage + 1
		d.restage(c)
	}
}

// Remove splices h out of its parent or out of the roots.
func (d *Document) Remove(h Handle) error {
	e, err := d.check(h)
	if err != nil {
		return err
	}
	if !d.Reachable(h) {
		return fmt.Errorf("%w: entity %d is not in the tree", ErrInvalidHandle, h)
	}
	i := d.Index(h)
	if e.Parent == NoHandle {
		d.Roots = append(d.Roots[:i:i], d.Roots[i+1:]...)
	} else {
		p := d.ents[e.Parent]
		p.Children = append(p.Children[:i:i], p.Children[i+1:]...)
	}
	e.Parent = NoHandle
	if d.cursor == h {
		d.cursor = NoHandle
	}
	d.mutations++
	return nil
}

// SetHeader replaces the header of the node h.
func (d *Document) SetHeader(h Handle, header string) error {
	e, err := d.check(h)
	if err != nil {
		return err
	}
	if e.Kind != NodeKind {
		return fmt.Errorf("%w: header of %s %q", ErrKind, e.Kind, e.Name)
	}
	e.Header = header
	d.mutations++
	return nil
}

// SetContent replaces the content of the property h.
func (d *Document) SetContent(h Handle, content string) error {
	e, err := d.check(h)
	if err != nil {
		return err
	}
	if e.Kind != PropertyKind {
		return fmt.Errorf("%w: content of %s %q", ErrKind, e.Kind, e.Name)
	}
	e.Content = content
	d.mutations++
	return nil
}

// ClearChildren detaches every child of h.
func (d *Document) ClearChildren(h Handle) error {
	e, err := d.check(h)
	if err != nil {
		return err
	}
	for _, c := range e.Children {
		d.ents[c].Parent = NoHandle
		if d.cursor != NoHandle && d.isAncestor(c, d.cursor) {
			d.cursor = NoHandle
		}
	}
	e.Children = nil
	d.mutations++
	return nil
}
