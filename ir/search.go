package ir

import (
	"strings"

	"github.com/signadot/wbproto/debug"
)

// Matches reports whether e matches query: an empty query matches
// everything, otherwise the query must equal the name or, for nodes, be
// contained in the header.
func (e *Entity) Matches(query string) bool {
	if query == "" || e.Name == query {
		return true
	}
	return e.Kind == NodeKind && strings.Contains(e.Header, query)
}

// Search returns the reachable entities matching query in document order.
// Containers do not hide their elements: they are visited in place.  A
// search without matches returns an empty slice.
func (d *Document) Search(query string) []Handle {
	res := []Handle{}
	for _, r := range d.Roots {
		res = d.search(r, query, res)
	}
	if debug.Search() {
		debug.Logf("search %q: %d matches\n", query, len(res))
	}
	return res
}

// SearchFrom is like Search restricted to the subtree at h, h included.
func (d *Document) SearchFrom(h Handle, query string) []Handle {
	res := []Handle{}
	if d.Get(h) == nil {
		return res
	}
	res = d.search(h, query, res)
	if debug.Search() {
		debug.Logf("search %q from %d: %d matches\n", query, h, len(res))
	}
	return res
}

func (d *Document) search(h Handle, query string, res []Handle) []Handle {
	e := d.ents[h]
	if e.Matches(query) {
		res = append(res, h)
	}
	for _, c := range e.Children {
		res = d.search(c, query, res)
	}
	return res
}

// Child returns the first direct child of h named name.
func (d *Document) Child(h Handle, name string) (Handle, bool) {
	e := d.Get(h)
	if e == nil {
		return NoHandle, false
	}
	for _, c := range e.Children {
		if d.ents[c].Name == name {
			return c, true
		}
	}
	return NoHandle, false
}

// FindDef returns the first reachable node declared with "DEF name".  The
// declaration may span lines.
func (d *Document) FindDef(name string) (Handle, bool) {
	for _, h := range d.Search("DEF") {
		if d.ents[h].Def() == name {
			return h, true
		}
	}
	return NoHandle, false
}

// Visit calls f on h and its descendants, before (isPost false) and after
// (isPost true) their children.  Children are visited only if the pre call
// returns true.
func (d *Document) Visit(h Handle, f func(h Handle, isPost bool) (bool, error)) error {
	dive, err := f(h, false)
	if err != nil {
		return err
	}
	if dive {
		for _, c := range d.ents[h].Children {
			if err := d.Visit(c, f); err != nil {
				return err
			}
		}
	}
	if _, err := f(h, true); err != nil {
		return err
	}
	return nil
}
