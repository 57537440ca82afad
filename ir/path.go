package ir

import (
	"strconv"
	"strings"
)

// Path returns a readable address of h, such as
// "$.Robot.children[0].endPoint.name".  Elements of containers are
// addressed by index, other entities by field name or, for bare nodes, by
// the PROTO name, DEF name or type.
func (d *Document) Path(h Handle) string {
	e := d.Get(h)
	if e == nil {
		return ""
	}
	if e.Parent == NoHandle {
		return "$." + quoteLabel(e.label())
	}
	p := d.ents[e.Parent]
	if p.Kind == ContainerKind {
		return d.Path(e.Parent) + "[" + strconv.Itoa(d.Index(h)) + "]"
	}
	return d.Path(e.Parent) + "." + quoteLabel(e.label())
}

func quoteLabel(f string) string {
	if f != "" && strings.IndexAny(f, "'.*$[] ") == -1 {
		return f
	}
	return "'" + strings.Replace(f, "'", "\\'", -1) + "'"
}

// Lookup returns the reachable entity whose Path is path.
func (d *Document) Lookup(path string) (Handle, bool) {
	for _, h := range d.Search("") {
		if d.Path(h) == path {
			return h, true
		}
	}
	return NoHandle, false
}
