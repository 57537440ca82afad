package ir

import (
	"fmt"
)

// Issue is a structural problem found by Check.
type Issue struct {
	Handle Handle
	Line   int
	Msg    string
}

func (i *Issue) String() string {
	if i.Line == 0 {
		return i.Msg
	}
	return fmt.Sprintf("line %d: %s", i.Line, i.Msg)
}

// Check reports problems in the reachable tree of d that a parse does not
// catch: USE of an undeclared name, duplicate DEF names, unnamed nodes in
// field position and stages that do not follow nesting.
func (d *Document) Check() []Issue {
	var res []Issue
	add := func(h Handle, format string, args ...any) {
		res = append(res, Issue{Handle: h, Line: d.ents[h].Line, Msg: fmt.Sprintf(format, args...)})
	}
	defs := map[string]Handle{}
	var uses []Handle
	for _, h := range d.Search("") {
		e := d.ents[h]
		if e.Parent == NoHandle {
			if e.Stage != BaseStage {
				add(h, "%s: stage %d at top level", d.Path(h), e.Stage)
			}
		} else {
			p := d.ents[e.Parent]
			if e.Stage != p.Stage+1 {
				add(h, "%s: stage %d under stage %d", d.Path(h), e.Stage, p.Stage)
			}
			if e.Kind == NodeKind && e.Name == "" && p.Kind == NodeKind && p.Type() != "PROTO" {
				add(h, "%s: node %q has no field name", d.Path(h), e.Header)
			}
		}
		if n := e.Def(); n != "" {
			if prev, ok := defs[n]; ok {
				add(h, "%s: duplicate DEF %s, first at line %d", d.Path(h), n, d.ents[prev].Line)
			} else {
				defs[n] = h
			}
		}
		if e.IsUse() {
			uses = append(uses, h)
		}
	}
	for _, h := range uses {
		n := d.ents[h].Use()
		if _, ok := defs[n]; !ok {
			add(h, "%s: USE of undeclared %s", d.Path(h), n)
		}
	}
	return res
}
