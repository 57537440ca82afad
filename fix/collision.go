package fix

import (
	"fmt"
	"log/slog"
	"path"
	"regexp"
	"slices"
	"strings"

	"github.com/signadot/wbproto/ir"
)

const (
	DefaultCollisionSuffix = "_collision"
	DefaultMeshExtension   = ".stl"
)

// CollisionName returns the name of the collision variant of the mesh
// file p: "meshes/Base.STL" becomes "meshes/Base_collision.STL".
func CollisionName(p, suffix string) string {
	ext := path.Ext(p)
	return strings.TrimSuffix(p, ext) + suffix + ext
}

// IsCollisionName reports whether p already names a collision mesh.
func IsCollisionName(p, suffix string) bool {
	return strings.HasSuffix(strings.TrimSuffix(p, path.Ext(p)), suffix)
}

// Collision points the bounding objects of a robot at collision meshes.
//
// A "boundingObject USE X" whose DEF is or contains a Mesh is replaced by
// a new "Mesh {" node with the rewritten url.  Meshes written inline under
// a bounding object get their url rewritten in place.
type Collision struct {
	Suffix     string
	Extensions []string
}

func (c *Collision) Name() string { return "collision" }

func (c *Collision) suffix() string {
	if c.Suffix == "" {
		return DefaultCollisionSuffix
	}
	return c.Suffix
}

func (c *Collision) matchExt(p string) bool {
	ext := strings.ToLower(path.Ext(p))
	if len(c.Extensions) == 0 {
		return ext == DefaultMeshExtension
	}
	return slices.ContainsFunc(c.Extensions, func(e string) bool {
		return strings.ToLower(e) == ext
	})
}

var quoted = regexp.MustCompile(`"((?:[^"\\]|\\.)*)"`)

// RewriteURL maps every quoted mesh path in the url content to its
// collision name.
func (c *Collision) RewriteURL(content string) string {
	sfx := c.suffix()
	return quoted.ReplaceAllStringFunc(content, func(q string) string {
		p := q[1 : len(q)-1]
		if !c.matchExt(p) || IsCollisionName(p, sfx) {
			return q
		}
		return `"` + CollisionName(p, sfx) + `"`
	})
}

func (c *Collision) Apply(doc *ir.Document, log *slog.Logger) (*Report, error) {
	rep := &Report{Pass: c.Name()}
	hs := named(doc, doc.Search("boundingObject"), "boundingObject")
	each(doc, hs, log, rep, func(h ir.Handle) (bool, error) {
		if doc.Get(h).Kind != ir.NodeKind {
			return false, nil
		}
		changed := false
		for _, n := range doc.SearchFrom(h, "") {
			e := doc.Get(n)
			var (
				ok  bool
				err error
			)
			switch {
			case e.IsUse():
				ok, err = c.replaceUse(doc, n)
			case e.Type() == "Mesh":
				ok, err = c.rewriteMesh(doc, n)
			}
			if err != nil {
				return changed, err
			}
			changed = changed || ok
		}
		return changed, nil
	})
	return rep, nil
}

// meshURL returns the url property of the first mesh at or below h.
func meshURL(doc *ir.Document, h ir.Handle) (ir.Handle, error) {
	meshes := ofType(doc, doc.SearchFrom(h, "Mesh"), "Mesh")
	if len(meshes) == 0 {
		return ir.NoHandle, fmt.Errorf("no Mesh in %s", doc.Path(h))
	}
	u, ok := doc.Child(meshes[0], "url")
	if !ok || doc.Get(u).Kind != ir.PropertyKind {
		return ir.NoHandle, fmt.Errorf("no url in %s", doc.Path(meshes[0]))
	}
	return u, nil
}

func (c *Collision) rewriteMesh(doc *ir.Document, h ir.Handle) (bool, error) {
	u, err := meshURL(doc, h)
	if err != nil {
		return false, err
	}
	content := doc.Get(u).Content
	next := c.RewriteURL(content)
	if next == content {
		return false, nil
	}
	return true, doc.SetContent(u, next)
}

func (c *Collision) replaceUse(doc *ir.Document, h ir.Handle) (bool, error) {
	e := doc.Get(h)
	def, ok := doc.FindDef(e.Use())
	if !ok {
		return false, fmt.Errorf("no DEF %s", e.Use())
	}
	u, err := meshURL(doc, def)
	if err != nil {
		return false, err
	}
	content := doc.Get(u).Content
	next := c.RewriteURL(content)
	if next == content {
		return false, nil
	}
	mesh := doc.NewNode(e.Name, "Mesh {", e.Stage)
	if err := doc.AddChild(mesh, doc.NewProperty("url", next, 0)); err != nil {
		return false, err
	}
	if err := doc.SetCurrent(h); err != nil {
		return false, err
	}
	return true, doc.Update(mesh)
}
