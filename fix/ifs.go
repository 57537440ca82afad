package fix

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/signadot/wbproto/ir"

	"github.com/hschendel/stl"
)

const (
	DefaultCreaseAngle  = 1.0
	DefaultIFSPrecision = 4
)

// IndexedFaceSet inlines collision meshes: every Mesh under a bounding
// object whose url names a collision mesh is replaced by an IndexedFaceSet
// node with the same DEF name holding the triangles of the STL file.
// Vertices equal at Precision decimals are merged.  Urls are resolved
// against Dir.
type IndexedFaceSet struct {
	Dir         string
	Suffix      string
	CreaseAngle float64
	Precision   int
}

func (p *IndexedFaceSet) Name() string { return "ifs" }

func (p *IndexedFaceSet) suffix() string {
	if p.Suffix == "" {
		return DefaultCollisionSuffix
	}
	return p.Suffix
}

func (p *IndexedFaceSet) precision() int {
	if p.Precision <= 0 {
		return DefaultIFSPrecision
	}
	return p.Precision
}

func (p *IndexedFaceSet) creaseAngle() float64 {
	if p.CreaseAngle == 0 {
		return DefaultCreaseAngle
	}
	return p.CreaseAngle
}

func (p *IndexedFaceSet) Apply(doc *ir.Document, log *slog.Logger) (*Report, error) {
	rep := &Report{Pass: p.Name()}
	var hs []ir.Handle
	for _, bo := range named(doc, doc.Search("boundingObject"), "boundingObject") {
		if doc.Get(bo).Kind != ir.NodeKind {
			continue
		}
		for _, m := range ofType(doc, doc.SearchFrom(bo, "Mesh"), "Mesh") {
			if _, ok := p.collisionURL(doc, m); ok {
				hs = append(hs, m)
			}
		}
	}
	each(doc, hs, log, rep, func(h ir.Handle) (bool, error) {
		u, _ := p.collisionURL(doc, h)
		solid, err := stl.ReadFile(filepath.Join(p.Dir, filepath.FromSlash(u)))
		if err != nil {
			return false, err
		}
		if len(solid.Triangles) == 0 {
			return false, fmt.Errorf("%s has no triangles", u)
		}
		e := doc.Get(h)
		header := "IndexedFaceSet {"
		if def := e.Def(); def != "" {
			header = "DEF " + def + " " + header
		}
		ifs, err := p.build(doc, e.Name, header, e.Stage, solid)
		if err != nil {
			return false, err
		}
		return true, doc.Replace(h, ifs)
	})
	return rep, nil
}

// collisionURL returns the first collision mesh path in the url of mesh.
func (p *IndexedFaceSet) collisionURL(doc *ir.Document, mesh ir.Handle) (string, bool) {
	u, ok := doc.Child(mesh, "url")
	if !ok || doc.Get(u).Kind != ir.PropertyKind {
		return "", false
	}
	for _, m := range quoted.FindAllStringSubmatch(doc.Get(u).Content, -1) {
		if strings.EqualFold(filepath.Ext(m[1]), DefaultMeshExtension) && IsCollisionName(m[1], p.suffix()) {
			return m[1], true
		}
	}
	return "", false
}

// build returns a detached IndexedFaceSet node for solid.
func (p *IndexedFaceSet) build(doc *ir.Document, name, header string, stage int, solid *stl.Solid) (ir.Handle, error) {
	points, faces := p.mesh(solid)
	ifs := doc.NewNode(name, header, stage)
	coord := doc.NewNode("coord", "Coordinate {", 0)
	if err := doc.AddChild(coord, doc.NewProperty("point", bracketLines(points), 0)); err != nil {
		return ir.NoHandle, err
	}
	for _, c := range []ir.Handle{
		doc.NewProperty("creaseAngle", formatAngle(p.creaseAngle()), 0),
		coord,
		doc.NewProperty("coordIndex", bracketLines(faces), 0),
	} {
		if err := doc.AddChild(ifs, c); err != nil {
			return ir.NoHandle, err
		}
	}
	return ifs, nil
}

// mesh returns the merged vertices of solid as "x y z" and its faces as
// "a, b, c, -1".
func (p *IndexedFaceSet) mesh(solid *stl.Solid) (points, faces []string) {
	index := map[string]int{}
	prec := p.precision()
	for i := range solid.Triangles {
		var ids [3]string
		for j, v := range solid.Triangles[i].Vertices {
			pt := fmt.Sprintf("%s %s %s",
				strconv.FormatFloat(float64(v[0]), 'f', prec, 32),
				strconv.FormatFloat(float64(v[1]), 'f', prec, 32),
				strconv.FormatFloat(float64(v[2]), 'f', prec, 32))
			n, ok := index[pt]
			if !ok {
				n = len(points)
				index[pt] = n
				points = append(points, pt)
			}
			ids[j] = strconv.Itoa(n)
		}
		faces = append(faces, strings.Join(ids[:], ", ")+", -1")
	}
	return points, faces
}

func bracketLines(items []string) string {
	return "[\n  " + strings.Join(items, "\n  ") + "\n]"
}

func formatAngle(a float64) string {
	s := strconv.FormatFloat(a, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
