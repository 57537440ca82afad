package fix

import (
	"log/slog"
	"strings"

	"github.com/signadot/wbproto/ir"
)

// MeshURL makes the url fields written by the converter portable: path
// separators become "/" and the absolute mesh directory MeshDir is
// replaced by RelDir.
type MeshURL struct {
	MeshDir string
	RelDir  string
}

func (m *MeshURL) Name() string { return "mesh-url" }

func (m *MeshURL) Rewrite(content string) string {
	res := strings.ReplaceAll(content, `\\`, "/")
	res = strings.ReplaceAll(res, `\`, "/")
	dir := strings.TrimSuffix(strings.ReplaceAll(m.MeshDir, `\`, "/"), "/")
	if dir == "" {
		return res
	}
	return strings.ReplaceAll(res, dir, strings.TrimSuffix(m.RelDir, "/"))
}

func (m *MeshURL) Apply(doc *ir.Document, log *slog.Logger) (*Report, error) {
	rep := &Report{Pass: m.Name()}
	hs := doc.Search("url")
	var props []ir.Handle
	for _, h := range hs {
		if e := doc.Get(h); e.Kind == ir.PropertyKind && e.Name == "url" {
			props = append(props, h)
		}
	}
	each(doc, props, log, rep, func(h ir.Handle) (bool, error) {
		e := doc.Get(h)
		next := m.Rewrite(e.Content)
		if next == e.Content {
			return false, nil
		}
		return true, doc.SetContent(h, next)
	})
	return rep, nil
}
