package fix

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/signadot/wbproto/ir"
)

const (
	DefaultSolidMarker = "Empty"
	DefaultRefSuffix   = "_Ref"
)

// SolidReference collapses placeholder solids into references.  A Solid
// whose name contains Marker becomes
//
//	SolidReference {
//	  solidName "<name><Suffix>"
//	}
//
// Names already containing Suffix are left alone.  If Field is set only
// solids in that field are considered.
type SolidReference struct {
	Marker string
	Suffix string
	Field  string
}

func (s *SolidReference) Name() string { return "solid-reference" }

func (s *SolidReference) marker() string {
	if s.Marker == "" {
		return DefaultSolidMarker
	}
	return s.Marker
}

func (s *SolidReference) suffix() string {
	if s.Suffix == "" {
		return DefaultRefSuffix
	}
	return s.Suffix
}

// RefName returns the solidName content for a quoted solid name.
func (s *SolidReference) RefName(content string) (string, error) {
	if len(content) < 2 || !strings.HasSuffix(content, `"`) {
		return "", fmt.Errorf("name %s is not a quoted string", content)
	}
	return content[:len(content)-1] + s.suffix() + `"`, nil
}

func (s *SolidReference) Apply(doc *ir.Document, log *slog.Logger) (*Report, error) {
	rep := &Report{Pass: s.Name()}
	var hs []ir.Handle
	for _, h := range ofType(doc, doc.Search("Solid"), "Solid") {
		if s.Field != "" && doc.Get(h).Name != s.Field {
			continue
		}
		n, ok := doc.Child(h, "name")
		if !ok {
			continue
		}
		c := doc.Get(n).Content
		if !strings.Contains(c, s.marker()) || strings.Contains(c, s.suffix()) {
			continue
		}
		hs = append(hs, h)
	}
	each(doc, hs, log, rep, func(h ir.Handle) (bool, error) {
		n, _ := doc.Child(h, "name")
		ref, err := s.RefName(doc.Get(n).Content)
		if err != nil {
			return false, err
		}
		if err := doc.SetHeader(h, "SolidReference {"); err != nil {
			return false, err
		}
		if err := doc.ClearChildren(h); err != nil {
			return true, err
		}
		return true, doc.AddChild(h, doc.NewProperty("solidName", ref, 0))
	})
	return rep, nil
}
