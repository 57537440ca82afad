package ir

import (
	"cmp"
	"strings"
)

// Compare returns an integer comparing the subtree at ah in a with the
// subtree at bh in b.  The result is 0 when both have the same kinds,
// names, headers, contents and child order.  Stages, lines and handles
// are ignored.
func Compare(a *Document, ah Handle, b *Document, bh Handle) int {
	ea, eb := a.Get(ah), b.Get(bh)
	if ea == nil || eb == nil {
		switch {
		case ea == nil && eb == nil:
			return 0
		case ea == nil:
			return -1
		}
		return 1
	}
	if c := cmp.Compare(ea.Kind, eb.Kind); c != 0 {
		return c
	}
	if c := strings.Compare(ea.Name, eb.Name); c != 0 {
		return c
	}
	switch ea.Kind {
	case PropertyKind:
		return strings.Compare(ea.Content, eb.Content)
	case NodeKind:
		if c := strings.Compare(ea.Header, eb.Header); c != 0 {
			return c
		}
	}
	return compareLists(a, ea.Children, b, eb.Children)
}

// CompareDocuments compares the top level entities of a and b with
// Compare.  Prologues are not compared.
func CompareDocuments(a, b *Document) int {
	return compareLists(a, a.Roots, b, b.Roots)
}

func compareLists(a *Document, as []Handle, b *Document, bs []Handle) int {
	minLen := min(len(as), len(bs))
	for i := 0; i < minLen; i++ {
		if c := Compare(a, as[i], b, bs[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(as), len(bs))
}

// Equal reports whether a and b hold structurally equal trees.
func Equal(a, b *Document) bool {
	return CompareDocuments(a, b) == 0
}
