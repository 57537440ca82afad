package ir

import "fmt"

type Kind int

const (
	PropertyKind Kind = iota
	NodeKind
	ContainerKind
)

func (k Kind) String() string {
	s, ok := map[Kind]string{
		PropertyKind:  "Property",
		NodeKind:      "Node",
		ContainerKind: "Container",
	}[k]
	if ok {
		return s
	}
	return "<unknown kind>"
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(d []byte) error {
	kk, ok := map[string]Kind{
		"Property":  PropertyKind,
		"Node":      NodeKind,
		"Container": ContainerKind,
	}[string(d)]
	if !ok {
		return fmt.Errorf("unrecognized kind %q", d)
	}
	*k = kk
	return nil
}

func Kinds() []Kind {
	return []Kind{
		PropertyKind,
		NodeKind,
		ContainerKind,
	}
}

// HasChildren reports whether entities of kind k carry children.
func (k Kind) HasChildren() bool {
	return k != PropertyKind
}
