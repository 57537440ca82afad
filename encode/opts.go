package encode

type EncodeOption func(*EncState)

// EncodeIndent sets the number of spaces per stage.
func EncodeIndent(n int) EncodeOption {
	return func(es *EncState) { es.indent = n }
}

func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) { es.Color = c.Color }
}

// EncodePrologue sets whether the document prologue is written.  It is on
// by default.
func EncodePrologue(v bool) EncodeOption {
	return func(es *EncState) { es.prologue = v }
}
