package token

// Keywords with a fixed meaning in field and node statements.
const (
	KwDEF         = "DEF"
	KwUSE         = "USE"
	KwIS          = "IS"
	KwPROTO       = "PROTO"
	KwEXTERNPROTO = "EXTERNPROTO"
	KwIMPORTABLE  = "IMPORTABLE"
	KwTRUE        = "TRUE"
	KwFALSE       = "FALSE"
	KwNULL        = "NULL"
)

// IsValueKeyword reports whether d is an identifier that denotes a scalar
// value rather than a field name or node type.
func IsValueKeyword(d []byte) bool {
	switch string(d) {
	case KwTRUE, KwFALSE, KwNULL:
		return true
	}
	return false
}
