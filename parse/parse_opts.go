package parse

type parseOpts struct {
	filename string
	prologue bool
}

type ParseOption func(*parseOpts)

// ParseFilename sets the file name used in error messages.
func ParseFilename(name string) ParseOption {
	return func(o *parseOpts) { o.filename = name }
}

// ParsePrologue sets whether leading comment lines are kept in
// Document.Prologue.  It is on by default.
func ParsePrologue(v bool) ParseOption {
	return func(o *parseOpts) { o.prologue = v }
}
