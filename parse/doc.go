// Package parse parses PROTO and world file text into an [ir.Document].
//
// # Usage
//
//	doc, err := parse.Parse(data, parse.ParseFilename("Robot.proto"))
//	if err != nil {
//	    return err
//	}
//
// Every field statement becomes one entity: scalar and scalar array
// values become Properties, node values become Nodes and arrays of nodes
// become Containers.  Comments are dropped, except the leading comment
// lines of the file which are kept as the document prologue.
//
// Malformed input yields an [*Error] carrying the position of the
// problem; no partial document is returned.
//
// # Related Packages
//
//   - github.com/signadot/wbproto/ir - document model
//   - github.com/signadot/wbproto/encode - text output
//   - github.com/signadot/wbproto/token - tokenization
package parse
