// Package token provides tokenization support for PROTO and world files
// written in the VRML97-derived scene description syntax.
//
// [Tokenize] is a function for tokenizing bytes. Comments are kept as
// [TComment] tokens so callers can recover verbatim source spans without
// them.
//
// [Balance] checks brace and bracket nesting and returns, for every opening
// token, the index of its matching closing token.
package token
