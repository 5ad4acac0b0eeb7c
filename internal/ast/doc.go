// Package ast defines the widget tree produced by the parser and consumed
// by the code generator. Nodes are plain structs; they are created during
// parsing and never mutated afterwards.
//
// PropertyType is a closed sum. One of its arms, ParseError, carries the
// diagnostics of a failed sub-parse instead of property data: a malformed
// widget still yields a well-formed tree, and the generator decides how to
// surface the embedded failure.
package ast
