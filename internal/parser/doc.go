// Package parser turns a viewgen DSL token stream into the widget tree
// defined in package ast.
//
// The top-level entry points are total: for any input, well-formed or not,
// they produce a tree. A widget body that fails to parse is replaced by a
// fixed placeholder widget whose single property embeds the failure
// diagnostics, so a file with one malformed declaration still generates
// code for every other declaration and surfaces the error at its exact
// source range.
package parser
