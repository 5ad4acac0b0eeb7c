// Package codegen walks widget trees and emits imperative Go construction
// code: one Build* function per top-level widget, with constructor calls,
// property setters, signal connections and child attachment in declaration
// order.
//
// Trees that embed parse errors produce no code; their diagnostics are
// returned instead, while every healthy tree in the same file still
// generates. Widgets marked #[local] become function parameters rather
// than constructed values. Signal handlers are referenced by name and are
// expected to exist in the generated file's package. The mut marker and
// the some(...) wrapper affect only the declared tree shape; Go values
// need no rendering for either.
package codegen
