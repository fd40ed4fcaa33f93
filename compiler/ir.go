// Package compiler expands a linked set of parser.Function declarations
// into compiled functions reduced to a single primitive: or-of-signed-
// operands, one per assignee (spec.md §4.4 "Compiler"). Grounded on
// original_source/src/ant/world/parser/compiler/call.rs's expand_call and
// resolve_and_gate, and on the teacher's runtime/ir/transform.go for the
// post-order temp-assigning walk shape.
package compiler

import "github.com/cxrvus/antbyte/parser"

// CompositeStatement is the residual statement form: `assignee = or(args...)`
// with each arg and the assignee itself carrying an independent sign
// (spec.md §4.4 "Residual form").
type CompositeStatement struct {
	Assignee parser.ParamValue
	Args     []parser.ParamValue
}

// Function is a fully-expanded compiled function: every statement is in
// residual form and every call has been inlined away.
type Function struct {
	Signature  parser.Signature
	Statements []CompositeStatement
	File       string
}

// threeAddr is the intermediate form produced by expression flattening,
// before AND->OR normalization and call expansion: a call that may still
// name a user/stdlib function, with exactly the assignees the source
// statement (or a synthesized temporary) declared.
type threeAddr struct {
	FuncName  string
	Args      []parser.ParamValue
	Assignees []parser.ParamValue
}
