package ast

import (
	"github.com/expr-lang/expr/vm"
)

// Expression is an embedded expression as produced by the expression
// engine. Src is the exact source slice; Program is the compiled form, nil
// when compilation was skipped or failed in loose mode.
type Expression struct {
	Span    Span
	Src     string
	Program *vm.Program
}

// IsEmpty reports whether the expression carries no source text, which is
// the loose-mode placeholder for an unparsable or missing expression.
func (e *Expression) IsEmpty() bool { return e == nil || e.Src == "" }

// Pattern is a binding pattern (identifier or destructuring form) found in
// a block header or snippet parameter list. Names lists the identifiers
// the pattern binds, in source order.
type Pattern struct {
	Span  Span
	Src   string
	Names []string
}

// Program is the content of a script block. The statement grammar belongs
// to the expression engine; the parser retains the exact source slice, its
// span in the original file, and the comments found at the top level.
type Program struct {
	Span     Span
	Src      string
	Comments []JsComment
}
