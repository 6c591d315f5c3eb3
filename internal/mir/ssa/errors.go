package ssa

import (
	"fmt"

	"github.com/malphas-lang/malphas-lang/internal/mir"
)

// Code identifies a class of internal invariant failure. These are compiler
// bugs, not user-facing diagnostics: the pass panics with an *InternalError
// rather than returning one, per the error-handling split documented
// alongside the CLI's recovery boundary.
type Code string

const (
	CodeUndefinedVariable  Code = "undefined_variable_use"
	CodeUnexpectedNodeKind Code = "unexpected_node_kind"
	CodeNonLocalLinkage    Code = "non_local_linkage_on_local_define"
	CodeInvariantBreach    Code = "invariant_breach"
)

// InternalError is the panic value for every fatal assertion the pass can
// hit. It is never recovered inside this package; only the outermost CLI
// boundary catches it.
type InternalError struct {
	Code Code
	Node mir.Node
	Msg  string
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("ssa: %s: %s", e.Code, e.Msg)
}

func fail(code Code, node mir.Node, format string, args ...any) {
	panic(&InternalError{Code: code, Node: node, Msg: fmt.Sprintf(format, args...)})
}
