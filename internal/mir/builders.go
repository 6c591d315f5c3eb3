package mir

import (
	"github.com/malphas-lang/malphas-lang/internal/lexer"
	"github.com/malphas-lang/malphas-lang/internal/types"
)

// MakeVarTensorDefUnattached builds a Define statement with no SSA metadata
// on its target; the pass attaches metadata as part of dispatching it.
func MakeVarTensorDefUnattached(target Expr, linkage Linkage, init Expr, span lexer.Span) *Define {
	return &Define{base: base{span: span}, Target: target, Linkage: linkage, Init: init}
}

// MakeAssignUnattached builds an Assign statement.
func MakeAssignUnattached(target, value Expr, span lexer.Span) *Assign {
	return &Assign{base: base{span: span}, Target: target, Value: value}
}

// MakeForLoopUnattached builds a ForLoop statement around a not-yet-dispatched
// body.
func MakeForLoopUnattached(iterator, begin, end, step Expr, body Block, span lexer.Span) *ForLoop {
	return &ForLoop{base: base{span: span}, Iterator: iterator, Begin: begin, End: end, Step: step, Body: body}
}

// MakeIfElseUnattached builds an IfElse statement. elseBody is nil when the
// source had no else arm.
func MakeIfElseUnattached(cond Expr, thenBody, elseBody Block, span lexer.Span) *IfElse {
	return &IfElse{base: base{span: span}, Cond: cond, Then: thenBody, Else: elseBody}
}

// MakeFunc builds a Func statement.
func MakeFunc(name string, params []Expr, ret types.Type, body Block, span lexer.Span) *Func {
	return &Func{base: base{span: span}, Name: name, Params: params, Return: ret, Body: body}
}

// MakePhi builds a phi node from the given operands (0, 1, or more; the
// loop rule starts with one and appends later).
func MakePhi(typ types.Type, span lexer.Span, operands ...Expr) *Phi {
	return &Phi{base: base{span: span}, Type: typ, Operands: operands}
}

// MakeConstant builds a constant expression.
func MakeConstant(value any, typ types.Type, span lexer.Span) *Constant {
	return &Constant{base: base{span: span}, Value: value, Type: typ}
}

// MakeGeneric builds a catch-all computation node.
func MakeGeneric(op string, operands []Expr, typ types.Type, span lexer.Span) *Generic {
	return &Generic{base: base{span: span}, Op: op, Operands: operands, Type: typ}
}

// MakeIndexing builds a tensor element address.
func MakeIndexing(target Expr, indices []Expr, typ types.Type, span lexer.Span) *Indexing {
	return &Indexing{base: base{span: span}, Target: target, Indices: indices, Type: typ}
}

// MakeReturn builds a Return statement. value is nil for a void return.
func MakeReturn(value Expr, span lexer.Span) *Return {
	return &Return{base: base{span: span}, Value: value}
}

// MakeGlobal builds a module-level Global declaration.
func MakeGlobal(v *Var, init Expr, span lexer.Span) *Global {
	return &Global{base: base{span: span}, Var: v, Init: init}
}

// Remake duplicates v with a fresh, identity-less copy: same name and type,
// no attributes, no SSA metadata. The pass calls this whenever a new SSA
// value needs its own node identity distinct from the old one it replaces.
func (v *Var) Remake() *Var {
	return &Var{base: base{span: v.span}, Name: v.Name, Type: v.Type}
}

// Remake duplicates t with a fresh identity, as Var.Remake does.
func (t *Tensor) Remake() *Tensor {
	return &Tensor{base: base{span: t.span}, Name: t.Name, Type: t.Type}
}
