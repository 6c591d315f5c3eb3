package ast

import "github.com/malphas-lang/malphas-lang/internal/lexer"

// IndexExpr represents indexing, `target[i, j, ...]`. Malphas has no
// separate tensor-index syntax: every IndexExpr, whatever its number of
// indices, doubles as tensor element access once it reaches MIR lowering.
type IndexExpr struct {
	Target  Expr
	Indices []Expr
	span    lexer.Span
}

func (e *IndexExpr) Span() lexer.Span    { return e.span }
func (e *IndexExpr) SetSpan(s lexer.Span) { e.span = s }
func (*IndexExpr) exprNode()             {}

func NewIndexExpr(target Expr, indices []Expr, span lexer.Span) *IndexExpr {
	return &IndexExpr{Target: target, Indices: indices, span: span}
}
