package ast

import "github.com/malphas-lang/malphas-lang/internal/lexer"

// The base node set in ast.go predates several node kinds this file adds
// constructors for. Kept together here rather than scattered per-type file
// since each is a small, mechanical builder/SetSpan pair.

func NewReturnStmt(value Expr, span lexer.Span) *ReturnStmt {
	return &ReturnStmt{Value: value, span: span}
}

func (s *ReturnStmt) SetSpan(span lexer.Span) { s.span = span }

func NewExprStmt(expr Expr, span lexer.Span) *ExprStmt {
	return &ExprStmt{Expr: expr, span: span}
}

func (s *ExprStmt) SetSpan(span lexer.Span) { s.span = span }

func NewPrefixExpr(op lexer.TokenType, expr Expr, span lexer.Span) *PrefixExpr {
	return &PrefixExpr{Op: op, Expr: expr, span: span}
}

func (e *PrefixExpr) SetSpan(span lexer.Span) { e.span = span }

func NewAssignExpr(target, value Expr, span lexer.Span) *AssignExpr {
	return &AssignExpr{Target: target, Value: value, span: span}
}

func (e *AssignExpr) SetSpan(span lexer.Span) { e.span = span }

func NewCallExpr(callee Expr, args []Expr, span lexer.Span) *CallExpr {
	return &CallExpr{Callee: callee, Args: args, span: span}
}

func (e *CallExpr) SetSpan(span lexer.Span) { e.span = span }

func NewFieldExpr(target Expr, field *Ident, span lexer.Span) *FieldExpr {
	return &FieldExpr{Target: target, Field: field, span: span}
}

func (e *FieldExpr) SetSpan(span lexer.Span) { e.span = span }

func NewNamedType(name *Ident, span lexer.Span) *NamedType {
	return &NamedType{Name: name, span: span}
}

func (t *NamedType) SetSpan(span lexer.Span) { t.span = span }

func NewParam(name *Ident, typ TypeExpr, span lexer.Span) *Param {
	return &Param{Name: name, Type: typ, span: span}
}

func (p *Param) SetSpan(span lexer.Span) { p.span = span }

func NewUseDecl(path []*Ident, alias *Ident, span lexer.Span) *UseDecl {
	return &UseDecl{Path: path, Alias: alias, span: span}
}

func (d *UseDecl) SetSpan(span lexer.Span) { d.span = span }
