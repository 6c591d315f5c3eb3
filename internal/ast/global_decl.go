package ast

import "github.com/malphas-lang/malphas-lang/internal/lexer"

// GlobalDecl represents a module-level global variable declaration:
// global <name>: <type> = <init>;
//
// Unlike LetStmt, a GlobalDecl lives in File.Decls alongside functions,
// not inside a function body, and its storage is module-wide rather
// than stack-local.
type GlobalDecl struct {
	Name  *Ident
	Type  TypeExpr
	Value Expr
	span  lexer.Span
}

// Span returns the declaration span.
func (d *GlobalDecl) Span() lexer.Span { return d.span }

// declNode marks GlobalDecl as a top-level declaration.
func (*GlobalDecl) declNode() {}

// NewGlobalDecl constructs a global declaration node.
func NewGlobalDecl(name *Ident, typ TypeExpr, value Expr, span lexer.Span) *GlobalDecl {
	return &GlobalDecl{
		Name:  name,
		Type:  typ,
		Value: value,
		span:  span,
	}
}

// SetSpan updates the global declaration span.
func (d *GlobalDecl) SetSpan(span lexer.Span) {
	d.span = span
}
