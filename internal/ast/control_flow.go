package ast

import "github.com/malphas-lang/malphas-lang/internal/lexer"

// IfClause is one `cond { body }` arm of an if/else-if chain.
type IfClause struct {
	Condition Expr
	Body      *BlockExpr
	span      lexer.Span
}

func (c *IfClause) Span() lexer.Span    { return c.span }
func (c *IfClause) SetSpan(s lexer.Span) { c.span = s }

func NewIfClause(condition Expr, body *BlockExpr, span lexer.Span) *IfClause {
	return &IfClause{Condition: condition, Body: body, span: span}
}

// IfExpr represents an if/else-if/else expression. malphas has no bare if
// statement: every if is parsed as an expression, matching how BlockExpr's
// tail slot is the only way to produce a value from a block.
type IfExpr struct {
	Clauses []*IfClause
	Else    *BlockExpr
	span    lexer.Span
}

func (e *IfExpr) Span() lexer.Span    { return e.span }
func (e *IfExpr) SetSpan(s lexer.Span) { e.span = s }
func (*IfExpr) exprNode()             {}

func NewIfExpr(clauses []*IfClause, elseBlock *BlockExpr, span lexer.Span) *IfExpr {
	return &IfExpr{Clauses: clauses, Else: elseBlock, span: span}
}

// WhileStmt represents a while loop.
type WhileStmt struct {
	Condition Expr
	Body      *BlockExpr
	span      lexer.Span
}

func (s *WhileStmt) Span() lexer.Span    { return s.span }
func (s *WhileStmt) SetSpan(sp lexer.Span) { s.span = sp }
func (*WhileStmt) stmtNode()             {}

func NewWhileStmt(condition Expr, body *BlockExpr, span lexer.Span) *WhileStmt {
	return &WhileStmt{Condition: condition, Body: body, span: span}
}

// ForStmt represents a `for <iterator> in <iterable> { body }` loop.
type ForStmt struct {
	Iterator *Ident
	Iterable Expr
	Body     *BlockExpr
	span     lexer.Span
}

func (s *ForStmt) Span() lexer.Span    { return s.span }
func (s *ForStmt) SetSpan(sp lexer.Span) { s.span = sp }
func (*ForStmt) stmtNode()             {}

func NewForStmt(iterator *Ident, iterable Expr, body *BlockExpr, span lexer.Span) *ForStmt {
	return &ForStmt{Iterator: iterator, Iterable: iterable, Body: body, span: span}
}

// BreakStmt represents a break statement.
type BreakStmt struct {
	span lexer.Span
}

func (s *BreakStmt) Span() lexer.Span    { return s.span }
func (s *BreakStmt) SetSpan(sp lexer.Span) { s.span = sp }
func (*BreakStmt) stmtNode()             {}

func NewBreakStmt(span lexer.Span) *BreakStmt { return &BreakStmt{span: span} }

// ContinueStmt represents a continue statement.
type ContinueStmt struct {
	span lexer.Span
}

func (s *ContinueStmt) Span() lexer.Span    { return s.span }
func (s *ContinueStmt) SetSpan(sp lexer.Span) { s.span = sp }
func (*ContinueStmt) stmtNode()             {}

func NewContinueStmt(span lexer.Span) *ContinueStmt { return &ContinueStmt{span: span} }
