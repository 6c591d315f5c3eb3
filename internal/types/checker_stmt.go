package types

import (
	"github.com/malphas-lang/malphas-lang/internal/ast"
	"github.com/malphas-lang/malphas-lang/internal/diag"
)

// checkBlock type-checks every statement in a block and returns the type of
// its tail expression, or TypeVoid if the block has none.
func (c *Checker) checkBlock(block *ast.BlockExpr, scope *Scope) Type {
	inner := NewScope(scope)

	for _, stmt := range block.Stmts {
		c.checkStmt(stmt, inner)
	}

	if block.Tail != nil {
		return c.checkExpr(block.Tail, inner)
	}
	return TypeVoid
}

func (c *Checker) checkStmt(stmt ast.Stmt, scope *Scope) {
	switch s := stmt.(type) {
	case *ast.LetStmt:
		c.checkLetStmt(s, scope)
	case *ast.ReturnStmt:
		c.checkReturnStmt(s, scope)
	case *ast.ExprStmt:
		c.checkExpr(s.Expr, scope)
	case *ast.WhileStmt:
		c.checkWhileStmt(s, scope)
	case *ast.ForStmt:
		c.checkForStmt(s, scope)
	case *ast.BreakStmt:
		if c.loopDepth == 0 {
			c.reportError("`break` used outside of a loop", s.Span(), diag.CodeUnreachableCode)
		}
	case *ast.ContinueStmt:
		if c.loopDepth == 0 {
			c.reportError("`continue` used outside of a loop", s.Span(), diag.CodeUnreachableCode)
		}
	default:
		c.reportError("unsupported statement", stmt.Span(), diag.CodeTypeInvalidOperation)
	}
}

func (c *Checker) checkLetStmt(s *ast.LetStmt, scope *Scope) {
	valueType := c.checkExpr(s.Value, scope)

	declType := valueType
	if s.Type != nil {
		declType = c.resolveType(s.Type)
		if !assignableTo(valueType, declType) {
			c.reportError(
				"cannot assign value of type `"+valueType.String()+"` to `"+s.Name.Name+"` of type `"+declType.String()+"`",
				s.Value.Span(),
				diag.CodeTypeMismatch,
			)
		}
	}

	scope.Insert(s.Name.Name, &Symbol{
		Name:    s.Name.Name,
		Type:    declType,
		DefNode: s,
	})
}

func (c *Checker) checkReturnStmt(s *ast.ReturnStmt, scope *Scope) {
	if s.Value == nil {
		if c.returnType != nil && c.returnType != TypeVoid {
			c.reportError("missing return value for function returning `"+c.returnType.String()+"`", s.Span(), diag.CodeTypeMismatch)
		}
		return
	}

	valueType := c.checkExpr(s.Value, scope)
	if c.returnType != nil && !assignableTo(valueType, c.returnType) {
		c.reportError(
			"cannot return value of type `"+valueType.String()+"` from function returning `"+c.returnType.String()+"`",
			s.Value.Span(),
			diag.CodeTypeMismatch,
		)
	}
}

func (c *Checker) checkWhileStmt(s *ast.WhileStmt, scope *Scope) {
	condType := c.checkExpr(s.Condition, scope)
	if !sameType(condType, TypeBool) {
		c.reportError("`while` condition must be `bool`, found `"+condType.String()+"`", s.Condition.Span(), diag.CodeTypeMismatch)
	}

	c.loopDepth++
	c.checkBlock(s.Body, scope)
	c.loopDepth--
}

func (c *Checker) checkForStmt(s *ast.ForStmt, scope *Scope) {
	iterableType := c.checkExpr(s.Iterable, scope)

	elem := elemType(iterableType)
	if elem == nil {
		c.reportError("`"+iterableType.String()+"` is not iterable", s.Iterable.Span(), diag.CodeTypeMismatch)
		elem = TypeVoid
	}

	inner := NewScope(scope)
	inner.Insert(s.Iterator.Name, &Symbol{
		Name:    s.Iterator.Name,
		Type:    elem,
		DefNode: s.Iterator,
	})

	c.loopDepth++
	c.checkBlock(s.Body, inner)
	c.loopDepth--
}
