package types

import (
	"strconv"

	"github.com/malphas-lang/malphas-lang/internal/ast"
	"github.com/malphas-lang/malphas-lang/internal/diag"
	"github.com/malphas-lang/malphas-lang/internal/lexer"
)

// checkExpr type-checks an expression and returns its type. On error it
// records a diagnostic and returns TypeVoid so callers can keep checking
// the rest of the tree without cascading nil-pointer panics.
func (c *Checker) checkExpr(expr ast.Expr, scope *Scope) Type {
	t := c.checkExprKind(expr, scope)
	c.TypeInfo[expr] = t
	return t
}

func (c *Checker) checkExprKind(expr ast.Expr, scope *Scope) Type {
	switch e := expr.(type) {
	case *ast.Ident:
		sym := scope.Lookup(e.Name)
		if sym == nil {
			c.reportError("undefined identifier `"+e.Name+"`", e.Span(), diag.CodeTypeUndefinedIdentifier)
			return TypeVoid
		}
		if sym.Type == nil {
			return TypeVoid
		}
		return sym.Type
	case *ast.IntegerLit:
		return TypeInt
	case *ast.FloatLit:
		return TypeFloat
	case *ast.StringLit:
		return TypeString
	case *ast.BoolLit:
		return TypeBool
	case *ast.NilLit:
		return TypeNil
	case *ast.PrefixExpr:
		return c.checkPrefixExpr(e, scope)
	case *ast.InfixExpr:
		return c.checkInfixExpr(e, scope)
	case *ast.AssignExpr:
		return c.checkAssignExpr(e, scope)
	case *ast.CallExpr:
		return c.checkCallExpr(e, scope)
	case *ast.FieldExpr:
		return c.checkFieldExpr(e, scope)
	case *ast.IndexExpr:
		return c.checkIndexExpr(e, scope)
	case *ast.IfExpr:
		return c.checkIfExpr(e, scope)
	case *ast.BlockExpr:
		return c.checkBlock(e, scope)
	default:
		c.reportError("unsupported expression", expr.Span(), diag.CodeTypeInvalidOperation)
		return TypeVoid
	}
}

func (c *Checker) checkPrefixExpr(e *ast.PrefixExpr, scope *Scope) Type {
	operandType := c.checkExpr(e.Expr, scope)

	switch e.Op {
	case lexer.MINUS:
		if !sameType(operandType, TypeInt) && !sameType(operandType, TypeFloat) {
			c.reportError("unary `-` requires a numeric operand, found `"+operandType.String()+"`", e.Span(), diag.CodeTypeInvalidOperation)
			return TypeVoid
		}
		return operandType
	case lexer.BANG:
		if !sameType(operandType, TypeBool) {
			c.reportError("unary `!` requires a `bool` operand, found `"+operandType.String()+"`", e.Span(), diag.CodeTypeInvalidOperation)
			return TypeVoid
		}
		return TypeBool
	case lexer.AMPERSAND:
		return &Reference{Elem: operandType, Mutable: false}
	case lexer.REF_MUT:
		return &Reference{Elem: operandType, Mutable: true}
	case lexer.ASTERISK:
		elem := elemType(operandType)
		if elem == nil {
			c.reportError("cannot dereference `"+operandType.String()+"`", e.Span(), diag.CodeTypeInvalidOperation)
			return TypeVoid
		}
		return elem
	default:
		c.reportError("unsupported prefix operator `"+string(e.Op)+"`", e.Span(), diag.CodeTypeInvalidOperation)
		return TypeVoid
	}
}

func (c *Checker) checkInfixExpr(e *ast.InfixExpr, scope *Scope) Type {
	leftType := c.checkExpr(e.Left, scope)
	rightType := c.checkExpr(e.Right, scope)

	switch e.Op {
	case lexer.PLUS, lexer.MINUS, lexer.ASTERISK, lexer.SLASH:
		if !isNumeric(leftType) || !isNumeric(rightType) || !sameType(leftType, rightType) {
			c.reportError(
				"operator `"+string(e.Op)+"` requires matching numeric operands, found `"+leftType.String()+"` and `"+rightType.String()+"`",
				e.Span(), diag.CodeTypeInvalidOperation,
			)
			return TypeVoid
		}
		return leftType
	case lexer.LT, lexer.LE, lexer.GT, lexer.GE:
		if !isNumeric(leftType) || !isNumeric(rightType) || !sameType(leftType, rightType) {
			c.reportError(
				"comparison requires matching numeric operands, found `"+leftType.String()+"` and `"+rightType.String()+"`",
				e.Span(), diag.CodeTypeInvalidOperation,
			)
		}
		return TypeBool
	case lexer.EQ, lexer.NOT_EQ:
		if !sameType(leftType, rightType) && !assignableTo(leftType, rightType) && !assignableTo(rightType, leftType) {
			c.reportError(
				"cannot compare `"+leftType.String()+"` with `"+rightType.String()+"`",
				e.Span(), diag.CodeTypeInvalidOperation,
			)
		}
		return TypeBool
	case lexer.AND, lexer.OR:
		if !sameType(leftType, TypeBool) || !sameType(rightType, TypeBool) {
			c.reportError(
				"operator `"+string(e.Op)+"` requires `bool` operands, found `"+leftType.String()+"` and `"+rightType.String()+"`",
				e.Span(), diag.CodeTypeInvalidOperation,
			)
		}
		return TypeBool
	default:
		c.reportError("unsupported infix operator `"+string(e.Op)+"`", e.Span(), diag.CodeTypeInvalidOperation)
		return TypeVoid
	}
}

func (c *Checker) checkAssignExpr(e *ast.AssignExpr, scope *Scope) Type {
	targetType := c.checkExpr(e.Target, scope)
	valueType := c.checkExpr(e.Value, scope)

	if _, ok := e.Target.(*ast.Ident); !ok {
		if _, ok := e.Target.(*ast.IndexExpr); !ok {
			if _, ok := e.Target.(*ast.FieldExpr); !ok {
				c.reportError("invalid assignment target", e.Target.Span(), diag.CodeTypeCannotAssign)
			}
		}
	}

	if !assignableTo(valueType, targetType) {
		c.reportError(
			"cannot assign value of type `"+valueType.String()+"` to target of type `"+targetType.String()+"`",
			e.Span(), diag.CodeTypeCannotAssign,
		)
	}

	return targetType
}

func (c *Checker) checkCallExpr(e *ast.CallExpr, scope *Scope) Type {
	calleeType := c.checkExpr(e.Callee, scope)

	fnType, ok := calleeType.(*Function)
	if !ok {
		if _, ok := calleeType.(*Named); ok {
			// Unresolved callee: struct/enum constructors are out of scope,
			// so there's nothing further to check.
			return TypeVoid
		}
		c.reportError("`"+calleeType.String()+"` is not callable", e.Callee.Span(), diag.CodeTypeInvalidOperation)
		return TypeVoid
	}

	if len(e.Args) != len(fnType.Params) {
		c.reportError(
			"expected "+strconv.Itoa(len(fnType.Params))+" argument(s), found "+strconv.Itoa(len(e.Args)),
			e.Span(), diag.CodeTypeMismatch,
		)
	}

	for i, arg := range e.Args {
		argType := c.checkExpr(arg, scope)
		if i >= len(fnType.Params) {
			continue
		}
		if !assignableTo(argType, fnType.Params[i]) {
			c.reportError(
				"argument "+strconv.Itoa(i+1)+" has type `"+argType.String()+"`, expected `"+fnType.Params[i].String()+"`",
				arg.Span(), diag.CodeTypeMismatch,
			)
		}
	}

	return fnType.Return
}

// checkFieldExpr type-checks the receiver of a field access. There are no
// struct declarations to resolve fields against, so this only validates the
// target and yields TypeVoid.
func (c *Checker) checkFieldExpr(e *ast.FieldExpr, scope *Scope) Type {
	c.checkExpr(e.Target, scope)
	return TypeVoid
}

func (c *Checker) checkIndexExpr(e *ast.IndexExpr, scope *Scope) Type {
	targetType := c.checkExpr(e.Target, scope)

	for _, index := range e.Indices {
		indexType := c.checkExpr(index, scope)
		if !sameType(indexType, TypeInt) {
			c.reportError("index must be `int`, found `"+indexType.String()+"`", index.Span(), diag.CodeTypeMismatch)
		}
	}

	elem := elemType(targetType)
	if elem == nil {
		if _, ok := targetType.(*Named); ok {
			return TypeVoid
		}
		c.reportError("`"+targetType.String()+"` cannot be indexed", e.Target.Span(), diag.CodeTypeInvalidOperation)
		return TypeVoid
	}
	return elem
}

func (c *Checker) checkIfExpr(e *ast.IfExpr, scope *Scope) Type {
	var result Type

	for _, clause := range e.Clauses {
		condType := c.checkExpr(clause.Condition, scope)
		if !sameType(condType, TypeBool) {
			c.reportError("`if` condition must be `bool`, found `"+condType.String()+"`", clause.Condition.Span(), diag.CodeTypeMismatch)
		}

		clauseType := c.checkBlock(clause.Body, scope)
		if result == nil {
			result = clauseType
		} else if e.Else != nil && !sameType(result, clauseType) {
			c.reportError(
				"`if`/`else if` branches have incompatible types `"+result.String()+"` and `"+clauseType.String()+"`",
				clause.Body.Span(), diag.CodeTypeMismatch,
			)
		}
	}

	if e.Else != nil {
		elseType := c.checkBlock(e.Else, scope)
		if result != nil && !sameType(result, elseType) {
			c.reportError(
				"`if` and `else` branches have incompatible types `"+result.String()+"` and `"+elseType.String()+"`",
				e.Else.Span(), diag.CodeTypeMismatch,
			)
		}
		return result
	}

	// No `else`: the expression may not produce a value on every path, so
	// it can only be used as a statement, not as a tail value.
	return TypeVoid
}

func isNumeric(t Type) bool {
	return sameType(t, TypeInt) || sameType(t, TypeFloat)
}

