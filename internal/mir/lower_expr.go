package mir

import (
	"fmt"
	"strconv"

	"github.com/malphas-lang/malphas-lang/internal/ast"
	"github.com/malphas-lang/malphas-lang/internal/lexer"
	"github.com/malphas-lang/malphas-lang/internal/types"
)

// lowerExpr lowers an expression to a MIR expression tree. It never
// flattens (that is the SSA pass's job): a nested InfixExpr lowers to a
// nested Generic, exactly mirroring the source shape.
func (l *Lowerer) lowerExpr(expr ast.Expr) (Expr, error) {
	switch e := expr.(type) {
	case *ast.Ident:
		return l.newRef(e.Name, l.typeOf(e.Name), e.Span()), nil
	case *ast.IntegerLit:
		n, err := strconv.ParseInt(e.Text, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid integer literal %q: %w", e.Text, err)
		}
		return MakeConstant(n, types.TypeInt, e.Span()), nil
	case *ast.FloatLit:
		f, err := strconv.ParseFloat(e.Text, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid float literal %q: %w", e.Text, err)
		}
		return MakeConstant(f, types.TypeFloat, e.Span()), nil
	case *ast.StringLit:
		return MakeConstant(e.Value, types.TypeString, e.Span()), nil
	case *ast.BoolLit:
		return MakeConstant(e.Value, types.TypeBool, e.Span()), nil
	case *ast.NilLit:
		return MakeConstant(nil, types.TypeNil, e.Span()), nil
	case *ast.PrefixExpr:
		return l.lowerPrefixExpr(e)
	case *ast.InfixExpr:
		return l.lowerInfixExpr(e)
	case *ast.CallExpr:
		return l.lowerCallExpr(e)
	case *ast.IndexExpr:
		return l.lowerIndexExpr(e)
	default:
		return nil, fmt.Errorf("expression %T is not supported by the tree-shaped MIR lowering (structs, closures, and value-producing if/block expressions are out of scope)", expr)
	}
}

func (l *Lowerer) lowerPrefixExpr(e *ast.PrefixExpr) (Expr, error) {
	operand, err := l.lowerExpr(e.Expr)
	if err != nil {
		return nil, err
	}
	op, ok := prefixOpNames[e.Op]
	if !ok {
		return nil, fmt.Errorf("unsupported prefix operator %q", string(e.Op))
	}
	typ, ok := l.TypeInfo[e]
	if !ok {
		typ = operand.ExprType()
	}
	return MakeGeneric(op, []Expr{operand}, typ, e.Span()), nil
}

func (l *Lowerer) lowerInfixExpr(e *ast.InfixExpr) (Expr, error) {
	left, err := l.lowerExpr(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := l.lowerExpr(e.Right)
	if err != nil {
		return nil, err
	}
	op, ok := infixOpNames[e.Op]
	if !ok {
		return nil, fmt.Errorf("unsupported infix operator %q", string(e.Op))
	}
	typ, ok := l.TypeInfo[e]
	if !ok {
		typ = left.ExprType()
	}
	return MakeGeneric(op, []Expr{left, right}, typ, e.Span()), nil
}

func (l *Lowerer) lowerCallExpr(e *ast.CallExpr) (Expr, error) {
	callee, ok := e.Callee.(*ast.Ident)
	if !ok {
		return nil, fmt.Errorf("indirect calls are not supported by the tree-shaped MIR lowering")
	}

	args := make([]Expr, 0, len(e.Args))
	for _, arg := range e.Args {
		lowered, err := l.lowerExpr(arg)
		if err != nil {
			return nil, err
		}
		args = append(args, lowered)
	}

	typ, ok := l.TypeInfo[e]
	if !ok {
		typ = types.TypeVoid
	}
	return MakeGeneric("call:"+callee.Name, args, typ, e.Span()), nil
}

func (l *Lowerer) lowerIndexExpr(e *ast.IndexExpr) (*Indexing, error) {
	target, err := l.lowerExpr(e.Target)
	if err != nil {
		return nil, err
	}
	indices := make([]Expr, 0, len(e.Indices))
	for _, idx := range e.Indices {
		lowered, err := l.lowerExpr(idx)
		if err != nil {
			return nil, err
		}
		indices = append(indices, lowered)
	}
	typ, ok := l.TypeInfo[e]
	if !ok {
		typ = elemTypeOf(target.ExprType())
	}
	return MakeIndexing(target, indices, typ, e.Span()), nil
}

var prefixOpNames = map[lexer.TokenType]string{
	lexer.MINUS:     "neg",
	lexer.BANG:      "not",
	lexer.AMPERSAND: "ref",
	lexer.REF_MUT:   "ref_mut",
	lexer.ASTERISK:  "deref",
}

var infixOpNames = map[lexer.TokenType]string{
	lexer.PLUS:     "add",
	lexer.MINUS:    "sub",
	lexer.ASTERISK: "mul",
	lexer.SLASH:    "div",
	lexer.LT:       "lt",
	lexer.LE:       "le",
	lexer.GT:       "gt",
	lexer.GE:       "ge",
	lexer.EQ:       "eq",
	lexer.NOT_EQ:   "ne",
	lexer.AND:      "and",
	lexer.OR:       "or",
}
