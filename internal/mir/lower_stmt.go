package mir

import (
	"fmt"

	"github.com/malphas-lang/malphas-lang/internal/ast"
	"github.com/malphas-lang/malphas-lang/internal/lexer"
	"github.com/malphas-lang/malphas-lang/internal/types"
)

func (l *Lowerer) lowerStmts(stmts []ast.Stmt) (Block, error) {
	out := make(Block, 0, len(stmts))
	for _, stmt := range stmts {
		lowered, err := l.lowerStmt(stmt)
		if err != nil {
			return nil, err
		}
		out = append(out, lowered...)
	}
	return out, nil
}

// lowerStmt lowers one AST statement into zero or more MIR statements (a
// LetStmt with no initializer still produces a Define so the pass has
// something to elide per its own rule; every other case produces exactly
// one).
func (l *Lowerer) lowerStmt(stmt ast.Stmt) (Block, error) {
	switch s := stmt.(type) {
	case *ast.LetStmt:
		return l.lowerLetStmt(s)
	case *ast.ReturnStmt:
		return l.lowerReturnStmt(s)
	case *ast.ExprStmt:
		return l.lowerExprStmt(s)
	case *ast.ForStmt:
		return l.lowerForStmt(s)
	default:
		return nil, fmt.Errorf("statement %T is not supported by the tree-shaped MIR lowering (unstructured control flow and while loops are out of scope)", stmt)
	}
}

func (l *Lowerer) lowerLetStmt(s *ast.LetStmt) (Block, error) {
	typ := types.ResolveASTType(l.GlobalScope, s.Type)
	if s.Type == nil {
		if t, ok := l.TypeInfo[s.Value]; ok {
			typ = t
		}
	}
	l.locals[s.Name.Name] = typ

	target := l.newRef(s.Name.Name, typ, s.Span())

	if s.Value == nil {
		return Block{MakeVarTensorDefUnattached(target, LinkageLocal, nil, s.Span())}, nil
	}

	init, err := l.lowerExpr(s.Value)
	if err != nil {
		return nil, err
	}
	return Block{MakeVarTensorDefUnattached(target, LinkageLocal, init, s.Span())}, nil
}

func (l *Lowerer) lowerReturnStmt(s *ast.ReturnStmt) (Block, error) {
	if s.Value == nil {
		return Block{&Return{base: base{span: s.Span()}}}, nil
	}
	val, err := l.lowerExpr(s.Value)
	if err != nil {
		return nil, err
	}
	return Block{&Return{base: base{span: s.Span()}, Value: val}}, nil
}

func (l *Lowerer) lowerExprStmt(s *ast.ExprStmt) (Block, error) {
	switch e := s.Expr.(type) {
	case *ast.AssignExpr:
		return l.lowerAssignStmt(e)
	case *ast.IfExpr:
		return l.lowerIfStmt(e)
	default:
		val, err := l.lowerExpr(s.Expr)
		if err != nil {
			return nil, err
		}
		discard := &Var{base: base{span: s.Span()}, Name: "_", Type: val.ExprType()}
		return Block{MakeVarTensorDefUnattached(discard, LinkageLocal, val, s.Span())}, nil
	}
}

func (l *Lowerer) lowerAssignStmt(e *ast.AssignExpr) (Block, error) {
	value, err := l.lowerExpr(e.Value)
	if err != nil {
		return nil, err
	}

	switch target := e.Target.(type) {
	case *ast.Ident:
		typ := l.typeOf(target.Name)
		ref := l.newRef(target.Name, typ, target.Span())
		return Block{MakeAssignUnattached(ref, value, e.Span())}, nil
	case *ast.IndexExpr:
		lhs, err := l.lowerIndexExpr(target)
		if err != nil {
			return nil, err
		}
		return Block{MakeAssignUnattached(lhs, value, e.Span())}, nil
	default:
		return nil, fmt.Errorf("assignment target %T is not supported by the tree-shaped MIR lowering", e.Target)
	}
}

func (l *Lowerer) lowerIfStmt(e *ast.IfExpr) (Block, error) {
	if len(e.Clauses) != 1 {
		return nil, fmt.Errorf("else-if chains are not supported by the tree-shaped MIR lowering")
	}
	clause := e.Clauses[0]

	cond, err := l.lowerExpr(clause.Condition)
	if err != nil {
		return nil, err
	}
	thenBody, err := l.lowerStmts(clause.Body.Stmts)
	if err != nil {
		return nil, err
	}
	if clause.Body.Tail != nil {
		return nil, fmt.Errorf("an `if` used as a statement may not produce a tail value")
	}

	var elseBody Block
	if e.Else != nil {
		elseBody, err = l.lowerStmts(e.Else.Stmts)
		if err != nil {
			return nil, err
		}
		if e.Else.Tail != nil {
			return nil, fmt.Errorf("an `if`/`else` used as a statement may not produce a tail value")
		}
	}

	return Block{MakeIfElseUnattached(cond, thenBody, elseBody, e.Span())}, nil
}

// lowerForStmt lowers `for x in iterable { body }`, where iterable is a
// tensor (array or slice), into the counted loop shape spec.md's for rule
// operates on: a fresh index variable ranging 0..len(iterable), with the
// original loop variable bound at the top of the body by indexing.
func (l *Lowerer) lowerForStmt(s *ast.ForStmt) (Block, error) {
	iterableType, ok := l.TypeInfo[s.Iterable]
	if !ok {
		iterableType = types.TypeVoid
	}
	elemType := elemTypeOf(iterableType)

	iterable, err := l.lowerExpr(s.Iterable)
	if err != nil {
		return nil, err
	}

	idxName := l.freshName("idx")
	idx := &Var{base: base{span: s.Span()}, Name: idxName, Type: types.TypeInt}

	begin := MakeConstant(int64(0), types.TypeInt, s.Span())
	end := lengthOf(iterable, iterableType, s.Span())
	step := MakeConstant(int64(1), types.TypeInt, s.Span())

	prevType, hadPrev := l.locals[s.Iterator.Name]
	l.locals[s.Iterator.Name] = elemType
	elemRef := l.newRef(s.Iterator.Name, elemType, s.Iterator.Span())

	bodyStmts, err := l.lowerStmts(s.Body.Stmts)
	if err != nil {
		return nil, err
	}
	if hadPrev {
		l.locals[s.Iterator.Name] = prevType
	} else {
		delete(l.locals, s.Iterator.Name)
	}

	bind := MakeVarTensorDefUnattached(elemRef, LinkageLocal, MakeIndexing(iterable, []Expr{idx}, elemType, s.Span()), s.Span())
	body := append(Block{bind}, bodyStmts...)

	return Block{MakeForLoopUnattached(idx, begin, end, step, body, s.Span())}, nil
}

func lengthOf(tensor Expr, tensorType types.Type, span lexer.Span) Expr {
	if arr, ok := tensorType.(*types.Array); ok {
		return MakeConstant(int64(arr.Len), types.TypeInt, span)
	}
	return MakeGeneric("len", []Expr{tensor}, types.TypeInt, span)
}

func elemTypeOf(t types.Type) types.Type {
	switch tt := t.(type) {
	case *types.Array:
		return tt.Elem
	case *types.Slice:
		return tt.Elem
	default:
		return types.TypeVoid
	}
}

func (l *Lowerer) freshName(prefix string) string {
	l.tmpCounter++
	return fmt.Sprintf("$%s%d", prefix, l.tmpCounter)
}
