package mir

import "github.com/malphas-lang/malphas-lang/internal/lexer"

// Dispatcher is implemented by a concrete rewrite pass. BaseVisitor's
// DispatchExpr calls back into these hooks, so a pass supplies all six;
// BaseVisitor has no default Visit* methods of its own, and DispatchExpr
// returns a node of any other kind unchanged — the same switch shape as
// internal/ast.Walk, turned from a read-only walk into a rewrite.
type Dispatcher interface {
	VisitVar(*Var) Expr
	VisitTensor(*Tensor) Expr
	VisitConstant(*Constant) Expr
	VisitIndexing(*Indexing) Expr
	VisitPhi(*Phi) Expr
	VisitGeneric(*Generic) Expr
}

// BaseVisitor drives structural recursion and offers AddDef /
// AddDefAfterCurrent for inserting new definitions around whichever
// statement is currently being rewritten. Embed it in a concrete pass and
// set Self to the embedding value so DispatchExpr can call back into it.
type BaseVisitor struct {
	Self Dispatcher

	prefix []Statement // definitions to splice before the current statement
	after  []Statement // definitions to splice after the current statement
}

// DispatchExpr routes e to the hook matching its concrete kind.
func (v *BaseVisitor) DispatchExpr(e Expr) Expr {
	switch n := e.(type) {
	case *Var:
		return v.Self.VisitVar(n)
	case *Tensor:
		return v.Self.VisitTensor(n)
	case *Constant:
		return v.Self.VisitConstant(n)
	case *Indexing:
		return v.Self.VisitIndexing(n)
	case *Phi:
		return v.Self.VisitPhi(n)
	case *Generic:
		return v.Self.VisitGeneric(n)
	default:
		return e
	}
}

// AddDef appends a fresh local temporary definition of expr before the
// statement currently being rewritten, and returns a Var referencing it.
// Callers rename the returned var with a version suffix immediately
// afterward; until then it carries a placeholder name. The temporary's
// SSAData.DefiningExpr is set to expr so later code (and GetValueOfVar)
// can recover what a synthesized temporary actually holds without having
// to re-walk the statement that defines it.
func (v *BaseVisitor) AddDef(expr Expr, span lexer.Span) *Var {
	tmp := &Var{base: base{span: span}, Name: "_t", Type: expr.ExprType()}
	tmp.SetSSA(&SSAData{})
	tmp.SSA().SetDefiningExpr(expr)
	v.prefix = append(v.prefix, MakeVarTensorDefUnattached(tmp, LinkageLocal, expr, span))
	return tmp
}

// AddDefAfterCurrent appends a fresh local temporary definition of expr
// immediately after the statement currently being rewritten (used by the
// loop and if/else merge rules to splice in a phi after the for/if itself).
func (v *BaseVisitor) AddDefAfterCurrent(expr Expr, span lexer.Span) *Var {
	tmp := &Var{base: base{span: span}, Name: "_t", Type: expr.ExprType()}
	tmp.SetSSA(&SSAData{})
	tmp.SSA().SetDefiningExpr(expr)
	v.after = append(v.after, MakeVarTensorDefUnattached(tmp, LinkageLocal, expr, span))
	return tmp
}

// RewriteBlock rewrites each statement of block via rewrite, splicing in
// any AddDef/AddDefAfterCurrent insertions made while rewriting it. rewrite
// may return nil to drop a statement (used when a define with no
// initializer is elided per the definition rule).
func (v *BaseVisitor) RewriteBlock(block Block, rewrite func(Statement) Statement) Block {
	out := make(Block, 0, len(block))
	for _, stmt := range block {
		savedPrefix, savedAfter := v.prefix, v.after
		v.prefix, v.after = nil, nil

		newStmt := rewrite(stmt)

		out = append(out, v.prefix...)
		if newStmt != nil {
			out = append(out, newStmt)
		}
		out = append(out, v.after...)

		v.prefix, v.after = savedPrefix, savedAfter
	}
	return out
}
