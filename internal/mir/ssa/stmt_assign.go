package ssa

import "github.com/malphas-lang/malphas-lang/internal/mir"

// dispatchAssign implements spec.md §4.5's two left-hand-side shapes.
func (t *transformer) dispatchAssign(a *mir.Assign) mir.Statement {
	switch target := a.Target.(type) {
	case *mir.Var:
		return t.assignVar(a, target)
	case *mir.Indexing:
		return t.assignIndexing(a, target)
	default:
		fail(CodeUnexpectedNodeKind, a, "assignment target %T is neither var nor indexing", a.Target)
		return nil
	}
}

// assignVar covers the var-LHS shape. A global store is an explicit
// load/store pair: the RHS is dispatched to a leaf and an Assign statement
// targets the (never renamed) global reference directly.
//
// A local store never emits an Assign: a trivial RHS (a bare variable
// reference or a literal constant) is materialized into a fresh
// "<lhs>_<version>" temporary so later reads have a name to point at,
// while a composite RHS is left as whatever the inner expression-flatten
// already produced — re-wrapping it under the lhs's name would just be a
// redundant copy, since that temporary belongs to this exact assignment
// and nothing else could have aliased it yet.
func (t *transformer) assignVar(a *mir.Assign, target *mir.Var) mir.Statement {
	old, _ := oldVarOf(target)

	if isMarkedGlobal(target) {
		status := t.stack.LookupForUpdate(old, true)
		if status.CurrentValue == nil {
			status.CurrentValue = target
		}
		value := t.dispatchExpr(a.Value, true)
		out := mir.MakeAssignUnattached(status.CurrentValue, value, a.Span())
		copyAttrs(out, a)
		return out
	}

	var newValue mir.Expr
	switch a.Value.(type) {
	case *mir.Var, *mir.Tensor, *mir.Constant:
		dispatched := t.dispatchExpr(a.Value, true)
		newValue = t.addDefRenamed(dispatched, target.Name)
	default:
		newValue = t.dispatchExpr(a.Value, true)
	}

	status := t.stack.LookupForUpdate(old, false)
	status.CurrentValue = newValue
	return nil
}

// assignIndexing covers the tensor-store shape: the store target must
// remain an addressable Indexing (need_flatten=false for its own
// dispatch), while its target/indices still reduce to leaves internally
// (VisitIndexing) and the RHS reduces normally.
func (t *transformer) assignIndexing(a *mir.Assign, target *mir.Indexing) mir.Statement {
	lhs := t.dispatchExpr(target, false)
	rhs := t.dispatchExpr(a.Value, true)
	out := mir.MakeAssignUnattached(lhs, rhs, a.Span())
	copyAttrs(out, a)
	return out
}
