package ssa

import "github.com/malphas-lang/malphas-lang/internal/mir"

// dispatchExpr implements spec.md §4.2: route e through the visitor's
// per-kind hooks, then — if needFlatten asked for a leaf — wrap whatever
// composite came back in a fresh temporary. Constants and existing
// var/tensor references are already leaves and pass through unwrapped.
func (t *transformer) dispatchExpr(e mir.Expr, needFlatten bool) mir.Expr {
	return t.dispatchExprNamed(e, needFlatten, "t")
}

// dispatchExprNamed is dispatchExpr with control over the temporary's
// base name. Its only caller is dispatchExpr, which passes "t"; the
// assignment rule (§4.5) goes through dispatchExpr too, so a flattened
// composite RHS is named "t_<n>", not after the assigned variable.
func (t *transformer) dispatchExprNamed(e mir.Expr, needFlatten bool, baseName string) mir.Expr {
	result := t.DispatchExpr(e)
	if !needFlatten {
		return result
	}
	switch result.(type) {
	case *mir.Var, *mir.Tensor, *mir.Constant:
		return result
	default:
		leaf := t.addDefRenamed(result, baseName)
		assertLeaf(leaf)
		return leaf
	}
}

// assertLeaf is the §7 "invariant breach" check: a flattened expression must
// come back as var/tensor/constant, since that's the only thing AddDef can
// have produced. It only ever fires if AddDef itself regresses.
func assertLeaf(e mir.Expr) {
	switch e.(type) {
	case *mir.Var, *mir.Tensor, *mir.Constant:
		return
	default:
		fail(CodeInvariantBreach, e, "flattened expression %T did not reduce to a leaf", e)
	}
}

// addDefRenamed appends a definition of expr before the current statement
// and assigns the resulting temporary a versioned name, consuming one tick
// of the pass's rename counter (§4.9).
func (t *transformer) addDefRenamed(expr mir.Expr, baseName string) *mir.Var {
	nv := t.AddDef(expr, expr.Span())
	t.version.renameWithVersion(nv, baseName)
	t.log.Tracef("ssa: defined %s = %s", nv.Name, baseName)
	return nv
}

// VisitTensor implements spec.md §4.3: tensors are reference values, never
// versioned, so a use just returns the scope's current binding verbatim.
func (t *transformer) VisitTensor(v *mir.Tensor) mir.Expr {
	old, _ := oldVarOf(v)
	status, ok := t.stack.Lookup(old)
	if !ok {
		if isMarkedGlobal(v) {
			status = t.stack.InsertGlobal(old, v)
		} else {
			fail(CodeUndefinedVariable, v, "tensor %q used with no enclosing definition", v.Name)
		}
	}
	return status.CurrentValue
}

// VisitVar implements spec.md §4.3's var-use rule: globals load through a
// fresh temporary every read; a local defined outside the loop currently
// being dispatched gets a loop-head phi (patched later by the for rule);
// anything else returns unchanged.
func (t *transformer) VisitVar(v *mir.Var) mir.Expr {
	old, _ := oldVarOf(v)
	status, ok := t.stack.Lookup(old)
	if !ok {
		if isMarkedGlobal(v) {
			status = t.stack.InsertGlobal(old, v)
		} else {
			fail(CodeUndefinedVariable, v, "variable %q used with no enclosing definition", v.Name)
		}
	}

	if isGlobalValue(status.CurrentValue) {
		return t.addDefRenamed(status.CurrentValue, "t")
	}

	defDepth := t.stack.DefDepth(status)
	curDepth := t.stack.CurDepth()
	if curDepth > defDepth {
		phi := mir.MakePhi(status.CurrentValue.ExprType(), v.Span(), status.CurrentValue)
		newVal := t.addDefRenamed(phi, v.Name)
		t.log.Tracef("ssa: loop-phi created for %q at depth %d", v.Name, curDepth)
		shadow := t.stack.InsertLocal(old, newVal)
		shadow.AddForLoopPhi(phi, newVal)
		return newVal
	}

	return status.CurrentValue
}

// VisitConstant returns c unchanged: a constant is always a valid leaf
// operand (§3 invariant 2) and the pass never folds.
func (t *transformer) VisitConstant(c *mir.Constant) mir.Expr {
	return c
}

// VisitIndexing dispatches target and indices (each forced to a leaf) and
// rebuilds the Indexing node; the caller decides via dispatchExpr's
// needFlatten whether this rebuilt composite itself still needs wrapping.
func (t *transformer) VisitIndexing(idx *mir.Indexing) mir.Expr {
	target := t.dispatchExpr(idx.Target, true)
	indices := make([]mir.Expr, len(idx.Indices))
	for i, ix := range idx.Indices {
		indices[i] = t.dispatchExpr(ix, true)
	}
	out := mir.MakeIndexing(target, indices, idx.Type, idx.Span())
	copyAttrs(out, idx)
	return out
}

// VisitPhi dispatches each operand of an already-SSA phi node. Input trees
// shouldn't contain phis before the first pass runs; this hook exists so a
// second application of the pass (round-trip, spec.md §8) degrades to a
// harmless re-walk instead of an unhandled-kind panic.
func (t *transformer) VisitPhi(p *mir.Phi) mir.Expr {
	operands := make([]mir.Expr, len(p.Operands))
	for i, op := range p.Operands {
		operands[i] = t.dispatchExpr(op, true)
	}
	out := mir.MakePhi(p.Type, p.Span(), operands...)
	copyAttrs(out, p)
	return out
}

// VisitGeneric flattens every operand of an arbitrary computation to a
// leaf and rebuilds the node; the flattening of the Generic itself as a
// whole is the caller's responsibility (dispatchExpr's needFlatten).
func (t *transformer) VisitGeneric(g *mir.Generic) mir.Expr {
	operands := make([]mir.Expr, len(g.Operands))
	for i, op := range g.Operands {
		operands[i] = t.dispatchExpr(op, true)
	}
	out := mir.MakeGeneric(g.Op, operands, g.Type, g.Span())
	copyAttrs(out, g)
	return out
}

// isMarkedGlobal reports whether e denotes a module global, by either the
// lowerer's module_global_offset attribute or an already-attached is_global
// SSA metadata record.
func isMarkedGlobal(e mir.Expr) bool {
	if e.Attrs().Has(mir.ModuleGlobalOffset) {
		return true
	}
	if d := e.SSA(); d != nil && d.IsGlobal {
		return true
	}
	return false
}

// isGlobalValue reports whether a scope's current_value for some variable
// is itself a global reference, i.e. reads of it must load through a fresh
// temporary rather than being substituted directly.
func isGlobalValue(e mir.Expr) bool {
	v, ok := e.(*mir.Var)
	return ok && isMarkedGlobal(v)
}
