package ssa

import "github.com/malphas-lang/malphas-lang/internal/mir"

// dispatchForLoop implements spec.md §4.6: dispatch the bounds in the
// enclosing scope, push a loop scope and bind a fresh iterator, dispatch
// the body (creating loop-head phis for any outer variable the body
// reads — §4.3), then merge the popped scope back into the parent.
func (t *transformer) dispatchForLoop(f *mir.ForLoop) mir.Statement {
	begin := t.dispatchExpr(f.Begin, false)
	end := t.dispatchExpr(f.End, false)
	step := t.dispatchExpr(f.Step, false)

	iterVar, ok := f.Iterator.(*mir.Var)
	if !ok {
		fail(CodeUnexpectedNodeKind, f, "for-loop iterator %T is not a scalar var", f.Iterator)
	}
	iterOld, _ := oldVarOf(iterVar)

	t.push(KindForLoop)

	newIter := iterVar.Remake()
	newIter.SetSSA(&mir.SSAData{})
	t.version.renameWithVersion(newIter, iterVar.Name)
	t.stack.InsertLocal(iterOld, newIter)

	body := t.dispatchBlock(f.Body)

	popped := t.pop()
	t.mergeLoop(f, popped)

	out := mir.MakeForLoopUnattached(newIter, begin, end, step, body, f.Span())
	copyAttrs(out, f)
	return out
}

// mergeLoop implements §4.6 step 5: for every variable the loop body
// touched that also exists outside the loop, patch any loop-head phi with
// the back-edge value (skipped when the variable was never reassigned — the
// phi is still exactly its own sole operand) and unconditionally synthesize
// a post-loop phi reconciling "loop ran zero times" against "loop produced
// this value", for every such variable, reassigned or not — this pass does
// not optimize away redundant phis.
func (t *transformer) mergeLoop(f *mir.ForLoop, popped *Scope) {
	for _, entry := range popped.Vars.sorted() {
		parentStatus, ok := t.stack.Lookup(entry.Key)
		if !ok {
			continue
		}
		status := entry.Status

		for i, phi := range status.ForLoopPhi {
			if status.CurrentValue == mir.Expr(status.forLoopPhiVar[i]) {
				continue
			}
			phi.AppendOperand(status.CurrentValue)
			t.log.Tracef("ssa: patched loop-phi for %q with back-edge value", entry.Key.Name)
		}

		postPhi := mir.MakePhi(parentStatus.CurrentValue.ExprType(), f.Span(), parentStatus.CurrentValue, status.CurrentValue)
		merged := t.AddDefAfterCurrent(postPhi, f.Span())
		t.version.renameWithVersion(merged, entry.Key.Name)
		parentStatus.CurrentValue = merged
	}
}
