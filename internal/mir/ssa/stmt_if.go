package ssa

import (
	"sort"

	"github.com/malphas-lang/malphas-lang/internal/mir"
)

// dispatchIfElse implements spec.md §4.7: dispatch the condition in the
// enclosing scope, then dispatch each arm in its own pushed scope before
// merging the popped scopes back into the parent.
func (t *transformer) dispatchIfElse(ie *mir.IfElse) mir.Statement {
	cond := t.dispatchExpr(ie.Cond, false)

	t.push(KindIfThen)
	thenBody := t.dispatchBlock(ie.Then)
	thenScope := t.pop()

	var elseBody mir.Block
	var elseScope *Scope
	if ie.Else != nil {
		t.push(KindIfElse)
		elseBody = t.dispatchBlock(ie.Else)
		elseScope = t.pop()
	}

	if elseScope != nil {
		t.mergeTwoArm(ie, thenScope, elseScope)
	} else {
		t.mergeThenOnly(ie, thenScope)
	}

	out := mir.MakeIfElseUnattached(cond, thenBody, elseBody, ie.Span())
	copyAttrs(out, ie)
	return out
}

// mergeTwoArm implements the both-arms-present case of §4.7. A variable
// touched by only one arm is still merged — against the pre-if parent
// value as the other operand, per the Design Notes' resolution of the
// spec's own open question about this join (see DESIGN.md), rather than
// the literal "only the arm that assigned it" reading, which would merge
// against a value the other branch of control flow never produced.
func (t *transformer) mergeTwoArm(ie *mir.IfElse, thenScope, elseScope *Scope) {
	for _, key := range unionKeys(thenScope, elseScope) {
		parentStatus, ok := t.stack.Lookup(key)
		if !ok {
			continue
		}

		thenEntry, thenHas := thenScope.Vars.get(key)
		elseEntry, elseHas := elseScope.Vars.get(key)
		if !thenHas && !elseHas {
			continue
		}

		thenVal := parentStatus.CurrentValue
		if thenHas {
			thenVal = thenEntry.CurrentValue
		}
		elseVal := parentStatus.CurrentValue
		if elseHas {
			elseVal = elseEntry.CurrentValue
		}

		phi := mir.MakePhi(parentStatus.CurrentValue.ExprType(), ie.Span(), thenVal, elseVal)
		merged := t.AddDefAfterCurrent(phi, ie.Span())
		t.version.renameWithVersion(merged, key.Name)
		parentStatus.CurrentValue = merged

		if thenHas {
			parentStatus.AbsorbForLoopPhi(thenEntry)
		}
		if elseHas {
			parentStatus.AbsorbForLoopPhi(elseEntry)
		}
	}
}

// mergeThenOnly implements the no-else case: every variable the then-arm
// redefined that was also visible in the parent gets phi(parent, then).
func (t *transformer) mergeThenOnly(ie *mir.IfElse, thenScope *Scope) {
	for _, entry := range thenScope.Vars.sorted() {
		parentStatus, ok := t.stack.Lookup(entry.Key)
		if !ok {
			continue
		}

		phi := mir.MakePhi(parentStatus.CurrentValue.ExprType(), ie.Span(), parentStatus.CurrentValue, entry.Status.CurrentValue)
		merged := t.AddDefAfterCurrent(phi, ie.Span())
		t.version.renameWithVersion(merged, entry.Key.Name)
		parentStatus.CurrentValue = merged
		parentStatus.AbsorbForLoopPhi(entry.Status)
	}
}

// unionKeys returns the old-variable keys mentioned in either scope,
// ordered by kind then name (the determinism requirement of §3).
func unionKeys(a, b *Scope) []OldVar {
	seen := make(map[OldVar]bool)
	var keys []OldVar
	for _, e := range a.Vars.sorted() {
		if !seen[e.Key] {
			seen[e.Key] = true
			keys = append(keys, e.Key)
		}
	}
	for _, e := range b.Vars.sorted() {
		if !seen[e.Key] {
			seen[e.Key] = true
			keys = append(keys, e.Key)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Kind != keys[j].Kind {
			return keys[i].Kind < keys[j].Kind
		}
		return keys[i].Name < keys[j].Name
	})
	return keys
}
