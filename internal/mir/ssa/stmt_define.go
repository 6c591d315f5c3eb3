package ssa

import (
	"github.com/malphas-lang/malphas-lang/internal/mir"
	"github.com/malphas-lang/malphas-lang/internal/types"
)

// dispatchDefine implements spec.md §4.4. A define admits only local
// linkage: globals are declared once at module scope (see rewriteGlobal)
// and never redefined inside a function body.
func (t *transformer) dispatchDefine(d *mir.Define) mir.Statement {
	if d.Linkage != mir.LinkageLocal {
		fail(CodeNonLocalLinkage, d, "define statement carries non-local linkage %q", d.Linkage)
	}

	switch target := d.Target.(type) {
	case *mir.Tensor:
		return t.defineTensor(d, target)
	case *mir.Var:
		return t.defineScalar(d, target)
	default:
		fail(CodeUnexpectedNodeKind, d, "define target %T is neither var nor tensor", d.Target)
		return nil
	}
}

// defineScalar covers §4.4 cases 1, 2, and 3. With no initializer, a zero
// constant of the declared type becomes the variable's current value and
// the statement is elided entirely — the caller never sees it. With an
// initializer, the new identity is remade and bound as the current value
// FIRST, and only then is the initializer dispatched, matching the order
// in §4.4 case 2 ("... set it as current_value, dispatch the initialiser
// ..."): a shadowing redefinition whose own initializer refers to its own
// name resolves against the new, not-yet-populated binding, not the outer
// one it shadows. A target still carrying module_global_offset is case 3:
// identical to case 2 except the new identity is marked is_global and
// bound at function scope rather than the current (possibly nested) one,
// the same placement rule VisitVar/VisitTensor use for a global's first
// reference.
func (t *transformer) defineScalar(d *mir.Define, target *mir.Var) mir.Statement {
	old, _ := oldVarOf(target)
	global := isMarkedGlobal(target)

	if d.Init == nil {
		zero := mir.MakeConstant(zeroValue(target.Type), target.Type, d.Span())
		if global {
			t.stack.InsertGlobal(old, zero)
		} else {
			t.stack.InsertLocal(old, zero)
		}
		return nil
	}

	newVar := target.Remake()
	newVar.SetSSA(&mir.SSAData{IsGlobal: global})
	if global {
		t.stack.InsertGlobal(old, newVar)
	} else {
		t.version.renameWithVersion(newVar, target.Name)
		t.stack.InsertLocal(old, newVar)
	}

	init := t.dispatchExpr(d.Init, false)

	out := mir.MakeVarTensorDefUnattached(newVar, mir.LinkageLocal, init, d.Span())
	copyAttrs(out, d)
	return out
}

// defineTensor covers §4.4 case 4: a tensor binding is remade once and
// never renamed on later uses, since it's a reference value. The new
// identity is bound before the initializer is dispatched, for the same
// shadowing reason as defineScalar.
func (t *transformer) defineTensor(d *mir.Define, target *mir.Tensor) mir.Statement {
	old, _ := oldVarOf(target)

	newTensor := target.Remake()
	t.stack.InsertLocal(old, newTensor)

	init := t.dispatchExpr(d.Init, false)

	out := mir.MakeVarTensorDefUnattached(newTensor, mir.LinkageLocal, init, d.Span())
	copyAttrs(out, d)
	return out
}

func zeroValue(t types.Type) any {
	prim, ok := t.(*types.Primitive)
	if !ok {
		return nil
	}
	switch prim.Kind {
	case types.Int:
		return int64(0)
	case types.Float:
		return float64(0)
	case types.Bool:
		return false
	case types.String:
		return ""
	default:
		return nil
	}
}
