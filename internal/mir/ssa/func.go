package ssa

import "github.com/malphas-lang/malphas-lang/internal/mir"

// dispatchFunc implements spec.md §4.8: push a fresh normal scope, remake
// every parameter with a fresh identity and is_param metadata, dispatch the
// body, then pop.
func (t *transformer) dispatchFunc(fn *mir.Func) *mir.Func {
	t.push(KindNormal)
	defer t.pop()

	params := make([]mir.Expr, 0, len(fn.Params))
	for _, p := range fn.Params {
		params = append(params, t.bindParam(p))
	}

	body := t.dispatchBlock(fn.Body)

	out := mir.MakeFunc(fn.Name, params, fn.Return, body, fn.Span())
	copyAttrs(out, fn)
	return out
}

// bindParam remakes a parameter's node, marks it is_param, and binds it in
// the current (function-level) scope so later reads resolve to it without
// ever treating it as undefined or global.
func (t *transformer) bindParam(p mir.Expr) mir.Expr {
	switch v := p.(type) {
	case *mir.Var:
		nv := v.Remake()
		nv.SetSSA(&mir.SSAData{IsParam: true})
		old, _ := oldVarOf(v)
		t.stack.InsertLocal(old, nv)
		return nv
	case *mir.Tensor:
		nt := v.Remake()
		nt.SetSSA(&mir.SSAData{IsParam: true})
		old, _ := oldVarOf(v)
		t.stack.InsertLocal(old, nt)
		return nt
	default:
		fail(CodeUnexpectedNodeKind, p, "function parameter %T is neither var nor tensor", p)
		return nil
	}
}
