package ssa_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/malphas-lang/malphas-lang/internal/mir"
	"github.com/malphas-lang/malphas-lang/internal/mir/ssa"
)

// TestShadowingDefineBindsBeforeDispatchingInit covers §4.4 case 2's order:
// the new identity is remade and bound as current_value BEFORE its own
// initializer is dispatched, so a define that shadows an outer variable of
// the same name while its initializer also mentions that name resolves
// against the new (not-yet-populated) shadowing identity, not the outer
// binding it shadows — "define x = 10; for i in 0..N { define x = x + i }"
// must not produce a loop-head phi against the outer x_0 for the inner x's
// own initializer, since the inner define is its own distinct identity from
// the moment it's declared.
func TestShadowingDefineBindsBeforeDispatchingInit(t *testing.T) {
	fn := wrapFunc(mir.Block{
		defineWithInit("x", intConst(10)),
		mir.MakeForLoopUnattached(
			intVar("i"), intConst(0), intConst(4), intConst(1),
			mir.Block{defineWithInit("x", add(useVar("x"), useVar("i")))},
			sp(),
		),
	})

	out := ssa.Func(fn)
	require.Len(t, out.Body, 3, "outer define, the for-loop, and the post-loop merge phi for x")

	loop, ok := out.Body[1].(*mir.ForLoop)
	require.True(t, ok)
	require.Len(t, loop.Body, 1, "the shadowing define should not itself trigger a loop-head phi")

	inner, ok := loop.Body[0].(*mir.Define)
	require.True(t, ok)
	generic, ok := inner.Init.(*mir.Generic)
	require.True(t, ok, "the inner define's initializer should be the flattened add")

	innerTarget := inner.Target.(*mir.Var).Name
	rhsVar, ok := generic.Operands[0].(*mir.Var)
	require.True(t, ok)
	require.Equal(t, innerTarget, rhsVar.Name,
		"the RHS's own-name reference should resolve to the new shadowing identity, not outer x_0")
}

// TestGlobalScalarDefineMarksIsGlobal covers §4.4 case 3: a define whose
// target already carries module_global_offset behaves as case 2 but marks
// the remade identity is_global and binds it at function scope, the same
// placement VisitVar/VisitTensor use for a global's first reference — this
// is the shape a general-purpose caller of Func/Stmt may hand in directly,
// distinct from the top-level mir.Global node the lowerer itself emits.
func TestGlobalScalarDefineMarksIsGlobal(t *testing.T) {
	fn := wrapFunc(mir.Block{
		mir.MakeVarTensorDefUnattached(globalVar("g"), mir.LinkageLocal, intConst(5), sp()),
		assignVar("b", add(globalVar("g"), intConst(1))),
	})

	out := ssa.Func(fn)
	require.Len(t, out.Body, 3, "define g, then the load-temp and add-temp spliced ahead of b's (statement-less) local reassignment")

	def, ok := out.Body[0].(*mir.Define)
	require.True(t, ok)
	gVar, ok := def.Target.(*mir.Var)
	require.True(t, ok)
	require.True(t, gVar.SSA().IsGlobal, "a case-3 define must mark its identity is_global")
	require.Equal(t, "g", gVar.Name, "a global identity is never renamed")
}
