package ssa_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/malphas-lang/malphas-lang/internal/mir"
	"github.com/malphas-lang/malphas-lang/internal/mir/ssa"
)

// TestModuleRewritesGlobalsAndFuncs covers the module entry point: globals
// are remade and marked IsGlobal, each function is dispatched independently.
func TestModuleRewritesGlobalsAndFuncs(t *testing.T) {
	g := mir.MakeGlobal(intVar("counter"), intConst(0), sp())
	fn := wrapFunc(mir.Block{
		assignVar("counter", add(globalVar("counter"), intConst(1))),
	})
	fn.Body[0] = mir.MakeAssignUnattached(globalVar("counter"), add(globalVar("counter"), intConst(1)), sp())

	mod := &mir.Module{Globals: []*mir.Global{g}, Funcs: []*mir.Func{fn}}
	out := ssa.Module(mod)

	require.Len(t, out.Globals, 1)
	require.True(t, out.Globals[0].Var.SSA().IsGlobal)
	require.Len(t, out.Funcs, 1)
}
