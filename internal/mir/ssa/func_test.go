package ssa_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/malphas-lang/malphas-lang/internal/mir"
	"github.com/malphas-lang/malphas-lang/internal/mir/ssa"
	"github.com/malphas-lang/malphas-lang/internal/types"
)

// TestParamBoundAsIsParam covers §4.8: a parameter's scope entry is seeded
// with its own remade var, marked IsParam, and never gets a fresh
// definition statement of its own.
func TestParamBoundAsIsParam(t *testing.T) {
	param := intVar("n")
	fn := mir.MakeFunc("double", []mir.Expr{param}, types.TypeInt, mir.Block{
		mir.MakeReturn(add(useVar("n"), useVar("n")), sp()),
	}, sp())

	out := ssa.Func(fn)
	require.Len(t, out.Params, 1)
	paramVar, ok := out.Params[0].(*mir.Var)
	require.True(t, ok)
	require.NotNil(t, paramVar.SSA())
	require.True(t, paramVar.SSA().IsParam)
	require.Equal(t, "n", paramVar.Name, "a parameter keeps its source name, it is never versioned")

	require.Len(t, out.Body, 2, "flattened add temp, then return")
	ret, ok := out.Body[1].(*mir.Return)
	require.True(t, ok)
	_, isVar := ret.Value.(*mir.Var)
	require.True(t, isVar, "the return's composite value should be flattened to a temp")

	require.False(t, paramVar.SSA().IsLocal(), "a parameter is never local")

	addTemp := out.Body[0].(*mir.Define).Target.(*mir.Var)
	require.True(t, addTemp.SSA().IsLocal(), "a flattened temporary is neither global nor a parameter")
	defining, ok := addTemp.SSA().GetValueOfVar().(*mir.Generic)
	require.True(t, ok, "the temp's recorded defining expression should be the add it flattened")
	require.Equal(t, "+", defining.Op)
}

// TestFuncIsInstanceLocal checks spec.md §9: two independent calls to
// ssa.Func do not share rename state.
func TestFuncIsInstanceLocal(t *testing.T) {
	build := func() *mir.Func {
		return wrapFunc(mir.Block{
			defineWithInit("a", intConst(0)),
		})
	}

	out1 := ssa.Func(build())
	out2 := ssa.Func(build())

	def1 := out1.Body[0].(*mir.Define)
	def2 := out2.Body[0].(*mir.Define)
	require.Equal(t, def1.Target.(*mir.Var).Name, def2.Target.(*mir.Var).Name,
		"independent pass instances should both start their rename counter at 0")
}
