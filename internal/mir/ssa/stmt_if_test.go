package ssa_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/malphas-lang/malphas-lang/internal/mir"
	"github.com/malphas-lang/malphas-lang/internal/mir/ssa"
)

// TestIfElseBothArmsMerge covers §4.7's two-arm case: a variable reassigned
// in both arms gets a two-operand phi after the if/else.
func TestIfElseBothArmsMerge(t *testing.T) {
	fn := wrapFunc(mir.Block{
		defineWithInit("x", intConst(0)),
		mir.MakeIfElseUnattached(
			intConst(1),
			mir.Block{assignVar("x", intConst(2))},
			mir.Block{assignVar("x", intConst(3))},
			sp(),
		),
	})

	out := ssa.Func(fn)
	require.Len(t, out.Body, 3, "define x_0, ifelse, merge define")

	merge, ok := out.Body[2].(*mir.Define)
	require.True(t, ok)
	phi, ok := merge.Init.(*mir.Phi)
	require.True(t, ok)
	require.Len(t, phi.Operands, 2)
}

// TestIfOnlyThenArmDefaultsElseToParent covers the Open Question resolution
// for an else arm that's present but never touches x: the merge still runs
// (both scopes exist), with the untouched side's operand defaulting to the
// pre-if value rather than being omitted.
func TestIfOnlyThenArmDefaultsElseToParent(t *testing.T) {
	fn := wrapFunc(mir.Block{
		defineWithInit("x", intConst(0)),
		mir.MakeIfElseUnattached(
			intConst(1),
			mir.Block{assignVar("x", intConst(2))},
			mir.Block{}, // else arm never touches x
			sp(),
		),
	})

	out := ssa.Func(fn)
	require.Len(t, out.Body, 3)

	merge, ok := out.Body[2].(*mir.Define)
	require.True(t, ok)
	phi, ok := merge.Init.(*mir.Phi)
	require.True(t, ok)
	require.Len(t, phi.Operands, 2, "else arm's operand still defaults to the pre-if value")

	elseOperand, ok := phi.Operands[1].(*mir.Var)
	require.True(t, ok, "the else-side operand should default to the pre-if binding of x")
	require.Equal(t, "x_0", elseOperand.Name)
}

// TestIfNoElseMergesAgainstParent covers §4.7's no-else case.
func TestIfNoElseMergesAgainstParent(t *testing.T) {
	fn := wrapFunc(mir.Block{
		defineWithInit("x", intConst(0)),
		mir.MakeIfElseUnattached(
			intConst(1),
			mir.Block{assignVar("x", intConst(2))},
			nil,
			sp(),
		),
	})

	out := ssa.Func(fn)
	require.Len(t, out.Body, 3)

	merge, ok := out.Body[2].(*mir.Define)
	require.True(t, ok)
	phi, ok := merge.Init.(*mir.Phi)
	require.True(t, ok)
	require.Len(t, phi.Operands, 2)
}
