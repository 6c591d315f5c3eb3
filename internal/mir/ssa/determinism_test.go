package ssa_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/malphas-lang/malphas-lang/internal/mir"
	"github.com/malphas-lang/malphas-lang/internal/mir/ssa"
)

// buildSample constructs a function exercising defines, reassignment, a
// loop, and an if/else, fresh on each call so two independent runs never
// share a *mir.Func tree.
func buildSample() *mir.Func {
	return wrapFunc(mir.Block{
		defineWithInit("acc", intConst(0)),
		mir.MakeForLoopUnattached(
			intVar("i"), intConst(0), intConst(5), intConst(1),
			mir.Block{
				assignVar("acc", add(useVar("acc"), intConst(1))),
			},
			sp(),
		),
		mir.MakeIfElseUnattached(
			useVar("acc"),
			mir.Block{assignVar("acc", intConst(100))},
			mir.Block{assignVar("acc", intConst(200))},
			sp(),
		),
		mir.MakeReturn(useVar("acc"), sp()),
	})
}

// TestDeterministicOutput covers spec.md §8: two independent runs over
// structurally identical input produce byte-identical pretty-printed output.
func TestDeterministicOutput(t *testing.T) {
	mod1 := &mir.Module{Funcs: []*mir.Func{ssa.Func(buildSample())}}
	mod2 := &mir.Module{Funcs: []*mir.Func{ssa.Func(buildSample())}}

	out1 := mod1.PrettyPrint()
	out2 := mod2.PrettyPrint()

	if diff := cmp.Diff(out1, out2); diff != "" {
		t.Fatalf("pretty-printed SSA output differs between runs (-first +second):\n%s", diff)
	}
	require.NotEmpty(t, out1)
}
