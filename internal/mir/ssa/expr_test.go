package ssa_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/malphas-lang/malphas-lang/internal/mir"
	"github.com/malphas-lang/malphas-lang/internal/mir/ssa"
	"github.com/malphas-lang/malphas-lang/internal/types"
)

func intTensor(name string) *mir.Tensor {
	return &mir.Tensor{Name: name, Type: &types.Slice{Elem: types.TypeInt}}
}

// TestTensorUseNeverVersioned covers §4.3: a tensor binding is returned
// verbatim on every use, never renamed.
func TestTensorUseNeverVersioned(t *testing.T) {
	tensor := intTensor("xs")
	fn := wrapFunc(mir.Block{
		mir.MakeVarTensorDefUnattached(tensor, mir.LinkageLocal,
			mir.MakeGeneric("new_slice", nil, tensor.Type, sp()), sp()),
		assignVar("b", intTensor("xs")),
	})

	out := ssa.Func(fn)
	require.Len(t, out.Body, 2)

	def, ok := out.Body[0].(*mir.Define)
	require.True(t, ok)
	tensorTarget, ok := def.Target.(*mir.Tensor)
	require.True(t, ok)
	require.Equal(t, "xs", tensorTarget.Name, "a tensor is remade once, never renamed")
}

// TestIndexingStoreDispatchesLHSAndRHS covers §4.5's assignIndexing rule: the
// store target stays an Indexing (not flattened), its own target/indices
// reduce to leaves, and the RHS reduces to a leaf.
func TestIndexingStoreDispatchesLHSAndRHS(t *testing.T) {
	tensor := intTensor("xs")
	fn := wrapFunc(mir.Block{
		mir.MakeVarTensorDefUnattached(tensor, mir.LinkageLocal,
			mir.MakeGeneric("new_slice", nil, tensor.Type, sp()), sp()),
		mir.MakeAssignUnattached(
			mir.MakeIndexing(intTensor("xs"), []mir.Expr{intConst(0)}, types.TypeInt, sp()),
			add(intConst(1), intConst(2)),
			sp(),
		),
	})

	out := ssa.Func(fn)
	require.Len(t, out.Body, 3, "define xs, the flattened add-temp spliced before the store, then the store itself")

	store, ok := out.Body[len(out.Body)-1].(*mir.Assign)
	require.True(t, ok)
	idx, ok := store.Target.(*mir.Indexing)
	require.True(t, ok, "the store target must remain an Indexing node")
	_, isVar := store.Value.(*mir.Var)
	require.True(t, isVar, "the RHS should be flattened to a leaf")
	require.Equal(t, "xs", idx.Target.(*mir.Tensor).Name)
}

// TestInvariantBreachNeverFiresOnWellFormedInput is a smoke test: ordinary
// expression flattening never trips the defensive leaf-reducibility
// assertion (spec.md §7's fourth error kind).
func TestInvariantBreachNeverFiresOnWellFormedInput(t *testing.T) {
	fn := wrapFunc(mir.Block{
		assignVar("b", add(add(intConst(1), intConst(2)), intConst(3))),
	})
	require.NotPanics(t, func() { ssa.Func(fn) })
}

