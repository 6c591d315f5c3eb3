package ssa_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/malphas-lang/malphas-lang/internal/mir"
	"github.com/malphas-lang/malphas-lang/internal/mir/ssa"
)

// TestUnexpectedNodeKindPanicsWithCode covers §7: an assignment whose target
// is neither var nor indexing panics with the matching internal error code.
func TestUnexpectedNodeKindPanicsWithCode(t *testing.T) {
	fn := wrapFunc(mir.Block{
		mir.MakeAssignUnattached(intConst(1), intConst(2), sp()),
	})

	defer func() {
		r := recover()
		require.NotNil(t, r, "an assignment to a constant target should panic")
		ie, ok := r.(*ssa.InternalError)
		require.True(t, ok, "panic value should be *ssa.InternalError, got %T", r)
		require.Equal(t, ssa.CodeUnexpectedNodeKind, ie.Code)
	}()
	ssa.Func(fn)
}

// TestNonLocalLinkagePanics covers §7: a define statement carrying global
// linkage is a compiler bug, since globals are declared once at module
// scope and never redefined inside a function body.
func TestNonLocalLinkagePanics(t *testing.T) {
	fn := wrapFunc(mir.Block{
		mir.MakeVarTensorDefUnattached(intVar("g"), mir.LinkageGlobal, intConst(0), sp()),
	})

	defer func() {
		r := recover()
		require.NotNil(t, r)
		ie, ok := r.(*ssa.InternalError)
		require.True(t, ok)
		require.Equal(t, ssa.CodeNonLocalLinkage, ie.Code)
	}()
	ssa.Func(fn)
}
