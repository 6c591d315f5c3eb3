package ssa

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/malphas-lang/malphas-lang/internal/mir"
)

// TestGlobalSurvivesNestedScopePop covers the fix to LookupForUpdate: a
// global first referenced from inside a nested scope must still be found
// after that scope pops, since globals are never shadowed per scope (§4.1).
func TestGlobalSurvivesNestedScopePop(t *testing.T) {
	s := newStack()
	s.Push(KindNormal)

	s.Push(KindIfThen)
	old := OldVar{Kind: "var", Name: "g"}
	status := s.LookupForUpdate(old, true)
	status.CurrentValue = &mir.Var{Name: "g"}
	s.Pop()

	found, ok := s.Lookup(old)
	require.True(t, ok, "a global's status must survive the scope that first referenced it popping")
	require.Same(t, status, found)
}

// TestLocalShadowingDoesNotLeakAcrossScopes covers the ordinary (non-global)
// case: InsertLocal always targets the top scope, so popping it removes the
// shadow entirely.
func TestLocalShadowingDoesNotLeakAcrossScopes(t *testing.T) {
	s := newStack()
	s.Push(KindNormal)
	old := OldVar{Kind: "var", Name: "x"}
	s.InsertLocal(old, &mir.Var{Name: "x_0"})

	s.Push(KindIfThen)
	s.InsertLocal(old, &mir.Var{Name: "x_1"})
	shadowed, _ := s.Lookup(old)
	require.Equal(t, "x_1", shadowed.CurrentValue.(*mir.Var).Name)
	s.Pop()

	restored, ok := s.Lookup(old)
	require.True(t, ok)
	require.Equal(t, "x_0", restored.CurrentValue.(*mir.Var).Name)
}

func TestVersionerIncrementsMonotonically(t *testing.T) {
	var v versioner
	a := &mir.Var{Name: "x"}
	b := &mir.Var{Name: "x"}
	v.renameWithVersion(a, "x")
	v.renameWithVersion(b, "x")
	require.Equal(t, "x_0", a.Name)
	require.Equal(t, "x_1", b.Name)
}
