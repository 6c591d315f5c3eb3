// Package ssa rewrites tree-shaped MIR (internal/mir) into single-assignment
// form: every local scalar definition is assigned exactly once, composite
// expressions are flattened into named temporaries, and values crossing a
// loop back-edge or an if/else join are reconciled by explicit phi nodes.
package ssa

import (
	"sort"

	"github.com/malphas-lang/malphas-lang/internal/mir"
)

// Kind classifies a scope's role, used to decide phi placement.
type Kind int

const (
	KindNormal Kind = iota
	KindForLoop
	KindIfThen
	KindIfElse
)

// OldVar identifies a pre-pass variable or tensor binding by kind and name,
// not by node pointer, so two lowerings of the same identifier are the same
// old variable.
type OldVar struct {
	Kind string // "var" or "tensor"
	Name string
}

func oldVarOf(e mir.Expr) (OldVar, bool) {
	switch v := e.(type) {
	case *mir.Var:
		return OldVar{Kind: "var", Name: v.Name}, true
	case *mir.Tensor:
		return OldVar{Kind: "tensor", Name: v.Name}, true
	default:
		return OldVar{}, false
	}
}

// Status is the per-scope record for one old variable.
type Status struct {
	CurrentValue    mir.Expr
	DefinedScopeIdx int

	// ForLoopPhi and forLoopPhiVar are parallel: forLoopPhiVar[i] is the
	// temporary VisitVar materialized when it created ForLoopPhi[i], so
	// the for-loop merge can tell a loop-carried read (CurrentValue still
	// equals that temporary) from a real reassignment (it doesn't).
	ForLoopPhi    []*mir.Phi
	forLoopPhiVar []*mir.Var
}

// AddForLoopPhi records that phi was created to represent a loop-carried
// read of this variable, materialized as var.
func (s *Status) AddForLoopPhi(phi *mir.Phi, v *mir.Var) {
	s.ForLoopPhi = append(s.ForLoopPhi, phi)
	s.forLoopPhiVar = append(s.forLoopPhiVar, v)
}

// AbsorbForLoopPhi merges other's pending loop-head phis into s, used when an
// if/else arm's scope carried forward phis created in an outer loop.
func (s *Status) AbsorbForLoopPhi(other *Status) {
	if other == nil {
		return
	}
	s.ForLoopPhi = append(s.ForLoopPhi, other.ForLoopPhi...)
	s.forLoopPhiVar = append(s.forLoopPhiVar, other.forLoopPhiVar...)
}

// varMap is an ordered map keyed by OldVar, iterating in (kind, name) order
// so emitted output is deterministic regardless of Go's map iteration order.
type varMap struct {
	entries map[OldVar]*Status
	order   []OldVar
}

func newVarMap() *varMap {
	return &varMap{entries: make(map[OldVar]*Status)}
}

func (m *varMap) get(k OldVar) (*Status, bool) {
	s, ok := m.entries[k]
	return s, ok
}

func (m *varMap) set(k OldVar, s *Status) {
	if _, exists := m.entries[k]; !exists {
		m.order = append(m.order, k)
	}
	m.entries[k] = s
}

// sorted returns (key, status) pairs ordered by kind then name, per spec's
// determinism requirement for maps keyed by old variables.
func (m *varMap) sorted() []struct {
	Key    OldVar
	Status *Status
} {
	keys := make([]OldVar, len(m.order))
	copy(keys, m.order)
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Kind != keys[j].Kind {
			return keys[i].Kind < keys[j].Kind
		}
		return keys[i].Name < keys[j].Name
	})
	out := make([]struct {
		Key    OldVar
		Status *Status
	}, len(keys))
	for i, k := range keys {
		out[i] = struct {
			Key    OldVar
			Status *Status
		}{k, m.entries[k]}
	}
	return out
}

// Scope is one scope-stack entry.
type Scope struct {
	Kind     Kind
	ForDepth int
	Vars     *varMap
}

// Stack is the scope stack driving the rewrite. It is instance-local: a
// fresh Stack (via the transformer) is created per top-level dispatch, never
// shared across calls.
type Stack struct {
	scopes []*Scope
}

func newStack() *Stack {
	return &Stack{}
}

// Push appends a new scope. Its ForDepth equals the current top's, plus one
// if kind is KindForLoop.
func (s *Stack) Push(kind Kind) *Scope {
	depth := 0
	if len(s.scopes) > 0 {
		depth = s.scopes[len(s.scopes)-1].ForDepth
	}
	if kind == KindForLoop {
		depth++
	}
	scope := &Scope{Kind: kind, ForDepth: depth, Vars: newVarMap()}
	s.scopes = append(s.scopes, scope)
	return scope
}

// Pop detaches and returns the top scope.
func (s *Stack) Pop() *Scope {
	top := s.scopes[len(s.scopes)-1]
	s.scopes = s.scopes[:len(s.scopes)-1]
	return top
}

// Top returns the current top scope without detaching it.
func (s *Stack) Top() *Scope {
	return s.scopes[len(s.scopes)-1]
}

// InsertLocal creates a status entry for old in the top scope, overwriting
// any existing entry, with DefinedScopeIdx set to the top scope's index.
func (s *Stack) InsertLocal(old OldVar, value mir.Expr) *Status {
	status := &Status{CurrentValue: value, DefinedScopeIdx: len(s.scopes) - 1}
	s.Top().Vars.set(old, status)
	return status
}

// Lookup scans scopes top to bottom, returning the first hit.
func (s *Stack) Lookup(old OldVar) (*Status, bool) {
	for i := len(s.scopes) - 1; i >= 0; i-- {
		if status, ok := s.scopes[i].Vars.get(old); ok {
			return status, true
		}
	}
	return nil, false
}

// LookupForUpdate implements the rule an assignment needs: a global's
// mapping always lives at its deepest (first-seen) scope and is never
// shadowed; a non-global that already has an entry in the top scope is
// returned as-is; otherwise a fresh, currently-undefined entry is created in
// the top scope for the caller to fill in.
func (s *Stack) LookupForUpdate(old OldVar, isGlobal bool) *Status {
	if isGlobal {
		if status, ok := s.Lookup(old); ok {
			return status
		}
		return s.InsertGlobal(old, nil)
	}
	if status, ok := s.Top().Vars.get(old); ok {
		return status
	}
	return s.InsertLocal(old, nil)
}

// InsertGlobal creates old's status entry in the bottom (function-level)
// scope rather than the current top, so a global first referenced from
// inside a nested if/for scope still survives that scope's pop: globals
// are never shadowed per scope (§4.1).
func (s *Stack) InsertGlobal(old OldVar, value mir.Expr) *Status {
	status := &Status{CurrentValue: value, DefinedScopeIdx: 0}
	s.scopes[0].Vars.set(old, status)
	return status
}

// DefDepth returns the ForDepth of the scope where old's status entry was
// first introduced.
func (s *Stack) DefDepth(status *Status) int {
	if status.DefinedScopeIdx < 0 || status.DefinedScopeIdx >= len(s.scopes) {
		return 0
	}
	return s.scopes[status.DefinedScopeIdx].ForDepth
}

// CurDepth returns the current top scope's ForDepth.
func (s *Stack) CurDepth() int {
	return s.Top().ForDepth
}
