package ssa

import (
	"github.com/sirupsen/logrus"

	"github.com/malphas-lang/malphas-lang/internal/mir"
)

// transformer is one pass instance: scope stack, version counter, and a
// logger to trace scope pushes, phi creation, and rename assignments. It is
// never shared across dispatches (spec.md §9) — Func, Stmt, and Module each
// build a fresh one.
type transformer struct {
	mir.BaseVisitor
	stack   *Stack
	version versioner
	log     *logrus.Entry
}

func newTransformer(log *logrus.Entry) *transformer {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	t := &transformer{stack: newStack(), log: log}
	t.Self = t
	return t
}

func (t *transformer) push(kind Kind) *Scope {
	s := t.stack.Push(kind)
	t.log.Tracef("ssa: push scope kind=%d for_depth=%d", kind, s.ForDepth)
	return s
}

func (t *transformer) pop() *Scope {
	s := t.stack.Pop()
	t.log.Tracef("ssa: pop scope kind=%d vars=%d", s.Kind, len(s.Vars.order))
	return s
}

// Func rewrites a whole function into single-assignment form: spec.md §6's
// first library entry point.
func Func(fn *mir.Func) *mir.Func {
	return newTransformer(nil).dispatchFunc(fn)
}

// FuncWithLog is Func with an explicit logger, for callers (the CLI) that
// want pass tracing threaded through instead of the standard logger.
func FuncWithLog(fn *mir.Func, log *logrus.Entry) *mir.Func {
	return newTransformer(log).dispatchFunc(fn)
}

// Stmt rewrites a standalone statement tree in a fresh function-level
// scope: spec.md §6's second entry point, used by tests that exercise one
// rewriting rule without a surrounding function.
func Stmt(stmt mir.Statement) mir.Statement {
	t := newTransformer(nil)
	t.push(KindNormal)
	defer t.pop()
	return t.dispatchStmt(stmt)
}

// Module rewrites every function in mod and carries global declarations
// forward with is_global SSA metadata attached. It is not one of spec.md's
// two entry points. cmd/malphas does not call it: its pipeline runs
// FuncWithLog on each function and copies the globals unchanged.
func Module(mod *mir.Module) *mir.Module {
	out := &mir.Module{}
	for _, g := range mod.Globals {
		out.Globals = append(out.Globals, rewriteGlobal(g))
	}
	for _, fn := range mod.Funcs {
		out.Funcs = append(out.Funcs, Func(fn))
	}
	return out
}

func rewriteGlobal(g *mir.Global) *mir.Global {
	v := g.Var.Remake()
	v.SetSSA(&mir.SSAData{IsGlobal: true})
	copyAttrs(v, g.Var)
	out := mir.MakeGlobal(v, g.Init, g.Span())
	copyAttrs(out, g)
	return out
}

// dispatchStmt routes one statement to its rewriting rule (§4.4–§4.7), with
// Return going to dispatchReturn; any statement kind the pass doesn't
// customize (Func and Global) passes through unchanged.
func (t *transformer) dispatchStmt(s mir.Statement) mir.Statement {
	switch st := s.(type) {
	case *mir.Define:
		return t.dispatchDefine(st)
	case *mir.Assign:
		return t.dispatchAssign(st)
	case *mir.ForLoop:
		return t.dispatchForLoop(st)
	case *mir.IfElse:
		return t.dispatchIfElse(st)
	case *mir.Return:
		return t.dispatchReturn(st)
	default:
		return s
	}
}

func (t *transformer) dispatchReturn(r *mir.Return) mir.Statement {
	if r.Value == nil {
		return r
	}
	value := t.dispatchExpr(r.Value, true)
	out := mir.MakeReturn(value, r.Span())
	copyAttrs(out, r)
	return out
}

func (t *transformer) dispatchBlock(block mir.Block) mir.Block {
	return t.RewriteBlock(block, t.dispatchStmt)
}

// copyAttrs implements the design note in spec.md §9: every emitted
// rewrite must carry its source node's attributes forward so later passes
// still see them.
func copyAttrs(dst, src interface{ Attrs() *mir.AttrMap }) {
	d, s := dst.Attrs(), src.Attrs()
	for _, k := range s.Keys() {
		v, _ := s.Get(k)
		d.Set(k, v)
	}
}
