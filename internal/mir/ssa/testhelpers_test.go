package ssa_test

import (
	"github.com/malphas-lang/malphas-lang/internal/lexer"
	"github.com/malphas-lang/malphas-lang/internal/mir"
	"github.com/malphas-lang/malphas-lang/internal/types"
)

func sp() lexer.Span { return lexer.Span{Line: 1, Column: 1} }

func intVar(name string) *mir.Var {
	return &mir.Var{Name: name, Type: types.TypeInt}
}

func intConst(v int64) *mir.Constant {
	return mir.MakeConstant(v, types.TypeInt, sp())
}

func add(lhs, rhs mir.Expr) *mir.Generic {
	return mir.MakeGeneric("+", []mir.Expr{lhs, rhs}, types.TypeInt, sp())
}

// defineWithInit builds `define name = init` as an AST-adjacent MIR Define,
// giving Target a fresh *Var with no SSA metadata, the shape the lowerer
// would have produced before the pass ever touches it.
func defineWithInit(name string, init mir.Expr) *mir.Define {
	return mir.MakeVarTensorDefUnattached(intVar(name), mir.LinkageLocal, init, sp())
}

func defineNoInit(name string) *mir.Define {
	return mir.MakeVarTensorDefUnattached(intVar(name), mir.LinkageLocal, nil, sp())
}

func assignVar(name string, value mir.Expr) *mir.Assign {
	return mir.MakeAssignUnattached(intVar(name), value, sp())
}

func useVar(name string) *mir.Var {
	return intVar(name)
}

func globalVar(name string) *mir.Var {
	v := intVar(name)
	v.Attrs().Set(mir.ModuleGlobalOffset, 0)
	return v
}

func wrapFunc(body mir.Block) *mir.Func {
	return mir.MakeFunc("test", nil, types.TypeVoid, body, sp())
}
