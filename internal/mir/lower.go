package mir

import (
	"fmt"

	"github.com/malphas-lang/malphas-lang/internal/ast"
	"github.com/malphas-lang/malphas-lang/internal/lexer"
	"github.com/malphas-lang/malphas-lang/internal/types"
)

// Lowerer converts a type-checked AST into tree-shaped MIR. It assumes the
// tree already passed internal/types.Checker and consults the checker's
// TypeInfo instead of re-inferring types. Generics, enums, structs,
// channels/spawn/select, and monomorphization are out of scope: the
// checker never produces the AST shapes that would require them.
type Lowerer struct {
	TypeInfo    map[ast.Expr]types.Type
	GlobalScope *types.Scope

	globals     map[string]int
	globalTypes map[string]types.Type
	locals      map[string]types.Type
	nextOffset  int
	tmpCounter  int
}

// NewLowerer creates a lowerer using the type information a Checker
// produced for the same file.
func NewLowerer(typeInfo map[ast.Expr]types.Type, globalScope *types.Scope) *Lowerer {
	return &Lowerer{
		TypeInfo:    typeInfo,
		GlobalScope: globalScope,
		globals:     make(map[string]int),
		globalTypes: make(map[string]types.Type),
	}
}

// LowerFile lowers every global and function declaration in file. Globals
// are lowered first so functions referencing them see an assigned offset.
func (l *Lowerer) LowerFile(file *ast.File) (*Module, error) {
	mod := &Module{}

	for _, decl := range file.Decls {
		if d, ok := decl.(*ast.GlobalDecl); ok {
			g, err := l.lowerGlobalDecl(d)
			if err != nil {
				return nil, err
			}
			mod.Globals = append(mod.Globals, g)
		}
	}

	for _, decl := range file.Decls {
		if d, ok := decl.(*ast.FnDecl); ok {
			fn, err := l.lowerFnDecl(d)
			if err != nil {
				return nil, fmt.Errorf("lowering function %s: %w", d.Name.Name, err)
			}
			mod.Funcs = append(mod.Funcs, fn)
		}
	}

	return mod, nil
}

func (l *Lowerer) lowerGlobalDecl(d *ast.GlobalDecl) (*Global, error) {
	typ := types.ResolveASTType(l.GlobalScope, d.Type)
	if d.Type == nil {
		if t, ok := l.TypeInfo[d.Value]; ok {
			typ = t
		}
	}

	offset := l.nextOffset
	l.nextOffset++
	l.globals[d.Name.Name] = offset
	l.globalTypes[d.Name.Name] = typ

	v := &Var{base: base{span: d.Span()}, Name: d.Name.Name, Type: typ}
	v.Attrs().Set(ModuleGlobalOffset, offset)

	init, err := l.lowerExpr(d.Value)
	if err != nil {
		return nil, err
	}

	return &Global{base: base{span: d.Span()}, Var: v, Init: init}, nil
}

func (l *Lowerer) lowerFnDecl(d *ast.FnDecl) (*Func, error) {
	l.locals = make(map[string]types.Type)

	params := make([]Expr, 0, len(d.Params))
	for _, p := range d.Params {
		typ := types.ResolveASTType(l.GlobalScope, p.Type)
		l.locals[p.Name.Name] = typ
		params = append(params, l.newRef(p.Name.Name, typ, p.Span()))
	}

	ret := types.ResolveASTType(l.GlobalScope, d.ReturnType)

	body, err := l.lowerFuncBody(d.Body, ret)
	if err != nil {
		return nil, err
	}

	return MakeFunc(d.Name.Name, params, ret, body, d.Span()), nil
}

// lowerFuncBody lowers a function's block into a flat statement sequence,
// turning its tail expression (if any) into an explicit Return so the tree
// always ends with one when the function is non-void.
func (l *Lowerer) lowerFuncBody(block *ast.BlockExpr, ret types.Type) (Block, error) {
	out, err := l.lowerStmts(block.Stmts)
	if err != nil {
		return nil, err
	}

	if block.Tail != nil {
		val, err := l.lowerExpr(block.Tail)
		if err != nil {
			return nil, err
		}
		out = append(out, &Return{base: base{span: block.Tail.Span()}, Value: val})
	}

	return out, nil
}

// newRef constructs the reference expression for name: a Tensor for
// array/slice-typed bindings (used by reference, never versioned by the SSA
// pass), a Var otherwise. Every reference to a module global — read or
// write — carries the ModuleGlobalOffset attribute, since the tree MIR
// re-materializes a fresh node at each use site rather than sharing one
// pointer for a binding.
func (l *Lowerer) newRef(name string, typ types.Type, span lexer.Span) Expr {
	// A local binding shadows a global of the same name, matching typeOf's
	// lookup order.
	_, shadowed := l.locals[name]
	offset, global := l.isGlobal(name)
	global = global && !shadowed

	if isTensorType(typ) {
		t := &Tensor{base: base{span: span}, Name: name, Type: typ}
		if global {
			t.Attrs().Set(ModuleGlobalOffset, offset)
		}
		return t
	}
	v := &Var{base: base{span: span}, Name: name, Type: typ}
	if global {
		v.Attrs().Set(ModuleGlobalOffset, offset)
	}
	return v
}

func isTensorType(t types.Type) bool {
	switch t.(type) {
	case *types.Array, *types.Slice:
		return true
	default:
		return false
	}
}

func (l *Lowerer) typeOf(name string) types.Type {
	if t, ok := l.locals[name]; ok {
		return t
	}
	if t, ok := l.globalTypes[name]; ok {
		return t
	}
	return types.TypeVoid
}

func (l *Lowerer) isGlobal(name string) (int, bool) {
	off, ok := l.globals[name]
	return off, ok
}
