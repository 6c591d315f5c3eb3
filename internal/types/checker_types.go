package types

import (
	"strconv"

	"github.com/malphas-lang/malphas-lang/internal/ast"
)

// resolveType maps a type expression from the AST onto the checker's own
// Type representation.
func (c *Checker) resolveType(typ ast.TypeExpr) Type {
	return ResolveASTType(c.GlobalScope, typ)
}

// ResolveASTType maps an AST type expression onto its types.Type
// representation, resolving named types against scope. It is exported so
// the MIR lowerer can translate parameter and declared types the same way
// the checker did, without re-running type checking.
func ResolveASTType(scope *Scope, typ ast.TypeExpr) Type {
	if typ == nil {
		return TypeVoid
	}

	switch t := typ.(type) {
	case *ast.NamedType:
		switch t.Name.Name {
		case "int":
			return TypeInt
		case "float":
			return TypeFloat
		case "bool":
			return TypeBool
		case "string":
			return TypeString
		case "void":
			return TypeVoid
		default:
			if scope != nil {
				if sym := scope.Lookup(t.Name.Name); sym != nil && sym.Type != nil {
					return sym.Type
				}
			}
			return &Named{Name: t.Name.Name}
		}
	case *ast.PointerType:
		return &Pointer{Elem: ResolveASTType(scope, t.Elem)}
	case *ast.ReferenceType:
		return &Reference{Elem: ResolveASTType(scope, t.Elem), Mutable: t.Mutable}
	case *ast.ArrayType:
		length := 0
		if lit, ok := t.Len.(*ast.IntegerLit); ok {
			if n, err := strconv.Atoi(lit.Text); err == nil {
				length = n
			}
		}
		return &Array{Elem: ResolveASTType(scope, t.Elem), Len: length}
	case *ast.SliceType:
		return &Slice{Elem: ResolveASTType(scope, t.Elem)}
	case *ast.ChanType:
		return &Channel{Elem: ResolveASTType(scope, t.Elem), Dir: SendRecv}
	case *ast.OptionalType:
		return &Optional{Elem: ResolveASTType(scope, t.Elem)}
	default:
		return TypeVoid
	}
}

// assignableTo reports whether a value of type src can be used where dst is
// expected. There is no implicit numeric widening in Malphas: int and float
// are only assignable to themselves, and nil is assignable to any reference,
// pointer, or optional type.
func assignableTo(src, dst Type) bool {
	if src == nil || dst == nil {
		return true
	}

	if sameType(src, dst) {
		return true
	}

	if p, ok := src.(*Primitive); ok && p.Kind == Nil {
		switch dst.(type) {
		case *Pointer, *Reference, *Optional:
			return true
		}
	}

	if opt, ok := dst.(*Optional); ok {
		return assignableTo(src, opt.Elem)
	}

	// A Named type the checker could not resolve is treated permissively:
	// there's no declaration to check the value against.
	if _, ok := dst.(*Named); ok {
		return true
	}
	if _, ok := src.(*Named); ok {
		return true
	}

	return false
}

func sameType(a, b Type) bool {
	switch at := a.(type) {
	case *Primitive:
		bt, ok := b.(*Primitive)
		return ok && at.Kind == bt.Kind
	case *Pointer:
		bt, ok := b.(*Pointer)
		return ok && sameType(at.Elem, bt.Elem)
	case *Reference:
		bt, ok := b.(*Reference)
		return ok && at.Mutable == bt.Mutable && sameType(at.Elem, bt.Elem)
	case *Array:
		bt, ok := b.(*Array)
		return ok && at.Len == bt.Len && sameType(at.Elem, bt.Elem)
	case *Slice:
		bt, ok := b.(*Slice)
		return ok && sameType(at.Elem, bt.Elem)
	case *Channel:
		bt, ok := b.(*Channel)
		return ok && at.Dir == bt.Dir && sameType(at.Elem, bt.Elem)
	case *Optional:
		bt, ok := b.(*Optional)
		return ok && sameType(at.Elem, bt.Elem)
	case *Named:
		bt, ok := b.(*Named)
		return ok && at.Name == bt.Name
	case *Function:
		bt, ok := b.(*Function)
		if !ok || len(at.Params) != len(bt.Params) || !sameType(at.Return, bt.Return) {
			return false
		}
		for i := range at.Params {
			if !sameType(at.Params[i], bt.Params[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// elemType returns the element type produced by indexing typ, or nil if typ
// cannot be indexed.
func elemType(typ Type) Type {
	switch t := typ.(type) {
	case *Array:
		return t.Elem
	case *Slice:
		return t.Elem
	case *Pointer:
		return t.Elem
	case *Reference:
		return t.Elem
	default:
		return nil
	}
}
