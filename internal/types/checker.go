package types

import (
	"github.com/malphas-lang/malphas-lang/internal/ast"
	"github.com/malphas-lang/malphas-lang/internal/diag"
)

// Checker performs type checking on the trimmed Malphas AST: functions,
// globals, and the statement/expression forms that feed the SSA pass.
// Struct/enum/generic declarations never reach the checker, since the
// front end that would produce them is out of scope.
type Checker struct {
	GlobalScope *Scope
	Errors      []diag.Diagnostic

	// TypeInfo records the resolved type of every expression node checked,
	// so the MIR lowerer can consult it instead of re-inferring types.
	TypeInfo map[ast.Expr]Type

	filename   string
	returnType Type
	loopDepth  int
}

// NewChecker creates a new type checker.
func NewChecker() *Checker {
	return &Checker{
		GlobalScope: NewScope(nil),
		Errors:      []diag.Diagnostic{},
		TypeInfo:    make(map[ast.Expr]Type),
	}
}

// Check validates the types in the given file.
func (c *Checker) Check(file *ast.File) {
	c.CheckWithFilename(file, "")
}

// CheckWithFilename validates the given file, attributing diagnostics to
// filename.
func (c *Checker) CheckWithFilename(file *ast.File, filename string) {
	c.filename = filename

	c.collectDecls(file)
	c.checkBodies(file)
}

// collectDecls performs a first pass over top-level declarations, seeding
// GlobalScope with function and global signatures before any body is
// checked, so forward references and mutual recursion resolve correctly.
func (c *Checker) collectDecls(file *ast.File) {
	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.FnDecl:
			fnType := &Function{Return: TypeVoid}
			for _, param := range d.Params {
				fnType.Params = append(fnType.Params, c.resolveType(param.Type))
			}
			if d.ReturnType != nil {
				fnType.Return = c.resolveType(d.ReturnType)
			}
			c.GlobalScope.Insert(d.Name.Name, &Symbol{
				Name:    d.Name.Name,
				Type:    fnType,
				DefNode: d,
			})
		case *ast.GlobalDecl:
			var typ Type
			if d.Type != nil {
				typ = c.resolveType(d.Type)
			}
			c.GlobalScope.Insert(d.Name.Name, &Symbol{
				Name:    d.Name.Name,
				Type:    typ,
				DefNode: d,
			})
		}
	}
}

// checkBodies type-checks global initializers and function bodies against
// the signatures collected by collectDecls.
func (c *Checker) checkBodies(file *ast.File) {
	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.GlobalDecl:
			c.checkGlobalDecl(d)
		case *ast.FnDecl:
			c.checkFnDecl(d)
		}
	}
}

func (c *Checker) checkGlobalDecl(d *ast.GlobalDecl) {
	sym := c.GlobalScope.Lookup(d.Name.Name)

	valueType := c.checkExpr(d.Value, c.GlobalScope)

	if sym.Type == nil {
		sym.Type = valueType
		return
	}

	if !assignableTo(valueType, sym.Type) {
		c.reportError(
			"cannot assign value of type `"+valueType.String()+"` to global `"+d.Name.Name+"` of type `"+sym.Type.String()+"`",
			d.Value.Span(),
			diag.CodeTypeMismatch,
		)
	}
}

func (c *Checker) checkFnDecl(d *ast.FnDecl) {
	scope := NewScope(c.GlobalScope)

	for _, param := range d.Params {
		scope.Insert(param.Name.Name, &Symbol{
			Name:    param.Name.Name,
			Type:    c.resolveType(param.Type),
			DefNode: param,
		})
	}

	prevReturn := c.returnType
	c.returnType = TypeVoid
	if d.ReturnType != nil {
		c.returnType = c.resolveType(d.ReturnType)
	}
	defer func() { c.returnType = prevReturn }()

	tailType := c.checkBlock(d.Body, scope)

	if d.Body.Tail != nil && c.returnType != TypeVoid && !assignableTo(tailType, c.returnType) {
		c.reportError(
			"function `"+d.Name.Name+"` returns `"+c.returnType.String()+"` but its tail expression has type `"+tailType.String()+"`",
			d.Body.Tail.Span(),
			diag.CodeTypeMismatch,
		)
	}
}
