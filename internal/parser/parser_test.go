package parser_test

import (
	"testing"

	"github.com/malphas-lang/malphas-lang/internal/ast"
	"github.com/malphas-lang/malphas-lang/internal/parser"
)

func parseFile(t *testing.T, src string) (*ast.File, []parser.ParseError) {
	t.Helper()

	p := parser.New(src)
	file := p.ParseFile()

	return file, p.Errors()
}

func assertNoErrors(t *testing.T, errs []parser.ParseError) {
	t.Helper()

	if len(errs) == 0 {
		return
	}

	for _, err := range errs {
		t.Errorf("unexpected parse error: %s", err.Message)
	}
	t.Fatalf("parser reported %d error(s)", len(errs))
}

func TestParsePackageDecl(t *testing.T) {
	const src = `
package foo;
`

	file, errs := parseFile(t, src)
	assertNoErrors(t, errs)

	if file == nil {
		t.Fatalf("file is nil")
	}

	if file.Package == nil {
		t.Fatalf("expected file.Package to be populated")
	}

	if got := file.Package.Name.Name; got != "foo" {
		t.Fatalf("expected package name %q, got %q", "foo", got)
	}
}

func TestParseUseDecl(t *testing.T) {
	const src = `
package foo;
use std::io as io;
fn main() {}
`

	file, errs := parseFile(t, src)
	assertNoErrors(t, errs)

	if len(file.Uses) != 1 {
		t.Fatalf("expected 1 use declaration, got %d", len(file.Uses))
	}

	use := file.Uses[0]
	if len(use.Path) != 2 || use.Path[0].Name != "std" || use.Path[1].Name != "io" {
		t.Fatalf("unexpected use path: %+v", use.Path)
	}
	if use.Alias == nil || use.Alias.Name != "io" {
		t.Fatalf("expected alias 'io', got %+v", use.Alias)
	}
}

func TestParseFnDeclWithParamsAndReturnType(t *testing.T) {
	const src = `
package foo;

fn add(x: int, y: int) -> int {
	return x + y;
}
`

	file, errs := parseFile(t, src)
	assertNoErrors(t, errs)

	if len(file.Decls) != 1 {
		t.Fatalf("expected 1 declaration, got %d", len(file.Decls))
	}

	fn, ok := file.Decls[0].(*ast.FnDecl)
	if !ok {
		t.Fatalf("expected *ast.FnDecl, got %T", file.Decls[0])
	}

	if fn.Name.Name != "add" {
		t.Fatalf("expected function name 'add', got %q", fn.Name.Name)
	}
	if len(fn.Params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(fn.Params))
	}
	if fn.ReturnType == nil {
		t.Fatalf("expected a return type")
	}
	if len(fn.Body.Stmts) != 1 {
		t.Fatalf("expected 1 statement in body, got %d", len(fn.Body.Stmts))
	}
}

func TestParseGlobalDecl(t *testing.T) {
	const src = `
package foo;

global counter: int = 0;
`

	file, errs := parseFile(t, src)
	assertNoErrors(t, errs)

	if len(file.Decls) != 1 {
		t.Fatalf("expected 1 declaration, got %d", len(file.Decls))
	}

	global, ok := file.Decls[0].(*ast.GlobalDecl)
	if !ok {
		t.Fatalf("expected *ast.GlobalDecl, got %T", file.Decls[0])
	}
	if global.Name.Name != "counter" {
		t.Fatalf("expected global name 'counter', got %q", global.Name.Name)
	}
}

func TestParseLetStmtWithMutAndType(t *testing.T) {
	const src = `
package foo;

fn main() {
	let mut x: int = 1 + 2 * 3;
}
`

	file, errs := parseFile(t, src)
	assertNoErrors(t, errs)

	fn := file.Decls[0].(*ast.FnDecl)
	let, ok := fn.Body.Stmts[0].(*ast.LetStmt)
	if !ok {
		t.Fatalf("expected *ast.LetStmt, got %T", fn.Body.Stmts[0])
	}
	if !let.Mutable {
		t.Fatalf("expected let binding to be mutable")
	}

	// Precedence: 1 + (2 * 3)
	infix, ok := let.Value.(*ast.InfixExpr)
	if !ok {
		t.Fatalf("expected *ast.InfixExpr, got %T", let.Value)
	}
	if _, ok := infix.Right.(*ast.InfixExpr); !ok {
		t.Fatalf("expected right-hand side to be a nested infix expression from precedence")
	}
}

func TestParseIfExprAsTailValue(t *testing.T) {
	const src = `
package foo;

fn abs(x: int) -> int {
	if x < 0 {
		-x
	} else {
		x
	}
}
`

	file, errs := parseFile(t, src)
	assertNoErrors(t, errs)

	fn := file.Decls[0].(*ast.FnDecl)
	ifExpr, ok := fn.Body.Tail.(*ast.IfExpr)
	if !ok {
		t.Fatalf("expected block tail to be *ast.IfExpr, got %T", fn.Body.Tail)
	}
	if len(ifExpr.Clauses) != 1 {
		t.Fatalf("expected 1 if-clause, got %d", len(ifExpr.Clauses))
	}
	if ifExpr.Else == nil {
		t.Fatalf("expected an else block")
	}
}

func TestParseWhileAndForLoops(t *testing.T) {
	const src = `
package foo;

fn sumTo(n: int) -> int {
	let mut total: int = 0;
	let mut i: int = 0;
	while i < n {
		total = total + i;
		i = i + 1;
	}
	for x in items {
		total = total + x;
	}
	return total;
}
`

	file, errs := parseFile(t, src)
	assertNoErrors(t, errs)

	fn := file.Decls[0].(*ast.FnDecl)
	var sawWhile, sawFor bool
	for _, stmt := range fn.Body.Stmts {
		switch stmt.(type) {
		case *ast.WhileStmt:
			sawWhile = true
		case *ast.ForStmt:
			sawFor = true
		}
	}
	if !sawWhile {
		t.Fatalf("expected a while statement")
	}
	if !sawFor {
		t.Fatalf("expected a for statement")
	}
}

func TestParsePointerAndReferenceTypes(t *testing.T) {
	const src = `
package foo;

fn touch(p: *int, r: &int, m: &mut int, opt: int?) {}
`

	file, errs := parseFile(t, src)
	assertNoErrors(t, errs)

	fn := file.Decls[0].(*ast.FnDecl)

	if _, ok := fn.Params[0].Type.(*ast.PointerType); !ok {
		t.Fatalf("expected param 0 to be *ast.PointerType, got %T", fn.Params[0].Type)
	}

	ref, ok := fn.Params[1].Type.(*ast.ReferenceType)
	if !ok || ref.Mutable {
		t.Fatalf("expected param 1 to be an immutable reference type, got %+v", fn.Params[1].Type)
	}

	mutRef, ok := fn.Params[2].Type.(*ast.ReferenceType)
	if !ok || !mutRef.Mutable {
		t.Fatalf("expected param 2 to be a mutable reference type, got %+v", fn.Params[2].Type)
	}

	if _, ok := fn.Params[3].Type.(*ast.OptionalType); !ok {
		t.Fatalf("expected param 3 to be *ast.OptionalType, got %T", fn.Params[3].Type)
	}
}

func TestParseCallIndexAndFieldExprs(t *testing.T) {
	const src = `
package foo;

fn run() {
	let x = matrix[i, j].value + f(a, b);
}
`

	file, errs := parseFile(t, src)
	assertNoErrors(t, errs)

	fn := file.Decls[0].(*ast.FnDecl)
	let := fn.Body.Stmts[0].(*ast.LetStmt)
	infix, ok := let.Value.(*ast.InfixExpr)
	if !ok {
		t.Fatalf("expected *ast.InfixExpr, got %T", let.Value)
	}

	field, ok := infix.Left.(*ast.FieldExpr)
	if !ok {
		t.Fatalf("expected left side to be *ast.FieldExpr, got %T", infix.Left)
	}
	index, ok := field.Target.(*ast.IndexExpr)
	if !ok {
		t.Fatalf("expected field target to be *ast.IndexExpr, got %T", field.Target)
	}
	if len(index.Indices) != 2 {
		t.Fatalf("expected a 2-dimensional index, got %d", len(index.Indices))
	}

	if _, ok := infix.Right.(*ast.CallExpr); !ok {
		t.Fatalf("expected right side to be *ast.CallExpr, got %T", infix.Right)
	}
}

func TestParseArrayAndSliceTypes(t *testing.T) {
	const src = `
package foo;

fn sizes(fixed: [4]int, dynamic: []int) {}
`

	file, errs := parseFile(t, src)
	assertNoErrors(t, errs)

	fn := file.Decls[0].(*ast.FnDecl)

	if _, ok := fn.Params[0].Type.(*ast.ArrayType); !ok {
		t.Fatalf("expected param 0 to be *ast.ArrayType, got %T", fn.Params[0].Type)
	}
	if _, ok := fn.Params[1].Type.(*ast.SliceType); !ok {
		t.Fatalf("expected param 1 to be *ast.SliceType, got %T", fn.Params[1].Type)
	}
}

func TestParseMissingSemicolonReportsError(t *testing.T) {
	const src = `
package foo;

fn broken() {
	let x = 1
	return x;
}
`

	_, errs := parseFile(t, src)
	if len(errs) == 0 {
		t.Fatalf("expected at least one parse error for missing semicolon")
	}
}
