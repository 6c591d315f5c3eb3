package types_test

import (
	"testing"

	"github.com/malphas-lang/malphas-lang/internal/parser"
	"github.com/malphas-lang/malphas-lang/internal/types"
)

func checkSource(t *testing.T, src string) *types.Checker {
	t.Helper()

	p := parser.New(src)
	file := p.ParseFile()
	if errs := p.Errors(); len(errs) > 0 {
		for _, err := range errs {
			t.Errorf("unexpected parse error: %s", err.Message)
		}
		t.Fatalf("parser reported %d error(s)", len(errs))
	}

	checker := types.NewChecker()
	checker.Check(file)
	return checker
}

func assertNoTypeErrors(t *testing.T, c *types.Checker) {
	t.Helper()

	if len(c.Errors) == 0 {
		return
	}
	for _, err := range c.Errors {
		t.Errorf("unexpected type error: %s", err.Message)
	}
	t.Fatalf("checker reported %d error(s)", len(c.Errors))
}

func TestCheckerAcceptsWellTypedFunction(t *testing.T) {
	const src = `
package foo;

fn add(x: int, y: int) -> int {
	return x + y;
}
`
	c := checkSource(t, src)
	assertNoTypeErrors(t, c)
}

func TestCheckerRejectsMismatchedReturnType(t *testing.T) {
	const src = `
package foo;

fn wrong() -> int {
	return true;
}
`
	c := checkSource(t, src)
	if len(c.Errors) == 0 {
		t.Fatalf("expected a type error for returning bool from an int function")
	}
}

func TestCheckerRejectsUndefinedIdentifier(t *testing.T) {
	const src = `
package foo;

fn broken() {
	let x = y;
}
`
	c := checkSource(t, src)
	if len(c.Errors) == 0 {
		t.Fatalf("expected an undefined identifier error")
	}
}

func TestCheckerAcceptsIfElseTailValue(t *testing.T) {
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
	c := checkSource(t, src)
	assertNoTypeErrors(t, c)
}

func TestCheckerRejectsBranchTypeMismatch(t *testing.T) {
	const src = `
package foo;

fn broken(x: int) -> int {
	if x < 0 {
		true
	} else {
		x
	}
}
`
	c := checkSource(t, src)
	if len(c.Errors) == 0 {
		t.Fatalf("expected a type mismatch between if/else branches")
	}
}

func TestCheckerChecksCallArguments(t *testing.T) {
	const src = `
package foo;

fn add(x: int, y: int) -> int {
	return x + y;
}

fn caller() -> int {
	return add(1, true);
}
`
	c := checkSource(t, src)
	if len(c.Errors) == 0 {
		t.Fatalf("expected a type error for passing bool where int is expected")
	}
}

func TestCheckerChecksGlobalInitializer(t *testing.T) {
	const src = `
package foo;

global counter: int = 0;
`
	c := checkSource(t, src)
	assertNoTypeErrors(t, c)
}

func TestCheckerAcceptsWhileAndForLoops(t *testing.T) {
	const src = `
package foo;

fn sumTo(n: int, items: []int) -> int {
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
	c := checkSource(t, src)
	assertNoTypeErrors(t, c)
}

func TestCheckerRejectsBreakOutsideLoop(t *testing.T) {
	const src = `
package foo;

fn broken() {
	break;
}
`
	c := checkSource(t, src)
	if len(c.Errors) == 0 {
		t.Fatalf("expected an error for break outside of a loop")
	}
}
