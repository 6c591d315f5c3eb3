package mir

import (
	"fmt"
	"strings"
)

// PrettyPrint renders a full module deterministically: same tree, same
// text, every time. --dump-mir and --dump-ssa both go through this.
func (m *Module) PrettyPrint() string {
	var b strings.Builder
	for _, g := range m.Globals {
		b.WriteString(g.PrettyPrint())
		b.WriteString("\n")
	}
	if len(m.Globals) > 0 && len(m.Funcs) > 0 {
		b.WriteString("\n")
	}
	for i, fn := range m.Funcs {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(fn.PrettyPrint())
	}
	return b.String()
}

// PrettyPrint renders a single global declaration.
func (g *Global) PrettyPrint() string {
	return fmt.Sprintf("global %s: %s = %s;", g.Var.Name, typeString(g.Var.Type), exprString(g.Init))
}

// PrettyPrint renders a function and its body.
func (f *Func) PrettyPrint() string {
	var b strings.Builder
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = fmt.Sprintf("%s: %s", exprString(p), typeString(p.ExprType()))
	}
	b.WriteString(fmt.Sprintf("fn %s(%s) -> %s {\n", f.Name, strings.Join(params, ", "), typeString(f.Return)))
	b.WriteString(prettyBlock(f.Body, 1))
	b.WriteString("}")
	return b.String()
}

func prettyBlock(block Block, depth int) string {
	indent := strings.Repeat("  ", depth)
	var b strings.Builder
	for _, stmt := range block {
		b.WriteString(indent)
		b.WriteString(prettyStmt(stmt, depth))
		b.WriteString("\n")
	}
	return b.String()
}

func prettyStmt(stmt Statement, depth int) string {
	switch s := stmt.(type) {
	case *Define:
		if s.Init == nil {
			return fmt.Sprintf("define %s: %s;", exprString(s.Target), typeString(s.Target.ExprType()))
		}
		return fmt.Sprintf("define %s: %s = %s;", exprString(s.Target), typeString(s.Target.ExprType()), exprString(s.Init))
	case *Assign:
		return fmt.Sprintf("%s = %s;", exprString(s.Target), exprString(s.Value))
	case *ForLoop:
		var b strings.Builder
		b.WriteString(fmt.Sprintf("for %s in %s..%s step %s {\n", exprString(s.Iterator), exprString(s.Begin), exprString(s.End), exprString(s.Step)))
		b.WriteString(prettyBlock(s.Body, depth+1))
		b.WriteString(strings.Repeat("  ", depth))
		b.WriteString("}")
		return b.String()
	case *IfElse:
		var b strings.Builder
		b.WriteString(fmt.Sprintf("if %s {\n", exprString(s.Cond)))
		b.WriteString(prettyBlock(s.Then, depth+1))
		b.WriteString(strings.Repeat("  ", depth))
		b.WriteString("}")
		if s.Else != nil {
			b.WriteString(" else {\n")
			b.WriteString(prettyBlock(s.Else, depth+1))
			b.WriteString(strings.Repeat("  ", depth))
			b.WriteString("}")
		}
		return b.String()
	case *Func:
		return s.PrettyPrint()
	case *Return:
		if s.Value == nil {
			return "return;"
		}
		return fmt.Sprintf("return %s;", exprString(s.Value))
	default:
		return fmt.Sprintf("<?stmt:%T>", stmt)
	}
}

func exprString(e Expr) string {
	switch v := e.(type) {
	case *Var:
		return v.Name
	case *Tensor:
		return v.Name
	case *Constant:
		return constantString(v)
	case *Indexing:
		indices := make([]string, len(v.Indices))
		for i, idx := range v.Indices {
			indices[i] = exprString(idx)
		}
		return fmt.Sprintf("%s[%s]", exprString(v.Target), strings.Join(indices, ", "))
	case *Phi:
		operands := make([]string, len(v.Operands))
		for i, op := range v.Operands {
			operands[i] = exprString(op)
		}
		return fmt.Sprintf("phi(%s)", strings.Join(operands, ", "))
	case *Generic:
		operands := make([]string, len(v.Operands))
		for i, op := range v.Operands {
			operands[i] = exprString(op)
		}
		return fmt.Sprintf("%s(%s)", v.Op, strings.Join(operands, ", "))
	case nil:
		return "<nil>"
	default:
		return fmt.Sprintf("<?expr:%T>", e)
	}
}

func constantString(c *Constant) string {
	switch v := c.Value.(type) {
	case int64:
		return fmt.Sprintf("%d", v)
	case float64:
		return fmt.Sprintf("%g", v)
	case bool:
		if v {
			return "true"
		}
		return "false"
	case string:
		return fmt.Sprintf("%q", v)
	case nil:
		return "nil"
	default:
		return fmt.Sprintf("%v", v)
	}
}

func typeString(t interface{ String() string }) string {
	if t == nil {
		return "void"
	}
	return t.String()
}
