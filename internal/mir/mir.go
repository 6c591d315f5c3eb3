// Package mir defines the structured, tree-shaped intermediate
// representation the SSA transformer (internal/mir/ssa) rewrites. Unlike a
// basic-block IR, control flow here is nested: a ForLoop or IfElse carries
// its body as a Block, not a set of successor blocks.
package mir

import (
	"github.com/malphas-lang/malphas-lang/internal/lexer"
	"github.com/malphas-lang/malphas-lang/internal/types"
)

// Node is any MIR expression or statement.
type Node interface {
	Span() lexer.Span
}

// Expr is a MIR expression node: Var, Tensor, Constant, Indexing, Phi, or
// Generic (the catch-all for arbitrary pure/impure computations).
type Expr interface {
	Node
	exprNode()
	Attrs() *AttrMap
	SSA() *SSAData
	SetSSA(*SSAData)
	ExprType() types.Type
}

// Statement is a MIR statement node.
type Statement interface {
	Node
	stmtNode()
	Attrs() *AttrMap
}

// Block is a sequence of statements. The visitor rewrites it in place via
// AddDef and AddDefAfterCurrent as it walks.
type Block []Statement

// ModuleGlobalOffset is the attribute key that marks a Var as a module
// global. Its presence, not its value, carries the meaning; the lowerer
// stores the declaration's position in the module's global list.
const ModuleGlobalOffset = "module_global_offset"

// Linkage distinguishes a Define statement's target storage.
type Linkage string

const (
	LinkageLocal  Linkage = "local"
	LinkageGlobal Linkage = "global"
)

// AttrMap is a small ordered attribute map. Iteration order follows
// insertion order so pretty-printed and re-emitted attributes stay
// deterministic across runs.
type AttrMap struct {
	keys   []string
	values map[string]any
}

// NewAttrMap returns an empty attribute map.
func NewAttrMap() *AttrMap {
	return &AttrMap{values: make(map[string]any)}
}

// Set records key with the given value, preserving first-insertion order.
func (m *AttrMap) Set(key string, val any) {
	if m.values == nil {
		m.values = make(map[string]any)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = val
}

// Get reports the value stored under key, if any.
func (m *AttrMap) Get(key string) (any, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key is present.
func (m *AttrMap) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// IsGlobal reports whether the map carries the module-global marker.
func (m *AttrMap) IsGlobal() bool { return m.Has(ModuleGlobalOffset) }

// Keys returns the attribute keys in insertion order.
func (m *AttrMap) Keys() []string {
	if m == nil {
		return nil
	}
	return m.keys
}

// Clone copies every attribute (§9: emitted rewrites must carry source
// attributes forward onto their replacement).
func (m *AttrMap) Clone() *AttrMap {
	c := NewAttrMap()
	if m == nil {
		return c
	}
	for _, k := range m.keys {
		c.Set(k, m.values[k])
	}
	return c
}

// SSAData is the per-node SSA metadata record, attached lazily by the pass.
type SSAData struct {
	IsGlobal bool
	IsParam  bool

	defining Expr
}

// IsLocal reports whether this value is neither a global nor a parameter.
func (d *SSAData) IsLocal() bool {
	return d != nil && !d.IsGlobal && !d.IsParam
}

// DefiningExpr returns the expression that produced this temporary's value,
// or nil if none was recorded.
func (d *SSAData) DefiningExpr() Expr {
	if d == nil {
		return nil
	}
	return d.defining
}

// SetDefiningExpr records the defining expression for a temporary.
func (d *SSAData) SetDefiningExpr(e Expr) { d.defining = e }

// GetValueOfVar is an alias for DefiningExpr, named to match the external
// visitor contract's helper of the same name.
func (d *SSAData) GetValueOfVar() Expr { return d.DefiningExpr() }

type base struct {
	attrs *AttrMap
	ssa   *SSAData
	span  lexer.Span
}

func (b *base) Span() lexer.Span { return b.span }

func (b *base) Attrs() *AttrMap {
	if b.attrs == nil {
		b.attrs = NewAttrMap()
	}
	return b.attrs
}

func (b *base) SSA() *SSAData { return b.ssa }

func (b *base) SetSSA(d *SSAData) { b.ssa = d }

// Var is a named scalar. Old vars identify a pre-pass binding by (kind,
// name); new vars (produced by Remake) carry a freshly assigned name and no
// SSA metadata until the pass attaches one.
type Var struct {
	base
	Name string
	Type types.Type
}

func (*Var) exprNode()             {}
func (v *Var) ExprType() types.Type { return v.Type }

// Tensor is a named aggregate, used by reference: reads and writes never
// version it, and it carries no phi nodes.
type Tensor struct {
	base
	Name string
	Type types.Type
}

func (*Tensor) exprNode()             {}
func (t *Tensor) ExprType() types.Type { return t.Type }

// Constant is a literal value baked into the tree.
type Constant struct {
	base
	Value any
	Type  types.Type
}

func (*Constant) exprNode()             {}
func (c *Constant) ExprType() types.Type { return c.Type }

// Indexing is an element address into a tensor: target[indices...].
type Indexing struct {
	base
	Target  Expr
	Indices []Expr
	Type    types.Type
}

func (*Indexing) exprNode()             {}
func (i *Indexing) ExprType() types.Type { return i.Type }

// Phi is an n-ary merge at a control-flow join.
type Phi struct {
	base
	Operands []Expr
	Type     types.Type
}

func (*Phi) exprNode()             {}
func (p *Phi) ExprType() types.Type { return p.Type }

// AppendOperand mutates the phi's operand list in place. Go's pointer
// semantics give a *Phi identity for free, so a loop head-phi created
// before its back-edge value is known can be patched by holding onto the
// same pointer rather than an index into an arena.
func (p *Phi) AppendOperand(e Expr) { p.Operands = append(p.Operands, e) }

// Generic is the catch-all node for arbitrary pure/impure computations:
// binary/unary operators and calls. It exists so the expression-flattening
// rule has something non-trivial to flatten.
type Generic struct {
	base
	Op       string
	Operands []Expr
	Type     types.Type
}

func (*Generic) exprNode()             {}
func (g *Generic) ExprType() types.Type { return g.Type }

// Define binds Target's current value. A local scalar with no initializer
// is represented but never reaches emitted output (the pass elides it);
// see stmt_define.go.
type Define struct {
	base
	Target  Expr
	Linkage Linkage
	Init    Expr
}

func (*Define) stmtNode() {}

// Assign stores Value into Target, which is either a global Var or an
// Indexing (tensor element store).
type Assign struct {
	base
	Target Expr
	Value  Expr
}

func (*Assign) stmtNode() {}

// ForLoop is `for Iterator in Begin..End step Step { Body }`.
type ForLoop struct {
	base
	Iterator         Expr
	Begin, End, Step Expr
	Body             Block
}

func (*ForLoop) stmtNode() {}

// IfElse is a structured two-way branch. Else is nil when there is no else
// arm.
type IfElse struct {
	base
	Cond Expr
	Then Block
	Else Block
}

func (*IfElse) stmtNode() {}

// Func is a function definition: the top-level dispatch unit.
type Func struct {
	base
	Name   string
	Params []Expr
	Return types.Type
	Body   Block
}

func (*Func) stmtNode() {}

// Return carries a function's result value. It is not part of spec.md's SSA
// algorithm — the pass treats it as inert plumbing, dispatching Value like
// any other expression-bearing statement and leaving the node itself alone.
type Return struct {
	base
	Value Expr // nil for a void return
}

func (*Return) stmtNode() {}

// Global is a module-level variable declaration living outside any
// function body, lowered from an ast.GlobalDecl. Its Var always carries the
// ModuleGlobalOffset attribute.
type Global struct {
	base
	Var  *Var
	Init Expr
}

func (*Global) stmtNode() {}

// Module is a full compilation unit: globals plus functions.
type Module struct {
	Globals []*Global
	Funcs   []*Func
}
