package ast

import "github.com/malphas-lang/malphas-lang/internal/lexer"

// FloatLit represents a floating-point literal.
type FloatLit struct {
	Text string
	span lexer.Span
}

func (l *FloatLit) Span() lexer.Span    { return l.span }
func (l *FloatLit) SetSpan(s lexer.Span) { l.span = s }
func (*FloatLit) exprNode()             {}

func NewFloatLit(text string, span lexer.Span) *FloatLit {
	return &FloatLit{Text: text, span: span}
}

// StringLit represents a string literal, already unescaped.
type StringLit struct {
	Value string
	span  lexer.Span
}

func (l *StringLit) Span() lexer.Span    { return l.span }
func (l *StringLit) SetSpan(s lexer.Span) { l.span = s }
func (*StringLit) exprNode()             {}

func NewStringLit(value string, span lexer.Span) *StringLit {
	return &StringLit{Value: value, span: span}
}

// BoolLit represents a boolean literal.
type BoolLit struct {
	Value bool
	span  lexer.Span
}

func (l *BoolLit) Span() lexer.Span    { return l.span }
func (l *BoolLit) SetSpan(s lexer.Span) { l.span = s }
func (*BoolLit) exprNode()             {}

func NewBoolLit(value bool, span lexer.Span) *BoolLit {
	return &BoolLit{Value: value, span: span}
}

// NilLit represents the nil literal.
type NilLit struct {
	span lexer.Span
}

func (l *NilLit) Span() lexer.Span    { return l.span }
func (l *NilLit) SetSpan(s lexer.Span) { l.span = s }
func (*NilLit) exprNode()             {}

func NewNilLit(span lexer.Span) *NilLit {
	return &NilLit{span: span}
}
