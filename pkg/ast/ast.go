package ast

import "github.com/paren-lang/parenc/pkg/lexer"

// Kind tags each node variant. The set is closed: the traverser rejects any
// node reporting a kind outside it.
type Kind string

const (
	KindProgram   Kind = "Program"
	KindCallExpr  Kind = "CallExpression"
	KindNumberLit Kind = "NumberLiteral"
	KindStringLit Kind = "StringLiteral"
)

// Node represents any AST node with an associated source span.
type Node interface {
	Kind() Kind
	Span() lexer.Span
}

// Program is the root of a parsed compilation unit. It never nests inside
// another node's children.
type Program struct {
	Body []Node
	span lexer.Span
}

// Kind returns KindProgram.
func (p *Program) Kind() Kind { return KindProgram }

// Span returns the span covering the entire program.
func (p *Program) Span() lexer.Span { return p.span }

// NewProgram constructs a program node with the provided span.
func NewProgram(span lexer.Span) *Program {
	return &Program{span: span}
}

// SetSpan updates the program span.
func (p *Program) SetSpan(span lexer.Span) {
	p.span = span
}

// CallExpr represents a prefix call expression: (name param...).
type CallExpr struct {
	Name   string
	Params []Node
	span   lexer.Span
}

// Kind returns KindCallExpr.
func (e *CallExpr) Kind() Kind { return KindCallExpr }

// Span returns the expression span.
func (e *CallExpr) Span() lexer.Span { return e.span }

// NewCallExpr constructs a call expression node.
func NewCallExpr(name string, span lexer.Span) *CallExpr {
	return &CallExpr{
		Name: name,
		span: span,
	}
}

// SetSpan updates the call expression span.
func (e *CallExpr) SetSpan(span lexer.Span) {
	e.span = span
}

// NumberLit represents a number literal. It is a leaf.
type NumberLit struct {
	Value string
	span  lexer.Span
}

// Kind returns KindNumberLit.
func (l *NumberLit) Kind() Kind { return KindNumberLit }

// Span returns the literal span.
func (l *NumberLit) Span() lexer.Span { return l.span }

// NewNumberLit constructs a number literal node.
func NewNumberLit(value string, span lexer.Span) *NumberLit {
	return &NumberLit{
		Value: value,
		span:  span,
	}
}

// StringLit represents a string literal (delimiters excluded). It is a leaf.
type StringLit struct {
	Value string
	span  lexer.Span
}

// Kind returns KindStringLit.
func (l *StringLit) Kind() Kind { return KindStringLit }

// Span returns the literal span.
func (l *StringLit) Span() lexer.Span { return l.span }

// NewStringLit constructs a string literal node.
func NewStringLit(value string, span lexer.Span) *StringLit {
	return &StringLit{
		Value: value,
		span:  span,
	}
}
