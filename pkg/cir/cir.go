// Package cir defines the C-shaped intermediate tree the compiler lowers the
// source AST into, and the Lowerer that performs that transformation. The tree
// mirrors the target call syntax: top-level calls become expression statements,
// nested calls stay bare expressions.
package cir

// Kind tags each target node variant.
type Kind string

const (
	KindProgram   Kind = "Program"
	KindExprStmt  Kind = "ExpressionStatement"
	KindCallExpr  Kind = "CallExpression"
	KindIdent     Kind = "Identifier"
	KindNumberLit Kind = "NumberLiteral"
	KindStringLit Kind = "StringLiteral"
)

// Node represents any node of the target tree.
type Node interface {
	Kind() Kind
}

// Program is the root of the target tree. Its body holds one
// ExpressionStatement per top-level call in the source.
type Program struct {
	Body []Node
}

// Kind returns KindProgram.
func (p *Program) Kind() Kind { return KindProgram }

// ExprStmt wraps exactly one expression appearing at statement position.
type ExprStmt struct {
	Expr Node
}

// Kind returns KindExprStmt.
func (s *ExprStmt) Kind() Kind { return KindExprStmt }

// CallExpr represents a C-style call: callee(arg, ...).
type CallExpr struct {
	Callee *Ident
	Args   []Node
}

// Kind returns KindCallExpr.
func (e *CallExpr) Kind() Kind { return KindCallExpr }

// Ident represents the called identifier.
type Ident struct {
	Name string
}

// Kind returns KindIdent.
func (i *Ident) Kind() Kind { return KindIdent }

// NumberLit represents a number literal.
type NumberLit struct {
	Value string
}

// Kind returns KindNumberLit.
func (l *NumberLit) Kind() Kind { return KindNumberLit }

// StringLit represents a string literal (delimiters excluded; the generator
// adds them back).
type StringLit struct {
	Value string
}

// Kind returns KindStringLit.
func (l *StringLit) Kind() Kind { return KindStringLit }
