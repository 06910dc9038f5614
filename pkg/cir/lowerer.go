package cir

import (
	"github.com/paren-lang/parenc/pkg/ast"
)

// Lowerer converts a source AST into the C-shaped target tree. Every target
// node is freshly constructed: the source tree is never mutated or aliased,
// and both trees stay independently usable after Lower returns.
//
// A Lowerer holds no state between calls; its scratch state is allocated per
// Lower call, so one Lowerer may serve concurrent callers.
type Lowerer struct{}

// NewLowerer creates a new lowerer.
func NewLowerer() *Lowerer {
	return &Lowerer{}
}

// Lower is a convenience wrapper: lower the program with a fresh Lowerer.
func Lower(prog *ast.Program) (*Program, error) {
	return NewLowerer().Lower(prog)
}

// Lower transforms the source program into a target program.
//
// The wrapping rule is local: a call whose immediate parent is itself a call
// stays a bare expression (it is an argument); any other call is a top-level
// statement and gets an ExpressionStatement wrapper. Sibling order and nesting
// depth carry over unchanged.
func (l *Lowerer) Lower(prog *ast.Program) (*Program, error) {
	target := &Program{}

	// out maps each source node that emits children to the target sequence
	// those children are appended into. Identity-keyed scratch state scoped
	// to this call; it never lives on the nodes themselves.
	out := map[ast.Node]*[]Node{
		prog: &target.Body,
	}

	// emit appends a target node to the output sequence registered for parent.
	emit := func(parent ast.Node, node Node) {
		slot := out[parent]
		*slot = append(*slot, node)
	}

	err := ast.Walk(prog, ast.VisitorMap{
		ast.KindNumberLit: {
			Enter: func(node, parent ast.Node) {
				lit := node.(*ast.NumberLit)
				emit(parent, &NumberLit{Value: lit.Value})
			},
		},

		ast.KindStringLit: {
			Enter: func(node, parent ast.Node) {
				lit := node.(*ast.StringLit)
				emit(parent, &StringLit{Value: lit.Value})
			},
		},

		ast.KindCallExpr: {
			Enter: func(node, parent ast.Node) {
				src := node.(*ast.CallExpr)
				call := &CallExpr{Callee: &Ident{Name: src.Name}}

				// The call's own params append into its argument list.
				out[node] = &call.Args

				if _, nested := parent.(*ast.CallExpr); nested {
					emit(parent, call)
				} else {
					emit(parent, &ExprStmt{Expr: call})
				}
			},
		},
	})
	if err != nil {
		return nil, err
	}

	return target, nil
}
