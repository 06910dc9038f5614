package ast

import (
	"fmt"

	"github.com/paren-lang/parenc/pkg/diag"
)

// Visitor holds the callbacks invoked around a node of one kind. Either
// callback may be nil. Enter runs before the node's children, Exit after.
type Visitor struct {
	Enter func(node Node, parent Node)
	Exit  func(node Node, parent Node)
}

// VisitorMap maps node kinds to their visitors. Kinds without an entry are
// still traversed, just without callbacks.
type VisitorMap map[Kind]Visitor

// UnknownKindError reports a node whose kind is outside the source AST variant
// set. It signals a malformed tree, not a recoverable condition.
type UnknownKindError struct {
	Kind Kind
}

func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("unknown node kind %q", string(e.Kind))
}

// ToDiagnostic converts the error into a shared diagnostic structure. In the
// pipeline, traversal only happens during lowering, so the diagnostic is
// attributed to the transform stage.
func (e *UnknownKindError) ToDiagnostic() diag.Diagnostic {
	return diag.Diagnostic{
		Stage:    diag.StageTransform,
		Severity: diag.SeverityError,
		Code:     diag.CodeTransformUnknownNode,
		Message:  e.Error(),
	}
}

// Walk traverses the tree depth-first, calling each kind's Enter callback
// before its children and Exit after. Children are visited left to right in
// slice order; the lowering stage relies on that order to keep argument lists
// in source order. The root is visited with a nil parent.
func Walk(root Node, visitors VisitorMap) error {
	return walkNode(root, nil, visitors)
}

func walkNode(node, parent Node, visitors VisitorMap) error {
	visitor, ok := visitors[node.Kind()]
	if ok && visitor.Enter != nil {
		visitor.Enter(node, parent)
	}

	switch n := node.(type) {
	case *Program:
		for _, child := range n.Body {
			if err := walkNode(child, n, visitors); err != nil {
				return err
			}
		}

	case *CallExpr:
		for _, param := range n.Params {
			if err := walkNode(param, n, visitors); err != nil {
				return err
			}
		}

	case *NumberLit, *StringLit:
		// Leaf nodes have no children to traverse.

	default:
		return &UnknownKindError{Kind: node.Kind()}
	}

	if ok && visitor.Exit != nil {
		visitor.Exit(node, parent)
	}

	return nil
}
