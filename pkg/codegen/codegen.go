// Package codegen renders the target tree into C-style call syntax.
package codegen

import (
	"fmt"
	"strings"

	"github.com/paren-lang/parenc/pkg/cir"
	"github.com/paren-lang/parenc/pkg/diag"
)

// UnsupportedNodeError reports a target node the generator has no case for.
// Trees produced by the lowerer never trigger it; if it fires, an internal
// invariant was violated upstream.
type UnsupportedNodeError struct {
	Kind cir.Kind
}

func (e *UnsupportedNodeError) Error() string {
	return fmt.Sprintf("cannot generate code for node kind %q", string(e.Kind))
}

// ToDiagnostic converts the error into a shared diagnostic structure.
func (e *UnsupportedNodeError) ToDiagnostic() diag.Diagnostic {
	return diag.Diagnostic{
		Stage:    diag.StageCodegen,
		Severity: diag.SeverityError,
		Code:     diag.CodeGenUnsupportedNode,
		Message:  e.Error(),
	}
}

// Generator renders a cir tree into target-language text.
type Generator struct{}

// NewGenerator creates a new generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate is a convenience wrapper: render the program with a fresh Generator.
func Generate(prog *cir.Program) ([]string, error) {
	return NewGenerator().Generate(prog)
}

// Generate renders the program, one string per top-level statement. The
// caller decides how (or whether) to join them.
func (g *Generator) Generate(prog *cir.Program) ([]string, error) {
	statements := make([]string, 0, len(prog.Body))
	for _, stmt := range prog.Body {
		text, err := g.genNode(stmt)
		if err != nil {
			return nil, err
		}
		statements = append(statements, text)
	}
	return statements, nil
}

// genNode renders one statement or expression node. A Program never nests, so
// it has no case here.
func (g *Generator) genNode(node cir.Node) (string, error) {
	switch n := node.(type) {
	case *cir.ExprStmt:
		expr, err := g.genNode(n.Expr)
		if err != nil {
			return "", err
		}
		return expr + ";", nil

	case *cir.CallExpr:
		callee, err := g.genNode(n.Callee)
		if err != nil {
			return "", err
		}
		args := make([]string, 0, len(n.Args))
		for _, arg := range n.Args {
			text, err := g.genNode(arg)
			if err != nil {
				return "", err
			}
			args = append(args, text)
		}
		return callee + "(" + strings.Join(args, ",") + ")", nil

	case *cir.Ident:
		return n.Name, nil

	case *cir.NumberLit:
		return n.Value, nil

	case *cir.StringLit:
		return "\"" + n.Value + "\"", nil

	default:
		return "", &UnsupportedNodeError{Kind: node.Kind()}
	}
}
