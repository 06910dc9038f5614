package cir

import (
	"math/rand"
	"testing"

	"github.com/paren-lang/parenc/pkg/ast"
	"github.com/paren-lang/parenc/pkg/lexer"
	"github.com/paren-lang/parenc/pkg/parser"
)

func parseSource(t *testing.T, input string) *ast.Program {
	t.Helper()
	l := lexer.New(input)
	program, err := parser.Parse(l.Tokenize())
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return program
}

func TestLower_NestedCall(t *testing.T) {
	program := parseSource(t, `(add 2 (subtract 4 2))`)

	target, err := Lower(program)
	if err != nil {
		t.Fatalf("Lower failed: %v", err)
	}

	if len(target.Body) != 1 {
		t.Fatalf("target body length wrong. expected=%d, got=%d", 1, len(target.Body))
	}

	stmt, ok := target.Body[0].(*ExprStmt)
	if !ok {
		t.Fatalf("body[0] type wrong. expected=*ExprStmt, got=%T", target.Body[0])
	}

	add, ok := stmt.Expr.(*CallExpr)
	if !ok {
		t.Fatalf("statement expr type wrong. expected=*CallExpr, got=%T", stmt.Expr)
	}
	if add.Callee.Name != "add" {
		t.Fatalf("callee wrong. expected=%q, got=%q", "add", add.Callee.Name)
	}
	if len(add.Args) != 2 {
		t.Fatalf("arg count wrong. expected=%d, got=%d", 2, len(add.Args))
	}

	if lit, ok := add.Args[0].(*NumberLit); !ok || lit.Value != "2" {
		t.Fatalf("args[0] wrong. expected NumberLit 2, got %T %v", add.Args[0], add.Args[0])
	}

	// The nested call is an argument: bare CallExpr, no statement wrapper.
	subtract, ok := add.Args[1].(*CallExpr)
	if !ok {
		t.Fatalf("args[1] type wrong. expected=*CallExpr, got=%T", add.Args[1])
	}
	if subtract.Callee.Name != "subtract" {
		t.Fatalf("nested callee wrong. expected=%q, got=%q", "subtract", subtract.Callee.Name)
	}
	if len(subtract.Args) != 2 {
		t.Fatalf("nested arg count wrong. expected=%d, got=%d", 2, len(subtract.Args))
	}
}

func TestLower_SiblingStatementsKeepOrder(t *testing.T) {
	program := parseSource(t, `(add 2 3)(subtract 4 3)`)

	target, err := Lower(program)
	if err != nil {
		t.Fatalf("Lower failed: %v", err)
	}

	if len(target.Body) != 2 {
		t.Fatalf("target body length wrong. expected=%d, got=%d", 2, len(target.Body))
	}

	names := []string{"add", "subtract"}
	for i, want := range names {
		stmt, ok := target.Body[i].(*ExprStmt)
		if !ok {
			t.Fatalf("body[%d] type wrong. expected=*ExprStmt, got=%T", i, target.Body[i])
		}
		call := stmt.Expr.(*CallExpr)
		if call.Callee.Name != want {
			t.Fatalf("body[%d] callee wrong. expected=%q, got=%q", i, want, call.Callee.Name)
		}
	}
}

func TestLower_StringLiteral(t *testing.T) {
	program := parseSource(t, `(foo "bar")`)

	target, err := Lower(program)
	if err != nil {
		t.Fatalf("Lower failed: %v", err)
	}

	call := target.Body[0].(*ExprStmt).Expr.(*CallExpr)
	str, ok := call.Args[0].(*StringLit)
	if !ok {
		t.Fatalf("args[0] type wrong. expected=*StringLit, got=%T", call.Args[0])
	}
	if str.Value != "bar" {
		t.Fatalf("string value wrong. expected=%q, got=%q", "bar", str.Value)
	}
}

func TestLower_EmptyProgram(t *testing.T) {
	target, err := Lower(ast.NewProgram(lexer.Span{}))
	if err != nil {
		t.Fatalf("Lower failed: %v", err)
	}
	if len(target.Body) != 0 {
		t.Fatalf("target body length wrong. expected=%d, got=%d", 0, len(target.Body))
	}
}

func TestLower_SourceTreeUntouched(t *testing.T) {
	program := parseSource(t, `(add 2 (subtract 4 2))`)
	outer := program.Body[0].(*ast.CallExpr)
	paramsBefore := len(outer.Params)

	if _, err := Lower(program); err != nil {
		t.Fatalf("Lower failed: %v", err)
	}

	if len(program.Body) != 1 {
		t.Fatalf("source body mutated. expected len=%d, got=%d", 1, len(program.Body))
	}
	if len(outer.Params) != paramsBefore {
		t.Fatalf("source params mutated. expected len=%d, got=%d", paramsBefore, len(outer.Params))
	}
}

// countSourceCalls counts CallExpr nodes in a source tree.
func countSourceCalls(t *testing.T, prog *ast.Program) int {
	t.Helper()
	count := 0
	err := ast.Walk(prog, ast.VisitorMap{
		ast.KindCallExpr: {
			Enter: func(node, parent ast.Node) { count++ },
		},
	})
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}
	return count
}

// countTargetCalls counts CallExpr nodes in a target tree.
func countTargetCalls(node Node) int {
	switch n := node.(type) {
	case *Program:
		count := 0
		for _, child := range n.Body {
			count += countTargetCalls(child)
		}
		return count
	case *ExprStmt:
		return countTargetCalls(n.Expr)
	case *CallExpr:
		count := 1
		for _, arg := range n.Args {
			count += countTargetCalls(arg)
		}
		return count
	default:
		return 0
	}
}

// randomCall builds a random call tree: each param is a literal or, while
// depth remains, another call.
func randomCall(rng *rand.Rand, depth int) *ast.CallExpr {
	names := []string{"add", "subtract", "multiply", "concat"}
	call := ast.NewCallExpr(names[rng.Intn(len(names))], lexer.Span{})

	params := rng.Intn(4)
	for i := 0; i < params; i++ {
		if depth > 0 && rng.Intn(2) == 0 {
			call.Params = append(call.Params, randomCall(rng, depth-1))
		} else if rng.Intn(2) == 0 {
			call.Params = append(call.Params, ast.NewNumberLit("7", lexer.Span{}))
		} else {
			call.Params = append(call.Params, ast.NewStringLit("s", lexer.Span{}))
		}
	}
	return call
}

func TestLower_CallCountInvariant(t *testing.T) {
	// Lowering wraps and relabels nodes but never duplicates or drops a call:
	// source and target trees always hold the same number of call nodes.
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 100; i++ {
		prog := ast.NewProgram(lexer.Span{})
		topLevel := 1 + rng.Intn(3)
		for j := 0; j < topLevel; j++ {
			prog.Body = append(prog.Body, randomCall(rng, 3))
		}

		target, err := Lower(prog)
		if err != nil {
			t.Fatalf("iteration %d: Lower failed: %v", i, err)
		}

		srcCalls := countSourceCalls(t, prog)
		dstCalls := countTargetCalls(target)
		if srcCalls != dstCalls {
			t.Fatalf("iteration %d: call count mismatch. source=%d, target=%d", i, srcCalls, dstCalls)
		}

		if len(target.Body) != topLevel {
			t.Fatalf("iteration %d: statement count wrong. expected=%d, got=%d", i, topLevel, len(target.Body))
		}
		for k, stmt := range target.Body {
			if _, ok := stmt.(*ExprStmt); !ok {
				t.Fatalf("iteration %d: body[%d] type wrong. expected=*ExprStmt, got=%T", i, k, stmt)
			}
		}
	}
}
