// Package compiler composes the pipeline stages into a single entry point:
// source text in, generated statements out.
package compiler

import (
	"fmt"

	"github.com/paren-lang/parenc/pkg/cir"
	"github.com/paren-lang/parenc/pkg/codegen"
	"github.com/paren-lang/parenc/pkg/diag"
	"github.com/paren-lang/parenc/pkg/lexer"
	"github.com/paren-lang/parenc/pkg/parser"
)

// Error wraps a stage failure together with the diagnostics accumulated before
// it. The lexer skips unrecognized characters instead of failing, which can
// make a later parse error look unrelated; carrying those diagnostics here
// keeps the real cause visible.
type Error struct {
	Stage       diag.Stage
	Err         error
	Diagnostics []diag.Diagnostic
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", string(e.Stage), e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

type Option func(*Compiler)

// WithFilename attributes all spans and diagnostics to the provided filename.
func WithFilename(name string) Option {
	return func(c *Compiler) {
		c.filename = name
	}
}

// Compiler runs the full pipeline: tokenize, parse, lower, generate. Each
// Compile call is independent; a Compiler is safe to reuse sequentially and
// holds no state shared between concurrent callers apart from the diagnostics
// of the most recent run.
type Compiler struct {
	filename    string
	diagnostics []diag.Diagnostic
}

// New creates a compiler.
func New(opts ...Option) *Compiler {
	c := &Compiler{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compile is a convenience wrapper: run the pipeline with a fresh Compiler.
func Compile(source string, opts ...Option) ([]string, error) {
	return New(opts...).Compile(source)
}

// Diagnostics returns the non-fatal diagnostics of the most recent Compile
// call, in the order they were produced.
func (c *Compiler) Diagnostics() []diag.Diagnostic {
	return c.diagnostics
}

// Compile translates prefix-call source text into C-style call statements,
// one string per top-level statement. Stage failures propagate unchanged,
// wrapped only to tag the failing stage and attach pending diagnostics.
func (c *Compiler) Compile(source string) ([]string, error) {
	c.diagnostics = nil

	var lexOpts []lexer.Option
	if c.filename != "" {
		lexOpts = append(lexOpts, lexer.WithFilename(c.filename))
	}

	lx := lexer.New(source, lexOpts...)
	tokens := lx.Tokenize()
	for _, lexErr := range lx.Errors {
		c.diagnostics = append(c.diagnostics, lexErr.ToDiagnostic())
	}

	program, err := parser.Parse(tokens)
	if err != nil {
		return nil, c.fail(diag.StageParser, err)
	}

	target, err := cir.Lower(program)
	if err != nil {
		return nil, c.fail(diag.StageTransform, err)
	}

	statements, err := codegen.Generate(target)
	if err != nil {
		return nil, c.fail(diag.StageCodegen, err)
	}

	return statements, nil
}

func (c *Compiler) fail(stage diag.Stage, err error) error {
	return &Error{
		Stage:       stage,
		Err:         err,
		Diagnostics: c.diagnostics,
	}
}
