package parser

import (
	"fmt"

	"github.com/paren-lang/parenc/pkg/ast"
	"github.com/paren-lang/parenc/pkg/diag"
	"github.com/paren-lang/parenc/pkg/lexer"
)

// UnexpectedTokenError is the parser's single failure mode: the token under
// the cursor cannot start or continue an expression. Parsing aborts on the
// first occurrence; no partial AST is returned.
type UnexpectedTokenError struct {
	Token    lexer.Token
	Expected string
}

func (e *UnexpectedTokenError) Error() string {
	if e.Token.Type == lexer.EOF {
		return fmt.Sprintf("%s: unexpected end of input, expected %s", e.Token.Span.String(), e.Expected)
	}
	return fmt.Sprintf("%s: unexpected token %q, expected %s", e.Token.Span.String(), e.Token.Raw, e.Expected)
}

// ToDiagnostic converts the error into a shared diagnostic structure.
func (e *UnexpectedTokenError) ToDiagnostic() diag.Diagnostic {
	code := diag.CodeParserUnexpectedToken
	msg := fmt.Sprintf("unexpected token %q, expected %s", e.Token.Raw, e.Expected)
	if e.Token.Type == lexer.EOF {
		code = diag.CodeParserUnexpectedEOF
		msg = fmt.Sprintf("unexpected end of input, expected %s", e.Expected)
	}
	return diag.Diagnostic{
		Stage:    diag.StageParser,
		Severity: diag.SeverityError,
		Code:     code,
		Message:  msg,
		Span: diag.Span{
			Filename: e.Token.Span.Filename,
			Line:     e.Token.Span.Line,
			Column:   e.Token.Span.Column,
			Start:    e.Token.Span.Start,
			End:      e.Token.Span.End,
		},
	}
}

// Parser implements recursive descent over a token sequence. A single cursor
// advances monotonically; parseExpr consumes exactly the tokens of one
// expression and leaves the cursor on the following token.
type Parser struct {
	tokens []lexer.Token
	pos    int
}

// New returns a parser over the provided token sequence.
func New(tokens []lexer.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse is a convenience wrapper: parse the token sequence into a program.
func Parse(tokens []lexer.Token) (*ast.Program, error) {
	return New(tokens).ParseProgram()
}

// curTok returns the token under the cursor, or a synthetic EOF once the
// sequence is exhausted.
func (p *Parser) curTok() lexer.Token {
	if p.pos >= len(p.tokens) {
		span := lexer.Span{Line: 1, Column: 1}
		if n := len(p.tokens); n > 0 {
			last := p.tokens[n-1].Span
			span = lexer.Span{
				Filename: last.Filename,
				Line:     last.Line,
				Column:   last.Column + (last.End - last.Start),
				Start:    last.End,
				End:      last.End,
			}
		}
		return lexer.Token{Type: lexer.EOF, Span: span}
	}
	return p.tokens[p.pos]
}

func (p *Parser) atEOF() bool {
	return p.pos >= len(p.tokens) || p.tokens[p.pos].Type == lexer.EOF
}

// ParseProgram parses the whole token sequence into a program node. Multiple
// sibling top-level calls are legal: each one becomes a Program body entry.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	program := ast.NewProgram(p.curTok().Span)

	for !p.atEOF() {
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		program.Body = append(program.Body, expr)
		program.SetSpan(mergeSpan(program.Span(), expr.Span()))
	}

	return program, nil
}

// parseExpr parses one expression starting at the cursor: a number literal, a
// string literal, or a parenthesized call.
func (p *Parser) parseExpr() (ast.Node, error) {
	tok := p.curTok()

	switch tok.Type {
	case lexer.NUMBER:
		p.pos++
		return ast.NewNumberLit(tok.Value, tok.Span), nil

	case lexer.STRING:
		p.pos++
		return ast.NewStringLit(tok.Value, tok.Span), nil

	case lexer.LPAREN:
		return p.parseCallExpr()

	default:
		return nil, &UnexpectedTokenError{Token: tok, Expected: "a number, a string, or '('"}
	}
}

// parseCallExpr parses '(' NAME expr* ')'. The cursor must be on the '('.
func (p *Parser) parseCallExpr() (ast.Node, error) {
	open := p.curTok()
	p.pos++ // consume '('

	nameTok := p.curTok()
	if nameTok.Type != lexer.NAME {
		return nil, &UnexpectedTokenError{Token: nameTok, Expected: "a call name"}
	}
	p.pos++ // consume the name

	call := ast.NewCallExpr(nameTok.Value, open.Span)

	for p.curTok().Type != lexer.RPAREN {
		if p.atEOF() {
			return nil, &UnexpectedTokenError{Token: p.curTok(), Expected: "')'"}
		}
		param, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		call.Params = append(call.Params, param)
	}

	closing := p.curTok()
	p.pos++ // consume ')'
	call.SetSpan(mergeSpan(open.Span, closing.Span))

	return call, nil
}

// mergeSpan returns a span covering both arguments. Callers pass the earliest
// start span first so node spans grow monotonically.
func mergeSpan(start, end lexer.Span) lexer.Span {
	span := start

	if span.Filename == "" {
		span.Filename = end.Filename
	}

	if span.Line == 0 && end.Line != 0 {
		span.Line = end.Line
		span.Column = end.Column
		span.Start = end.Start
	}

	if end.End > span.End {
		span.End = end.End
	}

	return span
}
