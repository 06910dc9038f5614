package lexer

import (
	"strconv"
	"unicode"

	"github.com/paren-lang/parenc/pkg/diag"
)

type LexerErrorKind int

const (
	ErrUnrecognizedChar LexerErrorKind = iota
	ErrUnterminatedString
)

// LexerError is a non-fatal scanning problem. The lexer records it and keeps
// going, so a single scan can surface every bad character in the input.
type LexerError struct {
	Kind    LexerErrorKind
	Message string
	Span    Span
}

func (e LexerError) Error() string {
	return e.Span.String() + ": " + e.Message
}

// String returns a human-readable representation of the span.
func (s Span) String() string {
	return s.toDiag().String()
}

func (s Span) toDiag() diag.Span {
	return diag.Span{
		Filename: s.Filename,
		Line:     s.Line,
		Column:   s.Column,
		Start:    s.Start,
		End:      s.End,
	}
}

func (k LexerErrorKind) diagnosticCode() diag.Code {
	switch k {
	case ErrUnrecognizedChar:
		return diag.CodeLexerUnrecognizedChar
	case ErrUnterminatedString:
		return diag.CodeLexerUnterminatedString
	default:
		return diag.Code("LEXER_UNKNOWN_ERROR")
	}
}

func (k LexerErrorKind) severity() diag.Severity {
	// Unrecognized characters are dropped with a warning; the scan stays total.
	// Unterminated strings still produce a token but the input is malformed.
	if k == ErrUnrecognizedChar {
		return diag.SeverityWarning
	}
	return diag.SeverityError
}

// ToDiagnostic converts a lexer error into a shared diagnostic structure.
func (e LexerError) ToDiagnostic() diag.Diagnostic {
	return diag.Diagnostic{
		Stage:    diag.StageLexer,
		Severity: e.Kind.severity(),
		Code:     e.Kind.diagnosticCode(),
		Message:  e.Message,
		Span:     e.Span.toDiag(),
	}
}

// Lexer scans prefix-call source text into tokens. Scanning is total: no input
// makes NextToken fail. Characters outside the language are skipped and
// recorded in Errors instead of aborting the scan.
type Lexer struct {
	input    []rune
	pos      int  // index of the current rune
	ch       rune // current rune (0 = EOF)
	line     int  // current line number (1-based)
	column   int  // current column number (1-based)
	filename string

	Errors []LexerError
}

type Option func(*Lexer)

// WithFilename attributes all emitted spans to the provided filename.
func WithFilename(name string) Option {
	return func(l *Lexer) {
		l.filename = name
	}
}

// New creates a new lexer for the given input
func New(input string, opts ...Option) *Lexer {
	l := &Lexer{
		input:  []rune(input),
		pos:    -1, // start before first rune
		ch:     0,
		line:   1,
		column: 0, // will be 1 after first read()
	}
	for _, opt := range opts {
		opt(l)
	}
	l.read() // move to first character
	return l
}

// SetFilename attributes all subsequently emitted spans to the given filename.
func (l *Lexer) SetFilename(name string) {
	l.filename = name
}

func (l *Lexer) addError(kind LexerErrorKind, msg string, span Span) {
	l.Errors = append(l.Errors, LexerError{
		Kind:    kind,
		Message: msg,
		Span:    span,
	})
}

// read advances the lexer to the next character, keeping line/column in sync
// with the rune at pos.
func (l *Lexer) read() {
	l.pos++
	prevPos := l.pos - 1

	if prevPos >= 0 && prevPos < len(l.input) && l.input[prevPos] == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}

	if l.pos >= len(l.input) {
		l.ch = 0 // EOF
		return
	}
	l.ch = l.input[l.pos]
}

// currentSpanStart captures the position of the character about to be tokenized.
func (l *Lexer) currentSpanStart() (line, column, pos int) {
	return l.line, l.column, l.pos
}

// makeToken creates a token with span information
func (l *Lexer) makeToken(tokType TokenType, startLine, startColumn, startPos, endPos int, raw, value string) Token {
	return Token{
		Type:  tokType,
		Raw:   raw,
		Value: value,
		Span: Span{
			Filename: l.filename,
			Line:     startLine,
			Column:   startColumn,
			Start:    startPos,
			End:      endPos,
		},
	}
}

// skipWhitespace skips spaces, tabs and newlines; no token is emitted for them.
func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.read()
	}
}

// readName reads a maximal run of letters
func (l *Lexer) readName() string {
	start := l.pos
	for isLetter(l.ch) {
		l.read()
	}
	return string(l.input[start:l.pos])
}

// readNumber reads a maximal run of decimal digits
func (l *Lexer) readNumber() string {
	start := l.pos
	for isDigit(l.ch) {
		l.read()
	}
	return string(l.input[start:l.pos])
}

// readString reads a string literal. No escape processing: every rune up to the
// next '"' is taken verbatim. Returns the raw text (quotes included), the
// enclosed value, and whether the closing quote was found.
func (l *Lexer) readString() (raw string, value string, terminated bool) {
	start := l.pos
	l.read() // skip opening quote

	valueStart := l.pos
	for l.ch != '"' && l.ch != 0 {
		l.read()
	}

	if l.ch == 0 {
		// EOF before the closing quote.
		return string(l.input[start:l.pos]), string(l.input[valueStart:l.pos]), false
	}

	value = string(l.input[valueStart:l.pos])
	l.read() // consume closing quote
	return string(l.input[start:l.pos]), value, true
}

// NextToken returns the next token from the input
func (l *Lexer) NextToken() Token {
	for {
		l.skipWhitespace()

		startLine, startColumn, startPos := l.currentSpanStart()

		switch {
		case l.ch == 0:
			if startColumn == 0 {
				startColumn = 1
			}
			return l.makeToken(EOF, startLine, startColumn, startPos, startPos, "", "")

		case l.ch == '(':
			raw := string(l.ch)
			l.read()
			return l.makeToken(LPAREN, startLine, startColumn, startPos, l.pos, raw, raw)

		case l.ch == ')':
			raw := string(l.ch)
			l.read()
			return l.makeToken(RPAREN, startLine, startColumn, startPos, l.pos, raw, raw)

		case l.ch == '"':
			raw, value, terminated := l.readString()
			if !terminated {
				l.addError(
					ErrUnterminatedString,
					"unterminated string literal",
					Span{Filename: l.filename, Line: startLine, Column: startColumn, Start: startPos, End: l.pos},
				)
			}
			return l.makeToken(STRING, startLine, startColumn, startPos, l.pos, raw, value)

		case isLetter(l.ch):
			name := l.readName()
			return l.makeToken(NAME, startLine, startColumn, startPos, l.pos, name, name)

		case isDigit(l.ch):
			num := l.readNumber()
			return l.makeToken(NUMBER, startLine, startColumn, startPos, l.pos, num, num)

		default:
			// Anything else is dropped with a warning and scanning continues.
			raw := string(l.ch)
			l.read()
			l.addError(
				ErrUnrecognizedChar,
				"unrecognized character "+strconv.Quote(raw),
				Span{Filename: l.filename, Line: startLine, Column: startColumn, Start: startPos, End: l.pos},
			)
		}
	}
}

// Tokenize drains the lexer and returns every token up to and excluding EOF.
// Diagnostics accumulate in Errors as usual.
func (l *Lexer) Tokenize() []Token {
	var tokens []Token
	for {
		tok := l.NextToken()
		if tok.Type == EOF {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

func isLetter(ch rune) bool {
	return unicode.IsLetter(ch)
}

func isDigit(ch rune) bool {
	// Numeric literals are restricted to ASCII digits.
	return ch >= '0' && ch <= '9'
}
