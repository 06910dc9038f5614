package lexer

// TokenType represents the type of a token
type TokenType string

// Span represents the source location of a token
type Span struct {
	Filename string // optional source filename for diagnostics
	Line     int    // 1-based line number
	Column   int    // 1-based column number
	Start    int    // index in []rune of the original input
	End      int    // exclusive end index
}

// Token represents a lexical token
type Token struct {
	Type  TokenType
	Raw   string // exact runes from source (quotes included for strings)
	Value string // decoded value (quote-stripped for strings, same as Raw for others)
	Span  Span   // source location information
}

// Token type constants
const (
	EOF TokenType = "EOF"

	// Literals and names
	NAME   TokenType = "NAME"   // add, subtract, concat, ...
	NUMBER TokenType = "NUMBER" // 42, 1343456
	STRING TokenType = "STRING" // "hello"

	// Delimiters
	LPAREN TokenType = "("
	RPAREN TokenType = ")"
)
