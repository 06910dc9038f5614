package diag

import "fmt"

// Stage identifies which compiler phase produced the diagnostic.
type Stage string

const (
	StageLexer     Stage = "lexer"
	StageParser    Stage = "parser"
	StageTransform Stage = "transform"
	StageCodegen   Stage = "codegen"
)

// Severity captures how impactful the diagnostic is.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityNote    Severity = "note"
)

// Code is a stable identifier for a diagnostic.
type Code string

const (
	// Lexer diagnostics. Both are non-fatal: the scan continues past them.
	CodeLexerUnrecognizedChar   Code = "LEXER_UNRECOGNIZED_CHAR"
	CodeLexerUnterminatedString Code = "LEXER_UNTERMINATED_STRING"

	// Parser diagnostics. Fatal: the whole compile aborts.
	CodeParserUnexpectedToken Code = "PARSER_UNEXPECTED_TOKEN"
	CodeParserUnexpectedEOF   Code = "PARSER_UNEXPECTED_EOF"

	// Internal invariant violations. These never fire for trees produced by
	// this compiler's own parser and lowerer.
	CodeTransformUnknownNode Code = "TRANSFORM_UNKNOWN_NODE"
	CodeGenUnsupportedNode   Code = "CODEGEN_UNSUPPORTED_NODE"
)

// Span represents a location in source code.
type Span struct {
	Filename string
	Line     int
	Column   int
	Start    int
	End      int
}

// String returns a human-readable representation of the span.
func (s Span) String() string {
	if s.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", s.Filename, s.Line, s.Column)
	}
	return fmt.Sprintf("%d:%d", s.Line, s.Column)
}

// IsValid returns true if the span has valid location information.
func (s Span) IsValid() bool {
	return s.Line > 0 && s.Column > 0
}

// Diagnostic is a compiler diagnostic surfaced to end-users.
type Diagnostic struct {
	Stage    Stage
	Severity Severity
	Code     Code
	Message  string
	Span     Span
	Notes    []string // Additional notes to display
	Help     string   // Optional help text for fixing the problem
}

// WithNote adds a note to the diagnostic.
func (d Diagnostic) WithNote(note string) Diagnostic {
	d.Notes = append(d.Notes, note)
	return d
}

// WithHelp adds help text to the diagnostic.
func (d Diagnostic) WithHelp(help string) Diagnostic {
	d.Help = help
	return d
}
