package diag

import (
	"fmt"
	"io"
	"strings"
)

// Formatter renders diagnostics with source code snippets.
type Formatter struct {
	w      io.Writer
	source string // source text for snippet rendering; optional
}

// NewFormatter creates a formatter that writes to w.
func NewFormatter(w io.Writer) *Formatter {
	return &Formatter{w: w}
}

// SetSource supplies the source text used for snippet rendering. Without it,
// diagnostics are formatted header-only.
func (f *Formatter) SetSource(source string) {
	f.source = source
}

// Format renders a single diagnostic.
func (f *Formatter) Format(d Diagnostic) {
	f.printHeader(d)

	if d.Span.IsValid() {
		fmt.Fprintf(f.w, " --> %s\n", d.Span.String())
		f.printSnippet(d.Span)
	}

	for _, note := range d.Notes {
		fmt.Fprintf(f.w, "note: %s\n", note)
	}
	if d.Help != "" {
		fmt.Fprintf(f.w, "help: %s\n", d.Help)
	}
}

// FormatAll renders a batch of diagnostics in order.
func (f *Formatter) FormatAll(ds []Diagnostic) {
	for _, d := range ds {
		f.Format(d)
	}
}

// printHeader prints the diagnostic header (severity[CODE]: message).
func (f *Formatter) printHeader(d Diagnostic) {
	severity := string(d.Severity)
	if severity == "" {
		severity = string(SeverityError)
	}

	if d.Code != "" {
		fmt.Fprintf(f.w, "%s[%s]: %s\n", severity, d.Code, d.Message)
	} else {
		fmt.Fprintf(f.w, "%s: %s\n", severity, d.Message)
	}
}

// printSnippet prints the offending source line with a caret underline.
func (f *Formatter) printSnippet(span Span) {
	if f.source == "" {
		return
	}

	lines := strings.Split(f.source, "\n")
	if span.Line < 1 || span.Line > len(lines) {
		return
	}
	line := lines[span.Line-1]

	gutter := fmt.Sprintf("%d", span.Line)
	fmt.Fprintf(f.w, "%s | %s\n", gutter, line)

	width := span.End - span.Start
	if width < 1 {
		width = 1
	}
	if span.Column-1+width > len([]rune(line)) {
		width = len([]rune(line)) - (span.Column - 1)
		if width < 1 {
			width = 1
		}
	}
	pad := strings.Repeat(" ", len(gutter)) + " | " + strings.Repeat(" ", span.Column-1)
	fmt.Fprintf(f.w, "%s%s\n", pad, strings.Repeat("^", width))
}
