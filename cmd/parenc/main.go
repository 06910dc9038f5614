package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/paren-lang/parenc/pkg/compiler"
	"github.com/paren-lang/parenc/pkg/diag"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: parenc [file]\n")
		fmt.Fprintf(os.Stderr, "\nCompiles prefix-call source to C-style call statements.\n")
		fmt.Fprintf(os.Stderr, "Reads from stdin when no file is given.\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if flag.NArg() > 1 {
		flag.Usage()
		os.Exit(2)
	}

	source, filename, err := readSource(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "parenc: %v\n", err)
		os.Exit(2)
	}

	formatter := diag.NewFormatter(os.Stderr)
	formatter.SetSource(source)

	var opts []compiler.Option
	if filename != "" {
		opts = append(opts, compiler.WithFilename(filename))
	}
	c := compiler.New(opts...)

	statements, err := c.Compile(source)

	// Non-fatal lexer diagnostics are worth printing even on success; on
	// failure they often explain a confusing downstream parse error.
	formatter.FormatAll(c.Diagnostics())

	if err != nil {
		var compileErr *compiler.Error
		if errors.As(err, &compileErr) {
			if d, ok := compileErr.Err.(interface{ ToDiagnostic() diag.Diagnostic }); ok {
				formatter.Format(d.ToDiagnostic())
				os.Exit(1)
			}
		}
		fmt.Fprintf(os.Stderr, "parenc: %v\n", err)
		os.Exit(1)
	}

	for _, stmt := range statements {
		fmt.Println(stmt)
	}
}

// readSource loads the compilation input from the named file, or from stdin
// when path is empty. The returned filename is empty for stdin.
func readSource(path string) (source, filename string, err error) {
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("reading stdin: %w", err)
		}
		return strings.TrimRight(string(data), "\n"), "", nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", err
	}
	return string(data), path, nil
}
