package main

import (
	"os"

	"github.com/merx-lang/merx/diag"
	"github.com/merx-lang/merx/interp"
	"github.com/merx-lang/merx/parser"
	"github.com/merx-lang/merx/validate"
)

// runFile parses, validates, and executes a merx source file, returning
// the process exit code (spec.md §6): the flowchart's own exit code on
// a normal End, or 1 if a SyntaxError/AnalysisError/RuntimeError reaches
// this boundary.
func runFile(path string) int {
	source, err := os.ReadFile(path)
	if err != nil {
		redColor.Fprintf(os.Stderr, "[FILE ERROR] could not read %q: %v\n", path, err)
		return 1
	}

	fc, err := parser.Parse(string(source))
	if err != nil {
		reportError(err)
		return 1
	}

	prog, err := validate.Validate(fc)
	if err != nil {
		reportError(err)
		return 1
	}

	ip := interp.New(os.Stdin, os.Stdout, os.Stderr)
	code, err := ip.Run(prog)
	if err != nil {
		reportError(err)
		return 1
	}
	return code
}

// checkFile runs the lexer/parser/validator pipeline only, without
// executing, reporting success or the first structured error.
func checkFile(path string, printAST bool) int {
	source, err := os.ReadFile(path)
	if err != nil {
		redColor.Fprintf(os.Stderr, "[FILE ERROR] could not read %q: %v\n", path, err)
		return 1
	}

	fc, err := parser.Parse(string(source))
	if err != nil {
		reportError(err)
		return 1
	}

	if _, err := validate.Validate(fc); err != nil {
		reportError(err)
		return 1
	}

	if printAST {
		yellowColor.Println(fc.String())
	}
	cyanColor.Println("OK")
	return 0
}

// reportError prints a SyntaxError/AnalysisError/RuntimeError in the
// CLI's red error color, distinguishing the three families the way
// spec.md §7 names them.
func reportError(err error) {
	switch e := err.(type) {
	case *diag.SyntaxError:
		redColor.Fprintf(os.Stderr, "[SYNTAX ERROR] %s\n", e.Error())
	case *diag.ErrorList:
		redColor.Fprintf(os.Stderr, "[SYNTAX ERROR] %s\n", e.Error())
	case *diag.AnalysisError:
		redColor.Fprintf(os.Stderr, "[ANALYSIS ERROR] %s\n", e.Error())
	case *diag.RuntimeError:
		redColor.Fprintf(os.Stderr, "[RUNTIME ERROR] %s\n", e.Error())
	default:
		redColor.Fprintf(os.Stderr, "[ERROR] %v\n", err)
	}
}
