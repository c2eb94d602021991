/*
Package main is the entry point for the merx interpreter.

Usage:

	merx run <file.mmd>      Parse, validate, and execute a flowchart
	merx check <file.mmd>    Parse and validate only; --ast prints the AST
	merx repl                Interactive expression scratchpad
	merx repl --config FILE  Use FILE instead of ./.merxrc.yaml
	merx --help | -h         Display help information
	merx --version | -v      Display version information

Modeled on go-mix's main/main.go: a manual os.Args switch rather
than a flag-parsing library, colored output via fatih/color.
*/
package main

import (
	"os"

	"github.com/fatih/color"

	"github.com/merx-lang/merx/cmd/merx/replshell"
)

// VERSION is the current merx release.
var VERSION = "v0.1.0"

var (
	redColor    = color.New(color.FgRed)
	yellowColor = color.New(color.FgYellow)
	cyanColor   = color.New(color.FgCyan)
)

func main() {
	if len(os.Args) < 2 {
		showHelp()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "--help", "-h", "help":
		showHelp()
		os.Exit(0)
	case "--version", "-v":
		showVersion()
		os.Exit(0)
	case "run":
		if len(os.Args) < 3 {
			redColor.Fprintln(os.Stderr, "[USAGE ERROR] merx run requires a file argument")
			os.Exit(2)
		}
		os.Exit(runFile(os.Args[2]))
	case "check":
		if len(os.Args) < 3 {
			redColor.Fprintln(os.Stderr, "[USAGE ERROR] merx check requires a file argument")
			os.Exit(2)
		}
		printAST := false
		for _, a := range os.Args[3:] {
			if a == "--ast" {
				printAST = true
			}
		}
		os.Exit(checkFile(os.Args[2], printAST))
	case "repl":
		cfg := loadConfig(parseConfigFlag(os.Args[2:]))
		replshell.New(cfg.Prompt, cfg.Color).Start(os.Stdin, os.Stdout)
		os.Exit(0)
	default:
		redColor.Fprintf(os.Stderr, "[USAGE ERROR] unknown command %q\n", os.Args[1])
		showHelp()
		os.Exit(2)
	}
}

// parseConfigFlag scans args for "--config <path>", returning path or ""
// if absent so loadConfig falls back to .merxrc.yaml in the working
// directory.
func parseConfigFlag(args []string) string {
	for i, a := range args {
		if a == "--config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

func showHelp() {
	cyanColor.Println("merx - an interpreter for flowchart-shaped programs")
	cyanColor.Println("")
	cyanColor.Println("USAGE:")
	yellowColor.Println("  merx run <file.mmd>      Execute a merx flowchart")
	yellowColor.Println("  merx check <file.mmd>    Validate without executing (--ast to print the AST)")
	yellowColor.Println("  merx repl [--config f]   Start the expression scratchpad")
	yellowColor.Println("  merx --help              Display this help message")
	yellowColor.Println("  merx --version           Display version information")
}

func showVersion() {
	cyanColor.Printf("merx %s\n", VERSION)
}
