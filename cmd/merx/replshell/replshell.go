/*
Package replshell implements merx's interactive expression scratchpad.

Unlike go-mix's REPL, which reads and evaluates whole statements
of a line-sequential language, merx programs are graphs rather than
line sequences, so there is no meaningful way to type "one line of a
flowchart" at a time. What *is* useful line by line is spec.md §4.1.2's
expression grammar on its own, against a persistent variable
environment — println/print/error included, since those are themselves
just expression-position statements once a flowchart's control flow is
out of the picture.

Grounded on repl/repl.go's NewRepl/Start/executeWithRecovery shape:
readline for line editing and history, color-coded banner and results,
panic recovery around each evaluation so a bug in one line never kills
the session.
*/
package replshell

import (
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/merx-lang/merx/diag"
	"github.com/merx-lang/merx/env"
	"github.com/merx-lang/merx/eval"
	"github.com/merx-lang/merx/lexer"
	"github.com/merx-lang/merx/parser"
)

var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

const banner = "merx expression scratchpad"

// Repl is an interactive expression evaluator: it never parses a
// flowchart, only a single expression or statement per line, and
// echoes the resulting value.
type Repl struct {
	Prompt    string
	UseColors bool
}

// New builds a Repl with the given prompt. Colors can be disabled for
// dumb terminals or piped output (.merxrc.yaml's `color: false`).
func New(prompt string, useColors bool) *Repl {
	if prompt == "" {
		prompt = "merx> "
	}
	return &Repl{Prompt: prompt, UseColors: useColors}
}

// Start runs the read-eval-print loop until '.exit' or EOF (Ctrl+D).
func (r *Repl) Start(in io.Reader, out io.Writer) {
	r.applyColorPref()
	r.printBanner(out)

	rl, err := readline.New(r.Prompt)
	if err != nil {
		panic(err)
	}
	defer rl.Close()

	e := env.New()
	ev := eval.New(e, in)

	for {
		line, err := rl.Readline()
		if err != nil {
			io.WriteString(out, "Good bye!\n")
			return
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == ".exit" {
			io.WriteString(out, "Good bye!\n")
			return
		}
		rl.SaveHistory(line)

		r.evalLine(out, ev, line)
	}
}

// applyColorPref honors .merxrc.yaml's `color: false` by disabling every
// color.Color this package writes through, the same on/off switch
// fatih/color exposes per instance (DisableColor/EnableColor) rather
// than the package-wide color.NoColor, so it only affects this REPL's
// own output.
func (r *Repl) applyColorPref() {
	for _, c := range []*color.Color{blueColor, yellowColor, redColor, greenColor, cyanColor} {
		if r.UseColors {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
}

func (r *Repl) printBanner(out io.Writer) {
	line := strings.Repeat("-", len(banner))
	blueColor.Fprintf(out, "%s\n", line)
	greenColor.Fprintf(out, "%s\n", banner)
	blueColor.Fprintf(out, "%s\n", line)
	cyanColor.Fprintf(out, "%s\n", "Type a merx expression and press enter.")
	cyanColor.Fprintf(out, "%s\n", "Type '.exit' to quit.")
	blueColor.Fprintf(out, "%s\n", line)
}

// evalLine parses and evaluates one line, recovering from any panic the
// way executeWithRecovery does in go-mix's REPL so one bad line
// never ends the session. A line that opens with println/print/error or
// an assignment is parsed as a statement (for its side effect); anything
// else is parsed as a bare expression and its value is echoed.
func (r *Repl) evalLine(out io.Writer, ev *eval.Evaluator, line string) {
	defer func() {
		if rec := recover(); rec != nil {
			redColor.Fprintf(out, "[RUNTIME ERROR] %v\n", rec)
		}
	}()

	if looksLikeStmt(line) {
		stmt, err := parser.ParseStmt(line)
		if err != nil {
			redColor.Fprintf(out, "%s\n", err)
			return
		}
		if err := r.execStmt(out, ev, stmt); err != nil {
			reportRuntimeErr(out, err)
		}
		return
	}

	expr, err := parser.ParseExpr(line)
	if err != nil {
		redColor.Fprintf(out, "%s\n", err)
		return
	}

	v, err := ev.Eval(expr)
	if err != nil {
		reportRuntimeErr(out, err)
		return
	}
	yellowColor.Fprintf(out, "%s\n", v.Format())
}

// looksLikeStmt peeks the line's first one or two tokens to tell a
// println/print/error/assign statement apart from a bare expression,
// without committing to a full parse.
func looksLikeStmt(line string) bool {
	lx := lexer.New(line, 1, 1)
	first := lx.NextToken()
	switch first.Type {
	case lexer.PRINTLN, lexer.PRINT, lexer.ERROR:
		return true
	case lexer.IDENT:
		second := lx.NextToken()
		return second.Type == lexer.ASSIGN
	default:
		return false
	}
}

func (r *Repl) execStmt(out io.Writer, ev *eval.Evaluator, stmt parser.Stmt) error {
	switch s := stmt.(type) {
	case *parser.PrintlnStmt:
		v, err := ev.Eval(s.Expr)
		if err != nil {
			return err
		}
		io.WriteString(out, v.Format()+"\n")
	case *parser.PrintStmt:
		v, err := ev.Eval(s.Expr)
		if err != nil {
			return err
		}
		io.WriteString(out, v.Format())
	case *parser.ErrorStmt:
		v, err := ev.Eval(s.Expr)
		if err != nil {
			return err
		}
		redColor.Fprintf(out, "%s\n", v.Format())
	case *parser.AssignStmt:
		v, err := ev.Eval(s.Expr)
		if err != nil {
			return err
		}
		ev.Env.Assign(s.Name, v)
		yellowColor.Fprintf(out, "%s\n", v.Format())
	}
	return nil
}

func reportRuntimeErr(out io.Writer, err error) {
	if re, ok := err.(*diag.RuntimeError); ok {
		redColor.Fprintf(out, "%s\n", re.Error())
		return
	}
	redColor.Fprintf(out, "%v\n", err)
}
