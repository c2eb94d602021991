/*
Package interp is the executor: it walks a validated program.Program
from Start to End, dispatching process statements through eval and
choosing successors at condition nodes (spec.md §4.5).

Grounded on the "evaluate, branch, continue" loop shape of
eval/eval_controls.go and eval/eval_loops.go, generalized from a walk
over the AST to a walk over program's dense index.
*/
package interp

import (
	"fmt"
	"io"

	"github.com/merx-lang/merx/diag"
	"github.com/merx-lang/merx/env"
	"github.com/merx-lang/merx/eval"
	"github.com/merx-lang/merx/parser"
	"github.com/merx-lang/merx/program"
	"github.com/merx-lang/merx/value"
)

// Interpreter owns the I/O sinks for one run. The environment and
// evaluator are created fresh inside Run and dropped at its return
// (spec.md §3 "Lifecycle").
type Interpreter struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// New builds an Interpreter over the given I/O streams.
func New(stdin io.Reader, stdout, stderr io.Writer) *Interpreter {
	return &Interpreter{Stdin: stdin, Stdout: stdout, Stderr: stderr}
}

// Run walks prog from Start to End and returns the process exit code
// it should report. The flowchart may contain cycles; non-termination
// is a valid outcome and Run imposes no step cap (spec.md §4.5
// "Termination").
func (ip *Interpreter) Run(prog *program.Program) (int, error) {
	e := env.New()
	ev := eval.New(e, ip.Stdin)

	current := prog.StartIdx
	exitCode := 0

	for {
		node := prog.Nodes[current]
		switch node.Kind {
		case parser.StartNode:
			if !node.HasOut {
				return 0, nil
			}
			if node.Out.HasExit {
				exitCode = node.Out.ExitCode
			}
			current = node.Out.To

		case parser.EndNode:
			return exitCode, nil

		case parser.ProcessNode:
			for _, stmt := range node.Statements {
				if err := ip.execStmt(ev, stmt); err != nil {
					return 0, err
				}
			}
			if !node.HasOut {
				return 0, nil
			}
			if node.Out.HasExit {
				exitCode = node.Out.ExitCode
			}
			current = node.Out.To

		case parser.ConditionNode:
			next, err := ip.branch(ev, node)
			if err != nil {
				return 0, err
			}
			current = next.To
			if next.HasExit {
				exitCode = next.ExitCode
			}
		}
	}
}

func (ip *Interpreter) branch(ev *eval.Evaluator, node program.Node) (program.Edge, error) {
	v, err := ev.Eval(node.Condition)
	if err != nil {
		return program.Edge{}, err
	}
	b, ok := v.(value.Bool)
	if !ok {
		return program.Edge{}, diag.NewTypeError("condition", "bool", string(v.Kind()))
	}
	if b.V {
		return node.Yes, nil
	}
	return node.No, nil
}

// execStmt runs one process statement. Eval happens fully before any
// byte is written, so a failing sub-expression produces no output
// (spec.md §9 "no partial output"); an Assign leaves the environment
// untouched if its expression raises.
func (ip *Interpreter) execStmt(ev *eval.Evaluator, stmt parser.Stmt) error {
	switch s := stmt.(type) {
	case *parser.PrintlnStmt:
		v, err := ev.Eval(s.Expr)
		if err != nil {
			return err
		}
		return writeLine(ip.Stdout, v.Format())
	case *parser.PrintStmt:
		v, err := ev.Eval(s.Expr)
		if err != nil {
			return err
		}
		return write(ip.Stdout, v.Format())
	case *parser.ErrorStmt:
		v, err := ev.Eval(s.Expr)
		if err != nil {
			return err
		}
		return writeLine(ip.Stderr, v.Format())
	case *parser.AssignStmt:
		v, err := ev.Eval(s.Expr)
		if err != nil {
			return err
		}
		ev.Env.Assign(s.Name, v)
		return nil
	default:
		return diag.NewRuntimeError(diag.OutputError, "unhandled statement type %T", stmt)
	}
}

func write(w io.Writer, s string) error {
	if _, err := fmt.Fprint(w, s); err != nil {
		return diag.NewRuntimeError(diag.OutputError, "%v", err)
	}
	return nil
}

func writeLine(w io.Writer, s string) error {
	if _, err := fmt.Fprintln(w, s); err != nil {
		return diag.NewRuntimeError(diag.OutputError, "%v", err)
	}
	return nil
}
