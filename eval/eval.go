/*
Package eval evaluates merx expressions against an environment
(spec.md §4.4): eval(expr, env) -> Value | RuntimeError, total over the
AST's shape, partial over the values it encounters.

Grounded on Evaluator's struct shape (eval/evaluator.go: a struct
bundling scope + reader, with one Eval entry point dispatching via a
type switch in eval/evaluator_expressions.go), trimmed to merx's
three-kind value model and eight expression kinds.
*/
package eval

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/merx-lang/merx/diag"
	"github.com/merx-lang/merx/env"
	"github.com/merx-lang/merx/parser"
	"github.com/merx-lang/merx/value"
)

// Evaluator holds the state an expression evaluation needs: the
// variable store and the line source for `input`.
type Evaluator struct {
	Env *env.Env
	in  *bufio.Reader
}

// New builds an Evaluator over env reading `input` lines from in.
func New(e *env.Env, in io.Reader) *Evaluator {
	return &Evaluator{Env: e, in: bufio.NewReader(in)}
}

// Eval evaluates expr against ev.Env, dispatching by concrete type —
// the same idiom as go-mix's own Eval(n Node) Object, which
// switches on the AST node's Go type rather than a Visitor Accept
// call (see DESIGN.md).
func (ev *Evaluator) Eval(expr parser.Expr) (value.Value, error) {
	switch e := expr.(type) {
	case *parser.IntLit:
		return value.Int{V: e.Value}, nil
	case *parser.StrLit:
		return value.Str{V: e.Value}, nil
	case *parser.BoolLit:
		return value.Bool{V: e.Value}, nil
	case *parser.VarExpr:
		v, ok := ev.Env.Lookup(e.Name)
		if !ok {
			return nil, diag.NewRuntimeError(diag.UndefinedVariable, "%q is not defined", e.Name)
		}
		return v, nil
	case *parser.InputExpr:
		return ev.evalInput()
	case *parser.UnaryExpr:
		return ev.evalUnary(e)
	case *parser.BinaryExpr:
		return ev.evalBinary(e)
	case *parser.CastExpr:
		return ev.evalCast(e)
	default:
		return nil, diag.NewRuntimeError(diag.TypeError, "unhandled expression type %T", expr)
	}
}

// evalInput reads one line from the configured source, stripping a
// trailing "\n" and any preceding "\r". EOF on the first read (no
// bytes at all) yields an empty string rather than an error, per
// spec.md §4.4 and the boundary behavior in §8.
func (ev *Evaluator) evalInput() (value.Value, error) {
	line, err := ev.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, diag.NewRuntimeError(diag.InputError, "%v", err)
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return value.Str{V: line}, nil
}

func (ev *Evaluator) evalUnary(e *parser.UnaryExpr) (value.Value, error) {
	operand, err := ev.Eval(e.Operand)
	if err != nil {
		return nil, err
	}
	switch e.Op {
	case parser.OpNeg:
		i, ok := operand.(value.Int)
		if !ok {
			return nil, diag.NewTypeError(string(e.Op), "int", string(operand.Kind()))
		}
		return value.Int{V: -i.V}, nil
	case parser.OpNot:
		b, ok := operand.(value.Bool)
		if !ok {
			return nil, diag.NewTypeError(string(e.Op), "bool", string(operand.Kind()))
		}
		return value.Bool{V: !b.V}, nil
	default:
		return nil, diag.NewRuntimeError(diag.TypeError, "unknown unary operator %q", e.Op)
	}
}

// evalBinary evaluates both operands unconditionally before dispatching
// on the operator — merx's logical operators never short-circuit
// (spec.md §4.4, §8 property 6).
func (ev *Evaluator) evalBinary(e *parser.BinaryExpr) (value.Value, error) {
	lhs, lerr := ev.Eval(e.Lhs)
	rhs, rerr := ev.Eval(e.Rhs)
	if lerr != nil {
		return nil, lerr
	}
	if rerr != nil {
		return nil, rerr
	}

	switch e.Op {
	case parser.OpAdd:
		return evalAdd(lhs, rhs)
	case parser.OpSub:
		return intOp(lhs, rhs, "-", func(a, b int64) int64 { return a - b })
	case parser.OpMul:
		return intOp(lhs, rhs, "*", func(a, b int64) int64 { return a * b })
	case parser.OpDiv:
		return intDivMod(lhs, rhs, "/", divTruncated)
	case parser.OpMod:
		return intDivMod(lhs, rhs, "%", modTruncated)
	case parser.OpLt:
		return intCompare(lhs, rhs, "<", func(a, b int64) bool { return a < b })
	case parser.OpLe:
		return intCompare(lhs, rhs, "<=", func(a, b int64) bool { return a <= b })
	case parser.OpGt:
		return intCompare(lhs, rhs, ">", func(a, b int64) bool { return a > b })
	case parser.OpGe:
		return intCompare(lhs, rhs, ">=", func(a, b int64) bool { return a >= b })
	case parser.OpEq:
		return value.Bool{V: value.Equal(lhs, rhs)}, nil
	case parser.OpNe:
		return value.Bool{V: !value.Equal(lhs, rhs)}, nil
	case parser.OpAnd:
		return boolOp(lhs, rhs, "&&", func(a, b bool) bool { return a && b })
	case parser.OpOr:
		return boolOp(lhs, rhs, "||", func(a, b bool) bool { return a || b })
	default:
		return nil, diag.NewRuntimeError(diag.TypeError, "unknown binary operator %q", e.Op)
	}
}

// evalAdd implements the one overloaded operator in the language:
// Int+Int wraps, Str+Str concatenates, anything else is a TypeError.
func evalAdd(lhs, rhs value.Value) (value.Value, error) {
	if li, ok := lhs.(value.Int); ok {
		ri, ok := rhs.(value.Int)
		if !ok {
			return nil, diag.NewTypeError("+", "int", string(rhs.Kind()))
		}
		return value.Int{V: li.V + ri.V}, nil
	}
	if ls, ok := lhs.(value.Str); ok {
		rs, ok := rhs.(value.Str)
		if !ok {
			return nil, diag.NewTypeError("+", "str", string(rhs.Kind()))
		}
		return value.Str{V: ls.V + rs.V}, nil
	}
	return nil, diag.NewTypeError("+", "int or str", string(lhs.Kind()))
}

func intOp(lhs, rhs value.Value, op string, f func(a, b int64) int64) (value.Value, error) {
	a, b, err := bothInt(lhs, rhs, op)
	if err != nil {
		return nil, err
	}
	return value.Int{V: f(a, b)}, nil
}

func intCompare(lhs, rhs value.Value, op string, f func(a, b int64) bool) (value.Value, error) {
	a, b, err := bothInt(lhs, rhs, op)
	if err != nil {
		return nil, err
	}
	return value.Bool{V: f(a, b)}, nil
}

func boolOp(lhs, rhs value.Value, op string, f func(a, b bool) bool) (value.Value, error) {
	lb, ok := lhs.(value.Bool)
	if !ok {
		return nil, diag.NewTypeError(op, "bool", string(lhs.Kind()))
	}
	rb, ok := rhs.(value.Bool)
	if !ok {
		return nil, diag.NewTypeError(op, "bool", string(rhs.Kind()))
	}
	return value.Bool{V: f(lb.V, rb.V)}, nil
}

func bothInt(lhs, rhs value.Value, op string) (int64, int64, error) {
	a, ok := lhs.(value.Int)
	if !ok {
		return 0, 0, diag.NewTypeError(op, "int", string(lhs.Kind()))
	}
	b, ok := rhs.(value.Int)
	if !ok {
		return 0, 0, diag.NewTypeError(op, "int", string(rhs.Kind()))
	}
	return a.V, b.V, nil
}

// divTruncated and modTruncated give truncated-toward-zero division and
// a remainder with the sign of the dividend — exactly what Go's native
// int64 `/` and `%` already define, including the i64::MIN / -1
// overflow case (spec.md §8 boundary behavior), so no custom wrapping
// arithmetic is needed here.
func divTruncated(a, b int64) int64 { return a / b }
func modTruncated(a, b int64) int64 { return a % b }

func intDivMod(lhs, rhs value.Value, op string, f func(a, b int64) int64) (value.Value, error) {
	a, b, err := bothInt(lhs, rhs, op)
	if err != nil {
		return nil, err
	}
	if b == 0 {
		return nil, diag.NewRuntimeError(diag.DivisionByZero, "division by zero in %q", op)
	}
	return value.Int{V: f(a, b)}, nil
}

// evalCast implements spec.md §4.4's cast table: identity casts,
// Int/Bool-to-Str formatting, Str-to-Int parsing (CastError on
// failure), and Bool-to-Int rejected outright as a TypeError.
func (ev *Evaluator) evalCast(e *parser.CastExpr) (value.Value, error) {
	operand, err := ev.Eval(e.Operand)
	if err != nil {
		return nil, err
	}
	switch e.Target {
	case parser.CastInt:
		switch v := operand.(type) {
		case value.Int:
			return v, nil
		case value.Str:
			n, err := strconv.ParseInt(strings.TrimSpace(v.V), 10, 64)
			if err != nil {
				return nil, diag.NewCastError("str", "int", v.V)
			}
			return value.Int{V: n}, nil
		case value.Bool:
			return nil, diag.NewTypeError("as int", "int or str", "bool")
		}
	case parser.CastStr:
		switch v := operand.(type) {
		case value.Str:
			return v, nil
		case value.Int, value.Bool:
			return value.Str{V: v.Format()}, nil
		}
	}
	return nil, diag.NewRuntimeError(diag.CastError, "cannot cast %s to %s", operand.Kind(), e.Target)
}
