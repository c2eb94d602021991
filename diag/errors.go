/*
Package diag defines the three error taxonomies merx surfaces to the
CLI boundary (spec.md §7): SyntaxError from the parser, AnalysisError
from the validator, and RuntimeError from the evaluator/executor.

Every core package constructs one of these through a constructor here
rather than ad hoc fmt.Errorf, the way go-mix's Evaluator funnels
all error construction through a single CreateError helper
(eval/eval_helpers.go) so every error carries consistent context.
*/
package diag

import "fmt"

// Pos is a one-based source position.
type Pos struct {
	Line int
	Col  int
}

func (p Pos) String() string { return fmt.Sprintf("%d:%d", p.Line, p.Col) }

// SyntaxCategory names the kind of lexical/grammatical failure, per
// spec.md §4.1.3.
type SyntaxCategory string

const (
	UnexpectedToken      SyntaxCategory = "unexpected token"
	UnterminatedString   SyntaxCategory = "unterminated string"
	BadEscape            SyntaxCategory = "bad escape"
	MalformedArrow       SyntaxCategory = "malformed arrow"
	MismatchedBrackets   SyntaxCategory = "mismatched brackets"
	ReservedIdentifier   SyntaxCategory = "reserved identifier misuse"
	DuplicateEdgeLabel   SyntaxCategory = "duplicate edge label form"
	MalformedExitCode    SyntaxCategory = "malformed exit code"
	MissingFlowchartHead SyntaxCategory = "missing flowchart header"
)

// SyntaxError is a parse-time failure with a source position.
type SyntaxError struct {
	Pos      Pos
	Category SyntaxCategory
	Msg      string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at %s: %s (%s)", e.Pos, e.Msg, e.Category)
}

// NewSyntaxError builds a SyntaxError at pos, in category, with a
// formatted message.
func NewSyntaxError(pos Pos, cat SyntaxCategory, format string, args ...interface{}) *SyntaxError {
	return &SyntaxError{Pos: pos, Category: cat, Msg: fmt.Sprintf(format, args...)}
}

// ErrorList collects parse errors. merx's grammar halts parsing on the
// first error (spec.md §4.1.3: "no partial recovery is required") and
// the parser returns that error as a *SyntaxError, so nothing in merx
// builds an ErrorList today; the type exists so a future recovering
// parser can reuse the same reporting path the CLI already understands.
type ErrorList struct {
	Errors []*SyntaxError
}

func (l *ErrorList) Add(e *SyntaxError) { l.Errors = append(l.Errors, e) }
func (l *ErrorList) HasErrors() bool    { return len(l.Errors) > 0 }

func (l *ErrorList) Error() string {
	if len(l.Errors) == 0 {
		return "no errors"
	}
	if len(l.Errors) == 1 {
		return l.Errors[0].Error()
	}
	msg := fmt.Sprintf("%d syntax errors:", len(l.Errors))
	for _, e := range l.Errors {
		msg += "\n  " + e.Error()
	}
	return msg
}

// AnalysisKind names a validator failure, per spec.md §4.2.
type AnalysisKind string

const (
	DuplicateNode        AnalysisKind = "DuplicateNode"
	UndefinedNode        AnalysisKind = "UndefinedNode"
	MissingStart         AnalysisKind = "MissingStart"
	MissingEnd           AnalysisKind = "MissingEnd"
	EdgeFromEnd          AnalysisKind = "EdgeFromEnd"
	MultipleSuccessors   AnalysisKind = "MultipleSuccessors"
	BadConditionBranches AnalysisKind = "BadConditionBranches"
	ExitOnNonEndEdge     AnalysisKind = "ExitOnNonEndEdge"
)

// AnalysisError is a validator failure identifying the offending node,
// if any.
type AnalysisError struct {
	Kind   AnalysisKind
	NodeID string
	Msg    string
}

func (e *AnalysisError) Error() string {
	if e.NodeID == "" {
		return fmt.Sprintf("analysis error: %s: %s", e.Kind, e.Msg)
	}
	return fmt.Sprintf("analysis error: %s(%s): %s", e.Kind, e.NodeID, e.Msg)
}

func NewAnalysisError(kind AnalysisKind, nodeID string, format string, args ...interface{}) *AnalysisError {
	return &AnalysisError{Kind: kind, NodeID: nodeID, Msg: fmt.Sprintf(format, args...)}
}

// RuntimeKind names an interpreter failure, per spec.md §7.
type RuntimeKind string

const (
	UndefinedVariable RuntimeKind = "UndefinedVariable"
	TypeError         RuntimeKind = "TypeError"
	DivisionByZero    RuntimeKind = "DivisionByZero"
	CastError         RuntimeKind = "CastError"
	InputError        RuntimeKind = "InputError"
	OutputError       RuntimeKind = "OutputError"
)

// RuntimeError is a failure raised while evaluating an expression or
// executing a statement. Expected/Found/Op are populated for
// TypeError; From/To/Literal for CastError; both are empty otherwise.
type RuntimeError struct {
	Kind     RuntimeKind
	Msg      string
	Expected string
	Found    string
	Op       string
	From     string
	To       string
	Literal  string
}

func (e *RuntimeError) Error() string {
	switch e.Kind {
	case TypeError:
		return fmt.Sprintf("runtime error: TypeError: operator %s expected %s, found %s", e.Op, e.Expected, e.Found)
	case CastError:
		return fmt.Sprintf("runtime error: CastError: cannot cast %s %q to %s", e.From, e.Literal, e.To)
	default:
		return fmt.Sprintf("runtime error: %s: %s", e.Kind, e.Msg)
	}
}

func NewRuntimeError(kind RuntimeKind, format string, args ...interface{}) *RuntimeError {
	return &RuntimeError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// NewTypeError builds a TypeError naming the operator and the type
// mismatch observed, per spec.md §7 ("TypeError(expected, found, op)").
func NewTypeError(op, expected, found string) *RuntimeError {
	return &RuntimeError{Kind: TypeError, Op: op, Expected: expected, Found: found}
}

// NewCastError builds a CastError naming the source/target types and
// the literal value that failed to convert.
func NewCastError(from, to, literal string) *RuntimeError {
	return &RuntimeError{Kind: CastError, From: from, To: to, Literal: literal}
}
