/*
Package parser turns merx source text into a Flowchart AST (spec.md
§4.1) via a line-oriented graph parser layered over a Pratt-style
operator-precedence expression parser.

The AST types below are adapted from node.go's one-struct-per-kind
style, trimmed to merx's closed, non-extensible grammar: dispatch is a
type switch (the same idiom go-mix's own Eval already uses, see
DESIGN.md), not go-mix's NodeVisitor interface.
*/
package parser

import "github.com/merx-lang/merx/diag"

// Direction is the flowchart's advisory layout direction. It has no
// semantic effect on execution.
type Direction string

const (
	DirTD Direction = "TD"
	DirTB Direction = "TB"
	DirLR Direction = "LR"
	DirRL Direction = "RL"
	DirBT Direction = "BT"
)

// Expr is any merx expression node (spec.md §3 "Expression").
type Expr interface {
	isExpr()
	Pos() diag.Pos
}

type exprBase struct{ P diag.Pos }

func (e exprBase) Pos() diag.Pos { return e.P }
func (exprBase) isExpr()         {}

type IntLit struct {
	exprBase
	Value int64
}

type StrLit struct {
	exprBase
	Value string
}

type BoolLit struct {
	exprBase
	Value bool
}

// VarExpr references a variable binding by name.
type VarExpr struct {
	exprBase
	Name string
}

// InputExpr is the zero-argument `input` primary expression.
type InputExpr struct{ exprBase }

type UnaryOp string

const (
	OpNeg UnaryOp = "-"
	OpNot UnaryOp = "!"
)

type UnaryExpr struct {
	exprBase
	Op      UnaryOp
	Operand Expr
}

type BinaryOp string

const (
	OpAdd BinaryOp = "+"
	OpSub BinaryOp = "-"
	OpMul BinaryOp = "*"
	OpDiv BinaryOp = "/"
	OpMod BinaryOp = "%"
	OpLt  BinaryOp = "<"
	OpLe  BinaryOp = "<="
	OpGt  BinaryOp = ">"
	OpGe  BinaryOp = ">="
	OpEq  BinaryOp = "=="
	OpNe  BinaryOp = "!="
	OpAnd BinaryOp = "&&"
	OpOr  BinaryOp = "||"
)

type BinaryExpr struct {
	exprBase
	Op       BinaryOp
	Lhs, Rhs Expr
}

// CastTarget is the right-hand type name of an `as` expression.
type CastTarget string

const (
	CastInt CastTarget = "int"
	CastStr CastTarget = "str"
)

type CastExpr struct {
	exprBase
	Operand Expr
	Target  CastTarget
}

// Stmt is any merx statement node (spec.md §3 "Statement"). All four
// kinds live inside a Process node's statement list.
type Stmt interface {
	isStmt()
	Pos() diag.Pos
}

type stmtBase struct{ P diag.Pos }

func (s stmtBase) Pos() diag.Pos { return s.P }
func (stmtBase) isStmt()         {}

type PrintlnStmt struct {
	stmtBase
	Expr Expr
}

type PrintStmt struct {
	stmtBase
	Expr Expr
}

type ErrorStmt struct {
	stmtBase
	Expr Expr
}

type AssignStmt struct {
	stmtBase
	Name string
	Expr Expr
}

// NodeKind tags the four flowchart node variants (spec.md §3 "Node").
type NodeKind int

const (
	StartNode NodeKind = iota
	EndNode
	ProcessNode
	ConditionNode
)

func (k NodeKind) String() string {
	switch k {
	case StartNode:
		return "Start"
	case EndNode:
		return "End"
	case ProcessNode:
		return "Process"
	case ConditionNode:
		return "Condition"
	default:
		return "Unknown"
	}
}

// NodeDecl is one occurrence of a node definition: a standalone
// node_def line, or a shape attached directly to an edge endpoint —
// spec.md's grammar allows both (see DESIGN.md "Shape annotation on
// edge endpoints"). The validator is responsible for rejecting
// duplicate definitions of the same id; the parser records every
// occurrence it sees.
type NodeDecl struct {
	ID         string
	Kind       NodeKind
	Statements []Stmt // populated for ProcessNode
	Condition  Expr   // populated for ConditionNode
	Label      string // raw display label text, Start/End only
	HasShape   bool   // false for a bare identifier reference
	P          diag.Pos
}

func (n *NodeDecl) Pos() diag.Pos { return n.P }

// EdgeLabelKind tags the seven edge label variants (spec.md §3 "Edge").
type EdgeLabelKind int

const (
	LabelNone EdgeLabelKind = iota
	LabelYes
	LabelNo
	LabelCustom
	LabelExitOnly
	LabelYesExit
	LabelNoExit
)

// EdgeLabel is an edge's parsed label, per spec.md §4.1.1's
// classification of edge label text into Yes/No/exit-N/Custom.
type EdgeLabel struct {
	Kind EdgeLabelKind
	Text string // original text, populated for LabelCustom
	Code int    // exit code, populated for the three exit variants
}

// EdgeDecl is one directed edge between two node ids.
type EdgeDecl struct {
	From, To string
	Label    EdgeLabel
	P        diag.Pos
}

func (e *EdgeDecl) Pos() diag.Pos { return e.P }

// Flowchart is the parsed, pre-validation AST (spec.md §3
// "Flowchart"): an ordered sequence of node and edge declarations in
// source order, plus the advisory direction.
type Flowchart struct {
	Direction Direction
	Nodes     []*NodeDecl
	Edges     []*EdgeDecl
}
