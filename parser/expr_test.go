package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseOneExpr(t *testing.T, src string) Expr {
	t.Helper()
	fc, err := Parse("flowchart TD\nStart --> A[println " + src + "]\nA --> End\n")
	require.NoError(t, err)
	require.Len(t, fc.Nodes[0].Statements, 1)
	stmt := fc.Nodes[0].Statements[0].(*PrintlnStmt)
	return stmt.Expr
}

func TestExpr_MulBindsTighterThanAdd(t *testing.T) {
	e := parseOneExpr(t, "1 + 2 * 3")
	bin := e.(*BinaryExpr)
	assert.Equal(t, OpAdd, bin.Op)
	assert.IsType(t, &IntLit{}, bin.Lhs)
	rhs := bin.Rhs.(*BinaryExpr)
	assert.Equal(t, OpMul, rhs.Op)
}

func TestExpr_AsBindsTighterThanMul(t *testing.T) {
	e := parseOneExpr(t, "x as int * 2")
	bin := e.(*BinaryExpr)
	assert.Equal(t, OpMul, bin.Op)
	cast := bin.Lhs.(*CastExpr)
	assert.Equal(t, CastInt, cast.Target)
}

func TestExpr_UnaryBindsTighterThanAs(t *testing.T) {
	e := parseOneExpr(t, "-x as str")
	cast := e.(*CastExpr)
	unary := cast.Operand.(*UnaryExpr)
	assert.Equal(t, OpNeg, unary.Op)
}

func TestExpr_ComparisonLooserThanAdd(t *testing.T) {
	e := parseOneExpr(t, "1 + 2 < 3 * 4")
	bin := e.(*BinaryExpr)
	assert.Equal(t, OpLt, bin.Op)
}

func TestExpr_AndBindsTighterThanOr(t *testing.T) {
	e := parseOneExpr(t, "true || false && true")
	bin := e.(*BinaryExpr)
	assert.Equal(t, OpOr, bin.Op)
	rhs := bin.Rhs.(*BinaryExpr)
	assert.Equal(t, OpAnd, rhs.Op)
}

func TestExpr_LeftAssociativeSubtraction(t *testing.T) {
	e := parseOneExpr(t, "10 - 3 - 2")
	outer := e.(*BinaryExpr)
	assert.Equal(t, OpSub, outer.Op)
	inner, ok := outer.Lhs.(*BinaryExpr)
	require.True(t, ok, "subtraction should be left-associative: (10-3)-2")
	assert.Equal(t, OpSub, inner.Op)
	assert.IsType(t, &IntLit{}, outer.Rhs)
}

func TestExpr_ParenthesesOverridePrecedence(t *testing.T) {
	e := parseOneExpr(t, "(1 + 2) * 3")
	bin := e.(*BinaryExpr)
	assert.Equal(t, OpMul, bin.Op)
	lhs := bin.Lhs.(*BinaryExpr)
	assert.Equal(t, OpAdd, lhs.Op)
}

func TestExpr_DoubleUnaryIsRightAssociative(t *testing.T) {
	e := parseOneExpr(t, "!!true")
	outer := e.(*UnaryExpr)
	assert.Equal(t, OpNot, outer.Op)
	inner := outer.Operand.(*UnaryExpr)
	assert.Equal(t, OpNot, inner.Op)
}
