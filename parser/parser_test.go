package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_HelloWorld(t *testing.T) {
	src := "flowchart TD\n" +
		"Start --> A[println 'Hello, merx!']\n" +
		"A --> End\n"

	fc, err := Parse(src)
	require.NoError(t, err)
	assert.Equal(t, DirTD, fc.Direction)
	require.Len(t, fc.Nodes, 1)
	assert.Equal(t, "A", fc.Nodes[0].ID)
	assert.Equal(t, ProcessNode, fc.Nodes[0].Kind)
	require.Len(t, fc.Nodes[0].Statements, 1)
	_, ok := fc.Nodes[0].Statements[0].(*PrintlnStmt)
	assert.True(t, ok)
	require.Len(t, fc.Edges, 2)
	assert.Equal(t, "Start", fc.Edges[0].From)
	assert.Equal(t, "A", fc.Edges[0].To)
	assert.Equal(t, "End", fc.Edges[1].To)
}

func TestParse_ConditionNodeWithBranches(t *testing.T) {
	src := "flowchart TD\n" +
		"Start --> C{x > 0?}\n" +
		"C -->|Yes| A[y = 1]\n" +
		"C -->|No| B[y = -1]\n" +
		"A --> End\n" +
		"B --> End\n"

	fc, err := Parse(src)
	require.NoError(t, err)
	require.Len(t, fc.Nodes, 3)
	cond := fc.Nodes[0]
	assert.Equal(t, ConditionNode, cond.Kind)
	bin, ok := cond.Condition.(*BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, OpGt, bin.Op)

	assert.Equal(t, LabelYes, fc.Edges[1].Label.Kind)
	assert.Equal(t, LabelNo, fc.Edges[2].Label.Kind)
}

func TestParse_ExitCodeLabels(t *testing.T) {
	src := "flowchart TD\n" +
		"Start --> C{ok?}\n" +
		"C -->|Yes, exit 0| End\n" +
		"C -->|No, exit 7| End\n"

	fc, err := Parse(src)
	require.NoError(t, err)
	require.Len(t, fc.Edges, 3)
	assert.Equal(t, LabelYesExit, fc.Edges[1].Label.Kind)
	assert.Equal(t, 0, fc.Edges[1].Label.Code)
	assert.Equal(t, LabelNoExit, fc.Edges[2].Label.Kind)
	assert.Equal(t, 7, fc.Edges[2].Label.Code)
}

func TestParse_InlineArrowLabel(t *testing.T) {
	src := "flowchart TD\n" +
		"Start -- exit 3 --> End\n"

	fc, err := Parse(src)
	require.NoError(t, err)
	require.Len(t, fc.Edges, 1)
	assert.Equal(t, LabelExitOnly, fc.Edges[0].Label.Kind)
	assert.Equal(t, 3, fc.Edges[0].Label.Code)
}

func TestParse_StadiumShapeAndMultiStatement(t *testing.T) {
	src := "flowchart LR\n" +
		"Start --> A([n = 1; println n])\n" +
		"A --> End\n"

	fc, err := Parse(src)
	require.NoError(t, err)
	require.Len(t, fc.Nodes, 1)
	require.Len(t, fc.Nodes[0].Statements, 2)
}

func TestParse_MissingFlowchartHeader(t *testing.T) {
	_, err := Parse("Start --> End\n")
	require.Error(t, err)
}

func TestParse_ReservedIdentifierAsVariable(t *testing.T) {
	src := "flowchart TD\nStart --> A[input = 1]\nA --> End\n"
	_, err := Parse(src)
	require.Error(t, err)
}

func TestParse_MismatchedBrackets(t *testing.T) {
	src := "flowchart TD\nStart --> A(println 1])\nA --> End\n"
	_, err := Parse(src)
	require.Error(t, err)
}

func TestRoundTrip_PrintThenReparse(t *testing.T) {
	src := "flowchart TD\n" +
		"Start --> C{(x + 1) * 2 > 0?}\n" +
		"C -->|Yes| A[println (x as str)]\n" +
		"C -->|No| End\n" +
		"A --> End\n"

	fc1, err := Parse(src)
	require.NoError(t, err)

	printed := fc1.String()
	fc2, err := Parse(printed)
	require.NoError(t, err, "re-parsing printed output should not fail:\n%s", printed)

	assert.Equal(t, len(fc1.Nodes), len(fc2.Nodes))
	assert.Equal(t, len(fc1.Edges), len(fc2.Edges))
	assert.Equal(t, fc1.Direction, fc2.Direction)
	assert.Equal(t, ExprString(fc1.Nodes[0].Condition), ExprString(fc2.Nodes[0].Condition))
}

func TestRoundTrip_NulAndControlByteEscapes(t *testing.T) {
	src := "flowchart TD\n" +
		"Start --> A[println 'a\\0b\\x01c']\n" +
		"A --> End\n"

	fc1, err := Parse(src)
	require.NoError(t, err)

	printed := fc1.String()
	assert.NotContains(t, printed, "\x00", "serialized source must never contain a raw NUL byte")

	fc2, err := Parse(printed)
	require.NoError(t, err, "re-parsing printed output should not fail:\n%s", printed)

	lit1 := fc1.Nodes[0].Statements[0].(*PrintlnStmt).Expr.(*StrLit).Value
	lit2 := fc2.Nodes[0].Statements[0].(*PrintlnStmt).Expr.(*StrLit).Value
	assert.Equal(t, "a\x00b\x01c", lit1)
	assert.Equal(t, lit1, lit2)
}
