package replshell

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/merx-lang/merx/env"
	"github.com/merx-lang/merx/eval"
)

func TestEvalLine_ExpressionIsEchoed(t *testing.T) {
	var out bytes.Buffer
	r := New("", false)
	ev := eval.New(env.New(), &bytes.Buffer{})
	r.evalLine(&out, ev, "1 + 2 * 3")
	assert.Contains(t, out.String(), "7")
}

func TestEvalLine_AssignThenReadBack(t *testing.T) {
	var out bytes.Buffer
	r := New("", false)
	ev := eval.New(env.New(), &bytes.Buffer{})
	r.evalLine(&out, ev, "x = 10")
	r.evalLine(&out, ev, "x + 1")
	assert.Contains(t, out.String(), "11")
}

func TestEvalLine_PrintlnStatement(t *testing.T) {
	var out bytes.Buffer
	r := New("", false)
	ev := eval.New(env.New(), &bytes.Buffer{})
	r.evalLine(&out, ev, "println 'hi'")
	assert.Contains(t, out.String(), "hi")
}

func TestEvalLine_DivisionByZeroDoesNotPanic(t *testing.T) {
	var out bytes.Buffer
	r := New("", false)
	ev := eval.New(env.New(), &bytes.Buffer{})
	assert.NotPanics(t, func() { r.evalLine(&out, ev, "1 / 0") })
	assert.Contains(t, out.String(), "DivisionByZero")
}

func TestLooksLikeStmt(t *testing.T) {
	assert.True(t, looksLikeStmt("println 1"))
	assert.True(t, looksLikeStmt("x = 1"))
	assert.False(t, looksLikeStmt("1 + 2"))
	assert.False(t, looksLikeStmt("x == 1"))
}
