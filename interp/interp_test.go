package interp

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/merx-lang/merx/diag"
	"github.com/merx-lang/merx/parser"
	"github.com/merx-lang/merx/validate"
)

func run(t *testing.T, src string, stdin string) (int, string, string, error) {
	t.Helper()
	fc, err := parser.Parse(src)
	require.NoError(t, err)
	prog, err := validate.Validate(fc)
	require.NoError(t, err)

	var stdout, stderr bytes.Buffer
	ip := New(strings.NewReader(stdin), &stdout, &stderr)
	code, runErr := ip.Run(prog)
	return code, stdout.String(), stderr.String(), runErr
}

// S1. Hello.
func TestInterp_Hello(t *testing.T) {
	src := "flowchart TD\n" +
		"Start --> A[println 'Hello, merx!']\n" +
		"A --> End\n"
	code, out, _, err := run(t, src, "")
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "Hello, merx!\n", out)
}

// S2. FizzBuzz prefix.
func TestInterp_FizzBuzzPrefix(t *testing.T) {
	src := "flowchart TD\n" +
		"Start --> A[n = 1]\n" +
		"A --> B{n <= 5?}\n" +
		"B -->|Yes| C{n % 15 == 0?}\n" +
		"C -->|Yes| D[println 'FizzBuzz']\n" +
		"C -->|No| E{n % 3 == 0?}\n" +
		"E -->|Yes| F[println 'Fizz']\n" +
		"E -->|No| G{n % 5 == 0?}\n" +
		"G -->|Yes| H[println 'Buzz']\n" +
		"G -->|No| I[println n]\n" +
		"D --> J[n = n + 1]\n" +
		"F --> J\n" +
		"H --> J\n" +
		"I --> J\n" +
		"J --> B\n" +
		"B -->|No| End\n"
	code, out, _, err := run(t, src, "")
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "1\n2\nFizz\n4\nBuzz\n", out)
}

// S3. Cast chain.
func TestInterp_CastChain(t *testing.T) {
	src := "flowchart TD\n" +
		"Start --> A[x = '42' as int]\n" +
		"A --> B[println x + 1]\n" +
		"B --> End\n"
	code, out, _, err := run(t, src, "")
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "43\n", out)
}

// S4. Exit code.
func TestInterp_ExitCode(t *testing.T) {
	src := "flowchart TD\n" +
		"Start --> A{false?}\n" +
		"A -->|Yes| End\n" +
		"A -->|No, exit 7| End\n"
	code, out, _, err := run(t, src, "")
	require.NoError(t, err)
	assert.Equal(t, 7, code)
	assert.Equal(t, "", out)
}

// S5. Eager logical.
func TestInterp_EagerLogicalRaises(t *testing.T) {
	src := "flowchart TD\n" +
		"Start --> A[println true || (1/0 == 0)]\n" +
		"A --> End\n"
	_, out, _, err := run(t, src, "")
	require.Error(t, err)
	re, ok := err.(*diag.RuntimeError)
	require.True(t, ok)
	assert.Equal(t, diag.DivisionByZero, re.Kind)
	assert.Equal(t, "", out, "a failing sub-expression must not emit partial output")
}

// S6. Validation failure: a Condition node with three outgoing edges.
func TestInterp_ValidationRejectsThreeWayCondition(t *testing.T) {
	src := "flowchart TD\n" +
		"Start --> C{x > 0?}\n" +
		"C -->|Yes| End\n" +
		"C -->|No| End\n" +
		"C -->|Maybe| End\n"
	fc, err := parser.Parse(src)
	require.NoError(t, err)
	_, err = validate.Validate(fc)
	require.Error(t, err)
	ae, ok := err.(*diag.AnalysisError)
	require.True(t, ok)
	assert.Equal(t, diag.BadConditionBranches, ae.Kind)
}

func TestInterp_ErrorStatementDoesNotHalt(t *testing.T) {
	src := "flowchart TD\n" +
		"Start --> A[error 'oops'; println 'still here']\n" +
		"A --> End\n"
	code, out, errOut, err := run(t, src, "")
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "still here\n", out)
	assert.Equal(t, "oops\n", errOut)
}

func TestInterp_FailingAssignRaisesDivisionByZero(t *testing.T) {
	src := "flowchart TD\n" +
		"Start --> A[n = 1]\n" +
		"A --> B{n == 1?}\n" +
		"B -->|Yes| C[n = 1 / 0]\n" +
		"B -->|No| End\n" +
		"C --> End\n"
	_, _, _, err := run(t, src, "")
	require.Error(t, err)
	re := err.(*diag.RuntimeError)
	assert.Equal(t, diag.DivisionByZero, re.Kind)
}

func TestInterp_InputDrivenLoop(t *testing.T) {
	src := "flowchart TD\n" +
		"Start --> A[s = input]\n" +
		"A --> B{s == ''?}\n" +
		"B -->|Yes| End\n" +
		"B -->|No| C[println s]\n" +
		"C --> A\n"
	code, out, _, err := run(t, src, "one\ntwo\n")
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "one\ntwo\n", out)
}
