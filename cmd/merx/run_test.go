package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunFile_Hello(t *testing.T) {
	path := writeTemp(t, "hello.mmd", "flowchart TD\n"+
		"Start --> A[println 'Hello, merx!']\n"+
		"A --> End\n")
	assert.Equal(t, 0, runFile(path))
}

func TestRunFile_ExitCode(t *testing.T) {
	path := writeTemp(t, "exit.mmd", "flowchart TD\n"+
		"Start --> A{false?}\n"+
		"A -->|Yes| End\n"+
		"A -->|No, exit 7| End\n")
	assert.Equal(t, 7, runFile(path))
}

func TestRunFile_MissingFile(t *testing.T) {
	assert.Equal(t, 1, runFile(filepath.Join(t.TempDir(), "nope.mmd")))
}

func TestRunFile_SyntaxErrorExitsOne(t *testing.T) {
	path := writeTemp(t, "bad.mmd", "flowchart TD\nStart -->\n")
	assert.Equal(t, 1, runFile(path))
}

func TestRunFile_AnalysisErrorExitsOne(t *testing.T) {
	path := writeTemp(t, "dangling.mmd", "flowchart TD\nStart --> A[println 1]\n")
	assert.Equal(t, 1, runFile(path))
}

func TestCheckFile_ValidProgramIsOK(t *testing.T) {
	path := writeTemp(t, "ok.mmd", "flowchart TD\n"+
		"Start --> A[println 1]\n"+
		"A --> End\n")
	assert.Equal(t, 0, checkFile(path, false))
}

func TestCheckFile_InvalidProgramExitsOne(t *testing.T) {
	path := writeTemp(t, "bad.mmd", "flowchart TD\nStart --> A[println 1]\n")
	assert.Equal(t, 1, checkFile(path, false))
}
