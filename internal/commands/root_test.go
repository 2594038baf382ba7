package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand()

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := NewRootCommand()

	var names []string
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}

	assert.Contains(t, names, "analyze")
	assert.Contains(t, names, "batch")
}

func TestRootCommandVersion(t *testing.T) {
	out, err := execute(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "dev")
	assert.Contains(t, out, "commit:")
}

func TestAnalyzeRequiresExactlyOneArg(t *testing.T) {
	_, err := execute(t, "analyze")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg")

	_, err = execute(t, "analyze", "a.pdf", "b.pdf")
	require.Error(t, err)
}

func TestAnalyzeRejectsNonPDF(t *testing.T) {
	// Fails in the document loader, before any model client is built.
	_, err := execute(t, "analyze", "statement.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a PDF file")
}

func TestAnalyzeRejectsMissingConfig(t *testing.T) {
	_, err := execute(t, "analyze", "--config", "/nonexistent/analyser.yaml", "statement.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config")
}

func TestBatchRequiresArgs(t *testing.T) {
	_, err := execute(t, "batch")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires at least 1 arg")
}

func TestAnalyzeFlags(t *testing.T) {
	root := NewRootCommand()
	analyze, _, err := root.Find([]string{"analyze"})
	require.NoError(t, err)

	for _, name := range []string{"config", "model", "json"} {
		assert.NotNil(t, analyze.Flags().Lookup(name), "flag %s", name)
	}
	assert.Equal(t, "false", analyze.Flags().Lookup("json").DefValue)
}

func TestBatchFlags(t *testing.T) {
	root := NewRootCommand()
	batch, _, err := root.Find([]string{"batch"})
	require.NoError(t, err)

	workers := batch.Flags().Lookup("workers")
	require.NotNil(t, workers)
	assert.Equal(t, "4", workers.DefValue)
}

func TestLoadConfigDefaultsWhenUnset(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.5-flash", cfg.Model)
}

func TestUnknownCommand(t *testing.T) {
	_, err := execute(t, "frobnicate")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "unknown command"), err.Error())
}
