package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceListCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"source", "list"})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "src-1")
}

func TestSourceListCmd_Empty(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	sourceService = &fakeSourceService{}

	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"source", "list"})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "No configured sources.")
}

func TestSourceGetCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	sourceService = &fakeSourceService{source: &domainSourceFixture}

	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"source", "get", "src-1"})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "src-1")
}

func TestSourceRemoveCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"source", "remove", "src-1"})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "Removed source: src-1")
}

func TestSourceResetCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"source", "reset"})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "wiped")
}

func TestSourceCmd_ServiceNotConfigured(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	sourceService = nil

	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"source", "list"})

	assert.Error(t, rootCmd.Execute())
}
