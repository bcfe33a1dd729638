package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMCPServeCmd_MissingSearchService(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	searchService = nil

	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"mcp", "serve"})

	err := rootCmd.Execute()
	assert.Error(t, err)
}
