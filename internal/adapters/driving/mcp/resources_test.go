package mcp

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eywa-run/eywa/internal/core/domain"
)

func TestExtractSourceID(t *testing.T) {
	assert.Equal(t, "src-1", extractSourceID("eywa://sources/src-1/documents"))
	assert.Equal(t, "", extractSourceID("eywa://documents/doc-1"))
}

func TestExtractDocumentID(t *testing.T) {
	assert.Equal(t, "doc-1", extractDocumentID("eywa://documents/doc-1"))
	assert.Equal(t, "", extractDocumentID("eywa://sources/src-1/documents"))
}

func TestServer_handleSourcesResource(t *testing.T) {
	ctx := context.Background()

	t.Run("nil source port returns empty array", func(t *testing.T) {
		server, err := NewServer(&Ports{Search: &fakeSearchService{}})
		require.NoError(t, err)

		result, err := server.handleSourcesResource(ctx, &mcp.ReadResourceRequest{
			Params: &mcp.ReadResourceParams{URI: "eywa://sources"},
		})
		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})

	t.Run("returns source list", func(t *testing.T) {
		fake := &fakeSourceService{sources: []domain.Source{{ID: "src-1", DisplayName: "Notes"}}}
		server, err := NewServer(&Ports{Search: &fakeSearchService{}, Source: fake})
		require.NoError(t, err)

		result, err := server.handleSourcesResource(ctx, &mcp.ReadResourceRequest{
			Params: &mcp.ReadResourceParams{URI: "eywa://sources"},
		})
		require.NoError(t, err)
		assert.Contains(t, result.Contents[0].Text, "src-1")
	})
}

func TestServer_handleDocumentsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("nil source port not found", func(t *testing.T) {
		server, err := NewServer(&Ports{Search: &fakeSearchService{}})
		require.NoError(t, err)

		_, err = server.handleDocumentsResource(ctx, &mcp.ReadResourceRequest{
			Params: &mcp.ReadResourceParams{URI: "eywa://sources/src-1/documents"},
		})
		assert.Error(t, err)
	})

	t.Run("returns documents", func(t *testing.T) {
		fake := &fakeSourceService{docs: []domain.Document{{ID: "doc-1", Title: "Doc"}}}
		server, err := NewServer(&Ports{Search: &fakeSearchService{}, Source: fake})
		require.NoError(t, err)

		result, err := server.handleDocumentsResource(ctx, &mcp.ReadResourceRequest{
			Params: &mcp.ReadResourceParams{URI: "eywa://sources/src-1/documents"},
		})
		require.NoError(t, err)
		assert.Contains(t, result.Contents[0].Text, "doc-1")
	})
}

func TestServer_handleDocumentContentResource(t *testing.T) {
	ctx := context.Background()

	fake := &fakeSourceService{doc: &domain.Document{ID: "doc-1", Content: "hello world"}}
	server, err := NewServer(&Ports{Search: &fakeSearchService{}, Source: fake})
	require.NoError(t, err)

	result, err := server.handleDocumentContentResource(ctx, &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{URI: "eywa://documents/doc-1"},
	})
	require.NoError(t, err)
	assert.Equal(t, "hello world", result.Contents[0].Text)
}
