package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eywa-run/eywa/internal/core/domain"
)

func TestServer_handleSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("returns search results", func(t *testing.T) {
		fake := &fakeSearchService{
			results: []domain.SearchResult{
				{
					Document:    domain.Document{ID: "doc-1", Title: "Test Doc", URI: "/path/to/doc"},
					Chunk:       domain.Chunk{Text: "matched text"},
					FusedScore:  0.5,
					RerankScore: 0.95,
					SourceName:  "notes",
				},
			},
		}

		server, err := NewServer(&Ports{Search: fake})
		require.NoError(t, err)

		_, output, err := server.handleSearch(ctx, nil, SearchInput{Query: "test", Limit: 10})

		require.NoError(t, err)
		assert.Equal(t, 1, output.Count)
		require.Len(t, output.Results, 1)
		assert.Equal(t, "doc-1", output.Results[0].DocumentID)
		assert.Equal(t, "Test Doc", output.Results[0].Title)
		assert.Equal(t, "/path/to/doc", output.Results[0].URI)
		assert.Equal(t, "notes", output.Results[0].Source)
		assert.Equal(t, 0.95, output.Results[0].Score)
		assert.Equal(t, "matched text", output.Results[0].Snippet)
	})

	t.Run("falls back to fused score when rerank score is zero", func(t *testing.T) {
		fake := &fakeSearchService{
			results: []domain.SearchResult{{FusedScore: 0.42}},
		}
		server, err := NewServer(&Ports{Search: fake})
		require.NoError(t, err)

		_, output, err := server.handleSearch(ctx, nil, SearchInput{Query: "test"})
		require.NoError(t, err)
		assert.Equal(t, 0.42, output.Results[0].Score)
	})

	t.Run("returns error on search failure", func(t *testing.T) {
		fake := &fakeSearchService{err: errors.New("search failed")}
		server, err := NewServer(&Ports{Search: fake})
		require.NoError(t, err)

		_, _, err = server.handleSearch(ctx, nil, SearchInput{Query: "test"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "search failed")
	})
}

func TestServer_handleSimilar(t *testing.T) {
	ctx := context.Background()
	fake := &fakeSearchService{
		results: []domain.SearchResult{{Document: domain.Document{ID: "doc-2"}}},
	}
	server, err := NewServer(&Ports{Search: fake})
	require.NoError(t, err)

	_, output, err := server.handleSimilar(ctx, nil, SimilarInput{DocumentID: "doc-1"})
	require.NoError(t, err)
	assert.Equal(t, 1, output.Count)
	assert.Equal(t, "doc-2", output.Results[0].DocumentID)
}

func TestServer_handleListSources(t *testing.T) {
	ctx := context.Background()

	t.Run("nil source port returns empty", func(t *testing.T) {
		server, err := NewServer(&Ports{Search: &fakeSearchService{}})
		require.NoError(t, err)

		_, output, err := server.handleListSources(ctx, nil, struct{}{})
		require.NoError(t, err)
		assert.Empty(t, output.Sources)
	})

	t.Run("returns sources", func(t *testing.T) {
		fake := &fakeSourceService{
			sources: []domain.Source{{ID: "src-1", DisplayName: "Notes", DocCount: 3, ChunkCount: 12}},
		}
		server, err := NewServer(&Ports{Search: &fakeSearchService{}, Source: fake})
		require.NoError(t, err)

		_, output, err := server.handleListSources(ctx, nil, struct{}{})
		require.NoError(t, err)
		require.Len(t, output.Sources, 1)
		assert.Equal(t, "src-1", output.Sources[0].ID)
		assert.Equal(t, "Notes", output.Sources[0].Name)
	})
}

func TestServer_handleGetDocument(t *testing.T) {
	ctx := context.Background()

	t.Run("nil source port returns not found", func(t *testing.T) {
		server, err := NewServer(&Ports{Search: &fakeSearchService{}})
		require.NoError(t, err)

		_, _, err = server.handleGetDocument(ctx, nil, GetDocumentInput{DocumentID: "doc-1"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("returns document content", func(t *testing.T) {
		fake := &fakeSourceService{
			doc: &domain.Document{ID: "doc-1", Title: "Doc", Content: "body text"},
		}
		server, err := NewServer(&Ports{Search: &fakeSearchService{}, Source: fake})
		require.NoError(t, err)

		_, output, err := server.handleGetDocument(ctx, nil, GetDocumentInput{DocumentID: "doc-1"})
		require.NoError(t, err)
		assert.Equal(t, "body text", output.Content)
	})
}
