package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/eywa-run/eywa/internal/core/domain"
)

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query     string   `json:"query" jsonschema:"the search query to find documents"`
	Limit     int      `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 10)"`
	SourceIDs []string `json:"source_ids,omitempty" jsonschema:"restrict results to these source IDs"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	DocumentID string  `json:"document_id"`
	ChunkID    string  `json:"chunk_id"`
	Title      string  `json:"title"`
	URI        string  `json:"uri"`
	Source     string  `json:"source"`
	Score      float64 `json:"score"`
	Snippet    string  `json:"snippet"`
}

// SimilarInput is the input schema for the similar_docs tool.
type SimilarInput struct {
	DocumentID string `json:"document_id" jsonschema:"the document ID to find similar documents for"`
	Limit      int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 10)"`
}

// ListSourcesOutput is the output schema for the list_sources tool.
type ListSourcesOutput struct {
	Sources []SourceOutput `json:"sources"`
}

// SourceOutput represents a single source.
type SourceOutput struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	DocCount   int    `json:"doc_count"`
	ChunkCount int    `json:"chunk_count"`
}

// ListDocumentsInput is the input schema for the list_documents tool.
type ListDocumentsInput struct {
	SourceID string `json:"source_id" jsonschema:"the source to list documents for"`
}

// ListDocumentsOutput is the output schema for the list_documents tool.
type ListDocumentsOutput struct {
	Documents []DocumentOutput `json:"documents"`
}

// DocumentOutput represents document metadata without its content.
type DocumentOutput struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// GetDocumentInput is the input schema for the get_document tool.
type GetDocumentInput struct {
	DocumentID string `json:"document_id" jsonschema:"the document ID to retrieve"`
}

// GetDocumentOutput is the output schema for the get_document tool.
type GetDocumentOutput struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	URI     string `json:"uri"`
	Content string `json:"content"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Hybrid (dense + lexical) search across all indexed documents",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "similar_docs",
		Description: "Find documents related to an already-indexed document",
	}, s.handleSimilar)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_sources",
		Description: "List all configured document sources",
	}, s.handleListSources)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_documents",
		Description: "List documents indexed for a source",
	}, s.handleListDocuments)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_document",
		Description: "Retrieve a document's full content",
	}, s.handleGetDocument)
}

func toSearchOutput(results []domain.SearchResult) SearchOutput {
	output := SearchOutput{
		Results: make([]SearchResultOutput, len(results)),
		Count:   len(results),
	}
	for i := range results {
		score := results[i].FusedScore
		if results[i].RerankScore != 0 {
			score = results[i].RerankScore
		}
		output.Results[i] = SearchResultOutput{
			DocumentID: results[i].Document.ID,
			ChunkID:    results[i].Chunk.ID,
			Title:      results[i].Document.Title,
			URI:        results[i].Document.URI,
			Source:     results[i].SourceName,
			Score:      score,
			Snippet:    results[i].Chunk.Text,
		}
	}
	return output
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 10
	}

	opts := domain.SearchOptions{
		Limit:     limit,
		SourceIDs: input.SourceIDs,
		Rerank:    true,
	}
	results, err := s.ports.Search.Search(ctx, input.Query, opts)
	if err != nil {
		return nil, SearchOutput{}, err
	}
	return nil, toSearchOutput(results), nil
}

// handleSimilar handles the similar_docs tool invocation.
func (s *Server) handleSimilar(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SimilarInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 10
	}

	results, err := s.ports.Search.Similar(ctx, input.DocumentID, limit)
	if err != nil {
		return nil, SearchOutput{}, err
	}
	return nil, toSearchOutput(results), nil
}

// handleListSources handles the list_sources tool invocation.
func (s *Server) handleListSources(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ struct{},
) (*mcp.CallToolResult, ListSourcesOutput, error) {
	if s.ports.Source == nil {
		return nil, ListSourcesOutput{}, nil
	}

	sources, err := s.ports.Source.List(ctx)
	if err != nil {
		return nil, ListSourcesOutput{}, fmt.Errorf("listing sources: %w", err)
	}

	output := ListSourcesOutput{Sources: make([]SourceOutput, len(sources))}
	for i, src := range sources {
		output.Sources[i] = SourceOutput{
			ID:         src.ID,
			Name:       src.DisplayName,
			DocCount:   src.DocCount,
			ChunkCount: src.ChunkCount,
		}
	}
	return nil, output, nil
}

// handleListDocuments handles the list_documents tool invocation.
func (s *Server) handleListDocuments(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListDocumentsInput,
) (*mcp.CallToolResult, ListDocumentsOutput, error) {
	if s.ports.Source == nil {
		return nil, ListDocumentsOutput{}, nil
	}

	docs, err := s.ports.Source.ListDocuments(ctx, input.SourceID)
	if err != nil {
		return nil, ListDocumentsOutput{}, fmt.Errorf("listing documents: %w", err)
	}

	output := ListDocumentsOutput{Documents: make([]DocumentOutput, len(docs))}
	for i := range docs {
		output.Documents[i] = DocumentOutput{
			ID:    docs[i].ID,
			Title: docs[i].Title,
			URI:   docs[i].URI,
		}
	}
	return nil, output, nil
}

// handleGetDocument handles the get_document tool invocation.
func (s *Server) handleGetDocument(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetDocumentInput,
) (*mcp.CallToolResult, GetDocumentOutput, error) {
	if s.ports.Source == nil {
		return nil, GetDocumentOutput{}, domain.ErrNotFound
	}

	doc, err := s.ports.Source.GetDocument(ctx, input.DocumentID)
	if err != nil {
		return nil, GetDocumentOutput{}, fmt.Errorf("getting document: %w", err)
	}

	return nil, GetDocumentOutput{
		ID:      doc.ID,
		Title:   doc.Title,
		URI:     doc.URI,
		Content: doc.Content,
	}, nil
}
