package driving

import (
	"context"

	"github.com/eywa-run/eywa/internal/core/domain"
)

// SearchService provides hybrid search over indexed documents.
type SearchService interface {
	// Search embeds the query, runs dense and lexical retrieval in
	// parallel, fuses and reranks the results.
	Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error)

	// Similar finds documents related to an already-indexed document,
	// reusing its first chunk's stored vector.
	Similar(ctx context.Context, docID string, k int) ([]domain.SearchResult, error)
}
