package driven

import "context"

// LexicalRow is a chunk indexed for BM25 search.
type LexicalRow struct {
	ChunkID  string
	SourceID string
	DocID    string
	Title    string
	Body     string
}

// LexicalHit is a single BM25 match.
type LexicalHit struct {
	ChunkID  string
	SourceID string
	DocID    string
	Title    string
	Body     string
	Score    float64
}

// LexicalStore provides BM25 full-text search, backed by an inverted
// index (k1=1.2, b=0.75).
type LexicalStore interface {
	// Index adds or updates rows in the search index.
	Index(ctx context.Context, rows []LexicalRow) error

	// DeleteByDoc removes every chunk belonging to a document.
	DeleteByDoc(ctx context.Context, docID string) error

	// DeleteBySource removes every chunk belonging to a source.
	DeleteBySource(ctx context.Context, sourceID string) error

	// Search performs a BM25 keyword search, optionally restricted to
	// sourceFilter.
	Search(ctx context.Context, query string, limit int, sourceFilter []string) ([]LexicalHit, error)

	Close() error
}
