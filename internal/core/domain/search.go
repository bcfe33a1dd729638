package domain

// SearchOptions configures a hybrid search query.
type SearchOptions struct {
	// Limit is the maximum number of results returned.
	Limit int

	// SourceIDs filters candidates to specific sources; empty means
	// all sources.
	SourceIDs []string

	// Rerank disables the cross-encoder rerank stage when false,
	// returning the fused ranking directly.
	Rerank bool
}

// SearchResult is a single ranked hit.
type SearchResult struct {
	Document Document
	Chunk    Chunk

	// DenseScore and LexicalScore are the raw per-retriever scores
	// before normalisation, kept for diagnostics.
	DenseScore   float64
	LexicalScore float64

	// FusedScore is the convex combination of the min-max normalised
	// dense and lexical scores.
	FusedScore float64

	// RerankScore is the cross-encoder's sigmoid output; zero if
	// reranking was skipped or unavailable.
	RerankScore float64

	SourceName string
}
