package driven

import "context"

// VectorRow is a single chunk's vector plus the denormalised fields
// needed to render a hit without a join back to the content store.
type VectorRow struct {
	ChunkID  string
	SourceID string
	DocID    string
	Vector   []float32
	Body     string
	Title    string
}

// VectorHit is a single nearest-neighbour match.
type VectorHit struct {
	ChunkID    string
	SourceID   string
	DocID      string
	Body       string
	Title      string
	Similarity float64
}

// VectorStore provides approximate nearest-neighbour search over
// chunk embeddings, backed by an HNSW index plus a metadata sidecar.
// Writes are batched internally; see the package-level flush policy.
type VectorStore interface {
	// Upsert inserts or replaces vectors for the given rows. Callers
	// may submit many rows across many documents; the store batches
	// writes and is not guaranteed to be durable until Flush or Close
	// is called, though a Query always observes the caller's own
	// pending writes.
	Upsert(ctx context.Context, rows []VectorRow) error

	// DeleteByDoc removes every chunk vector belonging to a document.
	DeleteByDoc(ctx context.Context, docID string) error

	// DeleteBySource removes every chunk vector belonging to a source.
	DeleteBySource(ctx context.Context, sourceID string) error

	// Query returns the k nearest neighbours to the query vector,
	// optionally restricted to sourceFilter (nil/empty means no
	// restriction).
	Query(ctx context.Context, vector []float32, k int, sourceFilter []string) ([]VectorHit, error)

	// Flush forces any pending batched writes to the index.
	Flush(ctx context.Context) error

	// Dimension returns the bound embedding dimension, or 0 if the
	// store has no rows yet and no model is bound.
	Dimension() int

	Close() error
}
