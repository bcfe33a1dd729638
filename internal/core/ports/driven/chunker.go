package driven

import "github.com/eywa-run/eywa/internal/core/domain"

// Chunker splits a normalised document into overlapping, contextually
// prefixed chunks. Implementations are selected by MIME hint; see
// internal/chunker.ForMIME.
type Chunker interface {
	// Chunk splits doc.Content into ordered chunks. The returned
	// chunks' DocumentID, SourceID, Ordinal and ID fields are left
	// zero-valued; the caller (the ingest pipeline) fills them in so
	// chunk identity stays centralised in one place.
	Chunk(doc domain.Document) ([]domain.Chunk, error)
}
