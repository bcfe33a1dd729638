package driven

import (
	"context"

	"github.com/eywa-run/eywa/internal/core/domain"
)

// ContentStore persists documents: compressed content plus plaintext
// metadata, backed by an embedded relational store.
type ContentStore interface {
	// Put stores or updates a document. Idempotent on doc.ID.
	Put(ctx context.Context, doc *domain.Document) error

	// Get retrieves a document by ID, content decompressed. Returns
	// ErrNotFound if absent.
	Get(ctx context.Context, id string) (*domain.Document, error)

	// Delete removes a document. Idempotent.
	Delete(ctx context.Context, id string) error

	// List returns document metadata for a source (content omitted).
	List(ctx context.Context, sourceID string) ([]domain.Document, error)

	// SaveChunks stores the chunk rows for a document (text/body,
	// offsets, section path - no vectors).
	SaveChunks(ctx context.Context, chunks []domain.Chunk) error

	// GetChunks retrieves all chunks of a document in ordinal order.
	GetChunks(ctx context.Context, documentID string) ([]domain.Chunk, error)

	// GetChunk retrieves a single chunk by ID.
	GetChunk(ctx context.Context, id string) (*domain.Chunk, error)

	// DeleteChunks removes all chunks belonging to a document.
	DeleteChunks(ctx context.Context, documentID string) error

	Close() error
}
