package driving

import (
	"context"

	"github.com/eywa-run/eywa/internal/core/domain"
)

// SourceService manages the source registry and document lookup.
type SourceService interface {
	// List returns all known sources.
	List(ctx context.Context) ([]domain.Source, error)

	// Get retrieves a source by ID.
	Get(ctx context.Context, id string) (*domain.Source, error)

	// ListDocuments returns document metadata for a source.
	ListDocuments(ctx context.Context, sourceID string) ([]domain.Document, error)

	// GetDocument retrieves a document's metadata and content.
	GetDocument(ctx context.Context, docID string) (*domain.Document, error)

	// DeleteDocument removes a document and its chunks from all three
	// stores, decrementing the owning source's counters.
	DeleteDocument(ctx context.Context, docID string) error

	// DeleteSource removes a source and every document/chunk it owns.
	DeleteSource(ctx context.Context, sourceID string) error

	// Reset wipes all sources, documents and indexes.
	Reset(ctx context.Context) error
}
