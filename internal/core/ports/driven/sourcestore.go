package driven

import (
	"context"

	"github.com/eywa-run/eywa/internal/core/domain"
)

// SourceStore persists source records and their document/chunk
// counters.
type SourceStore interface {
	// Save stores or updates a source.
	Save(ctx context.Context, source domain.Source) error

	// Get retrieves a source by ID.
	Get(ctx context.Context, id string) (*domain.Source, error)

	// Delete removes a source record (not its documents).
	Delete(ctx context.Context, id string) error

	// List returns all known sources.
	List(ctx context.Context) ([]domain.Source, error)

	// IncrementCounters atomically adjusts doc_count/chunk_count for
	// a source, creating it if absent.
	IncrementCounters(ctx context.Context, sourceID string, docDelta, chunkDelta int) error
}
