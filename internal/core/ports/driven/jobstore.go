package driven

import (
	"context"

	"github.com/eywa-run/eywa/internal/core/domain"
)

// JobStore tracks async ingest jobs queued via the embedded API.
// Terminal jobs are retained for a bounded TTL and may be pruned by
// Prune.
type JobStore interface {
	Save(ctx context.Context, job domain.Job) error
	Get(ctx context.Context, id string) (*domain.Job, error)

	// Prune removes terminal jobs older than the store's configured
	// retention window.
	Prune(ctx context.Context) error
}
