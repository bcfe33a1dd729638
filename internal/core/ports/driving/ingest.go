package driving

import (
	"context"

	"github.com/eywa-run/eywa/internal/core/domain"
)

// IngestReport summarises the outcome of a synchronous ingest call.
type IngestReport struct {
	Ingested     int
	Deduplicated int
	Failed       int
	Errors       map[string]string // URI -> error message
}

// IngestService ingests caller-supplied documents: chunk, embed,
// commit to all three stores, and update source counters.
type IngestService interface {
	// Ingest processes docs synchronously and returns once every
	// document has been committed or has failed.
	Ingest(ctx context.Context, sourceID string, docs []domain.DocInput) (*IngestReport, error)

	// Queue enqueues docs for asynchronous processing and returns a
	// job ID immediately. Returns ErrBusy if the ingest queue is at
	// capacity.
	Queue(ctx context.Context, sourceID string, docs []domain.DocInput) (string, error)

	// JobStatus returns the current state of a queued job.
	JobStatus(ctx context.Context, jobID string) (*domain.Job, error)

	// Cancel requests cooperative cancellation of a queued or running
	// job. Cancellation is checked between documents, so the document
	// in flight when Cancel is called still completes.
	Cancel(ctx context.Context, jobID string) error
}
