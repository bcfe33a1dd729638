package driven

import (
	"context"

	"github.com/eywa-run/eywa/internal/core/domain"
)

// DiagnosticStore records documents that ended up in an inconsistent
// state after a partial ingest commit (e.g. the vector store accepted
// a write but the lexical store rejected it), so operators can find
// and re-ingest them without combing through logs.
type DiagnosticStore interface {
	// Record persists an InconsistentDoc diagnostic.
	Record(ctx context.Context, diag domain.InconsistentDoc) error

	// List returns all recorded diagnostics, most recent first.
	List(ctx context.Context) ([]domain.InconsistentDoc, error)
}
