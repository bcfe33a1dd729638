package driven

import (
	"context"

	"github.com/eywa-run/eywa/internal/core/domain"
)

// Normaliser transforms a DocInput's raw bytes into normalised plain
// text. Each normaliser handles a specific set of MIME types (e.g.
// Markdown, PDF, plaintext).
type Normaliser interface {
	// SupportedMIMETypes returns the MIME types this normaliser
	// handles.
	SupportedMIMETypes() []string

	// Priority is the selection priority when more than one
	// normaliser claims a MIME type (higher wins).
	Priority() int

	// Normalise produces the document title and normalised content.
	Normalise(ctx context.Context, in domain.DocInput) (*domain.NormaliseResult, error)
}

// NormaliserRegistry selects the best-matching Normaliser for a
// DocInput's MIME type.
type NormaliserRegistry interface {
	Normalise(ctx context.Context, in domain.DocInput) (*domain.NormaliseResult, error)
	Register(n Normaliser)
	SupportedMIMETypes() []string
}
