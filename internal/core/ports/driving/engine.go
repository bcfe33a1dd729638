package driving

import (
	"context"

	"github.com/eywa-run/eywa/internal/core/domain"
)

// EngineService reports on the running engine itself: which models it
// loaded, which device they run on, and how large the indexed corpus
// has grown. It is the backing service for the CLI "info" command and
// the HTTP health endpoint.
type EngineService interface {
	EngineInfo(ctx context.Context) (*domain.EngineInfo, error)
}
