package normalisers

import (
	"context"
	"sort"
	"sync"

	"github.com/eywa-run/eywa/internal/core/domain"
	"github.com/eywa-run/eywa/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.NormaliserRegistry = (*Registry)(nil)

// Registry dispatches DocInputs to the highest-priority Normaliser
// registered for their MIME type.
type Registry struct {
	mu         sync.RWMutex
	byMIME     map[string][]driven.Normaliser
	mimeSorted map[string][]driven.Normaliser
}

// NewRegistry creates an empty normaliser registry.
func NewRegistry() *Registry {
	return &Registry{
		byMIME:     make(map[string][]driven.Normaliser),
		mimeSorted: make(map[string][]driven.Normaliser),
	}
}

// Register adds a normaliser for all of its declared MIME types. When
// more than one normaliser claims a MIME type, the one with the
// highest Priority is tried first.
func (r *Registry) Register(n driven.Normaliser) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, mime := range n.SupportedMIMETypes() {
		r.byMIME[mime] = append(r.byMIME[mime], n)
	}
	r.mimeSorted = nil
}

// SupportedMIMETypes returns every MIME type handled by at least one
// registered normaliser.
func (r *Registry) SupportedMIMETypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.byMIME))
	for mime := range r.byMIME {
		types = append(types, mime)
	}
	sort.Strings(types)
	return types
}

// Normalise selects the highest-priority normaliser registered for
// in.MIMEType and delegates to it.
func (r *Registry) Normalise(ctx context.Context, in domain.DocInput) (*domain.NormaliseResult, error) {
	normaliser, err := r.resolve(in.MIMEType)
	if err != nil {
		return nil, err
	}
	return normaliser.Normalise(ctx, in)
}

func (r *Registry) resolve(mime string) (driven.Normaliser, error) {
	r.mu.RLock()
	candidates, ok := r.mimeSorted[mime]
	r.mu.RUnlock()
	if ok {
		if len(candidates) == 0 {
			return nil, domain.ErrUnsupportedType
		}
		return candidates[0], nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.mimeSorted == nil {
		r.mimeSorted = make(map[string][]driven.Normaliser, len(r.byMIME))
	}

	raw := append([]driven.Normaliser(nil), r.byMIME[mime]...)
	sort.SliceStable(raw, func(i, j int) bool {
		return raw[i].Priority() > raw[j].Priority()
	})
	r.mimeSorted[mime] = raw

	if len(raw) == 0 {
		return nil, domain.ErrUnsupportedType
	}
	return raw[0], nil
}
