//go:build !cgo

package xapian

import (
	"context"

	"github.com/eywa-run/eywa/internal/core/domain"
)

// Hit is a single BM25 match returned by Search.
type Hit struct {
	ChunkID string
	Score   float64
}

// Engine provides full-text search using Xapian.
// This is a stub for builds without CGO.
type Engine struct {
	path string
}

// New creates a new Xapian search engine.
func New(path string) (*Engine, error) {
	return &Engine{
		path: path,
	}, nil
}

// Index adds or updates a chunk in the search index.
func (e *Engine) Index(_ context.Context, _, _, _, _ string) error {
	return domain.ErrNotImplemented
}

// Delete removes a chunk from the search index.
func (e *Engine) Delete(_ context.Context, _ string) error {
	return domain.ErrNotImplemented
}

// Search performs a BM25 keyword search.
func (e *Engine) Search(_ context.Context, _ string, _ int, _ []string) ([]Hit, error) {
	return nil, domain.ErrNotImplemented
}

// Close releases resources.
func (e *Engine) Close() error {
	return nil
}
