//go:build cgo

package xapian

/*
#cgo pkg-config: xapian-core
#cgo CXXFLAGS: -std=c++17

#include "xapian_wrapper.h"
#include <stdlib.h>
*/
import "C"

import (
	"context"
	"errors"
	"sync"
	"unsafe"
)

// Hit is a single BM25 match returned by Search.
type Hit struct {
	ChunkID string
	Score   float64
}

// bm25K1 and bm25B are the Okapi BM25 tuning constants applied to
// every opened database: k1 controls term-frequency saturation, b
// controls document-length normalisation. These are Xapian's own
// commonly recommended defaults, set explicitly rather than left to
// whatever the linked Xapian version defaults to.
const (
	bm25K1 = 1.2
	bm25B  = 0.75
)

// Engine provides full-text search using Xapian.
type Engine struct {
	mu   sync.RWMutex
	db   C.xapian_db
	path string
}

// New creates a new Xapian search engine.
func New(path string) (*Engine, error) {
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))

	db := C.xapian_open(cpath)
	if db == nil {
		errMsg := C.GoString(C.xapian_get_error())
		return nil, errors.New("xapian: failed to open database: " + errMsg)
	}

	if result := C.xapian_set_bm25(db, C.double(bm25K1), C.double(bm25B)); result != 0 {
		errMsg := C.GoString(C.xapian_get_error())
		C.xapian_close(db)
		return nil, errors.New("xapian: failed to set BM25 weighting: " + errMsg)
	}

	return &Engine{
		db:   db,
		path: path,
	}, nil
}

// Index adds or updates a chunk in the search index. body is the
// text to be tokenised and indexed; sourceID is additionally stored
// as an "XSOURCE:<id>" boolean term so Search can filter by source.
func (e *Engine) Index(_ context.Context, chunkID, docID, sourceID, body string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.db == nil {
		return errors.New("xapian: database is closed")
	}

	cChunkID := C.CString(chunkID)
	defer C.free(unsafe.Pointer(cChunkID))

	cDocID := C.CString(docID)
	defer C.free(unsafe.Pointer(cDocID))

	cContent := C.CString(body)
	defer C.free(unsafe.Pointer(cContent))

	cSourceTerm := C.CString("XSOURCE:" + sourceID)
	defer C.free(unsafe.Pointer(cSourceTerm))

	result := C.xapian_index(e.db, cChunkID, cDocID, cContent, cSourceTerm)
	if result != 0 {
		errMsg := C.GoString(C.xapian_get_error())
		return errors.New("xapian: failed to index chunk: " + errMsg)
	}

	return nil
}

// Delete removes a chunk from the search index.
func (e *Engine) Delete(_ context.Context, chunkID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.db == nil {
		return errors.New("xapian: database is closed")
	}

	cChunkID := C.CString(chunkID)
	defer C.free(unsafe.Pointer(cChunkID))

	result := C.xapian_delete(e.db, cChunkID)
	if result != 0 {
		errMsg := C.GoString(C.xapian_get_error())
		return errors.New("xapian: failed to delete chunk: " + errMsg)
	}

	return nil
}

// Search performs a BM25 keyword search, restricting matches to
// sourceFilter's "XSOURCE:<id>" boolean terms when non-empty.
func (e *Engine) Search(_ context.Context, query string, limit int, sourceFilter []string) ([]Hit, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.db == nil {
		return nil, errors.New("xapian: database is closed")
	}

	cQuery := C.CString(query)
	defer C.free(unsafe.Pointer(cQuery))

	cFilter := C.CString(sourceFilterTerms(sourceFilter))
	defer C.free(unsafe.Pointer(cFilter))

	results := C.xapian_search_filtered(e.db, cQuery, cFilter, C.int(limit))
	defer C.xapian_free_results(results)

	if results.results == nil {
		// Check if there was an error or just no results
		errMsg := C.GoString(C.xapian_get_error())
		if errMsg != "" {
			return nil, errors.New("xapian: search failed: " + errMsg)
		}
		return nil, nil // No results, but no error
	}

	// Convert C results to Go slice
	hits := make([]Hit, int(results.count))

	// Get slice of C results
	cResults := unsafe.Slice(results.results, int(results.count))

	for i := 0; i < int(results.count); i++ {
		hits[i] = Hit{
			ChunkID: C.GoString(cResults[i].chunk_id),
			Score:   float64(cResults[i].score),
		}
	}

	return hits, nil
}

// sourceFilterTerms joins XSOURCE boolean terms with a comma for the
// C wrapper to OR together; empty string means no restriction.
func sourceFilterTerms(sourceIDs []string) string {
	if len(sourceIDs) == 0 {
		return ""
	}
	joined := "XSOURCE:" + sourceIDs[0]
	for _, id := range sourceIDs[1:] {
		joined += ",XSOURCE:" + id
	}
	return joined
}

// Close releases resources.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.db != nil {
		C.xapian_close(e.db)
		e.db = nil
	}

	return nil
}
