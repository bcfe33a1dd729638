// Package vector provides a driven.VectorStore implementation backed
// by cgo/hnsw.Index for approximate nearest-neighbour search plus a
// SQLite sidecar for the denormalised fields a VectorHit needs and for
// recording which embedding dimension the index was built with.
//
// # Write batching
//
// Upsert accumulates rows in memory and flushes them to the HNSW index
// and the sidecar table once the batch reaches flushBatchSize rows or
// flushIdleTimeout elapses with no further Upsert, whichever comes
// first. Query and Close always force a flush first so callers
// observe their own pending writes.
//
// # Source filtering
//
// Query overfetches overfetchFactor*k candidates from HNSW, joins them
// against the sidecar, discards rows outside sourceFilter, and
// truncates to k.
package vector
