package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available
	// (returned by cgo stub builds).
	ErrNotImplemented = errors.New("not implemented")

	// ErrUnsupportedType indicates an unrecognised MIME type with no
	// matching normaliser or chunker.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrModelMismatch indicates a store was opened with a different
	// embedding model (or dimension) than the one it was built with.
	ErrModelMismatch = errors.New("embedding model mismatch")

	// ErrInferenceFailed indicates the model runtime failed to embed
	// or rerank a batch.
	ErrInferenceFailed = errors.New("inference failed")

	// ErrStorage indicates a content, vector, or lexical store
	// operation failed at the storage layer.
	ErrStorage = errors.New("storage error")

	// ErrCancelled indicates the operation's context was cancelled.
	ErrCancelled = errors.New("cancelled")

	// ErrBusy indicates the ingest queue is at capacity.
	ErrBusy = errors.New("busy")

	// ErrInconsistent indicates a document committed to some but not
	// all of the content/vector/lexical stores.
	ErrInconsistent = errors.New("inconsistent state")

	// ErrInternal indicates an unexpected internal failure.
	ErrInternal = errors.New("internal error")
)
