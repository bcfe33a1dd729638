// Package mcp exposes eywa's search and source-management ports over
// the Model Context Protocol so AI assistants can query the local
// index directly.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")
