package mcp

import (
	"github.com/eywa-run/eywa/internal/core/ports/driving"
)

// Ports aggregates the driving ports the MCP server exposes as tools
// and resources.
type Ports struct {
	// Search is required.
	Search driving.SearchService

	// Source is optional. When nil, the eywa://sources resource and the
	// list_sources and list_documents tools return empty results, while
	// the per-source documents resource, the document content resource
	// and the get_document tool report not found.
	Source driving.SourceService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}
