package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for eywa resources.
	uriScheme = "eywa://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "sources",
		Name:        "sources",
		Description: "List of all known sources",
		MIMEType:    "application/json",
	}, s.handleSourcesResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "sources/{sourceId}/documents",
		Name:        "source-documents",
		Description: "Documents indexed for a specific source",
		MIMEType:    "application/json",
	}, s.handleDocumentsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "documents/{documentId}",
		Name:        "document-content",
		Description: "Content of a specific document",
		MIMEType:    "text/plain",
	}, s.handleDocumentContentResource)
}

// handleSourcesResource returns a list of all known sources.
func (s *Server) handleSourcesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Source == nil {
		return jsonResource(req.Params.URI, "[]"), nil
	}

	sources, err := s.ports.Source.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing sources: %w", err)
	}

	type sourceInfo struct {
		ID         string `json:"id"`
		Name       string `json:"name"`
		DocCount   int    `json:"doc_count"`
		ChunkCount int    `json:"chunk_count"`
	}

	infos := make([]sourceInfo, len(sources))
	for i, src := range sources {
		infos[i] = sourceInfo{
			ID:         src.ID,
			Name:       src.DisplayName,
			DocCount:   src.DocCount,
			ChunkCount: src.ChunkCount,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling sources: %w", err)
	}

	return jsonResource(req.Params.URI, string(data)), nil
}

// handleDocumentsResource returns documents for a specific source.
func (s *Server) handleDocumentsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Source == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	sourceID := extractSourceID(req.Params.URI)
	if sourceID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	docs, err := s.ports.Source.ListDocuments(ctx, sourceID)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}

	type docInfo struct {
		ID    string `json:"id"`
		Title string `json:"title"`
		URI   string `json:"uri"`
	}

	infos := make([]docInfo, len(docs))
	for i := range docs {
		infos[i] = docInfo{
			ID:    docs[i].ID,
			Title: docs[i].Title,
			URI:   docs[i].URI,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling documents: %w", err)
	}

	return jsonResource(req.Params.URI, string(data)), nil
}

// handleDocumentContentResource returns the content of a specific document.
func (s *Server) handleDocumentContentResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Source == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	docID := extractDocumentID(req.Params.URI)
	if docID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	doc, err := s.ports.Source.GetDocument(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("getting document: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     doc.Content,
		}},
	}, nil
}

func jsonResource(uri, text string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     text,
		}},
	}
}

// extractSourceID extracts the source ID from a URI like eywa://sources/{sourceId}/documents.
func extractSourceID(uri string) string {
	const prefix = uriScheme + "sources/"
	const suffix = "/documents"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	uri = strings.TrimPrefix(uri, prefix)
	if !strings.HasSuffix(uri, suffix) {
		return ""
	}
	return strings.TrimSuffix(uri, suffix)
}

// extractDocumentID extracts the document ID from a URI like eywa://documents/{documentId}.
func extractDocumentID(uri string) string {
	const prefix = uriScheme + "documents/"
	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	return strings.TrimPrefix(uri, prefix)
}
