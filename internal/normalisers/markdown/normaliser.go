// Package markdown normalises Markdown documents for ingest.
package markdown

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/eywa-run/eywa/internal/core/domain"
	"github.com/eywa-run/eywa/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles Markdown documents. Content is passed through
// with only leading and trailing whitespace trimmed (the chunker parses
// the Markdown AST directly for heading-aware splitting); the title is
// extracted here.
type Normaliser struct{}

// New creates a new Markdown normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"text/markdown", "text/x-markdown"}
}

// Priority returns the selection priority: generic MIME normaliser,
// higher than plaintext's fallback priority.
func (n *Normaliser) Priority() int {
	return 50
}

// Normalise extracts a title and trims the document, leaving Markdown
// syntax intact.
func (n *Normaliser) Normalise(_ context.Context, in domain.DocInput) (*domain.NormaliseResult, error) {
	if len(in.Content) == 0 && in.Title == "" {
		return nil, domain.ErrInvalidInput
	}

	content := strings.TrimSpace(string(in.Content))
	title := in.Title
	if title == "" {
		title = extractMarkdownTitle(content, in.URI)
	}

	return &domain.NormaliseResult{
		Title:   title,
		Content: content,
	}, nil
}

// extractMarkdownTitle extracts a title from the first H1 heading or
// falls back to the filename.
func extractMarkdownTitle(content, uri string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "#"))
		}
	}

	filename := filepath.Base(uri)
	ext := filepath.Ext(filename)
	if ext != "" {
		filename = strings.TrimSuffix(filename, ext)
	}
	filename = strings.ReplaceAll(filename, "_", " ")
	filename = strings.ReplaceAll(filename, "-", " ")
	if filename == "" || filename == "." {
		return "Untitled"
	}
	return filename
}
