// Package plaintext is the fallback normaliser for text-like MIME
// types with no dedicated handler.
package plaintext

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/eywa-run/eywa/internal/core/domain"
	"github.com/eywa-run/eywa/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles plain text and source code documents.
type Normaliser struct{}

// New creates a new plain text normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{
		"text/plain", "text/x-go", "text/x-python", "text/x-rust",
		"text/x-java", "text/x-c", "text/x-c++", "text/x-ruby",
		"text/x-shellscript", "text/x-sql", "text/csv", "text/yaml",
		"text/toml", "text/javascript", "text/jsx", "text/typescript",
		"text/typescript-jsx", "text/css", "application/json",
		"application/xml",
	}
}

// Priority returns the selection priority: fallback, tried last.
func (n *Normaliser) Priority() int {
	return 5
}

// Normalise passes raw bytes through as text, deriving a title from
// the URI when none is supplied.
func (n *Normaliser) Normalise(_ context.Context, in domain.DocInput) (*domain.NormaliseResult, error) {
	if len(in.Content) == 0 && in.Title == "" {
		return nil, domain.ErrInvalidInput
	}

	title := in.Title
	if title == "" {
		title = extractTitle(in.URI)
	}

	return &domain.NormaliseResult{
		Title:   title,
		Content: string(in.Content),
	}, nil
}

// extractTitle derives a human-readable title from a URI's filename.
func extractTitle(uri string) string {
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
