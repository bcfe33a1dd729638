// Package pdf extracts text from PDF documents for ingest.
package pdf

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/eywa-run/eywa/internal/core/domain"
	"github.com/eywa-run/eywa/internal/core/ports/driven"
)

// maxTitleLineLength bounds how long a first line may be before it is
// rejected as a title candidate (garbled PDF extraction often yields a
// very long first "line").
const maxTitleLineLength = 200

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles PDF documents, extracting text in-process via a
// pure-Go PDF reader.
type Normaliser struct{}

// New creates a new PDF normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"application/pdf"}
}

// Priority returns the selection priority: generic MIME normaliser.
func (n *Normaliser) Priority() int {
	return 50
}

// Normalise extracts plain text from a PDF document.
func (n *Normaliser) Normalise(_ context.Context, in domain.DocInput) (*domain.NormaliseResult, error) {
	if len(in.Content) == 0 && in.Title == "" {
		return nil, domain.ErrInvalidInput
	}

	content, err := extractText(in.Content)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	title := in.Title
	if title == "" {
		title = extractTitle(content, in.URI)
	}

	return &domain.NormaliseResult{
		Title:   title,
		Content: content,
	}, nil
}

// extractText reads all text from a PDF byte stream.
func extractText(data []byte) (string, error) {
	if len(data) == 0 {
		return "", nil
	}
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	plainReader, err := reader.GetPlainText()
	if err != nil {
		return "", err
	}
	out, err := io.ReadAll(plainReader)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// extractTitle picks the first non-empty, non-overlong line of
// extracted text as the title, falling back to the filename.
func extractTitle(content, uri string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || len(line) > maxTitleLineLength {
			continue
		}
		return line
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
