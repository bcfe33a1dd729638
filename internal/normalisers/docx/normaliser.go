// Package docx extracts text from Word documents for ingest.
package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"io"
	"path/filepath"
	"strings"

	"github.com/eywa-run/eywa/internal/core/domain"
	"github.com/eywa-run/eywa/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles DOCX documents.
type Normaliser struct{}

// New creates a new DOCX normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	}
}

// Priority returns the selection priority: generic MIME normaliser.
func (n *Normaliser) Priority() int {
	return 50
}

// Normalise extracts text and a title from a DOCX archive.
func (n *Normaliser) Normalise(_ context.Context, in domain.DocInput) (*domain.NormaliseResult, error) {
	if len(in.Content) == 0 && in.Title == "" {
		return nil, domain.ErrInvalidInput
	}

	reader, err := zip.NewReader(bytes.NewReader(in.Content), int64(len(in.Content)))
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	content, err := extractDocumentText(reader)
	if err != nil {
		return nil, err
	}

	title := in.Title
	if title == "" {
		title = extractTitle(reader, in.URI)
	}

	return &domain.NormaliseResult{
		Title:   title,
		Content: content,
	}, nil
}

// extractDocumentText extracts text from word/document.xml.
func extractDocumentText(reader *zip.Reader) (string, error) {
	for _, file := range reader.File {
		if file.Name != "word/document.xml" {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return "", domain.ErrInvalidInput
		}

		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", domain.ErrInvalidInput
		}

		return parseDocumentXML(content), nil
	}
	return "", nil
}

// documentXML represents the structure of word/document.xml.
type documentXML struct {
	Body struct {
		Paragraphs []paragraph `xml:"p"`
	} `xml:"body"`
}

type paragraph struct {
	Runs []run `xml:"r"`
}

type run struct {
	Text []textElement `xml:"t"`
}

type textElement struct {
	Content string `xml:",chardata"`
}

// parseDocumentXML extracts text content from the document XML.
func parseDocumentXML(content []byte) string {
	var doc documentXML
	if err := xml.Unmarshal(content, &doc); err != nil {
		return ""
	}

	var result strings.Builder
	for i, para := range doc.Body.Paragraphs {
		if i > 0 {
			result.WriteString("\n")
		}
		for _, run := range para.Runs {
			for _, text := range run.Text {
				result.WriteString(text.Content)
			}
		}
	}

	return strings.TrimSpace(result.String())
}

// coreXML represents the structure of docProps/core.xml.
type coreXML struct {
	Title string `xml:"title"`
}

// extractTitle extracts the title from docProps/core.xml or falls back to filename.
func extractTitle(reader *zip.Reader, uri string) string {
	for _, file := range reader.File {
		if file.Name != "docProps/core.xml" {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			break
		}

		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			break
		}

		var core coreXML
		if err := xml.Unmarshal(content, &core); err == nil && core.Title != "" {
			return strings.TrimSpace(core.Title)
		}
		break
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
