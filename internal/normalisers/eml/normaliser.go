// Package eml extracts text from RFC 822 email messages for ingest.
package eml

import (
	"bytes"
	"context"
	"io"
	"mime"
	"mime/multipart"
	"net/mail"
	"path/filepath"
	"strings"

	"github.com/eywa-run/eywa/internal/core/domain"
	"github.com/eywa-run/eywa/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles EML (email) documents.
type Normaliser struct{}

// New creates a new EML normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"message/rfc822"}
}

// Priority returns the selection priority: generic MIME normaliser.
func (n *Normaliser) Priority() int {
	return 50
}

// Normalise parses an RFC 822 message into searchable text, prefixing
// the body with From/To/Date/Subject headers.
func (n *Normaliser) Normalise(_ context.Context, in domain.DocInput) (*domain.NormaliseResult, error) {
	if len(in.Content) == 0 && in.Title == "" {
		return nil, domain.ErrInvalidInput
	}

	msg, err := mail.ReadMessage(bytes.NewReader(in.Content))
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	subject := decodeHeader(msg.Header.Get("Subject"))
	from := decodeHeader(msg.Header.Get("From"))
	to := decodeHeader(msg.Header.Get("To"))
	date := msg.Header.Get("Date")

	body, err := extractBody(msg)
	if err != nil {
		return nil, err
	}

	var content strings.Builder
	if from != "" {
		content.WriteString("From: ")
		content.WriteString(from)
		content.WriteString("\n")
	}
	if to != "" {
		content.WriteString("To: ")
		content.WriteString(to)
		content.WriteString("\n")
	}
	if date != "" {
		content.WriteString("Date: ")
		content.WriteString(date)
		content.WriteString("\n")
	}
	if subject != "" {
		content.WriteString("Subject: ")
		content.WriteString(subject)
		content.WriteString("\n")
	}
	content.WriteString("\n")
	content.WriteString(body)

	title := in.Title
	if title == "" {
		title = subject
	}
	if title == "" {
		title = extractTitleFromURI(in.URI)
	}

	return &domain.NormaliseResult{
		Title:   title,
		Content: strings.TrimSpace(content.String()),
	}, nil
}

// decodeHeader decodes RFC 2047 encoded headers.
func decodeHeader(header string) string {
	if header == "" {
		return ""
	}
	dec := new(mime.WordDecoder)
	decoded, err := dec.DecodeHeader(header)
	if err != nil {
		return header
	}
	return decoded
}

// extractBody extracts the text content from an email message.
func extractBody(msg *mail.Message) (string, error) {
	contentType := msg.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "text/plain"
	}

	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		body, readErr := io.ReadAll(msg.Body)
		if readErr != nil {
			return "", domain.ErrInvalidInput
		}
		return string(body), nil
	}

	if strings.HasPrefix(mediaType, "multipart/") {
		return extractMultipartBody(msg.Body, params["boundary"])
	}

	body, err := io.ReadAll(msg.Body)
	if err != nil {
		return "", domain.ErrInvalidInput
	}

	if mediaType == "text/html" {
		return stripHTMLTags(string(body)), nil
	}

	return string(body), nil
}

// extractMultipartBody extracts text from multipart messages.
func extractMultipartBody(r io.Reader, boundary string) (string, error) {
	if boundary == "" {
		return "", nil
	}

	mr := multipart.NewReader(r, boundary)
	var textParts []string
	var htmlParts []string

	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			break
		}

		partContentType := part.Header.Get("Content-Type")
		mediaType, params, parseErr := mime.ParseMediaType(partContentType)
		if parseErr != nil {
			mediaType = "application/octet-stream"
		}

		content, readErr := io.ReadAll(part)
		part.Close()
		if readErr != nil {
			continue
		}

		switch {
		case mediaType == "text/plain":
			textParts = append(textParts, string(content))
		case mediaType == "text/html":
			htmlParts = append(htmlParts, stripHTMLTags(string(content)))
		case strings.HasPrefix(mediaType, "multipart/"):
			nested, nestedErr := extractMultipartBody(bytes.NewReader(content), params["boundary"])
			if nestedErr == nil && nested != "" {
				textParts = append(textParts, nested)
			}
		}
	}

	if len(textParts) > 0 {
		return strings.Join(textParts, "\n"), nil
	}
	if len(htmlParts) > 0 {
		return strings.Join(htmlParts, "\n"), nil
	}

	return "", nil
}

// stripHTMLTags removes HTML tags for basic text extraction.
func stripHTMLTags(html string) string {
	var result strings.Builder
	inTag := false

	for _, r := range html {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			result.WriteRune(r)
		}
	}

	text := result.String()
	lines := strings.Split(text, "\n")
	var cleaned []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}

	return strings.Join(cleaned, "\n")
}

// extractTitleFromURI extracts a title from the file URI.
func extractTitleFromURI(uri string) string {
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
