// Package html strips markup from HTML documents for ingest.
package html

import (
	"context"
	gohtml "html"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/eywa-run/eywa/internal/core/domain"
	"github.com/eywa-run/eywa/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles HTML documents.
type Normaliser struct{}

// New creates a new HTML normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"text/html", "application/xhtml+xml"}
}

// Priority returns the selection priority: generic MIME normaliser,
// higher than plaintext's fallback priority.
func (n *Normaliser) Priority() int {
	return 50
}

// Normalise strips HTML markup down to readable text and extracts the
// title from the <title> tag.
func (n *Normaliser) Normalise(_ context.Context, in domain.DocInput) (*domain.NormaliseResult, error) {
	if len(in.Content) == 0 && in.Title == "" {
		return nil, domain.ErrInvalidInput
	}

	rawContent := string(in.Content)
	title := in.Title
	if title == "" {
		title = extractHTMLTitle(rawContent, in.URI)
	}

	return &domain.NormaliseResult{
		Title:   title,
		Content: stripHTML(rawContent),
	}, nil
}

// Pre-compiled regular expressions for HTML parsing performance.
var (
	titleTag          = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)
	scriptTag         = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleTag          = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	noscriptTag       = regexp.MustCompile(`(?is)<noscript[^>]*>.*?</noscript>`)
	headTag           = regexp.MustCompile(`(?is)<head[^>]*>.*?</head>`)
	svgTag            = regexp.MustCompile(`(?is)<svg[^>]*>.*?</svg>`)
	htmlComments      = regexp.MustCompile(`(?s)<!--.*?-->`)
	blockElements     = regexp.MustCompile(`(?i)</(p|div|br|hr|h[1-6]|li|tr|blockquote|pre|table|section|article)>`)
	openBlockElements = regexp.MustCompile(`(?i)<(p|div|h[1-6]|li|tr|blockquote|pre|table|section|article)[^>]*>`)
	brTags            = regexp.MustCompile(`(?i)<br\s*/?>`)
	hrTags            = regexp.MustCompile(`(?i)<hr\s*/?>`)
	allTags           = regexp.MustCompile(`<[^>]+>`)
	multiSpaces       = regexp.MustCompile(`[ \t]+`)
	multiNewlines     = regexp.MustCompile(`\n{3,}`)
)

// extractHTMLTitle extracts a title from the HTML content or falls back to filename.
func extractHTMLTitle(content, uri string) string {
	matches := titleTag.FindStringSubmatch(content)
	if len(matches) > 1 {
		title := strings.TrimSpace(matches[1])
		title = gohtml.UnescapeString(title)
		if title != "" {
			return title
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

// stripHTML removes HTML tags and extracts readable text content.
func stripHTML(content string) string {
	content = scriptTag.ReplaceAllString(content, "")
	content = styleTag.ReplaceAllString(content, "")
	content = noscriptTag.ReplaceAllString(content, "")
	content = headTag.ReplaceAllString(content, "")
	content = svgTag.ReplaceAllString(content, "")
	content = htmlComments.ReplaceAllString(content, "")
	content = openBlockElements.ReplaceAllString(content, "\n")
	content = blockElements.ReplaceAllString(content, "\n")
	content = brTags.ReplaceAllString(content, "\n")
	content = hrTags.ReplaceAllString(content, "\n")
	content = allTags.ReplaceAllString(content, "")
	content = gohtml.UnescapeString(content)
	content = multiSpaces.ReplaceAllString(content, " ")
	content = multiNewlines.ReplaceAllString(content, "\n\n")

	lines := strings.Split(content, "\n")
	result := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			result = append(result, line)
		}
	}
	return strings.Join(result, "\n")
}
