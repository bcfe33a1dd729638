package normalisers

import (
	"github.com/eywa-run/eywa/internal/normalisers/docx"
	"github.com/eywa-run/eywa/internal/normalisers/eml"
	"github.com/eywa-run/eywa/internal/normalisers/html"
	"github.com/eywa-run/eywa/internal/normalisers/markdown"
	"github.com/eywa-run/eywa/internal/normalisers/pdf"
	"github.com/eywa-run/eywa/internal/normalisers/plaintext"
)

// DefaultRegistry builds a Registry with the normalisers shipped by
// this module registered.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(markdown.New())
	r.Register(html.New())
	r.Register(docx.New())
	r.Register(eml.New())
	r.Register(pdf.New())
	r.Register(plaintext.New())
	return r
}
