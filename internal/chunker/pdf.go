package chunker

import "github.com/eywa-run/eywa/internal/core/domain"

// PDFChunker delegates to TextChunker after the PDF normaliser
// (internal/normalisers/pdf) has already converted the document to
// plain text; it exists only so ForMIME routes "application/pdf" to
// the correct window policy.
type PDFChunker struct {
	inner *TextChunker
}

func NewPDFChunker(chunkSize, overlap int) *PDFChunker {
	return &PDFChunker{inner: NewTextChunker(chunkSize, overlap)}
}

func (c *PDFChunker) Chunk(doc domain.Document) ([]domain.Chunk, error) {
	return c.inner.Chunk(doc)
}
