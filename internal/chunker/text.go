package chunker

import "github.com/eywa-run/eywa/internal/core/domain"

// TextChunker paragraph-aware-splits plain text; it is the fallback
// strategy for any MIME hint with no dedicated strategy.
type TextChunker struct {
	ChunkSize int
	Overlap   int
}

func NewTextChunker(chunkSize, overlap int) *TextChunker {
	return &TextChunker{ChunkSize: chunkSize, Overlap: overlap}
}

func (c *TextChunker) Chunk(doc domain.Document) ([]domain.Chunk, error) {
	windows := splitWindows(doc.Content, c.ChunkSize, c.Overlap)
	prefix := contextPrefix(doc.Title)
	return buildChunks(windows, prefix, nil), nil
}
