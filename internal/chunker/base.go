package chunker

import (
	"strings"

	"github.com/eywa-run/eywa/internal/core/domain"
)

// buildChunks turns windows into domain.Chunk values with Body set to
// prefix + Text. Ordinal, ID, DocumentID and SourceID are left at
// their zero value for the ingest pipeline to fill in.
func buildChunks(windows []window, prefix string, sectionPath []string) []domain.Chunk {
	chunks := make([]domain.Chunk, 0, len(windows))
	for _, w := range windows {
		body := w.Text
		if prefix != "" {
			body = prefix + w.Text
		}
		chunks = append(chunks, domain.Chunk{
			Text:        w.Text,
			Body:        body,
			ByteOffset:  w.ByteOffset,
			ByteLen:     len(w.Text),
			SectionPath: sectionPath,
		})
	}
	return chunks
}

func contextPrefix(parts ...string) string {
	var nonEmpty []string
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	if len(nonEmpty) == 0 {
		return ""
	}
	return strings.Join(nonEmpty, " > ") + "\n\n"
}
