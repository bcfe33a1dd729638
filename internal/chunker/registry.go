package chunker

import (
	"path"
	"strings"

	"github.com/eywa-run/eywa/internal/core/domain"
	"github.com/eywa-run/eywa/internal/core/ports/driven"
)

var codeExtensions = map[string]bool{
	".go": true, ".py": true, ".js": true, ".ts": true, ".tsx": true,
	".jsx": true, ".rs": true, ".java": true, ".c": true, ".h": true,
	".cpp": true, ".hpp": true, ".cc": true, ".rb": true, ".php": true,
	".kt": true, ".swift": true, ".sh": true, ".sql": true,
}

// ForMIME selects a Chunker implementation for the given MIME hint
// and (for disambiguating source code) the document's URI extension.
func ForMIME(mimeHint, uri string, settings domain.ChunkingSettings) driven.Chunker {
	size, overlap := settings.ChunkSize, settings.Overlap

	switch {
	case strings.Contains(mimeHint, "markdown"):
		return NewMarkdownChunker(size, overlap)
	case mimeHint == "application/pdf":
		return NewPDFChunker(size, overlap)
	case codeExtensions[strings.ToLower(path.Ext(uri))]:
		return NewCodeChunker(size, overlap)
	default:
		return NewTextChunker(size, overlap)
	}
}
