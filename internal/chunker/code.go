package chunker

import (
	"path"
	"strings"

	"github.com/eywa-run/eywa/internal/core/domain"
)

// languageByExtension mirrors the broad extension table used for
// recognising source code during ingest, supplemented from the
// directory-walk ingester this project's design was distilled from.
var languageByExtension = map[string]string{
	".go": "Go", ".py": "Python", ".js": "JavaScript", ".ts": "TypeScript",
	".tsx": "TypeScript", ".jsx": "JavaScript", ".rs": "Rust", ".java": "Java",
	".c": "C", ".h": "C", ".cpp": "C++", ".hpp": "C++", ".cc": "C++",
	".rb": "Ruby", ".php": "PHP", ".kt": "Kotlin", ".swift": "Swift",
	".sh": "Shell", ".sql": "SQL", ".yaml": "YAML", ".yml": "YAML",
	".json": "JSON", ".toml": "TOML",
}

// CodeChunker splits source code preferentially at blank lines, then
// at line boundaries, never mid-line.
type CodeChunker struct {
	ChunkSize int
	Overlap   int
}

func NewCodeChunker(chunkSize, overlap int) *CodeChunker {
	return &CodeChunker{ChunkSize: chunkSize, Overlap: overlap}
}

func (c *CodeChunker) Chunk(doc domain.Document) ([]domain.Chunk, error) {
	windows := splitCodeWindows(doc.Content, c.ChunkSize, c.Overlap)
	lang := languageFor(doc.URI)
	title := doc.Title
	if lang != "" {
		title = title + " (" + lang + ")"
	}
	return buildChunks(windows, contextPrefix(title), nil), nil
}

func languageFor(uri string) string {
	return languageByExtension[strings.ToLower(path.Ext(uri))]
}

// splitCodeWindows is splitWindows with a preference for blank-line
// boundaries before falling back to any line boundary; it never cuts
// inside a line.
func splitCodeWindows(content string, size, overlap int) []window {
	if content == "" {
		return nil
	}
	if overlap >= size {
		overlap = size / 4
	}

	lines := strings.SplitAfter(content, "\n")
	var windows []window
	offset := 0
	curStart := 0
	curLen := 0
	lastBlankEnd := -1

	flush := func(end int) {
		if end <= curStart {
			return
		}
		windows = append(windows, window{Text: content[curStart:end], ByteOffset: curStart})
	}

	for _, line := range lines {
		lineLen := len(line)
		if curLen+lineLen > size && curLen > 0 {
			cut := offset
			if lastBlankEnd > curStart {
				cut = lastBlankEnd
			}
			flush(cut)
			next := cut - overlap
			if next < curStart {
				next = cut
			}
			curStart = next
			curLen = offset - curStart
			lastBlankEnd = -1
		}
		if strings.TrimSpace(line) == "" {
			lastBlankEnd = offset + lineLen
		}
		offset += lineLen
		curLen += lineLen
	}
	flush(len(content))

	return windows
}
