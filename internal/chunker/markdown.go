package chunker

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/eywa-run/eywa/internal/core/domain"
)

// MarkdownChunker splits Markdown content at heading boundaries,
// tracking a section-path stack so each chunk carries the hierarchy
// of headings that precede it (e.g. ["Install", "Prerequisites"]).
type MarkdownChunker struct {
	ChunkSize int
	Overlap   int
}

func NewMarkdownChunker(chunkSize, overlap int) *MarkdownChunker {
	return &MarkdownChunker{ChunkSize: chunkSize, Overlap: overlap}
}

type mdHeading struct {
	level int
	title string
	start int
}

func (c *MarkdownChunker) Chunk(doc domain.Document) ([]domain.Chunk, error) {
	source := []byte(doc.Content)
	if len(source) == 0 {
		return nil, nil
	}

	headings := parseHeadings(source)
	if len(headings) == 0 {
		// No structure to key off; treat the whole document as one
		// section under the document title.
		windows := splitWindows(doc.Content, c.ChunkSize, c.Overlap)
		return buildChunks(windows, contextPrefix(doc.Title), nil), nil
	}

	var chunks []domain.Chunk
	var stack []mdHeading

	for i, h := range headings {
		end := len(source)
		if i+1 < len(headings) {
			end = headings[i+1].start
		}

		for len(stack) > 0 && stack[len(stack)-1].level >= h.level {
			stack = stack[:len(stack)-1]
		}
		stack = append(stack, h)

		path := make([]string, len(stack))
		for j, s := range stack {
			path[j] = s.title
		}

		// The first section also takes any text before the first
		// heading, so the chunks cover the whole document.
		start := h.start
		if i == 0 {
			start = 0
		}
		sectionText := string(source[start:end])
		windows := splitWindows(sectionText, c.ChunkSize, c.Overlap)
		for idx := range windows {
			windows[idx].ByteOffset += start
		}
		prefix := contextPrefix(doc.Title, strings.Join(path, " > "))
		chunks = append(chunks, buildChunks(windows, prefix, path)...)
	}

	return chunks, nil
}

// parseHeadings walks the Markdown AST and returns each heading's
// level, title text, and byte offset within source, in document
// order.
func parseHeadings(source []byte) []mdHeading {
	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(source))

	var headings []mdHeading
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || n.Kind() != ast.KindHeading {
			return ast.WalkContinue, nil
		}
		h := n.(*ast.Heading)
		lines := h.Lines()
		if lines.Len() == 0 {
			return ast.WalkContinue, nil
		}
		start := lines.At(0).Start
		headings = append(headings, mdHeading{
			level: h.Level,
			title: headingTitle(h, source),
			start: start,
		})
		return ast.WalkSkipChildren, nil
	})
	return headings
}

// headingTitle concatenates the raw text segments of a heading's
// inline children, skipping Markdown emphasis/link syntax.
func headingTitle(h *ast.Heading, source []byte) string {
	var sb strings.Builder
	for c := h.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			sb.Write(t.Segment.Value(source))
		} else if c.Type() == ast.TypeInline {
			sb.Write(inlineText(c, source))
		}
	}
	title := strings.TrimSpace(sb.String())
	if title == "" {
		title = "Untitled section"
	}
	return title
}

func inlineText(n ast.Node, source []byte) []byte {
	var out []byte
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			out = append(out, t.Segment.Value(source)...)
		} else {
			out = append(out, inlineText(c, source)...)
		}
	}
	return out
}
