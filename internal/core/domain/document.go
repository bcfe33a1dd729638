package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Document is the canonical representation of an ingested file after
// normalisation: full text content plus the metadata needed to
// reconstruct it and to compute its content-addressed identity.
type Document struct {
	// ID is derived deterministically from SourceID, Title and Content
	// (see ComputeDocumentID). Re-ingesting identical content yields the
	// same ID.
	ID string

	// SourceID links to the Source that produced this document.
	SourceID string

	// URI is the original location (file path, URL, etc).
	URI string

	// Title is the human-readable title, extracted by the normaliser
	// or derived from the URI.
	Title string

	// Content is the full normalised text, before chunking.
	Content string

	// ContentSHA256 is the hex-encoded SHA-256 of Content, used to
	// detect unchanged documents on re-ingest without a full diff.
	ContentSHA256 string

	// MIMEHint is the content type used to select a chunking strategy.
	MIMEHint string

	// ByteLen is len(Content) in bytes.
	ByteLen int

	// CreatedAt is when the document was first indexed.
	CreatedAt time.Time

	// UpdatedAt is when the document was last (re-)indexed.
	UpdatedAt time.Time
}

// ComputeDocumentID returns the content-addressed document ID: the
// first 16 bytes of sha256(sourceID + 0x00 + title + 0x00 + content),
// hex-encoded to a 32-character string.
func ComputeDocumentID(sourceID, title, content string) string {
	h := sha256.New()
	h.Write([]byte(sourceID))
	h.Write([]byte{0})
	h.Write([]byte(title))
	h.Write([]byte{0})
	h.Write([]byte(content))
	sum := h.Sum(nil)
	return hex.EncodeToString(sum[:16])
}

// ComputeContentSHA256 returns the hex-encoded SHA-256 of content.
func ComputeContentSHA256(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

// Chunk is a searchable unit within a Document. Documents are split
// into overlapping chunks so that search results can point at a
// specific passage rather than an entire file.
type Chunk struct {
	// ID is DocumentID + ":" + Ordinal.
	ID string

	// DocumentID links to the parent Document.
	DocumentID string

	// SourceID duplicates Document.SourceID so source-filtered queries
	// don't need a join.
	SourceID string

	// Ordinal is the zero-based position of this chunk within the
	// document's chunk sequence; chunk IDs and ordering are stable
	// across re-ingests of unchanged content.
	Ordinal int

	// Text is the raw excerpt of Document.Content this chunk covers,
	// with no contextual prefix added.
	Text string

	// Body is what gets embedded and indexed: the contextual prefix
	// (title / section path) followed by Text.
	Body string

	// ByteOffset and ByteLen locate Text within Document.Content.
	ByteOffset int
	ByteLen    int

	// SectionPath is the heading hierarchy leading to this chunk, for
	// Markdown and similar structured formats. Empty for flat text.
	SectionPath []string
}

// ComputeChunkID returns documentID + ":" + ordinal.
func ComputeChunkID(documentID string, ordinal int) string {
	return fmt.Sprintf("%s:%d", documentID, ordinal)
}
