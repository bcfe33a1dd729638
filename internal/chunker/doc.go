// Package chunker splits a normalised Document into overlapping,
// contextually prefixed Chunks. Strategy selection is driven by the
// document's MIME hint, and for source code by the URI's extension:
// Markdown gets heading-aware splitting, code gets
// blank-line/line-boundary splitting, everything else falls back to
// paragraph-aware plain text splitting.
//
// Markdown, text and PDF use the window mechanics in window.go; code
// uses its own line-based splitter in code.go. Every strategy's
// windows cover the document without gaps, and the ingest pipeline
// assigns ordinals in chunk order.
package chunker
