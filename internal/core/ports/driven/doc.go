// Package driven defines the interfaces core services call OUT to
// infrastructure: persistence, the vector/lexical indexes, and the
// local model runtime.
//
// These are the "driven" or "secondary" ports in hexagonal
// architecture. Core services depend on these interfaces;
// infrastructure adapters under internal/adapters/driven and
// internal/chunker implement them.
//
// # Required Interfaces
//
//   - ContentStore: compressed document content + metadata persistence
//   - VectorStore: dense ANN index over chunk embeddings
//   - LexicalStore: BM25 full-text index over chunk bodies
//   - ModelRuntime: on-device embedding + reranking
//   - SourceStore: source registry with document/chunk counters
//   - JobStore: async ingest job tracking
//   - Normaliser / NormaliserRegistry: raw bytes to normalised text
//   - Chunker: normalised text to overlapping chunks
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: any adapter package
package driven
