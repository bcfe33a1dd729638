// Package hnsw provides CGO bindings for HNSWlib, wrapped by the
// vector storage adapter behind driven.VectorStore.
//
// Build requires:
//   - HNSWlib header (fetched via CMake FetchContent)
//   - C++17 compiler
package hnsw
