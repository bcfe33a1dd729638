// Package xapian provides CGO bindings for the Xapian search engine,
// wrapped by the lexical storage adapter behind driven.LexicalStore.
//
// Build requires:
//   - Xapian development libraries (xapian-core)
//   - Install via: brew install xapian (macOS) or apt install libxapian-dev (Linux)
package xapian
