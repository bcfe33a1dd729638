// Package lexical provides a driven.LexicalStore implementation backed
// by cgo/xapian.Engine for BM25 postings plus a SQLite sidecar table
// for the denormalised fields a LexicalHit needs to render without a
// second round-trip to the content store.
//
// # Source filtering
//
// Every indexed chunk additionally carries an "XSOURCE:<id>" boolean
// term; Search joins multiple source IDs into a comma-separated filter
// the underlying wrapper ORs together.
//
// # Data Location
//
// The Xapian database lives under its own directory (by default
// ~/.eywa/data/lexical); the sidecar shares the SQLite connection
// passed in at construction.
package lexical
