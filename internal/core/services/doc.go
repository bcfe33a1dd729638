// Package services implements the driving port interfaces: ingest,
// search and source/job management. Services contain the core
// business logic and orchestrate calls to driven ports (adapters).
//
// Services are pure Go; all cgo boundaries live behind the driven
// ports they call.
package services
