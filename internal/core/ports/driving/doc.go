// Package driving defines the embedded API surface external actors
// (CLI, MCP, HTTP) use to drive the retrieval engine. These are the
// "driving" ports in hexagonal architecture; implementations live in
// internal/core/services.
package driving
