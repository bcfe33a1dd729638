// Package modelruntime implements driven.ModelRuntime on top of
// cgo/ggml, micro-batching Embed (32 texts per forward pass) and
// Rerank (16 candidates per pass) calls before they cross the cgo
// boundary, and resolving a DevicePreference to a concrete ggml.Device
// once at construction.
package modelruntime
