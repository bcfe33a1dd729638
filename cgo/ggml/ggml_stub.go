//go:build !cgo

package ggml

import "github.com/eywa-run/eywa/internal/core/domain"

// Device selects the compute backend the wrapper initialises at load
// time.
type Device int

const (
	DeviceCPU Device = iota
	DeviceMetal
	DeviceCUDA
	DeviceAuto
)

// Engine is a stub for builds without CGO.
type Engine struct {
	dimension int
}

// New returns a stub engine for builds without CGO.
func New(_, _ string, _ Device) (*Engine, error) {
	return &Engine{}, nil
}

func (e *Engine) EmbedBatch(_ []string) ([][]float32, error) {
	return nil, domain.ErrNotImplemented
}

func (e *Engine) RerankBatch(_ string, _ []string) ([]float32, error) {
	return nil, domain.ErrNotImplemented
}

func (e *Engine) Dimension() int {
	return e.dimension
}

func (e *Engine) Close() error {
	return nil
}
