//go:build cgo

package ggml

/*
#cgo CXXFLAGS: -std=c++17 -O3 -I${SRCDIR}/../../clib/build/_deps/ggml-src/include
#cgo LDFLAGS: -lstdc++

#include "ggml_wrapper.h"
#include <stdlib.h>
*/
import "C"

import (
	"errors"
	"sync"
	"unsafe"
)

// Device selects the compute backend the wrapper initialises at load
// time.
type Device int

const (
	DeviceCPU Device = iota
	DeviceMetal
	DeviceCUDA
	// DeviceAuto probes Metal, then CUDA, then falls back to CPU. Only
	// this package knows which backends were actually compiled in, so
	// the probing happens here rather than in the caller.
	DeviceAuto
)

// autoProbeOrder is the sequence New tries under DeviceAuto, most
// capable first.
var autoProbeOrder = []Device{DeviceMetal, DeviceCUDA, DeviceCPU}

// Engine hosts a bi-encoder and cross-encoder model pair loaded from
// local GGUF weights.
type Engine struct {
	mu        sync.RWMutex
	handle    *C.GgmlRuntime
	dimension int
}

// New loads the embedding model at embeddingPath and the reranker
// model at rerankerPath onto device. DeviceAuto tries each compiled-in
// backend in order and falls back to the next on failure, settling on
// CPU if nothing else opens.
func New(embeddingPath, rerankerPath string, device Device) (*Engine, error) {
	if device != DeviceAuto {
		return open(embeddingPath, rerankerPath, device)
	}

	var lastErr error
	for _, d := range autoProbeOrder {
		engine, err := open(embeddingPath, rerankerPath, d)
		if err == nil {
			return engine, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

func open(embeddingPath, rerankerPath string, device Device) (*Engine, error) {
	cEmbed := C.CString(embeddingPath)
	defer C.free(unsafe.Pointer(cEmbed))
	cRerank := C.CString(rerankerPath)
	defer C.free(unsafe.Pointer(cRerank))

	handle := C.ggml_runtime_open(cEmbed, cRerank, C.GgmlDevice(device))
	if handle == nil {
		errMsg := C.GoString(C.ggml_get_error())
		return nil, errors.New("ggml: failed to open runtime: " + errMsg)
	}

	return &Engine{
		handle:    handle,
		dimension: int(C.ggml_runtime_dimension(handle)),
	}, nil
}

// EmbedBatch returns one L2-normalised vector per text, in order.
// Callers are responsible for micro-batching; this call is a single
// forward pass over all of texts.
func (e *Engine) EmbedBatch(texts []string) ([][]float32, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.handle == nil {
		return nil, errors.New("ggml: runtime is closed")
	}
	if len(texts) == 0 {
		return nil, nil
	}

	cTexts := make([]*C.char, len(texts))
	for i, text := range texts {
		cTexts[i] = C.CString(text)
	}
	defer func() {
		for _, ct := range cTexts {
			C.free(unsafe.Pointer(ct))
		}
	}()

	var out *C.float
	result := C.ggml_embed_batch(e.handle, &cTexts[0], C.int(len(texts)), &out)
	if result != 0 {
		errMsg := C.GoString(C.ggml_get_error())
		return nil, errors.New("ggml: embed failed: " + errMsg)
	}
	defer C.ggml_free_floats(out)

	flat := unsafe.Slice((*float32)(unsafe.Pointer(out)), len(texts)*e.dimension)
	vectors := make([][]float32, len(texts))
	for i := range texts {
		vec := make([]float32, e.dimension)
		copy(vec, flat[i*e.dimension:(i+1)*e.dimension])
		vectors[i] = vec
	}
	return vectors, nil
}

// RerankBatch scores each candidate against query; higher is more
// relevant.
func (e *Engine) RerankBatch(query string, candidates []string) ([]float32, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.handle == nil {
		return nil, errors.New("ggml: runtime is closed")
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	cQuery := C.CString(query)
	defer C.free(unsafe.Pointer(cQuery))

	cCandidates := make([]*C.char, len(candidates))
	for i, c := range candidates {
		cCandidates[i] = C.CString(c)
	}
	defer func() {
		for _, cc := range cCandidates {
			C.free(unsafe.Pointer(cc))
		}
	}()

	var out *C.float
	result := C.ggml_rerank_batch(e.handle, cQuery, &cCandidates[0], C.int(len(candidates)), &out)
	if result != 0 {
		errMsg := C.GoString(C.ggml_get_error())
		return nil, errors.New("ggml: rerank failed: " + errMsg)
	}
	defer C.ggml_free_floats(out)

	scores := make([]float32, len(candidates))
	copy(scores, unsafe.Slice((*float32)(unsafe.Pointer(out)), len(candidates)))
	return scores, nil
}

// Dimension returns the embedding model's output size.
func (e *Engine) Dimension() int {
	return e.dimension
}

// Close releases the loaded models.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.handle != nil {
		C.ggml_runtime_close(e.handle)
		e.handle = nil
	}
	return nil
}
