package modelruntime

import (
	"context"
	"fmt"

	"github.com/eywa-run/eywa/cgo/ggml"
	"github.com/eywa-run/eywa/internal/core/domain"
	"github.com/eywa-run/eywa/internal/core/ports/driven"
)

const (
	embedBatchSize  = 32
	rerankBatchSize = 16
)

// Runtime implements driven.ModelRuntime on top of a ggml.Engine.
type Runtime struct {
	engine *ggml.Engine
}

var _ driven.ModelRuntime = (*Runtime)(nil)

// New loads the embedding and reranker models described by settings
// onto the resolved device.
func New(embeddingModelPath, rerankerModelPath string, device domain.DevicePreference) (*Runtime, error) {
	engine, err := ggml.New(embeddingModelPath, rerankerModelPath, resolveDevice(device))
	if err != nil {
		return nil, fmt.Errorf("loading model runtime: %w", err)
	}
	return &Runtime{engine: engine}, nil
}

// resolveDevice maps the immutable startup preference to a concrete
// ggml device. DeviceAuto is forwarded as-is: the ggml wrapper owns
// the actual Metal/CUDA/CPU probing, since only it knows which
// backends were compiled in.
func resolveDevice(pref domain.DevicePreference) ggml.Device {
	switch pref {
	case domain.DeviceMetal:
		return ggml.DeviceMetal
	case domain.DeviceCUDA:
		return ggml.DeviceCUDA
	case domain.DeviceCPU:
		return ggml.DeviceCPU
	case domain.DeviceAuto:
		return ggml.DeviceAuto
	default:
		return ggml.DeviceAuto
	}
}

func (r *Runtime) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += embedBatchSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		end := start + embedBatchSize
		if end > len(texts) {
			end = len(texts)
		}
		batch, err := r.engine.EmbedBatch(texts[start:end])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInferenceFailed, err)
		}
		vectors = append(vectors, batch...)
	}
	return vectors, nil
}

func (r *Runtime) Rerank(ctx context.Context, query string, candidates []string) ([]float32, error) {
	scores := make([]float32, 0, len(candidates))
	for start := 0; start < len(candidates); start += rerankBatchSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		end := start + rerankBatchSize
		if end > len(candidates) {
			end = len(candidates)
		}
		batch, err := r.engine.RerankBatch(query, candidates[start:end])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInferenceFailed, err)
		}
		scores = append(scores, batch...)
	}
	return scores, nil
}

func (r *Runtime) Dimension() int {
	return r.engine.Dimension()
}

func (r *Runtime) Close() error {
	return r.engine.Close()
}
