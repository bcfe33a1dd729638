package driven

import "context"

// ModelRuntime wraps the local bi-encoder (embedding) and
// cross-encoder (reranking) models. Implementations are expected to
// internally micro-batch calls to amortise inference cost.
type ModelRuntime interface {
	// Embed returns one L2-normalised vector per input text, in order.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// Rerank scores each candidate against query; higher is more
	// relevant. Returns one score per candidate, in order.
	Rerank(ctx context.Context, query string, candidates []string) ([]float32, error)

	// Dimension returns the embedding output size.
	Dimension() int

	Close() error
}
