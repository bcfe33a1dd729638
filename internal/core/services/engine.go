package services

import (
	"context"
	"fmt"

	"github.com/eywa-run/eywa/internal/core/domain"
	"github.com/eywa-run/eywa/internal/core/ports/driven"
	"github.com/eywa-run/eywa/internal/core/ports/driving"
)

var _ driving.EngineService = (*EngineService)(nil)

// EngineService aggregates model configuration and corpus size into a
// single snapshot, drawing from the source store's per-source
// counters rather than scanning the content or vector stores
// directly.
type EngineService struct {
	runtime     driven.ModelRuntime
	sources     driven.SourceStore
	diagnostics driven.DiagnosticStore
	settings    domain.AppSettings
}

func NewEngineService(runtime driven.ModelRuntime, sources driven.SourceStore, diagnostics driven.DiagnosticStore, settings domain.AppSettings) *EngineService {
	return &EngineService{runtime: runtime, sources: sources, diagnostics: diagnostics, settings: settings}
}

func (s *EngineService) EngineInfo(ctx context.Context) (*domain.EngineInfo, error) {
	srcs, err := s.sources.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing sources: %w", err)
	}

	info := &domain.EngineInfo{
		EmbeddingModelID:    s.settings.Embedding.ID,
		EmbeddingRepoID:     s.settings.Embedding.RepoID,
		EmbeddingDimensions: s.runtime.Dimension(),
		RerankerModelID:     s.settings.Reranker.ID,
		RerankerRepoID:      s.settings.Reranker.RepoID,
		Device:              s.settings.Device,
		Sources:             len(srcs),
	}
	for _, src := range srcs {
		info.Documents += src.DocCount
		info.Chunks += src.ChunkCount
	}

	if s.diagnostics != nil {
		diags, err := s.diagnostics.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing diagnostics: %w", err)
		}
		info.Inconsistent = diags
	}

	return info, nil
}
