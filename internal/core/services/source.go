package services

import (
	"context"

	"github.com/eywa-run/eywa/internal/core/domain"
	"github.com/eywa-run/eywa/internal/core/ports/driven"
	"github.com/eywa-run/eywa/internal/core/ports/driving"
	"github.com/eywa-run/eywa/internal/logger"
)

// Ensure SourceService implements the interface.
var _ driving.SourceService = (*SourceService)(nil)

// SourceService manages the source registry and document lookup,
// keeping the content, vector and lexical stores consistent on
// delete/reset.
type SourceService struct {
	content driven.ContentStore
	vectors driven.VectorStore
	lexical driven.LexicalStore
	sources driven.SourceStore
}

// NewSourceService wires a SourceService from its driven dependencies.
func NewSourceService(
	content driven.ContentStore,
	vectors driven.VectorStore,
	lexical driven.LexicalStore,
	sources driven.SourceStore,
) *SourceService {
	return &SourceService{
		content: content,
		vectors: vectors,
		lexical: lexical,
		sources: sources,
	}
}

// List returns all known sources.
func (s *SourceService) List(ctx context.Context) ([]domain.Source, error) {
	return s.sources.List(ctx)
}

// Get retrieves a source by ID.
func (s *SourceService) Get(ctx context.Context, id string) (*domain.Source, error) {
	return s.sources.Get(ctx, id)
}

// ListDocuments returns document metadata for a source.
func (s *SourceService) ListDocuments(ctx context.Context, sourceID string) ([]domain.Document, error) {
	return s.content.List(ctx, sourceID)
}

// GetDocument retrieves a document's metadata and content.
func (s *SourceService) GetDocument(ctx context.Context, docID string) (*domain.Document, error) {
	return s.content.Get(ctx, docID)
}

// DeleteDocument removes a document and its chunks from all three
// stores, decrementing the owning source's counters.
func (s *SourceService) DeleteDocument(ctx context.Context, docID string) error {
	doc, err := s.content.Get(ctx, docID)
	if err != nil {
		return err
	}

	chunks, err := s.content.GetChunks(ctx, docID)
	if err != nil {
		return err
	}

	if err := s.vectors.DeleteByDoc(ctx, docID); err != nil {
		return err
	}
	if err := s.lexical.DeleteByDoc(ctx, docID); err != nil {
		return err
	}
	if err := s.content.DeleteChunks(ctx, docID); err != nil {
		return err
	}
	if err := s.content.Delete(ctx, docID); err != nil {
		return err
	}

	logger.InfoFields("document deleted", logger.Fields{
		"operation": "delete_document",
		"doc_id":    docID,
		"source_id": doc.SourceID,
		"chunks":    len(chunks),
	})

	return s.sources.IncrementCounters(ctx, doc.SourceID, -1, -len(chunks))
}

// DeleteSource removes a source and every document/chunk it owns.
func (s *SourceService) DeleteSource(ctx context.Context, sourceID string) error {
	docs, err := s.content.List(ctx, sourceID)
	if err != nil {
		return err
	}

	for _, doc := range docs {
		if err := s.vectors.DeleteByDoc(ctx, doc.ID); err != nil {
			return err
		}
		if err := s.content.DeleteChunks(ctx, doc.ID); err != nil {
			return err
		}
		if err := s.content.Delete(ctx, doc.ID); err != nil {
			return err
		}
	}

	if err := s.lexical.DeleteBySource(ctx, sourceID); err != nil {
		return err
	}
	if err := s.vectors.DeleteBySource(ctx, sourceID); err != nil {
		return err
	}

	logger.InfoFields("source deleted", logger.Fields{
		"operation": "delete_source",
		"source_id": sourceID,
		"documents": len(docs),
	})

	return s.sources.Delete(ctx, sourceID)
}

// Reset wipes all sources, documents and indexes.
func (s *SourceService) Reset(ctx context.Context) error {
	sources, err := s.sources.List(ctx)
	if err != nil {
		return err
	}
	for _, src := range sources {
		if err := s.DeleteSource(ctx, src.ID); err != nil {
			return err
		}
	}
	logger.WarnFields("engine reset: all sources removed", logger.Fields{
		"operation": "reset",
		"sources":   len(sources),
	})
	return nil
}
