package mcp

import (
	"context"

	"github.com/eywa-run/eywa/internal/core/domain"
)

// fakeSearchService is a fake implementation of driving.SearchService.
type fakeSearchService struct {
	results []domain.SearchResult
	err     error
}

func (f *fakeSearchService) Search(_ context.Context, _ string, _ domain.SearchOptions) ([]domain.SearchResult, error) {
	return f.results, f.err
}

func (f *fakeSearchService) Similar(_ context.Context, _ string, _ int) ([]domain.SearchResult, error) {
	return f.results, f.err
}

// fakeSourceService is a fake implementation of driving.SourceService.
type fakeSourceService struct {
	sources []domain.Source
	source  *domain.Source
	docs    []domain.Document
	doc     *domain.Document
	err     error
}

func (f *fakeSourceService) List(_ context.Context) ([]domain.Source, error) {
	return f.sources, f.err
}

func (f *fakeSourceService) Get(_ context.Context, _ string) (*domain.Source, error) {
	return f.source, f.err
}

func (f *fakeSourceService) ListDocuments(_ context.Context, _ string) ([]domain.Document, error) {
	return f.docs, f.err
}

func (f *fakeSourceService) GetDocument(_ context.Context, _ string) (*domain.Document, error) {
	return f.doc, f.err
}

func (f *fakeSourceService) DeleteDocument(_ context.Context, _ string) error {
	return f.err
}

func (f *fakeSourceService) DeleteSource(_ context.Context, _ string) error {
	return f.err
}

func (f *fakeSourceService) Reset(_ context.Context) error {
	return f.err
}
