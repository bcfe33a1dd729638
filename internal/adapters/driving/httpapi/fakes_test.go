package httpapi

import (
	"context"

	"github.com/eywa-run/eywa/internal/core/domain"
	"github.com/eywa-run/eywa/internal/core/ports/driving"
)

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

type fakeIngestService struct {
	report *driving.IngestReport
	jobID  string
	job    *domain.Job
	err    error
}

func (f *fakeIngestService) Ingest(_ context.Context, _ string, _ []domain.DocInput) (*driving.IngestReport, error) {
	return f.report, f.err
}

func (f *fakeIngestService) Queue(_ context.Context, _ string, _ []domain.DocInput) (string, error) {
	return f.jobID, f.err
}

func (f *fakeIngestService) JobStatus(_ context.Context, _ string) (*domain.Job, error) {
	return f.job, f.err
}

func (f *fakeIngestService) Cancel(_ context.Context, _ string) error {
	return f.err
}

type fakeEngineService struct {
	info *domain.EngineInfo
	err  error
}

func (f *fakeEngineService) EngineInfo(_ context.Context) (*domain.EngineInfo, error) {
	return f.info, f.err
}
