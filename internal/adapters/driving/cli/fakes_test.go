package cli

import (
	"context"
	"errors"

	"github.com/eywa-run/eywa/internal/core/domain"
	"github.com/eywa-run/eywa/internal/core/ports/driving"
)

// fakeSearchService is a stand-in driving.SearchService for CLI tests.
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

var errFakeService = errors.New("fake service error")

var domainSourceFixture = domain.Source{
	ID:          "src-1",
	DisplayName: "src-1",
	DocCount:    1,
	ChunkCount:  2,
}

// fakeSourceService is a stand-in driving.SourceService for CLI tests.
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

// fakeIngestService is a stand-in driving.IngestService for CLI tests.
type fakeIngestService struct {
	report *driving.IngestReport
	jobID  string
	job    *domain.Job
	err    error
}

func (f *fakeIngestService) Ingest(_ context.Context, _ string, _ []domain.DocInput) (*driving.IngestReport, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.report, nil
}

func (f *fakeIngestService) Queue(_ context.Context, _ string, _ []domain.DocInput) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.jobID, nil
}

func (f *fakeIngestService) JobStatus(_ context.Context, _ string) (*domain.Job, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.job, nil
}

func (f *fakeIngestService) Cancel(_ context.Context, _ string) error {
	return f.err
}

// fakeEngineService is a stand-in driving.EngineService for CLI tests.
type fakeEngineService struct {
	info *domain.EngineInfo
	err  error
}

func (f *fakeEngineService) EngineInfo(_ context.Context) (*domain.EngineInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.info, nil
}

// fakeConfigStore is a stand-in driven.ConfigStore for CLI tests.
type fakeConfigStore struct {
	settings domain.AppSettings
	path     string
	err      error
}

func (f *fakeConfigStore) Load() (domain.AppSettings, error) {
	if f.err != nil {
		return domain.AppSettings{}, f.err
	}
	return f.settings, nil
}

func (f *fakeConfigStore) Save(settings domain.AppSettings) error {
	if f.err != nil {
		return f.err
	}
	f.settings = settings
	return nil
}

func (f *fakeConfigStore) Path() string {
	return f.path
}

// setupTestServices installs fakes for every service the CLI package
// dispatches to and returns a cleanup func restoring the prior state.
func setupTestServices() func() {
	oldSearch, oldSource, oldIngest, oldEngine, oldConfig := searchService, sourceService, ingestService, engineService, configStore

	searchService = &fakeSearchService{
		results: []domain.SearchResult{
			{
				Document:   domain.Document{ID: "doc-1", Title: "Test Document 1"},
				Chunk:      domain.Chunk{Text: "a matching snippet"},
				FusedScore: 0.8,
			},
		},
	}
	sourceService = &fakeSourceService{
		sources: []domain.Source{{ID: "src-1", DisplayName: "src-1", DocCount: 1, ChunkCount: 2}},
		doc: &domain.Document{
			ID:       "doc-1",
			SourceID: "src-1",
			Title:    "Test Document 1",
			Content:  "This is the content of the test document.",
		},
		docs: []domain.Document{{ID: "doc-1", Title: "Test Document 1", URI: "/tmp/doc-1.md"}},
	}
	ingestService = &fakeIngestService{
		report: &driving.IngestReport{Ingested: 1},
		jobID:  "job-1",
	}
	engineService = &fakeEngineService{
		info: &domain.EngineInfo{
			EmbeddingModelID:    "all-minilm-l6-v2",
			EmbeddingRepoID:     "sentence-transformers/all-MiniLM-L6-v2",
			EmbeddingDimensions: 384,
			RerankerModelID:     "ms-marco-minilm-l6-v2",
			RerankerRepoID:      "cross-encoder/ms-marco-MiniLM-L-6-v2",
			Device:              domain.DeviceAuto,
			Sources:             1,
			Documents:           1,
			Chunks:              2,
		},
	}
	configStore = &fakeConfigStore{settings: domain.DefaultAppSettings(), path: "/tmp/config.toml"}

	return func() {
		searchService, sourceService, ingestService, engineService, configStore = oldSearch, oldSource, oldIngest, oldEngine, oldConfig
	}
}
