package services

import (
	"context"
	"strings"
	"sync"

	"github.com/eywa-run/eywa/internal/core/domain"
	"github.com/eywa-run/eywa/internal/core/ports/driven"
)

// fakeNormalisers passes content through unchanged, deriving a title
// from the URI when none is given.
type fakeNormalisers struct{}

func (fakeNormalisers) Normalise(_ context.Context, in domain.DocInput) (*domain.NormaliseResult, error) {
	title := in.Title
	if title == "" {
		title = in.URI
	}
	return &domain.NormaliseResult{Title: title, Content: string(in.Content)}, nil
}
func (fakeNormalisers) Register(driven.Normaliser)     {}
func (fakeNormalisers) SupportedMIMETypes() []string   { return []string{"text/plain"} }

// fakeRuntime returns a deterministic fixed-dimension vector per text
// (length-derived, not a real embedding) and a trivial rerank score
// based on substring overlap with the query.
type fakeRuntime struct {
	dim       int
	embedErr  error
	rerankErr error
}

func (f *fakeRuntime) Embed(_ context.Context, texts []string) ([][]float32, error) {
	if f.embedErr != nil {
		return nil, f.embedErr
	}
	dim := f.dim
	if dim == 0 {
		dim = 4
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v := make([]float32, dim)
		for j := range v {
			v[j] = float32(len(t)%(j+2)) + 1
		}
		out[i] = v
	}
	return out, nil
}

func (f *fakeRuntime) Rerank(_ context.Context, query string, candidates []string) ([]float32, error) {
	if f.rerankErr != nil {
		return nil, f.rerankErr
	}
	scores := make([]float32, len(candidates))
	for i, c := range candidates {
		if strings.Contains(c, query) {
			scores[i] = 1
		}
	}
	return scores, nil
}

func (f *fakeRuntime) Dimension() int {
	if f.dim == 0 {
		return 4
	}
	return f.dim
}
func (f *fakeRuntime) Close() error { return nil }

// fakeContentStore is an in-memory ContentStore.
type fakeContentStore struct {
	docs      map[string]domain.Document
	chunks    map[string][]domain.Chunk
	deleteErr error
}

func newFakeContentStore() *fakeContentStore {
	return &fakeContentStore{docs: make(map[string]domain.Document), chunks: make(map[string][]domain.Chunk)}
}

func (f *fakeContentStore) Put(_ context.Context, doc *domain.Document) error {
	f.docs[doc.ID] = *doc
	return nil
}
func (f *fakeContentStore) Get(_ context.Context, id string) (*domain.Document, error) {
	d, ok := f.docs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &d, nil
}
func (f *fakeContentStore) Delete(_ context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.docs, id)
	return nil
}
func (f *fakeContentStore) List(_ context.Context, sourceID string) ([]domain.Document, error) {
	var out []domain.Document
	for _, d := range f.docs {
		if d.SourceID == sourceID {
			out = append(out, d)
		}
	}
	return out, nil
}
func (f *fakeContentStore) SaveChunks(_ context.Context, chunks []domain.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}
	f.chunks[chunks[0].DocumentID] = append([]domain.Chunk(nil), chunks...)
	return nil
}
func (f *fakeContentStore) GetChunks(_ context.Context, documentID string) ([]domain.Chunk, error) {
	return f.chunks[documentID], nil
}
func (f *fakeContentStore) GetChunk(_ context.Context, id string) (*domain.Chunk, error) {
	for _, cs := range f.chunks {
		for _, c := range cs {
			if c.ID == id {
				return &c, nil
			}
		}
	}
	return nil, domain.ErrNotFound
}
func (f *fakeContentStore) DeleteChunks(_ context.Context, documentID string) error {
	delete(f.chunks, documentID)
	return nil
}
func (f *fakeContentStore) Close() error { return nil }

// fakeVectorStore is an in-memory VectorStore.
type fakeVectorStore struct {
	rows        map[string]driven.VectorRow
	queryErr    error
	upsertErr   error
	deleteByDocErr error
}

func newFakeVectorStore() *fakeVectorStore {
	return &fakeVectorStore{rows: make(map[string]driven.VectorRow)}
}

func (f *fakeVectorStore) Upsert(_ context.Context, rows []driven.VectorRow) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	for _, r := range rows {
		f.rows[r.ChunkID] = r
	}
	return nil
}
func (f *fakeVectorStore) DeleteByDoc(_ context.Context, docID string) error {
	if f.deleteByDocErr != nil {
		return f.deleteByDocErr
	}
	for id, r := range f.rows {
		if r.DocID == docID {
			delete(f.rows, id)
		}
	}
	return nil
}
func (f *fakeVectorStore) DeleteBySource(_ context.Context, sourceID string) error {
	for id, r := range f.rows {
		if r.SourceID == sourceID {
			delete(f.rows, id)
		}
	}
	return nil
}
func (f *fakeVectorStore) Query(_ context.Context, _ []float32, k int, sourceFilter []string) ([]driven.VectorHit, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	allowed := toSet(sourceFilter)
	var hits []driven.VectorHit
	for _, r := range f.rows {
		if len(allowed) > 0 && !allowed[r.SourceID] {
			continue
		}
		hits = append(hits, driven.VectorHit{
			ChunkID: r.ChunkID, SourceID: r.SourceID, DocID: r.DocID,
			Body: r.Body, Title: r.Title, Similarity: float64(len(r.Body)),
		})
	}
	if len(hits) > k {
		hits = hits[:k]
	}
	return hits, nil
}
func (f *fakeVectorStore) Flush(_ context.Context) error { return nil }
func (f *fakeVectorStore) Dimension() int                { return 4 }
func (f *fakeVectorStore) Close() error                  { return nil }

// fakeLexicalStore is an in-memory LexicalStore.
type fakeLexicalStore struct {
	rows      map[string]driven.LexicalRow
	searchErr error
	indexErr  error
}

func newFakeLexicalStore() *fakeLexicalStore {
	return &fakeLexicalStore{rows: make(map[string]driven.LexicalRow)}
}

func (f *fakeLexicalStore) Index(_ context.Context, rows []driven.LexicalRow) error {
	if f.indexErr != nil {
		return f.indexErr
	}
	for _, r := range rows {
		f.rows[r.ChunkID] = r
	}
	return nil
}
func (f *fakeLexicalStore) DeleteByDoc(_ context.Context, docID string) error {
	for id, r := range f.rows {
		if r.DocID == docID {
			delete(f.rows, id)
		}
	}
	return nil
}
func (f *fakeLexicalStore) DeleteBySource(_ context.Context, sourceID string) error {
	for id, r := range f.rows {
		if r.SourceID == sourceID {
			delete(f.rows, id)
		}
	}
	return nil
}
func (f *fakeLexicalStore) Search(_ context.Context, query string, limit int, sourceFilter []string) ([]driven.LexicalHit, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	allowed := toSet(sourceFilter)
	var hits []driven.LexicalHit
	for _, r := range f.rows {
		if len(allowed) > 0 && !allowed[r.SourceID] {
			continue
		}
		if query != "" && !strings.Contains(r.Body, query) {
			continue
		}
		hits = append(hits, driven.LexicalHit{
			ChunkID: r.ChunkID, SourceID: r.SourceID, DocID: r.DocID,
			Title: r.Title, Body: r.Body, Score: float64(len(r.Body)),
		})
	}
	if len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}
func (f *fakeLexicalStore) Close() error { return nil }

// fakeSourceStore is an in-memory SourceStore.
type fakeSourceStore struct {
	sources map[string]domain.Source
}

func newFakeSourceStore() *fakeSourceStore {
	return &fakeSourceStore{sources: make(map[string]domain.Source)}
}

func (f *fakeSourceStore) Save(_ context.Context, source domain.Source) error {
	f.sources[source.ID] = source
	return nil
}
func (f *fakeSourceStore) Get(_ context.Context, id string) (*domain.Source, error) {
	s, ok := f.sources[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &s, nil
}
func (f *fakeSourceStore) Delete(_ context.Context, id string) error {
	delete(f.sources, id)
	return nil
}
func (f *fakeSourceStore) List(_ context.Context) ([]domain.Source, error) {
	var out []domain.Source
	for _, s := range f.sources {
		out = append(out, s)
	}
	return out, nil
}
func (f *fakeSourceStore) IncrementCounters(_ context.Context, sourceID string, docDelta, chunkDelta int) error {
	s := f.sources[sourceID]
	s.ID = sourceID
	if s.DisplayName == "" {
		s.DisplayName = sourceID
	}
	s.DocCount += docDelta
	s.ChunkCount += chunkDelta
	f.sources[sourceID] = s
	return nil
}

// fakeJobStore is an in-memory JobStore.
type fakeJobStore struct {
	jobs map[string]domain.Job
}

func newFakeJobStore() *fakeJobStore {
	return &fakeJobStore{jobs: make(map[string]domain.Job)}
}

func (f *fakeJobStore) Save(_ context.Context, job domain.Job) error {
	f.jobs[job.ID] = job
	return nil
}
func (f *fakeJobStore) Get(_ context.Context, id string) (*domain.Job, error) {
	j, ok := f.jobs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &j, nil
}
func (f *fakeJobStore) Prune(_ context.Context) error { return nil }

// fakeDiagnosticStore is an in-memory DiagnosticStore.
type fakeDiagnosticStore struct {
	mu    sync.Mutex
	diags []domain.InconsistentDoc
}

func newFakeDiagnosticStore() *fakeDiagnosticStore {
	return &fakeDiagnosticStore{}
}

func (f *fakeDiagnosticStore) Record(_ context.Context, diag domain.InconsistentDoc) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.diags = append(f.diags, diag)
	return nil
}

func (f *fakeDiagnosticStore) List(_ context.Context) ([]domain.InconsistentDoc, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.InconsistentDoc(nil), f.diags...), nil
}

func toSet(ss []string) map[string]bool {
	if len(ss) == 0 {
		return nil
	}
	m := make(map[string]bool, len(ss))
	for _, s := range ss {
		m[s] = true
	}
	return m
}
