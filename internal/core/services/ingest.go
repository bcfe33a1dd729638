package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/eywa-run/eywa/internal/chunker"
	"github.com/eywa-run/eywa/internal/core/domain"
	"github.com/eywa-run/eywa/internal/core/ports/driven"
	"github.com/eywa-run/eywa/internal/core/ports/driving"
	"github.com/eywa-run/eywa/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// defaultMaxPendingDocs bounds how many documents may be queued for
// asynchronous ingest at once; Queue returns domain.ErrBusy once this
// many documents are pending across all in-flight jobs.
const defaultMaxPendingDocs = 1024

// IngestService normalises, chunks, embeds and commits caller-supplied
// documents across the content, vector and lexical stores.
type IngestService struct {
	normalisers driven.NormaliserRegistry
	runtime     driven.ModelRuntime
	content     driven.ContentStore
	vectors     driven.VectorStore
	lexical     driven.LexicalStore
	sources     driven.SourceStore
	jobs        driven.JobStore
	diagnostics driven.DiagnosticStore
	chunking    domain.ChunkingSettings

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex

	pendingMu      sync.Mutex
	pendingDocs    int
	maxPendingDocs int

	cancelsMu sync.Mutex
	cancels   map[string]context.CancelFunc
}

// NewIngestService wires an IngestService from its driven dependencies.
func NewIngestService(
	normalisers driven.NormaliserRegistry,
	runtime driven.ModelRuntime,
	content driven.ContentStore,
	vectors driven.VectorStore,
	lexical driven.LexicalStore,
	sources driven.SourceStore,
	jobs driven.JobStore,
	diagnostics driven.DiagnosticStore,
	chunking domain.ChunkingSettings,
) *IngestService {
	return &IngestService{
		normalisers:    normalisers,
		runtime:        runtime,
		content:        content,
		vectors:        vectors,
		lexical:        lexical,
		sources:        sources,
		jobs:           jobs,
		diagnostics:    diagnostics,
		chunking:       chunking,
		locks:          make(map[string]*sync.Mutex),
		maxPendingDocs: defaultMaxPendingDocs,
		cancels:        make(map[string]context.CancelFunc),
	}
}

// sourceLock returns the per-source writer lock, creating it on first
// use. Holding this lock for the Content->Vector->Lexical commit
// sequence keeps a single source's writes from interleaving.
func (s *IngestService) sourceLock(sourceID string) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	l, ok := s.locks[sourceID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[sourceID] = l
	}
	return l
}

// Ingest processes docs synchronously, committing each one in turn.
func (s *IngestService) Ingest(ctx context.Context, sourceID string, docs []domain.DocInput) (*driving.IngestReport, error) {
	if sourceID == "" {
		return nil, domain.ErrInvalidInput
	}

	lock := s.sourceLock(sourceID)
	lock.Lock()
	defer lock.Unlock()

	report := &driving.IngestReport{Errors: make(map[string]string)}

	for _, in := range docs {
		if err := ctx.Err(); err != nil {
			return report, domain.ErrCancelled
		}

		deduped, err := s.ingestOne(ctx, sourceID, in)
		if err != nil {
			report.Failed++
			report.Errors[in.URI] = err.Error()
			logger.WarnFields("ingest: document failed", logger.Fields{
				"operation": "ingest", "source_id": sourceID, "uri": in.URI, "error": err,
			})
			continue
		}
		if deduped {
			report.Deduplicated++
		} else {
			report.Ingested++
		}
	}

	return report, nil
}

// ingestOne normalises, chunks, embeds and commits a single document,
// returning true if it was skipped as an exact duplicate. On a
// failure to commit to the vector or lexical store, it attempts a
// best-effort rollback of the steps already committed, in reverse
// order; if the rollback itself fails, the document is recorded as an
// InconsistentDoc diagnostic.
func (s *IngestService) ingestOne(ctx context.Context, sourceID string, in domain.DocInput) (bool, error) {
	norm, err := s.normalisers.Normalise(ctx, in)
	if err != nil {
		return false, err
	}

	now := time.Now().UTC()
	docID := domain.ComputeDocumentID(sourceID, norm.Title, norm.Content)
	contentHash := domain.ComputeContentSHA256(norm.Content)

	if existing, err := s.content.Get(ctx, docID); err == nil && existing.ContentSHA256 == contentHash {
		return true, nil
	}

	doc := domain.Document{
		ID:            docID,
		SourceID:      sourceID,
		URI:           in.URI,
		Title:         norm.Title,
		Content:       norm.Content,
		ContentSHA256: contentHash,
		MIMEHint:      in.MIMEType,
		ByteLen:       len(norm.Content),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	strategy := chunker.ForMIME(doc.MIMEHint, doc.URI, s.chunking)
	chunks, err := strategy.Chunk(doc)
	if err != nil {
		return false, err
	}
	for i := range chunks {
		chunks[i].DocumentID = doc.ID
		chunks[i].SourceID = doc.SourceID
		chunks[i].Ordinal = i
		chunks[i].ID = domain.ComputeChunkID(doc.ID, i)
	}

	bodies := make([]string, len(chunks))
	for i, c := range chunks {
		bodies[i] = c.Body
	}
	vectors, err := s.runtime.Embed(ctx, bodies)
	if err != nil {
		return false, fmt.Errorf("%w: %v", domain.ErrInferenceFailed, err)
	}

	if err := s.content.Put(ctx, &doc); err != nil {
		return false, fmt.Errorf("%w: %v", domain.ErrStorage, err)
	}
	if err := s.content.SaveChunks(ctx, chunks); err != nil {
		return false, fmt.Errorf("%w: %v", domain.ErrStorage, err)
	}

	vectorRows := make([]driven.VectorRow, len(chunks))
	lexicalRows := make([]driven.LexicalRow, len(chunks))
	for i, c := range chunks {
		vectorRows[i] = driven.VectorRow{
			ChunkID:  c.ID,
			SourceID: c.SourceID,
			DocID:    c.DocumentID,
			Vector:   vectors[i],
			Body:     c.Body,
			Title:    doc.Title,
		}
		lexicalRows[i] = driven.LexicalRow{
			ChunkID:  c.ID,
			SourceID: c.SourceID,
			DocID:    c.DocumentID,
			Title:    doc.Title,
			Body:     c.Body,
		}
	}

	if err := s.vectors.Upsert(ctx, vectorRows); err != nil {
		wrapped := fmt.Errorf("%w: %v", domain.ErrInconsistent, err)
		s.rollback(doc, "vector_upsert", wrapped, false)
		return false, wrapped
	}
	if err := s.lexical.Index(ctx, lexicalRows); err != nil {
		wrapped := fmt.Errorf("%w: %v", domain.ErrInconsistent, err)
		s.rollback(doc, "lexical_index", wrapped, true)
		return false, wrapped
	}

	if err := s.sources.IncrementCounters(ctx, sourceID, 1, len(chunks)); err != nil {
		logger.WarnFields("ingest: failed to update source counters", logger.Fields{
			"operation": "ingest", "source_id": sourceID, "doc_id": doc.ID, "error": err,
		})
	}

	return false, nil
}

// rollback best-effort undoes the steps already committed for doc in
// reverse order (content store uses a detached context since the
// original ctx may have failed for unrelated reasons). If any step
// fails to undo, doc is recorded as an InconsistentDoc diagnostic.
func (s *IngestService) rollback(doc domain.Document, step string, cause error, vectorCommitted bool) {
	rbCtx := context.Background()

	var errs []error
	if vectorCommitted {
		if err := s.vectors.DeleteByDoc(rbCtx, doc.ID); err != nil {
			errs = append(errs, fmt.Errorf("rollback vectors: %w", err))
		}
	}
	if err := s.content.DeleteChunks(rbCtx, doc.ID); err != nil {
		errs = append(errs, fmt.Errorf("rollback chunks: %w", err))
	}
	if err := s.content.Delete(rbCtx, doc.ID); err != nil {
		errs = append(errs, fmt.Errorf("rollback document: %w", err))
	}

	if len(errs) == 0 {
		logger.DebugFields("ingest: rolled back partial commit", logger.Fields{
			"operation": "ingest", "source_id": doc.SourceID, "doc_id": doc.ID, "step": step,
		})
		return
	}

	rollbackErr := errors.Join(errs...)
	logger.WarnFields("ingest: rollback failed, recording inconsistent document", logger.Fields{
		"operation": "ingest", "source_id": doc.SourceID, "doc_id": doc.ID, "step": step, "error": rollbackErr,
	})
	if s.diagnostics == nil {
		return
	}
	diag := domain.InconsistentDoc{
		DocID:      doc.ID,
		SourceID:   doc.SourceID,
		URI:        doc.URI,
		Step:       step,
		Error:      fmt.Sprintf("%v (rollback: %v)", cause, rollbackErr),
		OccurredAt: time.Now().UTC(),
	}
	if err := s.diagnostics.Record(rbCtx, diag); err != nil {
		logger.WarnFields("ingest: failed to record inconsistent document diagnostic", logger.Fields{
			"operation": "ingest", "doc_id": doc.ID, "error": err,
		})
	}
}

// reservePending admits n pending documents if doing so would not
// exceed the bounded queue capacity.
func (s *IngestService) reservePending(n int) bool {
	s.pendingMu.Lock()
	defer s.pendingMu.Unlock()
	limit := s.maxPendingDocs
	if limit <= 0 {
		limit = defaultMaxPendingDocs
	}
	if s.pendingDocs+n > limit {
		return false
	}
	s.pendingDocs += n
	return true
}

func (s *IngestService) releasePending(n int) {
	s.pendingMu.Lock()
	defer s.pendingMu.Unlock()
	s.pendingDocs -= n
}

// Queue enqueues docs for asynchronous processing, returning a job ID
// immediately and running the ingest on a background goroutine.
// Returns domain.ErrBusy if admitting docs would exceed the bounded
// pending-document capacity.
func (s *IngestService) Queue(ctx context.Context, sourceID string, docs []domain.DocInput) (string, error) {
	if sourceID == "" {
		return "", domain.ErrInvalidInput
	}
	if !s.reservePending(len(docs)) {
		return "", domain.ErrBusy
	}

	jobID := uuid.New().String()
	job := domain.Job{
		ID:        jobID,
		SourceID:  sourceID,
		Status:    domain.JobStatusPending,
		Total:     len(docs),
		StartedAt: time.Now().UTC(),
	}
	if err := s.jobs.Save(ctx, job); err != nil {
		s.releasePending(len(docs))
		return "", fmt.Errorf("%w: %v", domain.ErrStorage, err)
	}

	// Register the cancel func before the goroutine starts so a Cancel
	// that arrives while the job is still pending is not lost.
	jobCtx, cancel := context.WithCancel(context.Background())
	s.cancelsMu.Lock()
	s.cancels[jobID] = cancel
	s.cancelsMu.Unlock()

	go s.runJob(jobCtx, cancel, jobID, sourceID, docs)

	return jobID, nil
}

// Cancel requests cooperative cancellation of a queued or running
// job. The job checks for cancellation between documents, so work on
// the document in flight when Cancel is called still completes.
func (s *IngestService) Cancel(ctx context.Context, jobID string) error {
	s.cancelsMu.Lock()
	cancel, ok := s.cancels[jobID]
	s.cancelsMu.Unlock()
	if !ok {
		if _, err := s.jobs.Get(ctx, jobID); err != nil {
			return err
		}
		return nil // already terminal, nothing to cancel
	}
	cancel()
	return nil
}

// runJob executes a queued ingest, checking for cooperative
// cancellation between documents and updating the job record as it
// progresses.
func (s *IngestService) runJob(jobCtx context.Context, cancel context.CancelFunc, jobID, sourceID string, docs []domain.DocInput) {
	defer func() {
		s.cancelsMu.Lock()
		delete(s.cancels, jobID)
		s.cancelsMu.Unlock()
		cancel()
		s.releasePending(len(docs))
	}()

	saveCtx := context.Background()

	job := domain.Job{
		ID:        jobID,
		SourceID:  sourceID,
		Status:    domain.JobStatusRunning,
		Total:     len(docs),
		StartedAt: time.Now().UTC(),
	}
	_ = s.jobs.Save(saveCtx, job)

	lock := s.sourceLock(sourceID)
	lock.Lock()
	defer lock.Unlock()

	for _, in := range docs {
		if err := jobCtx.Err(); err != nil {
			job.Status = domain.JobStatusCancelled
			job.CurrentDoc = ""
			job.FinishedAt = time.Now().UTC()
			_ = s.jobs.Save(saveCtx, job)
			logger.InfoFields("ingest job cancelled", logger.Fields{
				"operation": "ingest_queue", "source_id": sourceID, "job_id": jobID,
			})
			return
		}

		job.CurrentDoc = in.URI
		_ = s.jobs.Save(saveCtx, job)

		deduped, err := s.ingestOne(jobCtx, sourceID, in)
		if err != nil {
			job.Failed++
			if job.Error == "" {
				job.Error = err.Error()
			}
			logger.WarnFields("ingest job: document failed", logger.Fields{
				"operation": "ingest_queue", "job_id": jobID, "source_id": sourceID, "uri": in.URI, "error": err,
			})
			continue
		}
		if deduped {
			job.Completed++
		} else {
			job.Completed++
		}
	}

	job.Status = domain.JobStatusDone
	if job.Failed > 0 && job.Completed == 0 {
		job.Status = domain.JobStatusFailed
	}
	job.FinishedAt = time.Now().UTC()
	job.CurrentDoc = ""
	_ = s.jobs.Save(saveCtx, job)
}

// JobStatus returns the current state of a queued job.
func (s *IngestService) JobStatus(ctx context.Context, jobID string) (*domain.Job, error) {
	return s.jobs.Get(ctx, jobID)
}
