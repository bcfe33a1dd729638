package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/eywa-run/eywa/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/eywa-run/eywa/internal/core/domain"
	"github.com/eywa-run/eywa/internal/core/ports/driven"
)

// Store is a unified SQLite-based storage that provides access to the
// content, source and job stores through wrapper types.
type Store struct {
	db      *sql.DB
	path    string
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.eywa/data.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".eywa", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "metadata.db")

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating zstd decoder: %w", err)
	}

	s := &Store{
		db:      db,
		path:    dbPath,
		encoder: encoder,
		decoder: decoder,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	s.decoder.Close()
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// DB exposes the underlying connection so sibling storage adapters
// (vector, lexical) can share this database for their sidecar tables
// instead of opening a second SQLite file.
func (s *Store) DB() *sql.DB {
	return s.db
}

// ContentStore returns a driven.ContentStore backed by this store.
func (s *Store) ContentStore() driven.ContentStore {
	return &contentStore{store: s}
}

// SourceStore returns a driven.SourceStore backed by this store.
func (s *Store) SourceStore() driven.SourceStore {
	return &sourceStore{store: s}
}

// JobStore returns a driven.JobStore backed by this store.
func (s *Store) JobStore() driven.JobStore {
	return &jobStore{store: s}
}

// DiagnosticStore returns a driven.DiagnosticStore backed by this store.
func (s *Store) DiagnosticStore() driven.DiagnosticStore {
	return &diagnosticStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

func (s *Store) compress(content string) []byte {
	return s.encoder.EncodeAll([]byte(content), nil)
}

func (s *Store) decompress(blob []byte) (string, error) {
	out, err := s.decoder.DecodeAll(blob, nil)
	if err != nil {
		return "", fmt.Errorf("decompressing content: %w", err)
	}
	return string(out), nil
}

// ==================== Content Store ====================

// contentStore implements driven.ContentStore.
type contentStore struct {
	store *Store
}

var _ driven.ContentStore = (*contentStore)(nil)

func (s *contentStore) Put(ctx context.Context, doc *domain.Document) error {
	now := time.Now().UTC()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	doc.UpdatedAt = now

	compressed := s.store.compress(doc.Content)

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO documents (id, source_id, uri, title, content, content_sha256, mime_hint, byte_len, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			source_id = excluded.source_id,
			uri = excluded.uri,
			title = excluded.title,
			content = excluded.content,
			content_sha256 = excluded.content_sha256,
			mime_hint = excluded.mime_hint,
			byte_len = excluded.byte_len,
			updated_at = excluded.updated_at
	`, doc.ID, doc.SourceID, doc.URI, doc.Title, compressed, doc.ContentSHA256,
		doc.MIMEHint, doc.ByteLen, doc.CreatedAt, doc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("saving document: %w", err)
	}
	return nil
}

func (s *contentStore) Get(ctx context.Context, id string) (*domain.Document, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, source_id, uri, title, content, content_sha256, mime_hint, byte_len, created_at, updated_at
		FROM documents WHERE id = ?
	`, id)

	var doc domain.Document
	var compressed []byte
	if err := row.Scan(&doc.ID, &doc.SourceID, &doc.URI, &doc.Title, &compressed,
		&doc.ContentSHA256, &doc.MIMEHint, &doc.ByteLen, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning document: %w", err)
	}

	content, err := s.store.decompress(compressed)
	if err != nil {
		return nil, err
	}
	doc.Content = content

	return &doc, nil
}

func (s *contentStore) Delete(ctx context.Context, id string) error {
	if err := s.DeleteChunks(ctx, id); err != nil {
		return err
	}
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	return nil
}

func (s *contentStore) List(ctx context.Context, sourceID string) ([]domain.Document, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, source_id, uri, title, content_sha256, mime_hint, byte_len, created_at, updated_at
		FROM documents WHERE source_id = ?
	`, sourceID)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.Document //nolint:prealloc // size unknown from query
	for rows.Next() {
		var doc domain.Document
		if err := rows.Scan(&doc.ID, &doc.SourceID, &doc.URI, &doc.Title,
			&doc.ContentSHA256, &doc.MIMEHint, &doc.ByteLen, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}
	return docs, nil
}

func (s *contentStore) SaveChunks(ctx context.Context, chunks []domain.Chunk) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (id, document_id, source_id, ordinal, text, body, byte_offset, byte_len, section_path)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			text = excluded.text,
			body = excluded.body,
			byte_offset = excluded.byte_offset,
			byte_len = excluded.byte_len,
			section_path = excluded.section_path
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, chunk := range chunks {
		sectionJSON, err := json.Marshal(chunk.SectionPath)
		if err != nil {
			return fmt.Errorf("marshalling section path: %w", err)
		}
		if _, err := stmt.ExecContext(ctx, chunk.ID, chunk.DocumentID, chunk.SourceID, chunk.Ordinal,
			chunk.Text, chunk.Body, chunk.ByteOffset, chunk.ByteLen, string(sectionJSON)); err != nil {
			return fmt.Errorf("saving chunk: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func (s *contentStore) GetChunks(ctx context.Context, documentID string) ([]domain.Chunk, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, document_id, source_id, ordinal, text, body, byte_offset, byte_len, section_path
		FROM chunks WHERE document_id = ?
		ORDER BY ordinal
	`, documentID)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	var chunks []domain.Chunk //nolint:prealloc // size unknown from query
	for rows.Next() {
		chunk, err := scanChunk(rows)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, *chunk)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunks: %w", err)
	}
	return chunks, nil
}

func (s *contentStore) GetChunk(ctx context.Context, id string) (*domain.Chunk, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, document_id, source_id, ordinal, text, body, byte_offset, byte_len, section_path
		FROM chunks WHERE id = ?
	`, id)

	var chunk domain.Chunk
	var sectionJSON string
	if err := row.Scan(&chunk.ID, &chunk.DocumentID, &chunk.SourceID, &chunk.Ordinal,
		&chunk.Text, &chunk.Body, &chunk.ByteOffset, &chunk.ByteLen, &sectionJSON); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning chunk: %w", err)
	}
	if err := json.Unmarshal([]byte(sectionJSON), &chunk.SectionPath); err != nil {
		return nil, fmt.Errorf("unmarshalling section path: %w", err)
	}
	return &chunk, nil
}

func (s *contentStore) DeleteChunks(ctx context.Context, documentID string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM chunks WHERE document_id = ?", documentID)
	if err != nil {
		return fmt.Errorf("deleting chunks: %w", err)
	}
	return nil
}

func (s *contentStore) Close() error {
	return nil
}

func scanChunk(rows *sql.Rows) (*domain.Chunk, error) {
	var chunk domain.Chunk
	var sectionJSON string
	if err := rows.Scan(&chunk.ID, &chunk.DocumentID, &chunk.SourceID, &chunk.Ordinal,
		&chunk.Text, &chunk.Body, &chunk.ByteOffset, &chunk.ByteLen, &sectionJSON); err != nil {
		return nil, fmt.Errorf("scanning chunk: %w", err)
	}
	if err := json.Unmarshal([]byte(sectionJSON), &chunk.SectionPath); err != nil {
		return nil, fmt.Errorf("unmarshalling section path: %w", err)
	}
	return &chunk, nil
}

// ==================== Source Store ====================

// sourceStore implements driven.SourceStore.
type sourceStore struct {
	store *Store
}

var _ driven.SourceStore = (*sourceStore)(nil)

func (s *sourceStore) Save(ctx context.Context, source domain.Source) error {
	now := time.Now().UTC()
	if source.CreatedAt.IsZero() {
		source.CreatedAt = now
	}
	source.UpdatedAt = now
	if source.DisplayName == "" {
		source.DisplayName = source.ID
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO sources (id, display_name, doc_count, chunk_count, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			display_name = excluded.display_name,
			doc_count = excluded.doc_count,
			chunk_count = excluded.chunk_count,
			updated_at = excluded.updated_at
	`, source.ID, source.DisplayName, source.DocCount, source.ChunkCount, source.CreatedAt, source.UpdatedAt)
	if err != nil {
		return fmt.Errorf("saving source: %w", err)
	}
	return nil
}

func (s *sourceStore) Get(ctx context.Context, id string) (*domain.Source, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, display_name, doc_count, chunk_count, created_at, updated_at
		FROM sources WHERE id = ?
	`, id)

	var source domain.Source
	if err := row.Scan(&source.ID, &source.DisplayName, &source.DocCount, &source.ChunkCount,
		&source.CreatedAt, &source.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning source: %w", err)
	}
	return &source, nil
}

func (s *sourceStore) Delete(ctx context.Context, id string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM sources WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting source: %w", err)
	}
	return nil
}

func (s *sourceStore) List(ctx context.Context) ([]domain.Source, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, display_name, doc_count, chunk_count, created_at, updated_at
		FROM sources ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying sources: %w", err)
	}
	defer rows.Close()

	var sources []domain.Source //nolint:prealloc // size unknown from query
	for rows.Next() {
		var source domain.Source
		if err := rows.Scan(&source.ID, &source.DisplayName, &source.DocCount, &source.ChunkCount,
			&source.CreatedAt, &source.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning source: %w", err)
		}
		sources = append(sources, source)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sources: %w", err)
	}
	return sources, nil
}

func (s *sourceStore) IncrementCounters(ctx context.Context, sourceID string, docDelta, chunkDelta int) error {
	now := time.Now().UTC()
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO sources (id, display_name, doc_count, chunk_count, created_at, updated_at)
		VALUES (?, ?, MAX(0, ?), MAX(0, ?), ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			doc_count = MAX(0, doc_count + ?),
			chunk_count = MAX(0, chunk_count + ?),
			updated_at = excluded.updated_at
	`, sourceID, sourceID, docDelta, chunkDelta, now, now, docDelta, chunkDelta)
	if err != nil {
		return fmt.Errorf("incrementing source counters: %w", err)
	}
	return nil
}

// ==================== Job Store ====================

// jobStore implements driven.JobStore.
type jobStore struct {
	store *Store
}

var _ driven.JobStore = (*jobStore)(nil)

func (s *jobStore) Save(ctx context.Context, job domain.Job) error {
	var finishedAt sql.NullTime
	if !job.FinishedAt.IsZero() {
		finishedAt = sql.NullTime{Time: job.FinishedAt, Valid: true}
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO jobs (id, source_id, status, total, completed, failed, current_doc, error, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			status = excluded.status,
			total = excluded.total,
			completed = excluded.completed,
			failed = excluded.failed,
			current_doc = excluded.current_doc,
			error = excluded.error,
			finished_at = excluded.finished_at
	`, job.ID, job.SourceID, string(job.Status), job.Total, job.Completed, job.Failed,
		job.CurrentDoc, job.Error, job.StartedAt, finishedAt)
	if err != nil {
		return fmt.Errorf("saving job: %w", err)
	}
	return nil
}

func (s *jobStore) Get(ctx context.Context, id string) (*domain.Job, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, source_id, status, total, completed, failed, current_doc, error, started_at, finished_at
		FROM jobs WHERE id = ?
	`, id)

	var job domain.Job
	var status string
	var finishedAt sql.NullTime
	if err := row.Scan(&job.ID, &job.SourceID, &status, &job.Total, &job.Completed, &job.Failed,
		&job.CurrentDoc, &job.Error, &job.StartedAt, &finishedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning job: %w", err)
	}
	job.Status = domain.JobStatus(status)
	if finishedAt.Valid {
		job.FinishedAt = finishedAt.Time
	}
	return &job, nil
}

// jobRetention is how long terminal jobs are kept before Prune removes them.
const jobRetention = 24 * time.Hour

func (s *jobStore) Prune(ctx context.Context) error {
	cutoff := time.Now().UTC().Add(-jobRetention)
	_, err := s.store.db.ExecContext(ctx, `
		DELETE FROM jobs
		WHERE status IN (?, ?, ?) AND finished_at IS NOT NULL AND finished_at < ?
	`, string(domain.JobStatusDone), string(domain.JobStatusFailed), string(domain.JobStatusCancelled), cutoff)
	if err != nil {
		return fmt.Errorf("pruning jobs: %w", err)
	}
	return nil
}

type diagnosticStore struct {
	store *Store
}

var _ driven.DiagnosticStore = (*diagnosticStore)(nil)

func (s *diagnosticStore) Record(ctx context.Context, diag domain.InconsistentDoc) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO inconsistent_docs (doc_id, source_id, uri, step, error, occurred_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, diag.DocID, diag.SourceID, diag.URI, diag.Step, diag.Error, diag.OccurredAt)
	if err != nil {
		return fmt.Errorf("recording inconsistent doc: %w", err)
	}
	return nil
}

func (s *diagnosticStore) List(ctx context.Context) ([]domain.InconsistentDoc, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT doc_id, source_id, uri, step, error, occurred_at
		FROM inconsistent_docs
		ORDER BY occurred_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("listing inconsistent docs: %w", err)
	}
	defer rows.Close()

	var out []domain.InconsistentDoc
	for rows.Next() {
		var d domain.InconsistentDoc
		if err := rows.Scan(&d.DocID, &d.SourceID, &d.URI, &d.Step, &d.Error, &d.OccurredAt); err != nil {
			return nil, fmt.Errorf("scanning inconsistent doc: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
