package vector

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/eywa-run/eywa/cgo/hnsw"
	"github.com/eywa-run/eywa/internal/core/domain"
	"github.com/eywa-run/eywa/internal/core/ports/driven"
)

const (
	flushBatchSize   = 256
	flushIdleTimeout = 5 * time.Second
	overfetchFactor  = 4
)

// Store implements driven.VectorStore on top of an HNSW index and a
// SQLite sidecar table for hit metadata and dimension binding.
type Store struct {
	idx       *hnsw.Index
	db        *sql.DB
	dimension int

	mu      sync.Mutex
	pending []driven.VectorRow
	timer   *time.Timer
}

var _ driven.VectorStore = (*Store)(nil)

// New opens (or creates) an HNSW index at dataDir bound to dimension,
// and db, the shared SQLite connection holding the vector_meta and
// vector_index_info sidecar tables (created by the sqlite package's
// migrations). If the index was previously built with a different
// dimension, New returns domain.ErrModelMismatch.
func New(dataDir string, db *sql.DB, dimension int) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".eywa", "data", "vector")
	}
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating vector data directory: %w", err)
	}

	if err := checkDimension(db, dimension); err != nil {
		return nil, err
	}

	idx, err := hnsw.New(filepath.Join(dataDir, "index"), dimension, hnsw.PrecisionFloat32)
	if err != nil {
		return nil, fmt.Errorf("opening hnsw index: %w", err)
	}

	return &Store{idx: idx, db: db, dimension: dimension}, nil
}

func checkDimension(db *sql.DB, dimension int) error {
	var existing int
	err := db.QueryRow("SELECT dimension FROM vector_index_info WHERE id = 1").Scan(&existing)
	switch {
	case err == sql.ErrNoRows:
		_, err := db.Exec("INSERT INTO vector_index_info (id, dimension) VALUES (1, ?)", dimension)
		if err != nil {
			return fmt.Errorf("recording vector index dimension: %w", err)
		}
		return nil
	case err != nil:
		return fmt.Errorf("reading vector index dimension: %w", err)
	case existing != dimension:
		return domain.ErrModelMismatch
	default:
		return nil
	}
}

func (s *Store) Dimension() int {
	return s.dimension
}

func (s *Store) Upsert(_ context.Context, rows []driven.VectorRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, row := range rows {
		if len(row.Vector) != s.dimension {
			return fmt.Errorf("vector: row %s has dimension %d, index expects %d", row.ChunkID, len(row.Vector), s.dimension)
		}
	}

	s.pending = append(s.pending, rows...)

	if len(s.pending) >= flushBatchSize {
		return s.flushLocked(context.Background())
	}

	if s.timer == nil {
		s.timer = time.AfterFunc(flushIdleTimeout, func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			_ = s.flushLocked(context.Background())
		})
	} else {
		s.timer.Reset(flushIdleTimeout)
	}

	return nil
}

// Flush forces any pending batched writes to the index, observing the
// caller's own pending writes before a Query.
func (s *Store) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flushLocked(ctx)
}

// flushLocked must be called with s.mu held.
func (s *Store) flushLocked(ctx context.Context) error {
	if s.timer != nil {
		s.timer.Stop()
	}
	if len(s.pending) == 0 {
		return nil
	}

	rows := s.pending
	s.pending = nil

	for _, row := range rows {
		if err := s.idx.Add(ctx, row.ChunkID, row.Vector); err != nil {
			return fmt.Errorf("adding vector for %s: %w", row.ChunkID, err)
		}
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO vector_meta (chunk_id, source_id, doc_id, title, body)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(chunk_id) DO UPDATE SET
				source_id = excluded.source_id,
				doc_id = excluded.doc_id,
				title = excluded.title,
				body = excluded.body
		`, row.ChunkID, row.SourceID, row.DocID, row.Title, row.Body)
		if err != nil {
			return fmt.Errorf("saving vector sidecar row for %s: %w", row.ChunkID, err)
		}
	}
	return nil
}

func (s *Store) DeleteByDoc(ctx context.Context, docID string) error {
	return s.deleteWhere(ctx, "doc_id", docID)
}

func (s *Store) DeleteBySource(ctx context.Context, sourceID string) error {
	return s.deleteWhere(ctx, "source_id", sourceID)
}

func (s *Store) deleteWhere(ctx context.Context, column, value string) error {
	if err := s.Flush(ctx); err != nil {
		return err
	}

	rows, err := s.db.QueryContext(ctx, fmt.Sprintf("SELECT chunk_id FROM vector_meta WHERE %s = ?", column), value) //nolint:gosec // column is a fixed internal literal, never user input
	if err != nil {
		return fmt.Errorf("querying vector sidecar rows: %w", err)
	}
	var chunkIDs []string
	for rows.Next() {
		var chunkID string
		if err := rows.Scan(&chunkID); err != nil {
			rows.Close()
			return fmt.Errorf("scanning chunk id: %w", err)
		}
		chunkIDs = append(chunkIDs, chunkID)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("iterating vector sidecar rows: %w", err)
	}
	rows.Close()

	for _, chunkID := range chunkIDs {
		if err := s.idx.Delete(ctx, chunkID); err != nil {
			return fmt.Errorf("deleting vector for %s: %w", chunkID, err)
		}
	}

	if _, err := s.db.ExecContext(ctx, fmt.Sprintf("DELETE FROM vector_meta WHERE %s = ?", column), value); err != nil { //nolint:gosec // column is a fixed internal literal, never user input
		return fmt.Errorf("deleting vector sidecar rows: %w", err)
	}
	return nil
}

func (s *Store) Query(ctx context.Context, vector []float32, k int, sourceFilter []string) ([]driven.VectorHit, error) {
	if err := s.Flush(ctx); err != nil {
		return nil, err
	}

	fetch := k
	if len(sourceFilter) > 0 {
		fetch = k * overfetchFactor
	}

	hits, err := s.idx.Search(ctx, vector, fetch)
	if err != nil {
		return nil, fmt.Errorf("searching vector index: %w", err)
	}

	allowed := make(map[string]bool, len(sourceFilter))
	for _, id := range sourceFilter {
		allowed[id] = true
	}

	results := make([]driven.VectorHit, 0, k)
	for _, hit := range hits {
		if len(results) >= k {
			break
		}

		var sourceID, docID, title, body string
		row := s.db.QueryRowContext(ctx,
			"SELECT source_id, doc_id, title, body FROM vector_meta WHERE chunk_id = ?", hit.ChunkID)
		if err := row.Scan(&sourceID, &docID, &title, &body); err != nil {
			if err == sql.ErrNoRows {
				continue
			}
			return nil, fmt.Errorf("looking up sidecar row for %s: %w", hit.ChunkID, err)
		}

		if len(allowed) > 0 && !allowed[sourceID] {
			continue
		}

		results = append(results, driven.VectorHit{
			ChunkID:    hit.ChunkID,
			SourceID:   sourceID,
			DocID:      docID,
			Title:      title,
			Body:       body,
			Similarity: hit.Similarity,
		})
	}
	return results, nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	_ = s.flushLocked(context.Background())
	s.mu.Unlock()
	return s.idx.Close()
}
