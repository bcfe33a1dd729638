package lexical

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/eywa-run/eywa/cgo/xapian"
	"github.com/eywa-run/eywa/internal/core/ports/driven"
)

// Store implements driven.LexicalStore on top of a Xapian engine and a
// SQLite sidecar table for hit metadata.
type Store struct {
	engine *xapian.Engine
	db     *sql.DB
}

var _ driven.LexicalStore = (*Store)(nil)

// New opens (or creates) a Xapian database at dataDir and binds it to
// db, the shared SQLite connection holding the lexical_meta sidecar
// table (created by the sqlite package's migrations).
func New(dataDir string, db *sql.DB) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".eywa", "data", "lexical")
	}
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating lexical data directory: %w", err)
	}

	// xapian.New sets BM25(k1=1.2, b=0.75) on the opened database, so
	// every query against this store is BM25-weighted from the start.
	engine, err := xapian.New(dataDir)
	if err != nil {
		return nil, fmt.Errorf("opening xapian engine: %w", err)
	}

	return &Store{engine: engine, db: db}, nil
}

func (s *Store) Index(ctx context.Context, rows []driven.LexicalRow) error {
	for _, row := range rows {
		if err := s.engine.Index(ctx, row.ChunkID, row.DocID, row.SourceID, row.Body); err != nil {
			return fmt.Errorf("indexing chunk %s: %w", row.ChunkID, err)
		}
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO lexical_meta (chunk_id, source_id, doc_id, title, body)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(chunk_id) DO UPDATE SET
				source_id = excluded.source_id,
				doc_id = excluded.doc_id,
				title = excluded.title,
				body = excluded.body
		`, row.ChunkID, row.SourceID, row.DocID, row.Title, row.Body)
		if err != nil {
			return fmt.Errorf("saving lexical sidecar row for %s: %w", row.ChunkID, err)
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
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf("SELECT chunk_id FROM lexical_meta WHERE %s = ?", column), value) //nolint:gosec // column is a fixed internal literal, never user input
	if err != nil {
		return fmt.Errorf("querying lexical sidecar rows: %w", err)
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
		return fmt.Errorf("iterating lexical sidecar rows: %w", err)
	}
	rows.Close()

	for _, chunkID := range chunkIDs {
		if err := s.engine.Delete(ctx, chunkID); err != nil {
			return fmt.Errorf("deleting chunk %s from index: %w", chunkID, err)
		}
	}

	if _, err := s.db.ExecContext(ctx, fmt.Sprintf("DELETE FROM lexical_meta WHERE %s = ?", column), value); err != nil { //nolint:gosec // column is a fixed internal literal, never user input
		return fmt.Errorf("deleting lexical sidecar rows: %w", err)
	}
	return nil
}

func (s *Store) Search(ctx context.Context, query string, limit int, sourceFilter []string) ([]driven.LexicalHit, error) {
	hits, err := s.engine.Search(ctx, query, limit, sourceFilter)
	if err != nil {
		return nil, fmt.Errorf("searching lexical index: %w", err)
	}
	if len(hits) == 0 {
		return nil, nil
	}

	results := make([]driven.LexicalHit, 0, len(hits))
	for _, hit := range hits {
		var sourceID, docID, title, body string
		row := s.db.QueryRowContext(ctx,
			"SELECT source_id, doc_id, title, body FROM lexical_meta WHERE chunk_id = ?", hit.ChunkID)
		if err := row.Scan(&sourceID, &docID, &title, &body); err != nil {
			if err == sql.ErrNoRows {
				continue
			}
			return nil, fmt.Errorf("looking up sidecar row for %s: %w", hit.ChunkID, err)
		}
		results = append(results, driven.LexicalHit{
			ChunkID:  hit.ChunkID,
			SourceID: sourceID,
			DocID:    docID,
			Title:    title,
			Body:     body,
			Score:    hit.Score,
		})
	}
	return results, nil
}

func (s *Store) Close() error {
	return s.engine.Close()
}
