package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/glebarez/sqlite"

	"docrank/internal/docstore"
	"docrank/internal/domain"
)

// Storage keeps the corpus and every session pool in one SQLite table.
// Rows are returned in insertion order so rankings stay deterministic.
type Storage struct {
	db *sql.DB
}

// NewStorage opens (or creates) the database at path. ":memory:" is accepted.
func NewStorage(path string) (*Storage, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// a single connection keeps ":memory:" databases shared
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS documents (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT UNIQUE NOT NULL,
			pool TEXT NOT NULL,
			name TEXT NOT NULL,
			extension TEXT NOT NULL,
			status TEXT NOT NULL,
			text TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_documents_pool ON documents(pool);
	`)
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Storage{db: db}, nil
}

// SeedCorpus replaces the corpus pool with docs.
func (s *Storage) SeedCorpus(ctx context.Context, docs []domain.Document) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()
	if _, err = tx.ExecContext(ctx, "DELETE FROM documents WHERE pool = ?", docstore.CorpusPool); err != nil {
		return err
	}
	for _, d := range docs {
		if _, err = tx.ExecContext(ctx,
			"INSERT INTO documents (id, pool, name, extension, status, text) VALUES (?, ?, ?, ?, ?, ?)",
			d.ID, docstore.CorpusPool, d.Name, string(d.Extension), string(d.Status), d.Text,
		); err != nil {
			return fmt.Errorf("seed %s: %w", d.ID, err)
		}
	}
	return tx.Commit()
}

func (s *Storage) ListCorpus(ctx context.Context) ([]domain.Document, error) {
	return s.list(ctx, docstore.CorpusPool, domain.SourceServer)
}

func (s *Storage) ListSession(ctx context.Context, sessionID string) ([]domain.Document, error) {
	return s.list(ctx, docstore.SessionPool(sessionID), domain.SourceUploaded)
}

func (s *Storage) AddUpload(ctx context.Context, sessionID, name string, text *string) (domain.Document, error) {
	doc, err := docstore.NewUpload(name, text)
	if err != nil {
		return domain.Document{}, err
	}
	_, err = s.db.ExecContext(ctx,
		"INSERT INTO documents (id, pool, name, extension, status, text) VALUES (?, ?, ?, ?, ?, ?)",
		doc.ID, docstore.SessionPool(sessionID), doc.Name, string(doc.Extension), string(doc.Status), doc.Text,
	)
	if err != nil {
		return domain.Document{}, err
	}
	return doc, nil
}

func (s *Storage) RemoveUpload(ctx context.Context, sessionID, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM documents WHERE pool = ? AND id = ?", docstore.SessionPool(sessionID), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}

func (s *Storage) MarkProcessed(ctx context.Context, sessionID string, ids []string) (err error) {
	if len(ids) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()
	for _, id := range ids {
		if _, err = tx.ExecContext(ctx,
			"UPDATE documents SET status = ? WHERE pool = ? AND id = ? AND status = ?",
			string(domain.StatusProcessed), docstore.SessionPool(sessionID), id, string(domain.StatusReady),
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *Storage) Close() error { return s.db.Close() }

func (s *Storage) list(ctx context.Context, pool string, source domain.Source) ([]domain.Document, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, extension, status, text FROM documents WHERE pool = ? ORDER BY seq", pool)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := []domain.Document{}
	for rows.Next() {
		var d domain.Document
		var ext, status string
		if err := rows.Scan(&d.ID, &d.Name, &ext, &status, &d.Text); err != nil {
			return nil, err
		}
		d.Extension = domain.Extension(ext)
		d.Status = domain.Status(status)
		d.Source = source
		docs = append(docs, d)
	}
	return docs, rows.Err()
}
