// auction/store/sqlite_store.go
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps every resource as one row of the documents table.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at path and applies the schema.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create db dir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db %s: %w", path, err)
	}
	// A single connection serializes writers instead of surfacing SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	for _, pragma := range []string{`PRAGMA journal_mode=WAL;`, `PRAGMA busy_timeout=5000;`} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply %s: %w", pragma, err)
		}
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func migrate(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS documents (
			name TEXT PRIMARY KEY,
			body TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return fmt.Errorf("migrate documents table: %w", err)
		}
	}
	return nil
}

func (s *SQLiteStore) Load(ctx context.Context, resource Resource) ([]byte, error) {
	if err := checkResource(resource); err != nil {
		return nil, err
	}
	var body string
	err := s.db.QueryRowContext(ctx, `SELECT body FROM documents WHERE name = ?`, resource.Key()).Scan(&body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrDocumentNotFound, resource)
		}
		return nil, fmt.Errorf("failed to load %s: %w", resource, err)
	}
	return checkLoaded(resource, []byte(body))
}

func (s *SQLiteStore) Save(ctx context.Context, resource Resource, doc []byte) error {
	data, err := formatDocument(resource, doc)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO documents (name, body, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`,
		resource.Key(), string(data), time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", resource, err)
	}
	return nil
}

func (s *SQLiteStore) Exists(ctx context.Context, resource Resource) (bool, error) {
	if err := checkResource(resource); err != nil {
		return false, err
	}
	var exists bool
	err := s.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM documents WHERE name = ?)`, resource.Key()).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check %s: %w", resource, err)
	}
	return exists, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
