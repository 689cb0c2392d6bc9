package storage

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/Tiliavir/gh-wizard/internal/apperr"
)

const schema = `
CREATE TABLE IF NOT EXISTS documents (
	kind       TEXT PRIMARY KEY,
	body       TEXT NOT NULL,
	updated_at TEXT NOT NULL
)`

// SQLiteStore keeps each document as one row of the documents table.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore wraps an open database and makes sure the schema exists.
func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	if db == nil {
		return nil, apperr.Storage(errors.New("nil db"), "opening sqlite store")
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, apperr.Storage(err, "migrating sqlite store")
	}
	return &SQLiteStore{db: db}, nil
}

// OpenSQLite opens (or creates) the database file at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, apperr.Storage(err, "creating %s", filepath.Dir(path))
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, apperr.Storage(err, "opening %s", path)
	}
	store, err := NewSQLiteStore(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) Read(kind Kind) ([]byte, error) {
	var body string
	err := s.db.QueryRow(`SELECT body FROM documents WHERE kind = ?`, string(kind)).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Storage(err, "reading %s", kind)
	}
	return []byte(body), nil
}

func (s *SQLiteStore) Write(kind Kind, data []byte) error {
	_, err := s.db.Exec(`
		INSERT INTO documents (kind, body, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(kind) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`,
		string(kind), string(data), time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return apperr.Storage(err, "writing %s", kind)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
