package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Tiliavir/gh-wizard/internal/apperr"
)

// JSONStore keeps one indented JSON file per kind inside a directory.
type JSONStore struct {
	dir string
}

// NewJSONStore returns a store rooted at dir. The directory is created on first write.
func NewJSONStore(dir string) *JSONStore {
	return &JSONStore{dir: dir}
}

// Path returns the file backing kind.
func (s *JSONStore) Path(kind Kind) string {
	return filepath.Join(s.dir, string(kind)+".json")
}

// Read loads the raw document. A file that is not valid JSON is moved aside
// to <file>.corrupt and reported as a storage error.
func (s *JSONStore) Read(kind Kind) ([]byte, error) {
	path := s.Path(kind)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Storage(err, "reading %s", path)
	}
	if !json.Valid(data) {
		backupPath := path + ".corrupt"
		_ = os.Rename(path, backupPath)
		return nil, apperr.Storage(fmt.Errorf("invalid JSON"), "corrupt %s (backed up to %s)", path, backupPath)
	}
	return data, nil
}

// Write atomically replaces the document: write to temp file then rename.
func (s *JSONStore) Write(kind Kind, data []byte) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return apperr.Storage(err, "creating %s", s.dir)
	}
	path := s.Path(kind)
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return apperr.Storage(err, "writing temp file %s", tmpPath)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return apperr.Storage(err, "renaming temp file %s", tmpPath)
	}
	return nil
}

// Close is a no-op; files are not held open between calls.
func (s *JSONStore) Close() error { return nil }
