// Package storage persists the wizard's record collections.
//
// Every record kind lives in its own document:
//
//	{"kind": "tasks", "version": 1, "records": [...]}
//
// A missing document reads as an empty collection. Unreadable or corrupt
// documents fail with an error wrapping apperr.ErrStorage.
package storage

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/Tiliavir/gh-wizard/internal/apperr"
)

// Kind names a record collection.
type Kind string

const (
	Sessions  Kind = "sessions"
	Tasks     Kind = "tasks"
	Intervals Kind = "intervals"
	Stats     Kind = "stats"
)

// Kinds lists every collection the wizard stores.
var Kinds = []Kind{Sessions, Tasks, Intervals, Stats}

// SchemaVersion is written into every document.
const SchemaVersion = 1

// Backend names accepted by Open.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Store reads and writes raw documents. Read returns nil data and no error
// when the document does not exist yet.
type Store interface {
	Read(kind Kind) ([]byte, error)
	Write(kind Kind, data []byte) error
	Close() error
}

type document[T any] struct {
	Kind    Kind `json:"kind"`
	Version int  `json:"version"`
	Records []T  `json:"records"`
}

// Load decodes the collection stored under kind.
func Load[T any](s Store, kind Kind) ([]T, error) {
	data, err := s.Read(kind)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return []T{}, nil
	}
	var doc document[T]
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, apperr.Storage(err, "corrupt %s document", kind)
	}
	if doc.Kind != "" && doc.Kind != kind {
		return nil, apperr.Storage(fmt.Errorf("found kind %q", doc.Kind), "unexpected %s document", kind)
	}
	if doc.Records == nil {
		doc.Records = []T{}
	}
	return doc.Records, nil
}

// Save replaces the collection stored under kind.
func Save[T any](s Store, kind Kind, records []T) error {
	if records == nil {
		records = []T{}
	}
	data, err := json.MarshalIndent(document[T]{Kind: kind, Version: SchemaVersion, Records: records}, "", "  ")
	if err != nil {
		return apperr.Storage(err, "encoding %s", kind)
	}
	return s.Write(kind, data)
}

// Open returns the store for the configured backend rooted at dir.
func Open(backend, dir string) (Store, error) {
	switch backend {
	case "", BackendJSON:
		return NewJSONStore(dir), nil
	case BackendSQLite:
		return OpenSQLite(filepath.Join(dir, "wizard.db"))
	default:
		return nil, apperr.Validation("unknown storage backend %q (want %s or %s)", backend, BackendJSON, BackendSQLite)
	}
}
