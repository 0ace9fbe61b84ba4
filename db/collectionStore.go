package db

import "errors"

// ErrNotFound is returned when a named collection has never been saved.
var ErrNotFound = errors.New("collection not found")

// CollectionStore persists whole named collections as JSON documents.
// Load reads the full collection into v; Save replaces it atomically from
// the caller's point of view (read-all/write-all semantics).
type CollectionStore interface {
	Load(name string, v any) error
	Save(name string, v any) error
	Close() error
}
