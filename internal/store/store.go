package store

import (
	"errors"
	"fmt"

	"CoinVault/internal/model"
)

// ErrNotFound signals that no series is cached for the asset. First syncs
// branch on it; it is not a failure.
var ErrNotFound = errors.New("series not cached")

// MalformedCacheError wraps a stored record that fails to decode. The store
// never attempts repair; the record stays untouched for inspection.
type MalformedCacheError struct {
	Key string
	Err error
}

func (e *MalformedCacheError) Error() string {
	return fmt.Sprintf("malformed cache record %s: %v", e.Key, e.Err)
}

func (e *MalformedCacheError) Unwrap() error { return e.Err }

// Store persists one historical series per asset. Save replaces the whole
// record; a concurrent reader sees either the previous or the new version,
// never a partial write.
type Store interface {
	Exists(ref model.SeriesRef) bool
	Load(ref model.SeriesRef) (*model.Series, error)
	Save(s *model.Series) error
	ListCached() ([]model.SeriesRef, error)
	Close() error
}
