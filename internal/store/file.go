package store

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"CoinVault/internal/model"
)

// FileStore keeps one pretty-printed JSON record per asset in a cache
// directory, named "[SYM] Name - historical.json".
type FileStore struct {
	dir string
}

// NewFileStore creates the cache directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(ref model.SeriesRef) string {
	return filepath.Join(s.dir, fmt.Sprintf("[%s] %s - historical.json", ref.Symbol, ref.Name))
}

func (s *FileStore) Exists(ref model.SeriesRef) bool {
	_, err := os.Stat(s.path(ref))
	return err == nil
}

func (s *FileStore) Load(ref model.SeriesRef) (*model.Series, error) {
	data, err := os.ReadFile(s.path(ref))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("load [%s] %s: %w", ref.Symbol, ref.Name, ErrNotFound)
		}
		return nil, fmt.Errorf("read cache record: %w", err)
	}
	var series model.Series
	if err := json.Unmarshal(data, &series); err != nil {
		return nil, &MalformedCacheError{Key: s.path(ref), Err: err}
	}
	return &series, nil
}

// Save writes to a temp file in the cache directory and renames it into
// place, so a reader never observes a half-written record.
func (s *FileStore) Save(series *model.Series) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	data, err := json.MarshalIndent(series, "", "  ")
	if err != nil {
		return fmt.Errorf("encode series: %w", err)
	}
	tmp, err := os.CreateTemp(s.dir, ".series-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp record: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write temp record: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp record: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path(series.Ref())); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace cache record: %w", err)
	}
	return nil
}

// ListCached decodes every record in the cache directory to recover its
// identity fields. Malformed records are skipped with a warning.
func (s *FileStore) ListCached() ([]model.SeriesRef, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("list cache dir: %w", err)
	}
	var refs []model.SeriesRef
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read cache record %s: %w", e.Name(), err)
		}
		var series model.Series
		if err := json.Unmarshal(data, &series); err != nil {
			log.Printf("[WARN] skipping malformed cache record %s: %v", e.Name(), err)
			continue
		}
		refs = append(refs, series.Ref())
	}
	return refs, nil
}

func (s *FileStore) Close() error { return nil }
