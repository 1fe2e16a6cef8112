package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"CoinVault/internal/model"
)

// SQLiteStore keeps one row per asset id, with the series record stored as
// a JSON document alongside its identity columns.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteStore opens (or creates) the SQLite database and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so exports can read while a sync writes another asset.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite cache opened: %s", dbPath)
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS series (
			id         INTEGER PRIMARY KEY,
			name       TEXT NOT NULL,
			symbol     TEXT NOT NULL,
			record     TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_series_symbol ON series(symbol)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec migration: %w", err)
		}
	}
	return nil
}

func (s *SQLiteStore) Exists(ref model.SeriesRef) bool {
	var one int
	err := s.db.QueryRow(`SELECT 1 FROM series WHERE id = ?`, ref.ID).Scan(&one)
	return err == nil
}

func (s *SQLiteStore) Load(ref model.SeriesRef) (*model.Series, error) {
	var record string
	err := s.db.QueryRow(`SELECT record FROM series WHERE id = ?`, ref.ID).Scan(&record)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("load [%s] %s: %w", ref.Symbol, ref.Name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query cache record: %w", err)
	}
	var series model.Series
	if err := json.Unmarshal([]byte(record), &series); err != nil {
		return nil, &MalformedCacheError{Key: fmt.Sprintf("series id %d", ref.ID), Err: err}
	}
	return &series, nil
}

func (s *SQLiteStore) Save(series *model.Series) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, err := json.Marshal(series)
	if err != nil {
		return fmt.Errorf("encode series: %w", err)
	}
	_, err = s.db.Exec(`INSERT INTO series (id, name, symbol, record, updated_at)
		VALUES (?,?,?,?,?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			symbol = excluded.symbol,
			record = excluded.record,
			updated_at = excluded.updated_at`,
		series.ID, series.Name, series.Symbol, string(record), time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("save cache record: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ListCached() ([]model.SeriesRef, error) {
	rows, err := s.db.Query(`SELECT id, name, symbol FROM series ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list cached series: %w", err)
	}
	defer rows.Close()

	var refs []model.SeriesRef
	for rows.Next() {
		var ref model.SeriesRef
		if err := rows.Scan(&ref.ID, &ref.Name, &ref.Symbol); err != nil {
			return nil, fmt.Errorf("scan cached series: %w", err)
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
