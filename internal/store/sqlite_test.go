package store

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"CoinVault/internal/model"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("open sqlite store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStore_SaveLoad(t *testing.T) {
	s := newTestSQLiteStore(t)
	want := testSeries()
	if s.Exists(want.Ref()) {
		t.Fatal("series should not exist before save")
	}
	if err := s.Save(want); err != nil {
		t.Fatalf("save: %v", err)
	}
	if !s.Exists(want.Ref()) {
		t.Fatal("series should exist after save")
	}
	got, err := s.Load(want.Ref())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("loaded series differs:\ngot  %+v\nwant %+v", got, want)
	}
}

func TestSQLiteStore_UpsertReplaces(t *testing.T) {
	s := newTestSQLiteStore(t)
	if err := s.Save(testSeries()); err != nil {
		t.Fatal(err)
	}
	updated := testSeries()
	updated.StatusTimestamp = "2021-07-16T08:00:00.000Z"
	if err := s.Save(updated); err != nil {
		t.Fatal(err)
	}
	got, err := s.Load(updated.Ref())
	if err != nil {
		t.Fatal(err)
	}
	if got.StatusTimestamp != updated.StatusTimestamp {
		t.Errorf("expected status %s, got %s", updated.StatusTimestamp, got.StatusTimestamp)
	}
	refs, err := s.ListCached()
	if err != nil {
		t.Fatal(err)
	}
	if len(refs) != 1 {
		t.Errorf("upsert should not duplicate rows, got %d", len(refs))
	}
}

func TestSQLiteStore_LoadMissing(t *testing.T) {
	s := newTestSQLiteStore(t)
	_, err := s.Load(model.SeriesRef{ID: 9, Name: "Nothing", Symbol: "NONE"})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSQLiteStore_ListCached(t *testing.T) {
	s := newTestSQLiteStore(t)
	if err := s.Save(testSeries()); err != nil {
		t.Fatal(err)
	}
	eth := &model.Series{ID: 1027, Name: "Ethereum", Symbol: "ETH", StatusTimestamp: "2021-07-15T08:00:00.000Z"}
	if err := s.Save(eth); err != nil {
		t.Fatal(err)
	}
	refs, err := s.ListCached()
	if err != nil {
		t.Fatal(err)
	}
	if len(refs) != 2 || refs[0].ID != 1 || refs[1].ID != 1027 {
		t.Errorf("expected ids [1 1027] in order, got %v", refs)
	}
}
