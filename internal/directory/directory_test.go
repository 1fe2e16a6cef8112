package directory

import (
	"os"
	"path/filepath"
	"testing"

	"CoinVault/internal/model"
)

func testAssets() []model.Asset {
	return []model.Asset{
		{ID: 1, Name: "Bitcoin", Symbol: "BTC", Slug: "bitcoin", Rank: 1, IsActive: 1},
		{ID: 1027, Name: "Ethereum", Symbol: "ETH", Slug: "ethereum", Rank: 2, IsActive: 1},
	}
}

func TestResolve_CaseInsensitive(t *testing.T) {
	d := New(testAssets())
	got := d.Resolve([]string{"bitcoin", "eth"})
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(got))
	}
	if got[0].Symbol != "BTC" || got[1].Symbol != "ETH" {
		t.Errorf("expected [BTC ETH], got [%s %s]", got[0].Symbol, got[1].Symbol)
	}
}

func TestResolve_Unmatched(t *testing.T) {
	d := New(testAssets())
	if got := d.Resolve([]string{"doge"}); len(got) != 0 {
		t.Errorf("expected no matches for unknown query, got %d", len(got))
	}
}

func TestResolve_PerPairDuplicates(t *testing.T) {
	// One entry per matching (query, asset) pair: an asset matched by two
	// queries appears twice.
	d := New(testAssets())
	got := d.Resolve([]string{"btc", "bitcoin"})
	if len(got) != 2 {
		t.Fatalf("expected 2 entries for two matching queries, got %d", len(got))
	}
	if got[0].ID != 1 || got[1].ID != 1 {
		t.Errorf("expected both entries to be asset 1, got %d and %d", got[0].ID, got[1].ID)
	}
}

func TestListAll(t *testing.T) {
	d := New(testAssets())
	got := d.ListAll()
	if len(got) != 2 {
		t.Fatalf("expected 2 labels, got %d", len(got))
	}
	if got[0] != "[BTC] Bitcoin" || got[1] != "[ETH] Ethereum" {
		t.Errorf("unexpected labels: %v", got)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "currency_ids.json")
	payload := `{"status":{},"data":[
		{"id":1,"name":"Bitcoin","symbol":"BTC","slug":"bitcoin","rank":1,"is_active":1,
		 "first_historical_data":"2013-04-28T18:47:21.000Z","last_historical_data":"2021-07-15T23:59:59.999Z"}
	]}`
	if err := os.WriteFile(path, []byte(payload), 0644); err != nil {
		t.Fatal(err)
	}
	d, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if d.Len() != 1 {
		t.Fatalf("expected 1 asset, got %d", d.Len())
	}
	got := d.Resolve([]string{"BTC"})
	if len(got) != 1 || got[0].FirstHistoricalData != "2013-04-28T18:47:21.000Z" {
		t.Errorf("unexpected resolve result: %+v", got)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("expected error for missing snapshot")
	}
}
