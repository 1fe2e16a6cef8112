package syncer

import (
	"fmt"
	"time"

	"CoinVault/internal/collector"
	"CoinVault/internal/model"
	"CoinVault/internal/store"
)

// Engine brings one asset's cached series up to date without re-fetching
// data already held. Read cache, fetch, merge, write; a fetch failure aborts
// before any write, so the prior cache entry always survives.
type Engine struct {
	Store   store.Store
	Fetcher collector.Fetcher
	Now     func() time.Time
}

// NewEngine creates an Engine with the real clock.
func NewEngine(st store.Store, f collector.Fetcher) *Engine {
	return &Engine{Store: st, Fetcher: f, Now: time.Now}
}

// Sync updates the cached series for one asset and returns the persisted
// result. With no prior cache the full history is fetched starting at the
// asset's first historical date. Otherwise the fetch resumes at the start of
// the day the cached status timestamp falls on, to tolerate partial last-day
// data; the quote for that boundary day may therefore repeat in the merged
// series (see DESIGN.md).
func (e *Engine) Sync(asset model.Asset) (*model.Series, error) {
	end := e.Now().Unix()
	ref := asset.Ref()

	if !e.Store.Exists(ref) {
		start, err := model.DayEpoch(asset.FirstHistoricalData)
		if err != nil {
			return nil, fmt.Errorf("first historical date of %s: %w", asset.Symbol, err)
		}
		full, err := e.Fetcher.FetchSeries(asset.ID, start, end)
		if err != nil {
			return nil, fmt.Errorf("full fetch %s: %w", asset.Symbol, err)
		}
		if err := e.Store.Save(full); err != nil {
			return nil, fmt.Errorf("save %s: %w", asset.Symbol, err)
		}
		return full, nil
	}

	cached, err := e.Store.Load(ref)
	if err != nil {
		return nil, fmt.Errorf("load cached %s: %w", asset.Symbol, err)
	}
	resume, err := model.DayEpoch(cached.StatusTimestamp)
	if err != nil {
		return nil, fmt.Errorf("status timestamp of %s: %w", asset.Symbol, err)
	}
	delta, err := e.Fetcher.FetchSeries(asset.ID, resume, end)
	if err != nil {
		return nil, fmt.Errorf("delta fetch %s: %w", asset.Symbol, err)
	}

	merged := Merge(cached, delta)
	if err := e.Store.Save(merged); err != nil {
		return nil, fmt.Errorf("save %s: %w", asset.Symbol, err)
	}
	return merged, nil
}

// Merge appends the delta quotes onto the cached quotes in the order
// received. Identity fields come from the cached series; the status
// timestamp advances to the delta's. Neither input is mutated.
func Merge(cached, delta *model.Series) *model.Series {
	merged := &model.Series{
		ID:              cached.ID,
		Name:            cached.Name,
		Symbol:          cached.Symbol,
		StatusTimestamp: delta.StatusTimestamp,
		Quotes:          make([]model.Quote, 0, len(cached.Quotes)+len(delta.Quotes)),
	}
	merged.Quotes = append(merged.Quotes, cached.Quotes...)
	merged.Quotes = append(merged.Quotes, delta.Quotes...)
	return merged
}

// Result is the per-asset outcome of a batch sync.
type Result struct {
	Asset  model.Asset
	Series *model.Series
	Err    error
}

// SyncAll syncs each asset in turn. One asset's failure never stops the
// batch; every asset gets its own Result.
func (e *Engine) SyncAll(assets []model.Asset) []Result {
	results := make([]Result, 0, len(assets))
	for _, a := range assets {
		series, err := e.Sync(a)
		results = append(results, Result{Asset: a, Series: series, Err: err})
	}
	return results
}
