package collector

import (
	"fmt"

	"CoinVault/internal/model"
)

// FetchCall records the window of one FetchSeries invocation.
type FetchCall struct {
	AssetID    int
	Start, End int64
}

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Series *model.Series
	Err    error
	Calls  []FetchCall
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchSeries(assetID int, startEpoch, endEpoch int64) (*model.Series, error) {
	m.Calls = append(m.Calls, FetchCall{AssetID: assetID, Start: startEpoch, End: endEpoch})
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Series == nil {
		return nil, fmt.Errorf("mock: no series configured")
	}
	cp := *m.Series
	cp.Quotes = append([]model.Quote(nil), m.Series.Quotes...)
	return &cp, nil
}
