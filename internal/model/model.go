package model

// Asset is one entry of the provider's currency map snapshot. The field
// layout mirrors the map payload, so a saved snapshot decodes directly.
type Asset struct {
	ID                  int    `json:"id"`
	Name                string `json:"name"`
	Symbol              string `json:"symbol"`
	Slug                string `json:"slug"`
	Rank                int    `json:"rank"`
	IsActive            int    `json:"is_active"`
	FirstHistoricalData string `json:"first_historical_data"`
	LastHistoricalData  string `json:"last_historical_data"`
}

// Active reports whether the provider still tracks this asset.
func (a Asset) Active() bool { return a.IsActive != 0 }

// Ref returns the cache key for this asset's series.
func (a Asset) Ref() SeriesRef {
	return SeriesRef{ID: a.ID, Name: a.Name, Symbol: a.Symbol}
}

// Quote represents a single daily bar as delivered by the provider.
// Timestamp keeps the provider's ISO form; comparisons go through DayEpoch.
type Quote struct {
	Timestamp string  `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume"`
	MarketCap float64 `json:"marketCap"`
}

// Series holds one asset's quote history. StatusTimestamp is the upper
// bound through which the series is known to be complete; after a merge it
// is at least the timestamp of the last quote.
type Series struct {
	ID              int     `json:"id"`
	Name            string  `json:"name"`
	Symbol          string  `json:"symbol"`
	StatusTimestamp string  `json:"status_timestamp"`
	Quotes          []Quote `json:"quotes"`
}

// Ref returns the cache key for this series.
func (s *Series) Ref() SeriesRef {
	return SeriesRef{ID: s.ID, Name: s.Name, Symbol: s.Symbol}
}

// SeriesRef identifies one cached series.
type SeriesRef struct {
	ID     int
	Name   string
	Symbol string
}
