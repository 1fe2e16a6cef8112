package export

import (
	"fmt"

	"CoinVault/internal/model"
)

// Header labels match the original spreadsheet layout: each value column is
// followed by its delta column.
var Header = []string{
	"Date",
	"Open", "Open D",
	"High", "High D",
	"Low", "Low D",
	"Close", "Close D",
	"Volume", "Volume D",
	"Market Cap", "Market cap D",
}

// Delta holds a row's movement relative to the row emitted after it:
// (cur-next)/next fractions for prices, cur-next differences for volume and
// market cap.
type Delta struct {
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
	MarketCap float64
}

// Row is one in-range quote. Delta is nil on the final row of a table,
// which has no next row to reference.
type Row struct {
	Date      string
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
	MarketCap float64
	Delta     *Delta
}

// Table is the export of one series: ordered rows plus the asset identity
// for downstream labeling. A series with no in-range quotes yields a table
// with zero rows.
type Table struct {
	Name   string
	Symbol string
	Rows   []Row
}

// Range filters each series' quotes to [start, end] (inclusive on both
// ends, compared at day granularity; dates as "2006-01-02") in their stored
// order, and derives the delta columns. One table per input series.
func Range(series []*model.Series, start, end string) ([]Table, error) {
	startU, err := model.DayEpoch(start)
	if err != nil {
		return nil, fmt.Errorf("start date: %w", err)
	}
	endU, err := model.DayEpoch(end)
	if err != nil {
		return nil, fmt.Errorf("end date: %w", err)
	}

	tables := make([]Table, 0, len(series))
	for _, s := range series {
		table := Table{Name: s.Name, Symbol: s.Symbol}
		for _, q := range s.Quotes {
			day, err := model.DayEpoch(q.Timestamp)
			if err != nil {
				return nil, fmt.Errorf("quote timestamp in [%s] %s: %w", s.Symbol, s.Name, err)
			}
			if day < startU || day > endU {
				continue
			}
			table.Rows = append(table.Rows, Row{
				Date:      model.Day(q.Timestamp),
				Open:      q.Open,
				High:      q.High,
				Low:       q.Low,
				Close:     q.Close,
				Volume:    q.Volume,
				MarketCap: q.MarketCap,
			})
		}
		deriveDeltas(table.Rows)
		tables = append(tables, table)
	}
	return tables, nil
}

func deriveDeltas(rows []Row) {
	for i := 0; i+1 < len(rows); i++ {
		next := rows[i+1]
		rows[i].Delta = &Delta{
			Open:      rel(rows[i].Open, next.Open),
			High:      rel(rows[i].High, next.High),
			Low:       rel(rows[i].Low, next.Low),
			Close:     rel(rows[i].Close, next.Close),
			Volume:    rows[i].Volume - next.Volume,
			MarketCap: rows[i].MarketCap - next.MarketCap,
		}
	}
}

func rel(cur, next float64) float64 {
	return (cur - next) / next
}
