package model

import (
	"fmt"
	"time"
)

const dayLayout = "2006-01-02"

// DayEpoch truncates an ISO date or timestamp to its calendar day and
// returns the UTC epoch seconds of that day's midnight. Only the first 10
// characters (the date portion) are considered, so partial-day status
// timestamps resolve to the start of their day.
func DayEpoch(ts string) (int64, error) {
	if len(ts) < len(dayLayout) {
		return 0, fmt.Errorf("timestamp %q too short for a date", ts)
	}
	t, err := time.Parse(dayLayout, ts[:len(dayLayout)])
	if err != nil {
		return 0, fmt.Errorf("parse date %q: %w", ts[:len(dayLayout)], err)
	}
	return t.Unix(), nil
}

// Day returns the date portion of an ISO timestamp.
func Day(ts string) string {
	if len(ts) < len(dayLayout) {
		return ts
	}
	return ts[:len(dayLayout)]
}
