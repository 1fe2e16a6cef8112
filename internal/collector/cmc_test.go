package collector

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

const testPayload = `{
	"status": {"timestamp": "2021-07-15T08:00:00.000Z"},
	"data": {
		"id": 1,
		"name": "Bitcoin",
		"symbol": "BTC",
		"quotes": [
			{"timeOpen": "2021-07-13T00:00:00.000Z", "timeClose": "2021-07-13T23:59:59.999Z",
			 "quote": {"open": 100, "high": 110, "low": 90, "close": 105, "volume": 1000, "marketCap": 2000,
			           "timestamp": "2021-07-13T23:59:59.999Z"}},
			{"timeOpen": "2021-07-14T00:00:00.000Z", "timeClose": "2021-07-14T23:59:59.999Z",
			 "quote": {"open": 105, "high": 115, "low": 95, "close": 110, "volume": 1100, "marketCap": 2100,
			           "timestamp": "2021-07-14T23:59:59.999Z"}}
		]
	}
}`

func TestCMCFetcher_FetchSeries(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(testPayload))
	}))
	defer srv.Close()

	f := NewCMCFetcher(srv.URL, "", 2781, "")
	series, err := f.FetchSeries(1, 1625097600, 1627603200)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if gotQuery != "id=1&convertId=2781&timeStart=1625097600&timeEnd=1627603200" {
		t.Errorf("unexpected query: %s", gotQuery)
	}
	if series.ID != 1 || series.Name != "Bitcoin" || series.Symbol != "BTC" {
		t.Errorf("unexpected identity: %+v", series)
	}
	if series.StatusTimestamp != "2021-07-15T08:00:00.000Z" {
		t.Errorf("unexpected status timestamp: %s", series.StatusTimestamp)
	}
	if len(series.Quotes) != 2 {
		t.Fatalf("expected 2 quotes, got %d", len(series.Quotes))
	}
	if series.Quotes[0].Close != 105 || series.Quotes[1].Close != 110 {
		t.Errorf("quotes not flattened in order: %+v", series.Quotes)
	}
}

func TestCMCFetcher_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	f := NewCMCFetcher(srv.URL, "", 2781, "")
	_, err := f.FetchSeries(1, 0, 1)
	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Errorf("expected NetworkError, got %v", err)
	}
}

func TestCMCFetcher_DecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	f := NewCMCFetcher(srv.URL, "", 2781, "")
	_, err := f.FetchSeries(1, 0, 1)
	var decErr *DecodeError
	if !errors.As(err, &decErr) {
		t.Errorf("expected DecodeError, got %v", err)
	}
}

func TestCMCFetcher_EmptyPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":{},"data":{}}`))
	}))
	defer srv.Close()

	f := NewCMCFetcher(srv.URL, "", 2781, "")
	_, err := f.FetchSeries(1, 0, 1)
	var decErr *DecodeError
	if !errors.As(err, &decErr) {
		t.Errorf("expected DecodeError for empty payload, got %v", err)
	}
}
