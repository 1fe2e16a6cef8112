package collector

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"CoinVault/internal/model"
)

// CMCFetcher implements Fetcher against the CoinMarketCap data API.
type CMCFetcher struct {
	Client    *http.Client
	BaseURL   string
	APIKey    string
	ConvertID int // quote currency id, 2781 = USD
}

// NewCMCFetcher creates a CoinMarketCap fetcher.
func NewCMCFetcher(baseURL, apiKey string, convertID int, proxyURL string) *CMCFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &CMCFetcher{
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		BaseURL:   baseURL,
		APIKey:    apiKey,
		ConvertID: convertID,
	}
}

func (f *CMCFetcher) Name() string { return "coinmarketcap" }

// cmcHistorical is the response structure from the CMC historical API.
type cmcHistorical struct {
	Status struct {
		Timestamp    string `json:"timestamp"`
		ErrorMessage string `json:"error_message"`
	} `json:"status"`
	Data struct {
		ID     int    `json:"id"`
		Name   string `json:"name"`
		Symbol string `json:"symbol"`
		Quotes []struct {
			TimeOpen  string      `json:"timeOpen"`
			TimeClose string      `json:"timeClose"`
			Quote     model.Quote `json:"quote"`
		} `json:"quotes"`
	} `json:"data"`
}

func (f *CMCFetcher) FetchSeries(assetID int, startEpoch, endEpoch int64) (*model.Series, error) {
	u := fmt.Sprintf("%s/data-api/v3/cryptocurrency/historical?id=%d&convertId=%d&timeStart=%d&timeEnd=%d",
		f.BaseURL, assetID, f.ConvertID, startEpoch, endEpoch)

	req, err := http.NewRequest("GET", u, nil)
	if err != nil {
		return nil, &NetworkError{URL: u, Err: err}
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")
	if f.APIKey != "" {
		req.Header.Set("X-CMC_PRO_API_KEY", f.APIKey)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, &NetworkError{URL: u, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{URL: u, Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &NetworkError{URL: u, Err: fmt.Errorf("status %d: %s", resp.StatusCode, string(body))}
	}

	var hist cmcHistorical
	if err := json.Unmarshal(body, &hist); err != nil {
		return nil, &DecodeError{URL: u, Err: err}
	}
	if hist.Status.ErrorMessage != "" && hist.Status.ErrorMessage != "SUCCESS" {
		return nil, &NetworkError{URL: u, Err: fmt.Errorf("api error: %s", hist.Status.ErrorMessage)}
	}
	if hist.Data.ID == 0 || hist.Status.Timestamp == "" {
		return nil, &DecodeError{URL: u, Err: errors.New("empty payload")}
	}

	series := &model.Series{
		ID:              hist.Data.ID,
		Name:            hist.Data.Name,
		Symbol:          hist.Data.Symbol,
		StatusTimestamp: hist.Status.Timestamp,
		Quotes:          make([]model.Quote, 0, len(hist.Data.Quotes)),
	}
	for _, q := range hist.Data.Quotes {
		series.Quotes = append(series.Quotes, q.Quote)
	}
	return series, nil
}
