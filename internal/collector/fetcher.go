package collector

import (
	"fmt"

	"CoinVault/internal/model"
)

// Fetcher retrieves one asset's historical series from the market-data
// provider. Start and end are UTC epoch seconds; the returned series carries
// the provider's status timestamp as its data boundary.
type Fetcher interface {
	FetchSeries(assetID int, startEpoch, endEpoch int64) (*model.Series, error)
	Name() string
}

// NetworkError reports a transport failure or a non-OK provider response.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// DecodeError reports a malformed provider payload.
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode response from %s: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
