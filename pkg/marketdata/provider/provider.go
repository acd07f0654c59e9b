// Package provider fetches historical daily bars from external market data
// vendors.
package provider

import (
	"context"
	"time"

	"github.com/stratbench/stratbench/internal/types"
	"github.com/stratbench/stratbench/pkg/errors"
)

// ProviderType defines the type of market data provider.
type ProviderType string

const (
	ProviderPolygon ProviderType = "polygon"
	ProviderBinance ProviderType = "binance"
)

// OnDownloadProgress reports download progress. current and total are in
// provider-specific units (bars or milliseconds of the window).
type OnDownloadProgress = func(current float64, total float64, message string)

// Provider downloads daily bars for one symbol and date range. The context
// can be used to cancel the download.
type Provider interface {
	// FetchDailyBars returns the daily bars for symbol inside [start, end],
	// sorted by date. onProgress may be nil.
	FetchDailyBars(ctx context.Context, symbol string, start, end time.Time, onProgress OnDownloadProgress) (types.BarSeries, error)
}

// NewProvider creates a market data provider. apiKey is only required by
// providers that authenticate, currently just Polygon.
func NewProvider(providerType ProviderType, apiKey string) (Provider, error) {
	switch providerType {
	case ProviderPolygon:
		return NewPolygonClient(apiKey)
	case ProviderBinance:
		return NewBinanceClient()
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidProvider, "unsupported market data provider: %s", providerType)
	}
}
