package provider

import (
	"context"
	"fmt"
	"time"

	polygon "github.com/polygon-io/client-go/rest"
	"github.com/polygon-io/client-go/rest/models"

	"github.com/stratbench/stratbench/internal/types"
	"github.com/stratbench/stratbench/pkg/errors"
)

type PolygonClient struct {
	client *polygon.Client
}

// NewPolygonClient creates a Polygon.io provider. The API key is mandatory.
func NewPolygonClient(apiKey string) (*PolygonClient, error) {
	if apiKey == "" {
		return nil, errors.New(errors.ErrCodeInvalidProvider, "polygon api key is required")
	}

	return &PolygonClient{client: polygon.New(apiKey)}, nil
}

// FetchDailyBars implements Provider using Polygon's aggregates endpoint.
func (c *PolygonClient) FetchDailyBars(ctx context.Context, symbol string, start, end time.Time, onProgress OnDownloadProgress) (types.BarSeries, error) {
	totalDays := end.Sub(start).Hours()/24 + 1

	//nolint:exhaustruct // third-party struct with many optional fields
	params := models.ListAggsParams{
		Ticker:     symbol,
		Multiplier: 1,
		Timespan:   models.Day,
		From:       models.Millis(start),
		To:         models.Millis(end),
	}.WithLimit(50000)

	iter := c.client.ListAggs(ctx, params)

	var bars types.BarSeries

	for iter.Next() {
		agg := iter.Item()

		bar := types.Bar{
			Date:   time.Time(agg.Timestamp).UTC(),
			Open:   agg.Open,
			High:   agg.High,
			Low:    agg.Low,
			Close:  agg.Close,
			Volume: agg.Volume,
		}
		bars = append(bars, bar)

		if onProgress != nil {
			daysElapsed := bar.Date.Sub(start).Hours() / 24
			onProgress(daysElapsed, totalDays, fmt.Sprintf("Downloading %s from Polygon", symbol))
		}
	}

	if iter.Err() != nil {
		return nil, errors.Wrapf(errors.ErrCodeMarketDataFetchFailed, iter.Err(), "failed to list polygon aggregates for %s", symbol)
	}

	return bars, nil
}
