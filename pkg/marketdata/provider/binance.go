package provider

import (
	"context"
	"fmt"
	"strconv"
	"time"

	binance "github.com/adshao/go-binance/v2"

	"github.com/stratbench/stratbench/internal/types"
	"github.com/stratbench/stratbench/pkg/errors"
)

// klinePageSize is Binance's maximum number of klines per request.
const klinePageSize = 500

type BinanceClient struct {
	client *binance.Client
}

// NewBinanceClient creates a Binance provider. Historical klines need no
// credentials.
func NewBinanceClient() (*BinanceClient, error) {
	return &BinanceClient{client: binance.NewClient("", "")}, nil
}

// FetchDailyBars implements Provider using paginated daily klines.
func (c *BinanceClient) FetchDailyBars(ctx context.Context, symbol string, start, end time.Time, onProgress OnDownloadProgress) (types.BarSeries, error) {
	startMillis := start.UnixMilli()
	endMillis := end.UnixMilli()

	var bars types.BarSeries

	currentStart := startMillis

	for {
		klines, err := c.client.NewKlinesService().
			Symbol(symbol).
			Interval("1d").
			StartTime(currentStart).
			EndTime(endMillis).
			Limit(klinePageSize).
			Do(ctx)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrCodeMarketDataFetchFailed, err, "failed to fetch klines for %s", symbol)
		}

		for _, kline := range klines {
			bar, err := klineToBar(kline)
			if err != nil {
				return nil, err
			}

			bars = append(bars, bar)
		}

		if onProgress != nil {
			onProgress(float64(currentStart-startMillis), float64(endMillis-startMillis),
				fmt.Sprintf("Downloading %s from Binance", symbol))
		}

		if len(klines) < klinePageSize {
			break
		}

		// next page starts one interval after the last kline's open time
		currentStart = klines[len(klines)-1].OpenTime + 1
	}

	return bars, nil
}

func klineToBar(kline *binance.Kline) (types.Bar, error) {
	fields := []string{kline.Open, kline.High, kline.Low, kline.Close, kline.Volume}
	values := make([]float64, len(fields))

	for i, field := range fields {
		value, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return types.Bar{}, errors.Wrapf(errors.ErrCodeMarketDataFetchFailed, err, "failed to parse kline field %q", field)
		}

		values[i] = value
	}

	return types.Bar{
		Date:   time.UnixMilli(kline.OpenTime).UTC(),
		Open:   values[0],
		High:   values[1],
		Low:    values[2],
		Close:  values[3],
		Volume: values[4],
	}, nil
}
