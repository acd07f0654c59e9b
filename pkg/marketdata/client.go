// Package marketdata downloads historical daily bars from external vendors
// and persists them for backtesting.
package marketdata

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/stratbench/stratbench/internal/logger"
	"github.com/stratbench/stratbench/pkg/errors"
	"github.com/stratbench/stratbench/pkg/marketdata/provider"
	"github.com/stratbench/stratbench/pkg/marketdata/writer"
)

// WriterType defines the type of market data writer.
type WriterType string

const WriterDuckDB WriterType = "duckdb"

// ClientConfig holds the configuration for the market data client.
type ClientConfig struct {
	ProviderType  provider.ProviderType `validate:"required,oneof=polygon binance"`
	WriterType    WriterType            `validate:"required,oneof=duckdb"`
	DataPath      string                `validate:"required"`
	PolygonAPIKey string                `validate:"required_if=ProviderType polygon"`
}

// DownloadParams holds the parameters for one download request.
type DownloadParams struct {
	Symbol    string    `validate:"required"`
	StartDate time.Time `validate:"required"`
	EndDate   time.Time `validate:"required,gtfield=StartDate"`
}

// Client downloads bars from a provider and stores them through a writer.
type Client struct {
	provider   provider.Provider
	config     ClientConfig
	logger     *logger.Logger
	validate   *validator.Validate
	onProgress provider.OnDownloadProgress
}

// NewClient creates a market data client. onProgress may be nil.
func NewClient(config ClientConfig, l *logger.Logger, onProgress provider.OnDownloadProgress) (*Client, error) {
	validate := validator.New()
	if err := validate.Struct(config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid client configuration", err)
	}

	marketProvider, err := provider.NewProvider(config.ProviderType, config.PolygonAPIKey)
	if err != nil {
		return nil, err
	}

	return &Client{
		provider:   marketProvider,
		config:     config,
		logger:     l,
		validate:   validate,
		onProgress: onProgress,
	}, nil
}

// Download fetches the requested window and persists it. The number of bars
// written is returned.
func (c *Client) Download(ctx context.Context, params DownloadParams) (int, error) {
	if err := c.validate.Struct(params); err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidParameter, "invalid download parameters", err)
	}

	barWriter, err := c.newWriter()
	if err != nil {
		return 0, err
	}
	defer barWriter.Close()

	bars, err := c.provider.FetchDailyBars(ctx, params.Symbol, params.StartDate, params.EndDate, c.onProgress)
	if err != nil {
		return 0, err
	}

	if err := barWriter.WriteBars(ctx, params.Symbol, bars); err != nil {
		return 0, errors.Wrapf(errors.ErrCodeMarketDataWriteFailed, err, "failed to store bars for %s", params.Symbol)
	}

	return len(bars), nil
}

func (c *Client) newWriter() (writer.BarWriter, error) {
	switch c.config.WriterType {
	case WriterDuckDB:
		return writer.NewDuckDBWriter(c.config.DataPath, c.logger)
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidConfiguration, "unsupported writer type: %s", c.config.WriterType)
	}
}
