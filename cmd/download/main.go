package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"

	"github.com/stratbench/stratbench/internal/logger"
	"github.com/stratbench/stratbench/internal/version"
	"github.com/stratbench/stratbench/pkg/marketdata"
	"github.com/stratbench/stratbench/pkg/marketdata/provider"
)

// downloadAction parses the flags, sets up the market data client and runs
// the download.
func downloadAction(ctx context.Context, cmd *cli.Command) error {
	l, err := logger.NewLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer l.Sync()

	symbol := cmd.String("symbol")
	startDate := cmd.Timestamp("start")
	endDate := cmd.Timestamp("end")

	var bar *progressbar.ProgressBar

	onProgress := func(current, total float64, message string) {
		if bar == nil {
			bar = progressbar.NewOptions(int(total), progressbar.OptionSetDescription(message))
		}

		bar.Set(int(current))
	}

	clientConfig := marketdata.ClientConfig{
		ProviderType:  provider.ProviderType(cmd.String("provider")),
		WriterType:    marketdata.WriterType(cmd.String("writer")),
		DataPath:      cmd.String("data"),
		PolygonAPIKey: os.Getenv("POLYGON_API_KEY"),
	}

	client, err := marketdata.NewClient(clientConfig, l, onProgress)
	if err != nil {
		return fmt.Errorf("failed to create market data client: %w", err)
	}

	log.Printf("Downloading %s from %s to %s via %s...",
		symbol, startDate.Format("2006-01-02"), endDate.Format("2006-01-02"), cmd.String("provider"))

	count, err := client.Download(ctx, marketdata.DownloadParams{
		Symbol:    symbol,
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		return fmt.Errorf("download failed: %w", err)
	}

	if bar != nil {
		bar.Finish()
		fmt.Println()
	}

	log.Printf("Downloaded %d bars for %s.", count, symbol)

	return nil
}

func main() {
	cmd := &cli.Command{
		Name:    "download",
		Usage:   "Download historical daily bars",
		Version: version.GetVersion(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "symbol",
				Aliases:  []string{"S"},
				Usage:    "Instrument symbol, e.g. AAPL or BTCUSDT",
				Required: true,
			},
			&cli.TimestampFlag{
				Name:    "start",
				Aliases: []string{"s"},
				Usage:   "Start date in `YYYY-MM-DD` format",
				Config: cli.TimestampConfig{
					Layouts: []string{"2006-01-02", time.RFC3339},
				},
				Required: true,
			},
			&cli.TimestampFlag{
				Name:    "end",
				Aliases: []string{"e"},
				Usage:   "End date in `YYYY-MM-DD` format. Defaults to today.",
				Value:   time.Now(),
				Config: cli.TimestampConfig{
					Layouts: []string{"2006-01-02", time.RFC3339},
				},
			},
			&cli.StringFlag{
				Name:    "provider",
				Aliases: []string{"p"},
				Usage:   "Market data provider (polygon or binance)",
				Value:   string(provider.ProviderBinance),
			},
			&cli.StringFlag{
				Name:    "writer",
				Aliases: []string{"w"},
				Usage:   "Storage backend (duckdb)",
				Value:   string(marketdata.WriterDuckDB),
			},
			&cli.StringFlag{
				Name:    "data",
				Aliases: []string{"d"},
				Usage:   "DuckDB database path to store downloaded bars",
				Value:   "./data/bars.db",
			},
		},
		Action: downloadAction,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatalf("download failed: %v", err)
	}
}
