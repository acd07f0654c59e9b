package backtest

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/stratbench/stratbench/internal/types"
	"github.com/stratbench/stratbench/pkg/errors"
)

// Artifact file names inside a run's results folder.
const (
	tradesFileName  = "trades.csv"
	equityFileName  = "equity.csv"
	summaryFileName = "summary.yaml"
)

// WriteResults persists one run under outputDir. Each run gets its own
// folder named after the strategy and the run id, holding the trade log,
// the equity curve and the performance summary. The folder path is
// returned.
func WriteResults(outputDir string, result *Result) (string, error) {
	if outputDir == "" {
		return "", errors.New(errors.ErrCodeBacktestNoResultsDir, "output directory is required")
	}

	runDir := filepath.Join(outputDir, fmt.Sprintf("%s_%s", result.Summary.Strategy, result.Summary.ID))
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", errors.Wrap(errors.ErrCodeBacktestWriteFailed, "failed to create results folder", err)
	}

	if err := writeTrades(filepath.Join(runDir, tradesFileName), result.Trades); err != nil {
		return "", err
	}

	if err := writeEquity(filepath.Join(runDir, equityFileName), result.Curve); err != nil {
		return "", err
	}

	if err := types.WriteSummary(filepath.Join(runDir, summaryFileName), result.Summary); err != nil {
		return "", errors.Wrap(errors.ErrCodeBacktestWriteFailed, "failed to write summary", err)
	}

	return runDir, nil
}

// writeTrades writes the trade log as CSV. A run without trades still gets
// a file with the header row, so downstream tooling never special-cases it.
func writeTrades(path string, trades []types.Trade) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeBacktestWriteFailed, "failed to create trades file", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if err := writer.Write(types.TradeCSVHeader); err != nil {
		return errors.Wrap(errors.ErrCodeBacktestWriteFailed, "failed to write trades header", err)
	}

	for _, trade := range trades {
		if err := writer.Write(trade.CSVRecord()); err != nil {
			return errors.Wrap(errors.ErrCodeBacktestWriteFailed, "failed to write trade row", err)
		}
	}

	writer.Flush()

	if err := writer.Error(); err != nil {
		return errors.Wrap(errors.ErrCodeBacktestWriteFailed, "failed to flush trades file", err)
	}

	return file.Close()
}

func writeEquity(path string, curve types.EquityCurve) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeBacktestWriteFailed, "failed to create equity file", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if err := writer.Write([]string{"date", "equity"}); err != nil {
		return errors.Wrap(errors.ErrCodeBacktestWriteFailed, "failed to write equity header", err)
	}

	for _, point := range curve {
		record := []string{
			point.Date.Format("2006-01-02"),
			fmt.Sprintf("%.6f", point.Equity),
		}
		if err := writer.Write(record); err != nil {
			return errors.Wrap(errors.ErrCodeBacktestWriteFailed, "failed to write equity row", err)
		}
	}

	writer.Flush()

	if err := writer.Error(); err != nil {
		return errors.Wrap(errors.ErrCodeBacktestWriteFailed, "failed to flush equity file", err)
	}

	return file.Close()
}
