package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/moznion/go-optional"
	"github.com/urfave/cli/v3"

	"github.com/stratbench/stratbench/internal/backtest"
	"github.com/stratbench/stratbench/internal/datasource"
	"github.com/stratbench/stratbench/internal/logger"
	"github.com/stratbench/stratbench/internal/strategy"
	"github.com/stratbench/stratbench/internal/version"
)

var headerStyle = lipgloss.NewStyle().Bold(true)

type sweepOutcome struct {
	name   string
	result *backtest.Result
	err    error
}

func sweepAction(ctx context.Context, cmd *cli.Command) error {
	l, err := logger.NewLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer l.Sync()

	source, err := openSource(cmd.String("data"), l)
	if err != nil {
		return err
	}
	defer source.Close()

	runs := defaultSweepRuns()

	base := backtest.DefaultRunConfig()
	base.Symbol = cmd.String("symbol")

	if specPath := cmd.String("spec"); specPath != "" {
		spec, err := loadSweepSpec(specPath)
		if err != nil {
			return err
		}

		runs = spec.Runs

		if !cmd.IsSet("symbol") && spec.Symbol != "" {
			base.Symbol = spec.Symbol
		}
	}

	if base.Symbol == "" {
		return fmt.Errorf("no symbol given: set --symbol or the spec's symbol field")
	}

	if cmd.IsSet("capital") {
		base.InitialCapital = cmd.Float("capital")
	}

	if cmd.IsSet("start") {
		base.StartTime = optional.Some(cmd.Timestamp("start"))
	}

	if cmd.IsSet("end") {
		base.EndTime = optional.Some(cmd.Timestamp("end"))
	}

	outcomes := make([]sweepOutcome, len(runs))

	var wg sync.WaitGroup

	// each goroutine gets its own runner and therefore its own ledger
	for i, run := range runs {
		wg.Add(1)

		go func(i int, run strategy.Config) {
			defer wg.Done()

			cfg := base
			cfg.Strategy = run

			result, err := backtest.NewRunner(source, l).Run(ctx, cfg, nil)
			outcomes[i] = sweepOutcome{name: run.Name, result: result, err: err}
		}(i, run)
	}

	wg.Wait()

	var results []*backtest.Result

	for _, outcome := range outcomes {
		if outcome.err != nil {
			return fmt.Errorf("strategy %s failed: %w", outcome.name, outcome.err)
		}

		results = append(results, outcome.result)
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Summary.TotalReturn > results[j].Summary.TotalReturn
	})

	fmt.Println(renderComparison(results))

	if outputDir := cmd.String("output"); outputDir != "" {
		for _, result := range results {
			if _, err := backtest.WriteResults(outputDir, result); err != nil {
				return err
			}
		}

		fmt.Printf("Results written to %s\n", outputDir)
	}

	return nil
}

// renderComparison renders one row per strategy, best total return first.
func renderComparison(results []*backtest.Result) string {
	var b strings.Builder

	header := fmt.Sprintf("%-28s %12s %12s %8s %12s %8s",
		"STRATEGY", "RETURN", "SHARPE", "TRADES", "MAX DD", "WIN")
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")

	for _, result := range results {
		s := result.Summary
		b.WriteString(fmt.Sprintf("%-28s %11.2f%% %12.2f %8d %11.2f%% %7.0f%%\n",
			s.Strategy, s.TotalReturn, s.SharpeRatio, s.NumTrades, s.MaxDrawdown, s.WinRate))
	}

	return b.String()
}

func openSource(dataPath string, l *logger.Logger) (datasource.DataSource, error) {
	if dataPath != "" {
		return datasource.NewDuckDBSource(dataPath, l)
	}

	return datasource.NewSyntheticSource(l), nil
}

func main() {
	cmd := &cli.Command{
		Name:    "sweep",
		Usage:   "Run a set of strategies against one symbol and compare the results",
		Version: version.GetVersion(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "symbol",
				Aliases: []string{"S"},
				Usage:   "Instrument symbol to backtest",
			},
			&cli.StringFlag{
				Name:  "spec",
				Usage: "YAML sweep spec listing the strategy configurations to run",
			},
			&cli.StringFlag{
				Name:  "data",
				Usage: "DuckDB database with downloaded bars; synthetic bars are generated when omitted",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Directory for run results; skipped when empty",
			},
			&cli.TimestampFlag{
				Name:  "start",
				Usage: "Start date in `YYYY-MM-DD` format",
				Config: cli.TimestampConfig{
					Layouts: []string{"2006-01-02", time.RFC3339},
				},
			},
			&cli.TimestampFlag{
				Name:  "end",
				Usage: "End date in `YYYY-MM-DD` format",
				Config: cli.TimestampConfig{
					Layouts: []string{"2006-01-02", time.RFC3339},
				},
			},
			&cli.FloatFlag{
				Name:  "capital",
				Usage: "Initial capital in USD",
			},
		},
		Action: sweepAction,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatalf("sweep failed: %v", err)
	}
}
