package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/stratbench/stratbench/internal/backtest"
	"github.com/stratbench/stratbench/internal/datasource"
	"github.com/stratbench/stratbench/internal/logger"
	"github.com/stratbench/stratbench/internal/strategy"
	"github.com/stratbench/stratbench/internal/version"
)

// loadRunConfig builds the run configuration from an optional YAML file and
// command line overrides. Flags win over the file, the file wins over
// defaults.
func loadRunConfig(cmd *cli.Command) (backtest.RunConfig, error) {
	cfg := backtest.DefaultRunConfig()

	if path := cmd.String("config"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if cmd.IsSet("symbol") {
		cfg.Symbol = cmd.String("symbol")
	}

	if cmd.IsSet("strategy") {
		cfg.Strategy.Name = cmd.String("strategy")
		cfg.Strategy.Params = nil
	}

	if params := cmd.String("params"); params != "" {
		parsed := map[string]any{}
		if err := yaml.Unmarshal([]byte(params), &parsed); err != nil {
			return cfg, fmt.Errorf("failed to parse strategy params: %w", err)
		}

		cfg.Strategy.Params = parsed
	}

	if cmd.IsSet("capital") {
		cfg.InitialCapital = cmd.Float("capital")
	}

	if cmd.IsSet("commission") {
		cfg.CommissionRate = cmd.Float("commission")
	}

	if cmd.IsSet("slippage") {
		cfg.SlippageRate = cmd.Float("slippage")
	}

	if cmd.IsSet("risk-free") {
		cfg.RiskFreeRate = cmd.Float("risk-free")
	}

	if cmd.IsSet("start") {
		cfg.StartTime = optionalTime(cmd.Timestamp("start"))
	}

	if cmd.IsSet("end") {
		cfg.EndTime = optionalTime(cmd.Timestamp("end"))
	}

	return cfg, nil
}

// openSource picks the bar source: a DuckDB database when --data is given,
// deterministic synthetic bars otherwise, optionally fronted by a SQLite
// cache.
func openSource(dataPath, cachePath string, l *logger.Logger) (datasource.DataSource, error) {
	var (
		source datasource.DataSource
		err    error
	)

	if dataPath != "" {
		source, err = datasource.NewDuckDBSource(dataPath, l)
		if err != nil {
			return nil, err
		}
	} else {
		source = datasource.NewSyntheticSource(l)
	}

	if cachePath != "" {
		source, err = datasource.NewCachedSource(source, cachePath, l)
		if err != nil {
			return nil, err
		}
	}

	return source, nil
}

func backtestAction(ctx context.Context, cmd *cli.Command) error {
	l, err := logger.NewLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer l.Sync()

	cfg, err := loadRunConfig(cmd)
	if err != nil {
		return err
	}

	source, err := openSource(cmd.String("data"), cmd.String("cache"), l)
	if err != nil {
		return err
	}
	defer source.Close()

	var bar *progressbar.ProgressBar

	onBar := func(done, total int) {
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetDescription(fmt.Sprintf("Backtesting %s", cfg.Symbol)),
				progressbar.OptionShowCount(),
			)
		}

		bar.Set(done)
	}

	runner := backtest.NewRunner(source, l)

	result, err := runner.Run(ctx, cfg, onBar)
	if err != nil {
		return err
	}

	if bar != nil {
		bar.Finish()
		fmt.Println()
	}

	fmt.Println(renderSummary(result.Summary))

	runDir, err := backtest.WriteResults(cmd.String("output"), result)
	if err != nil {
		return err
	}

	fmt.Printf("Results written to %s\n", runDir)

	return nil
}

func main() {
	cmd := &cli.Command{
		Name:    "backtest",
		Usage:   "Run a trading strategy backtest over daily bars",
		Version: version.GetVersion(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML run configuration file",
			},
			&cli.StringFlag{
				Name:    "symbol",
				Aliases: []string{"S"},
				Usage:   "Instrument symbol to backtest",
			},
			&cli.StringFlag{
				Name:    "strategy",
				Aliases: []string{"s"},
				Usage:   fmt.Sprintf("Strategy name (%s)", strategyNames()),
			},
			&cli.StringFlag{
				Name:  "params",
				Usage: "Inline YAML strategy parameters, e.g. 'short_window: 20'",
			},
			&cli.StringFlag{
				Name:  "data",
				Usage: "DuckDB database with downloaded bars; synthetic bars are generated when omitted",
			},
			&cli.StringFlag{
				Name:  "cache",
				Usage: "SQLite bar cache database path",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Directory for run results",
				Value:   "./results",
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
			&cli.FloatFlag{
				Name:  "commission",
				Usage: "Commission rate per fill, e.g. 0.001",
			},
			&cli.FloatFlag{
				Name:  "slippage",
				Usage: "Slippage rate per fill, e.g. 0.0005",
			},
			&cli.FloatFlag{
				Name:  "risk-free",
				Usage: "Annual risk free rate used by the Sharpe ratio",
			},
		},
		Action: backtestAction,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatalf("backtest failed: %v", err)
	}
}

func strategyNames() string {
	return strategy.NameMACrossover + ", " + strategy.NameRSI + ", " + strategy.NameMACD + ", " +
		strategy.NameBollinger + ", " + strategy.NameMeanReversion + ", " + strategy.NameBuyAndHold
}
