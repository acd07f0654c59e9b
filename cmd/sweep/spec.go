package main

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/stratbench/stratbench/internal/strategy"
	"github.com/stratbench/stratbench/pkg/errors"
)

// sweepSpec is the YAML description of a sweep: one symbol and the list of
// strategy configurations to run against it. The same strategy may appear
// more than once with different parameters.
type sweepSpec struct {
	Symbol string            `yaml:"symbol"`
	Runs   []strategy.Config `yaml:"runs"`
}

func loadSweepSpec(path string) (*sweepSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to read sweep spec %s", path)
	}

	var spec sweepSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to parse sweep spec %s", path)
	}

	if len(spec.Runs) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfiguration, "sweep spec lists no runs")
	}

	return &spec, nil
}

// defaultSweepRuns is the run list used when no spec file is given: every
// strategy once, at its default parameters. buy_and_hold doubles as the
// benchmark row.
func defaultSweepRuns() []strategy.Config {
	names := []string{
		strategy.NameMACrossover,
		strategy.NameRSI,
		strategy.NameMACD,
		strategy.NameBollinger,
		strategy.NameMeanReversion,
		strategy.NameBuyAndHold,
	}

	runs := make([]strategy.Config, len(names))
	for i, name := range names {
		runs[i] = strategy.Config{Name: name}
	}

	return runs
}
