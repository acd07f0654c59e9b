package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratbench/stratbench/internal/strategy"
)

func writeSpec(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "sweep.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	return path
}

func TestLoadSweepSpec(t *testing.T) {
	path := writeSpec(t, `
symbol: AAPL
runs:
  - name: rsi
    params:
      period: 7
  - name: ma_crossover
    params:
      short_window: 20
      long_window: 100
  - name: buy_and_hold
`)

	spec, err := loadSweepSpec(path)
	require.NoError(t, err)

	assert.Equal(t, "AAPL", spec.Symbol)
	require.Len(t, spec.Runs, 3)
	assert.Equal(t, "rsi", spec.Runs[0].Name)
	assert.Equal(t, 7, spec.Runs[0].Params["period"])
	assert.Equal(t, "buy_and_hold", spec.Runs[2].Name)
	assert.Nil(t, spec.Runs[2].Params)
}

func TestLoadSweepSpecMissingFile(t *testing.T) {
	_, err := loadSweepSpec(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadSweepSpecNoRuns(t *testing.T) {
	_, err := loadSweepSpec(writeSpec(t, "symbol: AAPL\n"))
	assert.Error(t, err)
}

func TestDefaultSweepRuns(t *testing.T) {
	runs := defaultSweepRuns()
	require.Len(t, runs, 6)

	names := make([]string, len(runs))
	for i, run := range runs {
		names[i] = run.Name
	}

	assert.Contains(t, names, strategy.NameBuyAndHold)
	assert.Contains(t, names, strategy.NameMACrossover)
}
