package types

import (
	"time"

	"github.com/stratbench/stratbench/pkg/errors"
)

// Bar is one OHLCV observation for a fixed calendar day.
type Bar struct {
	Date   time.Time `csv:"date"`
	Open   float64   `csv:"open"`
	High   float64   `csv:"high"`
	Low    float64   `csv:"low"`
	Close  float64   `csv:"close"`
	Volume float64   `csv:"volume"`
}

// BarSeries is an ordered sequence of bars, sorted ascending by date with no
// duplicate dates. Non-trading days are simply absent; no gap filling is done.
type BarSeries []Bar

// Validate checks the series ordering invariants: strictly increasing dates
// and no duplicates. An empty series is valid; callers that require data
// check emptiness themselves.
func (s BarSeries) Validate() error {
	for i := 1; i < len(s); i++ {
		if s[i].Date.Equal(s[i-1].Date) {
			return errors.Newf(errors.ErrCodeDuplicateDate, "duplicate bar date %s at index %d", s[i].Date.Format("2006-01-02"), i)
		}

		if s[i].Date.Before(s[i-1].Date) {
			return errors.Newf(errors.ErrCodeUnsortedSeries, "bar dates not ascending at index %d (%s after %s)",
				i, s[i-1].Date.Format("2006-01-02"), s[i].Date.Format("2006-01-02"))
		}
	}

	return nil
}

// Closes returns the close price column of the series.
func (s BarSeries) Closes() []float64 {
	closes := make([]float64, len(s))
	for i, bar := range s {
		closes[i] = bar.Close
	}

	return closes
}
