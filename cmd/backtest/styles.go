package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/moznion/go-optional"

	"github.com/stratbench/stratbench/internal/types"
)

// Style definitions.
var (
	// TitleStyle for the summary header.
	TitleStyle = lipgloss.NewStyle().Bold(true)

	// LabelStyle for metric names.
	LabelStyle = lipgloss.NewStyle().Faint(true).Width(24)

	// GainStyle for favorable numbers.
	GainStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))

	// LossStyle for unfavorable numbers.
	LossStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

func optionalTime(t time.Time) optional.Option[time.Time] {
	if t.IsZero() {
		return optional.None[time.Time]()
	}

	return optional.Some(t)
}

// formatSignedPct colors a percentage by its sign.
func formatSignedPct(value float64) string {
	text := fmt.Sprintf("%.2f%%", value)
	if value > 0 {
		return GainStyle.Render(text)
	}

	if value < 0 {
		return LossStyle.Render(text)
	}

	return text
}

// renderSummary renders the performance summary as an aligned metric list.
func renderSummary(summary types.PerformanceSummary) string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render(fmt.Sprintf("%s on %s", summary.Strategy, summary.Symbol)))
	b.WriteString("\n")

	row := func(label, value string) {
		b.WriteString(LabelStyle.Render(label))
		b.WriteString(value)
		b.WriteString("\n")
	}

	row("Total Return", formatSignedPct(summary.TotalReturn))
	row("Annualized Return", formatSignedPct(summary.AnnualizedReturn))
	row("Volatility", fmt.Sprintf("%.2f%%", summary.Volatility))
	row("Sharpe Ratio", fmt.Sprintf("%.2f", summary.SharpeRatio))
	row("Max Drawdown", formatSignedPct(summary.MaxDrawdown))
	row("Max Drawdown Duration", fmt.Sprintf("%d bars", summary.MaxDrawdownDuration))
	row("Trades", fmt.Sprintf("%d", summary.NumTrades))
	row("Win Rate", fmt.Sprintf("%.2f%%", summary.WinRate))
	row("Profit Factor", fmt.Sprintf("%.2f", summary.ProfitFactor))
	row("Avg Trade Return", formatSignedPct(summary.AvgTradeReturn))
	row("Final Equity", fmt.Sprintf("%.2f", summary.FinalEquity))

	return b.String()
}
