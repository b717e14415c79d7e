// Package reporting renders backtest results for humans and machines:
// console tables, JSON for downstream consumers, Excel workbooks for
// manual review.
package reporting

import (
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/haiphan2000/trendbot/internal/backtest"
)

// ConsoleReporter prints results as tables.
type ConsoleReporter struct {
	out io.Writer
}

// NewConsoleReporter creates a console reporter writing to stdout.
func NewConsoleReporter() *ConsoleReporter {
	return &ConsoleReporter{out: os.Stdout}
}

// NewConsoleReporterTo creates a console reporter writing to w.
func NewConsoleReporterTo(w io.Writer) *ConsoleReporter {
	return &ConsoleReporter{out: w}
}

// PrintSummary renders the headline metrics of a result.
func (r *ConsoleReporter) PrintSummary(result *backtest.Result) {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.SetTitle(fmt.Sprintf("Backtest %s (%s, %s)", result.Symbol, result.Market, result.Strategy))

	t.AppendRows([]table.Row{
		{"Date Range", fmt.Sprintf("%s .. %s", result.StartDate, result.EndDate)},
		{"Initial Capital", fmt.Sprintf("$%.2f", result.InitialCapital)},
		{"Final Capital", fmt.Sprintf("$%.2f", result.FinalCapital)},
		{"Net Profit", fmt.Sprintf("$%.2f", result.NetProfit)},
		{"ROI", fmt.Sprintf("%.2f%%", result.ReturnOnInvestment)},
		{"Total Trades", result.TotalTrades},
		{"Winning / Losing", fmt.Sprintf("%d / %d", result.WinningTrades, result.LosingTrades)},
		{"Win Rate", fmt.Sprintf("%.2f%%", result.WinRate)},
		{"Profit Factor", fmt.Sprintf("%.2f", result.ProfitFactor)},
		{"Largest Win", fmt.Sprintf("$%.2f", result.LargestWin)},
		{"Largest Loss", fmt.Sprintf("$%.2f", result.LargestLoss)},
		{"Max Drawdown", fmt.Sprintf("%.2f%%", result.MaxDrawdown)},
		{"Sharpe Ratio", fmt.Sprintf("%.2f", result.SharpeRatio)},
	})
	t.Render()
}

// PrintTrades renders the trade ledger.
func (r *ConsoleReporter) PrintTrades(result *backtest.Result) {
	if len(result.Trades) == 0 {
		fmt.Fprintln(r.out, "no trades")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Side", "Entry", "Exit", "Size", "Profit", "Profit %", "Opened", "Closed"})

	for i, trade := range result.Trades {
		t.AppendRow(table.Row{
			i + 1,
			trade.Side,
			fmt.Sprintf("%.4f", trade.Entry),
			fmt.Sprintf("%.4f", trade.Exit),
			fmt.Sprintf("%.2f", trade.Size),
			fmt.Sprintf("%.2f", trade.Profit),
			fmt.Sprintf("%.2f%%", trade.ProfitPercent*100),
			trade.Time.Format("2006-01-02"),
			trade.ExitTime.Format("2006-01-02"),
		})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 6, Align: text.AlignRight},
		{Number: 7, Align: text.AlignRight},
	})
	t.Render()
}

// PrintAnalytics renders ledger-level analytics.
func (r *ConsoleReporter) PrintAnalytics(a backtest.Analytics) {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.SetTitle("Trade Analytics")

	t.AppendRows([]table.Row{
		{"Trades", a.Total},
		{"Wins / Losses", fmt.Sprintf("%d / %d", a.Wins, a.Losses)},
		{"Win Rate", fmt.Sprintf("%.2f%%", a.WinRate)},
		{"Total Profit", fmt.Sprintf("$%.2f", a.Profit)},
		{"Avg Profit", fmt.Sprintf("$%.2f", a.AvgProfit)},
		{"Best / Worst", fmt.Sprintf("$%.2f / $%.2f", a.BestTrade, a.WorstTrade)},
		{"Max Win Streak", a.MaxWinStreak},
		{"Avg Hold Time", a.AvgHoldTime.String()},
		{"Max Drawdown", fmt.Sprintf("$%.2f", a.MaxDrawdown)},
		{"Sharpe (trades)", fmt.Sprintf("%.2f", a.SharpeRatio)},
	})
	t.Render()
}
