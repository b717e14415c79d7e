package backtest

import (
	"math"
	"time"
)

// Analytics aggregates a closed trade ledger for reporting. Unlike the
// per-run metrics in Result, these work on any ledger — a backtest's
// trades or a user's persisted live trades.
type Analytics struct {
	Total        int           `json:"total"`
	Wins         int           `json:"win"`
	Losses       int           `json:"loss"`
	Profit       float64       `json:"profit"`
	WinRate      float64       `json:"winRate"`
	AvgProfit    float64       `json:"avgProfit"`
	BestTrade    float64       `json:"bestTrade"`
	WorstTrade   float64       `json:"worstTrade"`
	MaxWinStreak int           `json:"maxWinStreak"`
	AvgHoldTime  time.Duration `json:"avgHoldTime"`
	MaxDrawdown  float64       `json:"maxDrawdown"`
	SharpeRatio  float64       `json:"sharpeRatio"`
}

// ComputeAnalytics derives ledger-level statistics from closed trades.
// MaxDrawdown here is the largest drop of cumulative profit below its
// running peak, an absolute amount rather than a percentage.
func ComputeAnalytics(trades []Trade) Analytics {
	a := Analytics{Total: len(trades)}
	if len(trades) == 0 {
		return a
	}

	var (
		equity, peak, maxDD float64
		streak              int
		holdTotal           time.Duration
		holdCount           int
	)
	best := math.Inf(-1)
	worst := math.Inf(1)

	for _, t := range trades {
		p := t.Profit
		a.Profit += p

		if p > 0 {
			a.Wins++
			streak++
		} else if p < 0 {
			a.Losses++
			streak = 0
		} else {
			streak = 0
		}
		if streak > a.MaxWinStreak {
			a.MaxWinStreak = streak
		}

		best = math.Max(best, p)
		worst = math.Min(worst, p)

		equity += p
		peak = math.Max(peak, equity)
		maxDD = math.Max(maxDD, peak-equity)

		if !t.ExitTime.IsZero() && !t.Time.IsZero() {
			holdTotal += t.ExitTime.Sub(t.Time)
			holdCount++
		}
	}

	a.WinRate = round2(float64(a.Wins) / float64(a.Total) * 100)
	a.AvgProfit = round2(a.Profit / float64(a.Total))
	a.BestTrade = best
	a.WorstTrade = worst
	a.MaxDrawdown = maxDD
	if holdCount > 0 {
		a.AvgHoldTime = holdTotal / time.Duration(holdCount)
	}
	a.SharpeRatio = tradeSharpe(trades)
	return a
}

// tradeSharpe is the trade-profit Sharpe: mean over sample standard
// deviation (n-1), no annualization. Zero for fewer than two trades or
// zero variance.
func tradeSharpe(trades []Trade) float64 {
	if len(trades) < 2 {
		return 0
	}

	n := float64(len(trades))
	avg := 0.0
	for _, t := range trades {
		avg += t.Profit
	}
	avg /= n

	variance := 0.0
	for _, t := range trades {
		variance += math.Pow(t.Profit-avg, 2)
	}
	std := math.Sqrt(variance / (n - 1))

	if std == 0 {
		return 0
	}
	return avg / std
}
