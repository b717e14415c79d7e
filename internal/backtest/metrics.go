package backtest

import "math"

// profitFactorCap is the sentinel reported when there are profits but no
// losses. Kept at 999 for compatibility with existing result consumers.
const profitFactorCap = 999

// computeMetrics fills in the performance fields of a result from its
// trade ledger and equity curve.
func computeMetrics(r *Result) {
	var (
		winning, losing        int
		totalProfit, totalLoss float64
		largestWin, largestLoss float64
	)

	for _, trade := range r.Trades {
		if trade.Profit > 0 {
			winning++
			totalProfit += trade.Profit
			largestWin = math.Max(largestWin, trade.Profit)
		} else {
			losing++
			totalLoss += math.Abs(trade.Profit)
			largestLoss = math.Max(largestLoss, math.Abs(trade.Profit))
		}
	}

	total := len(r.Trades)
	winRate := 0.0
	if total > 0 {
		winRate = float64(winning) / float64(total) * 100
	}

	profitFactor := 0.0
	if totalLoss > 0 {
		profitFactor = totalProfit / totalLoss
	} else if totalProfit > 0 {
		profitFactor = profitFactorCap
	}

	netProfit := totalProfit - totalLoss

	r.TotalTrades = total
	r.WinningTrades = winning
	r.LosingTrades = losing
	r.WinRate = round2(winRate)
	r.ProfitFactor = round2(profitFactor)
	r.NetProfit = netProfit
	r.ReturnOnInvestment = round2(netProfit / r.InitialCapital * 100)
	r.LargestWin = largestWin
	r.LargestLoss = largestLoss
	r.MaxDrawdown = round2(MaxDrawdown(r.EquityCurve, r.InitialCapital))
	r.SharpeRatio = SharpeRatio(r.EquityCurve)
}

// MaxDrawdown computes the largest percentage decline of equity from its
// running peak. The peak resets whenever the curve makes a new high.
func MaxDrawdown(curve []EquityPoint, initialCapital float64) float64 {
	maxEquity := initialCapital
	maxDrawdown := 0.0

	for _, point := range curve {
		if point.Equity > maxEquity {
			maxEquity = point.Equity
		} else {
			drawdown := (maxEquity - point.Equity) / maxEquity * 100
			maxDrawdown = math.Max(maxDrawdown, drawdown)
		}
	}
	return maxDrawdown
}

// SharpeRatio computes the annualized Sharpe ratio from per-step equity
// returns: mean/stddev * sqrt(252). Fewer than two curve points or zero
// variance yields 0.
func SharpeRatio(curve []EquityPoint) float64 {
	if len(curve) < 2 {
		return 0
	}

	returns := make([]float64, 0, len(curve)-1)
	for i := 1; i < len(curve); i++ {
		prev := curve[i-1].Equity
		returns = append(returns, (curve[i].Equity-prev)/prev)
	}

	avg := 0.0
	for _, ret := range returns {
		avg += ret
	}
	avg /= float64(len(returns))

	variance := 0.0
	for _, ret := range returns {
		variance += math.Pow(ret-avg, 2)
	}
	stdDev := math.Sqrt(variance / float64(len(returns)))

	if stdDev == 0 {
		return 0
	}
	return avg / stdDev * math.Sqrt(252)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
