// Package risk holds the pure position-sizing and exit rules shared by the
// live trade manager and the backtest engine.
package risk

import (
	"github.com/haiphan2000/trendbot/pkg/types"
)

// Per-market size floors and balance caps. Crypto sizes are denominated in
// base units, forex in lots.
const (
	cryptoMinSize = 0.001
	cryptoCapPct  = 0.05
	forexMinSize  = 0.01
	forexCapPct   = 0.02
)

// Default exit thresholds for live trade management.
const (
	DefaultTargetProfit = 0.05
	DefaultStopLoss     = 0.03
)

// PositionSize sizes a new position from the available balance. riskLevel
// (clamped to 1-5) is the percent of balance put at risk; the raw size is
// the risk amount leveraged by the stop-loss distance, then clamped to the
// per-market floor and balance cap.
func PositionSize(available float64, riskLevel int, stopLossPercent float64, market types.Market) float64 {
	if riskLevel < 1 {
		riskLevel = 1
	}
	if riskLevel > 5 {
		riskLevel = 5
	}

	riskAmount := available * float64(riskLevel) / 100
	size := riskAmount / (stopLossPercent / 100)

	if market == types.MarketForex {
		return clampSize(size, forexMinSize, available*forexCapPct)
	}
	return clampSize(size, cryptoMinSize, available*cryptoCapPct)
}

func clampSize(size, min, max float64) float64 {
	if size > max {
		size = max
	}
	if size < min {
		size = min
	}
	return size
}

// PnLPercent is the side-adjusted fractional profit of a position at the
// given price.
func PnLPercent(side types.Side, entry, current float64) float64 {
	change := (current - entry) / entry
	if side == types.SideSell {
		return -change
	}
	return change
}

// Verdict is the outcome of evaluating an open position against its exit
// thresholds.
type Verdict struct {
	Close         bool
	ProfitReached bool
	Profit        float64
	Reason        string
}

// Evaluate checks an open position for target-profit or stop-loss exit at
// the current price. When neither threshold is hit the verdict reports the
// unrealized profit and leaves the position open.
func Evaluate(side types.Side, entry, current, targetProfit, stopLoss float64) Verdict {
	pnl := PnLPercent(side, entry, current)

	if pnl >= targetProfit {
		return Verdict{Close: true, ProfitReached: true, Profit: pnl, Reason: "Target profit reached"}
	}
	if pnl <= -stopLoss {
		return Verdict{Close: true, Profit: pnl, Reason: "Stop loss hit"}
	}
	return Verdict{Profit: pnl}
}

// TrailingStopHit reports whether price has fallen to the trailing stop
// anchored at the highest price seen since entry. The trailing exit only
// fires while the position is still in profit; stopping out below entry is
// the fixed stop's job.
func TrailingStopHit(entry, current, trailingPercent, highestSinceEntry float64) bool {
	trailStop := highestSinceEntry * (1 - trailingPercent/100)
	return current <= trailStop && current > entry
}
