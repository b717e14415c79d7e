package backtest

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func curveOf(equities ...float64) []EquityPoint {
	curve := make([]EquityPoint, len(equities))
	for i, e := range equities {
		curve[i] = EquityPoint{Timestamp: baseTime.Add(time.Duration(i) * time.Hour), Equity: e}
	}
	return curve
}

// TestMaxDrawdown_KnownCurve tests the documented scenario: peak 110 to
// trough 80 is a 27.27% drawdown
func TestMaxDrawdown_KnownCurve(t *testing.T) {
	curve := curveOf(100, 110, 90, 95, 80, 120)

	dd := MaxDrawdown(curve, 100)
	assert.InDelta(t, 27.27, dd, 0.01)
}

// TestMaxDrawdown_MonotonicRise tests that a curve with no decline has no
// drawdown
func TestMaxDrawdown_MonotonicRise(t *testing.T) {
	assert.Zero(t, MaxDrawdown(curveOf(100, 105, 110, 120), 100))
}

// TestMaxDrawdown_PeakResets tests that a new high resets the tracking peak
func TestMaxDrawdown_PeakResets(t *testing.T) {
	// First dip: 100→90 off peak 100 = 10%. After the new high at 200 the
	// dip to 170 is 15%, measured off 200 not 100.
	dd := MaxDrawdown(curveOf(100, 90, 200, 170), 100)
	assert.InDelta(t, 15.0, dd, 1e-9)
}

// TestSharpeRatio_TooFewPoints tests the degenerate inputs
func TestSharpeRatio_TooFewPoints(t *testing.T) {
	assert.Zero(t, SharpeRatio(nil))
	assert.Zero(t, SharpeRatio(curveOf(100)))
}

// TestSharpeRatio_ZeroVariance tests a perfectly flat return series
func TestSharpeRatio_ZeroVariance(t *testing.T) {
	assert.Zero(t, SharpeRatio(curveOf(100, 100, 100)))
}

// TestSharpeRatio_Annualized tests the sqrt(252) annualization on a known
// two-return curve
func TestSharpeRatio_Annualized(t *testing.T) {
	// Returns are 10% and 20%: mean 0.15, population stddev 0.05.
	sharpe := SharpeRatio(curveOf(100, 110, 132))
	assert.InDelta(t, 0.15/0.05*math.Sqrt(252), sharpe, 1e-9)
}

// TestComputeMetrics_ProfitFactorSentinels tests the 999/0 sentinels
func TestComputeMetrics_ProfitFactorSentinels(t *testing.T) {
	r := &Result{
		InitialCapital: 1000,
		Trades:         []Trade{{Profit: 50}, {Profit: 25}},
		EquityCurve:    curveOf(1000, 1050, 1075),
	}
	computeMetrics(r)
	assert.Equal(t, 999.0, r.ProfitFactor)

	r = &Result{
		InitialCapital: 1000,
		Trades:         []Trade{{Profit: -50}},
		EquityCurve:    curveOf(1000, 950),
	}
	computeMetrics(r)
	assert.Equal(t, 0.0, r.ProfitFactor)
}

// TestComputeMetrics_ZeroProfitTrade tests that a single break-even trade
// counts as a loss and produces all-zero ratios
func TestComputeMetrics_ZeroProfitTrade(t *testing.T) {
	r := &Result{
		InitialCapital: 1000,
		Trades:         []Trade{{Profit: 0}},
		EquityCurve:    curveOf(1000),
	}
	computeMetrics(r)

	assert.Equal(t, 0.0, r.WinRate)
	assert.Equal(t, 0.0, r.ProfitFactor)
	assert.Equal(t, 0.0, r.SharpeRatio)
	assert.Equal(t, 1, r.TotalTrades)
	assert.Equal(t, 0, r.WinningTrades)
	assert.Equal(t, 1, r.LosingTrades)
}

// TestComputeMetrics_Aggregates tests win rate, ROI and largest win/loss
func TestComputeMetrics_Aggregates(t *testing.T) {
	r := &Result{
		InitialCapital: 1000,
		Trades: []Trade{
			{Profit: 100}, {Profit: -40}, {Profit: 60}, {Profit: -20},
		},
		EquityCurve: curveOf(1000, 1100, 1060, 1120, 1100),
	}
	computeMetrics(r)

	assert.Equal(t, 4, r.TotalTrades)
	assert.Equal(t, 2, r.WinningTrades)
	assert.Equal(t, 2, r.LosingTrades)
	assert.Equal(t, 50.0, r.WinRate)
	assert.InDelta(t, 160.0/60.0, r.ProfitFactor, 0.01)
	assert.Equal(t, 100.0, r.NetProfit)
	assert.Equal(t, 10.0, r.ReturnOnInvestment)
	assert.Equal(t, 100.0, r.LargestWin)
	assert.Equal(t, 40.0, r.LargestLoss)
}
