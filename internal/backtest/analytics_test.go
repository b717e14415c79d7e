package backtest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestComputeAnalytics_Empty tests the zero-ledger case
func TestComputeAnalytics_Empty(t *testing.T) {
	a := ComputeAnalytics(nil)

	assert.Equal(t, 0, a.Total)
	assert.Zero(t, a.Profit)
	assert.Zero(t, a.SharpeRatio)
}

// TestComputeAnalytics_Aggregates tests counts, extremes, streaks and hold
// times over a mixed ledger
func TestComputeAnalytics_Aggregates(t *testing.T) {
	open := baseTime
	trades := []Trade{
		{Profit: 10, Time: open, ExitTime: open.Add(2 * time.Hour)},
		{Profit: 20, Time: open.Add(3 * time.Hour), ExitTime: open.Add(7 * time.Hour)},
		{Profit: -5, Time: open.Add(8 * time.Hour), ExitTime: open.Add(14 * time.Hour)},
		{Profit: 15, Time: open.Add(15 * time.Hour), ExitTime: open.Add(19 * time.Hour)},
	}

	a := ComputeAnalytics(trades)

	assert.Equal(t, 4, a.Total)
	assert.Equal(t, 3, a.Wins)
	assert.Equal(t, 1, a.Losses)
	assert.Equal(t, 40.0, a.Profit)
	assert.Equal(t, 75.0, a.WinRate)
	assert.Equal(t, 10.0, a.AvgProfit)
	assert.Equal(t, 20.0, a.BestTrade)
	assert.Equal(t, -5.0, a.WorstTrade)
	assert.Equal(t, 2, a.MaxWinStreak)
	assert.Equal(t, 4*time.Hour, a.AvgHoldTime)
	assert.Equal(t, 5.0, a.MaxDrawdown) // cumulative profit dips 30→25
	assert.NotZero(t, a.SharpeRatio)
}

// TestComputeAnalytics_BreakEvenBreaksStreak tests that a zero-profit trade
// resets the win streak without counting as a loss
func TestComputeAnalytics_BreakEvenBreaksStreak(t *testing.T) {
	trades := []Trade{
		{Profit: 10}, {Profit: 10}, {Profit: 0}, {Profit: 10},
	}
	a := ComputeAnalytics(trades)

	assert.Equal(t, 3, a.Wins)
	assert.Equal(t, 0, a.Losses)
	assert.Equal(t, 2, a.MaxWinStreak)
}

// TestComputeAnalytics_SampleStddevSharpe tests the n-1 Sharpe on a known
// ledger
func TestComputeAnalytics_SampleStddevSharpe(t *testing.T) {
	// Profits 10 and 20: mean 15, sample stddev sqrt(50/1) ~ 7.071.
	a := ComputeAnalytics([]Trade{{Profit: 10}, {Profit: 20}})
	assert.InDelta(t, 15.0/7.0710678, a.SharpeRatio, 1e-6)

	// Identical profits: zero variance reports 0, not Inf.
	a = ComputeAnalytics([]Trade{{Profit: 10}, {Profit: 10}})
	assert.Zero(t, a.SharpeRatio)
}
