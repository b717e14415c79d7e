package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/haiphan2000/trendbot/pkg/types"
)

// TestPositionSize_CryptoClamping tests the crypto floor and balance cap
func TestPositionSize_CryptoClamping(t *testing.T) {
	// Raw size 1000*0.01/0.02 = 500 smashes through the 5% cap.
	size := PositionSize(1000, 1, 2, types.MarketCrypto)
	assert.Equal(t, 50.0, size)

	// Tiny balance falls back to the 0.001 floor.
	size = PositionSize(0.01, 1, 2, types.MarketCrypto)
	assert.Equal(t, 0.001, size)
}

// TestPositionSize_ForexClamping tests the forex floor and balance cap
func TestPositionSize_ForexClamping(t *testing.T) {
	size := PositionSize(1000, 1, 2, types.MarketForex)
	assert.Equal(t, 20.0, size) // 2% cap

	size = PositionSize(0.1, 1, 2, types.MarketForex)
	assert.Equal(t, 0.01, size) // lot floor
}

// TestPositionSize_RiskLevelClamped tests that out-of-range risk levels are
// pulled back into the 1-5 band
func TestPositionSize_RiskLevelClamped(t *testing.T) {
	assert.Equal(t, PositionSize(1000, 1, 2, types.MarketCrypto), PositionSize(1000, 0, 2, types.MarketCrypto))
	assert.Equal(t, PositionSize(1000, 5, 2, types.MarketCrypto), PositionSize(1000, 9, 2, types.MarketCrypto))
}

// TestPnLPercent tests side adjustment of the raw price change
func TestPnLPercent(t *testing.T) {
	assert.InDelta(t, 0.10, PnLPercent(types.SideBuy, 100, 110), 1e-12)
	assert.InDelta(t, -0.10, PnLPercent(types.SideSell, 100, 110), 1e-12)
	assert.InDelta(t, 0.10, PnLPercent(types.SideSell, 100, 90), 1e-12)
}

// TestEvaluate_TargetProfit tests the target-profit exit
func TestEvaluate_TargetProfit(t *testing.T) {
	v := Evaluate(types.SideBuy, 100, 105, DefaultTargetProfit, DefaultStopLoss)

	assert.True(t, v.Close)
	assert.True(t, v.ProfitReached)
	assert.InDelta(t, 0.05, v.Profit, 1e-12)
	assert.Equal(t, "Target profit reached", v.Reason)
}

// TestEvaluate_StopLoss tests the stop-loss exit
func TestEvaluate_StopLoss(t *testing.T) {
	v := Evaluate(types.SideBuy, 100, 97, DefaultTargetProfit, DefaultStopLoss)

	assert.True(t, v.Close)
	assert.False(t, v.ProfitReached)
	assert.InDelta(t, -0.03, v.Profit, 1e-12)
	assert.Equal(t, "Stop loss hit", v.Reason)
}

// TestEvaluate_Hold tests the in-between case
func TestEvaluate_Hold(t *testing.T) {
	v := Evaluate(types.SideBuy, 100, 101, DefaultTargetProfit, DefaultStopLoss)

	assert.False(t, v.Close)
	assert.InDelta(t, 0.01, v.Profit, 1e-12)
	assert.Empty(t, v.Reason)
}

// TestEvaluate_ShortSide tests that a short position profits from falling
// prices
func TestEvaluate_ShortSide(t *testing.T) {
	v := Evaluate(types.SideSell, 100, 94, DefaultTargetProfit, DefaultStopLoss)

	assert.True(t, v.Close)
	assert.True(t, v.ProfitReached)
	assert.InDelta(t, 0.06, v.Profit, 1e-12)
}

// TestTrailingStopHit tests trailing stop trigger conditions
func TestTrailingStopHit(t *testing.T) {
	// Peak 120, 5% trail puts the stop at 114.
	assert.True(t, TrailingStopHit(100, 114, 5, 120))
	assert.True(t, TrailingStopHit(100, 110, 5, 120))

	// Above the stop: no trigger.
	assert.False(t, TrailingStopHit(100, 115, 5, 120))

	// At or below entry the trailing stop stays out of the way.
	assert.False(t, TrailingStopHit(100, 100, 5, 120))
	assert.False(t, TrailingStopHit(100, 95, 5, 120))
}
