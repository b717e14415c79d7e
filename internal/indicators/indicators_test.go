package indicators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestEMA_SeededWithFirstPrice tests that the EMA series starts at the first price
func TestEMA_SeededWithFirstPrice(t *testing.T) {
	prices := []float64{100, 102, 101, 103, 105}
	ema := EMA(prices, 3)

	assert.Len(t, ema, len(prices))
	assert.Equal(t, prices[0], ema[0])
}

// TestEMA_SmoothingBound tests that each EMA value stays between the previous
// EMA value and the current price
func TestEMA_SmoothingBound(t *testing.T) {
	prices := []float64{100, 110, 95, 120, 90, 130, 85}
	ema := EMA(prices, 5)

	for i := 1; i < len(prices); i++ {
		lo, hi := ema[i-1], prices[i]
		if lo > hi {
			lo, hi = hi, lo
		}
		assert.GreaterOrEqual(t, ema[i], lo, "index %d", i)
		assert.LessOrEqual(t, ema[i], hi, "index %d", i)
	}
}

// TestEMA_ConstantSeries tests that a flat price series produces a flat EMA
func TestEMA_ConstantSeries(t *testing.T) {
	prices := []float64{50, 50, 50, 50, 50, 50}
	ema := EMA(prices, 4)

	for i, v := range ema {
		assert.InDelta(t, 50.0, v, 1e-12, "index %d", i)
	}
}

// TestEMA_ConvergesTowardPrice tests that a long run of identical prices pulls
// the EMA toward that price
func TestEMA_ConvergesTowardPrice(t *testing.T) {
	prices := make([]float64, 100)
	prices[0] = 10
	for i := 1; i < len(prices); i++ {
		prices[i] = 200
	}
	ema := EMA(prices, 5)

	assert.InDelta(t, 200.0, ema[len(ema)-1], 0.1)
}

// TestRSI_Bounded tests that RSI values stay within [0, 100]
func TestRSI_Bounded(t *testing.T) {
	prices := []float64{44, 44.34, 44.09, 44.15, 43.61, 44.33, 44.83, 45.10,
		45.42, 45.84, 46.08, 45.89, 46.03, 45.61, 46.28, 46.28, 46.00, 46.03}
	rsi := RSI(prices, 14)

	for i := 14; i < len(rsi); i++ {
		assert.GreaterOrEqual(t, rsi[i], 0.0, "index %d", i)
		assert.LessOrEqual(t, rsi[i], 100.0, "index %d", i)
	}
}

// TestRSI_UndefinedBeforePeriod tests that values before the bootstrap window
// stay zero
func TestRSI_UndefinedBeforePeriod(t *testing.T) {
	prices := []float64{10, 11, 12, 13, 14, 15, 16, 17}
	rsi := RSI(prices, 5)

	for i := 0; i < 5; i++ {
		assert.Zero(t, rsi[i], "index %d", i)
	}
	assert.NotZero(t, rsi[5])
}

// TestRSI_ZeroLossEdge tests the zero-average-loss boundary. With no losses
// the divisor is forced to 1, so RS = avgGain and RSI = 100 - 100/(1+avgGain),
// not a blanket clamp to 100.
func TestRSI_ZeroLossEdge(t *testing.T) {
	prices := make([]float64, 20)
	for i := range prices {
		prices[i] = 100 + float64(i) // +1 per bar, avgGain stays 1
	}
	rsi := RSI(prices, 14)

	want := 100 - 100/(1+1.0)
	assert.InDelta(t, want, rsi[len(rsi)-1], 1e-12)
}

// TestRSI_AllFalling tests that a strictly falling series stays near zero
func TestRSI_AllFalling(t *testing.T) {
	prices := make([]float64, 20)
	for i := range prices {
		prices[i] = 100 - float64(i)
	}
	rsi := RSI(prices, 14)

	assert.InDelta(t, 0.0, rsi[len(rsi)-1], 1e-9)
}

// TestRSI_InsufficientData tests that too-short input yields a zero series
// rather than an error or a panic
func TestRSI_InsufficientData(t *testing.T) {
	rsi := RSI([]float64{1, 2, 3}, 14)

	assert.Len(t, rsi, 3)
	for _, v := range rsi {
		assert.Zero(t, v)
	}
}
