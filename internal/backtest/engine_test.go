package backtest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haiphan2000/trendbot/internal/strategy"
	"github.com/haiphan2000/trendbot/pkg/types"
)

var baseTime = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func dailyCandles(closes []float64) []types.Candle {
	candles := make([]types.Candle, len(closes))
	for i, c := range closes {
		candles[i] = types.Candle{
			Timestamp: baseTime.AddDate(0, 0, i),
			Open:      c,
			High:      c + 1,
			Low:       c - 1,
			Close:     c,
			Volume:    1000,
		}
	}
	return candles
}

func risingSeries(n int, start, step float64) []float64 {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = start + float64(i)*step
	}
	return closes
}

func testRequest(n int) Request {
	return Request{
		Market:         types.MarketCrypto,
		Symbol:         "BTC-USDT",
		Params:         strategy.DefaultParams(),
		StartDate:      baseTime,
		EndDate:        baseTime.AddDate(0, 0, n),
		InitialCapital: 10000,
	}
}

// TestSimulate_EmptyData tests that a run over no candles degrades cleanly
func TestSimulate_EmptyData(t *testing.T) {
	result := Simulate(nil, testRequest(10))

	assert.Equal(t, 10000.0, result.FinalCapital)
	assert.Equal(t, 0, result.TotalTrades)
	assert.Len(t, result.EquityCurve, 1) // the seed point at the range start
	assert.Equal(t, 10000.0, result.EquityCurve[0].Equity)
}

// TestSimulate_WarmupSkipsEarlyBars tests that no trade opens before the
// warmup period
func TestSimulate_WarmupSkipsEarlyBars(t *testing.T) {
	// Default warmup is 30 bars; 25 candles mean no bar is ever evaluated.
	candles := dailyCandles(risingSeries(25, 100, 1))
	result := Simulate(candles, testRequest(25))

	assert.Equal(t, 0, result.TotalTrades)
	assert.Equal(t, 10000.0, result.FinalCapital)
}

// TestSimulate_RisingSeriesTrades tests the canonical profitable scenario:
// a steady uptrend entered long and ratcheted out at take-profit
func TestSimulate_RisingSeriesTrades(t *testing.T) {
	candles := dailyCandles(risingSeries(90, 100, 1))
	result := Simulate(candles, testRequest(90))

	require.NotEmpty(t, result.Trades)
	for _, trade := range result.Trades {
		assert.Equal(t, types.SideBuy, trade.Side)
		assert.Greater(t, trade.Profit, 0.0)
	}
	assert.Greater(t, result.FinalCapital, result.InitialCapital)
	assert.Equal(t, 100.0, result.WinRate)
}

// TestSimulate_ProfitsReconcile tests that the sum of trade profits equals
// the change in capital
func TestSimulate_ProfitsReconcile(t *testing.T) {
	closes := risingSeries(60, 100, 1)
	// Inject a downturn so the run has both winners and losers.
	for i := 40; i < 50; i++ {
		closes[i] = closes[39] - 2*float64(i-39)
	}
	candles := dailyCandles(closes)
	result := Simulate(candles, testRequest(60))

	sum := 0.0
	for _, trade := range result.Trades {
		sum += trade.Profit
	}
	assert.InDelta(t, result.FinalCapital-result.InitialCapital, sum, 1e-9)
	assert.Equal(t, len(result.Trades), result.TotalTrades)
}

// TestSimulate_AtMostOnePosition tests the single-open-position invariant
// by replaying the interval bookkeeping from the ledger
func TestSimulate_AtMostOnePosition(t *testing.T) {
	closes := risingSeries(90, 100, 1)
	for i := 50; i < 60; i++ {
		closes[i] = closes[49] - 3*float64(i-49)
	}
	result := Simulate(dailyCandles(closes), testRequest(90))

	require.NotEmpty(t, result.Trades)
	for i := 1; i < len(result.Trades); i++ {
		prev, cur := result.Trades[i-1], result.Trades[i]
		assert.False(t, cur.Time.Before(prev.ExitTime),
			"trade %d opened before trade %d closed", i, i-1)
	}
}

// TestSimulate_ForcedFinalClose tests that a position still open at series
// end is closed at the last candle
func TestSimulate_ForcedFinalClose(t *testing.T) {
	// Rise into an entry, then go flat so no exit threshold fires.
	closes := risingSeries(35, 100, 1)
	for i := 31; i < 35; i++ {
		closes[i] = closes[31]
	}
	candles := dailyCandles(closes)
	result := Simulate(candles, testRequest(35))

	require.NotEmpty(t, result.Trades)
	last := result.Trades[len(result.Trades)-1]
	assert.Equal(t, candles[len(candles)-1].Close, last.Exit)
	assert.Equal(t, candles[len(candles)-1].Timestamp, last.ExitTime)
}

// TestSimulate_Deterministic tests that two runs over identical input are
// identical in every field
func TestSimulate_Deterministic(t *testing.T) {
	closes := risingSeries(90, 100, 1)
	for i := 40; i < 55; i++ {
		closes[i] = closes[39] - float64(i-39)
	}
	candles := dailyCandles(closes)
	req := testRequest(90)

	first := Simulate(candles, req)
	second := Simulate(candles, req)

	assert.Equal(t, first, second)
}

// TestSimulate_EntrySizing tests the 2%-risk / 20%-cap entry size
func TestSimulate_EntrySizing(t *testing.T) {
	candles := dailyCandles(risingSeries(40, 100, 1))
	result := Simulate(candles, testRequest(40))

	require.NotEmpty(t, result.Trades)
	first := result.Trades[0]
	// 10000*0.02/0.03 = 6666.67 exceeds the 20% cap of 2000.
	assert.InDelta(t, 2000.0, first.Size, 1e-9)
}

// TestSimulate_FiltersDateRange tests that candles outside the range never
// reach the loop
func TestSimulate_FiltersDateRange(t *testing.T) {
	candles := dailyCandles(risingSeries(90, 100, 1))
	req := testRequest(90)
	req.StartDate = baseTime.AddDate(0, 0, 40)
	req.EndDate = baseTime.AddDate(0, 0, 50)

	result := Simulate(candles, req)

	// 11 candles within range is below the 30-bar warmup.
	assert.Equal(t, 0, result.TotalTrades)
	for _, point := range result.EquityCurve[1:] {
		assert.False(t, point.Timestamp.Before(req.StartDate))
		assert.False(t, point.Timestamp.After(req.EndDate))
	}
}

// TestSimulate_SortsUnorderedInput tests that the range filter also sorts
func TestSimulate_SortsUnorderedInput(t *testing.T) {
	candles := dailyCandles(risingSeries(90, 100, 1))
	shuffled := make([]types.Candle, len(candles))
	for i, c := range candles {
		shuffled[(i*37)%len(candles)] = c
	}

	want := Simulate(candles, testRequest(90))
	got := Simulate(shuffled, testRequest(90))
	assert.Equal(t, want, got)
}

type stubProvider struct {
	candles []types.Candle
}

func (s *stubProvider) GetHistoricalData(ctx context.Context, symbol, timeframe string, limit int) ([]types.Candle, error) {
	return s.candles, nil
}

func (s *stubProvider) GetCurrentPrice(ctx context.Context, symbol string) (types.Quote, error) {
	last := s.candles[len(s.candles)-1]
	return types.Quote{Symbol: symbol, Price: last.Close, Timestamp: last.Timestamp}, nil
}

// TestEngine_Run tests the provider-backed entry point end to end
func TestEngine_Run(t *testing.T) {
	candles := dailyCandles(risingSeries(90, 100, 1))
	engine := NewEngine(&stubProvider{candles: candles}, nil)

	req := testRequest(90)
	result, err := engine.Run(context.Background(), req)
	require.NoError(t, err)

	want := Simulate(candles, req)
	assert.Equal(t, want, result)
	assert.Equal(t, "BTC-USDT", result.Symbol)
	assert.Equal(t, "ema-rsi", result.Strategy)
}
