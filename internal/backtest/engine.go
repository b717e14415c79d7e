package backtest

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/haiphan2000/trendbot/internal/logger"
	"github.com/haiphan2000/trendbot/internal/risk"
	"github.com/haiphan2000/trendbot/internal/strategy"
	"github.com/haiphan2000/trendbot/pkg/data"
	"github.com/haiphan2000/trendbot/pkg/types"
)

// Fixed backtest exit thresholds. Deliberately independent of the
// user-configurable live targetProfit/stopLoss so optimizer scores stay
// comparable across parameter sets.
const (
	takeProfitPct = 0.05
	stopLossPct   = 0.03
)

// Entry sizing: 2% of balance at risk against a 3% stop, capped at 20% of
// balance per trade.
const (
	riskPerTrade  = 0.02
	entryStopPct  = 0.03
	maxBalancePct = 0.2
)

// historyLimit is how many candles a run requests from the data source.
const historyLimit = 1000

// Request describes one backtest run.
type Request struct {
	Market         types.Market
	Symbol         string
	Timeframe      string
	Params         strategy.Params
	StartDate      time.Time
	EndDate        time.Time
	InitialCapital float64
}

// Engine fetches candles from a provider and simulates the strategy over
// them.
type Engine struct {
	provider data.Provider
	log      *logger.Logger
}

// NewEngine creates a backtest engine over the given market-data provider.
func NewEngine(provider data.Provider, log *logger.Logger) *Engine {
	if log == nil {
		log = logger.Nop()
	}
	return &Engine{provider: provider, log: log}
}

// Run fetches historical data for the request and simulates it. Candles
// outside [StartDate, EndDate] are dropped before the walk-forward loop.
func (e *Engine) Run(ctx context.Context, req Request) (*Result, error) {
	timeframe := req.Timeframe
	if timeframe == "" {
		timeframe = "1d"
	}

	candles, err := e.provider.GetHistoricalData(ctx, req.Symbol, timeframe, historyLimit)
	if err != nil {
		return nil, fmt.Errorf("loading history for %s: %w", req.Symbol, err)
	}

	e.log.Info("backtest starting",
		zap.String("symbol", req.Symbol),
		zap.String("strategy", req.Params.Strategy.String()),
		zap.Int("candles", len(candles)))

	return Simulate(candles, req), nil
}

// Simulate replays the candle series bar by bar and returns the completed
// result. It is pure: all state lives on the stack, so concurrent calls on
// shared candle data are safe.
func Simulate(candles []types.Candle, req Request) *Result {
	filtered := filterRange(candles, req.StartDate, req.EndDate)

	balance := req.InitialCapital
	var current *Trade
	trades := []Trade{}
	equityCurve := []EquityPoint{{Timestamp: req.StartDate, Equity: req.InitialCapital}}

	warmup := req.Params.WarmupPeriod()

	for i := warmup; i < len(filtered); i++ {
		candle := filtered[i]
		lookback := filtered[:i+1]

		signal := strategy.DetectTrend(types.Closes(lookback), types.Volumes(lookback), req.Params)

		if current != nil {
			profitPercent := risk.PnLPercent(current.Side, current.Entry, candle.Close)
			profitAmount := current.Value * profitPercent

			equity := balance + profitAmount
			equityCurve = append(equityCurve, EquityPoint{Timestamp: candle.Timestamp, Equity: equity})

			flipped := (current.Side == types.SideBuy && signal == strategy.SignalSell) ||
				(current.Side == types.SideSell && signal == strategy.SignalBuy)

			if flipped || profitPercent >= takeProfitPct || profitPercent <= -stopLossPct {
				balance = equity

				current.Exit = candle.Close
				current.ExitTime = candle.Timestamp
				current.Profit = profitAmount
				current.ProfitPercent = profitPercent
				trades = append(trades, *current)
				current = nil
			}
		} else {
			if signal == strategy.SignalBuy || signal == strategy.SignalSell {
				size := balance * riskPerTrade / entryStopPct
				if max := balance * maxBalancePct; size > max {
					size = max
				}

				side := types.SideBuy
				if signal == strategy.SignalSell {
					side = types.SideSell
				}
				current = &Trade{
					Symbol: req.Symbol,
					Side:   side,
					Entry:  candle.Close,
					Size:   size,
					Value:  size,
					Time:   candle.Timestamp,
				}
			}

			equityCurve = append(equityCurve, EquityPoint{Timestamp: candle.Timestamp, Equity: balance})
		}
	}

	// Force-close whatever is still open at the last candle.
	if current != nil && len(filtered) > 0 {
		last := filtered[len(filtered)-1]
		profitPercent := risk.PnLPercent(current.Side, current.Entry, last.Close)
		profitAmount := current.Value * profitPercent
		balance += profitAmount

		current.Exit = last.Close
		current.ExitTime = last.Timestamp
		current.Profit = profitAmount
		current.ProfitPercent = profitPercent
		trades = append(trades, *current)
		current = nil
	}

	result := &Result{
		Symbol:         req.Symbol,
		Market:         req.Market,
		Strategy:       req.Params.Strategy.String(),
		Parameters:     req.Params,
		StartDate:      req.StartDate.Format("2006-01-02"),
		EndDate:        req.EndDate.Format("2006-01-02"),
		InitialCapital: req.InitialCapital,
		FinalCapital:   balance,
		EquityCurve:    equityCurve,
		Trades:         trades,
	}
	computeMetrics(result)
	return result
}

// filterRange keeps candles within [start, end] inclusive, sorted ascending
// by timestamp.
func filterRange(candles []types.Candle, start, end time.Time) []types.Candle {
	filtered := make([]types.Candle, 0, len(candles))
	for _, c := range candles {
		if c.Timestamp.Before(start) || c.Timestamp.After(end) {
			continue
		}
		filtered = append(filtered, c)
	}
	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].Timestamp.Before(filtered[j].Timestamp)
	})
	return filtered
}
