// Package backtest replays candle series through the signal detector and
// produces trade ledgers, equity curves and performance metrics. Runs are
// deterministic: identical candles and parameters yield identical results,
// and nothing here reads the wall clock.
package backtest

import (
	"time"

	"github.com/haiphan2000/trendbot/internal/strategy"
	"github.com/haiphan2000/trendbot/pkg/types"
)

// Trade is one closed (or force-closed) position in the ledger.
type Trade struct {
	Symbol        string     `json:"symbol"`
	Side          types.Side `json:"side"`
	Entry         float64    `json:"entry"`
	Size          float64    `json:"size"`
	Value         float64    `json:"value"`
	Time          time.Time  `json:"time"`
	Exit          float64    `json:"exit"`
	ExitTime      time.Time  `json:"exitTime"`
	Profit        float64    `json:"profit"`
	ProfitPercent float64    `json:"profitPercent"`
}

// EquityPoint is one sample of the equity curve, appended once per
// processed bar.
type EquityPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Equity    float64   `json:"equity"`
}

// Result is the immutable outcome of one backtest run. Its JSON form is
// the wire contract consumed by reporting layers.
type Result struct {
	Symbol         string          `json:"symbol"`
	Market         types.Market    `json:"market"`
	Strategy       string          `json:"strategy"`
	Parameters     strategy.Params `json:"parameters"`
	StartDate      string          `json:"startDate"`
	EndDate        string          `json:"endDate"`
	InitialCapital float64         `json:"initialCapital"`
	FinalCapital   float64         `json:"finalCapital"`

	NetProfit           float64 `json:"netProfit"`
	ReturnOnInvestment  float64 `json:"returnOnInvestment"`
	TotalTrades         int     `json:"totalTrades"`
	WinningTrades       int     `json:"winningTrades"`
	LosingTrades        int     `json:"losingTrades"`
	WinRate             float64 `json:"winRate"`
	ProfitFactor        float64 `json:"profitFactor"`
	LargestWin          float64 `json:"largestWin"`
	LargestLoss         float64 `json:"largestLoss"`
	MaxDrawdown         float64 `json:"maxDrawdown"`
	SharpeRatio         float64 `json:"sharpeRatio"`

	EquityCurve []EquityPoint `json:"equityCurve"`
	Trades      []Trade       `json:"trades"`
}
