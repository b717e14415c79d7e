// Package data defines the market-data contract the core consumes and the
// file-backed provider used by backtests. Validating and sorting candle
// data is this layer's job; the engine downstream assumes ordered input.
package data

import (
	"context"

	"github.com/haiphan2000/trendbot/pkg/types"
)

// Provider supplies historical candles and current price quotes for a
// symbol. Implementations must return candles ascending by timestamp; the
// result may be shorter than the requested limit.
type Provider interface {
	GetHistoricalData(ctx context.Context, symbol, timeframe string, limit int) ([]types.Candle, error)
	GetCurrentPrice(ctx context.Context, symbol string) (types.Quote, error)
}

// PriceSource is the quote-only subset of Provider used by live trade
// management.
type PriceSource interface {
	GetCurrentPrice(ctx context.Context, symbol string) (types.Quote, error)
}
