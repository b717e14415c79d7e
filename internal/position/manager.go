package position

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/haiphan2000/trendbot/internal/logger"
	"github.com/haiphan2000/trendbot/internal/monitoring"
	"github.com/haiphan2000/trendbot/internal/risk"
	"github.com/haiphan2000/trendbot/pkg/data"
	"github.com/haiphan2000/trendbot/pkg/types"
)

// ErrPriceUnavailable marks a failed quote during trade management. Callers
// should retry rather than treat the position as closeable or safe.
var ErrPriceUnavailable = errors.New("could not fetch current price")

// ErrNotMajorPair is returned when opening a symbol off the allowlist.
var ErrNotMajorPair = errors.New("only major pairs are allowed for trading")

// Manager opens, evaluates and closes live positions against an injected
// store and price source. It never touches backtest state.
type Manager struct {
	store  Store
	prices data.PriceSource
	log    *logger.Logger
}

// NewManager creates a position manager.
func NewManager(store Store, prices data.PriceSource, log *logger.Logger) *Manager {
	if log == nil {
		log = logger.Nop()
	}
	return &Manager{store: store, prices: prices, log: log}
}

// CanOpen reports whether the slot for the key is free.
func (m *Manager) CanOpen(ctx context.Context, key Key) (bool, error) {
	_, err := m.store.Get(ctx, key)
	if errors.Is(err, ErrPositionNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return false, nil
}

// Open sizes and records a new position at the current market price. The
// slot must be free and the symbol on the major-pair allowlist.
func (m *Manager) Open(ctx context.Context, key Key, side types.Side, available float64, riskLevel int, stopLossPercent float64) (Position, error) {
	if !types.IsMajorPair(key.Market, key.Symbol) {
		return Position{}, ErrNotMajorPair
	}

	quote, err := m.prices.GetCurrentPrice(ctx, key.Symbol)
	if err != nil {
		monitoring.RecordError("price_fetch")
		return Position{}, fmt.Errorf("%w: %v", ErrPriceUnavailable, err)
	}
	monitoring.UpdatePrice(key.Symbol, quote.Price)

	size := risk.PositionSize(available, riskLevel, stopLossPercent, key.Market)
	pos := Position{
		UserID:   key.UserID,
		Market:   key.Market,
		Symbol:   key.Symbol,
		Side:     side,
		Entry:    quote.Price,
		Size:     size,
		Value:    size,
		OpenedAt: quote.Timestamp,
	}

	if err := m.store.Open(ctx, pos); err != nil {
		return Position{}, err
	}

	monitoring.RecordOpen(string(key.Market), key.Symbol, string(side))
	m.log.Info("position opened",
		zap.Uint("user", key.UserID),
		zap.String("market", string(key.Market)),
		zap.String("symbol", key.Symbol),
		zap.String("side", string(side)),
		zap.Float64("entry", quote.Price),
		zap.Float64("size", size))
	return pos, nil
}

// Decision is the outcome of one ManageTrade evaluation.
type Decision struct {
	Close         bool
	ProfitReached bool
	CurrentPrice  float64
	Profit        float64
	Reason        string
}

// ManageTrade evaluates the open position in the slot for target-profit or
// stop-loss exit at the current market price. A failed quote surfaces as
// ErrPriceUnavailable, distinct from hold and close, so the caller can
// decide whether to retry.
func (m *Manager) ManageTrade(ctx context.Context, key Key, targetProfit, stopLoss float64) (Decision, error) {
	pos, err := m.store.Get(ctx, key)
	if err != nil {
		return Decision{}, err
	}

	quote, err := m.prices.GetCurrentPrice(ctx, key.Symbol)
	if err != nil {
		monitoring.RecordError("price_fetch")
		return Decision{}, fmt.Errorf("%w: %v", ErrPriceUnavailable, err)
	}
	monitoring.UpdatePrice(key.Symbol, quote.Price)

	verdict := risk.Evaluate(pos.Side, pos.Entry, quote.Price, targetProfit, stopLoss)
	return Decision{
		Close:         verdict.Close,
		ProfitReached: verdict.ProfitReached,
		CurrentPrice:  quote.Price,
		Profit:        verdict.Profit,
		Reason:        verdict.Reason,
	}, nil
}

// Close closes the open position in the slot at the given price and returns
// the realized profit.
func (m *Manager) Close(ctx context.Context, key Key, exitPrice float64, reason string, closedAt time.Time) (float64, error) {
	profit, err := m.store.Close(ctx, key, exitPrice, closedAt)
	if err != nil {
		return 0, err
	}

	monitoring.RecordClose(string(key.Market), key.Symbol, reason)
	m.log.Info("position closed",
		zap.Uint("user", key.UserID),
		zap.String("symbol", key.Symbol),
		zap.Float64("exit", exitPrice),
		zap.Float64("profit", profit),
		zap.String("reason", reason))
	return profit, nil
}
