// Package position tracks open trades for the live bot. At most one
// position may be open per (user, market, symbol) key; the store is the
// single authority for that invariant.
package position

import (
	"time"

	"github.com/haiphan2000/trendbot/pkg/types"
)

// Key identifies the slot a position occupies.
type Key struct {
	UserID uint
	Market types.Market
	Symbol string
}

// Position is one live trade. A position is created on open and mutated
// exactly once, by closing.
type Position struct {
	UserID   uint
	Market   types.Market
	Symbol   string
	Side     types.Side
	Entry    float64
	Size     float64
	Value    float64
	OpenedAt time.Time

	Exit          float64
	ClosedAt      time.Time
	Profit        float64
	ProfitPercent float64
}

// Key returns the slot this position occupies.
func (p Position) Key() Key {
	return Key{UserID: p.UserID, Market: p.Market, Symbol: p.Symbol}
}

// RealizedProfit computes the profit of closing the position at the given
// price: price distance times direction times size.
func (p Position) RealizedProfit(exitPrice float64) float64 {
	dir := 1.0
	if p.Side == types.SideSell {
		dir = -1.0
	}
	return (exitPrice - p.Entry) * dir * p.Size
}
