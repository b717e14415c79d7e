package data

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/haiphan2000/trendbot/pkg/types"
)

// CachedProvider wraps a Provider with an expiring in-memory cache so
// repeated optimizer runs do not re-read the same candle files.
type CachedProvider struct {
	inner Provider
	cache *gocache.Cache
}

// NewCachedProvider creates a caching wrapper. Entries expire after ttl.
func NewCachedProvider(inner Provider, ttl time.Duration) *CachedProvider {
	return &CachedProvider{
		inner: inner,
		cache: gocache.New(ttl, 2*ttl),
	}
}

// GetHistoricalData returns cached candles when available.
func (p *CachedProvider) GetHistoricalData(ctx context.Context, symbol, timeframe string, limit int) ([]types.Candle, error) {
	key := fmt.Sprintf("%s|%s|%d", symbol, timeframe, limit)
	if cached, ok := p.cache.Get(key); ok {
		return cached.([]types.Candle), nil
	}

	candles, err := p.inner.GetHistoricalData(ctx, symbol, timeframe, limit)
	if err != nil {
		return nil, err
	}
	p.cache.Set(key, candles, gocache.DefaultExpiration)
	return candles, nil
}

// GetCurrentPrice always goes to the underlying provider; quotes go stale
// too fast to be worth caching.
func (p *CachedProvider) GetCurrentPrice(ctx context.Context, symbol string) (types.Quote, error) {
	return p.inner.GetCurrentPrice(ctx, symbol)
}
