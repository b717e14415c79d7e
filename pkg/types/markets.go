package types

// Market identifies the asset class a symbol trades in. Position sizing
// limits and data connectors differ between the two.
type Market string

const (
	MarketCrypto Market = "crypto"
	MarketForex  Market = "forex"
)

// Side is the direction of a position.
type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

// majorPairs lists the symbols the live bot is allowed to trade.
var majorPairs = map[Market][]string{
	MarketCrypto: {
		"BTC-USDT", "ETH-USDT", "BNB-USDT", "SOL-USDT", "ADA-USDT",
		"XRP-USDT", "DOGE-USDT", "AVAX-USDT", "MATIC-USDT", "DOT-USDT",
	},
	MarketForex: {
		"EURUSD", "USDJPY", "GBPUSD", "USDCHF", "AUDUSD",
		"USDCAD", "NZDUSD", "EURJPY", "GBPJPY", "EURGBP",
	},
}

// IsMajorPair reports whether the symbol is on the allowlist for the market.
func IsMajorPair(market Market, symbol string) bool {
	for _, pair := range majorPairs[market] {
		if pair == symbol {
			return true
		}
	}
	return false
}

// MajorPairs returns the allowlisted symbols for a market.
func MajorPairs(market Market) []string {
	pairs := make([]string, len(majorPairs[market]))
	copy(pairs, majorPairs[market])
	return pairs
}
