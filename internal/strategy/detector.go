// Package strategy converts indicator values into discrete trading signals.
// Detection is stateless: the same closes, volumes and parameters always
// produce the same signal, and insufficient history always yields hold
// rather than an error.
package strategy

import (
	"github.com/haiphan2000/trendbot/internal/indicators"
)

// DetectTrend evaluates the variant selected by params against the latest
// bar of the given series and returns buy, sell or hold.
func DetectTrend(closes, volumes []float64, params Params) Signal {
	switch params.Strategy {
	case KindMACD:
		return macdTrend(closes, params)
	case KindVolume:
		return volumeTrend(closes, volumes, params)
	case KindTripleEMA:
		return tripleEMATrend(closes, params)
	default:
		return emaRSITrend(closes, params)
	}
}

// emaRSITrend crosses a fast and slow EMA and gates the result with an RSI
// band. RiskLevel shifts both band edges inward by 10 points per level,
// narrowing the RSI range that still allows an entry.
func emaRSITrend(closes []float64, params Params) Signal {
	if len(closes) < maxInt(params.EMAFast, params.EMASlow, params.RSIPeriod) {
		return SignalHold
	}
	emaFast := indicators.EMA(closes, params.EMAFast)
	emaSlow := indicators.EMA(closes, params.EMASlow)
	rsi := indicators.RSI(closes, params.RSIPeriod)
	last := len(closes) - 1

	shift := 10 * float64(params.RiskLevel-1)
	if emaFast[last] > emaSlow[last] && rsi[last] < 70-shift {
		return SignalBuy
	}
	if emaFast[last] < emaSlow[last] && rsi[last] > 30+shift {
		return SignalSell
	}
	return SignalHold
}

// macdTrend compares the MACD line against its signal line on the latest bar.
func macdTrend(closes []float64, params Params) Signal {
	if len(closes) < maxInt(params.MACDFast, params.MACDSlow, params.MACDSignal) {
		return SignalHold
	}
	emaFast := indicators.EMA(closes, params.MACDFast)
	emaSlow := indicators.EMA(closes, params.MACDSlow)
	macd := make([]float64, len(closes))
	for i := range macd {
		macd[i] = emaFast[i] - emaSlow[i]
	}
	signal := indicators.EMA(macd, params.MACDSignal)
	last := len(closes) - 1

	if macd[last] > signal[last] {
		return SignalBuy
	}
	if macd[last] < signal[last] {
		return SignalSell
	}
	return SignalHold
}

// volumeTrend looks for a volume spike on the latest bar (>1.5x the 20-bar
// average) and follows the price direction over the last 5-bar window.
func volumeTrend(closes, volumes []float64, params Params) Signal {
	if len(closes) < 10 {
		return SignalHold
	}

	// Average over up to 20 trailing bars, always divided by 20.
	start := len(volumes) - 20
	if start < 0 {
		start = 0
	}
	sum := 0.0
	for _, v := range volumes[start:] {
		sum += v
	}
	avgVol := sum / 20

	windowStart := len(closes) - 5
	if windowStart < 0 {
		windowStart = 0
	}
	last := len(closes) - 1
	lastVol := volumes[last]

	if lastVol > 1.5*avgVol && closes[last] > closes[windowStart] {
		return SignalBuy
	}
	if lastVol > 1.5*avgVol && closes[last] < closes[windowStart] {
		return SignalSell
	}
	return SignalHold
}

// tripleEMATrend requires a strict fast > mid > slow EMA ordering for buy
// and the strict reverse for sell.
func tripleEMATrend(closes []float64, params Params) Signal {
	if len(closes) < maxInt(params.TripleFast, params.TripleMid, params.TripleSlow) {
		return SignalHold
	}
	emaFast := indicators.EMA(closes, params.TripleFast)
	emaMid := indicators.EMA(closes, params.TripleMid)
	emaSlow := indicators.EMA(closes, params.TripleSlow)
	last := len(closes) - 1

	if emaFast[last] > emaMid[last] && emaMid[last] > emaSlow[last] {
		return SignalBuy
	}
	if emaFast[last] < emaMid[last] && emaMid[last] < emaSlow[last] {
		return SignalSell
	}
	return SignalHold
}
