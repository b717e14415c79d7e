// Package indicators implements the numeric indicator primitives the
// strategy layer is built on. All functions are pure: they derive a value
// series from a price series and keep no state between calls.
package indicators

// EMA calculates the Exponential Moving Average series for the given prices.
// The output has the same length as the input. The series is seeded with the
// first price; every later value applies the standard recursive smoothing
// EMA[i] = price[i]*k + EMA[i-1]*(1-k) with k = 2/(period+1).
//
// Must not be called with an empty price series.
func EMA(prices []float64, period int) []float64 {
	k := 2.0 / float64(period+1)
	ema := make([]float64, len(prices))
	ema[0] = prices[0]
	for i := 1; i < len(prices); i++ {
		ema[i] = prices[i]*k + ema[i-1]*(1-k)
	}
	return ema
}
