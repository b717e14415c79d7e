package indicators

// RSI calculates Wilder's smoothed Relative Strength Index for the given
// prices. The output has the same length as the input; indices before
// `period` are zero because the oscillator is undefined until the first
// average gain/loss window is complete.
//
// The first defined value (index `period`) bootstraps the average gain and
// loss from the sum of positive and negative deltas over prices[1..period].
// Later values apply the recursive Wilder update
// avg = (avg*(period-1) + delta)/period.
//
// When the average loss is zero the divisor is forced to 1 instead of
// clamping the result to 100. Downstream consumers depend on that exact
// boundary value, so keep the formula as is.
func RSI(prices []float64, period int) []float64 {
	rsi := make([]float64, len(prices))
	if len(prices) <= period {
		return rsi
	}

	gains := 0.0
	losses := 0.0
	for i := 1; i <= period; i++ {
		diff := prices[i] - prices[i-1]
		if diff >= 0 {
			gains += diff
		} else {
			losses -= diff
		}
	}
	gains /= float64(period)
	losses /= float64(period)
	rsi[period] = 100 - 100/(1+gains/orOne(losses))

	for i := period + 1; i < len(prices); i++ {
		diff := prices[i] - prices[i-1]
		if diff >= 0 {
			gains = (gains*float64(period-1) + diff) / float64(period)
			losses = (losses * float64(period-1)) / float64(period)
		} else {
			gains = (gains * float64(period-1)) / float64(period)
			losses = (losses*float64(period-1) - diff) / float64(period)
		}
		rsi[i] = 100 - 100/(1+gains/orOne(losses))
	}
	return rsi
}

func orOne(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}
