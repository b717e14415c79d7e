package types

import "time"

// Candle is one OHLCV aggregate over a fixed time bucket. Candle sequences
// are ordered ascending by timestamp and immutable once produced by the
// data source.
type Candle struct {
	Timestamp time.Time `json:"timestamp"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    float64   `json:"volume"`
}

// Quote is a point-in-time price for a symbol.
type Quote struct {
	Symbol    string
	Price     float64
	Timestamp time.Time
}

// Closes extracts the close series from a candle sequence.
func Closes(candles []Candle) []float64 {
	closes := make([]float64, len(candles))
	for i, c := range candles {
		closes[i] = c.Close
	}
	return closes
}

// Volumes extracts the volume series from a candle sequence.
func Volumes(candles []Candle) []float64 {
	volumes := make([]float64, len(candles))
	for i, c := range candles {
		volumes[i] = c.Volume
	}
	return volumes
}
