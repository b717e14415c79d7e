// Package monitoring exposes Prometheus metrics for the live decision path.
// Backtests do not touch these; the simulation must stay free of process
// state.
package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	signalsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trendbot_signals_total",
			Help: "Total number of trend signals emitted",
		},
		[]string{"strategy", "signal"},
	)

	positionsOpened = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trendbot_positions_opened_total",
			Help: "Total number of positions opened",
		},
		[]string{"market", "symbol", "side"},
	)

	positionsClosed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trendbot_positions_closed_total",
			Help: "Total number of positions closed",
		},
		[]string{"market", "symbol", "reason"},
	)

	currentPrice = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "trendbot_current_price",
			Help: "Last fetched price per symbol",
		},
		[]string{"symbol"},
	)

	errorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trendbot_errors_total",
			Help: "Total number of errors",
		},
		[]string{"type"},
	)
)

func init() {
	prometheus.MustRegister(signalsTotal)
	prometheus.MustRegister(positionsOpened)
	prometheus.MustRegister(positionsClosed)
	prometheus.MustRegister(currentPrice)
	prometheus.MustRegister(errorsTotal)
}

// Handler returns the Prometheus metrics endpoint handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordSignal records an emitted trend signal.
func RecordSignal(strategy, signal string) {
	signalsTotal.WithLabelValues(strategy, signal).Inc()
}

// RecordOpen records an opened position.
func RecordOpen(market, symbol, side string) {
	positionsOpened.WithLabelValues(market, symbol, side).Inc()
}

// RecordClose records a closed position with its exit reason.
func RecordClose(market, symbol, reason string) {
	positionsClosed.WithLabelValues(market, symbol, reason).Inc()
}

// UpdatePrice updates the last-seen price gauge.
func UpdatePrice(symbol string, price float64) {
	currentPrice.WithLabelValues(symbol).Set(price)
}

// RecordError counts an error by type.
func RecordError(errType string) {
	errorsTotal.WithLabelValues(errType).Inc()
}
