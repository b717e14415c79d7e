package backtest

import (
	"github.com/haiphan2000/trendbot/internal/strategy"
	"github.com/haiphan2000/trendbot/pkg/types"
)

// GridRanges is the parameter lattice the optimizer sweeps. The search is
// deliberately brute force; reproducibility matters more than speed at
// these sizes.
type GridRanges struct {
	EMAFast   []int
	EMASlow   []int
	RSIPeriod []int
	RiskLevel []int
}

// DefaultGrid is the stock ema-rsi lattice.
func DefaultGrid() GridRanges {
	return GridRanges{
		EMAFast:   []int{5, 7, 9, 12},
		EMASlow:   []int{14, 21, 30},
		RSIPeriod: []int{9, 14, 21},
		RiskLevel: []int{1, 2, 3},
	}
}

// Combinations expands the lattice into concrete parameter sets, dropping
// invalid cells where the fast EMA is not strictly faster than the slow.
// The expansion order is fixed, which is what makes first-seen tie-breaking
// reproducible.
func (g GridRanges) Combinations() []strategy.Params {
	combos := make([]strategy.Params, 0,
		len(g.EMAFast)*len(g.EMASlow)*len(g.RSIPeriod)*len(g.RiskLevel))

	for _, emaFast := range g.EMAFast {
		for _, emaSlow := range g.EMASlow {
			if emaFast >= emaSlow {
				continue
			}
			for _, rsiPeriod := range g.RSIPeriod {
				for _, riskLevel := range g.RiskLevel {
					p := strategy.DefaultParams()
					p.Strategy = strategy.KindEMARSI
					p.EMAFast = emaFast
					p.EMASlow = emaSlow
					p.RSIPeriod = rsiPeriod
					p.RiskLevel = riskLevel
					combos = append(combos, p)
				}
			}
		}
	}
	return combos
}

// Score ranks a backtest result: risk-weighted return minus a double
// drawdown penalty.
func Score(r *Result) float64 {
	return r.ReturnOnInvestment*r.WinRate/100 - r.MaxDrawdown*2
}

// Optimizer grid-searches strategy parameters over a fixed candle series.
type Optimizer struct {
	grid GridRanges
}

// NewOptimizer creates an optimizer over the given lattice.
func NewOptimizer(grid GridRanges) *Optimizer {
	return &Optimizer{grid: grid}
}

// Optimize runs a full backtest per grid cell and returns the best-scoring
// result. Ties keep the first-seen cell.
func (o *Optimizer) Optimize(candles []types.Candle, req Request) *Result {
	var best *Result
	bestScore := 0.0

	for _, params := range o.grid.Combinations() {
		cellReq := req
		cellReq.Params = params

		result := Simulate(candles, cellReq)
		if score := Score(result); best == nil || score > bestScore {
			best = result
			bestScore = score
		}
	}
	return best
}
