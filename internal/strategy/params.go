package strategy

import "fmt"

// Kind selects one of the supported strategy variants. Keeping the set
// closed means a new strategy has to extend every switch over Kind instead
// of silently falling through a string comparison.
type Kind int

const (
	KindEMARSI Kind = iota
	KindMACD
	KindVolume
	KindTripleEMA
)

func (k Kind) String() string {
	switch k {
	case KindEMARSI:
		return "ema-rsi"
	case KindMACD:
		return "macd"
	case KindVolume:
		return "volume"
	case KindTripleEMA:
		return "triple-ema"
	default:
		return "unknown"
	}
}

// ParseKind converts a strategy name to its Kind.
func ParseKind(name string) (Kind, error) {
	switch name {
	case "ema-rsi", "":
		return KindEMARSI, nil
	case "macd":
		return KindMACD, nil
	case "volume":
		return KindVolume, nil
	case "triple-ema":
		return KindTripleEMA, nil
	default:
		return KindEMARSI, fmt.Errorf("unknown strategy %q", name)
	}
}

// Params holds the numeric periods and thresholds for all strategy
// variants. One instance is bound to one Kind and stays immutable for
// the duration of a run.
type Params struct {
	Strategy Kind `json:"strategy"`

	EMAFast   int `json:"emaFast"`
	EMASlow   int `json:"emaSlow"`
	RSIPeriod int `json:"rsiPeriod"`

	MACDFast   int `json:"macdFast"`
	MACDSlow   int `json:"macdSlow"`
	MACDSignal int `json:"macdSignal"`

	TripleFast int `json:"tripleFast"`
	TripleMid  int `json:"tripleMid"`
	TripleSlow int `json:"tripleSlow"`

	// RiskLevel (1-5) shifts the RSI threshold band inward and scales
	// live position sizing.
	RiskLevel int `json:"riskLevel"`
}

// DefaultParams returns the stock parameter set used when a caller does
// not override anything.
func DefaultParams() Params {
	return Params{
		Strategy:   KindEMARSI,
		EMAFast:    7,
		EMASlow:    14,
		RSIPeriod:  14,
		MACDFast:   12,
		MACDSlow:   26,
		MACDSignal: 9,
		TripleFast: 5,
		TripleMid:  15,
		TripleSlow: 30,
		RiskLevel:  1,
	}
}

// WarmupPeriod is the number of bars the backtest engine skips before the
// first evaluation. It covers the slowest indicator of every variant so a
// parameter set stays valid regardless of the selected strategy.
func (p Params) WarmupPeriod() int {
	return maxInt(p.EMASlow, p.RSIPeriod, p.MACDSlow, p.MACDSignal, p.TripleSlow)
}

// RequiredBars is the minimum history the selected variant needs before it
// can produce a non-hold signal.
func (p Params) RequiredBars() int {
	switch p.Strategy {
	case KindMACD:
		return maxInt(p.MACDFast, p.MACDSlow, p.MACDSignal)
	case KindVolume:
		return 10
	case KindTripleEMA:
		return maxInt(p.TripleFast, p.TripleMid, p.TripleSlow)
	default:
		return maxInt(p.EMAFast, p.EMASlow, p.RSIPeriod)
	}
}

func maxInt(vs ...int) int {
	m := vs[0]
	for _, v := range vs[1:] {
		if v > m {
			m = v
		}
	}
	return m
}
