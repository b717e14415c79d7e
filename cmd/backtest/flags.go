package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/haiphan2000/trendbot/internal/backtest"
	"github.com/haiphan2000/trendbot/internal/config"
	"github.com/haiphan2000/trendbot/internal/strategy"
	"github.com/haiphan2000/trendbot/pkg/types"
)

const dateLayout = "2006-01-02"

// cliOptions holds everything parsed from the command line.
type cliOptions struct {
	envFile    string
	configFile string

	market    string
	symbol    string
	timeframe string
	strategy  string

	emaFast    int
	emaSlow    int
	rsiPeriod  int
	macdFast   int
	macdSlow   int
	macdSignal int
	tripleFast int
	tripleMid  int
	tripleSlow int
	riskLevel  int

	startDate string
	endDate   string
	capital   float64

	dataRoot string

	optimize bool
	workers  int

	showTrades    bool
	showAnalytics bool
	jsonOut       string
	xlsxOut       string
}

func parseFlags() *cliOptions {
	opts := &cliOptions{}
	defaults := strategy.DefaultParams()

	flag.StringVar(&opts.envFile, "env", ".env", "Path to .env file")
	flag.StringVar(&opts.configFile, "config", "", "Path to JSON backtest config (flags override file values)")

	flag.StringVar(&opts.market, "market", "crypto", "Market: crypto or forex")
	flag.StringVar(&opts.symbol, "symbol", "BTCUSDT", "Trading symbol")
	flag.StringVar(&opts.timeframe, "timeframe", "1d", "Candle timeframe (e.g. 1h, 4h, 1d)")
	flag.StringVar(&opts.strategy, "strategy", "ema-rsi", "Strategy: ema-rsi, macd, volume, triple-ema")

	flag.IntVar(&opts.emaFast, "ema-fast", defaults.EMAFast, "Fast EMA period")
	flag.IntVar(&opts.emaSlow, "ema-slow", defaults.EMASlow, "Slow EMA period")
	flag.IntVar(&opts.rsiPeriod, "rsi-period", defaults.RSIPeriod, "RSI period")
	flag.IntVar(&opts.macdFast, "macd-fast", defaults.MACDFast, "MACD fast period")
	flag.IntVar(&opts.macdSlow, "macd-slow", defaults.MACDSlow, "MACD slow period")
	flag.IntVar(&opts.macdSignal, "macd-signal", defaults.MACDSignal, "MACD signal period")
	flag.IntVar(&opts.tripleFast, "triple-fast", defaults.TripleFast, "Triple EMA fast period")
	flag.IntVar(&opts.tripleMid, "triple-mid", defaults.TripleMid, "Triple EMA middle period")
	flag.IntVar(&opts.tripleSlow, "triple-slow", defaults.TripleSlow, "Triple EMA slow period")
	flag.IntVar(&opts.riskLevel, "risk-level", defaults.RiskLevel, "Risk level 1-5")

	flag.StringVar(&opts.startDate, "start", "", "Start date YYYY-MM-DD (default: 30 days before end)")
	flag.StringVar(&opts.endDate, "end", "", "End date YYYY-MM-DD (default: today)")
	flag.Float64Var(&opts.capital, "capital", 10000, "Initial capital")

	flag.StringVar(&opts.dataRoot, "data-root", "", "Root directory of CSV candle data (default: DATA_ROOT env)")

	flag.BoolVar(&opts.optimize, "optimize", false, "Run grid-search parameter optimization")
	flag.IntVar(&opts.workers, "workers", 0, "Optimizer worker count (0 = GOMAXPROCS)")

	flag.BoolVar(&opts.showTrades, "trades", false, "Print the trade list")
	flag.BoolVar(&opts.showAnalytics, "analytics", false, "Print trade analytics")
	flag.StringVar(&opts.jsonOut, "json", "", "Write result JSON to this path")
	flag.StringVar(&opts.xlsxOut, "xlsx", "", "Write result Excel workbook to this path")

	flag.Parse()
	return opts
}

// applyConfigFile overlays file values underneath any flags the user did
// not set explicitly. Flags passed on the command line always win.
func (o *cliOptions) applyConfigFile(cfg *config.BacktestFile, set map[string]bool) {
	overlayStr := func(name string, dst *string, v string) {
		if !set[name] && v != "" {
			*dst = v
		}
	}
	overlayInt := func(name string, dst *int, v int) {
		if !set[name] && v != 0 {
			*dst = v
		}
	}

	overlayStr("market", &o.market, cfg.Market)
	overlayStr("symbol", &o.symbol, cfg.Symbol)
	overlayStr("timeframe", &o.timeframe, cfg.Timeframe)
	overlayStr("strategy", &o.strategy, cfg.Strategy)
	overlayInt("ema-fast", &o.emaFast, cfg.EMAFast)
	overlayInt("ema-slow", &o.emaSlow, cfg.EMASlow)
	overlayInt("rsi-period", &o.rsiPeriod, cfg.RSIPeriod)
	overlayInt("macd-fast", &o.macdFast, cfg.MACDFast)
	overlayInt("macd-slow", &o.macdSlow, cfg.MACDSlow)
	overlayInt("macd-signal", &o.macdSignal, cfg.MACDSignal)
	overlayInt("triple-fast", &o.tripleFast, cfg.TripleFast)
	overlayInt("triple-mid", &o.tripleMid, cfg.TripleMid)
	overlayInt("triple-slow", &o.tripleSlow, cfg.TripleSlow)
	overlayInt("risk-level", &o.riskLevel, cfg.RiskLevel)
	overlayStr("start", &o.startDate, cfg.StartDate)
	overlayStr("end", &o.endDate, cfg.EndDate)
	if !set["capital"] && cfg.InitialCapital > 0 {
		o.capital = cfg.InitialCapital
	}
}

// buildRequest validates the options and assembles a backtest request.
// Omitted dates default to the last 30 days ending today.
func (o *cliOptions) buildRequest() (backtest.Request, error) {
	var req backtest.Request

	kind, err := strategy.ParseKind(o.strategy)
	if err != nil {
		return req, err
	}

	market := types.Market(o.market)
	if market != types.MarketCrypto && market != types.MarketForex {
		return req, fmt.Errorf("unknown market %q", o.market)
	}

	end := time.Now().UTC().Truncate(24 * time.Hour)
	if o.endDate != "" {
		end, err = time.Parse(dateLayout, o.endDate)
		if err != nil {
			return req, fmt.Errorf("invalid end date %q: %w", o.endDate, err)
		}
	}
	start := end.AddDate(0, 0, -30)
	if o.startDate != "" {
		start, err = time.Parse(dateLayout, o.startDate)
		if err != nil {
			return req, fmt.Errorf("invalid start date %q: %w", o.startDate, err)
		}
	}
	if !start.Before(end) {
		return req, fmt.Errorf("start date %s must precede end date %s",
			start.Format(dateLayout), end.Format(dateLayout))
	}
	if o.capital <= 0 {
		return req, fmt.Errorf("initial capital must be positive, got %v", o.capital)
	}

	params := strategy.Params{
		Strategy:   kind,
		EMAFast:    o.emaFast,
		EMASlow:    o.emaSlow,
		RSIPeriod:  o.rsiPeriod,
		MACDFast:   o.macdFast,
		MACDSlow:   o.macdSlow,
		MACDSignal: o.macdSignal,
		TripleFast: o.tripleFast,
		TripleMid:  o.tripleMid,
		TripleSlow: o.tripleSlow,
		RiskLevel:  o.riskLevel,
	}

	req = backtest.Request{
		Market:         market,
		Symbol:         o.symbol,
		Timeframe:      o.timeframe,
		Params:         params,
		StartDate:      start,
		EndDate:        end.Add(24*time.Hour - time.Nanosecond),
		InitialCapital: o.capital,
	}
	return req, nil
}

// explicitFlags reports which flags were set on the command line.
func explicitFlags() map[string]bool {
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}
