package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"go.uber.org/zap"

	"github.com/haiphan2000/trendbot/internal/backtest"
	"github.com/haiphan2000/trendbot/internal/config"
	"github.com/haiphan2000/trendbot/internal/logger"
	"github.com/haiphan2000/trendbot/pkg/data"
	"github.com/haiphan2000/trendbot/pkg/reporting"
)

const cacheTTL = 5 * time.Minute

func main() {
	opts := parseFlags()
	cfg := config.LoadEnv(opts.envFile)

	if opts.configFile != "" {
		fileCfg, err := config.LoadBacktestFile(opts.configFile)
		if err != nil {
			log.Fatalf("❌ %v", err)
		}
		opts.applyConfigFile(fileCfg, explicitFlags())
	}

	zlog, err := logger.New(cfg.LogLevel, cfg.LogEncoding)
	if err != nil {
		log.Fatalf("❌ Failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	req, err := opts.buildRequest()
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	dataRoot := opts.dataRoot
	if dataRoot == "" {
		dataRoot = cfg.DataRoot
	}
	provider := data.NewCachedProvider(data.NewCSVProvider(dataRoot, zlog), cacheTTL)
	engine := backtest.NewEngine(provider, zlog)

	ctx := context.Background()

	var result *backtest.Result
	if opts.optimize {
		workers := opts.workers
		if workers <= 0 {
			workers = runtime.GOMAXPROCS(0)
		}
		zlog.Info("starting grid optimization",
			zap.String("symbol", req.Symbol),
			zap.String("strategy", req.Params.Strategy.String()),
			zap.Int("workers", workers))

		candles, err := provider.GetHistoricalData(ctx, req.Symbol, req.Timeframe, 1000)
		if err != nil {
			log.Fatalf("❌ Failed to load data: %v", err)
		}
		optimizer := backtest.NewOptimizer(backtest.DefaultGrid())
		result = optimizer.OptimizeParallel(ctx, candles, req, workers)
		if result == nil {
			log.Fatalf("❌ Optimization produced no result (no data in range?)")
		}
		fmt.Printf("🏆 Best parameters: emaFast=%d emaSlow=%d rsiPeriod=%d riskLevel=%d (score %.2f)\n\n",
			result.Parameters.EMAFast, result.Parameters.EMASlow,
			result.Parameters.RSIPeriod, result.Parameters.RiskLevel,
			backtest.Score(result))
	} else {
		result, err = engine.Run(ctx, req)
		if err != nil {
			log.Fatalf("❌ Backtest failed: %v", err)
		}
	}

	console := reporting.NewConsoleReporter()
	console.PrintSummary(result)
	if opts.showTrades {
		console.PrintTrades(result)
	}
	if opts.showAnalytics {
		console.PrintAnalytics(backtest.ComputeAnalytics(result.Trades))
	}

	if opts.jsonOut != "" {
		if err := reporting.WriteResultJSON(result, opts.jsonOut); err != nil {
			zlog.Error("failed to write JSON report", zap.Error(err))
			os.Exit(1)
		}
		fmt.Printf("📄 JSON report written to %s\n", opts.jsonOut)
	}
	if opts.xlsxOut != "" {
		if err := reporting.NewExcelReporter().WriteResultXLSX(result, opts.xlsxOut); err != nil {
			zlog.Error("failed to write Excel report", zap.Error(err))
			os.Exit(1)
		}
		fmt.Printf("📊 Excel report written to %s\n", opts.xlsxOut)
	}
}
