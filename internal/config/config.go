// Package config loads runtime settings from a .env file and optional
// JSON config files. Flags override file values; files override defaults.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds process-level settings.
type Config struct {
	LogLevel    string `json:"logLevel"`
	LogEncoding string `json:"logEncoding"`
	DataRoot    string `json:"dataRoot"`
	DatabaseURL string `json:"databaseUrl"`
}

// LoadEnv reads the .env file (when present) and assembles a Config from
// the environment. A missing .env file is not an error; explicit exports
// still apply.
func LoadEnv(envFile string) *Config {
	_ = godotenv.Load(envFile)

	return &Config{
		LogLevel:    envOr("LOG_LEVEL", "info"),
		LogEncoding: envOr("LOG_ENCODING", "console"),
		DataRoot:    envOr("DATA_ROOT", "data"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
	}
}

// BacktestFile is the JSON shape of a saved backtest configuration.
type BacktestFile struct {
	Market         string  `json:"market"`
	Symbol         string  `json:"symbol"`
	Timeframe      string  `json:"timeframe"`
	Strategy       string  `json:"strategy"`
	EMAFast        int     `json:"emaFast"`
	EMASlow        int     `json:"emaSlow"`
	RSIPeriod      int     `json:"rsiPeriod"`
	MACDFast       int     `json:"macdFast"`
	MACDSlow       int     `json:"macdSlow"`
	MACDSignal     int     `json:"macdSignal"`
	TripleFast     int     `json:"tripleFast"`
	TripleMid      int     `json:"tripleMid"`
	TripleSlow     int     `json:"tripleSlow"`
	RiskLevel      int     `json:"riskLevel"`
	StartDate      string  `json:"startDate"`
	EndDate        string  `json:"endDate"`
	InitialCapital float64 `json:"initialCapital"`
}

// LoadBacktestFile parses a JSON backtest configuration.
func LoadBacktestFile(path string) (*BacktestFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	var cfg BacktestFile
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return &cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
