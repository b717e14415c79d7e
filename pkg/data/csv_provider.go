package data

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/haiphan2000/trendbot/internal/logger"
	"github.com/haiphan2000/trendbot/pkg/types"
)

// CSVColumnMapping defines column positions and the timestamp layout for a
// CSV candle file.
type CSVColumnMapping struct {
	TimestampCol int
	OpenCol      int
	HighCol      int
	LowCol       int
	CloseCol     int
	VolumeCol    int
	MinColumns   int
	DateFormat   string
}

// DefaultCSVFormat matches files with a header row and
// timestamp,open,high,low,close,volume columns.
var DefaultCSVFormat = CSVColumnMapping{
	TimestampCol: 0,
	OpenCol:      1,
	HighCol:      2,
	LowCol:       3,
	CloseCol:     4,
	VolumeCol:    5,
	MinColumns:   6,
	DateFormat:   "2006-01-02 15:04:05",
}

// CSVProvider implements Provider over candle files laid out as
// <root>/<symbol>/<timeframe>.csv.
type CSVProvider struct {
	root   string
	format CSVColumnMapping
	log    *logger.Logger
}

// NewCSVProvider creates a CSV provider rooted at the given directory.
func NewCSVProvider(root string, log *logger.Logger) *CSVProvider {
	if log == nil {
		log = logger.Nop()
	}
	return &CSVProvider{root: root, format: DefaultCSVFormat, log: log}
}

// NewCSVProviderWithFormat creates a CSV provider with a custom column
// mapping.
func NewCSVProviderWithFormat(root string, format CSVColumnMapping, log *logger.Logger) *CSVProvider {
	p := NewCSVProvider(root, log)
	p.format = format
	return p
}

// GetHistoricalData loads up to limit candles for the symbol, sorted
// ascending by timestamp. Malformed rows are skipped with a warning so one
// bad line does not sink a whole backtest.
func (p *CSVProvider) GetHistoricalData(ctx context.Context, symbol, timeframe string, limit int) ([]types.Candle, error) {
	path := filepath.Join(p.root, symbol, timeframe+".csv")
	candles, err := p.loadFile(path)
	if err != nil {
		return nil, err
	}

	sort.Slice(candles, func(i, j int) bool {
		return candles[i].Timestamp.Before(candles[j].Timestamp)
	})

	if limit > 0 && len(candles) > limit {
		candles = candles[len(candles)-limit:]
	}
	return candles, nil
}

// GetCurrentPrice quotes the most recent close on file for the symbol.
func (p *CSVProvider) GetCurrentPrice(ctx context.Context, symbol string) (types.Quote, error) {
	entries, err := os.ReadDir(filepath.Join(p.root, symbol))
	if err != nil {
		return types.Quote{}, fmt.Errorf("no data for symbol %s: %w", symbol, err)
	}

	var latest types.Candle
	found := false
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".csv" {
			continue
		}
		candles, err := p.loadFile(filepath.Join(p.root, symbol, entry.Name()))
		if err != nil || len(candles) == 0 {
			continue
		}
		for _, c := range candles {
			if !found || c.Timestamp.After(latest.Timestamp) {
				latest = c
				found = true
			}
		}
	}
	if !found {
		return types.Quote{}, fmt.Errorf("no usable candles for symbol %s", symbol)
	}
	return types.Quote{Symbol: symbol, Price: latest.Close, Timestamp: latest.Timestamp}, nil
}

func (p *CSVProvider) loadFile(path string) ([]types.Candle, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)

	// Skip header
	if _, err := reader.Read(); err != nil {
		return nil, err
	}

	var candles []types.Candle
	line := 1
	for {
		record, err := reader.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("reading %s line %d: %w", path, line, err)
		}
		line++

		if len(record) < p.format.MinColumns {
			p.log.Warn("skipping short row", zap.String("file", path), zap.Int("line", line))
			continue
		}

		timestamp, err := time.Parse(p.format.DateFormat, record[p.format.TimestampCol])
		if err != nil {
			p.log.Warn("skipping row with bad timestamp",
				zap.String("file", path), zap.Int("line", line), zap.Error(err))
			continue
		}

		open, err1 := strconv.ParseFloat(record[p.format.OpenCol], 64)
		high, err2 := strconv.ParseFloat(record[p.format.HighCol], 64)
		low, err3 := strconv.ParseFloat(record[p.format.LowCol], 64)
		close_, err4 := strconv.ParseFloat(record[p.format.CloseCol], 64)
		volume, err5 := strconv.ParseFloat(record[p.format.VolumeCol], 64)
		if err1 != nil || err2 != nil || err3 != nil || err4 != nil || err5 != nil {
			p.log.Warn("skipping row with bad numeric field",
				zap.String("file", path), zap.Int("line", line))
			continue
		}

		candles = append(candles, types.Candle{
			Timestamp: timestamp,
			Open:      open,
			High:      high,
			Low:       low,
			Close:     close_,
			Volume:    volume,
		})
	}
	return candles, nil
}
