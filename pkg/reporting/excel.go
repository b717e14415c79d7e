package reporting

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/haiphan2000/trendbot/internal/backtest"
)

// ExcelStyles holds the style IDs shared across sheets.
type ExcelStyles struct {
	HeaderStyle   int
	CurrencyStyle int
	PercentStyle  int
	BaseStyle     int
}

// ExcelReporter writes backtest results to an Excel workbook.
type ExcelReporter struct{}

// NewExcelReporter creates a new Excel reporter.
func NewExcelReporter() *ExcelReporter {
	return &ExcelReporter{}
}

// WriteResultXLSX writes the result to an Excel workbook with summary,
// trades, and equity curve sheets.
func (r *ExcelReporter) WriteResultXLSX(result *backtest.Result, path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	fx := excelize.NewFile()
	defer fx.Close()

	const summarySheet = "Summary"
	const tradesSheet = "Trades"
	const equitySheet = "Equity Curve"

	fx.SetSheetName(fx.GetSheetName(0), summarySheet)
	fx.NewSheet(tradesSheet)
	fx.NewSheet(equitySheet)

	styles, err := r.createExcelStyles(fx)
	if err != nil {
		return err
	}

	if err := r.writeSummarySheet(fx, summarySheet, result, styles); err != nil {
		return err
	}
	if err := r.writeTradesSheet(fx, tradesSheet, result, styles); err != nil {
		return err
	}
	if err := r.writeEquitySheet(fx, equitySheet, result, styles); err != nil {
		return err
	}

	return fx.SaveAs(path)
}

func (r *ExcelReporter) createExcelStyles(fx *excelize.File) (ExcelStyles, error) {
	var styles ExcelStyles
	var err error

	// Header style - dark background with white text
	styles.HeaderStyle, err = fx.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:   true,
			Size:   11,
			Color:  "FFFFFF",
			Family: "Calibri",
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"2F4F4F"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return styles, err
	}

	// Currency style (right aligned, $ format)
	styles.CurrencyStyle, err = fx.NewStyle(&excelize.Style{
		NumFmt: 7,
		Alignment: &excelize.Alignment{
			Horizontal: "right",
		},
		Border: []excelize.Border{
			{Type: "left", Color: "E0E0E0", Style: 1},
			{Type: "right", Color: "E0E0E0", Style: 1},
			{Type: "bottom", Color: "E0E0E0", Style: 1},
		},
	})
	if err != nil {
		return styles, err
	}

	// Percentage style (right aligned)
	styles.PercentStyle, err = fx.NewStyle(&excelize.Style{
		NumFmt: 2,
		Alignment: &excelize.Alignment{
			Horizontal: "right",
		},
		Border: []excelize.Border{
			{Type: "left", Color: "E0E0E0", Style: 1},
			{Type: "right", Color: "E0E0E0", Style: 1},
			{Type: "bottom", Color: "E0E0E0", Style: 1},
		},
	})
	if err != nil {
		return styles, err
	}

	// Base style (light borders)
	styles.BaseStyle, err = fx.NewStyle(&excelize.Style{
		Border: []excelize.Border{
			{Type: "left", Color: "E0E0E0", Style: 1},
			{Type: "right", Color: "E0E0E0", Style: 1},
			{Type: "bottom", Color: "E0E0E0", Style: 1},
		},
	})
	if err != nil {
		return styles, err
	}

	return styles, nil
}

func (r *ExcelReporter) writeSummarySheet(fx *excelize.File, sheet string, result *backtest.Result, styles ExcelStyles) error {
	fx.SetColWidth(sheet, "A", "A", 24)
	fx.SetColWidth(sheet, "B", "B", 20)

	fx.SetCellValue(sheet, "A1", "Metric")
	fx.SetCellValue(sheet, "B1", "Value")
	fx.SetCellStyle(sheet, "A1", "B1", styles.HeaderStyle)

	rows := []struct {
		label string
		value interface{}
		style int
	}{
		{"Symbol", result.Symbol, styles.BaseStyle},
		{"Market", result.Market, styles.BaseStyle},
		{"Strategy", result.Strategy, styles.BaseStyle},
		{"Start Date", result.StartDate, styles.BaseStyle},
		{"End Date", result.EndDate, styles.BaseStyle},
		{"Initial Capital", result.InitialCapital, styles.CurrencyStyle},
		{"Final Capital", result.FinalCapital, styles.CurrencyStyle},
		{"Net Profit", result.NetProfit, styles.CurrencyStyle},
		{"ROI %", result.ReturnOnInvestment, styles.PercentStyle},
		{"Total Trades", result.TotalTrades, styles.BaseStyle},
		{"Winning Trades", result.WinningTrades, styles.BaseStyle},
		{"Losing Trades", result.LosingTrades, styles.BaseStyle},
		{"Win Rate %", result.WinRate, styles.PercentStyle},
		{"Profit Factor", result.ProfitFactor, styles.PercentStyle},
		{"Largest Win", result.LargestWin, styles.CurrencyStyle},
		{"Largest Loss", result.LargestLoss, styles.CurrencyStyle},
		{"Max Drawdown %", result.MaxDrawdown, styles.PercentStyle},
		{"Sharpe Ratio", result.SharpeRatio, styles.PercentStyle},
	}

	for i, row := range rows {
		rowNum := i + 2
		labelCell := fmt.Sprintf("A%d", rowNum)
		valueCell := fmt.Sprintf("B%d", rowNum)
		fx.SetCellValue(sheet, labelCell, row.label)
		fx.SetCellValue(sheet, valueCell, row.value)
		fx.SetCellStyle(sheet, labelCell, labelCell, styles.BaseStyle)
		fx.SetCellStyle(sheet, valueCell, valueCell, row.style)
	}

	return nil
}

func (r *ExcelReporter) writeTradesSheet(fx *excelize.File, sheet string, result *backtest.Result, styles ExcelStyles) error {
	fx.SetColWidth(sheet, "A", "A", 6)  // #
	fx.SetColWidth(sheet, "B", "B", 8)  // Side
	fx.SetColWidth(sheet, "C", "C", 20) // Entry Time
	fx.SetColWidth(sheet, "D", "D", 12) // Entry Price
	fx.SetColWidth(sheet, "E", "E", 20) // Exit Time
	fx.SetColWidth(sheet, "F", "F", 12) // Exit Price
	fx.SetColWidth(sheet, "G", "G", 12) // Size
	fx.SetColWidth(sheet, "H", "H", 14) // Profit
	fx.SetColWidth(sheet, "I", "I", 12) // Profit %

	headers := []string{"#", "Side", "Entry Time", "Entry Price", "Exit Time", "Exit Price", "Size", "Profit", "Profit %"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		fx.SetCellValue(sheet, cell, h)
		fx.SetCellStyle(sheet, cell, cell, styles.HeaderStyle)
	}

	for i, trade := range result.Trades {
		rowNum := i + 2
		values := []interface{}{
			i + 1,
			string(trade.Side),
			trade.Time.Format("2006-01-02 15:04:05"),
			trade.Entry,
			trade.ExitTime.Format("2006-01-02 15:04:05"),
			trade.Exit,
			trade.Size,
			trade.Profit,
			trade.ProfitPercent * 100,
		}
		colStyles := []int{
			styles.BaseStyle,
			styles.BaseStyle,
			styles.BaseStyle,
			styles.CurrencyStyle,
			styles.BaseStyle,
			styles.CurrencyStyle,
			styles.PercentStyle,
			styles.CurrencyStyle,
			styles.PercentStyle,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, rowNum)
			fx.SetCellValue(sheet, cell, v)
			fx.SetCellStyle(sheet, cell, cell, colStyles[col])
		}
	}

	return nil
}

func (r *ExcelReporter) writeEquitySheet(fx *excelize.File, sheet string, result *backtest.Result, styles ExcelStyles) error {
	fx.SetColWidth(sheet, "A", "A", 20)
	fx.SetColWidth(sheet, "B", "B", 16)

	fx.SetCellValue(sheet, "A1", "Timestamp")
	fx.SetCellValue(sheet, "B1", "Equity")
	fx.SetCellStyle(sheet, "A1", "B1", styles.HeaderStyle)

	for i, point := range result.EquityCurve {
		rowNum := i + 2
		timeCell := fmt.Sprintf("A%d", rowNum)
		equityCell := fmt.Sprintf("B%d", rowNum)
		fx.SetCellValue(sheet, timeCell, point.Timestamp.Format("2006-01-02 15:04:05"))
		fx.SetCellValue(sheet, equityCell, point.Equity)
		fx.SetCellStyle(sheet, timeCell, timeCell, styles.BaseStyle)
		fx.SetCellStyle(sheet, equityCell, equityCell, styles.CurrencyStyle)
	}

	return nil
}
