package export

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/worklog/internal/server/models"
	"github.com/xuri/excelize/v2"
)

// SheetName is the single worksheet of a spreadsheet export.
const SheetName = "Relatorio"

var spreadsheetHeader = []any{"id", "start", "end", "function", "total", "owner"}

const (
	numFmtDateTime = 22 // m/d/yy h:mm
	numFmtAmount   = 4  // #,##0.00
)

// Spreadsheet writes one header row and one row per session, in the given
// order. Timestamps are date cells and totals are numeric.
func Spreadsheet(rows []models.Session) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("spreadsheet: %w", err)
	}
	if err := f.SetSheetRow(SheetName, "A1", &spreadsheetHeader); err != nil {
		return nil, fmt.Errorf("spreadsheet: %w", err)
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("spreadsheet: %w", err)
		}
		values := []any{r.ID, wallClock(r.Start), wallClock(r.End), r.FunctionName, r.TotalAmount.InexactFloat64(), r.Owner}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("spreadsheet: %w", err)
		}
	}

	if len(rows) > 0 {
		if err := applyStyles(f, len(rows)+1); err != nil {
			return nil, fmt.Errorf("spreadsheet: %w", err)
		}
	}
	if err := setColumnWidths(f, SheetName); err != nil {
		return nil, fmt.Errorf("spreadsheet: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("spreadsheet: %w", err)
	}
	return buf.Bytes(), nil
}

var sheetColumnWidths = []struct {
	from, to string
	width    float64
}{
	{"B", "C", 18},
	{"D", "D", 30},
	{"E", "F", 14},
}

func setColumnWidths(f *excelize.File, sheet string) error {
	for _, w := range sheetColumnWidths {
		if err := f.SetColWidth(sheet, w.from, w.to, w.width); err != nil {
			return fmt.Errorf("column width %s:%s: %w", w.from, w.to, err)
		}
	}
	return nil
}

func applyStyles(f *excelize.File, lastRow int) error {
	dateStyle, err := f.NewStyle(&excelize.Style{NumFmt: numFmtDateTime})
	if err != nil {
		return err
	}
	amountStyle, err := f.NewStyle(&excelize.Style{NumFmt: numFmtAmount})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetName, "B2", fmt.Sprintf("C%d", lastRow), dateStyle); err != nil {
		return err
	}
	return f.SetCellStyle(SheetName, "E2", fmt.Sprintf("E%d", lastRow), amountStyle)
}

// wallClock drops the zone so the cell shows the recorded local time.
func wallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}
