// Package spreadsheet renders export results into a single xlsx workbook,
// one sheet per export.
package spreadsheet

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/erp/exporter/internal/domain/export"
)

// Excel caps sheet names at 31 characters.
const maxSheetNameLen = 31

const maxColumnWidth = 40

// BuildWorkbook writes the results into one workbook in order. The first
// result takes over the default sheet so the file never carries an empty
// "Sheet1".
func BuildWorkbook(results []export.Result) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return nil, fmt.Errorf("spreadsheet: create header style: %w", err)
	}

	for i, res := range results {
		name := sheetName(res.SheetName)
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return nil, fmt.Errorf("spreadsheet: rename sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(name); err != nil {
				return nil, fmt.Errorf("spreadsheet: add sheet %s: %w", name, err)
			}
		}
		if err := writeSheet(f, name, headerStyle, res); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("spreadsheet: serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, name string, headerStyle int, res export.Result) error {
	widths := make([]int, len(res.Headers))

	for col, h := range res.Headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("spreadsheet: header cell: %w", err)
		}
		if err := f.SetCellValue(name, cell, h); err != nil {
			return fmt.Errorf("spreadsheet: write header: %w", err)
		}
		widths[col] = len(h)
	}
	if len(res.Headers) > 0 {
		first, _ := excelize.CoordinatesToCellName(1, 1)
		last, _ := excelize.CoordinatesToCellName(len(res.Headers), 1)
		if err := f.SetCellStyle(name, first, last, headerStyle); err != nil {
			return fmt.Errorf("spreadsheet: style header: %w", err)
		}
	}

	for r, row := range res.Rows {
		for col, v := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, r+2)
			if err != nil {
				return fmt.Errorf("spreadsheet: data cell: %w", err)
			}
			value := cellValue(v)
			if value == nil {
				continue
			}
			if err := f.SetCellValue(name, cell, value); err != nil {
				return fmt.Errorf("spreadsheet: write cell: %w", err)
			}
			if col < len(widths) {
				if w := len(fmt.Sprint(value)); w > widths[col] {
					widths[col] = w
				}
			}
		}
	}

	for col, w := range widths {
		colName, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return fmt.Errorf("spreadsheet: column name: %w", err)
		}
		width := w + 2
		if width > maxColumnWidth {
			width = maxColumnWidth
		}
		if err := f.SetColWidth(name, colName, colName, float64(width)); err != nil {
			return fmt.Errorf("spreadsheet: set column width: %w", err)
		}
	}

	return nil
}

func sheetName(name string) string {
	if name == "" {
		name = "Export"
	}
	if len(name) > maxSheetNameLen {
		return name[:maxSheetNameLen]
	}
	return name
}

// cellValue coerces domain cell types into values excelize handles natively.
func cellValue(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case *time.Time:
		if t == nil {
			return nil
		}
		return *t
	case decimal.Decimal:
		return t.InexactFloat64()
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	default:
		return v
	}
}
