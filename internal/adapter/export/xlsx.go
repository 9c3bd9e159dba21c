// Package export renders export tables into downloadable files.
package export

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/xuri/excelize/v2"

	"credit-app/internal/core/ports"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	footerLayout    = "02/01/2006 15:04"
	maxSheetName    = 31
)

// XLSXEncoder writes one sheet: a bold header with an autofilter, the data
// rows, and a generation footer two rows below the data.
type XLSXEncoder struct {
	sheetName string
}

func NewXLSXEncoder(sheetName string) *XLSXEncoder {
	return &XLSXEncoder{sheetName: sheetName}
}

func (*XLSXEncoder) Format() string      { return "xlsx" }
func (*XLSXEncoder) ContentType() string { return xlsxContentType }

func (e *XLSXEncoder) Encode(table ports.ExportTable) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := e.sheet(table)
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("name sheet: %w", err)
	}

	for col, title := range table.Header {
		if err := f.SetCellValue(sheet, cell(col+1, 1), title); err != nil {
			return nil, err
		}
	}
	if len(table.Header) > 0 {
		if err := e.styleHeader(f, sheet, len(table.Header)); err != nil {
			return nil, err
		}
	}

	for i, row := range table.Rows {
		for col, v := range row {
			if err := f.SetCellValue(sheet, cell(col+1, i+2), cellValue(v, slices.Contains(table.NumericColumns, col))); err != nil {
				return nil, err
			}
		}
	}

	footerRow := len(table.Rows) + 3
	footer := "Report generated at: " + table.GeneratedAt.UTC().Format(footerLayout)
	if err := f.SetCellValue(sheet, cell(1, footerRow), footer); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func (e *XLSXEncoder) styleHeader(f *excelize.File, sheet string, cols int) error {
	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"D9D9D9"}},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	last := cell(cols, 1)
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return fmt.Errorf("apply header style: %w", err)
	}
	if err := f.AutoFilter(sheet, "A1:"+last, nil); err != nil {
		return fmt.Errorf("autofilter: %w", err)
	}
	lastCol, _ := excelize.ColumnNumberToName(cols)
	return f.SetColWidth(sheet, "A", lastCol, 18)
}

func (e *XLSXEncoder) sheet(table ports.ExportTable) string {
	name := e.sheetName
	if name == "" {
		name = table.Title
	}
	if name == "" {
		name = "Sheet1"
	}
	if r := []rune(name); len(r) > maxSheetName {
		name = string(r[:maxSheetName])
	}
	return name
}

// cellValue writes numeric columns as numbers so spreadsheet formulas work on them.
func cellValue(v string, numeric bool) any {
	if !numeric || v == "" {
		return v
	}
	if n, err := strconv.ParseFloat(v, 64); err == nil {
		return n
	}
	return v
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
