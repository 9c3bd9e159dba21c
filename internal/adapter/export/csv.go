package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"credit-app/internal/core/ports"
)

// CSVEncoder writes the header and data rows only.
type CSVEncoder struct{}

func NewCSVEncoder() *CSVEncoder { return &CSVEncoder{} }

func (CSVEncoder) Format() string      { return "csv" }
func (CSVEncoder) ContentType() string { return "text/csv; charset=utf-8" }

func (CSVEncoder) Encode(table ports.ExportTable) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(table.Header); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	if err := w.WriteAll(table.Rows); err != nil {
		return nil, fmt.Errorf("write csv rows: %w", err)
	}
	return buf.Bytes(), nil
}
