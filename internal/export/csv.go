package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"

	"github.com/99minutos/tracker-dashboard/internal/core/ports"
)

const csvContentType = "text/csv; charset=utf-8"

// CSVWriter writes export rows as RFC 4180 CSV.
type CSVWriter struct{}

// NewCSVWriter creates a new CSV writer.
func NewCSVWriter() *CSVWriter {
	return &CSVWriter{}
}

func (w *CSVWriter) Format() string      { return "csv" }
func (w *CSVWriter) Extension() string   { return "csv" }
func (w *CSVWriter) ContentType() string { return csvContentType }

// Write renders rows into a CSV document with a header row.
func (w *CSVWriter) Write(ctx context.Context, rows []ports.ExportRow) ([]byte, error) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	if err := cw.Write(ports.ExportHeader); err != nil {
		return nil, fmt.Errorf("csv: header: %w", err)
	}
	for i, row := range rows {
		if i%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if err := cw.Write(row.Values()); err != nil {
			return nil, fmt.Errorf("csv: row %d: %w", i, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return nil, fmt.Errorf("csv: flush: %w", err)
	}
	return buf.Bytes(), nil
}
