package export

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/99minutos/tracker-dashboard/internal/core/ports"
)

const (
	// SheetName is the name of the single sheet in an XLSX export.
	SheetName = "Trackers"

	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	// ctxCheckEvery is how many rows are written between cancellation checks.
	ctxCheckEvery = 500
)

// XLSXWriter writes Office Open XML workbooks with excelize's stream writer.
type XLSXWriter struct{}

// NewXLSXWriter creates a new XLSX writer.
func NewXLSXWriter() *XLSXWriter {
	return &XLSXWriter{}
}

func (w *XLSXWriter) Format() string      { return "xlsx" }
func (w *XLSXWriter) Extension() string   { return "xlsx" }
func (w *XLSXWriter) ContentType() string { return xlsxContentType }

// Write renders rows into a workbook with a single sheet named SheetName.
func (w *XLSXWriter) Write(ctx context.Context, rows []ports.ExportRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, fmt.Errorf("xlsx: rename sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return nil, fmt.Errorf("xlsx: stream writer: %w", err)
	}

	if err := sw.SetRow("A1", toCells(ports.ExportHeader)); err != nil {
		return nil, fmt.Errorf("xlsx: header: %w", err)
	}

	for i, row := range rows {
		if i%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("xlsx: row %d: %w", i, err)
		}
		if err := sw.SetRow(cell, toCells(row.Values())); err != nil {
			return nil, fmt.Errorf("xlsx: row %d: %w", i, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return nil, fmt.Errorf("xlsx: flush: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: write: %w", err)
	}
	return buf.Bytes(), nil
}

func toCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}
