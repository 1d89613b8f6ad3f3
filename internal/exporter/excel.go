package exporter

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"mindpulse/internal/dataset"
)

// ExcelWriter exports derived tables as xlsx workbooks
type ExcelWriter struct {
	logger *slog.Logger
}

// NewExcelWriter creates a new xlsx writer instance
func NewExcelWriter(logger *slog.Logger) *ExcelWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExcelWriter{logger: logger.With(slog.String("component", "exporter.excel"))}
}

// Write renders the table into a single-sheet workbook and streams it to out.
// Numeric cells keep their type so spreadsheet formulas work on them.
func (w *ExcelWriter) Write(out io.Writer, sheet string, table *dataset.Table) error {
	if sheet == "" {
		sheet = "Sheet1"
	}
	w.logger.Info("writing xlsx workbook",
		slog.String("sheet", sheet),
		slog.Int("rows", table.NumRows()),
	)

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if sheet != "Sheet1" {
		f.DeleteSheet("Sheet1")
	}

	names := table.ColumnNames()
	header := make([]interface{}, len(names))
	for i, name := range names {
		header[i] = name
	}
	cell, _ := excelize.CoordinatesToCellName(1, 1)
	if err := f.SetSheetRow(sheet, cell, &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for row := 0; row < table.NumRows(); row++ {
		record := make([]interface{}, len(names))
		for i, name := range names {
			col, _ := table.Column(name)
			if col.IsNull(row) {
				record[i] = nil
				continue
			}
			if v, ok := col.Float(row); ok {
				record[i] = v
			} else {
				record[i] = col.Value(row)
			}
		}
		cell, _ := excelize.CoordinatesToCellName(1, row+2)
		if err := f.SetSheetRow(sheet, cell, &record); err != nil {
			return fmt.Errorf("write row %d: %w", row, err)
		}
	}

	if err := f.Write(out); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
