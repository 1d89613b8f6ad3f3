package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"mindpulse/internal/dataset"
)

// CSVWriter exports derived tables as CSV files
type CSVWriter struct {
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{logger: logger.With(slog.String("component", "exporter.csv"))}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteFile writes a table to a CSV file, creating parent directories
func (w *CSVWriter) WriteFile(path string, table *dataset.Table, options WriteOptions) error {
	w.logger.Info("writing CSV file",
		slog.String("path", path),
		slog.Int("rows", table.NumRows()),
	)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer file.Close()

	if options.BOMPrefix {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("write BOM: %w", err)
		}
	}
	return w.Write(file, table)
}

// Write streams a table as CSV: one header record, then one record per row.
// Null cells become empty fields.
func (w *CSVWriter) Write(out io.Writer, table *dataset.Table) error {
	writer := csv.NewWriter(out)

	names := table.ColumnNames()
	if err := writer.Write(names); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	record := make([]string, len(names))
	for row := 0; row < table.NumRows(); row++ {
		for i, name := range names {
			col, _ := table.Column(name)
			record[i] = col.Value(row)
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
