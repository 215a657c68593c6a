package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// CSVExporter renders a Tabla into CSV bytes.
type CSVExporter struct{}

// NewCSVExporter builds a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Render produces CSV encoded bytes for the table.
func (e *CSVExporter) Render(t Tabla) ([]byte, error) {
	if len(t.Columnas) == 0 {
		return nil, fmt.Errorf("csv requires at least one column")
	}
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)
	if err := writer.Write(t.Columnas); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, fila := range t.Filas {
		record := make([]string, len(t.Columnas))
		for i, col := range t.Columnas {
			record[i] = fila[col]
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
