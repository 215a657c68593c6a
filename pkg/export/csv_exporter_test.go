package export

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVExporterRendersRowsInColumnOrder(t *testing.T) {
	tabla := Tabla{
		Titulo:   "Incidentes por gravedad",
		Columnas: []string{"gravedad", "total"},
		Filas: []map[string]string{
			{"gravedad": "leve", "total": "12"},
			{"gravedad": "muy grave", "total": "3", "ignorada": "x"},
		},
	}

	out, err := NewCSVExporter().Render(tabla)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(out), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "gravedad,total", lines[0])
	assert.Equal(t, "leve,12", lines[1])
	assert.Equal(t, "muy grave,3", lines[2])
}

func TestCSVExporterFillsMissingCells(t *testing.T) {
	tabla := Tabla{
		Columnas: []string{"grado", "total"},
		Filas:    []map[string]string{{"grado": "5A"}},
	}

	out, err := NewCSVExporter().Render(tabla)
	require.NoError(t, err)
	assert.Contains(t, string(out), "5A,\n")
}

func TestCSVExporterRejectsEmptyColumns(t *testing.T) {
	_, err := NewCSVExporter().Render(Tabla{})
	assert.Error(t, err)
}

func TestFilenameIncludesTimestamp(t *testing.T) {
	ts := time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)
	assert.Equal(t, "reporte_conductas_20240315_093000.csv", Filename("reporte_conductas", "csv", ts))
}
