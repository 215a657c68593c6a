package export

import (
	"fmt"
	"time"
)

// Tabla defines tabular export content for report downloads.
type Tabla struct {
	Titulo   string
	Columnas []string
	Filas    []map[string]string
}

// Filename builds a timestamped export file name.
func Filename(prefix, ext string, ts time.Time) string {
	return fmt.Sprintf("%s_%s.%s", prefix, ts.Format("20060102_150405"), ext)
}
