package models

import (
	"strings"
	"time"
)

// Canonical observation types. Anything else falls into the "otra"
// bucket at query time; the column is free text, not an enumeration.
const (
	ObservacionPositiva = "positiva"
	ObservacionNegativa = "negativa"
)

// Observacion is a free-form note about a student, separate from
// formal incident records.
type Observacion struct {
	ID           int64      `db:"id_observacion" json:"id"`
	EstudianteID int64      `db:"id_estudiante" json:"id_estudiante"`
	DocenteID    int64      `db:"id_docente" json:"id_docente"`
	Tipo         string     `db:"tipo_observacion" json:"tipo_observacion"`
	Descripcion  string     `db:"descripcion" json:"descripcion"`
	Fecha        time.Time  `db:"fecha" json:"fecha"`
	Leido        bool       `db:"leido" json:"leido"`
	FechaLectura *time.Time `db:"fecha_lectura" json:"fecha_lectura,omitempty"`
}

// EsPositiva classifies the note by case-insensitive comparison.
func (o *Observacion) EsPositiva() bool { return strings.EqualFold(o.Tipo, ObservacionPositiva) }

// EsNegativa classifies the note by case-insensitive comparison.
func (o *Observacion) EsNegativa() bool { return strings.EqualFold(o.Tipo, ObservacionNegativa) }

// ObservacionDetalle joins an observation with student and teacher
// display fields.
type ObservacionDetalle struct {
	Observacion
	EstudianteNombres   string `db:"estudiante_nombres" json:"estudiante_nombres"`
	EstudianteApellidos string `db:"estudiante_apellidos" json:"estudiante_apellidos"`
	EstudianteGrado     string `db:"estudiante_grado" json:"estudiante_grado"`
	EstudianteSeccion   string `db:"estudiante_seccion" json:"estudiante_seccion"`
	DocenteNombres      string `db:"docente_nombres" json:"docente_nombres"`
	DocenteApellidos    string `db:"docente_apellidos" json:"docente_apellidos"`
}

// ObservacionFilter captures the supported observation listing filters.
type ObservacionFilter struct {
	EstudianteID int64
	DocenteID    int64
	Tipo         string
	Fecha        *time.Time
	FechaInicio  *time.Time
	FechaFin     *time.Time
	Leido        *bool
	Limit        int
}

// ResumenObservaciones buckets observations into the canonical types
// plus everything else.
type ResumenObservaciones struct {
	Positivas []ObservacionDetalle `json:"positivas"`
	Negativas []ObservacionDetalle `json:"negativas"`
	Otras     []ObservacionDetalle `json:"otras"`
}
