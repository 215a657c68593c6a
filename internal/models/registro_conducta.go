package models

import "time"

// Incident record states. The only transition is ACTIVO -> RESUELTO via
// explicit director action.
const (
	EstadoActivo   = "ACTIVO"
	EstadoResuelto = "RESUELTO"
)

// RegistroConducta is an incident record linking a student, the
// reporting teacher and a behavior rule on a date.
type RegistroConducta struct {
	ID              int64      `db:"id_registro" json:"id"`
	EstudianteID    int64      `db:"id_estudiante" json:"id_estudiante"`
	DocenteID       int64      `db:"id_docente" json:"id_docente"`
	ConductaID      int64      `db:"id_conducta" json:"id_conducta"`
	FechaRegistro   time.Time  `db:"fecha_registro" json:"fecha_registro"`
	AccionesTomadas string     `db:"acciones_tomadas" json:"acciones_tomadas"`
	Comentarios     string     `db:"comentarios" json:"comentarios"`
	EvidenciaURL    *string    `db:"evidencia_url" json:"evidencia_url,omitempty"`
	Leido           bool       `db:"leido" json:"leido"`
	FechaLectura    *time.Time `db:"fecha_lectura" json:"fecha_lectura,omitempty"`
	Estado          string     `db:"estado" json:"estado"`
}

// RegistroConductaDetalle joins an incident record with the display
// fields of its three referenced entities.
type RegistroConductaDetalle struct {
	RegistroConducta
	EstudianteNombres   string `db:"estudiante_nombres" json:"estudiante_nombres"`
	EstudianteApellidos string `db:"estudiante_apellidos" json:"estudiante_apellidos"`
	EstudianteGrado     string `db:"estudiante_grado" json:"estudiante_grado"`
	EstudianteSeccion   string `db:"estudiante_seccion" json:"estudiante_seccion"`
	DocenteNombres      string `db:"docente_nombres" json:"docente_nombres"`
	DocenteApellidos    string `db:"docente_apellidos" json:"docente_apellidos"`
	ConductaNombre      string `db:"conducta_nombre" json:"conducta_nombre"`
	GravedadNombre      string `db:"gravedad_nombre" json:"gravedad_nombre"`
	GravedadPuntos      int    `db:"gravedad_puntos" json:"gravedad_puntos"`
}

// RegistroFilter captures the supported incident listing filters.
type RegistroFilter struct {
	EstudianteID int64
	DocenteID    int64
	ConductaID   int64
	Fecha        *time.Time
	FechaInicio  *time.Time
	FechaFin     *time.Time
	Leido        *bool
	Estado       string
	Limit        int
}

// ResumenConductas buckets a student's incident records by severity.
type ResumenConductas struct {
	Leve     []RegistroConductaDetalle `json:"leve"`
	Grave    []RegistroConductaDetalle `json:"grave"`
	MuyGrave []RegistroConductaDetalle `json:"muy_grave"`
}

// Totales reports the bucket sizes.
func (r *ResumenConductas) Totales() (leve, grave, muyGrave int) {
	return len(r.Leve), len(r.Grave), len(r.MuyGrave)
}
