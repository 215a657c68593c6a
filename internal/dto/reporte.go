package dto

import "github.com/controledu/controledu-api/internal/models"

// ReporteGeneral is the consolidated report returned to the principal.
type ReporteGeneral struct {
	TotalRegistros       int64                          `json:"total_registros"`
	TotalObservaciones   int64                          `json:"total_observaciones"`
	PorGravedad          []models.ConteoPorGravedad     `json:"por_gravedad"`
	PorGrado             []models.ConteoPorGrado        `json:"por_grado"`
	PorMes               []models.ConteoPorMes          `json:"por_mes"`
	PorTipoObservacion   []models.ConteoPorTipo         `json:"por_tipo_observacion"`
	ConductasMasUsadas   []models.ConductaUso           `json:"conductas_mas_usadas"`
	ConductasSinUso      []models.ConductaDetalle       `json:"conductas_sin_uso"`
	TopEstudiantes       []models.EstudianteIncidencias `json:"top_estudiantes"`
	EstudiantesSinFaltas []models.Estudiante            `json:"estudiantes_sin_faltas"`
	RatioIncidentes      float64                        `json:"ratio_incidentes"`
}
