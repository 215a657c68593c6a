package dto

import "github.com/controledu/controledu-api/internal/models"

// DirectorDashboard aggregates school-wide counters for the principal view.
type DirectorDashboard struct {
	TotalEstudiantes   int64                             `json:"total_estudiantes"`
	TotalDocentes      int64                             `json:"total_docentes"`
	TotalConductas     int64                             `json:"total_conductas"`
	TotalRegistros     int64                             `json:"total_registros"`
	RegistrosActivos   int64                             `json:"registros_activos"`
	RegistrosResueltos int64                             `json:"registros_resueltos"`
	PorGravedad        []models.ConteoPorGravedad        `json:"por_gravedad"`
	PorGrado           []models.ConteoPorGrado           `json:"por_grado"`
	TopEstudiantes     []models.EstudianteIncidencias    `json:"top_estudiantes"`
	Recientes          []models.RegistroConductaDetalle  `json:"recientes"`
}

// DocenteDashboard summarizes the activity of one teacher.
type DocenteDashboard struct {
	TotalRegistros     int64                            `json:"total_registros"`
	TotalObservaciones int64                            `json:"total_observaciones"`
	Recientes          []models.RegistroConductaDetalle `json:"recientes"`
}

// EstudianteDashboard summarizes a student's own record.
type EstudianteDashboard struct {
	TotalIncidentes        int64                        `json:"total_incidentes"`
	IncidentesNoLeidos     int64                        `json:"incidentes_no_leidos"`
	TotalObservaciones     int64                        `json:"total_observaciones"`
	ObservacionesNoLeidas  int64                        `json:"observaciones_no_leidas"`
	PuntosAcumulados       int64                        `json:"puntos_acumulados"`
	Resumen                models.ResumenConductas      `json:"resumen"`
	Observaciones          models.ResumenObservaciones  `json:"observaciones"`
}
