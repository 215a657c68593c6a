package dto

import (
	"time"

	"github.com/controledu/controledu-api/internal/models"
)

// RegistrarIncidenteRequest files an incident against a student. The
// reporting teacher comes from the session, never from the payload.
type RegistrarIncidenteRequest struct {
	EstudianteID    int64      `json:"id_estudiante" validate:"required,gt=0"`
	ConductaID      int64      `json:"id_conducta" validate:"required,gt=0"`
	AccionesTomadas string     `json:"acciones_tomadas"`
	Comentarios     string     `json:"comentarios"`
	Fecha           *time.Time `json:"fecha,omitempty"`
}

// CambiarEstadoRequest transitions an incident's workflow state.
type CambiarEstadoRequest struct {
	Estado string `json:"estado" validate:"required,oneof=ACTIVO RESUELTO"`
}

// RegistrarObservacionRequest files an observation about a student.
// Tipo is free text; anything other than "positiva" or "negativa" lands
// in the "otras" bucket when summarized.
type RegistrarObservacionRequest struct {
	EstudianteID int64      `json:"id_estudiante" validate:"required,gt=0"`
	Tipo         string     `json:"tipo" validate:"required"`
	Descripcion  string     `json:"descripcion" validate:"required"`
	Fecha        *time.Time `json:"fecha,omitempty"`
}

// EstudianteSimple is the nested student shape inside incident and
// observation responses.
type EstudianteSimple struct {
	ID        int64  `json:"id"`
	Nombres   string `json:"nombres"`
	Apellidos string `json:"apellidos"`
	Grado     string `json:"grado"`
	Seccion   string `json:"seccion"`
}

// ConductaSimple is the nested behavior rule shape inside incident
// responses.
type ConductaSimple struct {
	ID             int64  `json:"id"`
	Nombre         string `json:"nombre"`
	Gravedad       string `json:"gravedad"`
	GravedadPuntos int    `json:"gravedad_puntos"`
}

// RegistroConductaResponse flattens an incident record for clients.
type RegistroConductaResponse struct {
	ID              int64            `json:"id"`
	Estudiante      EstudianteSimple `json:"estudiante"`
	Docente         string           `json:"docente"`
	Conducta        ConductaSimple   `json:"conducta"`
	FechaRegistro   time.Time        `json:"fecha_registro"`
	AccionesTomadas string           `json:"acciones_tomadas"`
	Comentarios     string           `json:"comentarios"`
	EvidenciaURL    *string          `json:"evidencia_url,omitempty"`
	Leido           bool             `json:"leido"`
	FechaLectura    *time.Time       `json:"fecha_lectura,omitempty"`
	Estado          string           `json:"estado"`
}

// NewRegistroConductaResponse maps the joined detail row.
func NewRegistroConductaResponse(detalle *models.RegistroConductaDetalle) RegistroConductaResponse {
	return RegistroConductaResponse{
		ID: detalle.ID,
		Estudiante: EstudianteSimple{
			ID:        detalle.EstudianteID,
			Nombres:   detalle.EstudianteNombres,
			Apellidos: detalle.EstudianteApellidos,
			Grado:     detalle.EstudianteGrado,
			Seccion:   detalle.EstudianteSeccion,
		},
		Docente: detalle.DocenteNombres + " " + detalle.DocenteApellidos,
		Conducta: ConductaSimple{
			ID:             detalle.ConductaID,
			Nombre:         detalle.ConductaNombre,
			Gravedad:       detalle.GravedadNombre,
			GravedadPuntos: detalle.GravedadPuntos,
		},
		FechaRegistro:   detalle.FechaRegistro,
		AccionesTomadas: detalle.AccionesTomadas,
		Comentarios:     detalle.Comentarios,
		EvidenciaURL:    detalle.EvidenciaURL,
		Leido:           detalle.Leido,
		FechaLectura:    detalle.FechaLectura,
		Estado:          detalle.Estado,
	}
}

// NewRegistroConductaResponses maps a list of detail rows.
func NewRegistroConductaResponses(detalles []models.RegistroConductaDetalle) []RegistroConductaResponse {
	out := make([]RegistroConductaResponse, 0, len(detalles))
	for i := range detalles {
		out = append(out, NewRegistroConductaResponse(&detalles[i]))
	}
	return out
}

// ObservacionResponse flattens an observation for clients.
type ObservacionResponse struct {
	ID           int64            `json:"id"`
	Estudiante   EstudianteSimple `json:"estudiante"`
	Docente      string           `json:"docente"`
	Tipo         string           `json:"tipo"`
	Descripcion  string           `json:"descripcion"`
	Fecha        time.Time        `json:"fecha"`
	Leido        bool             `json:"leido"`
	FechaLectura *time.Time       `json:"fecha_lectura,omitempty"`
}

// NewObservacionResponse maps the joined detail row.
func NewObservacionResponse(detalle *models.ObservacionDetalle) ObservacionResponse {
	return ObservacionResponse{
		ID: detalle.ID,
		Estudiante: EstudianteSimple{
			ID:        detalle.EstudianteID,
			Nombres:   detalle.EstudianteNombres,
			Apellidos: detalle.EstudianteApellidos,
			Grado:     detalle.EstudianteGrado,
			Seccion:   detalle.EstudianteSeccion,
		},
		Docente:      detalle.DocenteNombres + " " + detalle.DocenteApellidos,
		Tipo:         detalle.Tipo,
		Descripcion:  detalle.Descripcion,
		Fecha:        detalle.Fecha,
		Leido:        detalle.Leido,
		FechaLectura: detalle.FechaLectura,
	}
}

// NewObservacionResponses maps a list of detail rows.
func NewObservacionResponses(detalles []models.ObservacionDetalle) []ObservacionResponse {
	out := make([]ObservacionResponse, 0, len(detalles))
	for i := range detalles {
		out = append(out, NewObservacionResponse(&detalles[i]))
	}
	return out
}

// EvidenciaResponse returns the stored evidence reference and a signed
// download link.
type EvidenciaResponse struct {
	RegistroID  int64  `json:"id_registro"`
	URL         string `json:"url"`
	DescargaURL string `json:"descarga_url,omitempty"`
}
