package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/controledu/controledu-api/internal/dto"
	"github.com/controledu/controledu-api/internal/models"
	"github.com/controledu/controledu-api/internal/service"
	"github.com/controledu/controledu-api/pkg/response"
)

// DirectorHandler exposes the principal's supervision surface: the
// school-wide dashboard, incident review and the report suite.
type DirectorHandler struct {
	dashboards    *service.DashboardService
	registros     *service.RegistroConductaService
	observaciones *service.ObservacionService
	estudiantes   *service.EstudianteService
	docentes      *service.DocenteService
	conductas     *service.ConductaService
	reportes      *service.ReporteService
}

// NewDirectorHandler constructs DirectorHandler.
func NewDirectorHandler(
	dashboards *service.DashboardService,
	registros *service.RegistroConductaService,
	observaciones *service.ObservacionService,
	estudiantes *service.EstudianteService,
	docentes *service.DocenteService,
	conductas *service.ConductaService,
	reportes *service.ReporteService,
) *DirectorHandler {
	return &DirectorHandler{
		dashboards:    dashboards,
		registros:     registros,
		observaciones: observaciones,
		estudiantes:   estudiantes,
		docentes:      docentes,
		conductas:     conductas,
		reportes:      reportes,
	}
}

// Dashboard godoc
// @Summary Panel del director
// @Tags Director
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /director/dashboard [get]
func (h *DirectorHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.dashboards.Director(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dashboard)
}

// Incidentes godoc
// @Summary Listar incidentes
// @Tags Director
// @Produce json
// @Param id_estudiante query int false "Filter by student"
// @Param id_docente query int false "Filter by teacher"
// @Param id_conducta query int false "Filter by behavior"
// @Param estado query string false "ACTIVO or RESUELTO"
// @Param leido query bool false "Read flag"
// @Param fecha_inicio query string false "Range start (YYYY-MM-DD)"
// @Param fecha_fin query string false "Range end (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /director/incidentes [get]
func (h *DirectorHandler) Incidentes(c *gin.Context) {
	filter := registroFilterFromQuery(c)
	registros, err := h.registros.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.NewRegistroConductaResponses(registros))
}

// Incidente godoc
// @Summary Detalle de incidente
// @Tags Director
// @Produce json
// @Param id path int true "Incident ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /director/incidentes/{id} [get]
func (h *DirectorHandler) Incidente(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	registro, err := h.registros.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.NewRegistroConductaResponse(registro))
}

// MarcarIncidenteLeido godoc
// @Summary Marcar incidente como leido
// @Tags Director
// @Produce json
// @Param id path int true "Incident ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /director/incidentes/{id}/marcar-leido [patch]
func (h *DirectorHandler) MarcarIncidenteLeido(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	registro, err := h.registros.MarcarComoLeido(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.NewRegistroConductaResponse(registro))
}

// ResolverIncidente godoc
// @Summary Resolver incidente
// @Description Transitions the incident to RESUELTO
// @Tags Director
// @Produce json
// @Param id path int true "Incident ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /director/incidentes/{id}/resolver [patch]
func (h *DirectorHandler) ResolverIncidente(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	registro, err := h.registros.CambiarEstado(c.Request.Context(), id, dto.CambiarEstadoRequest{Estado: models.EstadoResuelto})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.NewRegistroConductaResponse(registro))
}

// Observaciones godoc
// @Summary Listar observaciones
// @Tags Director
// @Produce json
// @Param id_estudiante query int false "Filter by student"
// @Param id_docente query int false "Filter by teacher"
// @Param tipo query string false "positiva or negativa"
// @Success 200 {object} response.Envelope
// @Router /director/observaciones [get]
func (h *DirectorHandler) Observaciones(c *gin.Context) {
	filter := observacionFilterFromQuery(c)
	observaciones, err := h.observaciones.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.NewObservacionResponses(observaciones))
}

// Observacion godoc
// @Summary Detalle de observacion
// @Tags Director
// @Produce json
// @Param id path int true "Observation ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /director/observaciones/{id} [get]
func (h *DirectorHandler) Observacion(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	observacion, err := h.observaciones.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.NewObservacionResponse(observacion))
}

// MarcarObservacionLeida godoc
// @Summary Marcar observacion como leida
// @Tags Director
// @Produce json
// @Param id path int true "Observation ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /director/observaciones/{id}/marcar-leida [patch]
func (h *DirectorHandler) MarcarObservacionLeida(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	observacion, err := h.observaciones.MarcarComoLeida(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.NewObservacionResponse(observacion))
}

// EliminarObservacion godoc
// @Summary Eliminar observacion
// @Tags Director
// @Produce json
// @Param id path int true "Observation ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /director/observaciones/{id} [delete]
func (h *DirectorHandler) EliminarObservacion(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.observaciones.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Estudiantes godoc
// @Summary Listar estudiantes
// @Tags Director
// @Produce json
// @Param grado query string false "Filter by grade"
// @Param seccion query string false "Filter by section"
// @Param nombre query string false "Name search"
// @Success 200 {object} response.Envelope
// @Router /director/estudiantes [get]
func (h *DirectorHandler) Estudiantes(c *gin.Context) {
	filter := models.EstudianteFilter{
		Grado:   c.Query("grado"),
		Seccion: c.Query("seccion"),
		Nombre:  c.Query("nombre"),
	}
	estudiantes, err := h.estudiantes.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, estudiantes)
}

// Docentes godoc
// @Summary Listar docentes
// @Tags Director
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /director/docentes [get]
func (h *DirectorHandler) Docentes(c *gin.Context) {
	docentes, err := h.docentes.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, docentes)
}

// Conductas godoc
// @Summary Listar catalogo de conductas
// @Tags Director
// @Produce json
// @Param activas query bool false "Only active rules"
// @Success 200 {object} response.Envelope
// @Router /director/conductas [get]
func (h *DirectorHandler) Conductas(c *gin.Context) {
	soloActivas := c.Query("activas") == "true"
	conductas, err := h.conductas.List(c.Request.Context(), soloActivas)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, conductas)
}

// Reportes godoc
// @Summary Reporte general de convivencia
// @Tags Director
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /director/reportes [get]
func (h *DirectorHandler) Reportes(c *gin.Context) {
	reporte, err := h.reportes.General(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, reporte)
}

// ExportarReportes godoc
// @Summary Exportar reporte general
// @Tags Director
// @Produce application/octet-stream
// @Param formato query string true "csv or pdf"
// @Success 200 {file} binary
// @Failure 400 {object} response.Envelope
// @Router /director/reportes/export [get]
func (h *DirectorHandler) ExportarReportes(c *gin.Context) {
	formato := c.DefaultQuery("formato", service.FormatoCSV)
	payload, filename, contentType, err := h.reportes.Export(c.Request.Context(), formato)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, payload)
}

func registroFilterFromQuery(c *gin.Context) models.RegistroFilter {
	return models.RegistroFilter{
		EstudianteID: queryInt64(c, "id_estudiante"),
		DocenteID:    queryInt64(c, "id_docente"),
		ConductaID:   queryInt64(c, "id_conducta"),
		Fecha:        queryDate(c, "fecha"),
		FechaInicio:  queryDate(c, "fecha_inicio"),
		FechaFin:     queryDate(c, "fecha_fin"),
		Leido:        queryBool(c, "leido"),
		Estado:       c.Query("estado"),
		Limit:        int(queryInt64(c, "limit")),
	}
}

func observacionFilterFromQuery(c *gin.Context) models.ObservacionFilter {
	return models.ObservacionFilter{
		EstudianteID: queryInt64(c, "id_estudiante"),
		DocenteID:    queryInt64(c, "id_docente"),
		Tipo:         c.Query("tipo"),
		Fecha:        queryDate(c, "fecha"),
		FechaInicio:  queryDate(c, "fecha_inicio"),
		FechaFin:     queryDate(c, "fecha_fin"),
		Leido:        queryBool(c, "leido"),
		Limit:        int(queryInt64(c, "limit")),
	}
}
