package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/controledu/controledu-api/internal/dto"
	"github.com/controledu/controledu-api/internal/models"
	"github.com/controledu/controledu-api/internal/service"
	appErrors "github.com/controledu/controledu-api/pkg/errors"
	"github.com/controledu/controledu-api/pkg/response"
)

// DocenteHandler exposes the teacher surface: filing incidents and
// observations against students, plus the teacher's own dashboard and
// history.
type DocenteHandler struct {
	dashboards    *service.DashboardService
	registros     *service.RegistroConductaService
	observaciones *service.ObservacionService
	estudiantes   *service.EstudianteService
	conductas     *service.ConductaService
}

// NewDocenteHandler constructs DocenteHandler.
func NewDocenteHandler(
	dashboards *service.DashboardService,
	registros *service.RegistroConductaService,
	observaciones *service.ObservacionService,
	estudiantes *service.EstudianteService,
	conductas *service.ConductaService,
) *DocenteHandler {
	return &DocenteHandler{
		dashboards:    dashboards,
		registros:     registros,
		observaciones: observaciones,
		estudiantes:   estudiantes,
		conductas:     conductas,
	}
}

// Dashboard godoc
// @Summary Panel del docente
// @Tags Docente
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /docente/dashboard [get]
func (h *DocenteHandler) Dashboard(c *gin.Context) {
	session := sessionFromContext(c)
	if session == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	dashboard, err := h.dashboards.Docente(c.Request.Context(), session.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dashboard)
}

// Estudiantes godoc
// @Summary Listar estudiantes
// @Tags Docente
// @Produce json
// @Param grado query string false "Filter by grade"
// @Param seccion query string false "Filter by section"
// @Param nombre query string false "Name search"
// @Success 200 {object} response.Envelope
// @Router /docente/estudiantes [get]
func (h *DocenteHandler) Estudiantes(c *gin.Context) {
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

// Conductas godoc
// @Summary Listar conductas activas
// @Tags Docente
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /docente/conductas [get]
func (h *DocenteHandler) Conductas(c *gin.Context) {
	conductas, err := h.conductas.List(c.Request.Context(), true)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, conductas)
}

// RegistrarFalta godoc
// @Summary Registrar incidente
// @Description Files an incident; the reporting teacher comes from the session
// @Tags Docente
// @Accept json
// @Produce json
// @Param payload body dto.RegistrarIncidenteRequest true "Incident payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /docente/registrar-falta [post]
func (h *DocenteHandler) RegistrarFalta(c *gin.Context) {
	session := sessionFromContext(c)
	if session == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.RegistrarIncidenteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "datos de incidente invalidos"))
		return
	}

	registro, err := h.registros.Registrar(c.Request.Context(), session.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.NewRegistroConductaResponse(registro))
}

// RegistrarObservacion godoc
// @Summary Registrar observacion
// @Tags Docente
// @Accept json
// @Produce json
// @Param payload body dto.RegistrarObservacionRequest true "Observation payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /docente/registrar-observacion [post]
func (h *DocenteHandler) RegistrarObservacion(c *gin.Context) {
	session := sessionFromContext(c)
	if session == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.RegistrarObservacionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "datos de observacion invalidos"))
		return
	}

	observacion, err := h.observaciones.Registrar(c.Request.Context(), session.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.NewObservacionResponse(observacion))
}

// Historial godoc
// @Summary Historial del docente
// @Description Merged timeline of the teacher's incidents and observations, newest first
// @Tags Docente
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /docente/historial [get]
func (h *DocenteHandler) Historial(c *gin.Context) {
	session := sessionFromContext(c)
	if session == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	timeline, err := h.dashboards.HistorialDocente(c.Request.Context(), session.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, timeline)
}
