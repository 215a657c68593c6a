package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/controledu/controledu-api/internal/service"
	appErrors "github.com/controledu/controledu-api/pkg/errors"
	"github.com/controledu/controledu-api/pkg/response"
)

// EstudianteHandler exposes the student's read-only view of their own
// behavior history.
type EstudianteHandler struct {
	dashboards    *service.DashboardService
	observaciones *service.ObservacionService
}

// NewEstudianteHandler constructs EstudianteHandler.
func NewEstudianteHandler(dashboards *service.DashboardService, observaciones *service.ObservacionService) *EstudianteHandler {
	return &EstudianteHandler{dashboards: dashboards, observaciones: observaciones}
}

// Dashboard godoc
// @Summary Panel del estudiante
// @Tags Estudiante
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /estudiante/dashboard [get]
func (h *EstudianteHandler) Dashboard(c *gin.Context) {
	session := sessionFromContext(c)
	if session == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	dashboard, err := h.dashboards.Estudiante(c.Request.Context(), session.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dashboard)
}

// Historial godoc
// @Summary Historial del estudiante
// @Description Merged timeline of incidents and observations, newest first
// @Tags Estudiante
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /estudiante/historial [get]
func (h *EstudianteHandler) Historial(c *gin.Context) {
	session := sessionFromContext(c)
	if session == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	timeline, err := h.dashboards.HistorialEstudiante(c.Request.Context(), session.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, timeline)
}

// Conductas godoc
// @Summary Mis conductas por gravedad
// @Tags Estudiante
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /estudiante/conductas [get]
func (h *EstudianteHandler) Conductas(c *gin.Context) {
	session := sessionFromContext(c)
	if session == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	resumen, err := h.dashboards.ResumenConductas(c.Request.Context(), session.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resumen)
}

// Observaciones godoc
// @Summary Mis observaciones por tipo
// @Tags Estudiante
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /estudiante/observaciones [get]
func (h *EstudianteHandler) Observaciones(c *gin.Context) {
	session := sessionFromContext(c)
	if session == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	resumen, err := h.observaciones.Resumen(c.Request.Context(), session.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resumen)
}
