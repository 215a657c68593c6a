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

// ObservacionHandler exposes the observation REST surface.
type ObservacionHandler struct {
	observaciones *service.ObservacionService
}

// NewObservacionHandler constructs ObservacionHandler.
func NewObservacionHandler(observaciones *service.ObservacionService) *ObservacionHandler {
	return &ObservacionHandler{observaciones: observaciones}
}

// List godoc
// @Summary Listar observaciones
// @Tags Observaciones
// @Produce json
// @Param tipo query string false "positiva or negativa"
// @Param leido query bool false "Read flag"
// @Success 200 {object} response.Envelope
// @Router /api/observaciones [get]
func (h *ObservacionHandler) List(c *gin.Context) {
	h.list(c, observacionFilterFromQuery(c))
}

// Get godoc
// @Summary Detalle de observacion
// @Tags Observaciones
// @Produce json
// @Param id path int true "Observation ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /api/observaciones/{id} [get]
func (h *ObservacionHandler) Get(c *gin.Context) {
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

// PorEstudiante godoc
// @Summary Observaciones de un estudiante
// @Tags Observaciones
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /api/observaciones/estudiante/{id} [get]
func (h *ObservacionHandler) PorEstudiante(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.list(c, models.ObservacionFilter{EstudianteID: id})
}

// PorDocente godoc
// @Summary Observaciones de un docente
// @Tags Observaciones
// @Produce json
// @Param id path int true "Teacher ID"
// @Success 200 {object} response.Envelope
// @Router /api/observaciones/docente/{id} [get]
func (h *ObservacionHandler) PorDocente(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.list(c, models.ObservacionFilter{DocenteID: id})
}

// PorFecha godoc
// @Summary Observaciones de una fecha
// @Tags Observaciones
// @Produce json
// @Param fecha query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /api/observaciones/fecha [get]
func (h *ObservacionHandler) PorFecha(c *gin.Context) {
	fecha := queryDate(c, "fecha")
	if fecha == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "fecha requerida (YYYY-MM-DD)"))
		return
	}
	h.list(c, models.ObservacionFilter{Fecha: fecha})
}

// PorRangoFechas godoc
// @Summary Observaciones en un rango de fechas
// @Tags Observaciones
// @Produce json
// @Param fecha_inicio query string true "Range start (YYYY-MM-DD)"
// @Param fecha_fin query string true "Range end (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /api/observaciones/rango-fechas [get]
func (h *ObservacionHandler) PorRangoFechas(c *gin.Context) {
	inicio := queryDate(c, "fecha_inicio")
	fin := queryDate(c, "fecha_fin")
	if inicio == nil || fin == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "fecha_inicio y fecha_fin requeridas (YYYY-MM-DD)"))
		return
	}
	h.list(c, models.ObservacionFilter{FechaInicio: inicio, FechaFin: fin})
}

// Create godoc
// @Summary Registrar observacion
// @Tags Observaciones
// @Accept json
// @Produce json
// @Param payload body dto.RegistrarObservacionRequest true "Observation payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /api/observaciones [post]
func (h *ObservacionHandler) Create(c *gin.Context) {
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

// MarcarLeida godoc
// @Summary Marcar observacion como leida
// @Description Repeat calls restamp the read date
// @Tags Observaciones
// @Produce json
// @Param id path int true "Observation ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /api/observaciones/{id}/marcar-leida [patch]
func (h *ObservacionHandler) MarcarLeida(c *gin.Context) {
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

// Delete godoc
// @Summary Eliminar observacion
// @Tags Observaciones
// @Produce json
// @Param id path int true "Observation ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /api/observaciones/{id} [delete]
func (h *ObservacionHandler) Delete(c *gin.Context) {
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

func (h *ObservacionHandler) list(c *gin.Context, filter models.ObservacionFilter) {
	observaciones, err := h.observaciones.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.NewObservacionResponses(observaciones))
}
