package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/controledu/controledu-api/internal/dto"
	"github.com/controledu/controledu-api/internal/service"
	appErrors "github.com/controledu/controledu-api/pkg/errors"
	"github.com/controledu/controledu-api/pkg/response"
)

// ConductaHandler exposes the behavior catalog REST surface.
type ConductaHandler struct {
	conductas *service.ConductaService
}

// NewConductaHandler constructs ConductaHandler.
func NewConductaHandler(conductas *service.ConductaService) *ConductaHandler {
	return &ConductaHandler{conductas: conductas}
}

// List godoc
// @Summary Listar conductas
// @Tags Conductas
// @Produce json
// @Param nombre query string false "Name search"
// @Success 200 {object} response.Envelope
// @Router /api/conductas [get]
func (h *ConductaHandler) List(c *gin.Context) {
	if nombre := c.Query("nombre"); nombre != "" {
		conductas, err := h.conductas.Buscar(c.Request.Context(), nombre)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.JSON(c, http.StatusOK, conductas)
		return
	}

	conductas, err := h.conductas.List(c.Request.Context(), false)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, conductas)
}

// Activas godoc
// @Summary Listar conductas activas
// @Tags Conductas
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /api/conductas/activas [get]
func (h *ConductaHandler) Activas(c *gin.Context) {
	conductas, err := h.conductas.List(c.Request.Context(), true)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, conductas)
}

// Get godoc
// @Summary Detalle de conducta
// @Tags Conductas
// @Produce json
// @Param id path int true "Behavior ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /api/conductas/{id} [get]
func (h *ConductaHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	conducta, err := h.conductas.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, conducta)
}

// PorGravedad godoc
// @Summary Conductas por nivel de gravedad
// @Tags Conductas
// @Produce json
// @Param id path int true "Severity ID"
// @Success 200 {object} response.Envelope
// @Router /api/conductas/gravedad/{id} [get]
func (h *ConductaHandler) PorGravedad(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	conductas, err := h.conductas.PorGravedad(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, conductas)
}

// MasUtilizadas godoc
// @Summary Conductas mas utilizadas
// @Tags Conductas
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /api/conductas/mas-utilizadas [get]
func (h *ConductaHandler) MasUtilizadas(c *gin.Context) {
	conductas, err := h.conductas.MasUtilizadas(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, conductas)
}

// NoUtilizadas godoc
// @Summary Conductas sin registros
// @Tags Conductas
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /api/conductas/no-utilizadas [get]
func (h *ConductaHandler) NoUtilizadas(c *gin.Context) {
	conductas, err := h.conductas.NoUtilizadas(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, conductas)
}

// Create godoc
// @Summary Crear conducta
// @Tags Conductas
// @Accept json
// @Produce json
// @Param payload body dto.ConductaRequest true "Behavior payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /api/conductas [post]
func (h *ConductaHandler) Create(c *gin.Context) {
	var req dto.ConductaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "datos de conducta invalidos"))
		return
	}
	conducta, err := h.conductas.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, conducta)
}

// Update godoc
// @Summary Editar conducta
// @Tags Conductas
// @Accept json
// @Produce json
// @Param id path int true "Behavior ID"
// @Param payload body dto.ConductaRequest true "Behavior payload"
// @Success 200 {object} response.Envelope
// @Router /api/conductas/{id} [put]
func (h *ConductaHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.ConductaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "datos de conducta invalidos"))
		return
	}
	conducta, err := h.conductas.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, conducta)
}

// Delete godoc
// @Summary Eliminar conducta
// @Description Fails with 409 when incident records reference the rule
// @Tags Conductas
// @Produce json
// @Param id path int true "Behavior ID"
// @Success 204
// @Failure 409 {object} response.Envelope
// @Router /api/conductas/{id} [delete]
func (h *ConductaHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.conductas.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
