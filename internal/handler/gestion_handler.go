package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/controledu/controledu-api/internal/dto"
	"github.com/controledu/controledu-api/internal/service"
	appErrors "github.com/controledu/controledu-api/pkg/errors"
	"github.com/controledu/controledu-api/pkg/response"
)

// GestionHandler exposes the director's administration endpoints:
// teacher and student accounts plus the behavior catalog.
type GestionHandler struct {
	docentes    *service.DocenteService
	estudiantes *service.EstudianteService
	conductas   *service.ConductaService
	gravedades  *service.TipoGravedadService
}

// NewGestionHandler constructs GestionHandler.
func NewGestionHandler(
	docentes *service.DocenteService,
	estudiantes *service.EstudianteService,
	conductas *service.ConductaService,
	gravedades *service.TipoGravedadService,
) *GestionHandler {
	return &GestionHandler{
		docentes:    docentes,
		estudiantes: estudiantes,
		conductas:   conductas,
		gravedades:  gravedades,
	}
}

// CrearDocente godoc
// @Summary Registrar docente
// @Tags Gestion
// @Accept json
// @Produce json
// @Param payload body dto.CreateDocenteRequest true "Teacher payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /director/gestion/docentes [post]
func (h *GestionHandler) CrearDocente(c *gin.Context) {
	var req dto.CreateDocenteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "datos de docente invalidos"))
		return
	}
	docente, err := h.docentes.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, docente)
}

// ActualizarDocente godoc
// @Summary Editar docente
// @Tags Gestion
// @Accept json
// @Produce json
// @Param id path int true "Teacher ID"
// @Param payload body dto.UpdateDocenteRequest true "Teacher payload"
// @Success 200 {object} response.Envelope
// @Router /director/gestion/docentes/{id} [put]
func (h *GestionHandler) ActualizarDocente(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.UpdateDocenteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "datos de docente invalidos"))
		return
	}
	docente, err := h.docentes.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, docente)
}

// ResetPasswordDocente godoc
// @Summary Restablecer contraseña de docente
// @Tags Gestion
// @Accept json
// @Produce json
// @Param id path int true "Teacher ID"
// @Param payload body dto.ResetPasswordRequest true "New password"
// @Success 204
// @Router /director/gestion/docentes/{id}/password [put]
func (h *GestionHandler) ResetPasswordDocente(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "contraseña invalida"))
		return
	}
	if err := h.docentes.ResetPassword(c.Request.Context(), id, req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// EliminarDocente godoc
// @Summary Eliminar docente
// @Tags Gestion
// @Produce json
// @Param id path int true "Teacher ID"
// @Success 204
// @Failure 409 {object} response.Envelope
// @Router /director/gestion/docentes/{id} [delete]
func (h *GestionHandler) EliminarDocente(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.docentes.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// CrearEstudiante godoc
// @Summary Registrar estudiante
// @Tags Gestion
// @Accept json
// @Produce json
// @Param payload body dto.CreateEstudianteRequest true "Student payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /director/gestion/estudiantes [post]
func (h *GestionHandler) CrearEstudiante(c *gin.Context) {
	var req dto.CreateEstudianteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "datos de estudiante invalidos"))
		return
	}
	estudiante, err := h.estudiantes.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, estudiante)
}

// ActualizarEstudiante godoc
// @Summary Editar estudiante
// @Tags Gestion
// @Accept json
// @Produce json
// @Param id path int true "Student ID"
// @Param payload body dto.UpdateEstudianteRequest true "Student payload"
// @Success 200 {object} response.Envelope
// @Router /director/gestion/estudiantes/{id} [put]
func (h *GestionHandler) ActualizarEstudiante(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.UpdateEstudianteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "datos de estudiante invalidos"))
		return
	}
	estudiante, err := h.estudiantes.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, estudiante)
}

// ResetPasswordEstudiante godoc
// @Summary Restablecer contraseña de estudiante
// @Tags Gestion
// @Accept json
// @Produce json
// @Param id path int true "Student ID"
// @Param payload body dto.ResetPasswordRequest true "New password"
// @Success 204
// @Router /director/gestion/estudiantes/{id}/password [put]
func (h *GestionHandler) ResetPasswordEstudiante(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "contraseña invalida"))
		return
	}
	if err := h.estudiantes.ResetPassword(c.Request.Context(), id, req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// EliminarEstudiante godoc
// @Summary Eliminar estudiante
// @Tags Gestion
// @Produce json
// @Param id path int true "Student ID"
// @Success 204
// @Failure 409 {object} response.Envelope
// @Router /director/gestion/estudiantes/{id} [delete]
func (h *GestionHandler) EliminarEstudiante(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.estudiantes.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Gravedades godoc
// @Summary Listar niveles de gravedad
// @Tags Gestion
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /director/gestion/gravedades [get]
func (h *GestionHandler) Gravedades(c *gin.Context) {
	gravedades, err := h.gravedades.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gravedades)
}

// CrearConducta godoc
// @Summary Crear conducta
// @Tags Gestion
// @Accept json
// @Produce json
// @Param payload body dto.ConductaRequest true "Behavior payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /director/gestion/conductas [post]
func (h *GestionHandler) CrearConducta(c *gin.Context) {
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

// ActualizarConducta godoc
// @Summary Editar conducta
// @Tags Gestion
// @Accept json
// @Produce json
// @Param id path int true "Behavior ID"
// @Param payload body dto.ConductaRequest true "Behavior payload"
// @Success 200 {object} response.Envelope
// @Router /director/gestion/conductas/{id} [put]
func (h *GestionHandler) ActualizarConducta(c *gin.Context) {
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

// ActivarConducta godoc
// @Summary Activar conducta
// @Tags Gestion
// @Produce json
// @Param id path int true "Behavior ID"
// @Success 204
// @Router /director/gestion/conductas/{id}/activar [patch]
func (h *GestionHandler) ActivarConducta(c *gin.Context) {
	h.setConductaActivo(c, true)
}

// DesactivarConducta godoc
// @Summary Desactivar conducta
// @Tags Gestion
// @Produce json
// @Param id path int true "Behavior ID"
// @Success 204
// @Router /director/gestion/conductas/{id}/desactivar [patch]
func (h *GestionHandler) DesactivarConducta(c *gin.Context) {
	h.setConductaActivo(c, false)
}

// EliminarConducta godoc
// @Summary Eliminar conducta
// @Description Fails with 409 when incident records reference the rule
// @Tags Gestion
// @Produce json
// @Param id path int true "Behavior ID"
// @Success 204
// @Failure 409 {object} response.Envelope
// @Router /director/gestion/conductas/{id} [delete]
func (h *GestionHandler) EliminarConducta(c *gin.Context) {
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

func (h *GestionHandler) setConductaActivo(c *gin.Context, activo bool) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.conductas.SetActivo(c.Request.Context(), id, activo); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
