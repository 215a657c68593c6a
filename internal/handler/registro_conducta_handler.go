package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/controledu/controledu-api/internal/dto"
	"github.com/controledu/controledu-api/internal/models"
	"github.com/controledu/controledu-api/internal/service"
	appErrors "github.com/controledu/controledu-api/pkg/errors"
	"github.com/controledu/controledu-api/pkg/response"
)

// RegistroConductaHandler exposes the incident record REST surface,
// including evidence upload and signed-link download.
type RegistroConductaHandler struct {
	registros *service.RegistroConductaService
}

// NewRegistroConductaHandler constructs RegistroConductaHandler.
func NewRegistroConductaHandler(registros *service.RegistroConductaService) *RegistroConductaHandler {
	return &RegistroConductaHandler{registros: registros}
}

// List godoc
// @Summary Listar registros de conducta
// @Tags RegistroConductas
// @Produce json
// @Param estado query string false "ACTIVO or RESUELTO"
// @Param leido query bool false "Read flag"
// @Param limit query int false "Max rows"
// @Success 200 {object} response.Envelope
// @Router /api/registro-conductas [get]
func (h *RegistroConductaHandler) List(c *gin.Context) {
	h.list(c, registroFilterFromQuery(c))
}

// Get godoc
// @Summary Detalle de registro
// @Tags RegistroConductas
// @Produce json
// @Param id path int true "Record ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /api/registro-conductas/{id} [get]
func (h *RegistroConductaHandler) Get(c *gin.Context) {
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

// PorEstudiante godoc
// @Summary Registros de un estudiante
// @Tags RegistroConductas
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /api/registro-conductas/estudiante/{id} [get]
func (h *RegistroConductaHandler) PorEstudiante(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.list(c, models.RegistroFilter{EstudianteID: id})
}

// PorDocente godoc
// @Summary Registros de un docente
// @Tags RegistroConductas
// @Produce json
// @Param id path int true "Teacher ID"
// @Success 200 {object} response.Envelope
// @Router /api/registro-conductas/docente/{id} [get]
func (h *RegistroConductaHandler) PorDocente(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.list(c, models.RegistroFilter{DocenteID: id})
}

// PorConducta godoc
// @Summary Registros de una conducta
// @Tags RegistroConductas
// @Produce json
// @Param id path int true "Behavior ID"
// @Success 200 {object} response.Envelope
// @Router /api/registro-conductas/conducta/{id} [get]
func (h *RegistroConductaHandler) PorConducta(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.list(c, models.RegistroFilter{ConductaID: id})
}

// PorFecha godoc
// @Summary Registros de una fecha
// @Tags RegistroConductas
// @Produce json
// @Param fecha query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /api/registro-conductas/fecha [get]
func (h *RegistroConductaHandler) PorFecha(c *gin.Context) {
	fecha := queryDate(c, "fecha")
	if fecha == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "fecha requerida (YYYY-MM-DD)"))
		return
	}
	h.list(c, models.RegistroFilter{Fecha: fecha})
}

// PorRangoFechas godoc
// @Summary Registros en un rango de fechas
// @Tags RegistroConductas
// @Produce json
// @Param fecha_inicio query string true "Range start (YYYY-MM-DD)"
// @Param fecha_fin query string true "Range end (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /api/registro-conductas/rango-fechas [get]
func (h *RegistroConductaHandler) PorRangoFechas(c *gin.Context) {
	inicio := queryDate(c, "fecha_inicio")
	fin := queryDate(c, "fecha_fin")
	if inicio == nil || fin == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "fecha_inicio y fecha_fin requeridas (YYYY-MM-DD)"))
		return
	}
	h.list(c, models.RegistroFilter{FechaInicio: inicio, FechaFin: fin})
}

// Create godoc
// @Summary Registrar incidente
// @Tags RegistroConductas
// @Accept json
// @Produce json
// @Param payload body dto.RegistrarIncidenteRequest true "Incident payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /api/registro-conductas [post]
func (h *RegistroConductaHandler) Create(c *gin.Context) {
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

// MarcarLeido godoc
// @Summary Marcar registro como leido
// @Description Repeat calls restamp the read date
// @Tags RegistroConductas
// @Produce json
// @Param id path int true "Record ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /api/registro-conductas/{id}/marcar-leido [patch]
func (h *RegistroConductaHandler) MarcarLeido(c *gin.Context) {
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

// CambiarEstado godoc
// @Summary Cambiar estado del registro
// @Tags RegistroConductas
// @Accept json
// @Produce json
// @Param id path int true "Record ID"
// @Param payload body dto.CambiarEstadoRequest true "New state"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /api/registro-conductas/{id}/estado [patch]
func (h *RegistroConductaHandler) CambiarEstado(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.CambiarEstadoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "estado invalido"))
		return
	}
	registro, err := h.registros.CambiarEstado(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.NewRegistroConductaResponse(registro))
}

// Delete godoc
// @Summary Eliminar registro
// @Tags RegistroConductas
// @Produce json
// @Param id path int true "Record ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /api/registro-conductas/{id} [delete]
func (h *RegistroConductaHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.registros.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// SubirEvidencia godoc
// @Summary Adjuntar evidencia
// @Description Multipart upload; replaces any prior evidence file
// @Tags RegistroConductas
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Record ID"
// @Param archivo formData file true "Evidence file"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /api/registro-conductas/{id}/evidencia [post]
func (h *RegistroConductaHandler) SubirEvidencia(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	header, err := c.FormFile("archivo")
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "archivo de evidencia requerido"))
		return
	}

	file, err := header.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, http.StatusInternalServerError, "no se pudo leer el archivo"))
		return
	}
	defer file.Close()

	evidencia, err := h.registros.AdjuntarEvidencia(c.Request.Context(), id, header.Filename, header.Header.Get("Content-Type"), header.Size, file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, evidencia)
}

// DescargarEvidencia godoc
// @Summary Descargar evidencia
// @Description Streams the file behind a signed, expiring token
// @Tags RegistroConductas
// @Produce application/octet-stream
// @Param token path string true "Signed token"
// @Success 200 {file} binary
// @Failure 403 {object} response.Envelope
// @Router /api/registro-conductas/evidencia/{token} [get]
func (h *RegistroConductaHandler) DescargarEvidencia(c *gin.Context) {
	reader, filename, err := h.registros.AbrirEvidencia(c.Request.Context(), c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	defer reader.Close()

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", "application/octet-stream")
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, reader)
}

// EnlaceEvidencia godoc
// @Summary Obtener enlace firmado de evidencia
// @Tags RegistroConductas
// @Produce json
// @Param id path int true "Record ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /api/registro-conductas/{id}/evidencia [get]
func (h *RegistroConductaHandler) EnlaceEvidencia(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	evidencia, err := h.registros.EnlaceEvidencia(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, evidencia)
}

func (h *RegistroConductaHandler) list(c *gin.Context, filter models.RegistroFilter) {
	registros, err := h.registros.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.NewRegistroConductaResponses(registros))
}
