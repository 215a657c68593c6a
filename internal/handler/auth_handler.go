package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/controledu/controledu-api/internal/dto"
	"github.com/controledu/controledu-api/internal/service"
	"github.com/controledu/controledu-api/pkg/config"
	appErrors "github.com/controledu/controledu-api/pkg/errors"
	"github.com/controledu/controledu-api/pkg/response"
)

// AuthHandler wires HTTP endpoints to the auth service. Login hands the
// session token out twice: as an HttpOnly cookie for browsers and in
// the body for API clients that send it back as a bearer token.
type AuthHandler struct {
	service *service.AuthService
	session config.SessionConfig
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(svc *service.AuthService, session config.SessionConfig) *AuthHandler {
	return &AuthHandler{service: svc, session: session}
}

// Login godoc
// @Summary Iniciar sesion
// @Description Authenticate director, docente or estudiante by usuario and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body dto.LoginRequest true "Credentials"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "datos de acceso invalidos"))
		return
	}

	session, info, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.SetCookie(h.session.CookieName, session.Token, int(h.session.TTL.Seconds()), "/", "", h.session.CookieSecure, true)
	response.JSON(c, http.StatusOK, dto.LoginResponse{Token: session.Token, Usuario: *info})
}

// Logout godoc
// @Summary Cerrar sesion
// @Tags Auth
// @Produce json
// @Success 204
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	token := h.token(c)
	if err := h.service.Logout(c.Request.Context(), token); err != nil {
		response.Error(c, err)
		return
	}
	c.SetCookie(h.session.CookieName, "", -1, "/", "", h.session.CookieSecure, true)
	response.NoContent(c)
}

// AccessDenied godoc
// @Summary Acceso denegado
// @Tags Auth
// @Produce json
// @Failure 403 {object} response.Envelope
// @Router /auth/access-denied [get]
func (h *AuthHandler) AccessDenied(c *gin.Context) {
	response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "no tiene permisos para acceder a este recurso"))
}

// Profile godoc
// @Summary Perfil del usuario autenticado
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/profile [get]
func (h *AuthHandler) Profile(c *gin.Context) {
	session := sessionFromContext(c)
	if session == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	info, err := h.service.CurrentUser(c.Request.Context(), session)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, info)
}

// UpdateProfile godoc
// @Summary Editar perfil
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body dto.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /auth/profile [put]
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	session := sessionFromContext(c)
	if session == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "datos de perfil invalidos"))
		return
	}

	if err := h.service.UpdateProfile(c.Request.Context(), session, req); err != nil {
		response.Error(c, err)
		return
	}

	info, err := h.service.CurrentUser(c.Request.Context(), session)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, info)
}

// ChangePassword godoc
// @Summary Cambiar contraseña
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body dto.ChangePasswordRequest true "Password change"
// @Success 204
// @Failure 403 {object} response.Envelope
// @Router /auth/profile/password [put]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	session := sessionFromContext(c)
	if session == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "datos de contraseña invalidos"))
		return
	}

	if err := h.service.ChangePassword(c.Request.Context(), session, req); err != nil {
		response.Error(c, err)
		return
	}

	// The session was invalidated server-side; drop the cookie too.
	c.SetCookie(h.session.CookieName, "", -1, "/", "", h.session.CookieSecure, true)
	response.NoContent(c)
}

func (h *AuthHandler) token(c *gin.Context) string {
	if cookie, err := c.Cookie(h.session.CookieName); err == nil && cookie != "" {
		return cookie
	}
	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	return ""
}
