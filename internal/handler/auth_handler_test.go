package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/controledu/controledu-api/pkg/config"
)

func TestAuthHandlerLoginRejectsMalformedBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewAuthHandler(nil, config.SessionConfig{CookieName: "controledu_session", TTL: 30 * time.Minute})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader("{no-json"))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Login(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
}

func TestAuthHandlerAccessDenied(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewAuthHandler(nil, config.SessionConfig{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/auth/access-denied", nil)

	handler.AccessDenied(c)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAuthHandlerProfileWithoutSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewAuthHandler(nil, config.SessionConfig{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/auth/profile", nil)

	handler.Profile(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
