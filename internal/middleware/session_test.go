package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/controledu/controledu-api/internal/models"
	"github.com/controledu/controledu-api/internal/service"
	appErrors "github.com/controledu/controledu-api/pkg/errors"
)

type memorySessionStore struct {
	sessions map[string]*models.Session
}

func (m *memorySessionStore) Save(ctx context.Context, session *models.Session) error {
	m.sessions[session.Token] = session
	return nil
}

func (m *memorySessionStore) Find(ctx context.Context, token string) (*models.Session, error) {
	session, ok := m.sessions[token]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "la sesion expiro")
	}
	return session, nil
}

func (m *memorySessionStore) Delete(ctx context.Context, token string) error {
	delete(m.sessions, token)
	return nil
}

func newSessionRouter(t *testing.T) (*gin.Engine, *memorySessionStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := &memorySessionStore{sessions: map[string]*models.Session{}}
	sessions := service.NewSessionService(store, nil)

	router := gin.New()
	router.Use(Session(sessions, "controledu_session"))
	router.GET("/solo-director", RequireRol(models.RolDirector), func(c *gin.Context) {
		session, _ := SessionFrom(c)
		c.String(http.StatusOK, session.Usuario)
	})
	return router, store
}

func TestSessionMiddlewareRejectsMissingToken(t *testing.T) {
	router, _ := newSessionRouter(t)

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/solo-director", nil)
	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status: %d", recorder.Code)
	}
}

func TestSessionMiddlewareAcceptsCookie(t *testing.T) {
	router, store := newSessionRouter(t)
	store.sessions["tok-1"] = &models.Session{Token: "tok-1", Rol: models.RolDirector, Usuario: "rvega"}

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/solo-director", nil)
	req.AddCookie(&http.Cookie{Name: "controledu_session", Value: "tok-1"})
	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", recorder.Code)
	}
	if recorder.Body.String() != "rvega" {
		t.Fatalf("unexpected body: %s", recorder.Body.String())
	}
}

func TestSessionMiddlewareAcceptsBearerHeader(t *testing.T) {
	router, store := newSessionRouter(t)
	store.sessions["tok-2"] = &models.Session{Token: "tok-2", Rol: models.RolDirector, Usuario: "rvega"}

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/solo-director", nil)
	req.Header.Set("Authorization", "Bearer tok-2")
	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", recorder.Code)
	}
}

func TestRequireRolBlocksOtherRoles(t *testing.T) {
	router, store := newSessionRouter(t)
	store.sessions["tok-3"] = &models.Session{Token: "tok-3", Rol: models.RolEstudiante, Usuario: "alopez"}

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/solo-director", nil)
	req.Header.Set("Authorization", "Bearer tok-3")
	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusForbidden {
		t.Fatalf("unexpected status: %d", recorder.Code)
	}
}
