package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/controledu/controledu-api/internal/models"
	appErrors "github.com/controledu/controledu-api/pkg/errors"
)

type sessionStore interface {
	Save(ctx context.Context, session *models.Session) error
	Find(ctx context.Context, token string) (*models.Session, error)
	Delete(ctx context.Context, token string) error
}

// SessionService issues and resolves opaque session tokens. Tokens are
// random UUIDs; all state lives server-side.
type SessionService struct {
	store  sessionStore
	logger *zap.Logger
}

// NewSessionService constructs a SessionService.
func NewSessionService(store sessionStore, logger *zap.Logger) *SessionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionService{store: store, logger: logger}
}

// Create opens a session for an authenticated principal.
func (s *SessionService) Create(ctx context.Context, principal models.Principal) (*models.Session, error) {
	session := &models.Session{
		Token:     uuid.NewString(),
		Rol:       principal.Rol(),
		UserID:    principal.PrincipalID(),
		Usuario:   principal.Username(),
		Nombre:    principal.DisplayName(),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.Save(ctx, session); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo crear la sesion")
	}
	return session, nil
}

// Find resolves a token to its session, sliding the idle expiry forward.
func (s *SessionService) Find(ctx context.Context, token string) (*models.Session, error) {
	if token == "" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "sesion no iniciada")
	}
	session, err := s.store.Find(ctx, token)
	if err != nil {
		if appErr, ok := err.(*appErrors.Error); ok {
			return nil, appErr
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo leer la sesion")
	}
	return session, nil
}

// Destroy removes a session. Unknown tokens are ignored.
func (s *SessionService) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.store.Delete(ctx, token); err != nil {
		s.logger.Warn("failed to delete session", zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo cerrar la sesion")
	}
	return nil
}
