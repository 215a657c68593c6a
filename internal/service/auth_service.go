package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/controledu/controledu-api/internal/dto"
	"github.com/controledu/controledu-api/internal/models"
	appErrors "github.com/controledu/controledu-api/pkg/errors"
)

type authDirectorRepository interface {
	FindByUsuario(ctx context.Context, usuario string) (*models.Director, error)
	FindByID(ctx context.Context, id int64) (*models.Director, error)
	UpdateProfile(ctx context.Context, id int64, nombres, apellidos string) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}

type authDocenteRepository interface {
	FindByUsuario(ctx context.Context, usuario string) (*models.Docente, error)
	FindByID(ctx context.Context, id int64) (*models.Docente, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}

type authEstudianteRepository interface {
	FindByUsuario(ctx context.Context, usuario string) (*models.Estudiante, error)
	FindByID(ctx context.Context, id int64) (*models.Estudiante, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}

// AuthService authenticates the three account types against their own
// tables and manages the resulting sessions.
type AuthService struct {
	directores  authDirectorRepository
	docentes    authDocenteRepository
	estudiantes authEstudianteRepository
	sessions    *SessionService
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(directores authDirectorRepository, docentes authDocenteRepository, estudiantes authEstudianteRepository, sessions *SessionService, validate *validator.Validate, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &AuthService{
		directores:  directores,
		docentes:    docentes,
		estudiantes: estudiantes,
		sessions:    sessions,
		validator:   validate,
		logger:      logger,
	}
}

// Login resolves the username across the three account tables in a
// fixed order and verifies the password. The failure message never
// reveals whether the username exists.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*models.Session, *models.PrincipalInfo, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "datos de acceso invalidos")
	}

	principal, hash, err := s.findPrincipal(ctx, req.Usuario)
	if err != nil {
		return nil, nil, err
	}
	if principal == nil {
		return nil, nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "usuario o contraseña incorrectos")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)); err != nil {
		return nil, nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "usuario o contraseña incorrectos")
	}

	session, err := s.sessions.Create(ctx, principal)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("login", zap.String("rol", principal.Rol()), zap.Int64("user_id", principal.PrincipalID()))
	info := models.InfoFor(principal)
	return session, &info, nil
}

// Logout destroys the session for the token.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Destroy(ctx, token)
}

// CurrentUser reloads the profile behind a session.
func (s *AuthService) CurrentUser(ctx context.Context, session *models.Session) (*models.PrincipalInfo, error) {
	principal, _, err := s.loadByID(ctx, session.Rol, session.UserID)
	if err != nil {
		return nil, err
	}
	info := models.InfoFor(principal)
	return &info, nil
}

// UpdateProfile edits the name fields of the principal's own profile.
// Only the principal account supports it; the other roles are managed
// by the principal.
func (s *AuthService) UpdateProfile(ctx context.Context, session *models.Session, req dto.UpdateProfileRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "datos de perfil invalidos")
	}
	if session.Rol != models.RolDirector {
		return appErrors.Clone(appErrors.ErrForbidden, "solo el director puede editar su perfil")
	}
	if err := s.directores.UpdateProfile(ctx, session.UserID, req.Nombres, req.Apellidos); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo actualizar el perfil")
	}
	return nil
}

// ChangePassword verifies the current password and replaces the hash.
// The caller's session is destroyed on success, forcing a fresh login
// with the new password.
func (s *AuthService) ChangePassword(ctx context.Context, session *models.Session, req dto.ChangePasswordRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "datos de contraseña invalidos")
	}

	_, hash, err := s.loadByID(ctx, session.Rol, session.UserID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.PasswordActual)); err != nil {
		return appErrors.Clone(appErrors.ErrForbidden, "la contraseña actual no coincide")
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(req.PasswordNueva), bcrypt.DefaultCost)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo procesar la contraseña")
	}

	switch session.Rol {
	case models.RolDirector:
		err = s.directores.UpdatePassword(ctx, session.UserID, string(newHash))
	case models.RolDocente:
		err = s.docentes.UpdatePassword(ctx, session.UserID, string(newHash))
	case models.RolEstudiante:
		err = s.estudiantes.UpdatePassword(ctx, session.UserID, string(newHash))
	}
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo actualizar la contraseña")
	}

	if err := s.sessions.Destroy(ctx, session.Token); err != nil {
		s.logger.Warn("session destroy after password change", zap.Error(err))
	}
	s.logger.Info("password changed", zap.String("rol", session.Rol), zap.Int64("user_id", session.UserID))
	return nil
}

// findPrincipal probes director, then docente, then estudiante. A nil
// principal with nil error means the username matched no account.
func (s *AuthService) findPrincipal(ctx context.Context, usuario string) (models.Principal, string, error) {
	director, err := s.directores.FindByUsuario(ctx, usuario)
	if err == nil {
		return director, director.PasswordHash, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo verificar la cuenta")
	}

	docente, err := s.docentes.FindByUsuario(ctx, usuario)
	if err == nil {
		return docente, docente.PasswordHash, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo verificar la cuenta")
	}

	estudiante, err := s.estudiantes.FindByUsuario(ctx, usuario)
	if err == nil {
		return estudiante, estudiante.PasswordHash, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo verificar la cuenta")
	}

	return nil, "", nil
}

func (s *AuthService) loadByID(ctx context.Context, rol string, id int64) (models.Principal, string, error) {
	var (
		principal models.Principal
		hash      string
		err       error
	)
	switch rol {
	case models.RolDirector:
		var director *models.Director
		if director, err = s.directores.FindByID(ctx, id); err == nil {
			principal, hash = director, director.PasswordHash
		}
	case models.RolDocente:
		var docente *models.Docente
		if docente, err = s.docentes.FindByID(ctx, id); err == nil {
			principal, hash = docente, docente.PasswordHash
		}
	case models.RolEstudiante:
		var estudiante *models.Estudiante
		if estudiante, err = s.estudiantes.FindByID(ctx, id); err == nil {
			principal, hash = estudiante, estudiante.PasswordHash
		}
	default:
		return nil, "", appErrors.Clone(appErrors.ErrUnauthorized, "sesion invalida")
	}
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", appErrors.Clone(appErrors.ErrUnauthorized, "la cuenta ya no existe")
		}
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo cargar la cuenta")
	}
	return principal, hash, nil
}
