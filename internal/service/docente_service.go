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

type docenteRepository interface {
	List(ctx context.Context) ([]models.Docente, error)
	FindByID(ctx context.Context, id int64) (*models.Docente, error)
	ExistsByUsuario(ctx context.Context, usuario string, excludeID int64) (bool, error)
	Create(ctx context.Context, docente *models.Docente) error
	Update(ctx context.Context, docente *models.Docente) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	Delete(ctx context.Context, id int64) error
}

type docenteRegistroRepository interface {
	CountByDocente(ctx context.Context, docenteID int64) (int64, error)
}

// DocenteService manages teacher accounts on behalf of the principal.
type DocenteService struct {
	repo      docenteRepository
	registros docenteRegistroRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewDocenteService constructs a DocenteService.
func NewDocenteService(repo docenteRepository, registros docenteRegistroRepository, validate *validator.Validate, logger *zap.Logger) *DocenteService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &DocenteService{repo: repo, registros: registros, validator: validate, logger: logger}
}

// List returns all teacher accounts.
func (s *DocenteService) List(ctx context.Context) ([]models.Docente, error) {
	docentes, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudieron listar los docentes")
	}
	return docentes, nil
}

// Get fetches one teacher account.
func (s *DocenteService) Get(ctx context.Context, id int64) (*models.Docente, error) {
	docente, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "docente no encontrado")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo cargar el docente")
	}
	return docente, nil
}

// Create registers a teacher account with a hashed password.
func (s *DocenteService) Create(ctx context.Context, req dto.CreateDocenteRequest) (*models.Docente, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "datos de docente invalidos")
	}

	taken, err := s.repo.ExistsByUsuario(ctx, req.Usuario, 0)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo verificar el usuario")
	}
	if taken {
		return nil, appErrors.Clone(appErrors.ErrConflict, "el nombre de usuario ya esta en uso")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo procesar la contraseña")
	}

	docente := &models.Docente{
		Nombres:      req.Nombres,
		Apellidos:    req.Apellidos,
		Materia:      req.Materia,
		Usuario:      req.Usuario,
		PasswordHash: string(hash),
	}
	if err := s.repo.Create(ctx, docente); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo crear el docente")
	}
	s.logger.Info("docente creado", zap.Int64("id", docente.ID), zap.String("usuario", docente.Usuario))
	return docente, nil
}

// Update edits a teacher account. Passwords change via ResetPassword.
func (s *DocenteService) Update(ctx context.Context, id int64, req dto.UpdateDocenteRequest) (*models.Docente, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "datos de docente invalidos")
	}

	docente, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	taken, err := s.repo.ExistsByUsuario(ctx, req.Usuario, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo verificar el usuario")
	}
	if taken {
		return nil, appErrors.Clone(appErrors.ErrConflict, "el nombre de usuario ya esta en uso")
	}

	docente.Nombres = req.Nombres
	docente.Apellidos = req.Apellidos
	docente.Materia = req.Materia
	docente.Usuario = req.Usuario
	if err := s.repo.Update(ctx, docente); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo actualizar el docente")
	}
	return docente, nil
}

// ResetPassword replaces a teacher's password with a fresh hash.
func (s *DocenteService) ResetPassword(ctx context.Context, id int64, req dto.ResetPasswordRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "contraseña invalida")
	}
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo procesar la contraseña")
	}
	if err := s.repo.UpdatePassword(ctx, id, string(hash)); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo actualizar la contraseña")
	}
	return nil
}

// Delete removes a teacher account that has no incident records.
func (s *DocenteService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	registros, err := s.registros.CountByDocente(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo verificar el historial del docente")
	}
	if registros > 0 {
		return appErrors.Clone(appErrors.ErrConflict, "el docente tiene registros asociados")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo eliminar el docente")
	}
	return nil
}
