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

type estudianteRepository interface {
	List(ctx context.Context, filter models.EstudianteFilter) ([]models.Estudiante, error)
	FindByID(ctx context.Context, id int64) (*models.Estudiante, error)
	ExistsByUsuario(ctx context.Context, usuario string, excludeID int64) (bool, error)
	Create(ctx context.Context, estudiante *models.Estudiante) error
	Update(ctx context.Context, estudiante *models.Estudiante) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	Delete(ctx context.Context, id int64) error
	DistinctGrados(ctx context.Context) ([]string, error)
	DistinctSecciones(ctx context.Context) ([]string, error)
}

type estudianteRegistroRepository interface {
	CountByEstudiante(ctx context.Context, estudianteID int64) (int64, error)
}

// EstudianteService manages student accounts on behalf of the principal.
type EstudianteService struct {
	repo      estudianteRepository
	registros estudianteRegistroRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewEstudianteService constructs an EstudianteService.
func NewEstudianteService(repo estudianteRepository, registros estudianteRegistroRepository, validate *validator.Validate, logger *zap.Logger) *EstudianteService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &EstudianteService{repo: repo, registros: registros, validator: validate, logger: logger}
}

// List returns students matching the filter.
func (s *EstudianteService) List(ctx context.Context, filter models.EstudianteFilter) ([]models.Estudiante, error) {
	estudiantes, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudieron listar los estudiantes")
	}
	return estudiantes, nil
}

// Get fetches one student account.
func (s *EstudianteService) Get(ctx context.Context, id int64) (*models.Estudiante, error) {
	estudiante, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "estudiante no encontrado")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo cargar el estudiante")
	}
	return estudiante, nil
}

// Grados returns the distinct grade labels in use.
func (s *EstudianteService) Grados(ctx context.Context) ([]string, error) {
	grados, err := s.repo.DistinctGrados(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudieron listar los grados")
	}
	return grados, nil
}

// Secciones returns the distinct section labels in use.
func (s *EstudianteService) Secciones(ctx context.Context) ([]string, error) {
	secciones, err := s.repo.DistinctSecciones(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudieron listar las secciones")
	}
	return secciones, nil
}

// Create registers a student account with a hashed password.
func (s *EstudianteService) Create(ctx context.Context, req dto.CreateEstudianteRequest) (*models.Estudiante, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "datos de estudiante invalidos")
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

	estudiante := &models.Estudiante{
		Nombres:         req.Nombres,
		Apellidos:       req.Apellidos,
		Grado:           req.Grado,
		Seccion:         req.Seccion,
		FechaNacimiento: req.FechaNacimiento,
		Usuario:         req.Usuario,
		PasswordHash:    string(hash),
	}
	if err := s.repo.Create(ctx, estudiante); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo crear el estudiante")
	}
	s.logger.Info("estudiante creado", zap.Int64("id", estudiante.ID), zap.String("usuario", estudiante.Usuario))
	return estudiante, nil
}

// Update edits a student account. Passwords change via ResetPassword.
func (s *EstudianteService) Update(ctx context.Context, id int64, req dto.UpdateEstudianteRequest) (*models.Estudiante, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "datos de estudiante invalidos")
	}

	estudiante, err := s.Get(ctx, id)
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

	estudiante.Nombres = req.Nombres
	estudiante.Apellidos = req.Apellidos
	estudiante.Grado = req.Grado
	estudiante.Seccion = req.Seccion
	estudiante.FechaNacimiento = req.FechaNacimiento
	estudiante.Usuario = req.Usuario
	if err := s.repo.Update(ctx, estudiante); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo actualizar el estudiante")
	}
	return estudiante, nil
}

// ResetPassword replaces a student's password with a fresh hash.
func (s *EstudianteService) ResetPassword(ctx context.Context, id int64, req dto.ResetPasswordRequest) error {
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

// Delete removes a student account that has no incident records.
func (s *EstudianteService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	registros, err := s.registros.CountByEstudiante(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo verificar el historial del estudiante")
	}
	if registros > 0 {
		return appErrors.Clone(appErrors.ErrConflict, "el estudiante tiene registros asociados")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo eliminar el estudiante")
	}
	return nil
}
