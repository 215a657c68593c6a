package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/controledu/controledu-api/internal/dto"
	"github.com/controledu/controledu-api/internal/models"
	appErrors "github.com/controledu/controledu-api/pkg/errors"
)

type conductaRepository interface {
	List(ctx context.Context, soloActivas bool) ([]models.ConductaDetalle, error)
	FindByID(ctx context.Context, id int64) (*models.ConductaDetalle, error)
	FindByGravedad(ctx context.Context, gravedadID int64) ([]models.ConductaDetalle, error)
	Search(ctx context.Context, nombre string) ([]models.ConductaDetalle, error)
	ExistsByNombre(ctx context.Context, nombre string, excludeID int64) (bool, error)
	Create(ctx context.Context, conducta *models.Conducta) error
	Update(ctx context.Context, conducta *models.Conducta) error
	SetActivo(ctx context.Context, id int64, activo bool) error
	Delete(ctx context.Context, id int64) error
	CountRegistros(ctx context.Context, id int64) (int64, error)
	MasUtilizadas(ctx context.Context) ([]models.ConductaUso, error)
	NoUtilizadas(ctx context.Context) ([]models.ConductaDetalle, error)
}

type conductaGravedadRepository interface {
	FindByID(ctx context.Context, id int64) (*models.TipoGravedad, error)
}

// ConductaService manages the behavior rule catalog.
type ConductaService struct {
	repo       conductaRepository
	gravedades conductaGravedadRepository
	cache      *CacheService
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewConductaService constructs a ConductaService.
func NewConductaService(repo conductaRepository, gravedades conductaGravedadRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *ConductaService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &ConductaService{repo: repo, gravedades: gravedades, cache: cache, validator: validate, logger: logger}
}

// List returns behavior rules. Teachers see only active rules; the
// principal also sees deactivated ones.
func (s *ConductaService) List(ctx context.Context, soloActivas bool) ([]models.ConductaDetalle, error) {
	conductas, err := s.repo.List(ctx, soloActivas)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudieron listar las conductas")
	}
	return conductas, nil
}

// Get fetches one behavior rule with its severity.
func (s *ConductaService) Get(ctx context.Context, id int64) (*models.ConductaDetalle, error) {
	conducta, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "conducta no encontrada")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo cargar la conducta")
	}
	return conducta, nil
}

// PorGravedad lists rules under one severity level.
func (s *ConductaService) PorGravedad(ctx context.Context, gravedadID int64) ([]models.ConductaDetalle, error) {
	conductas, err := s.repo.FindByGravedad(ctx, gravedadID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudieron listar las conductas")
	}
	return conductas, nil
}

// Buscar lists rules matching a name fragment.
func (s *ConductaService) Buscar(ctx context.Context, nombre string) ([]models.ConductaDetalle, error) {
	conductas, err := s.repo.Search(ctx, nombre)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudieron buscar las conductas")
	}
	return conductas, nil
}

// Create registers a new behavior rule. Rule names are unique and the
// severity must exist.
func (s *ConductaService) Create(ctx context.Context, req dto.ConductaRequest) (*models.ConductaDetalle, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "datos de conducta invalidos")
	}

	if _, err := s.gravedades.FindByID(ctx, req.GravedadID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "la gravedad indicada no existe")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo verificar la gravedad")
	}

	exists, err := s.repo.ExistsByNombre(ctx, req.Nombre, 0)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo verificar el nombre")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "ya existe una conducta con ese nombre")
	}

	conducta := &models.Conducta{
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		GravedadID:  req.GravedadID,
		Activo:      true,
	}
	if err := s.repo.Create(ctx, conducta); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo crear la conducta")
	}

	s.invalidateReportes(ctx)
	return s.Get(ctx, conducta.ID)
}

// Update edits an existing behavior rule.
func (s *ConductaService) Update(ctx context.Context, id int64, req dto.ConductaRequest) (*models.ConductaDetalle, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "datos de conducta invalidos")
	}

	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := s.gravedades.FindByID(ctx, req.GravedadID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "la gravedad indicada no existe")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo verificar la gravedad")
	}

	taken, err := s.repo.ExistsByNombre(ctx, req.Nombre, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo verificar el nombre")
	}
	if taken {
		return nil, appErrors.Clone(appErrors.ErrConflict, "ya existe una conducta con ese nombre")
	}

	conducta := existing.Conducta
	conducta.Nombre = req.Nombre
	conducta.Descripcion = req.Descripcion
	conducta.GravedadID = req.GravedadID
	if err := s.repo.Update(ctx, &conducta); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo actualizar la conducta")
	}

	s.invalidateReportes(ctx)
	return s.Get(ctx, id)
}

// SetActivo toggles a rule without touching its incident history.
func (s *ConductaService) SetActivo(ctx context.Context, id int64, activo bool) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.SetActivo(ctx, id, activo); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo cambiar el estado de la conducta")
	}
	s.invalidateReportes(ctx)
	return nil
}

// Delete removes a rule that no incident record references. Referenced
// rules can only be deactivated.
func (s *ConductaService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	usos, err := s.repo.CountRegistros(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo verificar el uso de la conducta")
	}
	if usos > 0 {
		return appErrors.Clone(appErrors.ErrConflict, "la conducta tiene registros asociados; desactivela en su lugar")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo eliminar la conducta")
	}
	s.invalidateReportes(ctx)
	return nil
}

// MasUtilizadas lists active rules by usage, most used first.
func (s *ConductaService) MasUtilizadas(ctx context.Context) ([]models.ConductaUso, error) {
	usos, err := s.repo.MasUtilizadas(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudieron listar las conductas mas utilizadas")
	}
	return usos, nil
}

// NoUtilizadas lists active rules that no incident record references.
func (s *ConductaService) NoUtilizadas(ctx context.Context) ([]models.ConductaDetalle, error) {
	conductas, err := s.repo.NoUtilizadas(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudieron listar las conductas sin uso")
	}
	return conductas, nil
}

func (s *ConductaService) invalidateReportes(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, "dashboard:*"); err != nil {
		s.logger.Warn("failed to invalidate dashboard cache", zap.Error(err))
	}
	if err := s.cache.Invalidate(ctx, "reportes:*"); err != nil {
		s.logger.Warn("failed to invalidate report cache", zap.Error(err))
	}
}
