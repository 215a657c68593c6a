package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/controledu/controledu-api/internal/models"
	appErrors "github.com/controledu/controledu-api/pkg/errors"
)

type tipoGravedadRepository interface {
	List(ctx context.Context) ([]models.TipoGravedad, error)
	FindByID(ctx context.Context, id int64) (*models.TipoGravedad, error)
	Create(ctx context.Context, gravedad *models.TipoGravedad) error
	Count(ctx context.Context) (int64, error)
}

// TipoGravedadService exposes the severity catalog. The catalog is
// fixed after seeding; there is no edit surface.
type TipoGravedadService struct {
	repo   tipoGravedadRepository
	logger *zap.Logger
}

// NewTipoGravedadService constructs a TipoGravedadService.
func NewTipoGravedadService(repo tipoGravedadRepository, logger *zap.Logger) *TipoGravedadService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TipoGravedadService{repo: repo, logger: logger}
}

// List returns all severity levels.
func (s *TipoGravedadService) List(ctx context.Context) ([]models.TipoGravedad, error) {
	gravedades, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudieron listar las gravedades")
	}
	return gravedades, nil
}

// Get fetches one severity level.
func (s *TipoGravedadService) Get(ctx context.Context, id int64) (*models.TipoGravedad, error) {
	gravedad, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "gravedad no encontrada")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo cargar la gravedad")
	}
	return gravedad, nil
}

// InitializeDefaultGravedades seeds the three canonical severity levels
// at startup. A non-empty catalog, canonical or not, is left untouched,
// so the call is safe to repeat on every boot.
func (s *TipoGravedadService) InitializeDefaultGravedades(ctx context.Context) error {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo verificar el catalogo de gravedades")
	}
	if total > 0 {
		return nil
	}

	defaults := []models.TipoGravedad{
		{Nombre: models.GravedadLeve, Descripcion: "Faltas menores que no alteran la convivencia escolar", Puntos: 1},
		{Nombre: models.GravedadGrave, Descripcion: "Faltas que afectan la convivencia escolar", Puntos: 3},
		{Nombre: models.GravedadMuyGrave, Descripcion: "Faltas que requieren intervencion inmediata de la direccion", Puntos: 5},
	}

	for i := range defaults {
		gravedad := defaults[i]
		if err := s.repo.Create(ctx, &gravedad); err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo crear la gravedad inicial")
		}
		s.logger.Info("seeded gravedad", zap.String("nombre", gravedad.Nombre), zap.Int("puntos", gravedad.Puntos))
	}
	return nil
}
