package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/controledu/controledu-api/internal/dto"
	"github.com/controledu/controledu-api/internal/models"
	appErrors "github.com/controledu/controledu-api/pkg/errors"
)

type observacionRepository interface {
	List(ctx context.Context, filter models.ObservacionFilter) ([]models.ObservacionDetalle, error)
	FindByID(ctx context.Context, id int64) (*models.ObservacionDetalle, error)
	Create(ctx context.Context, observacion *models.Observacion) error
	MarcarLeida(ctx context.Context, id int64, fechaLectura time.Time) (bool, error)
	Delete(ctx context.Context, id int64) error
	CountNoLeidasByEstudiante(ctx context.Context, estudianteID int64) (int64, error)
}

type observacionEstudianteRepository interface {
	FindByID(ctx context.Context, id int64) (*models.Estudiante, error)
}

// ObservacionService orchestrates teacher observations.
type ObservacionService struct {
	repo        observacionRepository
	estudiantes observacionEstudianteRepository
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewObservacionService constructs an ObservacionService.
func NewObservacionService(repo observacionRepository, estudiantes observacionEstudianteRepository, validate *validator.Validate, logger *zap.Logger) *ObservacionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &ObservacionService{repo: repo, estudiantes: estudiantes, validator: validate, logger: logger}
}

// Registrar files an observation. Defaults: fecha now, leido false.
func (s *ObservacionService) Registrar(ctx context.Context, docenteID int64, req dto.RegistrarObservacionRequest) (*models.ObservacionDetalle, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "datos de observacion invalidos")
	}

	if _, err := s.estudiantes.FindByID(ctx, req.EstudianteID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "el estudiante indicado no existe")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo verificar el estudiante")
	}

	fecha := time.Now().UTC()
	if req.Fecha != nil {
		fecha = *req.Fecha
	}

	observacion := &models.Observacion{
		EstudianteID: req.EstudianteID,
		DocenteID:    docenteID,
		Tipo:         req.Tipo,
		Descripcion:  req.Descripcion,
		Fecha:        fecha,
		Leido:        false,
	}
	if err := s.repo.Create(ctx, observacion); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo registrar la observacion")
	}

	s.logger.Info("observacion registrada",
		zap.Int64("observacion_id", observacion.ID),
		zap.Int64("estudiante_id", req.EstudianteID),
		zap.String("tipo", req.Tipo))
	return s.Get(ctx, observacion.ID)
}

// List returns observations matching the filter.
func (s *ObservacionService) List(ctx context.Context, filter models.ObservacionFilter) ([]models.ObservacionDetalle, error) {
	observaciones, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudieron listar las observaciones")
	}
	return observaciones, nil
}

// Get fetches one observation with its joined display fields.
func (s *ObservacionService) Get(ctx context.Context, id int64) (*models.ObservacionDetalle, error) {
	observacion, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "observacion no encontrada")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo cargar la observacion")
	}
	return observacion, nil
}

// MarcarComoLeida stamps the read receipt. Repeat calls refresh the
// read timestamp.
func (s *ObservacionService) MarcarComoLeida(ctx context.Context, id int64) (*models.ObservacionDetalle, error) {
	found, err := s.repo.MarcarLeida(ctx, id, time.Now().UTC())
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo marcar la observacion")
	}
	if !found {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "observacion no encontrada")
	}
	return s.Get(ctx, id)
}

// Delete removes an observation.
func (s *ObservacionService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo eliminar la observacion")
	}
	return nil
}

// Resumen buckets a student's observations into positivas, negativas
// and everything else.
func (s *ObservacionService) Resumen(ctx context.Context, estudianteID int64) (*models.ResumenObservaciones, error) {
	observaciones, err := s.List(ctx, models.ObservacionFilter{EstudianteID: estudianteID})
	if err != nil {
		return nil, err
	}
	resumen := &models.ResumenObservaciones{
		Positivas: []models.ObservacionDetalle{},
		Negativas: []models.ObservacionDetalle{},
		Otras:     []models.ObservacionDetalle{},
	}
	for _, o := range observaciones {
		switch {
		case o.EsPositiva():
			resumen.Positivas = append(resumen.Positivas, o)
		case o.EsNegativa():
			resumen.Negativas = append(resumen.Negativas, o)
		default:
			resumen.Otras = append(resumen.Otras, o)
		}
	}
	return resumen, nil
}

// NoLeidas returns the unread observation count of a student.
func (s *ObservacionService) NoLeidas(ctx context.Context, estudianteID int64) (int64, error) {
	total, err := s.repo.CountNoLeidasByEstudiante(ctx, estudianteID)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudieron contar las observaciones")
	}
	return total, nil
}
