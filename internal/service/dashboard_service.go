package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/controledu/controledu-api/internal/dto"
	"github.com/controledu/controledu-api/internal/models"
	appErrors "github.com/controledu/controledu-api/pkg/errors"
)

const recentItems = 5

type dashboardRegistroRepository interface {
	List(ctx context.Context, filter models.RegistroFilter) ([]models.RegistroConductaDetalle, error)
	Count(ctx context.Context) (int64, error)
	CountByEstado(ctx context.Context, estado string) (int64, error)
	CountByDocente(ctx context.Context, docenteID int64) (int64, error)
	CountByEstudiante(ctx context.Context, estudianteID int64) (int64, error)
	CountNoLeidosByEstudiante(ctx context.Context, estudianteID int64) (int64, error)
	CountPorGravedad(ctx context.Context) ([]models.ConteoPorGravedad, error)
	CountPorGrado(ctx context.Context) ([]models.ConteoPorGrado, error)
}

type dashboardObservacionRepository interface {
	CountByDocente(ctx context.Context, docenteID int64) (int64, error)
	CountByEstudiante(ctx context.Context, estudianteID int64) (int64, error)
	CountNoLeidasByEstudiante(ctx context.Context, estudianteID int64) (int64, error)
}

type dashboardEstudianteRepository interface {
	Count(ctx context.Context) (int64, error)
	ConMasIncidencias(ctx context.Context, limit int) ([]models.EstudianteIncidencias, error)
}

type dashboardDocenteRepository interface {
	Count(ctx context.Context) (int64, error)
}

type dashboardConductaRepository interface {
	Count(ctx context.Context) (int64, error)
}

// DashboardService assembles the role-specific landing views. The
// principal's view is cached in Redis; the per-user views are cheap
// enough to build on every request.
type DashboardService struct {
	registros     dashboardRegistroRepository
	observaciones dashboardObservacionRepository
	estudiantes   dashboardEstudianteRepository
	docentes      dashboardDocenteRepository
	conductas     dashboardConductaRepository
	obsService    *ObservacionService
	cache         *CacheService
	cacheTTL      time.Duration
	logger        *zap.Logger
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(registros dashboardRegistroRepository, observaciones dashboardObservacionRepository, estudiantes dashboardEstudianteRepository, docentes dashboardDocenteRepository, conductas dashboardConductaRepository, obsService *ObservacionService, cache *CacheService, cacheTTL time.Duration, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		registros:     registros,
		observaciones: observaciones,
		estudiantes:   estudiantes,
		docentes:      docentes,
		conductas:     conductas,
		obsService:    obsService,
		cache:         cache,
		cacheTTL:      cacheTTL,
		logger:        logger,
	}
}

// Director builds the school-wide dashboard.
func (s *DashboardService) Director(ctx context.Context) (*dto.DirectorDashboard, error) {
	const cacheKey = "dashboard:director"
	if s.cache != nil {
		var cached dto.DirectorDashboard
		if hit, _ := s.cache.Get(ctx, cacheKey, &cached); hit {
			return &cached, nil
		}
	}

	dashboard := &dto.DirectorDashboard{}
	var err error
	if dashboard.TotalEstudiantes, err = s.estudiantes.Count(ctx); err != nil {
		return nil, s.wrap(err, "estudiantes")
	}
	if dashboard.TotalDocentes, err = s.docentes.Count(ctx); err != nil {
		return nil, s.wrap(err, "docentes")
	}
	if dashboard.TotalConductas, err = s.conductas.Count(ctx); err != nil {
		return nil, s.wrap(err, "conductas")
	}
	if dashboard.TotalRegistros, err = s.registros.Count(ctx); err != nil {
		return nil, s.wrap(err, "registros")
	}
	if dashboard.RegistrosActivos, err = s.registros.CountByEstado(ctx, models.EstadoActivo); err != nil {
		return nil, s.wrap(err, "registros activos")
	}
	if dashboard.RegistrosResueltos, err = s.registros.CountByEstado(ctx, models.EstadoResuelto); err != nil {
		return nil, s.wrap(err, "registros resueltos")
	}
	if dashboard.PorGravedad, err = s.registros.CountPorGravedad(ctx); err != nil {
		return nil, s.wrap(err, "conteo por gravedad")
	}
	if dashboard.PorGrado, err = s.registros.CountPorGrado(ctx); err != nil {
		return nil, s.wrap(err, "conteo por grado")
	}
	if dashboard.TopEstudiantes, err = s.estudiantes.ConMasIncidencias(ctx, recentItems); err != nil {
		return nil, s.wrap(err, "top estudiantes")
	}
	if dashboard.Recientes, err = s.registros.List(ctx, models.RegistroFilter{Limit: recentItems}); err != nil {
		return nil, s.wrap(err, "registros recientes")
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, dashboard, s.cacheTTL); err != nil {
			s.logger.Warn("failed to cache director dashboard", zap.Error(err))
		}
	}
	return dashboard, nil
}

// Docente builds a teacher's own activity view.
func (s *DashboardService) Docente(ctx context.Context, docenteID int64) (*dto.DocenteDashboard, error) {
	dashboard := &dto.DocenteDashboard{}
	var err error
	if dashboard.TotalRegistros, err = s.registros.CountByDocente(ctx, docenteID); err != nil {
		return nil, s.wrap(err, "registros del docente")
	}
	if dashboard.TotalObservaciones, err = s.observaciones.CountByDocente(ctx, docenteID); err != nil {
		return nil, s.wrap(err, "observaciones del docente")
	}
	if dashboard.Recientes, err = s.registros.List(ctx, models.RegistroFilter{DocenteID: docenteID, Limit: recentItems}); err != nil {
		return nil, s.wrap(err, "registros recientes del docente")
	}
	return dashboard, nil
}

// Estudiante builds a student's own record view, including the severity
// buckets and point total.
func (s *DashboardService) Estudiante(ctx context.Context, estudianteID int64) (*dto.EstudianteDashboard, error) {
	dashboard := &dto.EstudianteDashboard{}
	var err error
	if dashboard.TotalIncidentes, err = s.registros.CountByEstudiante(ctx, estudianteID); err != nil {
		return nil, s.wrap(err, "incidentes del estudiante")
	}
	if dashboard.IncidentesNoLeidos, err = s.registros.CountNoLeidosByEstudiante(ctx, estudianteID); err != nil {
		return nil, s.wrap(err, "incidentes no leidos")
	}
	if dashboard.TotalObservaciones, err = s.observaciones.CountByEstudiante(ctx, estudianteID); err != nil {
		return nil, s.wrap(err, "observaciones del estudiante")
	}
	if dashboard.ObservacionesNoLeidas, err = s.observaciones.CountNoLeidasByEstudiante(ctx, estudianteID); err != nil {
		return nil, s.wrap(err, "observaciones no leidas")
	}

	resumen, err := s.ResumenConductas(ctx, estudianteID)
	if err != nil {
		return nil, err
	}
	dashboard.Resumen = *resumen
	dashboard.PuntosAcumulados = puntosDe(resumen)

	if s.obsService != nil {
		observaciones, err := s.obsService.Resumen(ctx, estudianteID)
		if err != nil {
			return nil, err
		}
		dashboard.Observaciones = *observaciones
	}
	return dashboard, nil
}

// HistorialDocente merges a teacher's incidents and observations into
// one timeline, newest first.
func (s *DashboardService) HistorialDocente(ctx context.Context, docenteID int64) ([]models.TimelineItem, error) {
	registros, err := s.registros.List(ctx, models.RegistroFilter{DocenteID: docenteID})
	if err != nil {
		return nil, s.wrap(err, "historial del docente")
	}
	observaciones, err := s.obsService.List(ctx, models.ObservacionFilter{DocenteID: docenteID})
	if err != nil {
		return nil, err
	}
	return models.BuildTimeline(registros, observaciones), nil
}

// HistorialEstudiante merges a student's incidents and observations
// into one timeline, newest first.
func (s *DashboardService) HistorialEstudiante(ctx context.Context, estudianteID int64) ([]models.TimelineItem, error) {
	registros, err := s.registros.List(ctx, models.RegistroFilter{EstudianteID: estudianteID})
	if err != nil {
		return nil, s.wrap(err, "historial del estudiante")
	}
	observaciones, err := s.obsService.List(ctx, models.ObservacionFilter{EstudianteID: estudianteID})
	if err != nil {
		return nil, err
	}
	return models.BuildTimeline(registros, observaciones), nil
}

// ResumenConductas buckets a student's incidents by severity name.
func (s *DashboardService) ResumenConductas(ctx context.Context, estudianteID int64) (*models.ResumenConductas, error) {
	registros, err := s.registros.List(ctx, models.RegistroFilter{EstudianteID: estudianteID})
	if err != nil {
		return nil, s.wrap(err, "historial del estudiante")
	}
	resumen := &models.ResumenConductas{
		Leve:     []models.RegistroConductaDetalle{},
		Grave:    []models.RegistroConductaDetalle{},
		MuyGrave: []models.RegistroConductaDetalle{},
	}
	for _, r := range registros {
		switch {
		case strings.EqualFold(r.GravedadNombre, models.GravedadLeve):
			resumen.Leve = append(resumen.Leve, r)
		case strings.EqualFold(r.GravedadNombre, models.GravedadGrave):
			resumen.Grave = append(resumen.Grave, r)
		default:
			resumen.MuyGrave = append(resumen.MuyGrave, r)
		}
	}
	return resumen, nil
}

func puntosDe(resumen *models.ResumenConductas) int64 {
	var total int64
	for _, bucket := range [][]models.RegistroConductaDetalle{resumen.Leve, resumen.Grave, resumen.MuyGrave} {
		for _, r := range bucket {
			total += int64(r.GravedadPuntos)
		}
	}
	return total
}

func (s *DashboardService) wrap(err error, what string) error {
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, fmt.Sprintf("no se pudo cargar el panel: %s", what))
}
