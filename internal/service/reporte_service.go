package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/controledu/controledu-api/internal/dto"
	"github.com/controledu/controledu-api/internal/models"
	appErrors "github.com/controledu/controledu-api/pkg/errors"
	"github.com/controledu/controledu-api/pkg/export"
)

type reporteRegistroRepository interface {
	Count(ctx context.Context) (int64, error)
	CountPorGravedad(ctx context.Context) ([]models.ConteoPorGravedad, error)
	CountPorGrado(ctx context.Context) ([]models.ConteoPorGrado, error)
	CountPorMes(ctx context.Context) ([]models.ConteoPorMes, error)
}

type reporteObservacionRepository interface {
	Count(ctx context.Context) (int64, error)
	CountPorTipo(ctx context.Context) ([]models.ConteoPorTipo, error)
}

type reporteConductaRepository interface {
	MasUtilizadas(ctx context.Context) ([]models.ConductaUso, error)
	NoUtilizadas(ctx context.Context) ([]models.ConductaDetalle, error)
}

type reporteEstudianteRepository interface {
	Count(ctx context.Context) (int64, error)
	ConMasIncidencias(ctx context.Context, limit int) ([]models.EstudianteIncidencias, error)
	SinIncidencias(ctx context.Context) ([]models.Estudiante, error)
}

// Export formats accepted by the report endpoint.
const (
	FormatoCSV = "csv"
	FormatoPDF = "pdf"
)

// ReporteService assembles the consolidated report and renders its
// export formats.
type ReporteService struct {
	registros     reporteRegistroRepository
	observaciones reporteObservacionRepository
	conductas     reporteConductaRepository
	estudiantes   reporteEstudianteRepository
	csv           *export.CSVExporter
	pdf           *export.PDFExporter
	cache         *CacheService
	cacheTTL      time.Duration
	logger        *zap.Logger
}

// NewReporteService constructs a ReporteService.
func NewReporteService(registros reporteRegistroRepository, observaciones reporteObservacionRepository, conductas reporteConductaRepository, estudiantes reporteEstudianteRepository, cache *CacheService, cacheTTL time.Duration, logger *zap.Logger) *ReporteService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReporteService{
		registros:     registros,
		observaciones: observaciones,
		conductas:     conductas,
		estudiantes:   estudiantes,
		csv:           export.NewCSVExporter(),
		pdf:           export.NewPDFExporter(),
		cache:         cache,
		cacheTTL:      cacheTTL,
		logger:        logger,
	}
}

// General assembles the consolidated report. The incident-per-student
// ratio is 0.0 when there are no students.
func (s *ReporteService) General(ctx context.Context) (*dto.ReporteGeneral, error) {
	const cacheKey = "reportes:general"
	if s.cache != nil {
		var cached dto.ReporteGeneral
		if hit, _ := s.cache.Get(ctx, cacheKey, &cached); hit {
			return &cached, nil
		}
	}

	reporte := &dto.ReporteGeneral{}
	var err error
	if reporte.TotalRegistros, err = s.registros.Count(ctx); err != nil {
		return nil, s.wrap(err, "total de registros")
	}
	if reporte.TotalObservaciones, err = s.observaciones.Count(ctx); err != nil {
		return nil, s.wrap(err, "total de observaciones")
	}
	if reporte.PorGravedad, err = s.registros.CountPorGravedad(ctx); err != nil {
		return nil, s.wrap(err, "conteo por gravedad")
	}
	if reporte.PorGrado, err = s.registros.CountPorGrado(ctx); err != nil {
		return nil, s.wrap(err, "conteo por grado")
	}
	if reporte.PorMes, err = s.registros.CountPorMes(ctx); err != nil {
		return nil, s.wrap(err, "conteo por mes")
	}
	if reporte.PorTipoObservacion, err = s.observaciones.CountPorTipo(ctx); err != nil {
		return nil, s.wrap(err, "conteo por tipo de observacion")
	}
	if reporte.ConductasMasUsadas, err = s.conductas.MasUtilizadas(ctx); err != nil {
		return nil, s.wrap(err, "conductas mas usadas")
	}
	if reporte.ConductasSinUso, err = s.conductas.NoUtilizadas(ctx); err != nil {
		return nil, s.wrap(err, "conductas sin uso")
	}
	if reporte.TopEstudiantes, err = s.estudiantes.ConMasIncidencias(ctx, 10); err != nil {
		return nil, s.wrap(err, "top estudiantes")
	}
	if reporte.EstudiantesSinFaltas, err = s.estudiantes.SinIncidencias(ctx); err != nil {
		return nil, s.wrap(err, "estudiantes sin faltas")
	}

	totalEstudiantes, err := s.estudiantes.Count(ctx)
	if err != nil {
		return nil, s.wrap(err, "total de estudiantes")
	}
	reporte.RatioIncidentes = ratio(reporte.TotalRegistros, totalEstudiantes)

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, reporte, s.cacheTTL); err != nil {
			s.logger.Warn("failed to cache report", zap.Error(err))
		}
	}
	return reporte, nil
}

// Export renders the incident summary in the requested format and
// returns the payload with its suggested filename and content type.
func (s *ReporteService) Export(ctx context.Context, formato string) ([]byte, string, string, error) {
	reporte, err := s.General(ctx)
	if err != nil {
		return nil, "", "", err
	}

	tabla := buildReporteTabla(reporte)
	switch formato {
	case FormatoCSV:
		payload, err := s.csv.Render(tabla)
		if err != nil {
			return nil, "", "", s.wrap(err, "exportar csv")
		}
		return payload, export.Filename("reporte-conductas", "csv", time.Now().UTC()), "text/csv", nil
	case FormatoPDF:
		payload, err := s.pdf.Render(tabla)
		if err != nil {
			return nil, "", "", s.wrap(err, "exportar pdf")
		}
		return payload, export.Filename("reporte-conductas", "pdf", time.Now().UTC()), "application/pdf", nil
	default:
		return nil, "", "", appErrors.Clone(appErrors.ErrValidation, "formato de exportacion no soportado")
	}
}

func buildReporteTabla(reporte *dto.ReporteGeneral) export.Tabla {
	filas := make([]map[string]string, 0, len(reporte.PorGravedad)+len(reporte.PorGrado)+len(reporte.PorMes))
	for _, c := range reporte.PorGravedad {
		filas = append(filas, map[string]string{
			"seccion": "por gravedad",
			"clave":   c.Gravedad,
			"total":   strconv.FormatInt(c.Total, 10),
		})
	}
	for _, c := range reporte.PorGrado {
		filas = append(filas, map[string]string{
			"seccion": "por grado",
			"clave":   c.Grado,
			"total":   strconv.FormatInt(c.Total, 10),
		})
	}
	for _, c := range reporte.PorMes {
		filas = append(filas, map[string]string{
			"seccion": "por mes",
			"clave":   fmt.Sprintf("%04d-%02d", c.Anio, c.Mes),
			"total":   strconv.FormatInt(c.Total, 10),
		})
	}
	return export.Tabla{
		Titulo:   "Resumen de conductas",
		Columnas: []string{"seccion", "clave", "total"},
		Filas:    filas,
	}
}

func ratio(registros, estudiantes int64) float64 {
	if estudiantes == 0 {
		return 0.0
	}
	return float64(registros) / float64(estudiantes)
}

func (s *ReporteService) wrap(err error, what string) error {
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, fmt.Sprintf("no se pudo generar el reporte: %s", what))
}
