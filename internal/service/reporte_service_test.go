package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/controledu/controledu-api/internal/models"
)

type stubReporteRegistroRepo struct {
	total       int64
	porGravedad []models.ConteoPorGravedad
	porGrado    []models.ConteoPorGrado
	porMes      []models.ConteoPorMes
}

func (s *stubReporteRegistroRepo) Count(ctx context.Context) (int64, error) { return s.total, nil }

func (s *stubReporteRegistroRepo) CountPorGravedad(ctx context.Context) ([]models.ConteoPorGravedad, error) {
	return s.porGravedad, nil
}

func (s *stubReporteRegistroRepo) CountPorGrado(ctx context.Context) ([]models.ConteoPorGrado, error) {
	return s.porGrado, nil
}

func (s *stubReporteRegistroRepo) CountPorMes(ctx context.Context) ([]models.ConteoPorMes, error) {
	return s.porMes, nil
}

type stubReporteObservacionRepo struct{ total int64 }

func (s *stubReporteObservacionRepo) Count(ctx context.Context) (int64, error) { return s.total, nil }

func (s *stubReporteObservacionRepo) CountPorTipo(ctx context.Context) ([]models.ConteoPorTipo, error) {
	return []models.ConteoPorTipo{{Tipo: models.ObservacionPositiva, Total: s.total}}, nil
}

type stubReporteConductaRepo struct{}

func (s *stubReporteConductaRepo) MasUtilizadas(ctx context.Context) ([]models.ConductaUso, error) {
	return []models.ConductaUso{}, nil
}

func (s *stubReporteConductaRepo) NoUtilizadas(ctx context.Context) ([]models.ConductaDetalle, error) {
	return []models.ConductaDetalle{}, nil
}

type stubReporteEstudianteRepo struct{ total int64 }

func (s *stubReporteEstudianteRepo) Count(ctx context.Context) (int64, error) { return s.total, nil }

func (s *stubReporteEstudianteRepo) ConMasIncidencias(ctx context.Context, limit int) ([]models.EstudianteIncidencias, error) {
	return []models.EstudianteIncidencias{}, nil
}

func (s *stubReporteEstudianteRepo) SinIncidencias(ctx context.Context) ([]models.Estudiante, error) {
	return []models.Estudiante{}, nil
}

func newReporteFixture(registros, estudiantes int64) *ReporteService {
	return NewReporteService(
		&stubReporteRegistroRepo{
			total:       registros,
			porGravedad: []models.ConteoPorGravedad{{Gravedad: models.GravedadLeve, Total: registros}},
			porGrado:    []models.ConteoPorGrado{{Grado: "3", Total: registros}},
			porMes:      []models.ConteoPorMes{{Anio: 2026, Mes: 3, Total: registros}},
		},
		&stubReporteObservacionRepo{total: 4},
		&stubReporteConductaRepo{},
		&stubReporteEstudianteRepo{total: estudiantes},
		nil, 0, zap.NewNop(),
	)
}

func TestReporteGeneralRatio(t *testing.T) {
	svc := newReporteFixture(20, 10)

	reporte, err := svc.General(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2.0, reporte.RatioIncidentes)
}

func TestReporteGeneralRatioZeroStudents(t *testing.T) {
	svc := newReporteFixture(20, 0)

	reporte, err := svc.General(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0.0, reporte.RatioIncidentes)
}

func TestReporteExportCSV(t *testing.T) {
	svc := newReporteFixture(7, 3)

	payload, filename, contentType, err := svc.Export(context.Background(), FormatoCSV)
	require.NoError(t, err)
	assert.Equal(t, "text/csv", contentType)
	assert.True(t, strings.HasPrefix(filename, "reporte-conductas"))
	assert.Contains(t, string(payload), "por gravedad")
	assert.Contains(t, string(payload), models.GravedadLeve)
	assert.Contains(t, string(payload), "2026-03")
}

func TestReporteExportPDF(t *testing.T) {
	svc := newReporteFixture(7, 3)

	payload, filename, contentType, err := svc.Export(context.Background(), FormatoPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", contentType)
	assert.True(t, strings.HasSuffix(filename, ".pdf"))
	assert.True(t, strings.HasPrefix(string(payload), "%PDF"))
}

func TestReporteExportUnknownFormat(t *testing.T) {
	svc := newReporteFixture(7, 3)

	_, _, _, err := svc.Export(context.Background(), "xlsx")
	require.Error(t, err)
}
