package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/controledu/controledu-api/internal/models"
)

type stubDashRegistroRepo struct {
	registros []models.RegistroConductaDetalle
}

func (s *stubDashRegistroRepo) List(ctx context.Context, filter models.RegistroFilter) ([]models.RegistroConductaDetalle, error) {
	out := []models.RegistroConductaDetalle{}
	for _, r := range s.registros {
		if filter.EstudianteID > 0 && r.EstudianteID != filter.EstudianteID {
			continue
		}
		if filter.DocenteID > 0 && r.DocenteID != filter.DocenteID {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *stubDashRegistroRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(s.registros)), nil
}

func (s *stubDashRegistroRepo) CountByEstado(ctx context.Context, estado string) (int64, error) {
	var total int64
	for _, r := range s.registros {
		if r.Estado == estado {
			total++
		}
	}
	return total, nil
}

func (s *stubDashRegistroRepo) CountByDocente(ctx context.Context, docenteID int64) (int64, error) {
	var total int64
	for _, r := range s.registros {
		if r.DocenteID == docenteID {
			total++
		}
	}
	return total, nil
}

func (s *stubDashRegistroRepo) CountByEstudiante(ctx context.Context, estudianteID int64) (int64, error) {
	var total int64
	for _, r := range s.registros {
		if r.EstudianteID == estudianteID {
			total++
		}
	}
	return total, nil
}

func (s *stubDashRegistroRepo) CountNoLeidosByEstudiante(ctx context.Context, estudianteID int64) (int64, error) {
	var total int64
	for _, r := range s.registros {
		if r.EstudianteID == estudianteID && !r.Leido {
			total++
		}
	}
	return total, nil
}

func (s *stubDashRegistroRepo) CountPorGravedad(ctx context.Context) ([]models.ConteoPorGravedad, error) {
	return []models.ConteoPorGravedad{}, nil
}

func (s *stubDashRegistroRepo) CountPorGrado(ctx context.Context) ([]models.ConteoPorGrado, error) {
	return []models.ConteoPorGrado{}, nil
}

type stubDashObservacionRepo struct {
	observaciones []models.ObservacionDetalle
}

func (s *stubDashObservacionRepo) CountByDocente(ctx context.Context, docenteID int64) (int64, error) {
	var total int64
	for _, o := range s.observaciones {
		if o.DocenteID == docenteID {
			total++
		}
	}
	return total, nil
}

func (s *stubDashObservacionRepo) CountByEstudiante(ctx context.Context, estudianteID int64) (int64, error) {
	var total int64
	for _, o := range s.observaciones {
		if o.EstudianteID == estudianteID {
			total++
		}
	}
	return total, nil
}

func (s *stubDashObservacionRepo) CountNoLeidasByEstudiante(ctx context.Context, estudianteID int64) (int64, error) {
	var total int64
	for _, o := range s.observaciones {
		if o.EstudianteID == estudianteID && !o.Leido {
			total++
		}
	}
	return total, nil
}

type stubDashEstudianteRepo struct{ total int64 }

func (s *stubDashEstudianteRepo) Count(ctx context.Context) (int64, error) { return s.total, nil }

func (s *stubDashEstudianteRepo) ConMasIncidencias(ctx context.Context, limit int) ([]models.EstudianteIncidencias, error) {
	return []models.EstudianteIncidencias{}, nil
}

type stubCountRepo struct{ total int64 }

func (s *stubCountRepo) Count(ctx context.Context) (int64, error) { return s.total, nil }

type fullObservacionRepo struct {
	stubDashObservacionRepo
}

func (s *fullObservacionRepo) List(ctx context.Context, filter models.ObservacionFilter) ([]models.ObservacionDetalle, error) {
	out := []models.ObservacionDetalle{}
	for _, o := range s.observaciones {
		if filter.EstudianteID > 0 && o.EstudianteID != filter.EstudianteID {
			continue
		}
		if filter.DocenteID > 0 && o.DocenteID != filter.DocenteID {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

func (s *fullObservacionRepo) FindByID(ctx context.Context, id int64) (*models.ObservacionDetalle, error) {
	return &s.observaciones[0], nil
}

func (s *fullObservacionRepo) Create(ctx context.Context, observacion *models.Observacion) error {
	return nil
}

func (s *fullObservacionRepo) MarcarLeida(ctx context.Context, id int64, fechaLectura time.Time) (bool, error) {
	return true, nil
}

func (s *fullObservacionRepo) Delete(ctx context.Context, id int64) error { return nil }

func registroDe(estudianteID, docenteID int64, gravedad string, puntos int, fecha time.Time, leido bool) models.RegistroConductaDetalle {
	return models.RegistroConductaDetalle{
		RegistroConducta: models.RegistroConducta{
			EstudianteID:  estudianteID,
			DocenteID:     docenteID,
			FechaRegistro: fecha,
			Leido:         leido,
			Estado:        models.EstadoActivo,
		},
		GravedadNombre: gravedad,
		GravedadPuntos: puntos,
	}
}

func newDashboardFixture(registros []models.RegistroConductaDetalle, observaciones []models.ObservacionDetalle) *DashboardService {
	regRepo := &stubDashRegistroRepo{registros: registros}
	obsRepo := &fullObservacionRepo{stubDashObservacionRepo{observaciones: observaciones}}
	obsService := NewObservacionService(obsRepo, &mockFKEstudianteRepo{existing: map[int64]*models.Estudiante{}}, validator.New(), zap.NewNop())
	return NewDashboardService(regRepo, obsRepo, &stubDashEstudianteRepo{total: 10}, &stubCountRepo{total: 2}, &stubCountRepo{total: 4}, obsService, nil, 0, zap.NewNop())
}

func TestDashboardEstudianteBucketsAndPuntos(t *testing.T) {
	now := time.Now()
	registros := []models.RegistroConductaDetalle{
		registroDe(1, 2, models.GravedadLeve, 1, now, true),
		registroDe(1, 2, "LEVE", 1, now, false),
		registroDe(1, 2, models.GravedadGrave, 3, now, false),
		registroDe(1, 2, models.GravedadMuyGrave, 5, now, false),
		registroDe(9, 2, models.GravedadLeve, 1, now, false),
	}
	svc := newDashboardFixture(registros, nil)

	dashboard, err := svc.Estudiante(context.Background(), 1)
	require.NoError(t, err)

	leve, grave, muyGrave := dashboard.Resumen.Totales()
	assert.Equal(t, 2, leve, "severity names compare case-insensitively")
	assert.Equal(t, 1, grave)
	assert.Equal(t, 1, muyGrave)
	assert.Equal(t, int64(4), dashboard.TotalIncidentes)
	assert.Equal(t, int64(3), dashboard.IncidentesNoLeidos)
	assert.Equal(t, int64(1+1+3+5), dashboard.PuntosAcumulados)
}

func TestDashboardDocenteCounts(t *testing.T) {
	now := time.Now()
	registros := []models.RegistroConductaDetalle{
		registroDe(1, 2, models.GravedadLeve, 1, now, false),
		registroDe(3, 2, models.GravedadGrave, 3, now, false),
		registroDe(3, 7, models.GravedadGrave, 3, now, false),
	}
	svc := newDashboardFixture(registros, nil)

	dashboard, err := svc.Docente(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), dashboard.TotalRegistros)
	assert.Len(t, dashboard.Recientes, 2)
}

func TestDashboardHistorialTimelineOrder(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	registros := []models.RegistroConductaDetalle{
		registroDe(1, 2, models.GravedadLeve, 1, base.AddDate(0, 0, 1), false),
		registroDe(1, 2, models.GravedadLeve, 1, time.Time{}, false), // malformed, sinks last
	}
	observaciones := []models.ObservacionDetalle{
		{Observacion: models.Observacion{EstudianteID: 1, DocenteID: 2, Tipo: models.ObservacionPositiva, Fecha: base.AddDate(0, 0, 3)}},
	}
	svc := newDashboardFixture(registros, observaciones)

	timeline, err := svc.HistorialEstudiante(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, timeline, 3)
	assert.Equal(t, models.TimelineObservacion, timeline[0].Kind)
	assert.Equal(t, models.TimelineIncidente, timeline[1].Kind)
	assert.Nil(t, timeline[2].Fecha(), "zero date sorts last")
}

func TestDashboardDirectorTotals(t *testing.T) {
	now := time.Now()
	registros := []models.RegistroConductaDetalle{
		registroDe(1, 2, models.GravedadLeve, 1, now, false),
	}
	registros[0].Estado = models.EstadoResuelto
	svc := newDashboardFixture(registros, nil)

	dashboard, err := svc.Director(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(10), dashboard.TotalEstudiantes)
	assert.Equal(t, int64(2), dashboard.TotalDocentes)
	assert.Equal(t, int64(4), dashboard.TotalConductas)
	assert.Equal(t, int64(1), dashboard.RegistrosResueltos)
	assert.Equal(t, int64(0), dashboard.RegistrosActivos)
}
