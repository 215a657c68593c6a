package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/controledu/controledu-api/internal/dto"
	"github.com/controledu/controledu-api/internal/models"
	appErrors "github.com/controledu/controledu-api/pkg/errors"
)

type mockObservacionRepo struct {
	observaciones map[int64]*models.ObservacionDetalle
	nextID        int64
}

func newMockObservacionRepo() *mockObservacionRepo {
	return &mockObservacionRepo{observaciones: map[int64]*models.ObservacionDetalle{}, nextID: 1}
}

func (m *mockObservacionRepo) List(ctx context.Context, filter models.ObservacionFilter) ([]models.ObservacionDetalle, error) {
	out := []models.ObservacionDetalle{}
	for _, o := range m.observaciones {
		if filter.EstudianteID > 0 && o.EstudianteID != filter.EstudianteID {
			continue
		}
		out = append(out, *o)
	}
	return out, nil
}

func (m *mockObservacionRepo) FindByID(ctx context.Context, id int64) (*models.ObservacionDetalle, error) {
	o, ok := m.observaciones[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return o, nil
}

func (m *mockObservacionRepo) Create(ctx context.Context, observacion *models.Observacion) error {
	observacion.ID = m.nextID
	m.nextID++
	m.observaciones[observacion.ID] = &models.ObservacionDetalle{Observacion: *observacion}
	return nil
}

func (m *mockObservacionRepo) MarcarLeida(ctx context.Context, id int64, fechaLectura time.Time) (bool, error) {
	o, ok := m.observaciones[id]
	if !ok {
		return false, nil
	}
	o.Leido = true
	o.FechaLectura = &fechaLectura
	return true, nil
}

func (m *mockObservacionRepo) Delete(ctx context.Context, id int64) error {
	delete(m.observaciones, id)
	return nil
}

func (m *mockObservacionRepo) CountNoLeidasByEstudiante(ctx context.Context, estudianteID int64) (int64, error) {
	var total int64
	for _, o := range m.observaciones {
		if o.EstudianteID == estudianteID && !o.Leido {
			total++
		}
	}
	return total, nil
}

func newObservacionFixture() (*ObservacionService, *mockObservacionRepo) {
	repo := newMockObservacionRepo()
	estudiantes := &mockFKEstudianteRepo{existing: map[int64]*models.Estudiante{
		1: {ID: 1, Nombres: "Ana", Apellidos: "Lopez"},
	}}
	return NewObservacionService(repo, estudiantes, validator.New(), zap.NewNop()), repo
}

func TestObservacionServiceRegistrarDefaults(t *testing.T) {
	svc, _ := newObservacionFixture()

	observacion, err := svc.Registrar(context.Background(), 2, dto.RegistrarObservacionRequest{
		EstudianteID: 1,
		Tipo:         models.ObservacionPositiva,
		Descripcion:  "Ayudo a un companero",
	})
	require.NoError(t, err)
	assert.False(t, observacion.Leido)
	assert.Equal(t, int64(2), observacion.DocenteID)
	assert.WithinDuration(t, time.Now().UTC(), observacion.Fecha, time.Minute)
}

func TestObservacionServiceRegistrarUnknownStudent(t *testing.T) {
	svc, repo := newObservacionFixture()

	_, err := svc.Registrar(context.Background(), 2, dto.RegistrarObservacionRequest{
		EstudianteID: 99,
		Tipo:         models.ObservacionNegativa,
		Descripcion:  "x",
	})
	require.Error(t, err)
	appErr, ok := err.(*appErrors.Error)
	require.True(t, ok)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Empty(t, repo.observaciones)
}

func TestObservacionServiceRegistrarFreeTextTipo(t *testing.T) {
	svc, repo := newObservacionFixture()

	observacion, err := svc.Registrar(context.Background(), 2, dto.RegistrarObservacionRequest{
		EstudianteID: 1,
		Tipo:         "neutra",
		Descripcion:  "Sin novedades",
	})
	require.NoError(t, err)
	assert.Equal(t, "neutra", observacion.Tipo)
	require.Contains(t, repo.observaciones, observacion.ID)

	resumen, err := svc.Resumen(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, resumen.Otras, 1, "non-canonical tipo lands in otras")
}

func TestObservacionServiceResumenBuckets(t *testing.T) {
	svc, repo := newObservacionFixture()

	seed := []models.Observacion{
		{EstudianteID: 1, Tipo: "positiva"},
		{EstudianteID: 1, Tipo: "POSITIVA"},
		{EstudianteID: 1, Tipo: "negativa"},
		{EstudianteID: 1, Tipo: "seguimiento"},
		{EstudianteID: 8, Tipo: "positiva"},
	}
	for i := range seed {
		require.NoError(t, repo.Create(context.Background(), &seed[i]))
	}

	resumen, err := svc.Resumen(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, resumen.Positivas, 2, "tipo compares case-insensitively")
	assert.Len(t, resumen.Negativas, 1)
	assert.Len(t, resumen.Otras, 1)
}

func TestObservacionServiceMarcarComoLeida(t *testing.T) {
	svc, repo := newObservacionFixture()

	obs := models.Observacion{EstudianteID: 1, Tipo: "positiva"}
	require.NoError(t, repo.Create(context.Background(), &obs))

	marked, err := svc.MarcarComoLeida(context.Background(), obs.ID)
	require.NoError(t, err)
	assert.True(t, marked.Leido)
	require.NotNil(t, marked.FechaLectura)

	_, err = svc.MarcarComoLeida(context.Background(), 404)
	require.Error(t, err)
}
