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

type mockRegistroRepo struct {
	registros map[int64]*models.RegistroConductaDetalle
	nextID    int64
	created   []*models.RegistroConducta
	marcados  map[int64]time.Time
	estados   map[int64]string
}

func newMockRegistroRepo() *mockRegistroRepo {
	return &mockRegistroRepo{
		registros: map[int64]*models.RegistroConductaDetalle{},
		nextID:    1,
		marcados:  map[int64]time.Time{},
		estados:   map[int64]string{},
	}
}

func (m *mockRegistroRepo) List(ctx context.Context, filter models.RegistroFilter) ([]models.RegistroConductaDetalle, error) {
	out := []models.RegistroConductaDetalle{}
	for _, r := range m.registros {
		if filter.EstudianteID > 0 && r.EstudianteID != filter.EstudianteID {
			continue
		}
		if filter.DocenteID > 0 && r.DocenteID != filter.DocenteID {
			continue
		}
		out = append(out, *r)
	}
	return out, nil
}

func (m *mockRegistroRepo) FindByID(ctx context.Context, id int64) (*models.RegistroConductaDetalle, error) {
	r, ok := m.registros[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return r, nil
}

func (m *mockRegistroRepo) Create(ctx context.Context, registro *models.RegistroConducta) error {
	registro.ID = m.nextID
	m.nextID++
	m.created = append(m.created, registro)
	m.registros[registro.ID] = &models.RegistroConductaDetalle{RegistroConducta: *registro}
	return nil
}

func (m *mockRegistroRepo) MarcarLeido(ctx context.Context, id int64, fechaLectura time.Time) (bool, error) {
	r, ok := m.registros[id]
	if !ok {
		return false, nil
	}
	r.Leido = true
	r.FechaLectura = &fechaLectura
	m.marcados[id] = fechaLectura
	return true, nil
}

func (m *mockRegistroRepo) CambiarEstado(ctx context.Context, id int64, estado string) error {
	m.registros[id].Estado = estado
	m.estados[id] = estado
	return nil
}

func (m *mockRegistroRepo) SetEvidenciaURL(ctx context.Context, id int64, url *string) error {
	m.registros[id].EvidenciaURL = url
	return nil
}

func (m *mockRegistroRepo) Delete(ctx context.Context, id int64) error {
	delete(m.registros, id)
	return nil
}

func (m *mockRegistroRepo) CountNoLeidosByEstudiante(ctx context.Context, estudianteID int64) (int64, error) {
	var total int64
	for _, r := range m.registros {
		if r.EstudianteID == estudianteID && !r.Leido {
			total++
		}
	}
	return total, nil
}

type mockFKEstudianteRepo struct {
	existing map[int64]*models.Estudiante
}

func (m *mockFKEstudianteRepo) FindByID(ctx context.Context, id int64) (*models.Estudiante, error) {
	e, ok := m.existing[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return e, nil
}

type mockFKDocenteRepo struct {
	existing map[int64]*models.Docente
}

func (m *mockFKDocenteRepo) FindByID(ctx context.Context, id int64) (*models.Docente, error) {
	d, ok := m.existing[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return d, nil
}

type mockFKConductaRepo struct {
	existing map[int64]*models.ConductaDetalle
}

func (m *mockFKConductaRepo) FindByID(ctx context.Context, id int64) (*models.ConductaDetalle, error) {
	c, ok := m.existing[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return c, nil
}

func newRegistroFixture() (*RegistroConductaService, *mockRegistroRepo) {
	repo := newMockRegistroRepo()
	estudiantes := &mockFKEstudianteRepo{existing: map[int64]*models.Estudiante{
		1: {ID: 1, Nombres: "Ana", Apellidos: "Lopez"},
	}}
	docentes := &mockFKDocenteRepo{existing: map[int64]*models.Docente{
		2: {ID: 2, Nombres: "Marta", Apellidos: "Rios"},
	}}
	conductas := &mockFKConductaRepo{existing: map[int64]*models.ConductaDetalle{
		3: {Conducta: models.Conducta{ID: 3, Nombre: "Llegar tarde", Activo: true}, GravedadNombre: models.GravedadLeve, GravedadPuntos: 1},
		4: {Conducta: models.Conducta{ID: 4, Nombre: "Retirada", Activo: false}, GravedadNombre: models.GravedadLeve, GravedadPuntos: 1},
	}}
	svc := NewRegistroConductaService(repo, estudiantes, docentes, conductas, nil, nil, EvidenceConfig{}, nil, validator.New(), zap.NewNop())
	return svc, repo
}

func TestRegistroServiceRegistrarDefaults(t *testing.T) {
	svc, _ := newRegistroFixture()

	registro, err := svc.Registrar(context.Background(), 2, dto.RegistrarIncidenteRequest{
		EstudianteID:    1,
		ConductaID:      3,
		AccionesTomadas: "Citacion",
	})
	require.NoError(t, err)
	assert.Equal(t, models.EstadoActivo, registro.Estado)
	assert.False(t, registro.Leido)
	assert.Equal(t, int64(2), registro.DocenteID)
	assert.WithinDuration(t, time.Now().UTC(), registro.FechaRegistro, time.Minute)
}

func TestRegistroServiceRegistrarInvalidStudentPersistsNothing(t *testing.T) {
	svc, repo := newRegistroFixture()

	_, err := svc.Registrar(context.Background(), 2, dto.RegistrarIncidenteRequest{
		EstudianteID: 99,
		ConductaID:   3,
	})
	require.Error(t, err)
	appErr, ok := err.(*appErrors.Error)
	require.True(t, ok)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Empty(t, repo.created)
}

func TestRegistroServiceRegistrarDeletedDocentePersistsNothing(t *testing.T) {
	svc, repo := newRegistroFixture()

	// Session carries docente 77, whose account no longer exists.
	_, err := svc.Registrar(context.Background(), 77, dto.RegistrarIncidenteRequest{
		EstudianteID: 1,
		ConductaID:   3,
	})
	require.Error(t, err)
	appErr, ok := err.(*appErrors.Error)
	require.True(t, ok)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Empty(t, repo.created)
}

func TestRegistroServiceRegistrarInactiveConducta(t *testing.T) {
	svc, repo := newRegistroFixture()

	_, err := svc.Registrar(context.Background(), 2, dto.RegistrarIncidenteRequest{
		EstudianteID: 1,
		ConductaID:   4,
	})
	require.Error(t, err)
	assert.Empty(t, repo.created)
}

func TestRegistroServiceMarcarComoLeidoRestamps(t *testing.T) {
	svc, _ := newRegistroFixture()

	registro, err := svc.Registrar(context.Background(), 2, dto.RegistrarIncidenteRequest{EstudianteID: 1, ConductaID: 3})
	require.NoError(t, err)

	first, err := svc.MarcarComoLeido(context.Background(), registro.ID)
	require.NoError(t, err)
	assert.True(t, first.Leido)
	require.NotNil(t, first.FechaLectura)

	again, err := svc.MarcarComoLeido(context.Background(), registro.ID)
	require.NoError(t, err)
	assert.True(t, again.Leido)
	assert.False(t, again.FechaLectura.Before(*first.FechaLectura))
}

func TestRegistroServiceMarcarComoLeidoNotFound(t *testing.T) {
	svc, _ := newRegistroFixture()

	_, err := svc.MarcarComoLeido(context.Background(), 404)
	require.Error(t, err)
	appErr, ok := err.(*appErrors.Error)
	require.True(t, ok)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestRegistroServiceCambiarEstadoOnlyTouchesEstado(t *testing.T) {
	svc, repo := newRegistroFixture()

	registro, err := svc.Registrar(context.Background(), 2, dto.RegistrarIncidenteRequest{EstudianteID: 1, ConductaID: 3, Comentarios: "nota"})
	require.NoError(t, err)

	updated, err := svc.CambiarEstado(context.Background(), registro.ID, dto.CambiarEstadoRequest{Estado: models.EstadoResuelto})
	require.NoError(t, err)
	assert.Equal(t, models.EstadoResuelto, updated.Estado)
	assert.Equal(t, "nota", updated.Comentarios)
	assert.Equal(t, models.EstadoResuelto, repo.estados[registro.ID])
}

func TestRegistroServiceCambiarEstadoRejectsUnknown(t *testing.T) {
	svc, _ := newRegistroFixture()

	_, err := svc.CambiarEstado(context.Background(), 1, dto.CambiarEstadoRequest{Estado: "PENDIENTE"})
	require.Error(t, err)
	appErr, ok := err.(*appErrors.Error)
	require.True(t, ok)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}
