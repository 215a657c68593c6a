package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/controledu/controledu-api/internal/dto"
	"github.com/controledu/controledu-api/internal/models"
	appErrors "github.com/controledu/controledu-api/pkg/errors"
)

type mockConductaRepo struct {
	conductas map[int64]*models.ConductaDetalle
	usos      map[int64]int64
	nextID    int64
	deleted   []int64
}

func newMockConductaRepo() *mockConductaRepo {
	return &mockConductaRepo{conductas: map[int64]*models.ConductaDetalle{}, usos: map[int64]int64{}, nextID: 1}
}

func (m *mockConductaRepo) List(ctx context.Context, soloActivas bool) ([]models.ConductaDetalle, error) {
	out := []models.ConductaDetalle{}
	for _, c := range m.conductas {
		if soloActivas && !c.Activo {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

func (m *mockConductaRepo) FindByID(ctx context.Context, id int64) (*models.ConductaDetalle, error) {
	c, ok := m.conductas[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return c, nil
}

func (m *mockConductaRepo) FindByGravedad(ctx context.Context, gravedadID int64) ([]models.ConductaDetalle, error) {
	out := []models.ConductaDetalle{}
	for _, c := range m.conductas {
		if c.GravedadID == gravedadID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *mockConductaRepo) Search(ctx context.Context, nombre string) ([]models.ConductaDetalle, error) {
	return m.List(ctx, false)
}

func (m *mockConductaRepo) ExistsByNombre(ctx context.Context, nombre string, excludeID int64) (bool, error) {
	for _, c := range m.conductas {
		if c.Nombre == nombre && c.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockConductaRepo) Create(ctx context.Context, conducta *models.Conducta) error {
	conducta.ID = m.nextID
	m.nextID++
	m.conductas[conducta.ID] = &models.ConductaDetalle{Conducta: *conducta, GravedadNombre: models.GravedadLeve, GravedadPuntos: 1}
	return nil
}

func (m *mockConductaRepo) Update(ctx context.Context, conducta *models.Conducta) error {
	m.conductas[conducta.ID].Conducta = *conducta
	return nil
}

func (m *mockConductaRepo) SetActivo(ctx context.Context, id int64, activo bool) error {
	m.conductas[id].Activo = activo
	return nil
}

func (m *mockConductaRepo) Delete(ctx context.Context, id int64) error {
	delete(m.conductas, id)
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockConductaRepo) CountRegistros(ctx context.Context, id int64) (int64, error) {
	return m.usos[id], nil
}

func (m *mockConductaRepo) MasUtilizadas(ctx context.Context) ([]models.ConductaUso, error) {
	return nil, nil
}

func (m *mockConductaRepo) NoUtilizadas(ctx context.Context) ([]models.ConductaDetalle, error) {
	return nil, nil
}

type mockGravedadLookup struct {
	existing map[int64]*models.TipoGravedad
}

func (m *mockGravedadLookup) FindByID(ctx context.Context, id int64) (*models.TipoGravedad, error) {
	g, ok := m.existing[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return g, nil
}

func newConductaFixture() (*ConductaService, *mockConductaRepo) {
	repo := newMockConductaRepo()
	gravedades := &mockGravedadLookup{existing: map[int64]*models.TipoGravedad{
		1: {ID: 1, Nombre: models.GravedadLeve, Puntos: 1},
	}}
	svc := NewConductaService(repo, gravedades, nil, validator.New(), zap.NewNop())
	return svc, repo
}

func TestConductaServiceCreate(t *testing.T) {
	svc, _ := newConductaFixture()

	conducta, err := svc.Create(context.Background(), dto.ConductaRequest{Nombre: "Llegar tarde", Descripcion: "Llegada despues del timbre", GravedadID: 1})
	require.NoError(t, err)
	assert.True(t, conducta.Activo)
	assert.Equal(t, "Llegar tarde", conducta.Nombre)
}

func TestConductaServiceCreateDuplicateName(t *testing.T) {
	svc, _ := newConductaFixture()

	_, err := svc.Create(context.Background(), dto.ConductaRequest{Nombre: "Llegar tarde", Descripcion: "x", GravedadID: 1})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), dto.ConductaRequest{Nombre: "Llegar tarde", Descripcion: "y", GravedadID: 1})
	require.Error(t, err)
	appErr, ok := err.(*appErrors.Error)
	require.True(t, ok)
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
}

func TestConductaServiceCreateUnknownGravedad(t *testing.T) {
	svc, _ := newConductaFixture()

	_, err := svc.Create(context.Background(), dto.ConductaRequest{Nombre: "Pelea", Descripcion: "x", GravedadID: 42})
	require.Error(t, err)
	appErr, ok := err.(*appErrors.Error)
	require.True(t, ok)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestConductaServiceDeleteBlockedWhenReferenced(t *testing.T) {
	svc, repo := newConductaFixture()

	conducta, err := svc.Create(context.Background(), dto.ConductaRequest{Nombre: "Pelea", Descripcion: "x", GravedadID: 1})
	require.NoError(t, err)
	repo.usos[conducta.ID] = 3

	err = svc.Delete(context.Background(), conducta.ID)
	require.Error(t, err)
	appErr, ok := err.(*appErrors.Error)
	require.True(t, ok)
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
	assert.Empty(t, repo.deleted)

	// Deactivation stays available for referenced rules.
	require.NoError(t, svc.SetActivo(context.Background(), conducta.ID, false))
	assert.False(t, repo.conductas[conducta.ID].Activo)
}

func TestConductaServiceDeleteUnreferenced(t *testing.T) {
	svc, repo := newConductaFixture()

	conducta, err := svc.Create(context.Background(), dto.ConductaRequest{Nombre: "Pelea", Descripcion: "x", GravedadID: 1})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), conducta.ID))
	assert.Equal(t, []int64{conducta.ID}, repo.deleted)
}
