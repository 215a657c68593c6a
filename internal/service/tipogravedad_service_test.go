package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/controledu/controledu-api/internal/models"
)

type mockGravedadRepo struct {
	gravedades map[string]*models.TipoGravedad
	nextID     int64
	creates    int
}

func newMockGravedadRepo() *mockGravedadRepo {
	return &mockGravedadRepo{gravedades: map[string]*models.TipoGravedad{}, nextID: 1}
}

func (m *mockGravedadRepo) List(ctx context.Context) ([]models.TipoGravedad, error) {
	out := []models.TipoGravedad{}
	for _, g := range m.gravedades {
		out = append(out, *g)
	}
	return out, nil
}

func (m *mockGravedadRepo) FindByID(ctx context.Context, id int64) (*models.TipoGravedad, error) {
	for _, g := range m.gravedades {
		if g.ID == id {
			return g, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockGravedadRepo) FindByNombre(ctx context.Context, nombre string) (*models.TipoGravedad, error) {
	g, ok := m.gravedades[nombre]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return g, nil
}

func (m *mockGravedadRepo) Create(ctx context.Context, gravedad *models.TipoGravedad) error {
	gravedad.ID = m.nextID
	m.nextID++
	m.creates++
	m.gravedades[gravedad.Nombre] = gravedad
	return nil
}

func (m *mockGravedadRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(m.gravedades)), nil
}

func TestTipoGravedadServiceSeedIsIdempotent(t *testing.T) {
	repo := newMockGravedadRepo()
	svc := NewTipoGravedadService(repo, zap.NewNop())

	require.NoError(t, svc.InitializeDefaultGravedades(context.Background()))
	assert.Equal(t, 3, repo.creates)
	assert.Equal(t, 1, repo.gravedades[models.GravedadLeve].Puntos)
	assert.Equal(t, 3, repo.gravedades[models.GravedadGrave].Puntos)
	assert.Equal(t, 5, repo.gravedades[models.GravedadMuyGrave].Puntos)

	// A second boot finds the rows and creates nothing new.
	require.NoError(t, svc.InitializeDefaultGravedades(context.Background()))
	assert.Equal(t, 3, repo.creates)
	assert.Len(t, repo.gravedades, 3)
}

func TestTipoGravedadServiceSeedSkipsNonEmptyCatalog(t *testing.T) {
	repo := newMockGravedadRepo()
	repo.gravedades["critica"] = &models.TipoGravedad{ID: 1, Nombre: "critica", Puntos: 9}
	svc := NewTipoGravedadService(repo, zap.NewNop())

	// A customized catalog counts as seeded even without the canonical names.
	require.NoError(t, svc.InitializeDefaultGravedades(context.Background()))
	assert.Equal(t, 0, repo.creates)
	assert.Len(t, repo.gravedades, 1)
}
