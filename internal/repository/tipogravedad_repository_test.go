package repository

import (
	"context"
	"database/sql"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/controledu/controledu-api/internal/models"
)

func TestTipoGravedadRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTipoGravedadRepository(db)

	rows := sqlmock.NewRows([]string{"id_gravedad", "nombre_gravedad", "descripcion", "puntos"}).
		AddRow(1, models.GravedadLeve, "Faltas menores", 1).
		AddRow(2, models.GravedadGrave, "Faltas serias", 3)
	mock.ExpectQuery("FROM tipogravedad ORDER BY nombre_gravedad").WillReturnRows(rows)

	gravedades, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, gravedades, 2)
	assert.True(t, gravedades[0].EsLeve())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTipoGravedadRepositoryFindByNombre(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTipoGravedadRepository(db)

	mock.ExpectQuery("WHERE LOWER\\(nombre_gravedad\\)").
		WithArgs("muy grave").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByNombre(context.Background(), "muy grave")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTipoGravedadRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTipoGravedadRepository(db)

	mock.ExpectQuery("INSERT INTO tipogravedad").
		WithArgs(models.GravedadMuyGrave, "Faltas que requieren intervencion inmediata", 5).
		WillReturnRows(sqlmock.NewRows([]string{"id_gravedad"}).AddRow(3))

	gravedad := &models.TipoGravedad{Nombre: models.GravedadMuyGrave, Descripcion: "Faltas que requieren intervencion inmediata", Puntos: 5}
	err := repo.Create(context.Background(), gravedad)
	require.NoError(t, err)
	assert.Equal(t, int64(3), gravedad.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
