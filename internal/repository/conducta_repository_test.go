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

func conductaDetalleRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id_conducta", "nombre_conducta", "descripcion", "id_gravedad", "activo", "gravedad_nombre", "gravedad_puntos"}).
		AddRow(1, "Llegar tarde", "Llegada despues del timbre", 1, true, models.GravedadLeve, 1)
}

func TestConductaRepositoryListSoloActivas(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewConductaRepository(db)

	mock.ExpectQuery("WHERE c.activo = TRUE ORDER BY c.nombre_conducta").
		WillReturnRows(conductaDetalleRows())

	conductas, err := repo.List(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, conductas, 1)
	assert.Equal(t, models.GravedadLeve, conductas[0].GravedadNombre)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConductaRepositoryFindByIDNotFound(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewConductaRepository(db)

	mock.ExpectQuery("WHERE c.id_conducta").
		WithArgs(int64(42)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), 42)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConductaRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewConductaRepository(db)

	mock.ExpectQuery("INSERT INTO conducta").
		WithArgs("Llegar tarde", "Llegada despues del timbre", int64(1), true).
		WillReturnRows(sqlmock.NewRows([]string{"id_conducta"}).AddRow(9))

	conducta := &models.Conducta{Nombre: "Llegar tarde", Descripcion: "Llegada despues del timbre", GravedadID: 1, Activo: true}
	err := repo.Create(context.Background(), conducta)
	require.NoError(t, err)
	assert.Equal(t, int64(9), conducta.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConductaRepositoryCountRegistros(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewConductaRepository(db)

	mock.ExpectQuery("SELECT COUNT").
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	total, err := repo.CountRegistros(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConductaRepositoryMasUtilizadas(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewConductaRepository(db)

	rows := sqlmock.NewRows([]string{"id_conducta", "nombre_conducta", "gravedad_nombre", "total_usos"}).
		AddRow(1, "Llegar tarde", models.GravedadLeve, 12).
		AddRow(2, "Pelea", models.GravedadMuyGrave, 2)
	mock.ExpectQuery("ORDER BY total_usos DESC").WillReturnRows(rows)

	usos, err := repo.MasUtilizadas(context.Background())
	require.NoError(t, err)
	require.Len(t, usos, 2)
	assert.Equal(t, int64(12), usos[0].TotalUsos)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConductaRepositorySetActivo(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewConductaRepository(db)

	mock.ExpectExec("UPDATE conducta SET activo").
		WithArgs(int64(5), false).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.SetActivo(context.Background(), 5, false)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
