package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/controledu/controledu-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func estudianteRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "nombres", "apellidos", "grado", "seccion", "fecha_nacimiento", "usuario", "password"}).
		AddRow(1, "Ana", "Lopez", "3", "A", time.Now(), "alopez", "hash")
}

func TestEstudianteRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEstudianteRepository(db)

	mock.ExpectQuery("SELECT id, nombres, apellidos, grado, seccion, fecha_nacimiento, usuario, password FROM estudiante").
		WithArgs("3", "%ana%").
		WillReturnRows(estudianteRows())

	estudiantes, err := repo.List(context.Background(), models.EstudianteFilter{Grado: "3", Nombre: "Ana"})
	require.NoError(t, err)
	assert.Len(t, estudiantes, 1)
	assert.Equal(t, "alopez", estudiantes[0].Usuario)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEstudianteRepositoryFindByUsuario(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEstudianteRepository(db)

	mock.ExpectQuery("FROM estudiante WHERE usuario").
		WithArgs("alopez").
		WillReturnRows(estudianteRows())

	estudiante, err := repo.FindByUsuario(context.Background(), "alopez")
	require.NoError(t, err)
	assert.Equal(t, int64(1), estudiante.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEstudianteRepositoryFindByIDNotFound(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEstudianteRepository(db)

	mock.ExpectQuery("FROM estudiante WHERE id").
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), 99)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEstudianteRepositoryExistsByUsuario(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEstudianteRepository(db)

	mock.ExpectQuery("SELECT 1 FROM estudiante").
		WithArgs("alopez").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(1))

	exists, err := repo.ExistsByUsuario(context.Background(), "alopez", 0)
	require.NoError(t, err)
	assert.True(t, exists)

	mock.ExpectQuery("SELECT 1 FROM estudiante").
		WithArgs("nuevo").
		WillReturnError(sql.ErrNoRows)

	exists, err = repo.ExistsByUsuario(context.Background(), "nuevo", 0)
	require.NoError(t, err)
	assert.False(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEstudianteRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEstudianteRepository(db)

	mock.ExpectQuery("INSERT INTO estudiante").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	estudiante := &models.Estudiante{Nombres: "Ana", Apellidos: "Lopez", Grado: "3", Seccion: "A", FechaNacimiento: time.Now(), Usuario: "alopez", PasswordHash: "hash"}
	err := repo.Create(context.Background(), estudiante)
	require.NoError(t, err)
	assert.Equal(t, int64(7), estudiante.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEstudianteRepositoryConMasIncidencias(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEstudianteRepository(db)

	rows := sqlmock.NewRows([]string{"id", "nombres", "apellidos", "grado", "seccion", "total"}).
		AddRow(1, "Ana", "Lopez", "3", "A", 5).
		AddRow(2, "Luis", "Mora", "3", "B", 3)
	mock.ExpectQuery("ORDER BY total DESC LIMIT 2").WillReturnRows(rows)

	top, err := repo.ConMasIncidencias(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, int64(5), top[0].Total)
	assert.NoError(t, mock.ExpectationsWereMet())
}
