package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/controledu/controledu-api/internal/models"
)

func registroDetalleRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id_registro", "id_estudiante", "id_docente", "id_conducta",
		"fecha_registro", "acciones_tomadas", "comentarios", "evidencia_url", "leido", "fecha_lectura", "estado",
		"estudiante_nombres", "estudiante_apellidos", "estudiante_grado", "estudiante_seccion",
		"docente_nombres", "docente_apellidos",
		"conducta_nombre", "gravedad_nombre", "gravedad_puntos",
	}).AddRow(
		1, 1, 2, 3,
		time.Now(), "Citacion a padres", "", nil, false, nil, models.EstadoActivo,
		"Ana", "Lopez", "3", "A",
		"Marta", "Rios",
		"Llegar tarde", models.GravedadLeve, 1,
	)
}

func TestRegistroConductaRepositoryListByEstudiante(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRegistroConductaRepository(db)

	mock.ExpectQuery("WHERE r.id_estudiante").
		WithArgs(int64(1)).
		WillReturnRows(registroDetalleRows())

	registros, err := repo.List(context.Background(), models.RegistroFilter{EstudianteID: 1})
	require.NoError(t, err)
	require.Len(t, registros, 1)
	assert.Equal(t, "Llegar tarde", registros[0].ConductaNombre)
	assert.Equal(t, models.EstadoActivo, registros[0].Estado)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistroConductaRepositoryListUnreadWithLimit(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRegistroConductaRepository(db)

	leido := false
	mock.ExpectQuery("WHERE r.leido").
		WithArgs(false, 5).
		WillReturnRows(registroDetalleRows())

	registros, err := repo.List(context.Background(), models.RegistroFilter{Leido: &leido, Limit: 5})
	require.NoError(t, err)
	assert.Len(t, registros, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistroConductaRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRegistroConductaRepository(db)

	mock.ExpectQuery("INSERT INTO registroconductas").
		WithArgs(int64(1), int64(2), int64(3), sqlmock.AnyArg(), "Citacion", "", nil, false, models.EstadoActivo).
		WillReturnRows(sqlmock.NewRows([]string{"id_registro"}).AddRow(11))

	registro := &models.RegistroConducta{
		EstudianteID:    1,
		DocenteID:       2,
		ConductaID:      3,
		FechaRegistro:   time.Now(),
		AccionesTomadas: "Citacion",
		Estado:          models.EstadoActivo,
	}
	err := repo.Create(context.Background(), registro)
	require.NoError(t, err)
	assert.Equal(t, int64(11), registro.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistroConductaRepositoryMarcarLeido(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRegistroConductaRepository(db)

	now := time.Now()
	mock.ExpectExec("UPDATE registroconductas SET leido = TRUE").
		WithArgs(int64(1), now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	changed, err := repo.MarcarLeido(context.Background(), 1, now)
	require.NoError(t, err)
	assert.True(t, changed)

	// Missing record hits no row.
	mock.ExpectExec("UPDATE registroconductas SET leido = TRUE").
		WithArgs(int64(99), now).
		WillReturnResult(sqlmock.NewResult(0, 0))

	changed, err = repo.MarcarLeido(context.Background(), 99, now)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistroConductaRepositoryCountPorGravedad(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRegistroConductaRepository(db)

	rows := sqlmock.NewRows([]string{"gravedad", "total"}).
		AddRow(models.GravedadLeve, 10).
		AddRow(models.GravedadGrave, 4)
	mock.ExpectQuery("GROUP BY g.nombre_gravedad").WillReturnRows(rows)

	conteos, err := repo.CountPorGravedad(context.Background())
	require.NoError(t, err)
	require.Len(t, conteos, 2)
	assert.Equal(t, models.GravedadLeve, conteos[0].Gravedad)
	assert.Equal(t, int64(10), conteos[0].Total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistroConductaRepositoryCountPorMes(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRegistroConductaRepository(db)

	rows := sqlmock.NewRows([]string{"anio", "mes", "total"}).
		AddRow(2026, 3, 7).
		AddRow(2026, 4, 2)
	mock.ExpectQuery("EXTRACT").WillReturnRows(rows)

	conteos, err := repo.CountPorMes(context.Background())
	require.NoError(t, err)
	require.Len(t, conteos, 2)
	assert.Equal(t, 2026, conteos[0].Anio)
	assert.Equal(t, 3, conteos[0].Mes)
	assert.NoError(t, mock.ExpectationsWereMet())
}
