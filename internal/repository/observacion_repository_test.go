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

func observacionDetalleRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id_observacion", "id_estudiante", "id_docente", "tipo_observacion",
		"descripcion", "fecha", "leido", "fecha_lectura",
		"estudiante_nombres", "estudiante_apellidos", "estudiante_grado", "estudiante_seccion",
		"docente_nombres", "docente_apellidos",
	}).AddRow(
		1, 1, 2, models.ObservacionPositiva,
		"Ayudo a un companero", time.Now(), false, nil,
		"Ana", "Lopez", "3", "A",
		"Marta", "Rios",
	)
}

func TestObservacionRepositoryListByTipo(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewObservacionRepository(db)

	mock.ExpectQuery("WHERE LOWER\\(o.tipo_observacion\\)").
		WithArgs(models.ObservacionPositiva).
		WillReturnRows(observacionDetalleRows())

	observaciones, err := repo.List(context.Background(), models.ObservacionFilter{Tipo: models.ObservacionPositiva})
	require.NoError(t, err)
	require.Len(t, observaciones, 1)
	assert.True(t, observaciones[0].EsPositiva())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestObservacionRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewObservacionRepository(db)

	mock.ExpectQuery("INSERT INTO observaciones").
		WithArgs(int64(1), int64(2), models.ObservacionNegativa, "Interrumpe la clase", sqlmock.AnyArg(), false).
		WillReturnRows(sqlmock.NewRows([]string{"id_observacion"}).AddRow(5))

	observacion := &models.Observacion{
		EstudianteID: 1,
		DocenteID:    2,
		Tipo:         models.ObservacionNegativa,
		Descripcion:  "Interrumpe la clase",
		Fecha:        time.Now(),
	}
	err := repo.Create(context.Background(), observacion)
	require.NoError(t, err)
	assert.Equal(t, int64(5), observacion.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestObservacionRepositoryMarcarLeida(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewObservacionRepository(db)

	now := time.Now()
	mock.ExpectExec("UPDATE observaciones SET leido = TRUE").
		WithArgs(int64(3), now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	changed, err := repo.MarcarLeida(context.Background(), 3, now)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestObservacionRepositoryCountPorTipo(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewObservacionRepository(db)

	rows := sqlmock.NewRows([]string{"tipo", "total"}).
		AddRow(models.ObservacionPositiva, 8).
		AddRow(models.ObservacionNegativa, 3)
	mock.ExpectQuery("GROUP BY LOWER\\(tipo_observacion\\)").WillReturnRows(rows)

	conteos, err := repo.CountPorTipo(context.Background())
	require.NoError(t, err)
	require.Len(t, conteos, 2)
	assert.Equal(t, int64(8), conteos[0].Total)
	assert.NoError(t, mock.ExpectationsWereMet())
}
