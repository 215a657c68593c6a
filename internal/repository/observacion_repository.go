package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/controledu/controledu-api/internal/models"
)

const observacionDetalleSelect = `SELECT o.id_observacion, o.id_estudiante, o.id_docente, o.tipo_observacion,
        o.descripcion, o.fecha, o.leido, o.fecha_lectura,
        e.nombres AS estudiante_nombres, e.apellidos AS estudiante_apellidos, e.grado AS estudiante_grado, e.seccion AS estudiante_seccion,
        d.nombres AS docente_nombres, d.apellidos AS docente_apellidos
        FROM observaciones o
        JOIN estudiante e ON e.id = o.id_estudiante
        JOIN docente d ON d.id = o.id_docente`

// ObservacionRepository manages persistence for teacher observations.
type ObservacionRepository struct {
	db *sqlx.DB
}

// NewObservacionRepository constructs an ObservacionRepository.
func NewObservacionRepository(db *sqlx.DB) *ObservacionRepository {
	return &ObservacionRepository{db: db}
}

// List returns observations matching the filter, newest first.
func (r *ObservacionRepository) List(ctx context.Context, filter models.ObservacionFilter) ([]models.ObservacionDetalle, error) {
	query := observacionDetalleSelect
	where := []string{}
	args := []interface{}{}

	if filter.EstudianteID > 0 {
		args = append(args, filter.EstudianteID)
		where = append(where, fmt.Sprintf("o.id_estudiante = $%d", len(args)))
	}
	if filter.DocenteID > 0 {
		args = append(args, filter.DocenteID)
		where = append(where, fmt.Sprintf("o.id_docente = $%d", len(args)))
	}
	if filter.Tipo != "" {
		args = append(args, filter.Tipo)
		where = append(where, fmt.Sprintf("LOWER(o.tipo_observacion) = LOWER($%d)", len(args)))
	}
	if filter.FechaInicio != nil {
		args = append(args, *filter.FechaInicio)
		where = append(where, fmt.Sprintf("o.fecha >= $%d", len(args)))
	}
	if filter.FechaFin != nil {
		args = append(args, *filter.FechaFin)
		where = append(where, fmt.Sprintf("o.fecha <= $%d", len(args)))
	}

	for i, cond := range where {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY o.fecha DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	var observaciones []models.ObservacionDetalle
	if err := r.db.SelectContext(ctx, &observaciones, query, args...); err != nil {
		return nil, fmt.Errorf("list observaciones: %w", err)
	}
	return observaciones, nil
}

// FindByID fetches an observation with its joined display fields.
func (r *ObservacionRepository) FindByID(ctx context.Context, id int64) (*models.ObservacionDetalle, error) {
	query := observacionDetalleSelect + " WHERE o.id_observacion = $1"
	var observacion models.ObservacionDetalle
	if err := r.db.GetContext(ctx, &observacion, query, id); err != nil {
		return nil, err
	}
	return &observacion, nil
}

// Create inserts a new observation and populates the generated ID.
func (r *ObservacionRepository) Create(ctx context.Context, observacion *models.Observacion) error {
	const query = `INSERT INTO observaciones (id_estudiante, id_docente, tipo_observacion, descripcion, fecha, leido)
        VALUES ($1, $2, $3, $4, $5, $6) RETURNING id_observacion`
	if err := r.db.QueryRowxContext(ctx, query,
		observacion.EstudianteID, observacion.DocenteID, observacion.Tipo,
		observacion.Descripcion, observacion.Fecha, observacion.Leido,
	).Scan(&observacion.ID); err != nil {
		return fmt.Errorf("create observacion: %w", err)
	}
	return nil
}

// MarcarLeida flags an observation as read. Repeat calls restamp the
// read time. Returns false when the observation does not exist.
func (r *ObservacionRepository) MarcarLeida(ctx context.Context, id int64, fechaLectura time.Time) (bool, error) {
	const query = `UPDATE observaciones SET leido = TRUE, fecha_lectura = $2
        WHERE id_observacion = $1`
	result, err := r.db.ExecContext(ctx, query, id, fechaLectura)
	if err != nil {
		return false, fmt.Errorf("marcar observacion leida: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("marcar observacion leida: %w", err)
	}
	return rows > 0, nil
}

// Delete removes an observation.
func (r *ObservacionRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM observaciones WHERE id_observacion = $1", id); err != nil {
		return fmt.Errorf("delete observacion: %w", err)
	}
	return nil
}

// Count returns the total number of observations.
func (r *ObservacionRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM observaciones"); err != nil {
		return 0, fmt.Errorf("count observaciones: %w", err)
	}
	return total, nil
}

// CountByEstudiante returns the number of observations of a student.
func (r *ObservacionRepository) CountByEstudiante(ctx context.Context, estudianteID int64) (int64, error) {
	var total int64
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM observaciones WHERE id_estudiante = $1", estudianteID); err != nil {
		return 0, fmt.Errorf("count observaciones por estudiante: %w", err)
	}
	return total, nil
}

// CountByDocente returns the number of observations written by a teacher.
func (r *ObservacionRepository) CountByDocente(ctx context.Context, docenteID int64) (int64, error) {
	var total int64
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM observaciones WHERE id_docente = $1", docenteID); err != nil {
		return 0, fmt.Errorf("count observaciones por docente: %w", err)
	}
	return total, nil
}

// CountNoLeidasByEstudiante returns the unread observation count of a student.
func (r *ObservacionRepository) CountNoLeidasByEstudiante(ctx context.Context, estudianteID int64) (int64, error) {
	var total int64
	const query = "SELECT COUNT(*) FROM observaciones WHERE id_estudiante = $1 AND leido = FALSE"
	if err := r.db.GetContext(ctx, &total, query, estudianteID); err != nil {
		return 0, fmt.Errorf("count observaciones no leidas: %w", err)
	}
	return total, nil
}

// CountPorTipo groups observation totals by type.
func (r *ObservacionRepository) CountPorTipo(ctx context.Context) ([]models.ConteoPorTipo, error) {
	const query = `SELECT LOWER(tipo_observacion) AS tipo, COUNT(*) AS total
        FROM observaciones
        GROUP BY LOWER(tipo_observacion)
        ORDER BY total DESC`
	var conteos []models.ConteoPorTipo
	if err := r.db.SelectContext(ctx, &conteos, query); err != nil {
		return nil, fmt.Errorf("count observaciones por tipo: %w", err)
	}
	return conteos, nil
}
