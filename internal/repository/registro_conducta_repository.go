package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/controledu/controledu-api/internal/models"
)

const registroDetalleSelect = `SELECT r.id_registro, r.id_estudiante, r.id_docente, r.id_conducta,
        r.fecha_registro, r.acciones_tomadas, r.comentarios, r.evidencia_url, r.leido, r.fecha_lectura, r.estado,
        e.nombres AS estudiante_nombres, e.apellidos AS estudiante_apellidos, e.grado AS estudiante_grado, e.seccion AS estudiante_seccion,
        d.nombres AS docente_nombres, d.apellidos AS docente_apellidos,
        c.nombre_conducta AS conducta_nombre,
        g.nombre_gravedad AS gravedad_nombre, g.puntos AS gravedad_puntos
        FROM registroconductas r
        JOIN estudiante e ON e.id = r.id_estudiante
        JOIN docente d ON d.id = r.id_docente
        JOIN conducta c ON c.id_conducta = r.id_conducta
        JOIN tipogravedad g ON g.id_gravedad = c.id_gravedad`

// RegistroConductaRepository manages persistence for incident records.
type RegistroConductaRepository struct {
	db *sqlx.DB
}

// NewRegistroConductaRepository constructs a RegistroConductaRepository.
func NewRegistroConductaRepository(db *sqlx.DB) *RegistroConductaRepository {
	return &RegistroConductaRepository{db: db}
}

// List returns incident records matching the filter, newest first.
func (r *RegistroConductaRepository) List(ctx context.Context, filter models.RegistroFilter) ([]models.RegistroConductaDetalle, error) {
	query := registroDetalleSelect
	where := []string{}
	args := []interface{}{}

	if filter.EstudianteID > 0 {
		args = append(args, filter.EstudianteID)
		where = append(where, fmt.Sprintf("r.id_estudiante = $%d", len(args)))
	}
	if filter.DocenteID > 0 {
		args = append(args, filter.DocenteID)
		where = append(where, fmt.Sprintf("r.id_docente = $%d", len(args)))
	}
	if filter.ConductaID > 0 {
		args = append(args, filter.ConductaID)
		where = append(where, fmt.Sprintf("r.id_conducta = $%d", len(args)))
	}
	if filter.Fecha != nil {
		args = append(args, *filter.Fecha)
		where = append(where, fmt.Sprintf("DATE(r.fecha_registro) = DATE($%d)", len(args)))
	}
	if filter.FechaInicio != nil {
		args = append(args, *filter.FechaInicio)
		where = append(where, fmt.Sprintf("r.fecha_registro >= $%d", len(args)))
	}
	if filter.FechaFin != nil {
		args = append(args, *filter.FechaFin)
		where = append(where, fmt.Sprintf("r.fecha_registro <= $%d", len(args)))
	}
	if filter.Leido != nil {
		args = append(args, *filter.Leido)
		where = append(where, fmt.Sprintf("r.leido = $%d", len(args)))
	}
	if filter.Estado != "" {
		args = append(args, filter.Estado)
		where = append(where, fmt.Sprintf("r.estado = $%d", len(args)))
	}

	for i, cond := range where {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY r.fecha_registro DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	var registros []models.RegistroConductaDetalle
	if err := r.db.SelectContext(ctx, &registros, query, args...); err != nil {
		return nil, fmt.Errorf("list registros: %w", err)
	}
	return registros, nil
}

// FindByID fetches an incident record with its joined display fields.
func (r *RegistroConductaRepository) FindByID(ctx context.Context, id int64) (*models.RegistroConductaDetalle, error) {
	query := registroDetalleSelect + " WHERE r.id_registro = $1"
	var registro models.RegistroConductaDetalle
	if err := r.db.GetContext(ctx, &registro, query, id); err != nil {
		return nil, err
	}
	return &registro, nil
}

// Create inserts a new incident record and populates the generated ID.
func (r *RegistroConductaRepository) Create(ctx context.Context, registro *models.RegistroConducta) error {
	const query = `INSERT INTO registroconductas
        (id_estudiante, id_docente, id_conducta, fecha_registro, acciones_tomadas, comentarios, evidencia_url, leido, estado)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id_registro`
	if err := r.db.QueryRowxContext(ctx, query,
		registro.EstudianteID, registro.DocenteID, registro.ConductaID,
		registro.FechaRegistro, registro.AccionesTomadas, registro.Comentarios,
		registro.EvidenciaURL, registro.Leido, registro.Estado,
	).Scan(&registro.ID); err != nil {
		return fmt.Errorf("create registro: %w", err)
	}
	return nil
}

// MarcarLeido flags an incident as read. Repeat calls restamp the read
// time. Returns false when the record does not exist.
func (r *RegistroConductaRepository) MarcarLeido(ctx context.Context, id int64, fechaLectura time.Time) (bool, error) {
	const query = `UPDATE registroconductas SET leido = TRUE, fecha_lectura = $2
        WHERE id_registro = $1`
	result, err := r.db.ExecContext(ctx, query, id, fechaLectura)
	if err != nil {
		return false, fmt.Errorf("marcar registro leido: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("marcar registro leido: %w", err)
	}
	return rows > 0, nil
}

// CambiarEstado updates the workflow state of an incident.
func (r *RegistroConductaRepository) CambiarEstado(ctx context.Context, id int64, estado string) error {
	if _, err := r.db.ExecContext(ctx, "UPDATE registroconductas SET estado = $2 WHERE id_registro = $1", id, estado); err != nil {
		return fmt.Errorf("cambiar estado registro: %w", err)
	}
	return nil
}

// SetEvidenciaURL attaches or clears the evidence reference.
func (r *RegistroConductaRepository) SetEvidenciaURL(ctx context.Context, id int64, url *string) error {
	if _, err := r.db.ExecContext(ctx, "UPDATE registroconductas SET evidencia_url = $2 WHERE id_registro = $1", id, url); err != nil {
		return fmt.Errorf("set evidencia registro: %w", err)
	}
	return nil
}

// Delete removes an incident record.
func (r *RegistroConductaRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM registroconductas WHERE id_registro = $1", id); err != nil {
		return fmt.Errorf("delete registro: %w", err)
	}
	return nil
}

// Count returns the total number of incident records.
func (r *RegistroConductaRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM registroconductas"); err != nil {
		return 0, fmt.Errorf("count registros: %w", err)
	}
	return total, nil
}

// CountByEstado returns incident counts for a workflow state.
func (r *RegistroConductaRepository) CountByEstado(ctx context.Context, estado string) (int64, error) {
	var total int64
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM registroconductas WHERE estado = $1", estado); err != nil {
		return 0, fmt.Errorf("count registros por estado: %w", err)
	}
	return total, nil
}

// CountByEstudiante returns the number of incidents of a student.
func (r *RegistroConductaRepository) CountByEstudiante(ctx context.Context, estudianteID int64) (int64, error) {
	var total int64
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM registroconductas WHERE id_estudiante = $1", estudianteID); err != nil {
		return 0, fmt.Errorf("count registros por estudiante: %w", err)
	}
	return total, nil
}

// CountByDocente returns the number of incidents reported by a teacher.
func (r *RegistroConductaRepository) CountByDocente(ctx context.Context, docenteID int64) (int64, error) {
	var total int64
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM registroconductas WHERE id_docente = $1", docenteID); err != nil {
		return 0, fmt.Errorf("count registros por docente: %w", err)
	}
	return total, nil
}

// CountNoLeidosByEstudiante returns the unread incident count of a student.
func (r *RegistroConductaRepository) CountNoLeidosByEstudiante(ctx context.Context, estudianteID int64) (int64, error) {
	var total int64
	const query = "SELECT COUNT(*) FROM registroconductas WHERE id_estudiante = $1 AND leido = FALSE"
	if err := r.db.GetContext(ctx, &total, query, estudianteID); err != nil {
		return 0, fmt.Errorf("count registros no leidos: %w", err)
	}
	return total, nil
}

// CountPorGravedad groups incident totals by severity name.
func (r *RegistroConductaRepository) CountPorGravedad(ctx context.Context) ([]models.ConteoPorGravedad, error) {
	const query = `SELECT g.nombre_gravedad AS gravedad, COUNT(r.id_registro) AS total
        FROM registroconductas r
        JOIN conducta c ON c.id_conducta = r.id_conducta
        JOIN tipogravedad g ON g.id_gravedad = c.id_gravedad
        GROUP BY g.nombre_gravedad
        ORDER BY total DESC`
	var conteos []models.ConteoPorGravedad
	if err := r.db.SelectContext(ctx, &conteos, query); err != nil {
		return nil, fmt.Errorf("count registros por gravedad: %w", err)
	}
	return conteos, nil
}

// CountPorGrado groups incident totals by student grade.
func (r *RegistroConductaRepository) CountPorGrado(ctx context.Context) ([]models.ConteoPorGrado, error) {
	const query = `SELECT e.grado, COUNT(r.id_registro) AS total
        FROM registroconductas r
        JOIN estudiante e ON e.id = r.id_estudiante
        GROUP BY e.grado
        ORDER BY e.grado`
	var conteos []models.ConteoPorGrado
	if err := r.db.SelectContext(ctx, &conteos, query); err != nil {
		return nil, fmt.Errorf("count registros por grado: %w", err)
	}
	return conteos, nil
}

// CountPorMes groups incident totals by calendar month.
func (r *RegistroConductaRepository) CountPorMes(ctx context.Context) ([]models.ConteoPorMes, error) {
	const query = `SELECT EXTRACT(YEAR FROM fecha_registro)::int AS anio,
        EXTRACT(MONTH FROM fecha_registro)::int AS mes, COUNT(*) AS total
        FROM registroconductas
        GROUP BY anio, mes
        ORDER BY anio, mes`
	var conteos []models.ConteoPorMes
	if err := r.db.SelectContext(ctx, &conteos, query); err != nil {
		return nil, fmt.Errorf("count registros por mes: %w", err)
	}
	return conteos, nil
}
